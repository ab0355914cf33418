package repository_test

import (
	"context"
	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/repository"
	"regexp"
	"testing"
	"time"
)

func TestSubjectTokenRepository_DigestExists(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewSubjectTokenRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT EXISTS (SELECT 1 FROM subject_tokens WHERE token_digest = $1)")).
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))

	exists, err := repo.DigestExists(context.Background(), "digest")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestSubjectTokenRepository_InsertAndFind(t *testing.T) {
	db, mock := newMockDatabase(t)
	repo := repository.NewSubjectTokenRepository(db)
	createdAt := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	token := &model.SubjectToken{ID: "tok", SubjectID: "subj", TokenPrefix: "F_abcdef", TokenDigest: "digest"}
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO subject_tokens")).
		WithArgs("tok", "subj", "F_abcdef", "digest", nil).
		WillReturnRows(sqlmock.NewRows([]string{"created_at"}).AddRow(createdAt))

	require.NoError(t, repo.Insert(context.Background(), token))
	assert.Equal(t, createdAt, token.CreatedAt)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subject_tokens WHERE token_digest = $1")).
		WithArgs("digest").
		WillReturnRows(sqlmock.NewRows([]string{"id", "subject_id", "token_prefix", "token_digest", "expires_at", "revoked_at", "created_at"}).
			AddRow("tok", "subj", "F_abcdef", "digest", nil, nil, createdAt))

	found, err := repo.FindByDigest(context.Background(), "digest")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "subj", found.SubjectID)
	assert.Nil(t, found.RevokedAt)
}

func TestSubjectTokenRepository_FindMissing(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectQuery(regexp.QuoteMeta("FROM subject_tokens WHERE token_digest = $1")).
		WithArgs("nope").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	found, err := repository.NewSubjectTokenRepository(db).FindByDigest(context.Background(), "nope")
	assert.NoError(t, err)
	assert.Nil(t, found)
}

func TestSubjectTokenRepository_RevokeActiveForSubject(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE subject_tokens SET revoked_at = NOW() WHERE subject_id = $1 AND id <> $2 AND revoked_at IS NULL")).
		WithArgs("subj", "keep-id").
		WillReturnResult(sqlmock.NewResult(0, 2))

	revoked, err := repository.NewSubjectTokenRepository(db).RevokeActiveForSubject(context.Background(), "subj", "keep-id")
	require.NoError(t, err)
	assert.Equal(t, int64(2), revoked)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSubjectTokenRepository_Revoke(t *testing.T) {
	db, mock := newMockDatabase(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE subject_tokens SET revoked_at = NOW() WHERE id = $1 AND revoked_at IS NULL")).
		WithArgs("tok-id").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repository.NewSubjectTokenRepository(db).Revoke(context.Background(), "tok-id")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
