package model

import "time"

// SubjectToken : токен семейного портала, привязанный к ученику
type SubjectToken struct {
	ID          string     `db:"id" json:"id"`
	SubjectID   string     `db:"subject_id" json:"subject_id"`
	TokenPrefix string     `db:"token_prefix" json:"token_prefix"`
	TokenDigest string     `db:"token_digest" json:"-"`
	ExpiresAt   *time.Time `db:"expires_at" json:"expires_at,omitempty"`
	RevokedAt   *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
}

type GeneratedSubjectToken struct {
	Token     string     `json:"token"`
	TokenID   string     `json:"token_id"`
	SubjectID string     `json:"subject_id"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}
