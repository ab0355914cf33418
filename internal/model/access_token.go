package model

import (
	"encoding/json"
	"time"
)

type TokenScope string

const (
	ScopeEvent  TokenScope = "event"
	ScopeCourse TokenScope = "course"
	ScopeFamily TokenScope = "family"
)

// Valid : true для event/course/family
func (s TokenScope) Valid() bool {
	switch s {
	case ScopeEvent, ScopeCourse, ScopeFamily:
		return true
	}
	return false
}

// PrefixLetter : буква видимого префикса токена (E_, C_, F_)
func (s TokenScope) PrefixLetter() string {
	switch s {
	case ScopeEvent:
		return "E"
	case ScopeCourse:
		return "C"
	case ScopeFamily:
		return "F"
	}
	return ""
}

type AccessLevel string

const (
	AccessFull     AccessLevel = "full"
	AccessReadOnly AccessLevel = "read_only"
)

func (a AccessLevel) Valid() bool {
	return a == AccessFull || a == AccessReadOnly
}

// AccessToken : строка таблицы access_tokens. Открытый токен здесь не хранится никогда
type AccessToken struct {
	ID          string          `db:"id" json:"id"`
	Scope       TokenScope      `db:"scope" json:"scope"`
	EventID     *string         `db:"event_id" json:"event_id,omitempty"`
	CourseID    *string         `db:"course_id" json:"course_id,omitempty"`
	SubjectID   *string         `db:"subject_id" json:"subject_id,omitempty"`
	TokenPrefix string          `db:"token_prefix" json:"token_prefix"`
	TokenHash   []byte          `db:"token_hash" json:"-"`
	Salt        []byte          `db:"salt" json:"-"`
	AccessLevel AccessLevel     `db:"access_level" json:"access_level"`
	CanDownload bool            `db:"can_download" json:"can_download"`
	MaxUses     *int            `db:"max_uses" json:"max_uses,omitempty"`
	UseCount    int             `db:"use_count" json:"use_count"`
	ExpiresAt   *time.Time      `db:"expires_at" json:"expires_at,omitempty"`
	RevokedAt   *time.Time      `db:"revoked_at" json:"revoked_at,omitempty"`
	LastUsedAt  *time.Time      `db:"last_used_at" json:"last_used_at,omitempty"`
	CreatedBy   string          `db:"created_by" json:"created_by"`
	Metadata    json.RawMessage `db:"metadata" json:"metadata"`
	CreatedAt   time.Time       `db:"created_at" json:"created_at"`
}

// ResourceID : единственная заполненная ссылка на ресурс, соответствующая scope
func (t *AccessToken) ResourceID() string {
	var ref *string
	switch t.Scope {
	case ScopeEvent:
		ref = t.EventID
	case ScopeCourse:
		ref = t.CourseID
	case ScopeFamily:
		ref = t.SubjectID
	}
	if ref == nil {
		return ""
	}
	return *ref
}

// SetResource : заполняет ровно одну ссылку на ресурс, остальные обнуляет
func (t *AccessToken) SetResource(scope TokenScope, resourceID string) {
	t.Scope = scope
	t.EventID, t.CourseID, t.SubjectID = nil, nil, nil
	id := resourceID
	switch scope {
	case ScopeEvent:
		t.EventID = &id
	case ScopeCourse:
		t.CourseID = &id
	case ScopeFamily:
		t.SubjectID = &id
	}
}

// TokenInfo : токен с производными флагами состояния
type TokenInfo struct {
	AccessToken
	IsExpired   bool `json:"is_expired"`
	IsRevoked   bool `json:"is_revoked"`
	IsExhausted bool `json:"is_exhausted"`
	IsValid     bool `json:"is_valid"`
}

// NewTokenInfo : вычисляет флаги относительно момента now
func NewTokenInfo(token AccessToken, now time.Time) TokenInfo {
	info := TokenInfo{AccessToken: token}
	info.IsExpired = token.ExpiresAt != nil && token.ExpiresAt.Before(now)
	info.IsRevoked = token.RevokedAt != nil
	info.IsExhausted = token.MaxUses != nil && token.UseCount >= *token.MaxUses
	info.IsValid = !info.IsExpired && !info.IsRevoked && !info.IsExhausted
	return info
}

// CreateTokenRequest : параметры выпуска токена; nil означает значение по умолчанию
type CreateTokenRequest struct {
	Scope       TokenScope
	ResourceID  string
	CreatedBy   string
	AccessLevel *AccessLevel
	CanDownload *bool
	MaxUses     *int
	ExpiresAt   *time.Time
}

// CreatedToken : результат выпуска. Token отдаётся клиенту ровно один раз
type CreatedToken struct {
	Token     string     `json:"token"`
	TokenID   string     `json:"token_id"`
	Prefix    string     `json:"prefix"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// TokenValidationResult : итог проверки токена
type TokenValidationResult struct {
	IsValid     bool        `json:"is_valid"`
	TokenID     string      `json:"token_id,omitempty"`
	Scope       TokenScope  `json:"scope,omitempty"`
	ResourceID  string      `json:"resource_id,omitempty"`
	AccessLevel AccessLevel `json:"access_level,omitempty"`
	CanDownload bool        `json:"can_download"`
	Reason      string      `json:"reason,omitempty"`
}

// ValidationRow : строка, возвращаемая validate_access_token
type ValidationRow struct {
	IsValid     bool    `db:"is_valid"`
	TokenID     *string `db:"token_id"`
	Scope       *string `db:"scope"`
	ResourceID  *string `db:"resource_id"`
	AccessLevel *string `db:"access_level"`
	CanDownload *bool   `db:"can_download"`
	Reason      *string `db:"reason"`
}

// AccessLogEntry : контекст обращения по токену для аудита
type AccessLogEntry struct {
	Token          string
	Action         string
	IP             string
	UserAgent      string
	Path           string
	ResponseTimeMs int
	Success        bool
	Note           string
}

type CleanupResult struct {
	TokensRemoved int64 `db:"tokens_removed" json:"tokens_removed"`
	LogsRemoved   int64 `db:"logs_removed" json:"logs_removed"`
}
