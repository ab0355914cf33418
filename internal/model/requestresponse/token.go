package requestresponse

import (
	"lookescolar-server/internal/model"
	"time"
)

// CreateTokenRequest : тело запроса на выпуск токена доступа
type CreateTokenRequest struct {
	Scope       string     `json:"scope" example:"event"`
	ResourceID  string     `json:"resource_id" example:"5f1d7a8e-0c1b-4a7e-9f3a-1b2c3d4e5f60"`
	AccessLevel *string    `json:"access_level,omitempty" example:"read_only"`
	CanDownload *bool      `json:"can_download,omitempty" example:"false"`
	MaxUses     *int       `json:"max_uses,omitempty" example:"10"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty" example:"2026-12-31T23:59:59Z"`
}

// ToModel : переводит тело запроса в параметры сервиса
func (r CreateTokenRequest) ToModel(createdBy string) model.CreateTokenRequest {
	req := model.CreateTokenRequest{
		Scope:       model.TokenScope(r.Scope),
		ResourceID:  r.ResourceID,
		CreatedBy:   createdBy,
		CanDownload: r.CanDownload,
		MaxUses:     r.MaxUses,
		ExpiresAt:   r.ExpiresAt,
	}
	if r.AccessLevel != nil {
		level := model.AccessLevel(*r.AccessLevel)
		req.AccessLevel = &level
	}
	return req
}

// RotateTokenRequest : необязательное тело ротации
type RotateTokenRequest struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty" example:"2027-06-30T23:59:59Z"`
}

type CreateTokenResponse struct {
	Data model.CreatedToken `json:"data"`
}

type TokenResponse struct {
	Data model.TokenInfo `json:"data"`
}

type ListTokensResponse struct {
	Data struct {
		Tokens []model.TokenInfo `json:"tokens"`
	} `json:"data"`
	Count int `json:"count"`
}

// ValidateTokenRequest : тело запроса на проверку токена
type ValidateTokenRequest struct {
	Token string `json:"token" example:"E_k3j9x2_Qm9vYmFyYmF6cXV4cXV1eA"`
}

type ValidateTokenResponse struct {
	Data model.TokenValidationResult `json:"data"`
}

type SubjectTokenRequest struct {
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	Rotate    bool       `json:"rotate"`
}

type SubjectTokenResponse struct {
	Data model.GeneratedSubjectToken `json:"data"`
}

type CleanupResponse struct {
	Data model.CleanupResult `json:"data"`
}
