package handler

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"io"
	"lookescolar-server/internal/model"
	requestresponse "lookescolar-server/internal/model/requestresponse"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/security"
	"lookescolar-server/internal/util"
	"net/http"
	"strings"
	"time"
)

type TokenHandler struct {
	tokens    ports.AccessTokenService
	subjects  ports.SubjectTokenService
	accessLog ports.AccessLogQueue
	timeout   time.Duration
}

func NewTokenHandler(tokens ports.AccessTokenService, subjects ports.SubjectTokenService, accessLog ports.AccessLogQueue, timeout time.Duration) *TokenHandler {
	return &TokenHandler{tokens: tokens, subjects: subjects, accessLog: accessLog, timeout: timeout}
}

// CreateToken godoc
// @Summary Выпуск токена доступа
// @Tags Tokens
// @Accept json
// @Produce json
// @Param request body requestresponse.CreateTokenRequest true "Область, ресурс и ограничения"
// @Success 201 {object} requestresponse.CreateTokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/tokens [post]
func (h *TokenHandler) CreateToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	var body requestresponse.CreateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}
	if body.ResourceID != "" && !isUUID(body.ResourceID) {
		writeServiceError(w, model.ErrInvalidResourceID)
		return
	}

	created, err := h.tokens.CreateToken(ctx, body.ToModel(claims.AdminUUID))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.CreateTokenResponse{Data: *created})
}

// GetToken : GET /api/admin/tokens/{id}
func (h *TokenHandler) GetToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		writeServiceError(w, model.ErrTokenNotFound)
		return
	}

	info, err := h.tokens.GetToken(ctx, id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if info == nil {
		util.HandleError(w, model.ErrTokenNotFound.Error(), http.StatusNotFound)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TokenResponse{Data: *info})
}

// ListTokens : GET /api/admin/tokens?scope=&resource_id=
func (h *TokenHandler) ListTokens(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	scope := model.TokenScope(r.URL.Query().Get("scope"))
	resourceID := r.URL.Query().Get("resource_id")
	if resourceID == "" {
		writeServiceError(w, model.ErrMissingResource)
		return
	}
	if !isUUID(resourceID) {
		writeServiceError(w, model.ErrInvalidResourceID)
		return
	}

	infos, err := h.tokens.GetTokensByResource(ctx, scope, resourceID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var response requestresponse.ListTokensResponse
	response.Data.Tokens = infos
	response.Count = len(infos)
	util.WriteJSON(w, http.StatusOK, response)
}

// RevokeToken : повторный отзыв тоже 200
func (h *TokenHandler) RevokeToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		writeServiceError(w, model.ErrTokenNotFound)
		return
	}

	if err := h.tokens.RevokeToken(ctx, id); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "токен отозван"})
}

// RotateToken godoc
// @Summary Ротация токена: выпускается новый с теми же параметрами, старый отзывается
// @Description Истёкший токен ротируется только с новым expires_at
// @Tags Tokens
// @Accept json
// @Produce json
// @Param id path string true "ID токена"
// @Param request body requestresponse.RotateTokenRequest false "Новый срок действия"
// @Success 201 {object} requestresponse.CreateTokenResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 404 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/tokens/{id}/rotate [post]
func (h *TokenHandler) RotateToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	claims, err := security.GetClaimsFromContext(ctx)
	if err != nil {
		util.HandleError(w, err.Error(), http.StatusUnauthorized)
		return
	}

	id := chi.URLParam(r, "id")
	if !isUUID(id) {
		writeServiceError(w, model.ErrTokenNotFound)
		return
	}

	var body requestresponse.RotateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	created, err := h.tokens.RotateToken(ctx, id, claims.AdminUUID, body.ExpiresAt)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.CreateTokenResponse{Data: *created})
}

// IssueSubjectToken : POST /api/admin/subjects/{subject_id}/token, rotate=true отзывает прежние
func (h *TokenHandler) IssueSubjectToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var body requestresponse.SubjectTokenRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
			return
		}
	}

	subjectID := chi.URLParam(r, "subject_id")
	if !isUUID(subjectID) {
		writeServiceError(w, model.ErrInvalidResourceID)
		return
	}

	var generated *model.GeneratedSubjectToken
	var err error
	if body.Rotate {
		generated, err = h.subjects.RotateToken(ctx, subjectID, body.ExpiresAt)
	} else {
		generated, err = h.subjects.GenerateToken(ctx, subjectID, body.ExpiresAt)
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.SubjectTokenResponse{Data: *generated})
}

// ValidateToken godoc
// @Summary Проверка токена доступа
// @Description Каждая успешная проверка увеличивает счётчик использований
// @Tags Access
// @Accept json
// @Produce json
// @Param request body requestresponse.ValidateTokenRequest true "Токен"
// @Success 200 {object} requestresponse.ValidateTokenResponse
// @Router /api/access/validate [post]
func (h *TokenHandler) ValidateToken(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var body requestresponse.ValidateTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || strings.TrimSpace(body.Token) == "" {
		util.HandleError(w, "токен обязателен", http.StatusBadRequest)
		return
	}

	result := h.tokens.ValidateToken(ctx, body.Token)
	h.accessLog.Enqueue(accessEntry(r, body.Token, "validate", start, result))

	status := http.StatusOK
	if !result.IsValid {
		status = http.StatusUnauthorized
	}
	util.WriteJSON(w, status, requestresponse.ValidateTokenResponse{Data: result})
}

// ValidateFamilyToken : GET /api/family/{token}
func (h *TokenHandler) ValidateFamilyToken(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	result := h.subjects.ValidateToken(ctx, chi.URLParam(r, "token"))

	status := http.StatusOK
	if !result.IsValid {
		status = http.StatusUnauthorized
	}
	util.WriteJSON(w, status, requestresponse.ValidateTokenResponse{Data: result})
}

func accessEntry(r *http.Request, token, action string, start time.Time, result model.TokenValidationResult) model.AccessLogEntry {
	return model.AccessLogEntry{
		Token:          token,
		Action:         action,
		IP:             clientIP(r),
		UserAgent:      r.UserAgent(),
		Path:           r.URL.Path,
		ResponseTimeMs: int(time.Since(start).Milliseconds()),
		Success:        result.IsValid,
		Note:           result.Reason,
	}
}

func isUUID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// clientIP : RemoteAddr уже переписан middleware.RealIP, порт отрезаем
func clientIP(r *http.Request) string {
	addr := r.RemoteAddr
	if i := strings.LastIndex(addr, ":"); i > 0 && !strings.HasSuffix(addr, "]") {
		return addr[:i]
	}
	return addr
}
