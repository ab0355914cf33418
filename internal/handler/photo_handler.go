package handler

import (
	"context"
	"errors"
	"github.com/go-chi/chi/v5"
	"io"
	"lookescolar-server/internal/model"
	requestresponse "lookescolar-server/internal/model/requestresponse"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"net/http"
	"time"
)

const uploadFormField = "files"

type PhotoHandler struct {
	photos         ports.PhotoService
	tokens         ports.AccessTokenService
	accessLog      ports.AccessLogQueue
	maxUploadBytes int64
	presignTTL     time.Duration
	timeout        time.Duration
}

func NewPhotoHandler(photos ports.PhotoService, tokens ports.AccessTokenService, accessLog ports.AccessLogQueue, maxUploadMB int, presignTTL, timeout time.Duration) *PhotoHandler {
	return &PhotoHandler{
		photos:         photos,
		tokens:         tokens,
		accessLog:      accessLog,
		maxUploadBytes: int64(maxUploadMB) << 20,
		presignTTL:     presignTTL,
		timeout:        timeout,
	}
}

// UploadPhotos godoc
// @Summary Пакетная загрузка фотографий события
// @Description Каждый файл обрабатывается независимо: ошибки и дубликаты возвращаются списками
// @Tags Photos
// @Accept multipart/form-data
// @Produce json
// @Param event_id path string true "ID события"
// @Param files formData file true "Фотографии"
// @Success 200 {object} requestresponse.UploadPhotosResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Failure 413 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/events/{event_id}/photos [post]
func (h *PhotoHandler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if r.ContentLength > h.maxUploadBytes {
		util.HandleError(w, "слишком большой объём загрузки", http.StatusRequestEntityTooLarge)
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			util.HandleError(w, "слишком большой объём загрузки", http.StatusRequestEntityTooLarge)
			return
		}
		util.HandleError(w, "неверный формат multipart", http.StatusBadRequest)
		return
	}
	defer r.MultipartForm.RemoveAll()

	headers := r.MultipartForm.File[uploadFormField]
	if len(headers) == 0 {
		util.HandleError(w, "файлы не переданы", http.StatusBadRequest)
		return
	}

	files := make([]model.UploadFile, 0, len(headers))
	for _, header := range headers {
		file, err := header.Open()
		if err != nil {
			util.HandleError(w, "не удалось прочитать загруженный файл", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			util.HandleError(w, "не удалось прочитать загруженный файл", http.StatusBadRequest)
			return
		}
		files = append(files, model.UploadFile{Filename: header.Filename, Data: data})
	}

	result, err := h.photos.UploadPreviews(ctx, chi.URLParam(r, "event_id"), files)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.UploadPhotosResponse{Data: *result})
}

// GetPreview godoc
// @Summary Временная ссылка на превью по токену события
// @Tags Access
// @Produce json
// @Param token path string true "Токен доступа"
// @Param event_id path string true "ID события"
// @Param filename path string true "Имя превью"
// @Success 200 {object} requestresponse.PreviewURLResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Failure 403 {object} requestresponse.ErrorResponse
// @Router /api/access/{token}/events/{event_id}/photos/{filename} [get]
func (h *PhotoHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	token := chi.URLParam(r, "token")
	eventID := chi.URLParam(r, "event_id")

	result := h.tokens.ValidateToken(ctx, token)
	h.accessLog.Enqueue(accessEntry(r, token, "view_preview", start, result))
	if !result.IsValid {
		util.HandleError(w, result.Reason, http.StatusUnauthorized)
		return
	}
	if result.Scope != model.ScopeEvent || result.ResourceID != eventID {
		util.HandleError(w, "токен не даёт доступа к этому событию", http.StatusForbidden)
		return
	}

	url, err := h.photos.PreviewURL(ctx, eventID, chi.URLParam(r, "filename"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	var response requestresponse.PreviewURLResponse
	response.Data.URL = url
	response.Data.ExpiresIn = h.presignTTL.String()
	util.WriteJSON(w, http.StatusOK, response)
}

// DeletePreview : DELETE /api/admin/events/{event_id}/photos/{filename}
func (h *PhotoHandler) DeletePreview(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.photos.DeletePreview(ctx, chi.URLParam(r, "event_id"), chi.URLParam(r, "filename")); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "превью удалено"})
}
