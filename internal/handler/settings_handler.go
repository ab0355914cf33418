package handler

import (
	"context"
	"encoding/json"
	"github.com/go-chi/chi/v5"
	"lookescolar-server/internal/model"
	requestresponse "lookescolar-server/internal/model/requestresponse"
	"lookescolar-server/internal/ports"
	"lookescolar-server/internal/util"
	"net/http"
	"time"
)

type SettingsHandler struct {
	settings ports.SettingsService
	features ports.FeatureFlagService
	timeout  time.Duration
}

func NewSettingsHandler(settings ports.SettingsService, features ports.FeatureFlagService, timeout time.Duration) *SettingsHandler {
	return &SettingsHandler{settings: settings, features: features, timeout: timeout}
}

// GetWatermark : GET /api/admin/settings/watermark
func (h *SettingsHandler) GetWatermark(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	settings, err := h.settings.Watermark(ctx)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.WatermarkSettingsResponse{Data: settings})
}

// UpdateWatermark godoc
// @Summary Изменение настроек водяного знака
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body model.WatermarkSettings true "Текст, прозрачность 0-100, размер и позиция"
// @Success 200 {object} requestresponse.WatermarkSettingsResponse
// @Failure 400 {object} requestresponse.ErrorResponse
// @Security ApiKeyAuth
// @Router /api/admin/settings/watermark [put]
func (h *SettingsHandler) UpdateWatermark(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var body model.WatermarkSettings
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	if err := h.settings.UpdateWatermark(ctx, body); err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.WatermarkSettingsResponse{Data: body})
}

func (h *SettingsHandler) GetFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	features, err := h.features.Get(ctx, chi.URLParam(r, "tenant_id"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TenantFeaturesResponse{Data: features})
}

// UpdateFeatures : полностью заменяет набор флагов арендатора
func (h *SettingsHandler) UpdateFeatures(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var body requestresponse.TenantFeaturesRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		util.HandleError(w, "неверный формат запроса", http.StatusBadRequest)
		return
	}

	features, err := h.features.Set(ctx, chi.URLParam(r, "tenant_id"), body.Flags)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.TenantFeaturesResponse{Data: features})
}
