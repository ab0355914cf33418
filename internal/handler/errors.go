package handler

import (
	"errors"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/service"
	"lookescolar-server/internal/util"
	"net/http"
)

// writeServiceError : ошибки проверки входных данных дают 400, отсутствие токена 404, остальное 500
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidScope),
		errors.Is(err, model.ErrMissingResource),
		errors.Is(err, model.ErrInvalidResourceID),
		errors.Is(err, model.ErrInvalidExpiry),
		errors.Is(err, model.ErrTokenExpired),
		errors.Is(err, model.ErrMissingCreator),
		errors.Is(err, model.ErrInvalidAccessLevel),
		errors.Is(err, model.ErrInvalidMaxUses),
		errors.Is(err, service.ErrInvalidSettings),
		errors.Is(err, service.ErrInvalidPreviewName):
		util.HandleError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, model.ErrTokenNotFound):
		util.HandleError(w, err.Error(), http.StatusNotFound)
	default:
		util.Logger.WithError(err).Error("ошибка обработки запроса")
		util.HandleError(w, "внутренняя ошибка сервера", http.StatusInternalServerError)
	}
}
