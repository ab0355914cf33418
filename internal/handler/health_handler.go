package handler

import (
	"context"
	requestresponse "lookescolar-server/internal/model/requestresponse"
	"lookescolar-server/internal/util"
	"net/http"
	"time"
)

// Pinger : зависимость, доступность которой проверяет /healthz
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Health : 200 если БД отвечает, иначе 503
func Health(db Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := db.PingContext(ctx); err != nil {
			util.Logger.WithError(err).Warn("проверка здоровья не прошла")
			util.HandleError(w, "БД недоступна", http.StatusServiceUnavailable)
			return
		}
		util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "ok"})
	}
}
