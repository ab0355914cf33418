package handler

import (
	"io"
	requestresponse "lookescolar-server/internal/model/requestresponse"
	"lookescolar-server/internal/security"
	"lookescolar-server/internal/util"
	"net/http"
)

const (
	SignatureHeader     = "X-Signature"
	maxWebhookBodyBytes = 1 << 20
)

type WebhookHandler struct {
	secret string
}

func NewWebhookHandler(secret string) *WebhookHandler {
	return &WebhookHandler{secret: secret}
}

// PaymentWebhook godoc
// @Summary Уведомление платёжного провайдера
// @Description Тело подписано HMAC-SHA256, подпись в заголовке X-Signature (hex)
// @Tags Webhooks
// @Accept json
// @Produce json
// @Success 202 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse
// @Router /api/webhooks/payments [post]
func (h *WebhookHandler) PaymentWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxWebhookBodyBytes))
	if err != nil {
		util.HandleError(w, "не удалось прочитать тело запроса", http.StatusBadRequest)
		return
	}

	if !security.VerifyWebhookSignature(body, r.Header.Get(SignatureHeader), h.secret) {
		util.Logger.WithField("remote", clientIP(r)).Warn("вебхук отклонён: неверная подпись")
		util.HandleError(w, "неверная подпись", http.StatusUnauthorized)
		return
	}

	util.Logger.WithField("bytes", len(body)).Info("платёжный вебхук принят")
	util.WriteJSON(w, http.StatusAccepted, requestresponse.SuccessResponse{Message: "принято"})
}
