package security

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// VerifyWebhookSignature : тело должно быть валидным JSON, подпись это hex HMAC-SHA256
// от тела. Сравнение за постоянное время.
func VerifyWebhookSignature(body []byte, signature, secret string) bool {
	if !json.Valid(body) || secret == "" {
		return false
	}

	given, err := hex.DecodeString(strings.TrimSpace(signature))
	if err != nil || len(given) == 0 {
		return false
	}

	return hmac.Equal(given, SignWebhook(body, secret))
}

// SignWebhook : сырой HMAC-SHA256
func SignWebhook(body []byte, secret string) []byte {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return mac.Sum(nil)
}
