package util

import (
	"crypto/rand"
	"encoding/hex"
	"math/big"
)

const lowerAlphanumeric = "abcdefghijklmnopqrstuvwxyz0123456789"

// RandomHex : генерирует случайную hex-строку длиной length символов
func RandomHex(length int) (string, error) {
	byteLength := (length + 1) / 2 // т.к. hex кодирует 1 байт = 2 символа
	bytes := make([]byte, byteLength)

	_, err := rand.Read(bytes)
	if err != nil {
		return "", LogError("[util] не удалось получить случайные байты", err)
	}

	return hex.EncodeToString(bytes)[:length], nil
}

// RandomAlphanumeric : случайная строка из [a-z0-9] без смещения по модулю
func RandomAlphanumeric(length int) (string, error) {
	max := big.NewInt(int64(len(lowerAlphanumeric)))
	out := make([]byte, length)
	for i := range out {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", LogError("[util] не удалось сгенерировать случайный суффикс", err)
		}
		out[i] = lowerAlphanumeric[n.Int64()]
	}
	return string(out), nil
}

// RandomBytes : n криптографически случайных байт
func RandomBytes(n int) ([]byte, error) {
	bytes := make([]byte, n)
	if _, err := rand.Read(bytes); err != nil {
		return nil, LogError("[util] не удалось получить случайные байты", err)
	}
	return bytes, nil
}
