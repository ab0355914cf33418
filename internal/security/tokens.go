package security

import (
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"golang.org/x/crypto/bcrypt"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/util"
)

const (
	// PrefixLength : длина видимого префикса вместе с буквой области, например "E_k3x9ab"
	PrefixLength = 8

	prefixRandomLength  = 6
	secretBytes         = 18
	saltBytes           = 16
	subjectTokenLength  = 32
	subjectPrefixLetter = "F_"
)

// TokenMaterial : всё, что нужно для записи токена. Plaintext в БД не попадает
type TokenMaterial struct {
	Plaintext string
	Prefix    string
	Salt      []byte
	Hash      []byte
}

// GenerateAccessToken : токен вида <prefix>_<secret>, хэш bcrypt(hex(salt) || token)
func GenerateAccessToken(scope model.TokenScope) (*TokenMaterial, error) {
	if !scope.Valid() {
		return nil, model.ErrInvalidScope
	}

	suffix, err := util.RandomAlphanumeric(prefixRandomLength)
	if err != nil {
		return nil, err
	}
	prefix := scope.PrefixLetter() + "_" + suffix

	secret, err := util.RandomBytes(secretBytes)
	if err != nil {
		return nil, err
	}
	plaintext := prefix + "_" + base64.RawURLEncoding.EncodeToString(secret)

	salt, err := util.RandomBytes(saltBytes)
	if err != nil {
		return nil, err
	}

	hash, err := HashToken(plaintext, salt)
	if err != nil {
		return nil, err
	}

	return &TokenMaterial{
		Plaintext: plaintext,
		Prefix:    prefix,
		Salt:      salt,
		Hash:      hash,
	}, nil
}

func HashToken(plaintext string, salt []byte) ([]byte, error) {
	hash, err := bcrypt.GenerateFromPassword(saltedInput(plaintext, salt), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("не удалось захэшировать токен: %w", err)
	}
	return hash, nil
}

// CompareToken : та же проверка, что делает crypt() в validate_access_token
func CompareToken(plaintext string, salt, hash []byte) bool {
	return bcrypt.CompareHashAndPassword(hash, saltedInput(plaintext, salt)) == nil
}

// TokenPrefix : видимая часть токена, по которой ищется строка в БД
func TokenPrefix(token string) string {
	if len(token) < PrefixLength {
		return token
	}
	return token[:PrefixLength]
}

func saltedInput(plaintext string, salt []byte) []byte {
	return []byte(hex.EncodeToString(salt) + plaintext)
}

// GenerateSubjectToken : 32 символа, "F_" + [a-z0-9]
func GenerateSubjectToken() (string, error) {
	body, err := util.RandomAlphanumeric(subjectTokenLength - len(subjectPrefixLetter))
	if err != nil {
		return "", err
	}
	return subjectPrefixLetter + body, nil
}

// SubjectDigest : детерминированный sha256, по нему ищется и проверяется на коллизии семейный токен
func SubjectDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
