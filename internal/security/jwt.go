package security

import (
	"context"
	"fmt"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"lookescolar-server/config"
	"lookescolar-server/internal/util"
	"net/http"
	"strings"
	"time"
)

type contextKey string

const (
	AdminContextKey contextKey = "admin"
)

// Claims : утверждения токена администратора. AdminUUID попадает в created_by
type Claims struct {
	AdminUUID string `json:"admin_uuid"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
	now func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{JWTConfig: cfg, now: time.Now}
}

// IssueToken : выпускает access-токен администратора (используется CLI и тестами)
func (service *JWTService) IssueToken(adminUUID string) (string, error) {
	if _, err := uuid.Parse(adminUUID); err != nil {
		return "", util.LogError("[JWTService] id администратора не является UUID", err)
	}

	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", util.LogError("[JWTService] не удалось разобрать TTL токена", err)
	}

	now := service.now()
	claims := Claims{
		AdminUUID: adminUUID,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    service.Issuer,
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	signed, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", util.LogError("[JWTService] не удалось подписать токен", err)
	}
	return signed, nil
}

func (service *JWTService) ValidateJWT(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	options := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS512.Alg()}),
		jwt.WithTimeFunc(service.now),
	}
	if service.Issuer != "" {
		options = append(options, jwt.WithIssuer(service.Issuer))
	}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(service.SecretKey), nil
	}, options...)
	if err != nil {
		return nil, fmt.Errorf("неверный токен: %w", err)
	}
	if !jwtToken.Valid || claims.AdminUUID == "" {
		return nil, fmt.Errorf("неверный токен")
	}

	return claims, nil
}

// JWTMiddleware : пропускает только запросы с валидным токеном администратора
func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(writer, "отсутствует bearer токен", http.StatusUnauthorized)
				return
			}

			claims, err := jwtService.ValidateJWT(strings.TrimPrefix(authorizationHeader, "Bearer "))
			if err != nil {
				util.Logger.WithError(err).WithField("path", request.URL.Path).Warn("токен администратора отклонён")
				util.HandleError(writer, "неверный токен", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), AdminContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(AdminContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("администратор не авторизован")
	}
	return claims, nil
}

// WithClaims : кладёт утверждения в контекст, нужен обработчикам в тестах
func WithClaims(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, AdminContextKey, claims)
}
