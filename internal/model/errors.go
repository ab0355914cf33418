package model

import "errors"

var (
	ErrInvalidScope       = errors.New("неизвестная область токена")
	ErrMissingResource    = errors.New("не указан id ресурса")
	ErrInvalidResourceID  = errors.New("id ресурса должен быть UUID")
	ErrMissingCreator     = errors.New("не указан создатель токена")
	ErrInvalidAccessLevel = errors.New("неизвестный уровень доступа")
	ErrInvalidMaxUses     = errors.New("max_uses должен быть больше нуля")
	ErrTokenNotFound      = errors.New("токен не найден")
	ErrTokenExpired       = errors.New("токен истёк, нужен новый expires_at")
	ErrInvalidExpiry      = errors.New("expires_at должен быть в будущем")
	ErrTokenCollision     = errors.New("could not generate unique token")
)
