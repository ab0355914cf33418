package service

import "errors"

var (
	ErrInvalidSettings    = errors.New("неверные настройки")
	ErrInvalidPreviewName = errors.New("неверное имя превью")
)
