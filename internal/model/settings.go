package model

import (
	"strings"
	"time"
)

type WatermarkPosition string

const (
	PositionCenter      WatermarkPosition = "center"
	PositionTopLeft     WatermarkPosition = "top-left"
	PositionTopRight    WatermarkPosition = "top-right"
	PositionBottomLeft  WatermarkPosition = "bottom-left"
	PositionBottomRight WatermarkPosition = "bottom-right"
)

func (p WatermarkPosition) Valid() bool {
	switch p {
	case PositionCenter, PositionTopLeft, PositionTopRight, PositionBottomLeft, PositionBottomRight:
		return true
	}
	return false
}

var fontSizes = map[string]float64{
	"small":  24,
	"medium": 36,
	"large":  48,
}

// WatermarkSettings : настройки водяного знака в том виде, в каком они лежат в app_settings
type WatermarkSettings struct {
	Text     string            `json:"text"`
	Opacity  int               `json:"opacity"`
	FontSize string            `json:"font_size"`
	Position WatermarkPosition `json:"position"`
}

// WatermarkConfig : нормализованная конфигурация для пайплайна
type WatermarkConfig struct {
	Text     string
	Opacity  float64
	FontSize float64
	Position WatermarkPosition
}

func DefaultWatermarkSettings() WatermarkSettings {
	return WatermarkSettings{
		Text:     "LookEscolar",
		Opacity:  50,
		FontSize: "medium",
		Position: PositionCenter,
	}
}

// Normalize : opacity 0-100 -> 0-1, категория шрифта -> пиксели
func (s WatermarkSettings) Normalize() WatermarkConfig {
	opacity := s.Opacity
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 100 {
		opacity = 100
	}

	size, ok := fontSizes[strings.ToLower(s.FontSize)]
	if !ok {
		size = fontSizes["medium"]
	}

	position := s.Position
	if !position.Valid() {
		position = PositionCenter
	}

	return WatermarkConfig{
		Text:     s.Text,
		Opacity:  float64(opacity) / 100,
		FontSize: size,
		Position: position,
	}
}

// ProcessingSettings : параметры ресайза и сжатия превью
type ProcessingSettings struct {
	MaxDimension int `json:"max_dimension"`
	Quality      int `json:"quality"`
}

// TenantFeatures : флаги функций арендатора
type TenantFeatures struct {
	TenantID  string          `json:"tenant_id"`
	Flags     map[string]bool `json:"flags"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Enabled : выключенный или неизвестный флаг даёт false
func (f TenantFeatures) Enabled(flag string) bool {
	return f.Flags[flag]
}
