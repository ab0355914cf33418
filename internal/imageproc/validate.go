package imageproc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	_ "github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
)

const (
	MinDimension = 100
	MaxDimension = 10000

	defaultDensity = 72
)

var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
	"gif":  true,
	"tiff": true,
}

// ValidationResult : итог проверки загруженного файла до любой обработки
type ValidationResult struct {
	Valid  bool
	Error  string
	Width  int
	Height int
	Format string
}

// ValidateImageSecurity : читает только заголовок изображения и отклоняет
// файлы неподходящего размера, формата или с битой плотностью пикселей.
// Отказ здесь окончательный, дальше файл не обрабатывается.
func ValidateImageSecurity(data []byte) ValidationResult {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return invalid(fmt.Sprintf("image validation failed: %v", err))
	}

	result := ValidationResult{Width: cfg.Width, Height: cfg.Height, Format: format}

	if cfg.Width <= 0 || cfg.Height <= 0 {
		return withError(result, "could not determine dimensions")
	}
	if cfg.Width < MinDimension || cfg.Height < MinDimension {
		return withError(result, fmt.Sprintf("image too small: %dx%d, minimum is %dpx", cfg.Width, cfg.Height, MinDimension))
	}
	if cfg.Width > MaxDimension || cfg.Height > MaxDimension {
		return withError(result, fmt.Sprintf("image too large: %dx%d, maximum is %dpx", cfg.Width, cfg.Height, MaxDimension))
	}
	if !allowedFormats[format] {
		return withError(result, fmt.Sprintf("invalid format: %s", format))
	}
	if density := pixelDensity(data, format); density < 1 {
		return withError(result, "corrupt image: pixel density below 1")
	}

	result.Valid = true
	return result
}

func invalid(message string) ValidationResult {
	return ValidationResult{Error: message}
}

func withError(result ValidationResult, message string) ValidationResult {
	result.Valid = false
	result.Error = message
	return result
}

// pixelDensity : плотность в DPI из JFIF APP0 или PNG pHYs, 72 если не указана
func pixelDensity(data []byte, format string) float64 {
	switch format {
	case "jpeg":
		if d, ok := jfifDensity(data); ok {
			return d
		}
	case "png":
		if d, ok := pngDensity(data); ok {
			return d
		}
	}
	return defaultDensity
}

func jfifDensity(data []byte) (float64, bool) {
	if len(data) < 4 || data[0] != 0xFF || data[1] != 0xD8 {
		return 0, false
	}

	pos := 2
	for pos+4 <= len(data) {
		if data[pos] != 0xFF {
			return 0, false
		}
		marker := data[pos+1]
		// SOS или EOI: дальше идут данные скана
		if marker == 0xDA || marker == 0xD9 {
			return 0, false
		}
		length := int(binary.BigEndian.Uint16(data[pos+2 : pos+4]))
		if length < 2 || pos+2+length > len(data) {
			return 0, false
		}
		segment := data[pos+4 : pos+2+length]

		if marker == 0xE0 && len(segment) >= 12 && bytes.Equal(segment[:5], []byte("JFIF\x00")) {
			units := segment[7]
			x := float64(binary.BigEndian.Uint16(segment[8:10]))
			y := float64(binary.BigEndian.Uint16(segment[10:12]))
			density := minFloat(x, y)
			if units == 2 {
				density *= 2.54
			}
			return density, true
		}
		pos += 2 + length
	}
	return 0, false
}

func pngDensity(data []byte) (float64, bool) {
	const signatureLength = 8
	pos := signatureLength
	for pos+8 <= len(data) {
		length := int(binary.BigEndian.Uint32(data[pos : pos+4]))
		kind := string(data[pos+4 : pos+8])
		if length < 0 || pos+12+length > len(data) {
			return 0, false
		}
		if kind == "pHYs" && length >= 9 {
			chunk := data[pos+8 : pos+8+length]
			x := float64(binary.BigEndian.Uint32(chunk[0:4]))
			y := float64(binary.BigEndian.Uint32(chunk[4:8]))
			density := minFloat(x, y)
			if chunk[8] == 1 {
				density *= 0.0254
			}
			return density, true
		}
		if kind == "IDAT" || kind == "IEND" {
			return 0, false
		}
		pos += 12 + length
	}
	return 0, false
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
