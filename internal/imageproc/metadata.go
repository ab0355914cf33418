package imageproc

import (
	"bytes"
	"fmt"
	"github.com/disintegration/imaging"
	"image/png"
)

// StripImageMetadata : поворачивает кадр по EXIF-ориентации и перекодирует его
// без каких-либо метаданных (EXIF, IPTC, GPS). Все производные строятся из этого буфера.
func StripImageMetadata(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG, imaging.PNGCompressionLevel(png.BestSpeed)); err != nil {
		return nil, fmt.Errorf("не удалось перекодировать изображение: %w", err)
	}
	return buf.Bytes(), nil
}
