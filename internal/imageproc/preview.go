package imageproc

import (
	"bytes"
	"fmt"
	"github.com/disintegration/imaging"
	"github.com/sirupsen/logrus"
	"lookescolar-server/internal/model"
)

// MaxPreviewBytes : потолок размера публичного превью
const MaxPreviewBytes = 300 * 1024

// Rung : ступень лестницы сжатия
type Rung struct {
	MaxDimension int
	Quality      int
}

// PreviewLadder : от мягкой ступени к самой жёсткой
var PreviewLadder = []Rung{
	{MaxDimension: 1200, Quality: 80},
	{MaxDimension: 1000, Quality: 75},
	{MaxDimension: 800, Quality: 70},
	{MaxDimension: 600, Quality: 65},
	{MaxDimension: 500, Quality: 60},
	{MaxDimension: 400, Quality: 50},
}

// PreviewFallback : принимается без проверки размера
var PreviewFallback = Rung{MaxDimension: 300, Quality: 40}

// ProcessImagePreview : берёт первую ступень, чей результат не больше
// MaxPreviewBytes. Если не прошла ни одна, кодирует в 300px/q40 и
// возвращает что получилось.
func (p *Pipeline) ProcessImagePreview(data []byte, wm model.WatermarkConfig) (*model.ProcessedImage, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}

	for i, rung := range PreviewLadder {
		out, err := p.render(src, wm, Options{MaxDimension: rung.MaxDimension, Quality: rung.Quality})
		if err != nil {
			return nil, err
		}
		if out.Size <= MaxPreviewBytes {
			p.logger.WithFields(logrus.Fields{
				"rung":    i,
				"size":    out.Size,
				"quality": rung.Quality,
			}).Debug("превью укладывается в лимит размера")
			return out, nil
		}
	}

	out, err := p.render(src, wm, Options{MaxDimension: PreviewFallback.MaxDimension, Quality: PreviewFallback.Quality})
	if err != nil {
		return nil, err
	}
	p.logger.WithField("size", out.Size).Warn("лестница качества исчерпана, используется максимальное сжатие")
	return out, nil
}
