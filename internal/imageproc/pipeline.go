package imageproc

import (
	"bytes"
	"fmt"
	"github.com/disintegration/imaging"
	"github.com/golang/freetype/truetype"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"image"
	"image/color"
	"lookescolar-server/internal/model"
	"lookescolar-server/internal/util"
	"sync"
)

const (
	DefaultMaxDimension = 1600
	DefaultQuality      = 72

	outputFormat    = "jpeg"
	outputExtension = ".jpg"
	filenameLength  = 16
)

// Options : параметры ресайза и сжатия одного прохода
type Options struct {
	MaxDimension int
	Quality      int
}

func DefaultOptions() Options {
	return Options{MaxDimension: DefaultMaxDimension, Quality: DefaultQuality}
}

func (o Options) normalized() Options {
	if o.MaxDimension <= 0 {
		o.MaxDimension = DefaultMaxDimension
	}
	if o.Quality <= 0 || o.Quality > 100 {
		o.Quality = DefaultQuality
	}
	return o
}

// Pipeline : держит распарсенный шрифт водяного знака и кэш начертаний по размеру
type Pipeline struct {
	font   *truetype.Font
	logger logrus.FieldLogger

	mu    sync.Mutex
	faces map[float64]font.Face
}

func NewPipeline(logger logrus.FieldLogger) (*Pipeline, error) {
	parsed, err := truetype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("не удалось разобрать шрифт водяного знака: %w", err)
	}
	if logger == nil {
		logger = util.Logger
	}

	return &Pipeline{
		font:   parsed,
		logger: logger.WithField("component", "imageproc"),
		faces:  make(map[float64]font.Face),
	}, nil
}

// ProcessImageWithWatermark : ресайз без увеличения, наложение водяного знака и
// сжатие в JPEG. Ошибки не перехватываются, решение принимает вызывающий.
func (p *Pipeline) ProcessImageWithWatermark(data []byte, wm model.WatermarkConfig, opts Options) (*model.ProcessedImage, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("не удалось декодировать изображение: %w", err)
	}
	return p.render(src, wm, opts)
}

func (p *Pipeline) render(src image.Image, wm model.WatermarkConfig, opts Options) (*model.ProcessedImage, error) {
	opts = opts.normalized()

	bounds := src.Bounds()
	width, height := TargetDimensions(bounds.Dx(), bounds.Dy(), opts.MaxDimension)

	var canvas *image.NRGBA
	if width == bounds.Dx() && height == bounds.Dy() {
		canvas = imaging.Clone(src)
	} else {
		canvas = imaging.Resize(src, width, height, imaging.Lanczos)
	}

	if !canvas.Opaque() {
		background := imaging.New(width, height, color.White)
		canvas = imaging.Overlay(background, canvas, image.Pt(0, 0), 1.0)
	}

	canvas = p.applyWatermark(canvas, wm)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, canvas, imaging.JPEG, imaging.JPEGQuality(opts.Quality)); err != nil {
		return nil, fmt.Errorf("не удалось закодировать изображение: %w", err)
	}

	name, err := util.RandomHex(filenameLength)
	if err != nil {
		return nil, err
	}

	return &model.ProcessedImage{
		Data:     buf.Bytes(),
		Width:    width,
		Height:   height,
		Size:     int64(buf.Len()),
		Format:   outputFormat,
		Filename: name + outputExtension,
	}, nil
}

// TargetDimensions : если одна из сторон больше maxDimension, длинная сторона
// становится равной maxDimension с сохранением пропорций. Увеличения не бывает.
func TargetDimensions(width, height, maxDimension int) (int, int) {
	if width <= maxDimension && height <= maxDimension {
		return width, height
	}

	if width >= height {
		scaled := (height*maxDimension + width/2) / width
		return maxDimension, atLeastOne(scaled)
	}
	scaled := (width*maxDimension + height/2) / height
	return atLeastOne(scaled), maxDimension
}

func atLeastOne(v int) int {
	if v < 1 {
		return 1
	}
	return v
}

func (p *Pipeline) face(size float64) font.Face {
	p.mu.Lock()
	defer p.mu.Unlock()

	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = f
	return f
}
