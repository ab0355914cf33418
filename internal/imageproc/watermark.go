package imageproc

import (
	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
	"image"
	"image/color"
	"lookescolar-server/internal/model"
)

const (
	cornerInset  = 20
	shadowOffset = 2
	tileAngle    = 45
)

var (
	textColor   = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
	shadowColor = color.NRGBA{R: 0, G: 0, B: 0, A: 140}
)

// applyWatermark : center даёт диагональную сетку по всему кадру, углы дают
// одну надпись с отступом 20px
func (p *Pipeline) applyWatermark(canvas *image.NRGBA, wm model.WatermarkConfig) *image.NRGBA {
	if wm.Text == "" || wm.Opacity <= 0 {
		return canvas
	}

	fontSize := wm.FontSize
	if fontSize <= 0 {
		fontSize = 36
	}

	label := p.renderLabel(wm.Text, fontSize)
	bounds := canvas.Bounds()

	var layer *image.NRGBA
	if wm.Position == model.PositionCenter || !wm.Position.Valid() {
		layer = tiledLayer(label, bounds.Dx(), bounds.Dy())
	} else {
		layer = imaging.New(bounds.Dx(), bounds.Dy(), color.Transparent)
		layer = imaging.Overlay(layer, label, cornerPoint(wm.Position, label.Bounds(), bounds), 1.0)
	}

	return imaging.Overlay(canvas, layer, image.Pt(0, 0), wm.Opacity)
}

// renderLabel : текст с тенью на прозрачном фоне, ровно по размеру надписи
func (p *Pipeline) renderLabel(text string, size float64) *image.NRGBA {
	face := p.face(size)

	p.mu.Lock()
	defer p.mu.Unlock()

	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	descent := metrics.Descent.Ceil()
	width := font.MeasureString(face, text).Ceil()

	label := image.NewNRGBA(image.Rect(0, 0, width+shadowOffset, ascent+descent+shadowOffset))

	drawer := &font.Drawer{
		Dst:  label,
		Src:  image.NewUniform(shadowColor),
		Face: face,
		Dot:  fixed.P(shadowOffset, ascent+shadowOffset),
	}
	drawer.DrawString(text)

	drawer.Src = image.NewUniform(textColor)
	drawer.Dot = fixed.P(0, ascent)
	drawer.DrawString(text)

	return label
}

// tiledLayer : плитка размером в половину кадра, в центре каждой повернутая на -45° надпись
func tiledLayer(label *image.NRGBA, width, height int) *image.NRGBA {
	rotated := imaging.Rotate(label, tileAngle, color.Transparent)
	rw, rh := rotated.Bounds().Dx(), rotated.Bounds().Dy()

	tileW, tileH := atLeastOne(width/2), atLeastOne(height/2)

	layer := imaging.New(width, height, color.Transparent)
	for y := 0; y < height; y += tileH {
		for x := 0; x < width; x += tileW {
			center := image.Pt(x+tileW/2, y+tileH/2)
			layer = imaging.Overlay(layer, rotated, image.Pt(center.X-rw/2, center.Y-rh/2), 1.0)
		}
	}
	return layer
}

// cornerPoint : левые позиции выравниваются по началу, правые по концу строки
func cornerPoint(position model.WatermarkPosition, label, canvas image.Rectangle) image.Point {
	x := cornerInset
	y := cornerInset

	switch position {
	case model.PositionTopRight, model.PositionBottomRight:
		x = canvas.Dx() - cornerInset - label.Dx()
	}
	switch position {
	case model.PositionBottomLeft, model.PositionBottomRight:
		y = canvas.Dy() - cornerInset - label.Dy()
	}
	return image.Pt(x, y)
}
