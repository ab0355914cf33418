package imageproc_test

import (
	"bytes"
	"encoding/binary"
	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/require"
	"hash/crc32"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"lookescolar-server/internal/imageproc"
	"math/rand"
	"testing"
)

func newPipeline(t *testing.T) *imageproc.Pipeline {
	t.Helper()
	p, err := imageproc.NewPipeline(nil)
	require.NoError(t, err)
	return p
}

func solidImage(width, height int, c color.Color) *image.NRGBA {
	return imaging.New(width, height, c)
}

func noiseImage(width, height int, seed int64) *image.NRGBA {
	rnd := rand.New(rand.NewSource(seed))
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	rnd.Read(img.Pix)
	for i := 3; i < len(img.Pix); i += 4 {
		img.Pix[i] = 0xFF
	}
	return img
}

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 90}))
	return buf.Bytes()
}

func encodeBMP(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, imaging.Encode(&buf, img, imaging.BMP))
	return buf.Bytes()
}

// insertAfterSOI : вставляет JPEG-сегмент сразу после маркера SOI
func insertAfterSOI(data []byte, marker byte, payload []byte) []byte {
	segment := []byte{0xFF, marker, 0, 0}
	binary.BigEndian.PutUint16(segment[2:], uint16(len(payload)+2))
	segment = append(segment, payload...)

	out := append([]byte{}, data[:2]...)
	out = append(out, segment...)
	return append(out, data[2:]...)
}

func withJFIFDensity(data []byte, x, y uint16) []byte {
	payload := []byte("JFIF\x00")
	payload = append(payload, 1, 1, 1) // версия 1.1, единицы DPI
	payload = binary.BigEndian.AppendUint16(payload, x)
	payload = binary.BigEndian.AppendUint16(payload, y)
	payload = append(payload, 0, 0)
	return insertAfterSOI(data, 0xE0, payload)
}

func withEXIFOrientation(data []byte, orientation uint16) []byte {
	payload := []byte("Exif\x00\x00")
	tiff := []byte("II*\x00")
	tiff = binary.LittleEndian.AppendUint32(tiff, 8)
	tiff = binary.LittleEndian.AppendUint16(tiff, 1)
	tiff = binary.LittleEndian.AppendUint16(tiff, 0x0112)
	tiff = binary.LittleEndian.AppendUint16(tiff, 3)
	tiff = binary.LittleEndian.AppendUint32(tiff, 1)
	tiff = binary.LittleEndian.AppendUint16(tiff, orientation)
	tiff = binary.LittleEndian.AppendUint16(tiff, 0)
	tiff = binary.LittleEndian.AppendUint32(tiff, 0)
	payload = append(payload, tiff...)
	return insertAfterSOI(data, 0xE1, payload)
}

// withPHYs : вставляет чанк pHYs сразу после IHDR
func withPHYs(data []byte, ppuX, ppuY uint32, unit byte) []byte {
	const ihdrEnd = 8 + 4 + 4 + 13 + 4

	body := []byte("pHYs")
	body = binary.BigEndian.AppendUint32(body, ppuX)
	body = binary.BigEndian.AppendUint32(body, ppuY)
	body = append(body, unit)

	chunk := binary.BigEndian.AppendUint32(nil, 9)
	chunk = append(chunk, body...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(body))

	out := append([]byte{}, data[:ihdrEnd]...)
	out = append(out, chunk...)
	return append(out, data[ihdrEnd:]...)
}

func decode(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := imaging.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}
