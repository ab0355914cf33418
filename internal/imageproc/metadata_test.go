package imageproc_test

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image/color"
	"lookescolar-server/internal/imageproc"
	"testing"
)

func TestStripImageMetadata_AppliesOrientationAndDropsExif(t *testing.T) {
	source := withEXIFOrientation(encodeJPEG(t, solidImage(240, 120, color.White)), 6)
	require.Contains(t, string(source), "Exif")

	clean, err := imageproc.StripImageMetadata(source)
	require.NoError(t, err)

	assert.NotContains(t, string(clean), "Exif")
	img := decode(t, clean)
	assert.Equal(t, 120, img.Bounds().Dx())
	assert.Equal(t, 240, img.Bounds().Dy())
}

func TestStripImageMetadata_KeepsDimensionsWithoutOrientation(t *testing.T) {
	clean, err := imageproc.StripImageMetadata(encodePNG(t, solidImage(300, 150, color.Black)))
	require.NoError(t, err)

	img := decode(t, clean)
	assert.Equal(t, 300, img.Bounds().Dx())
	assert.Equal(t, 150, img.Bounds().Dy())
}

func TestStripImageMetadata_Garbage(t *testing.T) {
	_, err := imageproc.StripImageMetadata([]byte{0x00, 0x01, 0x02})
	assert.Error(t, err)
}
