package wallpaper

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/stretchr/testify/require"
)

func createTestImage(width, height int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), &image.Uniform{color.RGBA{255, 0, 0, 255}}, image.Point{}, draw.Src)
	return img
}

// writeTestPNG writes a solid image with a white square near the right edge.
func writeTestPNG(t *testing.T, width, height int) string {
	t.Helper()
	img := createTestImage(width, height).(*image.RGBA)
	spot := image.Rect(width*3/4, height/3, width*3/4+width/10, height/3+height/5)
	draw.Draw(img, spot, &image.Uniform{color.White}, image.Point{}, draw.Src)

	path := filepath.Join(t.TempDir(), "sample.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

// phone is a 100x200 portrait display whose crop surface is 200x200.
var phone = crop.Display{Real: crop.Size{Width: 100, Height: 200}}

func newTestAppConfig() *config.AppConfig {
	return config.NewAppConfig(newMemPrefs())
}
