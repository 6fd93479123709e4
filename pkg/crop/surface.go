package crop

// wallpaperScreensSpan is how many screen widths a phone launcher scrolls across.
const wallpaperScreensSpan = 2.0

// Aspect ratios and travel ratios used to interpolate the crop surface width on
// large screens.
const (
	aspectRatioLandscape = 16.0 / 10.0
	aspectRatioPortrait  = 10.0 / 16.0

	widthToScreenRatioLandscape = 1.5
	widthToScreenRatioPortrait  = 1.2
)

// Display describes the range of sizes the display can take across rotations.
type Display struct {
	Real Size // Physical size in the current orientation
}

// MaxDim returns the longer side of the display.
func (d Display) MaxDim() int {
	return max(d.Real.Width, d.Real.Height)
}

// MinDim returns the shorter side of the display.
func (d Display) MinDim() int {
	return min(d.Real.Width, d.Real.Height)
}

// DefaultCropSurfaceSize returns the virtual canvas a launcher scrolls the wallpaper
// across. Its height is the display's longer side; its width adds parallax margin:
// two screens wide on small displays, a ratio interpolated from the aspect on large ones.
func DefaultCropSurfaceSize(d Display, largeScreen bool) Size {
	maxDim, minDim := d.MaxDim(), d.MinDim()

	if largeScreen {
		return Size{
			Width:  int(float64(maxDim) * travelToScreenWidthRatio(maxDim, minDim)),
			Height: maxDim,
		}
	}
	return Size{
		Width:  max(int(float64(minDim)*wallpaperScreensSpan), maxDim),
		Height: maxDim,
	}
}

// travelToScreenWidthRatio is linear in the aspect ratio: 1.5 at 16:10 and 1.2 at 10:16.
func travelToScreenWidthRatio(width, height int) float64 {
	aspect := float64(width) / float64(height)
	x := (widthToScreenRatioLandscape - widthToScreenRatioPortrait) /
		(aspectRatioLandscape - aspectRatioPortrait)
	y := widthToScreenRatioPortrait - x*aspectRatioPortrait
	return x*aspect + y
}
