// Package crop holds the geometry used to preview a wallpaper against a device
// crop surface and to turn the user's pan/zoom state into a crop rectangle.
//
// Three coordinate spaces are involved: image space (source pixels), zoomed space
// (source pixels multiplied by the current zoom) and screen space. Everything here
// is a pure function of its arguments.
package crop

import (
	"fmt"
	"image"
	"math"
)

// DefaultMaxZoom is the interactive zoom ceiling unless the default zoom is larger.
const DefaultMaxZoom = 8.0

// Size is an integer width/height pair.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// String returns the size as WxH.
func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// Scale returns the size multiplied by f, rounded to the nearest pixel.
func (s Size) Scale(f float64) Size {
	return Size{
		Width:  int(math.Round(float64(s.Width) * f)),
		Height: int(math.Round(float64(s.Height) * f)),
	}
}

// Valid reports whether both dimensions are positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// PointF is a point in image space.
type PointF struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoomRange is the permitted interactive zoom range plus the zoom shown on first load.
type ZoomRange struct {
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	Default float64 `json:"default"`
}

// Clamp bounds z to the range.
func (r ZoomRange) Clamp(z float64) float64 {
	return math.Max(r.Min, math.Min(r.Max, z))
}

// View is a zoom scalar plus the image-space point shown at the center of the screen.
type View struct {
	Zoom   float64   `json:"zoom"`
	Center PointF    `json:"center"`
	Range  ZoomRange `json:"range"`
}

// MinZoomToCover returns the smallest uniform scale at which target fully covers container.
func MinZoomToCover(target, container Size) float64 {
	return math.Max(
		float64(container.Width)/float64(target.Width),
		float64(container.Height)/float64(target.Height),
	)
}

// CenterOffset returns the position of inner within outer. Horizontally it is either
// centered or aligned to the leading edge (the right edge when rtl is set); vertically
// it is always centered. Centering halves the difference, truncating toward zero. A
// negative offset means inner overhangs outer.
func CenterOffset(outer, inner Size, alignStart, rtl bool) image.Point {
	var pos image.Point
	switch {
	case alignStart && rtl:
		pos.X = outer.Width - inner.Width
	case alignStart:
		pos.X = 0
	default:
		pos.X = (outer.Width - inner.Width) / 2
	}
	pos.Y = (outer.Height - inner.Height) / 2
	return pos
}

// DownsampleZoom snaps a zoom level to 0.5^n so the backing bitmap is sampled at full
// detail, every second pixel, every fourth, and so on. Zooms above 1 map to 1.
func DownsampleZoom(actualZoom float64) float64 {
	if actualZoom > 1 {
		return 1.0
	}
	lower := 1.0 / float64(roundUpToPower2(int(math.Ceil(1/actualZoom))))
	upper := lower * 2
	return nearestValue(actualZoom, lower, upper)
}

// InitialView returns the zoom and center to show when the image is first loaded: the
// image covers the crop surface, the crop surface is aligned to the screen's leading
// edge and the image is centered within the crop surface.
func InitialView(img, screen, surface Size, rtl bool) View {
	defaultZoom := MinZoomToCover(img, surface)
	zr := ZoomRange{
		Min:     MinZoomToCover(img, screen),
		Max:     math.Max(DefaultMaxZoom, defaultZoom),
		Default: defaultZoom,
	}

	zoomed := img.Scale(defaultZoom)
	screenToSurface := CenterOffset(surface, screen, true, rtl)
	surfaceToImage := CenterOffset(zoomed, surface, false, rtl)

	// Screen center relative to image center, in zoomed pixels.
	offX := float64(surfaceToImage.X+screenToSurface.X) + float64(screen.Width-zoomed.Width)/2
	offY := float64(surfaceToImage.Y+screenToSurface.Y) + float64(screen.Height-zoomed.Height)/2

	center := PointF{
		X: float64(img.Width)/2 + offX/defaultZoom,
		Y: float64(img.Height)/2 + offY/defaultZoom,
	}
	return View{Zoom: defaultZoom, Center: center, Range: zr}
}

// CropRect turns the current zoom and visible file rect into the rectangle to hand to the
// wallpaper persister. The result is in zoomed space and lies within the zoomed image
// bounds. It starts as the visible screen and grows by the crop surface's extra width on
// the trailing edge (the left edge when rtl is set) and by an equal amount on top and
// bottom, limited by whichever side has less room.
func CropRect(img, screen, surface Size, zoom float64, visible image.Rectangle, rtl bool) image.Rectangle {
	bounds := image.Rect(0, 0, int(float64(img.Width)*zoom), int(float64(img.Height)*zoom))
	scrollX := int(float64(visible.Min.X) * zoom)
	scrollY := int(float64(visible.Min.Y) * zoom)

	r := image.Rect(scrollX, scrollY, scrollX+screen.Width, scrollY+screen.Height).Intersect(bounds)

	extraWidth := surface.Width - screen.Width
	extraHeight := int(float64(surface.Height-screen.Height) / 2)

	if rtl {
		r.Min.X = max(r.Min.X-extraWidth, bounds.Min.X)
	} else {
		r.Max.X = min(r.Max.X+extraWidth, bounds.Max.X)
	}

	top := r.Min.Y - max(bounds.Min.Y, r.Min.Y-extraHeight)
	bottom := min(bounds.Max.Y, r.Max.Y+extraHeight) - r.Max.Y
	extra := min(top, bottom)
	r.Min.Y -= extra
	r.Max.Y += extra

	return r
}

// ToImageSpace converts a zoomed-space rectangle back to source pixels.
func ToImageSpace(r image.Rectangle, zoom float64) image.Rectangle {
	return image.Rect(
		int(math.Floor(float64(r.Min.X)/zoom)),
		int(math.Floor(float64(r.Min.Y)/zoom)),
		int(math.Ceil(float64(r.Max.X)/zoom)),
		int(math.Ceil(float64(r.Max.Y)/zoom)),
	)
}

// VisibleRect returns the image-space rectangle shown on a screen for the given view,
// clipped to the image.
func VisibleRect(img, screen Size, v View) image.Rectangle {
	halfW := float64(screen.Width) / v.Zoom / 2
	halfH := float64(screen.Height) / v.Zoom / 2
	r := image.Rect(
		int(math.Round(v.Center.X-halfW)),
		int(math.Round(v.Center.Y-halfH)),
		int(math.Round(v.Center.X+halfW)),
		int(math.Round(v.Center.Y+halfH)),
	)
	return r.Intersect(image.Rect(0, 0, img.Width, img.Height))
}

// ClampCenter keeps the center far enough from the image edges that the screen stays
// covered at zoom. On an axis where the image is smaller than the screen the center
// snaps to the middle.
func ClampCenter(img, screen Size, zoom float64, c PointF) PointF {
	return PointF{
		X: clampAxis(c.X, float64(img.Width), float64(screen.Width)/zoom),
		Y: clampAxis(c.Y, float64(img.Height), float64(screen.Height)/zoom),
	}
}

func clampAxis(c, length, visible float64) float64 {
	if visible >= length {
		return length / 2
	}
	half := visible / 2
	return math.Max(half, math.Min(length-half, c))
}

func roundUpToPower2(value int) int {
	if value <= 1 {
		return 1
	}
	p := 1
	for p < value {
		p <<= 1
	}
	return p
}

func nearestValue(value, a, b float64) float64 {
	if math.Abs(a-value) < math.Abs(b-value) {
		return a
	}
	return b
}
