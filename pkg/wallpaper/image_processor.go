package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"github.com/disintegration/imaging"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/muesli/smartcrop"
)

// imageProcessor does the pixel work: scaling, cropping, encoding and smart centering.
type imageProcessor struct {
	resampler imaging.ResampleFilter
	tuning    TuningConfig
}

func newImageProcessor(tuning TuningConfig) *imageProcessor {
	return &imageProcessor{resampler: imaging.Lanczos, tuning: tuning}
}

// EncodeImage encodes an image to a byte slice with context awareness.
func (p *imageProcessor) EncodeImage(ctx context.Context, img image.Image, contentType string) ([]byte, error) {
	var buf bytes.Buffer
	var err error

	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	switch contentType {
	case "image/png":
		err = png.Encode(&buf, img)
	case "image/jpeg":
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: p.tuning.EncodingQuality})
	default:
		return nil, fmt.Errorf("unsupported format: %s", contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// checkBudget fails with ErrOutOfMemory when size is larger than the decode budget.
func (p *imageProcessor) checkBudget(size crop.Size) error {
	if p.tuning.MaxDecodePixels > 0 && size.Width*size.Height > p.tuning.MaxDecodePixels {
		return fmt.Errorf("%w: %s exceeds %d pixels", ErrOutOfMemory, size, p.tuning.MaxDecodePixels)
	}
	return nil
}

// CropAndScale cuts a zoomed-space crop rect out of img and scales it by zoom, so the
// output has exactly the rect's dimensions.
func (p *imageProcessor) CropAndScale(ctx context.Context, img image.Image, rect image.Rectangle, zoom float64) (image.Image, error) {
	if rect.Empty() {
		return nil, fmt.Errorf("empty crop rect %v", rect)
	}
	if err := p.checkBudget(crop.Size{Width: rect.Dx(), Height: rect.Dy()}); err != nil {
		return nil, err
	}

	b := img.Bounds()
	src := crop.ToImageSpace(rect, zoom).Add(b.Min).Intersect(b)
	if src.Empty() {
		return nil, fmt.Errorf("crop rect %v outside image %v", rect, b)
	}

	cropped := imaging.Crop(img, src)
	if err := checkContext(ctx); err != nil {
		return nil, err
	}

	r := &resizer{resampler: p.resampler}
	out := r.resizeWithContext(ctx, cropped, uint(rect.Dx()), uint(rect.Dy()))
	if out == nil {
		return nil, ctx.Err()
	}
	return out, nil
}

// Downsample returns img scaled to a power-of-two zoom, the backing bitmap the preview
// samples from at the given zoom.
func (p *imageProcessor) Downsample(ctx context.Context, img image.Image, zoom float64) (image.Image, error) {
	z := crop.DownsampleZoom(zoom)
	if z == 1.0 {
		return img, nil
	}
	size := crop.Size{Width: img.Bounds().Dx(), Height: img.Bounds().Dy()}.Scale(z)
	r := &resizer{resampler: imaging.Box}
	out := r.resizeWithContext(ctx, img, uint(max(size.Width, 1)), uint(max(size.Height, 1)))
	if out == nil {
		return nil, ctx.Err()
	}
	return out, nil
}

// SmartCenter returns the image-space center of the most interesting region with the
// aspect ratio of target. The analysis runs on a thumbnail.
func (p *imageProcessor) SmartCenter(ctx context.Context, img image.Image, target crop.Size) (crop.PointF, error) {
	b := img.Bounds()
	thumb := img
	scale := 1.0
	if longest := max(b.Dx(), b.Dy()); p.tuning.SmartThumbSize > 0 && longest > p.tuning.SmartThumbSize {
		scale = float64(p.tuning.SmartThumbSize) / float64(longest)
		thumb = imaging.Resize(img, int(float64(b.Dx())*scale), 0, imaging.Box)
	}

	analyzer := smartcrop.NewAnalyzer(&resizer{resampler: p.resampler})

	type cropResult struct {
		crop image.Rectangle
		err  error
	}
	resultChan := make(chan cropResult, 1)
	go func() {
		best, err := analyzer.FindBestCrop(thumb, target.Width, target.Height)
		resultChan <- cropResult{crop: best, err: err}
	}()

	select {
	case <-ctx.Done():
		return crop.PointF{}, ctx.Err()
	case res := <-resultChan:
		if res.err != nil {
			return crop.PointF{}, fmt.Errorf("finding best crop: %w", res.err)
		}
		tb := thumb.Bounds()
		cx := float64(res.crop.Min.X-tb.Min.X+res.crop.Max.X-tb.Min.X) / 2
		cy := float64(res.crop.Min.Y-tb.Min.Y+res.crop.Max.Y-tb.Min.Y) / 2
		return crop.PointF{X: cx / scale, Y: cy / scale}, nil
	}
}

// resizer implements the smartcrop.Resizer interface and adds context awareness.
type resizer struct {
	resampler imaging.ResampleFilter
}

// Resize *doesn't* take a context here.  The smartcrop.Resizer interface doesn't
// support contexts.  We handle cancellation in resizeWithContext.
func (r *resizer) Resize(img image.Image, width, height uint) image.Image {
	return imaging.Resize(img, int(width), int(height), r.resampler)
}

// resizeWithContext performs the resize operation with context awareness. It returns
// nil if ctx is done first.
func (r *resizer) resizeWithContext(ctx context.Context, img image.Image, width, height uint) image.Image {
	resultChan := make(chan image.Image, 1)

	go func() {
		resultChan <- imaging.Resize(img, int(width), int(height), r.resampler)
	}()

	select {
	case <-ctx.Done():
		return nil
	case result := <-resultChan:
		return result
	}
}
