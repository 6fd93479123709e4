package wallpaper

import (
	"context"
	"image"
	"math"
	"sync"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/dixieflatline76/wallcrop/util/log"
)

// PreviewOptions control how a preview lays out its image.
type PreviewOptions struct {
	RTL         bool
	LargeScreen bool
	SmartCenter bool
	Tuning      TuningConfig
}

// Preview is the state of one wallpaper being previewed: the asset, the display it is
// previewed on and the current pan/zoom.
type Preview struct {
	mu sync.RWMutex

	asset   Asset
	display crop.Display
	opts    PreviewOptions
	proc    *imageProcessor

	imageSize crop.Size
	surface   crop.Size
	view      crop.View
	loaded    bool
}

// NewPreview creates an unloaded preview. Call Load before anything else.
func NewPreview(asset Asset, display crop.Display, opts PreviewOptions) *Preview {
	if opts.Tuning == (TuningConfig{}) {
		opts.Tuning = DefaultTuningConfig()
	}
	return &Preview{
		asset:   asset,
		display: display,
		opts:    opts,
		proc:    newImageProcessor(opts.Tuning),
		surface: crop.DefaultCropSurfaceSize(display, opts.LargeScreen),
	}
}

// Load probes the asset's dimensions and sets the default zoom and scroll. A decoding
// failure is returned as a *LoadError; nothing is retried.
func (p *Preview) Load(ctx context.Context) error {
	size, err := p.asset.DecodeRawDimensions(ctx)
	if err != nil {
		return &LoadError{AssetID: p.asset.ID(), Err: err}
	}

	p.mu.Lock()
	p.imageSize = size
	p.resetViewLocked()
	p.loaded = true
	p.mu.Unlock()

	if p.opts.SmartCenter {
		if err := p.applySmartCenter(ctx); err != nil {
			log.Printf("Preview: smart center for %s failed, keeping default: %v", p.asset.ID(), err)
		}
	}

	log.Debugf("Preview: loaded %s (%s) screen=%s surface=%s zoom=%.3f",
		p.asset.ID(), size, p.ScreenSize(), p.CropSurfaceSize(), p.View().Zoom)
	return nil
}

func (p *Preview) resetViewLocked() {
	v := crop.InitialView(p.imageSize, p.display.Real, p.surface, p.opts.RTL)
	v.Range.Max = math.Max(p.opts.Tuning.MaxZoom, v.Range.Default)
	p.view = v
}

func (p *Preview) applySmartCenter(ctx context.Context) error {
	img, err := p.asset.DecodeImage(ctx)
	if err != nil {
		return err
	}
	center, err := p.proc.SmartCenter(ctx, img, p.surface)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.view.Center = crop.ClampCenter(p.imageSize, p.display.Real, p.view.Zoom, center)
	return nil
}

// Rotate applies a new display configuration and resets the view to its default.
func (p *Preview) Rotate(display crop.Display) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.display = display
	p.surface = crop.DefaultCropSurfaceSize(display, p.opts.LargeScreen)
	if p.loaded {
		p.resetViewLocked()
	}
}

// Loaded reports whether Load has succeeded.
func (p *Preview) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Asset returns the previewed asset.
func (p *Preview) Asset() Asset {
	return p.asset
}

// ImageSize returns the native size of the asset.
func (p *Preview) ImageSize() crop.Size {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.imageSize
}

// ScreenSize returns the screen size of the current display configuration.
func (p *Preview) ScreenSize() crop.Size {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.display.Real
}

// CropSurfaceSize returns the crop surface of the current display configuration.
func (p *Preview) CropSurfaceSize() crop.Size {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.surface
}

// View returns the current zoom, center and zoom range.
func (p *Preview) View() crop.View {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.view
}

// Pan moves the view by dx, dy screen pixels.
func (p *Preview) Pan(dx, dy float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return
	}
	c := crop.PointF{
		X: p.view.Center.X + dx/p.view.Zoom,
		Y: p.view.Center.Y + dy/p.view.Zoom,
	}
	p.view.Center = crop.ClampCenter(p.imageSize, p.display.Real, p.view.Zoom, c)
}

// PanSteps moves the view by nx, ny arrow steps of Tuning.PanStep screen pixels each.
func (p *Preview) PanSteps(nx, ny int) {
	step := p.opts.Tuning.PanStep
	p.Pan(float64(nx)*step, float64(ny)*step)
}

// ZoomTo sets the zoom, clamped to the permitted range, keeping the center.
func (p *Preview) ZoomTo(zoom float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return
	}
	p.view.Zoom = p.view.Range.Clamp(zoom)
	p.view.Center = crop.ClampCenter(p.imageSize, p.display.Real, p.view.Zoom, p.view.Center)
}

// ZoomBy multiplies the zoom by factor.
func (p *Preview) ZoomBy(factor float64) {
	p.ZoomTo(p.View().Zoom * factor)
}

// CenterOn moves the view so that c, in image space, is at the center of the screen.
func (p *Preview) CenterOn(c crop.PointF) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return
	}
	p.view.Center = crop.ClampCenter(p.imageSize, p.display.Real, p.view.Zoom, c)
}

// VisibleRect returns the image-space rectangle currently on screen.
func (p *Preview) VisibleRect() image.Rectangle {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return crop.VisibleRect(p.imageSize, p.display.Real, p.view)
}

// CropRect returns the zoomed-space rectangle to commit along with the zoom.
func (p *Preview) CropRect() (image.Rectangle, float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return image.Rectangle{}, 0, ErrNotLoaded
	}
	visible := crop.VisibleRect(p.imageSize, p.display.Real, p.view)
	r := crop.CropRect(p.imageSize, p.display.Real, p.surface, p.view.Zoom, visible, p.opts.RTL)
	return r, p.view.Zoom, nil
}

// DownsampleZoom returns the power-of-two zoom the backing bitmap is sampled at.
func (p *Preview) DownsampleZoom() float64 {
	return crop.DownsampleZoom(p.View().Zoom)
}

// RenderPreview decodes the asset and returns the backing bitmap at DownsampleZoom.
func (p *Preview) RenderPreview(ctx context.Context) (image.Image, error) {
	if !p.Loaded() {
		return nil, ErrNotLoaded
	}
	if err := p.proc.checkBudget(p.ImageSize()); err != nil {
		return nil, err
	}
	img, err := p.asset.DecodeImage(ctx)
	if err != nil {
		return nil, &LoadError{AssetID: p.asset.ID(), Err: err}
	}
	return p.proc.Downsample(ctx, img, p.View().Zoom)
}
