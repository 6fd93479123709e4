package wallpaper

import (
	"context"
	"fmt"
	"image"
	"strings"
	"sync"

	"github.com/dixieflatline76/wallcrop/util/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Persister commits a cropped region of an asset as the wallpaper.
type Persister interface {
	// SetIndividualWallpaper crops asset to rect (zoomed space), scales by zoom and
	// applies the result to dest. It returns the file path(s) written.
	SetIndividualWallpaper(ctx context.Context, asset Asset, rect image.Rectangle, zoom float64, dest Destination) ([]string, error)
}

// FilePersister renders crops to disk and applies them through the OS backend.
type FilePersister struct {
	os     OS
	fm     *FileManager
	proc   *imageProcessor
	tuning TuningConfig
	// KeepHistory is how many past wallpapers to keep per destination; 0 keeps all.
	KeepHistory int
}

// NewFilePersister creates a persister writing under fm.
func NewFilePersister(o OS, fm *FileManager, tuning TuningConfig) *FilePersister {
	return &FilePersister{
		os:          o,
		fm:          fm,
		proc:        newImageProcessor(tuning),
		tuning:      tuning,
		KeepHistory: 10,
	}
}

// SetIndividualWallpaper implements Persister.
func (p *FilePersister) SetIndividualWallpaper(ctx context.Context, asset Asset, rect image.Rectangle, zoom float64, dest Destination) ([]string, error) {
	// Refuse up front so a partly supported DestBoth never changes one slot and fails the other.
	if !p.os.supportsDestination(dest) {
		return nil, fmt.Errorf("%w: %s", ErrDestinationUnsupported, dest)
	}

	size, err := asset.DecodeRawDimensions(ctx)
	if err != nil {
		return nil, err
	}
	if err := p.proc.checkBudget(size); err != nil {
		return nil, err
	}

	img, err := asset.DecodeImage(ctx)
	if err != nil {
		return nil, err
	}

	out, err := p.proc.CropAndScale(ctx, img, rect, zoom)
	if err != nil {
		return nil, fmt.Errorf("cropping %s: %w", asset.ID(), err)
	}

	data, err := p.proc.EncodeImage(ctx, out, "image/jpeg")
	if err != nil {
		return nil, err
	}

	// Every commit gets a fresh name; some desktops ignore a set to an unchanged path.
	id := asset.ID() + "-" + uuid.NewString()[:8]
	targets := dest.Targets()
	paths := make([]string, len(targets))

	var appliedMu sync.Mutex
	var applied []string

	g, gctx := errgroup.WithContext(ctx)
	for i, d := range targets {
		g.Go(func() error {
			path, err := p.fm.Save(id, d, data)
			if err != nil {
				return err
			}
			if err := checkContext(gctx); err != nil {
				return err
			}
			if err := p.os.setWallpaper(path, d); err != nil {
				return fmt.Errorf("applying %s wallpaper: %w", d, err)
			}
			paths[i] = path
			appliedMu.Lock()
			applied = append(applied, d.String())
			appliedMu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if len(applied) > 0 {
			return nil, fmt.Errorf("%w (%s wallpaper was already applied)", err, strings.Join(applied, ", "))
		}
		return nil, err
	}

	log.Printf("Persister: set %s wallpaper from %s crop=%v zoom=%.3f", dest, asset.ID(), rect, zoom)
	if p.KeepHistory > 0 {
		p.fm.Prune(p.KeepHistory)
	}
	return paths, nil
}
