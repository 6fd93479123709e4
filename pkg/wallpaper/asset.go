package wallpaper

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// Asset is a wallpaper image source.
type Asset interface {
	// ID identifies the asset in logs and file names.
	ID() string
	// DecodeRawDimensions returns the native size without decoding pixels.
	DecodeRawDimensions(ctx context.Context) (crop.Size, error)
	// DecodeImage decodes the full image.
	DecodeImage(ctx context.Context) (image.Image, error)
}

// FileAsset is an image on the local file system.
type FileAsset struct {
	Path string
}

// NewFileAsset creates an asset for the file at path.
func NewFileAsset(path string) *FileAsset {
	return &FileAsset{Path: path}
}

// ID returns the file name without its extension, made safe for use as a file name.
func (a *FileAsset) ID() string {
	base := filepath.Base(a.Path)
	return sanitizeID(strings.TrimSuffix(base, filepath.Ext(base)))
}

// DecodeRawDimensions reads the image header.
func (a *FileAsset) DecodeRawDimensions(ctx context.Context) (crop.Size, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return crop.Size{}, fmt.Errorf("opening %s: %w", a.Path, err)
	}
	defer f.Close()
	return decodeDimensions(ctx, f)
}

// DecodeImage decodes the whole file.
func (a *FileAsset) DecodeImage(ctx context.Context) (image.Image, error) {
	f, err := os.Open(a.Path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", a.Path, err)
	}
	defer f.Close()
	return decodeImage(ctx, f)
}

// MemoryAsset is an encoded image held in memory, e.g. an upload.
type MemoryAsset struct {
	Name string
	Data []byte
}

// ID returns the asset name, made safe for use as a file name.
func (a *MemoryAsset) ID() string { return sanitizeID(a.Name) }

// DecodeRawDimensions reads the image header.
func (a *MemoryAsset) DecodeRawDimensions(ctx context.Context) (crop.Size, error) {
	return decodeDimensions(ctx, bytes.NewReader(a.Data))
}

// DecodeImage decodes the image.
func (a *MemoryAsset) DecodeImage(ctx context.Context) (image.Image, error) {
	return decodeImage(ctx, bytes.NewReader(a.Data))
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// sanitizeID maps a name onto [A-Za-z0-9._-] with no "..", so it always passes
// FileManager.validateID.
func sanitizeID(name string) string {
	id := unsafeIDChars.ReplaceAllString(name, "_")
	for strings.Contains(id, "..") {
		id = strings.ReplaceAll(id, "..", "_")
	}
	if id == "" || id == "." {
		return "image"
	}
	return id
}

func decodeDimensions(ctx context.Context, r io.Reader) (crop.Size, error) {
	if err := checkContext(ctx); err != nil {
		return crop.Size{}, err
	}
	cfg, _, err := image.DecodeConfig(r)
	if err != nil {
		return crop.Size{}, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	size := crop.Size{Width: cfg.Width, Height: cfg.Height}
	if !size.Valid() {
		return crop.Size{}, fmt.Errorf("%w: empty image %s", ErrDecode, size)
	}
	return size, nil
}

func decodeImage(ctx context.Context, r io.Reader) (image.Image, error) {
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	img, _, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if err := checkContext(ctx); err != nil {
		return nil, err
	}
	return img, nil
}

func checkContext(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return nil
	}
}
