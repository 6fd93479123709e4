package wallpaper

import (
	"errors"
	"fmt"
)

var (
	// ErrDecode means the asset's dimensions or pixels could not be decoded.
	ErrDecode = errors.New("wallpaper could not be decoded")
	// ErrOutOfMemory means the crop could not be produced within the pixel budget.
	ErrOutOfMemory = errors.New("out of memory while setting wallpaper")
	// ErrDestinationUnsupported means the desktop cannot set the requested slot.
	ErrDestinationUnsupported = errors.New("destination not supported by this desktop")
	// ErrNotLoaded means an operation needs a loaded preview.
	ErrNotLoaded = errors.New("preview not loaded")
	// ErrSetInProgress means another set has not finished yet.
	ErrSetInProgress = errors.New("a wallpaper set is already in progress")
)

// LoadError is returned when a preview cannot be loaded. Loading is never retried
// automatically; the caller may call Load again.
type LoadError struct {
	AssetID string
	Err     error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading wallpaper %s: %v", e.AssetID, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// Is lets errors.Is(err, ErrDecode) match every load failure.
func (e *LoadError) Is(target error) bool { return target == ErrDecode }

// SetError is returned when committing a wallpaper fails. It carries the destination
// so the caller can offer a retry for the same slot.
type SetError struct {
	Destination Destination
	Err         error
}

func (e *SetError) Error() string {
	return fmt.Sprintf("setting %s wallpaper: %v", e.Destination, e.Err)
}

func (e *SetError) Unwrap() error { return e.Err }

// OutOfMemory reports whether the failure was an out-of-memory condition.
func (e *SetError) OutOfMemory() bool {
	return errors.Is(e.Err, ErrOutOfMemory)
}

// FailureReason is the event-log classification of a SetError.
func (e *SetError) FailureReason() string {
	if e.OutOfMemory() {
		return "oom"
	}
	return "other"
}
