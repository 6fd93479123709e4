// Package wallpaper previews an image against the device crop surface and commits the
// chosen region as the system wallpaper.
package wallpaper

import (
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/dixieflatline76/wallcrop/pkg/sysinfo"
)

// OS interface defines the operating system specific operations.
type OS interface {
	getDesktopDimension() (int, int, error)
	setWallpaper(path string, dest Destination) error
	// supportsDestination reports whether every slot in dest can be set here.
	supportsDestination(dest Destination) bool
}

// DefaultOS returns the OS backend for the running platform.
func DefaultOS() OS {
	return getOS()
}

// screenSize is the shared getDesktopDimension implementation.
func screenSize() (int, int, error) {
	s, err := sysinfo.ScreenSize()
	if err != nil {
		return 0, 0, err
	}
	return s.Width, s.Height, nil
}

// DisplayFromOS queries the desktop dimensions and wraps them as a crop.Display.
func DisplayFromOS(o OS) (crop.Display, error) {
	w, h, err := o.getDesktopDimension()
	if err != nil {
		return crop.Display{}, err
	}
	return crop.Display{Real: crop.Size{Width: w, Height: h}}, nil
}
