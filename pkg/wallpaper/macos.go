//go:build darwin

package wallpaper

import (
	"fmt"
	"os/exec"
)

// macOSOS implements the OS interface for macOS.
type macOSOS struct{}

// getOS returns a new instance of the macOSOS struct.
func getOS() OS {
	return &macOSOS{}
}

// setWallpaper sets the desktop picture on every space. macOS derives the lock screen
// from the desktop picture, so DestLock is unsupported on its own.
func (m *macOSOS) setWallpaper(imagePath string, dest Destination) error {
	if dest == DestLock {
		return ErrDestinationUnsupported
	}
	script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to POSIX file %q`, imagePath)
	if err := exec.Command("osascript", "-e", script).Run(); err != nil {
		return fmt.Errorf("failed to set wallpaper: %w", err)
	}
	return nil
}

// supportsDestination reports whether dest can be set. Only the desktop picture is settable.
func (m *macOSOS) supportsDestination(dest Destination) bool {
	return dest == DestHome
}

// getDesktopDimension returns the desktop dimensions on macOS.
func (m *macOSOS) getDesktopDimension() (int, int, error) {
	return screenSize()
}
