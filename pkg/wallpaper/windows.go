//go:build windows

package wallpaper

import (
	"syscall"
	"unsafe"
)

var (
	user32               = syscall.NewLazyDLL("user32.dll")
	systemParametersInfo = user32.NewProc("SystemParametersInfoW")
)

// Windows API constants (defined manually)
const (
	spiSetDeskWallpaper = 0x0014
	spifUpdateIniFile   = 0x01
	spifSendChange      = 0x02
)

// windowsOS implements the OS interface for Windows.
type windowsOS struct{}

// getOS returns a new instance of the windowsOS struct.
func getOS() OS {
	return &windowsOS{}
}

// setWallpaper sets the desktop wallpaper. The lock screen needs the WinRT
// personalization API, which is not reachable from here.
func (w *windowsOS) setWallpaper(imagePath string, dest Destination) error {
	if dest == DestLock {
		return ErrDestinationUnsupported
	}
	imagePathUTF16, err := syscall.UTF16PtrFromString(imagePath)
	if err != nil {
		return err
	}
	ret, _, err := systemParametersInfo.Call(
		uintptr(spiSetDeskWallpaper),
		uintptr(0),
		uintptr(unsafe.Pointer(imagePathUTF16)),
		uintptr(spifUpdateIniFile|spifSendChange),
	)
	if ret == 0 {
		return err
	}
	return nil
}

// supportsDestination reports whether dest can be set. Only the desktop picture is settable.
func (w *windowsOS) supportsDestination(dest Destination) bool {
	return dest == DestHome
}

// getDesktopDimension returns the desktop dimension (width and height) in pixels.
func (w *windowsOS) getDesktopDimension() (int, int, error) {
	return screenSize()
}
