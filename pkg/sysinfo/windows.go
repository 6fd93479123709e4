//go:build windows

package sysinfo

import (
	"syscall"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"golang.org/x/sys/windows"
)

var (
	user32           = syscall.NewLazyDLL("user32.dll")
	getSystemMetrics = user32.NewProc("GetSystemMetrics")
)

const (
	smCXScreen = 0
	smCYScreen = 1
)

// ScreenSize returns the primary desktop dimensions in pixels.
func ScreenSize() (crop.Size, error) {
	width, _, err := getSystemMetrics.Call(uintptr(smCXScreen))
	if err != windows.NOERROR {
		return crop.Size{}, err
	}
	height, _, err := getSystemMetrics.Call(uintptr(smCYScreen))
	if err != windows.NOERROR {
		return crop.Size{}, err
	}
	return crop.Size{Width: int(width), Height: int(height)}, nil
}
