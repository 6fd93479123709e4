//go:build linux

package sysinfo

import (
	"fmt"
	"os/exec"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
)

// ScreenSize returns the desktop dimensions on Linux.
func ScreenSize() (crop.Size, error) {
	out, err := exec.Command("xdpyinfo").Output()
	if err != nil {
		return crop.Size{}, fmt.Errorf("failed to get screen resolution: %w", err)
	}
	return parseXdpyinfo(string(out))
}
