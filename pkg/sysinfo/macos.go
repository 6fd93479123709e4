//go:build darwin

package sysinfo

import (
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
)

// systemProfilerOutput is the subset of `system_profiler SPDisplaysDataType -json` we read.
type systemProfilerOutput struct {
	Displays []struct {
		NDRVs []struct {
			Resolution string `json:"_spdisplays_pixels"` // e.g. "3420 x 2214"
			Main       string `json:"spdisplays_main"`    // "spdisplays_yes"
		} `json:"spdisplays_ndrvs"`
	} `json:"SPDisplaysDataType"`
}

// ScreenSize returns the main display's dimensions on macOS.
func ScreenSize() (crop.Size, error) {
	out, err := exec.Command("system_profiler", "SPDisplaysDataType", "-json").Output()
	if err != nil {
		return crop.Size{}, fmt.Errorf("failed to run system_profiler: %w", err)
	}

	var profiler systemProfilerOutput
	if err := json.Unmarshal(out, &profiler); err != nil {
		return crop.Size{}, fmt.Errorf("decoding system_profiler JSON: %w", err)
	}
	for _, gpu := range profiler.Displays {
		for _, d := range gpu.NDRVs {
			if d.Main == "spdisplays_yes" {
				return ParseSize(d.Resolution)
			}
		}
	}
	if len(profiler.Displays) > 0 && len(profiler.Displays[0].NDRVs) > 0 {
		return ParseSize(profiler.Displays[0].NDRVs[0].Resolution)
	}
	return crop.Size{}, fmt.Errorf("no displays found in system_profiler output")
}
