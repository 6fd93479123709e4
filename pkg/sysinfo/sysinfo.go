// Package sysinfo queries display metrics from the host.
package sysinfo

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
)

// resolutionRegex matches "1920x1080", "3456 x 2234", "2880 x 1864 Retina" and the like.
var resolutionRegex = regexp.MustCompile(`(\d+)\s*x\s*(\d+)`)

// ParseSize parses the first WxH pair in s.
func ParseSize(s string) (crop.Size, error) {
	matches := resolutionRegex.FindStringSubmatch(s)
	if len(matches) < 3 {
		return crop.Size{}, fmt.Errorf("failed to parse resolution from string: %q", s)
	}

	width, errW := strconv.Atoi(matches[1])
	height, errH := strconv.Atoi(matches[2])
	if errW != nil || errH != nil {
		return crop.Size{}, fmt.Errorf("failed to convert dimensions: %v, %v", errW, errH)
	}
	if width <= 0 || height <= 0 {
		return crop.Size{}, fmt.Errorf("invalid resolution %dx%d", width, height)
	}
	return crop.Size{Width: width, Height: height}, nil
}

// parseXdpyinfo extracts the screen size from xdpyinfo output, which carries a line like
// "  dimensions:    1920x1080 pixels (508x285 millimeters)".
func parseXdpyinfo(out string) (crop.Size, error) {
	for _, line := range strings.Split(out, "\n") {
		if !strings.Contains(line, "dimensions:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) >= 2 {
			return ParseSize(fields[1])
		}
	}
	return crop.Size{}, fmt.Errorf("failed to parse screen resolution")
}
