package wallpaper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/dixieflatline76/wallcrop/pkg/crop"
)

// TuningConfig holds the internal magic numbers used while previewing and committing.
type TuningConfig struct {
	MaxZoom         float64 `json:"max_zoom"`          // Default: 8.0 (raised to the default zoom when larger)
	EncodingQuality int     `json:"encoding_quality"`  // Default: 95
	MaxDecodePixels int     `json:"max_decode_pixels"` // Default: 100 MP; larger sources fail as out of memory
	SmartThumbSize  int     `json:"smart_thumb_size"`  // Default: 512 (longest side analysed by smartcrop)
	PanStep         float64 `json:"pan_step"`          // Default: 50 screen pixels per arrow step
}

// DefaultTuningConfig returns the standard values.
func DefaultTuningConfig() TuningConfig {
	return TuningConfig{
		MaxZoom:         crop.DefaultMaxZoom,
		EncodingQuality: 95,
		MaxDecodePixels: 100_000_000,
		SmartThumbSize:  512,
		PanStep:         50,
	}
}

// LoadTuning overlays the JSON file at path onto the defaults. A missing file is not an error.
func LoadTuning(path string) (TuningConfig, error) {
	t := DefaultTuningConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return t, nil
	}
	if err != nil {
		return t, fmt.Errorf("reading tuning file: %w", err)
	}
	if err := json.Unmarshal(data, &t); err != nil {
		return DefaultTuningConfig(), fmt.Errorf("decoding tuning file: %w", err)
	}
	return t, nil
}
