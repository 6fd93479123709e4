package wallpaper

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultTuningConfig(t *testing.T) {
	cfg := DefaultTuningConfig()

	assert.Equal(t, 8.0, cfg.MaxZoom)
	assert.Equal(t, 95, cfg.EncodingQuality)
	assert.Equal(t, 100_000_000, cfg.MaxDecodePixels)
	assert.Equal(t, 512, cfg.SmartThumbSize)
	assert.Equal(t, 50.0, cfg.PanStep)
}

func TestLoadTuning(t *testing.T) {
	dir := t.TempDir()

	t.Run("MissingFileGivesDefaults", func(t *testing.T) {
		cfg, err := LoadTuning(filepath.Join(dir, "absent.json"))
		require.NoError(t, err)
		assert.Equal(t, DefaultTuningConfig(), cfg)
	})

	t.Run("PartialOverride", func(t *testing.T) {
		path := filepath.Join(dir, "tuning.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"encoding_quality": 80, "max_zoom": 4}`), 0644))

		cfg, err := LoadTuning(path)
		require.NoError(t, err)
		assert.Equal(t, 80, cfg.EncodingQuality)
		assert.Equal(t, 4.0, cfg.MaxZoom)
		assert.Equal(t, 512, cfg.SmartThumbSize, "untouched fields keep defaults")
	})

	t.Run("Malformed", func(t *testing.T) {
		path := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(path, []byte(`{`), 0644))

		cfg, err := LoadTuning(path)
		assert.Error(t, err)
		assert.Equal(t, DefaultTuningConfig(), cfg)
	})
}
