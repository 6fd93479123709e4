// Package config provides application constants and preference-backed settings.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// GetPath returns the path to the user's application directory.
func GetPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting user home directory: %w", err)
	}
	return filepath.Join(homeDir, "."+strings.ToLower(AppName)), nil
}

// GetCroppedDir returns the directory committed wallpapers are written to.
func GetCroppedDir() (string, error) {
	p, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(p, CroppedSubDir), nil
}

// GetTuningFilename returns the path to the optional tuning override file.
func GetTuningFilename() (string, error) {
	p, err := GetPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(p, TuningFile), nil
}
