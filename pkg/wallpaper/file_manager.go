package wallpaper

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/dixieflatline76/wallcrop/util/log"
)

// FileManager handles all file system operations for committed wallpapers.
// Layout: {root}/{home,lock}/{id}.jpg
type FileManager struct {
	rootDir string
}

// NewFileManager creates a new FileManager with the given root directory.
func NewFileManager(rootDir string) *FileManager {
	return &FileManager{rootDir: rootDir}
}

// GetRootDir returns the root directory committed wallpapers are written under.
func (fm *FileManager) GetRootDir() string {
	return fm.rootDir
}

// EnsureDirs creates the per-destination subdirectories.
func (fm *FileManager) EnsureDirs() error {
	for _, d := range DestBoth.Targets() {
		dir := filepath.Join(fm.rootDir, d.String())
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// validateID ensures the ID does not contain path traversal characters.
func (fm *FileManager) validateID(id string) error {
	if id == "" || strings.Contains(id, "..") || strings.ContainsAny(id, `/\`) {
		return fmt.Errorf("invalid id %q: contains illegal characters", id)
	}
	return nil
}

// GetCroppedPath returns the path a cropped wallpaper for a single destination is stored at.
func (fm *FileManager) GetCroppedPath(id string, dest Destination) (string, error) {
	if err := fm.validateID(id); err != nil {
		return "", err
	}
	if dest == DestBoth {
		return "", fmt.Errorf("cropped path needs a single destination, got %s", dest)
	}
	return filepath.Join(fm.rootDir, dest.String(), id+".jpg"), nil
}

// Save writes data to the cropped path for id and dest. The file is written to a
// temporary name first so a desktop never picks up a partial image.
func (fm *FileManager) Save(id string, dest Destination, data []byte) (string, error) {
	path, err := fm.GetCroppedPath(id, dest)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return "", fmt.Errorf("renaming %s: %w", tmp, err)
	}
	return path, nil
}

// Prune keeps the newest keep files in each destination directory and removes the rest.
// The current wallpaper is always among the newest, so it survives.
func (fm *FileManager) Prune(keep int) int {
	removed := 0
	for _, d := range DestBoth.Targets() {
		dir := filepath.Join(fm.rootDir, d.String())
		entries, err := os.ReadDir(dir)
		if err != nil {
			if !os.IsNotExist(err) {
				log.Printf("FileManager: Error reading %s: %v", dir, err)
			}
			continue
		}

		type fileInfo struct {
			path    string
			modTime int64
		}
		var files []fileInfo
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".jpg" {
				continue
			}
			info, err := e.Info()
			if err != nil {
				continue
			}
			files = append(files, fileInfo{filepath.Join(dir, e.Name()), info.ModTime().UnixNano()})
		}
		if len(files) <= keep {
			continue
		}

		sort.Slice(files, func(i, j int) bool { return files[i].modTime > files[j].modTime })
		for _, f := range files[keep:] {
			if err := os.Remove(f.path); err != nil {
				log.Debugf("FileManager: Skipped %s: %v", f.path, err)
				continue
			}
			removed++
		}
	}
	log.Debugf("FileManager: Pruned %d files", removed)
	return removed
}
