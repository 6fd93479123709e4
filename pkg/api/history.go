package api

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
)

// maxPerPage caps the history page size.
const maxPerPage = 100

// HistoryImage is one committed wallpaper.
type HistoryImage struct {
	ID      string `json:"id"`
	URL     string `json:"url"`
	ModTime int64  `json:"mod_time"`
}

// handleHistory routes requests for committed wallpapers.
// Path format: /history/{destination}[/{filename}]
// 1. list: /history/home?page=1&per_page=20 (newest first)
// 2. asset: /history/lock/{filename}
func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	if s.historyRoot == "" {
		writeError(w, http.StatusServiceUnavailable, "history not available")
		return
	}
	parts := strings.Split(strings.Trim(strings.TrimPrefix(r.URL.Path, "/history/"), "/"), "/")

	dest, err := wallpaper.ParseDestination(parts[0])
	if err != nil || dest == wallpaper.DestBoth {
		writeError(w, http.StatusNotFound, "unknown destination")
		return
	}
	dir := filepath.Join(s.historyRoot, dest.String())

	switch len(parts) {
	case 1:
		s.handleHistoryListing(w, r, dir, dest)
	case 2:
		s.handleHistoryAsset(w, r, dir, parts[1])
	default:
		writeError(w, http.StatusBadRequest, "invalid path")
	}
}

func (s *Server) handleHistoryListing(w http.ResponseWriter, r *http.Request, dir string, dest wallpaper.Destination) {
	page := 1
	perPage := 24
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}
	if pp, err := strconv.Atoi(r.URL.Query().Get("per_page")); err == nil && pp > 0 {
		perPage = min(pp, maxPerPage)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			writeJSON(w, http.StatusOK, []HistoryImage{})
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to read directory")
		return
	}

	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	images := []HistoryImage{}
	for _, e := range entries {
		if e.IsDir() || strings.ToLower(filepath.Ext(e.Name())) != ".jpg" {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		images = append(images, HistoryImage{
			ID:      strings.TrimSuffix(e.Name(), filepath.Ext(e.Name())),
			URL:     fmt.Sprintf("%s://%s/history/%s/%s", scheme, r.Host, dest, e.Name()),
			ModTime: info.ModTime().UnixNano(),
		})
	}
	sort.Slice(images, func(i, j int) bool {
		if images[i].ModTime != images[j].ModTime {
			return images[i].ModTime > images[j].ModTime
		}
		return images[i].ID < images[j].ID
	})

	// Pages past the end are empty; compare before multiplying so huge pages cannot overflow.
	start := len(images)
	if page-1 < len(images)/perPage+1 {
		start = min((page-1)*perPage, len(images))
	}
	end := min(start+perPage, len(images))
	writeJSON(w, http.StatusOK, images[start:end])
}

func (s *Server) handleHistoryAsset(w http.ResponseWriter, r *http.Request, dir, filename string) {
	// Must be a single path component with no traversal
	if filename == "" || strings.Contains(filename, "..") || strings.ContainsAny(filename, `/\`) || filepath.Base(filename) != filename {
		writeError(w, http.StatusBadRequest, "invalid filename")
		return
	}

	absDir, err := filepath.Abs(dir)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid asset path")
		return
	}
	absDir = filepath.Clean(absDir)
	absFull := filepath.Clean(filepath.Join(absDir, filename))
	if !strings.HasPrefix(absFull, absDir+string(os.PathSeparator)) {
		writeError(w, http.StatusBadRequest, "invalid asset path")
		return
	}

	http.ServeFile(w, r, absFull)
}
