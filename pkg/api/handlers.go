package api

import (
	"encoding/json"
	"errors"
	"image"
	"net/http"

	"github.com/dixieflatline76/wallcrop/config"
	"github.com/dixieflatline76/wallcrop/pkg/crop"
	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/dixieflatline76/wallcrop/util/log"
)

// Rect is the wire form of an image.Rectangle.
type Rect struct {
	Left   int `json:"left"`
	Top    int `json:"top"`
	Right  int `json:"right"`
	Bottom int `json:"bottom"`
}

func fromRectangle(r image.Rectangle) Rect {
	return Rect{Left: r.Min.X, Top: r.Min.Y, Right: r.Max.X, Bottom: r.Max.Y}
}

func (r Rect) rectangle() image.Rectangle {
	return image.Rect(r.Left, r.Top, r.Right, r.Bottom)
}

// PreviewRequest asks for the initial view of an image on a screen. When Surface is
// omitted the default crop surface for the screen is used.
type PreviewRequest struct {
	Image       crop.Size `json:"image"`
	Screen      crop.Size `json:"screen"`
	Surface     crop.Size `json:"surface"`
	RTL         bool      `json:"rtl"`
	LargeScreen bool      `json:"large_screen"`
}

// PreviewResponse is the initial view plus the rect it shows.
type PreviewResponse struct {
	View    crop.View `json:"view"`
	Surface crop.Size `json:"surface"`
	Visible Rect      `json:"visible"`
}

// CropRequest carries the pan/zoom state to turn into a crop rect.
type CropRequest struct {
	Image   crop.Size `json:"image"`
	Screen  crop.Size `json:"screen"`
	Surface crop.Size `json:"surface"`
	Zoom    float64   `json:"zoom"`
	Visible Rect      `json:"visible"`
	RTL     bool      `json:"rtl"`
}

// CropResponse holds the crop rect in zoomed space and in source pixels.
type CropResponse struct {
	Crop       Rect    `json:"crop"`
	ImageSpace Rect    `json:"image_space"`
	Zoom       float64 `json:"zoom"`
}

// SetRequest commits the image at Path. A zero Zoom keeps the initial zoom; PanX and
// PanY are screen pixels applied after loading.
type SetRequest struct {
	Path        string  `json:"path"`
	Destination string  `json:"destination"`
	Zoom        float64 `json:"zoom,omitempty"`
	PanX        float64 `json:"pan_x,omitempty"`
	PanY        float64 `json:"pan_y,omitempty"`
	RTL         bool    `json:"rtl,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("API: encoding response: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodePost checks the method and decodes the JSON body into v.
func decodePost(w http.ResponseWriter, r *http.Request, v any) bool {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return false
	}
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

// handleHealth returns the server health status.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "running",
		"version": config.AppVersion,
		"clients": s.clientCount(),
	})
}

// handleWebSocket upgrades the connection to WebSocket. Clients may send
// {"type":"ping"} as a keepalive and get {"type":"pong"} back.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("API: WebSocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	s.clientsMu.Lock()
	s.clients[conn] = true
	s.clientsMu.Unlock()

	defer func() {
		s.clientsMu.Lock()
		delete(s.clients, conn)
		s.clientsMu.Unlock()
	}()

	for {
		var msg struct {
			Type string `json:"type"`
		}
		if err := conn.ReadJSON(&msg); err != nil {
			var syntaxErr *json.SyntaxError
			if errors.As(err, &syntaxErr) {
				continue
			}
			break
		}
		if msg.Type == "ping" {
			s.clientsMu.Lock()
			err := conn.WriteJSON(map[string]string{"type": "pong"})
			s.clientsMu.Unlock()
			if err != nil {
				break
			}
		}
	}
}

func (s *Server) handlePreview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if !decodePost(w, r, &req) {
		return
	}
	if !req.Image.Valid() || !req.Screen.Valid() {
		writeError(w, http.StatusBadRequest, "image and screen sizes must be positive")
		return
	}
	surface := req.Surface
	if !surface.Valid() {
		surface = crop.DefaultCropSurfaceSize(crop.Display{Real: req.Screen}, req.LargeScreen)
	}

	view := crop.InitialView(req.Image, req.Screen, surface, req.RTL)
	view.Center = crop.ClampCenter(req.Image, req.Screen, view.Zoom, view.Center)
	writeJSON(w, http.StatusOK, PreviewResponse{
		View:    view,
		Surface: surface,
		Visible: fromRectangle(crop.VisibleRect(req.Image, req.Screen, view)),
	})
}

func (s *Server) handleCrop(w http.ResponseWriter, r *http.Request) {
	var req CropRequest
	if !decodePost(w, r, &req) {
		return
	}
	if !req.Image.Valid() || !req.Screen.Valid() || !req.Surface.Valid() || req.Zoom <= 0 {
		writeError(w, http.StatusBadRequest, "sizes and zoom must be positive")
		return
	}

	rect := crop.CropRect(req.Image, req.Screen, req.Surface, req.Zoom, req.Visible.rectangle(), req.RTL)
	writeJSON(w, http.StatusOK, CropResponse{
		Crop:       fromRectangle(rect),
		ImageSpace: fromRectangle(crop.ToImageSpace(rect, req.Zoom)),
		Zoom:       req.Zoom,
	})
}

func (s *Server) handleDownsample(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Zoom float64 `json:"zoom"`
	}
	if !decodePost(w, r, &req) {
		return
	}
	if req.Zoom <= 0 {
		writeError(w, http.StatusBadRequest, "zoom must be positive")
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{
		"zoom":       req.Zoom,
		"downsample": crop.DownsampleZoom(req.Zoom),
	})
}

// handleSet commits a wallpaper through the registered SetHandler.
func (s *Server) handleSet(w http.ResponseWriter, r *http.Request) {
	var req SetRequest
	if !decodePost(w, r, &req) {
		return
	}
	if req.Path == "" {
		writeError(w, http.StatusBadRequest, "path is required")
		return
	}
	if _, err := wallpaper.ParseDestination(req.Destination); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if s.onSet == nil {
		log.Println("API: no set handler registered")
		writeError(w, http.StatusServiceUnavailable, "feature not available")
		return
	}

	paths, err := s.onSet(r.Context(), req)
	if err != nil {
		log.Printf("API: failed to set wallpaper: %v", err)
		resp := map[string]string{"error": err.Error()}
		var setErr *wallpaper.SetError
		if errors.As(err, &setErr) {
			resp["reason"] = setErr.FailureReason()
		}
		writeJSON(w, http.StatusInternalServerError, resp)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "paths": paths})
}
