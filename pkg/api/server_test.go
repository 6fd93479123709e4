package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func postJSON(t *testing.T, h http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func dialWS(t *testing.T, s *Server) *websocket.Conn {
	t.Helper()
	server := httptest.NewServer(s.Handler())
	t.Cleanup(server.Close)

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws"
	ws, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	require.Eventually(t, func() bool { return s.clientCount() == 1 }, time.Second, 10*time.Millisecond)
	return ws
}

func TestHealthCheck(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "running")
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSPreflight(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	req := httptest.NewRequest(http.MethodOptions, "/crop", nil)
	rr := httptest.NewRecorder()
	s.Handler().ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Methods"), "POST")
}

func TestPreviewEndpoint(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	body := PreviewRequest{
		Image:   sz(2000, 1000),
		Screen:  sz(1000, 2000),
		Surface: sz(2000, 2000),
	}

	rr := postJSON(t, s.Handler(), "/preview", body)
	require.Equal(t, http.StatusOK, rr.Code)
	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 2.0, resp.View.Zoom, 1e-9)
	assert.InDelta(t, 750.0, resp.View.Center.X, 1e-9)
	assert.InDelta(t, 500.0, resp.View.Center.Y, 1e-9)
	assert.Equal(t, Rect{Left: 500, Top: 0, Right: 1000, Bottom: 1000}, resp.Visible)

	body.RTL = true
	rr = postJSON(t, s.Handler(), "/preview", body)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.InDelta(t, 1250.0, resp.View.Center.X, 1e-9)
}

func TestPreviewEndpoint_DefaultSurface(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	rr := postJSON(t, s.Handler(), "/preview", PreviewRequest{Image: sz(400, 200), Screen: sz(100, 200)})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp PreviewResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, sz(200, 200), resp.Surface)
	assert.InDelta(t, 1.0, resp.View.Range.Min, 1e-9)
	assert.InDelta(t, 8.0, resp.View.Range.Max, 1e-9)
}

func TestCropEndpoint(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	rr := postJSON(t, s.Handler(), "/crop", CropRequest{
		Image:   sz(400, 200),
		Screen:  sz(100, 200),
		Surface: sz(200, 200),
		Zoom:    2,
		Visible: Rect{Left: 145, Top: 50, Right: 195, Bottom: 150},
	})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp CropResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, Rect{Left: 290, Top: 100, Right: 490, Bottom: 300}, resp.Crop)
	assert.Equal(t, Rect{Left: 145, Top: 50, Right: 245, Bottom: 150}, resp.ImageSpace)
}

func TestBadRequests(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	h := s.Handler()

	rr := postJSON(t, h, "/crop", CropRequest{Image: sz(10, 10), Screen: sz(10, 10), Surface: sz(10, 10)})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "zero zoom")

	rr = postJSON(t, h, "/preview", PreviewRequest{Image: sz(0, 10), Screen: sz(10, 10)})
	assert.Equal(t, http.StatusBadRequest, rr.Code, "zero width")

	req := httptest.NewRequest(http.MethodPost, "/downsample", strings.NewReader("{"))
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusBadRequest, rr.Code, "malformed body")

	req = httptest.NewRequest(http.MethodGet, "/crop", nil)
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestDownsampleEndpoint(t *testing.T) {
	s := NewServer("127.0.0.1:0")

	rr := postJSON(t, s.Handler(), "/downsample", map[string]float64{"zoom": 0.3})
	require.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]float64
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 0.25, resp["downsample"])
}

func TestRateLimit(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	s.SetRateLimit(rate.Every(time.Hour), 1)

	body := map[string]float64{"zoom": 1}
	assert.Equal(t, http.StatusOK, postJSON(t, s.Handler(), "/downsample", body).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, s.Handler(), "/downsample", body).Code)
}

func TestSetEndpoint(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	req := SetRequest{Path: "/pics/a.jpg", Destination: "both", Zoom: 1.5}

	rr := postJSON(t, s.Handler(), "/set", req)
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, "no handler registered")

	var got SetRequest
	s.SetSetHandler(func(ctx context.Context, r SetRequest) ([]string, error) {
		got = r
		return []string{"/out/home/a.jpg", "/out/lock/a.jpg"}, nil
	})
	rr = postJSON(t, s.Handler(), "/set", req)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, req, got)
	assert.Contains(t, rr.Body.String(), "/out/lock/a.jpg")

	rr = postJSON(t, s.Handler(), "/set", SetRequest{Path: "/a.jpg", Destination: "desk"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	s.SetSetHandler(func(ctx context.Context, r SetRequest) ([]string, error) {
		return nil, &wallpaper.SetError{Destination: wallpaper.DestHome, Err: wallpaper.ErrOutOfMemory}
	})
	rr = postJSON(t, s.Handler(), "/set", req)
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "oom", resp["reason"])

	s.SetSetHandler(func(ctx context.Context, r SetRequest) ([]string, error) {
		return nil, errors.New("boom")
	})
	rr = postJSON(t, s.Handler(), "/set", req)
	resp = nil
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "boom", resp["error"])
	assert.Empty(t, resp["reason"])
}

func TestWebSocketPingPong(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	ws := dialWS(t, s)

	require.NoError(t, ws.WriteMessage(websocket.TextMessage, []byte(`not json`)))
	require.NoError(t, ws.WriteJSON(map[string]string{"type": "ping"}))

	var msg map[string]string
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "pong", msg["type"])
}

func TestNotifyWallpaperSet(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	ws := dialWS(t, s)

	ev := wallpaper.Event{AssetID: "beach", Destination: "lock", Result: wallpaper.ResultSuccess}
	require.NoError(t, s.NotifyWallpaperSet(ev))

	var msg struct {
		Type  string          `json:"type"`
		Event wallpaper.Event `json:"event"`
	}
	require.NoError(t, ws.SetReadDeadline(time.Now().Add(2*time.Second)))
	require.NoError(t, ws.ReadJSON(&msg))
	assert.Equal(t, "wallpaper_set", msg.Type)
	assert.Equal(t, "beach", msg.Event.AssetID)
	assert.Equal(t, "lock", msg.Event.Destination)
}

func TestHistory(t *testing.T) {
	root := t.TempDir()
	homeDir := filepath.Join(root, "home")
	require.NoError(t, os.MkdirAll(homeDir, 0755))

	old := time.Now().Add(-time.Hour)
	for i, name := range []string{"a.jpg", "b.jpg"} {
		p := filepath.Join(homeDir, name)
		require.NoError(t, os.WriteFile(p, []byte(name), 0644))
		mt := old.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(p, mt, mt))
	}
	require.NoError(t, os.WriteFile(filepath.Join(homeDir, "a.jpg.tmp"), []byte("x"), 0644))

	s := NewServer("127.0.0.1:0")
	h := s.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/home", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rr.Code, "no root yet")

	s.SetHistoryRoot(root)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/home?per_page=1", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	var images []HistoryImage
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &images))
	require.Len(t, images, 1)
	assert.Equal(t, "b", images[0].ID, "newest first")
	assert.True(t, strings.HasSuffix(images[0].URL, "/history/home/b.jpg"))

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/lock", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, "[]", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/home/a.jpg", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "a.jpg", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/both", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)

	for _, query := range []string{
		"page=4611686018427387905&per_page=3",
		"page=2&per_page=9223372036854775807",
		"page=9223372036854775807&per_page=9223372036854775807",
		"page=3&per_page=1",
	} {
		rr = httptest.NewRecorder()
		assert.NotPanics(t, func() {
			h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/history/home?"+query, nil))
		}, query)
		require.Equal(t, http.StatusOK, rr.Code, query)
		assert.JSONEq(t, "[]", rr.Body.String(), "%s is past the last page", query)
	}
}

func TestStartStop(t *testing.T) {
	s := NewServer("127.0.0.1:0")
	errCh := make(chan error, 1)
	go func() { errCh <- s.Start() }()

	time.Sleep(50 * time.Millisecond)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))

	select {
	case err := <-errCh:
		assert.ErrorIs(t, err, http.ErrServerClosed)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
