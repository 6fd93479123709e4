package api

import (
	"context"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/dixieflatline76/wallcrop/pkg/wallpaper"
	"github.com/dixieflatline76/wallcrop/util/log"
	"github.com/gorilla/websocket"
	"golang.org/x/net/netutil"
	"golang.org/x/time/rate"
)

// Default request limits.
const (
	DefaultRateLimit = rate.Limit(20)
	DefaultBurst     = 40
	MaxConnections   = 64
)

// SetHandler commits a wallpaper for a set request and returns the written paths.
type SetHandler func(ctx context.Context, req SetRequest) ([]string, error)

// Server represents the local REST/WebSocket server.
type Server struct {
	addr       string
	httpServer *http.Server
	mux        *http.ServeMux
	upgrader   websocket.Upgrader
	limiter    *rate.Limiter

	// WebSocket management
	clients   map[*websocket.Conn]bool
	clientsMu sync.Mutex

	// Committed wallpapers served under /history/
	historyRoot string

	onSet SetHandler
}

// NewServer creates a new API server listening on addr once started.
func NewServer(addr string) *Server {
	s := &Server{
		addr: addr,
		mux:  http.NewServeMux(),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		limiter: rate.NewLimiter(DefaultRateLimit, DefaultBurst),
		clients: make(map[*websocket.Conn]bool),
	}
	s.setupRoutes()
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/health", s.enableCORS(s.handleHealth))
	s.mux.HandleFunc("/ws", s.handleWebSocket)
	s.mux.HandleFunc("/preview", s.enableCORS(s.limit(s.handlePreview)))
	s.mux.HandleFunc("/crop", s.enableCORS(s.limit(s.handleCrop)))
	s.mux.HandleFunc("/downsample", s.enableCORS(s.limit(s.handleDownsample)))
	s.mux.HandleFunc("/set", s.enableCORS(s.limit(s.handleSet)))
	s.mux.HandleFunc("/history/", s.enableCORS(s.handleHistory))
}

// SetRateLimit replaces the request limiter.
func (s *Server) SetRateLimit(r rate.Limit, burst int) {
	s.limiter = rate.NewLimiter(r, burst)
}

// SetHistoryRoot sets the directory committed wallpapers are listed from.
func (s *Server) SetHistoryRoot(dir string) {
	s.historyRoot = dir
}

// SetSetHandler sets the callback that commits wallpapers.
func (s *Server) SetSetHandler(handler SetHandler) {
	s.onSet = handler
}

// enableCORS adds CORS headers to the handler.
func (s *Server) enableCORS(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight requests
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next(w, r)
	}
}

// limit rejects requests once the token bucket is empty.
func (s *Server) limit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !s.limiter.Allow() {
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next(w, r)
	}
}

// Handler returns the HTTP handler for the server.
func (s *Server) Handler() http.Handler {
	return s.mux
}

// Start starts the server. It blocks until the server stops.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	log.Printf("API: listening on %s", ln.Addr())
	return s.httpServer.Serve(netutil.LimitListener(ln, MaxConnections))
}

// Stop shuts the server down and closes all WebSocket clients.
func (s *Server) Stop(ctx context.Context) error {
	s.clientsMu.Lock()
	for client := range s.clients {
		client.Close()
		delete(s.clients, client)
	}
	s.clientsMu.Unlock()

	return s.httpServer.Shutdown(ctx)
}

// NotifyWallpaperSet broadcasts a "wallpaper_set" message to all connected clients.
func (s *Server) NotifyWallpaperSet(ev wallpaper.Event) error {
	return s.broadcast(map[string]any{
		"type":  "wallpaper_set",
		"event": ev,
	})
}

func (s *Server) broadcast(msg any) error {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	for client := range s.clients {
		if err := client.WriteJSON(msg); err != nil {
			log.Printf("API: failed to broadcast to client: %v", err)
			client.Close()
			delete(s.clients, client)
		}
	}
	return nil
}

// clientCount returns the number of connected WebSocket clients.
func (s *Server) clientCount() int {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()
	return len(s.clients)
}
