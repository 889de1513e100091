package server

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"html"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"github.com/vango-dev/minifw/pkg/app"
	"github.com/vango-dev/minifw/pkg/host"
	"github.com/vango-dev/minifw/pkg/metrics"
	"github.com/vango-dev/minifw/pkg/router"
)

// Factory builds an app instance that renders into doc and routes over
// browser. client identifies the browser across page loads and sessions; it
// is stable for as long as the browser keeps the ClientCookie. The server
// destroys the instance when it is done with it.
type Factory func(doc *host.Document, browser *router.Browser, client string) (*app.Instance, error)

// ClientCookie carries the client identifier handed to the Factory.
const ClientCookie = "minifw_client"

// Server serves app pages over HTTP and live sessions over WebSocket.
// Every WebSocket connection owns one app instance.
type Server struct {
	config   *Config
	factory  Factory
	metrics  *metrics.Collector
	logger   *slog.Logger
	tracer   trace.Tracer
	upgrader websocket.Upgrader
	router   chi.Router

	mu         sync.Mutex
	sessions   map[*Session]struct{}
	nextID     uint64
	httpServer *http.Server
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) { s.logger = l }
}

// WithMetrics exposes c on /metrics.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Server) { s.metrics = c }
}

// WithTracer sets the tracer client messages are traced with.
// Default: otel.Tracer("minifw") from the global provider.
func WithTracer(t trace.Tracer) Option {
	return func(s *Server) { s.tracer = t }
}

// New creates a server. A nil config uses DefaultConfig.
func New(config *Config, factory Factory, opts ...Option) *Server {
	config = config.withDefaults()
	s := &Server{
		config:   config,
		factory:  factory,
		logger:   slog.Default().With("component", "server"),
		tracer:   otel.Tracer("minifw"),
		sessions: make(map[*Session]struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  config.ReadBufferSize,
		WriteBufferSize: config.WriteBufferSize,
		CheckOrigin:     config.CheckOrigin,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}
	r.Get("/ws", s.HandleWebSocket)
	r.Get("/*", s.HandlePage)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Config returns the effective configuration.
func (s *Server) Config() *Config {
	return s.config
}

// HandlePage renders a fresh app instance positioned at the request path and
// writes it as a complete HTML page.
func (s *Server) HandlePage(w http.ResponseWriter, r *http.Request) {
	client, cookie := clientID(r)
	if cookie != nil {
		http.SetCookie(w, cookie)
	}
	doc := host.NewDocument()
	inst, err := s.factory(doc, router.NewBrowser(r.URL.Path), client)
	if err != nil {
		s.logger.Error("page render failed", "path", r.URL.Path, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	defer inst.Destroy()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, s.page(doc.InnerHTML(doc.Body())))
}

func (s *Server) page(body string) string {
	var b strings.Builder
	b.WriteString("<!DOCTYPE html>\n<html><head><meta charset=\"utf-8\"><title>")
	b.WriteString(html.EscapeString(s.config.Title))
	b.WriteString("</title></head><body>")
	b.WriteString(body)
	b.WriteString("</body></html>\n")
	return b.String()
}

// HandleWebSocket upgrades the connection and runs a session on it until the
// client disconnects. The initial URL comes from the "url" query parameter.
func (s *Server) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	client, cookie := clientID(r)
	var header http.Header
	if cookie != nil {
		header = http.Header{"Set-Cookie": {cookie.String()}}
	}
	conn, err := s.upgrader.Upgrade(w, r, header)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	start := r.URL.Query().Get("url")
	if start == "" {
		start = "/"
	}

	s.mu.Lock()
	s.nextID++
	id := fmt.Sprintf("s%d", s.nextID)
	s.mu.Unlock()

	sess, err := newSession(id, client, conn, start, s)
	if err != nil {
		s.logger.Error("session start failed", "session", id, "error", err)
		conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseInternalServerErr, "session start failed"))
		conn.Close()
		return
	}

	s.track(sess)
	defer s.untrack(sess)
	if err := sess.sendInit(); err != nil {
		s.logger.Error("session init failed", "session", id, "error", err)
		sess.Close()
		return
	}
	sess.ReadLoop()
}

func (s *Server) track(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess] = struct{}{}
	s.metrics.Sessions(len(s.sessions))
}

func (s *Server) untrack(sess *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess)
	s.metrics.Sessions(len(s.sessions))
}

// clientID returns the client identifier carried by r. When r has none, or
// a malformed one, it returns a fresh identifier and the cookie that carries
// it.
func clientID(r *http.Request) (string, *http.Cookie) {
	if c, err := r.Cookie(ClientCookie); err == nil && validClientID(c.Value) {
		return c.Value, nil
	}
	id := generateClientID()
	return id, &http.Cookie{
		Name:     ClientCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
}

// generateClientID returns 16 random bytes, hex encoded.
func generateClientID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("crypto/rand failed: %v", err))
	}
	return hex.EncodeToString(b)
}

func validClientID(id string) bool {
	if len(id) != 32 {
		return false
	}
	_, err := hex.DecodeString(id)
	return err == nil
}

// SessionCount returns the number of live sessions.
func (s *Server) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Run listens on the configured address until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.config.Address,
		Handler: s,
	}
	s.mu.Lock()
	s.httpServer = srv
	s.mu.Unlock()

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "address", s.config.Address)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != http.ErrServerClosed {
			return err
		}
		return nil
	case <-ctx.Done():
		s.logger.Info("shutting down...")
		return s.Shutdown(context.Background())
	}
}

// Shutdown disconnects every session and stops the HTTP server. Each
// session's ReadLoop destroys its own app instance once its connection
// drops.
func (s *Server) Shutdown(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.config.ShutdownTimeout)
	defer cancel()

	s.mu.Lock()
	sessions := make([]*Session, 0, len(s.sessions))
	for sess := range s.sessions {
		sessions = append(sessions, sess)
	}
	srv := s.httpServer
	s.mu.Unlock()

	for _, sess := range sessions {
		sess.Disconnect()
	}

	if srv != nil {
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Error("shutdown error", "error", err)
			return err
		}
	}
	s.logger.Info("server shutdown complete")
	return nil
}
