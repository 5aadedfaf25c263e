package host

import (
	"log/slog"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"

	stderrors "errors"

	"github.com/glintkit/glint/internal/errors"
	"github.com/glintkit/glint/pkg/element"
)

// Observer receives session lifecycle and delivery notifications.
// Metrics layers implement it to track active sessions and patch
// volume.
type Observer interface {
	SessionStarted(tag string)
	SessionClosed(tag string)
	PatchesSent(tag string, count int)
}

// Host serves pages for defined elements and upgrades live connections.
type Host struct {
	registry *element.Registry
	logger   *slog.Logger
	upgrader websocket.Upgrader
	chain    []Middleware
	config   SessionConfig
	observer Observer

	mu       sync.Mutex
	sessions map[uint64]*Session
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the host's logger.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) { h.logger = logger }
}

// WithMiddleware appends event middleware. Middleware run in the order
// given, outermost first.
func WithMiddleware(mw ...Middleware) Option {
	return func(h *Host) { h.chain = append(h.chain, mw...) }
}

// WithSessionConfig overrides the per-connection timeouts.
func WithSessionConfig(config SessionConfig) Option {
	return func(h *Host) { h.config = config }
}

// WithObserver sets the session lifecycle observer.
func WithObserver(o Observer) Option {
	return func(h *Host) { h.observer = o }
}

// WithCheckOrigin sets the WebSocket origin check.
func WithCheckOrigin(fn func(*http.Request) bool) Option {
	return func(h *Host) { h.upgrader.CheckOrigin = fn }
}

// New creates a Host over a registry.
func New(registry *element.Registry, opts ...Option) *Host {
	h := &Host{
		registry: registry,
		logger:   slog.Default().With("component", "host"),
		config:   DefaultSessionConfig(),
		sessions: make(map[uint64]*Session),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Registry returns the host's element registry.
func (h *Host) Registry() *element.Registry {
	return h.registry
}

// SessionCount returns the number of live sessions.
func (h *Host) SessionCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.sessions)
}

// Router builds the host's HTTP routes.
func (h *Host) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)

	r.Get("/", h.handleIndex)
	r.Get("/e/{tag}", h.handlePage)
	r.Get("/live", h.handleLive)
	r.Get("/healthz", h.handleHealth)

	return r
}

// handleHealth reports liveness.
func (h *Host) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte("ok\n"))
}

// handleIndex lists the defined tags.
func (h *Host) handleIndex(w http.ResponseWriter, r *http.Request) {
	html, err := indexPage(h.registry.Tags())
	if err != nil {
		h.logger.Error("index render failed", "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handlePage serves the server-rendered page for one element.
func (h *Host) handlePage(w http.ResponseWriter, r *http.Request) {
	tag := chi.URLParam(r, "tag")

	el, err := h.registry.New(tag)
	if err != nil {
		h.writeError(w, err)
		return
	}

	// A throwaway scheduler: the page render is one-shot, the live
	// session mounts its own instance.
	sched := element.NewScheduler()
	inst, err := sched.Mount(el)
	if err != nil {
		h.writeError(w, err)
		return
	}
	defer inst.Dispose()

	html, err := elementPage(tag, inst.Tree())
	if err != nil {
		h.logger.Error("page render failed", "tag", tag, "error", err)
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(html))
}

// handleLive upgrades the connection and starts a session.
func (h *Host) handleLive(w http.ResponseWriter, r *http.Request) {
	tag := r.URL.Query().Get("tag")

	el, err := h.registry.New(tag)
	if err != nil {
		h.writeError(w, err)
		return
	}

	sched := element.NewScheduler()
	inst, err := sched.Mount(el)
	if err != nil {
		h.writeError(w, err)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Error("upgrade failed", "error", err)
		return
	}

	session := NewSession(conn, sched, inst, h.chain, h.config, h.logger)
	session.observer = h.observer
	session.onClose = func(s *Session) {
		h.mu.Lock()
		delete(h.sessions, s.id)
		h.mu.Unlock()
		if h.observer != nil {
			h.observer.SessionClosed(tag)
		}
	}

	h.mu.Lock()
	h.sessions[session.id] = session
	h.mu.Unlock()
	if h.observer != nil {
		h.observer.SessionStarted(tag)
	}

	h.logger.Info("session started", "session", session.id, "tag", tag)
	session.Start()
}

// Shutdown closes all live sessions.
func (h *Host) Shutdown() {
	h.mu.Lock()
	sessions := make([]*Session, 0, len(h.sessions))
	for _, s := range h.sessions {
		sessions = append(sessions, s)
	}
	h.mu.Unlock()

	for _, s := range sessions {
		s.Close()
	}
}

// writeError maps structured errors to HTTP status codes.
func (h *Host) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	var ge *errors.GlintError
	if stderrors.As(err, &ge) && ge.Code == "E003" {
		status = http.StatusNotFound
	}
	http.Error(w, err.Error(), status)
}
