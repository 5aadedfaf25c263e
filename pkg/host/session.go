package host

import (
	"log/slog"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/glintkit/glint/pkg/element"
)

// SessionConfig tunes per-connection timeouts and queue sizes.
type SessionConfig struct {
	ReadTimeout       time.Duration
	WriteTimeout      time.Duration
	HeartbeatInterval time.Duration
	MaxEventQueue     int
}

// DefaultSessionConfig returns the default session configuration.
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		ReadTimeout:       60 * time.Second,
		WriteTimeout:      10 * time.Second,
		HeartbeatInterval: 30 * time.Second,
		MaxEventQueue:     64,
	}
}

// Session pairs one WebSocket connection with one mounted instance.
// The event loop goroutine owns the instance: all event dispatch and
// every scheduler flush happen there, which is what makes synchronous
// mutation runs coalesce into single re-renders.
type Session struct {
	id    uint64
	conn  *websocket.Conn
	inst  *element.Instance
	sched *element.Scheduler
	chain []Middleware

	config SessionConfig
	logger *slog.Logger

	events chan Event
	done   chan struct{}

	// writeMu serializes frame writes; gorilla connections allow only
	// one concurrent writer.
	writeMu sync.Mutex

	closed  atomic.Bool
	sendSeq atomic.Uint64

	onClose  func(*Session)
	observer Observer
}

var sessionSeq atomic.Uint64

// NewSession wires a connection to a freshly mounted instance.
func NewSession(conn *websocket.Conn, sched *element.Scheduler, inst *element.Instance, chain []Middleware, config SessionConfig, logger *slog.Logger) *Session {
	id := sessionSeq.Add(1)
	return &Session{
		id:     id,
		conn:   conn,
		inst:   inst,
		sched:  sched,
		chain:  chain,
		config: config,
		logger: logger.With("session", id, "tag", inst.Tag()),
		events: make(chan Event, config.MaxEventQueue),
		done:   make(chan struct{}),
	}
}

// ID returns the session's identifier.
func (s *Session) ID() uint64 {
	return s.id
}

// Instance returns the mounted instance this session drives.
func (s *Session) Instance() *element.Instance {
	return s.inst
}

// Start launches the session's read and event loops.
func (s *Session) Start() {
	go s.readLoop()
	go s.eventLoop()
}

// readLoop reads frames from the connection and queues events for the
// event loop. It blocks until the connection closes.
func (s *Session) readLoop() {
	defer s.Close()

	for {
		s.conn.SetReadDeadline(time.Now().Add(s.config.ReadTimeout))

		_, msg, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				s.logger.Error("read error", "error", err)
			}
			return
		}

		frame, err := DecodeFrame(msg)
		if err != nil {
			s.logger.Error("frame decode error", "error", err)
			s.writeFrame(EncodeError(err))
			continue
		}

		switch frame.Type {
		case EventSetAttr, EventRemoveAttr:
			event := Event{Type: frame.Type, Name: frame.Name, Value: frame.Value}
			select {
			case s.events <- event:
			default:
				s.logger.Warn("event queue full, dropping event", "type", frame.Type)
			}

		case FramePing:
			s.writeFrame([]byte(`{"type":"pong"}`))

		case FramePong:
			// The client answering our heartbeat; nothing to do.

		default:
			s.logger.Warn("unknown frame type", "type", frame.Type)
			s.writeFrame(EncodeError(errUnsupportedEvent(frame.Type)))
		}
	}
}

// eventLoop processes queued events and pushes coalesced re-renders.
// It runs until the session is closed.
func (s *Session) eventLoop() {
	ticker := time.NewTicker(s.config.HeartbeatInterval)
	defer ticker.Stop()

	for {
		select {
		case event := <-s.events:
			s.dispatch(event)

		case <-s.sched.Notify():
			s.flush()

		case <-ticker.C:
			s.writeFrame([]byte(`{"type":"ping"}`))

		case <-s.done:
			return
		}
	}
}

// dispatch runs one event through the middleware chain with panic
// recovery, then flushes any renders it scheduled.
func (s *Session) dispatch(event Event) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("dispatch panic",
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()

	c := &Ctx{
		Session:  s,
		Instance: s.inst,
		Event:    event,
		Logger:   s.logger,
	}
	if err := Dispatch(c, s.chain); err != nil {
		s.logger.Error("dispatch error", "type", event.Type, "error", err)
		s.writeFrame(EncodeError(err))
		return
	}

	// Flush synchronously so the event's render reaches the client
	// before the next event is processed.
	s.flush()
}

// flush drains the scheduler and sends one patches frame per update.
func (s *Session) flush() {
	for _, update := range s.sched.Flush() {
		if len(update.Patches) == 0 {
			continue
		}

		data, err := EncodePatches(s.sendSeq.Add(1), update.Patches)
		if err != nil {
			s.logger.Error("patch encode error", "error", err)
			continue
		}
		if err := s.writeFrame(data); err != nil {
			return
		}
		if s.observer != nil {
			s.observer.PatchesSent(s.inst.Tag(), len(update.Patches))
		}
		s.logger.Debug("patches sent", "count", len(update.Patches))
	}
}

// writeFrame writes one frame under the write mutex.
func (s *Session) writeFrame(data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if s.closed.Load() {
		return websocket.ErrCloseSent
	}

	s.conn.SetWriteDeadline(time.Now().Add(s.config.WriteTimeout))
	if err := s.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		s.logger.Error("write error", "error", err)
		s.closeInternal()
		return err
	}
	return nil
}

// Close shuts the session down. Safe to call more than once.
func (s *Session) Close() {
	s.writeMu.Lock()
	s.closeInternal()
	s.writeMu.Unlock()
}

// closeInternal performs the close. Caller holds writeMu.
func (s *Session) closeInternal() {
	if !s.closed.CompareAndSwap(false, true) {
		return
	}
	close(s.done)
	s.conn.Close()
	s.inst.Dispose()
	if s.onClose != nil {
		s.onClose(s)
	}
	s.logger.Info("session closed")
}
