package host

import (
	"log/slog"

	"github.com/glintkit/glint/pkg/element"
)

// Event types dispatched through the middleware chain.
const (
	EventSetAttr    = "set-attr"
	EventRemoveAttr = "remove-attr"
)

// Event is one inbound client action.
type Event struct {
	// Type is EventSetAttr or EventRemoveAttr.
	Type string

	// Name is the boundary attribute name.
	Name string

	// Value is the attribute value (EventSetAttr only).
	Value string
}

// Ctx carries one event through the middleware chain to the instance.
type Ctx struct {
	// Session is the connection the event arrived on. Nil in tests that
	// drive dispatch directly.
	Session *Session

	// Instance is the mounted element the event targets.
	Instance *element.Instance

	// Event is the inbound action.
	Event Event

	// Logger is the session's logger.
	Logger *slog.Logger
}

// Tag returns the target element's tag name.
func (c *Ctx) Tag() string {
	if c.Instance == nil {
		return ""
	}
	return c.Instance.Tag()
}

// Middleware wraps event dispatch. Call next to continue the chain;
// returning without calling it short-circuits the event.
type Middleware func(c *Ctx, next func() error) error

// Dispatch runs an event through the middleware chain and applies it to
// the instance.
func Dispatch(c *Ctx, chain []Middleware) error {
	final := func() error {
		return apply(c)
	}

	// Build the chain inside-out so chain[0] runs first.
	next := final
	for i := len(chain) - 1; i >= 0; i-- {
		mw := chain[i]
		inner := next
		next = func() error {
			return mw(c, inner)
		}
	}
	return next()
}

// apply is the terminal handler: it forwards the event to the instance.
func apply(c *Ctx) error {
	switch c.Event.Type {
	case EventSetAttr:
		c.Instance.SetAttribute(c.Event.Name, c.Event.Value)
		return nil
	case EventRemoveAttr:
		c.Instance.RemoveAttribute(c.Event.Name)
		return nil
	default:
		return errUnsupportedEvent(c.Event.Type)
	}
}
