package glint

import (
	"log/slog"

	"github.com/glintkit/glint/internal/errors"
	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/host"
	"github.com/glintkit/glint/pkg/snapshot"
)

// Option configures an App.
type Option func(*App)

// WithLogger sets the application logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *App) { a.logger = logger }
}

// WithAddr sets the listen address used by serving commands.
func WithAddr(addr string) Option {
	return func(a *App) { a.addr = addr }
}

// WithRegistry replaces the app's element registry. Use this to share
// one registry between applications or to pre-register elements.
func WithRegistry(registry *element.Registry) Option {
	return func(a *App) { a.registry = registry }
}

// WithMiddleware appends event middleware, outermost first.
func WithMiddleware(mw ...host.Middleware) Option {
	return func(a *App) { a.chain = append(a.chain, mw...) }
}

// WithObserver sets the session lifecycle observer.
func WithObserver(o host.Observer) Option {
	return func(a *App) { a.observer = o }
}

// WithSnapshots sets the snapshot store used by App.Snapshot.
func WithSnapshots(store snapshot.Store) Option {
	return func(a *App) { a.snapshots = store }
}

// errNoSnapshotStore is returned by Snapshot when no store was wired.
func errNoSnapshotStore() error {
	return errors.Newf(errors.CategorySnapshot, "no snapshot store configured").
		WithSuggestion("pass glint.WithSnapshots when constructing the App")
}
