// Package glint provides the public API for the glint element toolkit.
//
// This is the recommended import for most applications:
//
//	import "github.com/glintkit/glint"
//
// Usage:
//
//	app := glint.New(glint.WithAddr(":3000"))
//	app.Define(titlebar.Tag, titlebar.Factory)
//	http.ListenAndServe(":3000", app.Handler())
package glint

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/glintkit/glint/pkg/element"
	"github.com/glintkit/glint/pkg/host"
	"github.com/glintkit/glint/pkg/reactive"
	"github.com/glintkit/glint/pkg/render"
	"github.com/glintkit/glint/pkg/snapshot"
	"github.com/glintkit/glint/pkg/vdom"
)

// Re-exports so simple applications import one package.

// Element is the custom-element contract.
type Element = element.Element

// Factory instantiates elements for the registry.
type Factory = element.Factory

// Schema declares an element's property set.
type Schema = element.Schema

// NewSignal creates a reactive signal with the given initial value.
func NewSignal[T any](initial T) *reactive.Signal[T] {
	return reactive.NewSignal(initial)
}

// Batch coalesces signal writes into one notification per listener.
var Batch = reactive.Batch

// App wires a registry, a live host, and an optional snapshot store
// into one application surface.
type App struct {
	registry  *element.Registry
	logger    *slog.Logger
	addr      string
	chain     []host.Middleware
	observer  host.Observer
	snapshots snapshot.Store

	host *host.Host
}

// New creates an App.
func New(opts ...Option) *App {
	app := &App{
		registry: element.NewRegistry(),
		logger:   slog.Default(),
		addr:     "localhost:3000",
	}
	for _, opt := range opts {
		opt(app)
	}

	hostOpts := []host.Option{
		host.WithLogger(app.logger),
		host.WithMiddleware(app.chain...),
	}
	if app.observer != nil {
		hostOpts = append(hostOpts, host.WithObserver(app.observer))
	}
	app.host = host.New(app.registry, hostOpts...)

	return app
}

// Define registers an element factory.
func (a *App) Define(tag string, factory Factory) error {
	return a.registry.Define(tag, factory)
}

// Registry returns the app's element registry.
func (a *App) Registry() *element.Registry {
	return a.registry
}

// Addr returns the configured listen address.
func (a *App) Addr() string {
	return a.addr
}

// Host returns the app's live host.
func (a *App) Host() *host.Host {
	return a.host
}

// Handler returns the app's HTTP handler.
func (a *App) Handler() http.Handler {
	return a.host.Router()
}

// RenderToString mounts a fresh instance of a defined tag and returns
// its rendered HTML. One-shot: the instance is disposed afterwards.
func (a *App) RenderToString(tag string) (string, error) {
	el, err := a.registry.New(tag)
	if err != nil {
		return "", err
	}

	sched := element.NewScheduler()
	inst, err := sched.Mount(el)
	if err != nil {
		return "", err
	}
	defer inst.Dispose()

	r := render.NewRenderer(render.RendererConfig{})
	return r.RenderToString(inst.Tree())
}

// Snapshot renders a defined tag and saves it to the configured
// snapshot store, returning the snapshot's location.
func (a *App) Snapshot(ctx context.Context, tag string) (string, error) {
	if a.snapshots == nil {
		return "", errNoSnapshotStore()
	}

	html, err := a.RenderToString(tag)
	if err != nil {
		return "", err
	}
	return a.snapshots.Save(ctx, tag, html)
}

// Shutdown closes the app's live sessions.
func (a *App) Shutdown() {
	a.host.Shutdown()
}

// Render is a convenience for rendering a standalone description.
func Render(node *vdom.VNode) (string, error) {
	r := render.NewRenderer(render.RendererConfig{})
	return r.RenderToString(node)
}
