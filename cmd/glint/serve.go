package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/glintkit/glint"
	"github.com/glintkit/glint/internal/config"
	"github.com/glintkit/glint/pkg/host"
	"github.com/glintkit/glint/pkg/middleware"
	"github.com/glintkit/glint/pkg/titlebar"
)

func serveCmd() *cobra.Command {
	var (
		port    int
		hostArg string
		metrics bool
		tracing bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the element server",
		Long: `Start the HTTP server hosting the defined elements.

Serves an index of defined tags at /, one page per element at
/e/<tag>, live WebSocket sessions at /live, and (with --metrics)
Prometheus metrics at /metrics.

Examples:
  glint serve
  glint serve --port=8080
  glint serve --metrics`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(port, hostArg, metrics, tracing)
		},
	}

	cmd.Flags().IntVarP(&port, "port", "p", 0, "Port to listen on (default from glint.json)")
	cmd.Flags().StringVarP(&hostArg, "host", "H", "", "Host to bind to (default from glint.json)")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "Expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&tracing, "tracing", false, "Trace event dispatch with OpenTelemetry")

	return cmd
}

func runServe(port int, hostArg string, metrics, tracing bool) error {
	cfg := loadConfigOrDefault()
	if port > 0 {
		cfg.Port = port
	}
	if hostArg != "" {
		cfg.Host = hostArg
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	var opts []glint.Option
	opts = append(opts, glint.WithLogger(logger), glint.WithAddr(cfg.Address()))

	var chain []host.Middleware
	if metrics {
		chain = append(chain, middleware.Prometheus())
	}
	if tracing {
		chain = append(chain, middleware.OpenTelemetry())
	}
	if len(chain) > 0 {
		opts = append(opts, glint.WithMiddleware(chain...))
	}
	if metrics {
		if m := middleware.GetMetrics(); m != nil {
			opts = append(opts, glint.WithObserver(m))
		}
	}

	app := glint.New(opts...)
	if err := app.Define(titlebar.Tag, titlebar.Factory); err != nil {
		return err
	}

	router := chi.NewRouter()
	router.Mount("/", app.Handler())
	if metrics {
		router.Handle("/metrics", promhttp.Handler())
	}

	server := &http.Server{
		Addr:              cfg.Address(),
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	printBanner()
	fmt.Println()
	success("Serving %d element(s) on http://%s", len(app.Registry().Tags()), cfg.Address())
	for _, tag := range app.Registry().Tags() {
		info("http://%s/e/%s", cfg.Address(), tag)
	}
	if metrics {
		info("http://%s/metrics", cfg.Address())
	}
	fmt.Println()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case <-ctx.Done():
		info("shutting down")
		app.Shutdown()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			return err
		}
		success("server stopped")
	}

	return nil
}

// loadConfigOrDefault loads glint.json from the working directory tree,
// falling back to defaults when no project file exists.
func loadConfigOrDefault() *config.Config {
	wd, err := os.Getwd()
	if err != nil {
		return config.New()
	}
	root, err := config.FindProjectRoot(wd)
	if err != nil {
		return config.New()
	}
	cfg, err := config.Load(root)
	if err != nil {
		errorMsg("invalid glint.json: %s", err)
		return config.New()
	}
	return cfg
}
