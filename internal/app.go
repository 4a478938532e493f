package internal

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fgd/internal/controllers"
	"fgd/internal/providers"
	"fgd/internal/scheduler"
	"fgd/internal/structures"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type App struct {
	WebServer *http.Server
}

func NewApp(healthController *controllers.HealthController, sched scheduler.SchedulerInterface, conf *structures.Config, logger providers.Logger, router providers.RouterProviderInterface, metrics providers.MetricsProviderInterface, flags *structures.CliFlags) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	if flags.Once {
		result, err := sched.RunNow(context.Background())
		if err != nil {
			return nil, err
		}
		fmt.Printf("Refresh complete: %d fetched, %d current, %d upcoming, %d past ratings backfilled\n",
			result.Fetched, result.Current, result.Upcoming, result.Backfilled)
		fmt.Printf("Snapshot: %s\n", conf.Persistence.FilePath)
		return &App{}, nil
	}

	// Inner mux: API routes
	apiMux := http.NewServeMux()
	for _, route := range router.GetRoutes() {
		apiMux.Handle(route.Url, route.Handler)
	}

	// Wrap API routes with metrics middleware
	instrumentedAPI := providers.MetricsMiddleware(metrics, apiMux)

	// Outer mux: infrastructure + instrumented API
	mux := http.NewServeMux()
	mux.HandleFunc("/health", healthController.Health)
	if conf.Metrics.Enabled {
		mux.Handle("/metrics", promhttp.Handler())
	}
	mux.Handle("/", instrumentedAPI)

	app := &App{
		WebServer: &http.Server{
			Addr:         conf.WebServer.Host + ":" + strconv.Itoa(conf.WebServer.Port),
			Handler:      mux,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}

	// First refresh runs in the background so the server is reachable
	// immediately; the snapshot file covers reads until it finishes.
	go func() {
		if _, err := sched.RunNow(context.Background()); err != nil {
			logger.Errorf(providers.TypeApp, "Initial refresh failed: %s", err)
		}
	}()

	sched.Init()

	serverErr := make(chan error, 1)
	go func() {
		logger.Infof(providers.TypeApp, "Listening HTTP clients on %s:%d", conf.WebServer.Host, conf.WebServer.Port)
		if err := app.WebServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		logger.Infof(providers.TypeApp, "Shutdown signal received")
	case err := <-serverErr:
		return nil, fmt.Errorf("server error: %w", err)
	}

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.WebServer.Shutdown(ctx); err != nil {
		return nil, err
	}
	logger.Infof(providers.TypeApp, "gracefully stopped")
	return app, nil
}
