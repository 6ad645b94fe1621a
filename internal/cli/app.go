package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/junhyuk/finadvisor/internal/advisor"
	"github.com/junhyuk/finadvisor/internal/artifact"
	"github.com/junhyuk/finadvisor/internal/config"
	"github.com/junhyuk/finadvisor/internal/logger"
	"github.com/junhyuk/finadvisor/internal/metrics"
)

// app bundles the wired services a command needs to run research.
type app struct {
	cfg       *config.Config
	log       *logger.Logger
	metrics   *metrics.Metrics
	advisor   *advisor.Advisor
	artifacts *artifact.SQLiteStore
}

// newApp loads configuration and assembles the advisor stack.
func newApp() (*app, error) {
	loader := config.NewLoader(cfgFile)
	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}

	if err := config.NewValidator().Validate(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	log, err := logger.New(logger.Config{
		Level:     cfg.Logging.Level,
		File:      cfg.Logging.File,
		Console:   true,
		Pretty:    cfg.Logging.Pretty,
		Redaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := artifact.NewSQLiteStore(filepath.Join(cfg.DataDir, "artifacts.db"), func(o *artifact.Options) {
		o.Logger = log.GetZerolog()
	})
	if err != nil {
		_ = log.Close()
		return nil, fmt.Errorf("failed to open artifact store: %w", err)
	}

	m := metrics.NewMetrics()

	adv, err := advisor.New(cfg, func(o *advisor.Options) {
		o.ArtifactStore = store
		o.MeshLogger = logger.NewMeshLogger(log.GetZerolog())
		o.Metrics = m
		o.Logger = log.GetZerolog()
	})
	if err != nil {
		_ = store.Close()
		_ = log.Close()
		return nil, fmt.Errorf("failed to build advisor: %w", err)
	}

	return &app{
		cfg:       cfg,
		log:       log,
		metrics:   m,
		advisor:   adv,
		artifacts: store,
	}, nil
}

// Close releases the app's resources.
func (a *app) Close() {
	_ = a.artifacts.Close()
	_ = a.log.Close()
}

// newSessionID generates a fresh session identifier.
func newSessionID(prefix string) string {
	id, err := gonanoid.New()
	if err != nil {
		// Extremely unlikely; fall back to a time-based id.
		id = fmt.Sprintf("%d", time.Now().UnixNano())
	}
	return fmt.Sprintf("%s-%s", prefix, id)
}

// serveMetrics exposes the Prometheus endpoint on addr until the context
// is cancelled. A blank addr disables the listener.
func (a *app) serveMetrics(ctx context.Context, addr string) {
	if addr == "" {
		return
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		a.log.Info().Str("addr", addr).Msg("metrics listener started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			a.log.Error().Err(err).Msg("metrics listener failed")
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
}

// research runs one query and writes any saved artifacts to the report
// output directory.
func (a *app) research(ctx context.Context, sessionID, query string) (*advisor.Result, error) {
	res, err := a.advisor.Research(ctx, sessionID, query, func(o *advisor.ResearchOptions) {
		o.OnEvent = a.printEvent
	})
	if err != nil {
		return nil, err
	}

	if err := a.exportArtifacts(res); err != nil {
		return nil, err
	}

	return res, nil
}

// exportArtifacts copies the run's saved artifacts into the output dir.
func (a *app) exportArtifacts(res *advisor.Result) error {
	if len(res.Artifacts) == 0 {
		return nil
	}

	dir := a.cfg.Output.Dir
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, id := range res.Artifacts {
		data, err := a.advisor.Artifact(res.SessionID, id)
		if err != nil {
			return fmt.Errorf("failed to load artifact %s: %w", id, err)
		}
		path := filepath.Join(dir, id)
		if err := os.WriteFile(path, data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Report saved: %s\n", path)
	}

	return nil
}
