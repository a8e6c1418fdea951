package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"sequincore/internal/blob"
	"sequincore/internal/config"
	"sequincore/internal/core"
)

// app carries the wiring shared by every subcommand.
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	logLevel   string
	noColor    bool

	cfg      config.Config
	logger   *log.Logger
	registry *prometheus.Registry
	store    core.PersistentStore
	svc      *core.Service
}

func newApp(in io.Reader, out, errOut io.Writer) *app {
	return &app{in: in, out: out, errOut: errOut}
}

// setup resolves configuration and opens the store and archive.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.LogLevel = strings.ToLower(a.logLevel)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	a.cfg = cfg
	if a.noColor {
		color.NoColor = true
	}

	a.logger = newLogger(a.errOut, cfg.LogLevel)
	a.logger.Debug("loaded config", "storage", cfg.StorageDriver, "blob", cfg.BlobDriver, "metrics_addr", cfg.MetricsAddr)

	a.registry = prometheus.NewRegistry()
	a.registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	metrics, err := core.NewPrometheusMetricsRecorder(a.registry)
	if err != nil {
		return err
	}

	store, err := core.OpenPersistentStore(core.NewDefaultRulesEngine(), cfg.Storage())
	if err != nil {
		return err
	}
	a.store = store

	blobs, err := blob.Open(cmd.Context(), cfg.Blob())
	if err != nil {
		return fmt.Errorf("open blob store: %w", err)
	}

	a.svc = core.NewService(store,
		core.WithLogger(charmLogger{l: a.logger}),
		core.WithMetricsRecorder(metrics),
		core.WithArchive(blob.NewArchive(blobs)),
	)
	return nil
}

func (a *app) close() error {
	if a.store == nil {
		return nil
	}
	err := core.CloseStore(a.store)
	a.store = nil
	return err
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.New(w)
	switch level {
	case "debug":
		logger.SetLevel(log.DebugLevel)
	case "warn":
		logger.SetLevel(log.WarnLevel)
	case "error":
		logger.SetLevel(log.ErrorLevel)
	default:
		logger.SetLevel(log.InfoLevel)
	}
	return logger
}

// charmLogger adapts a charm logger to core.Logger.
type charmLogger struct {
	l *log.Logger
}

func (c charmLogger) Debug(msg string, args ...any) { c.l.Debug(msg, args...) }
func (c charmLogger) Info(msg string, args ...any)  { c.l.Info(msg, args...) }
func (c charmLogger) Warn(msg string, args ...any)  { c.l.Warn(msg, args...) }
func (c charmLogger) Error(msg string, args ...any) { c.l.Error(msg, args...) }
