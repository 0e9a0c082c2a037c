package main

import (
	"context"
	"errors"
	"flag"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/geoplot/internal/adapters/trajectory"
	"github.com/okian/geoplot/internal/app"
	"github.com/okian/geoplot/internal/config"
	"github.com/okian/geoplot/pkg/logger"
	"github.com/okian/geoplot/pkg/metrics"
)

// Process exit codes.
const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

// run renders one trajectory file and returns the process exit code.
func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("geoplot", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		trajectoryPath = fs.String("trajectory", "", "Trajectory file (.json, .yaml, .msgpack; optionally .gz or .zst)")
		configPath     = fs.String("config", "", "YAML config file (default: $GEOPLOT_CONFIG)")
		metricsPath    = fs.String("metrics", "", "Write Prometheus textfile metrics here after the render")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if *trajectoryPath == "" {
		_, _ = io.WriteString(stderr, "missing -trajectory\n")
		fs.Usage()
		return exitUsage
	}

	// Initialize logging
	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		// Use the raw writer for initialization errors since logger isn't available yet
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return exitFailed
	}
	defer func() {
		_ = logger.Sync()
	}()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx, config.WithFile(*configPath))
	if err != nil {
		_, _ = io.WriteString(stderr, "failed to load config: "+err.Error()+"\n")
		return exitFailed
	}

	// Re-initialize with the configured sink and encoding
	if cfg.LogFile != "" || cfg.LogFormat == "json" {
		if err := logger.Init(
			logger.WithWriter(stderr),
			logger.WithFile(cfg.LogFile),
			logger.WithJSON(cfg.LogFormat == "json"),
		); err != nil {
			_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
			return exitFailed
		}
	}
	log := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	engine, err := app.New(cfg, app.WithLogger(log.Named("engine")))
	if err != nil {
		log.Error(ctx, "invalid configuration", logger.Error(err))
		return exitFailed
	}

	traj, err := trajectory.Load(ctx, *trajectoryPath)
	if err != nil {
		log.Error(ctx, "failed to load trajectory", logger.String("path", *trajectoryPath), logger.Error(err))
		return exitFailed
	}

	renderErr := engine.Render(ctx, traj)

	if path := firstNonEmpty(*metricsPath, cfg.MetricsFile); path != "" {
		if err := metrics.Default().WriteTextfile(path); err != nil {
			log.Warn(ctx, "failed to write metrics", logger.String("path", path), logger.Error(err))
		}
	}

	if renderErr != nil {
		return exitFailed
	}
	geoJSONPath, htmlPath := engine.Outputs()
	log.Info(ctx, "outputs ready", logger.String("geojson", geoJSONPath), logger.String("html", htmlPath))
	return exitOK
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}
