// Command gen-trajectory writes a synthetic trajectory for trying geoplot out.
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
	"github.com/okian/geoplot/internal/sample"
	"github.com/okian/geoplot/pkg/logger"
)

// Default generator shape.
const (
	defaultEntities = 25
	defaultEpisodes = 10
	defaultSteps    = 24
	defaultSeed     = 1
	defaultOutput   = "trajectory.json"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stderr io.Writer) int {
	fs := flag.NewFlagSet("gen-trajectory", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		entities    = fs.Int("entities", defaultEntities, "Number of simulated entities")
		episodes    = fs.Int("episodes", defaultEpisodes, "Number of episodes")
		steps       = fs.Int("steps", defaultSteps, "Snapshots per episode")
		seed        = fs.Uint64("seed", defaultSeed, "Random seed")
		coordinates = fs.String("coordinates", "agents/coordinates", "Snapshot path of the position array")
		feature     = fs.String("feature", "agents/infected", "Snapshot path of the feature array")
		output      = fs.String("output", defaultOutput, "Output file; the extension picks the format (.json, .yaml, .msgpack, plus .gz or .zst)")
		verbose     = fs.Bool("verbose", false, "Enable verbose logging")
	)
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if err := logger.Init(logger.WithWriter(stderr)); err != nil {
		_, _ = io.WriteString(stderr, "failed to initialize logging: "+err.Error()+"\n")
		return 1
	}
	if *verbose {
		_ = logger.SetLevelString("debug")
	}
	log := logger.Named("gen-trajectory")

	traj, err := sample.Generate(
		sample.WithEntities(*entities),
		sample.WithEpisodes(*episodes),
		sample.WithSteps(*steps),
		sample.WithSeed(*seed),
		sample.WithPaths(*coordinates, *feature),
	)
	if err != nil {
		log.Error(ctx, "failed to generate trajectory", logger.Error(err))
		return 1
	}
	log.Debug(ctx, "trajectory generated", logger.Int("episodes", len(traj)), logger.Int("steps", traj.Steps()))

	if err := trajectory.Save(ctx, *output, traj); err != nil {
		log.Error(ctx, "failed to save trajectory", logger.String("path", *output), logger.Error(err))
		return 1
	}

	log.Info(ctx, "trajectory written",
		logger.String("path", *output),
		logger.Int("entities", *entities),
		logger.Int("episodes", *episodes),
		logger.Int("steps", *steps),
	)
	return 0
}
