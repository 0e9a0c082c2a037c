// Package config defines geoplot configuration structures and loading hooks.
//
// Conventions:
//   - Render options (token, step, paths, mode, simulation metadata) have no
//     defaults; Validate rejects a Config that leaves any of them unset.
//   - Ambient options (logging, output directory) default in New.
//   - External errors are wrapped with this package's sentinel errors.
package config

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/okian/geoplot/internal/domain/model"
	"github.com/okian/geoplot/internal/domain/timeline"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFile, when set, sends logs to a size-rotated file instead of stderr.
	LogFile string `koanf:"log_file"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// CesiumToken is the Cesium Ion access token embedded in the page.
	CesiumToken string `koanf:"cesium_token"`

	// StepTime is the interval between timestamp slots, in seconds.
	StepTime float64 `koanf:"step_time"`

	// Coordinates is the snapshot path of the entity position array.
	Coordinates string `koanf:"coordinates"`

	// Feature is the snapshot path of the entity feature array.
	Feature string `koanf:"feature"`

	// VisualizationType is "color" or "size".
	VisualizationType string `koanf:"visualization_type"`

	// Simulation names the output files and sizes the timestamp sequence.
	Simulation model.SimulationMetadata `koanf:"simulation_metadata"`

	// OutputDir is where <name>.geojson and <name>.html are written.
	OutputDir string `koanf:"output_dir"`

	// StartTime pins the first timestamp (RFC 3339). Empty means "now".
	StartTime string `koanf:"start_time"`

	// MetricsFile, when set, receives a Prometheus text dump after a render.
	MetricsFile string `koanf:"metrics_file"`
}

// New creates a Config holding only the ambient defaults.
func New() *Config {
	return &Config{
		LogLevel:  "info",
		LogFormat: "text",
		OutputDir: ".",
	}
}

// Validate checks every required render option and returns an error wrapping
// ErrInvalidConfig that names all problems found.
func (c *Config) Validate() error {
	var problems []string
	if c.CesiumToken == "" {
		problems = append(problems, "cesium_token is required")
	}
	switch step := c.Step(); {
	case step <= 0:
		problems = append(problems, fmt.Sprintf(
			"step_time must be a finite number of seconds between 1ns and %s, got %v", time.Duration(math.MaxInt64), c.StepTime))
	case !timeline.Fits(step, c.Simulation.Slots()):
		problems = append(problems, fmt.Sprintf(
			"step_time %v over %d slots overflows the time range", c.StepTime, c.Simulation.Slots()))
	}
	if strings.TrimSpace(c.Coordinates) == "" {
		problems = append(problems, "coordinates path is required")
	}
	if strings.TrimSpace(c.Feature) == "" {
		problems = append(problems, "feature path is required")
	}
	if _, ok := model.ParseMode(c.VisualizationType); !ok {
		problems = append(problems, fmt.Sprintf("visualization_type must be %q or %q, got %q",
			model.ModeColor, model.ModeSize, c.VisualizationType))
	}
	if c.Simulation.Name == "" {
		problems = append(problems, "simulation_metadata.name is required")
	}
	if c.Simulation.NumEpisodes <= 0 {
		problems = append(problems, "simulation_metadata.num_episodes must be positive")
	}
	if c.Simulation.NumStepsPerEpisode <= 0 {
		problems = append(problems, "simulation_metadata.num_steps_per_episode must be positive")
	}
	if c.OutputDir == "" {
		problems = append(problems, "output_dir must not be empty")
	}
	if _, _, err := c.Start(); err != nil {
		problems = append(problems, err.Error())
	}

	if len(problems) > 0 {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(problems, "; "))
	}
	return nil
}

// Mode returns the parsed visualization mode. Call after Validate.
func (c *Config) Mode() model.Mode {
	m, _ := model.ParseMode(c.VisualizationType)
	return m
}

// Step returns StepTime as a duration.
func (c *Config) Step() time.Duration {
	return timeline.StepFromSeconds(c.StepTime)
}

// Start parses StartTime. ok is false when no start time is configured.
func (c *Config) Start() (start time.Time, ok bool, err error) {
	if c.StartTime == "" {
		return time.Time{}, false, nil
	}
	start, err = time.Parse(time.RFC3339Nano, c.StartTime)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("start_time %q is not RFC 3339: %v", c.StartTime, err)
	}
	return start.UTC(), true, nil
}
