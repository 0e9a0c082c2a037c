// Package model contains domain models passed between layers.
package model

import "strings"

// Snapshot is one simulation state. It is an opaque nested mapping; only the
// position and feature paths are ever read from it.
type Snapshot = map[string]any

// Episode is the ordered list of per-step snapshots of one simulation run.
type Episode []Snapshot

// Trajectory is the ordered list of episodes produced by the simulation engine.
type Trajectory []Episode

// Steps returns the total number of snapshots across all episodes.
func (t Trajectory) Steps() int {
	n := 0
	for _, ep := range t {
		n += len(ep)
	}
	return n
}

// LatLon is an entity position. It is stored (lat, lon) and emitted (lon, lat).
type LatLon struct {
	Lat float64
	Lon float64
}

// Mode selects how the feature value is encoded on the globe.
type Mode string

// Supported visualization modes.
const (
	ModeColor Mode = "color"
	ModeSize  Mode = "size"
)

// ParseMode normalizes s and reports whether it names a supported mode.
func ParseMode(s string) (Mode, bool) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case ModeColor, ModeSize:
		return m, true
	default:
		return "", false
	}
}

// SimulationMetadata describes the simulation that produced a trajectory.
type SimulationMetadata struct {
	Name               string `koanf:"name"`
	NumEpisodes        int    `koanf:"num_episodes"`
	NumStepsPerEpisode int    `koanf:"num_steps_per_episode"`
}

// Slots is the number of timestamp slots the metadata describes.
func (m SimulationMetadata) Slots() int {
	return m.NumEpisodes * m.NumStepsPerEpisode
}
