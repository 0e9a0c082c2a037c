// Package sample synthesizes demo trajectories: entities at fixed positions
// whose scalar feature follows a seeded random walk.
package sample

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"

	"github.com/okian/geoplot/internal/domain/field"
	"github.com/okian/geoplot/internal/domain/model"
)

// Defaults for a small demo run.
const (
	defaultEntities    = 25
	defaultEpisodes    = 10
	defaultSteps       = 24
	defaultCoordinates = "agents/coordinates"
	defaultFeature     = "agents/infected"

	// Entities are scattered up to this many degrees from the center.
	scatterDegrees = 2.0
	initialMax     = 100.0
	walkSigma      = 5.0
)

// ErrPathConflict is returned when the coordinate and feature paths overlap.
var ErrPathConflict = errors.New("sample paths conflict")

// runNamespace derives run ids from the seed.
var runNamespace = uuid.MustParse("6f1c2f0e-5a0b-4a55-9a55-3c1f1f0b9d27")

type generator struct {
	entities    int
	episodes    int
	steps       int
	seed        uint64
	coordinates string
	feature     string
	center      [2]float64
}

// Generate returns a trajectory of the configured shape. Every snapshot holds
// "run_id", "episode" and "step" at the top level, plus the entity positions
// and feature values under the configured paths.
func Generate(opts ...Option) (model.Trajectory, error) {
	g := &generator{
		entities:    defaultEntities,
		episodes:    defaultEpisodes,
		steps:       defaultSteps,
		seed:        1,
		coordinates: defaultCoordinates,
		feature:     defaultFeature,
		center:      [2]float64{40.4168, -3.7038},
	}
	for _, opt := range opts {
		opt(g)
	}

	coordSegs, featSegs := field.Split(g.coordinates), field.Split(g.feature)
	if err := checkPaths(coordSegs, featSegs); err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewPCG(g.seed, g.seed^0x9e3779b97f4a7c15))
	runID := g.runID()

	positions := make([]any, g.entities)
	for i := range positions {
		positions[i] = []any{
			g.center[0] + (rng.Float64()*2-1)*scatterDegrees,
			g.center[1] + (rng.Float64()*2-1)*scatterDegrees,
		}
	}
	values := make([]float64, g.entities)
	for i := range values {
		values[i] = rng.Float64() * initialMax
	}

	traj := make(model.Trajectory, g.episodes)
	for e := range traj {
		episode := make(model.Episode, g.steps)
		for s := range episode {
			for i := range values {
				values[i] = math.Max(0, values[i]+rng.NormFloat64()*walkSigma)
			}
			snap := model.Snapshot{
				"run_id":  runID,
				"episode": e,
				"step":    s,
			}
			put(snap, coordSegs, clonePositions(positions))
			put(snap, featSegs, toAny(values))
			episode[s] = snap
		}
		traj[e] = episode
	}
	return traj, nil
}

func (g *generator) runID() string {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], g.seed)
	return uuid.NewSHA1(runNamespace, b[:]).String()
}

func checkPaths(a, b []string) error {
	if len(a) == 0 || len(b) == 0 {
		return fmt.Errorf("%w: empty path", ErrPathConflict)
	}
	n := min(len(a), len(b))
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return nil
		}
	}
	return fmt.Errorf("%w: %q and %q", ErrPathConflict, strings.Join(a, "/"), strings.Join(b, "/"))
}

// put stores v at segs, creating intermediate maps.
func put(root map[string]any, segs []string, v any) {
	cur := root
	for _, seg := range segs[:len(segs)-1] {
		next, ok := cur[seg].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[seg] = next
		}
		cur = next
	}
	cur[segs[len(segs)-1]] = v
}

func clonePositions(src []any) []any {
	out := make([]any, len(src))
	for i, p := range src {
		pair := p.([]any)
		out[i] = []any{pair[0], pair[1]}
	}
	return out
}

func toAny(vals []float64) []any {
	out := make([]any, len(vals))
	for i, v := range vals {
		out[i] = v
	}
	return out
}
