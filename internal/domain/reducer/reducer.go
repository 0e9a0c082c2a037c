// Package reducer collapses an episode/step trajectory into entity positions
// and one feature vector per episode.
package reducer

import (
	"fmt"

	"github.com/okian/geoplot/internal/domain/field"
	"github.com/okian/geoplot/internal/domain/model"
)

// minEpisodes is the smallest trajectory that yields any feature vectors,
// since the final episode is never sampled.
const minEpisodes = 2

// Reduction is the reducer output. Features[j][i] is the value of entity i
// in episode j; len(Features[j]) is expected to equal len(Positions).
type Reduction struct {
	Positions []model.LatLon
	Features  [][]float64
}

// Empty reports whether the reduction carries no usable data.
func (r Reduction) Empty() bool {
	return len(r.Features) == 0
}

// Reduce samples the final snapshot of every episode except the last one.
// Positions are read once, from the first sampled episode; every sampled
// episode contributes its flattened feature array.
func Reduce(traj model.Trajectory, positionPath, featurePath string) (Reduction, error) {
	if len(traj) < minEpisodes {
		return Reduction{}, nil
	}

	posSegs, featSegs := field.Split(positionPath), field.Split(featurePath)
	out := Reduction{Features: make([][]float64, 0, len(traj)-1)}

	for i := 0; i < len(traj)-1; i++ {
		ep := traj[i]
		if len(ep) == 0 {
			return Reduction{}, fmt.Errorf("%w: episode %d", ErrEmptyEpisode, i)
		}
		final := ep[len(ep)-1]

		if i == 0 {
			positions, err := readPositions(final, posSegs)
			if err != nil {
				return Reduction{}, fmt.Errorf("episode %d positions: %w", i, err)
			}
			out.Positions = positions
		}

		values, err := readFeatures(final, featSegs)
		if err != nil {
			return Reduction{}, fmt.Errorf("episode %d features: %w", i, err)
		}
		out.Features = append(out.Features, values)
	}

	return out, nil
}

func readFeatures(snap model.Snapshot, segs []string) ([]float64, error) {
	raw, err := lookup(snap, segs)
	if err != nil {
		return nil, err
	}
	values, err := field.Floats(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedField, err)
	}
	if !field.Finite(values) {
		return nil, fmt.Errorf("%w: non-finite feature value", ErrMalformedField)
	}
	return values, nil
}

// readPositions reads an entity × 2 array. Entry e is (lat, lon) = (e[0], e[1]);
// trailing components such as altitude are ignored.
func readPositions(snap model.Snapshot, segs []string) ([]model.LatLon, error) {
	raw, err := lookup(snap, segs)
	if err != nil {
		return nil, err
	}
	rows, ok := raw.([]any)
	if !ok {
		rows, err = asRows(raw)
		if err != nil {
			return nil, err
		}
	}

	positions := make([]model.LatLon, 0, len(rows))
	for e, row := range rows {
		vals, err := field.Floats(row)
		if err != nil {
			return nil, fmt.Errorf("%w: entity %d: %v", ErrMalformedField, e, err)
		}
		if len(vals) < 2 {
			return nil, fmt.Errorf("%w: entity %d has %d coordinates, want 2", ErrMalformedField, e, len(vals))
		}
		if !field.Finite(vals[:2]) {
			return nil, fmt.Errorf("%w: entity %d has non-finite coordinates", ErrMalformedField, e)
		}
		positions = append(positions, model.LatLon{Lat: vals[0], Lon: vals[1]})
	}
	return positions, nil
}

func lookup(snap model.Snapshot, segs []string) (any, error) {
	if len(segs) == 0 {
		return nil, fmt.Errorf("%w: empty path", field.ErrLookup)
	}
	return field.LookupSegments(snap, segs)
}
