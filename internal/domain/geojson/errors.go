package geojson

import "errors"

// ErrShapeMismatch reports a feature vector whose length disagrees with the
// number of entities.
var ErrShapeMismatch = errors.New("feature vector shape mismatch")
