package geojson

import (
	"fmt"
	"strconv"
	"time"

	"github.com/okian/geoplot/internal/domain/model"
	"github.com/okian/geoplot/internal/domain/timeline"
	"gonum.org/v1/gonum/floats"
)

// Build emits one FeatureCollection per entity, in position order. Timestamps
// and feature vectors are paired by index up to the shorter of the two. Every
// paired vector must hold exactly one value per entity.
func Build(positions []model.LatLon, features [][]float64, timestamps []time.Time) (Document, error) {
	pairs := timeline.Pairs(len(timestamps), len(features))
	for j := 0; j < pairs; j++ {
		if len(features[j]) != len(positions) {
			return nil, fmt.Errorf("%w: feature vector %d has %d values for %d entities",
				ErrShapeMismatch, j, len(features[j]), len(positions))
		}
	}

	times := make([]string, pairs)
	for j := range times {
		times[j] = timeline.Format(timestamps[j])
	}

	doc := make(Document, 0, len(positions))
	for i, pos := range positions {
		id := strconv.Itoa(i)
		coords := PointCoordinates{pos.Lon, pos.Lat}
		fc := FeatureCollection{
			Type:     TypeFeatureCollection,
			Features: make([]Feature, 0, pairs),
		}
		for j := 0; j < pairs; j++ {
			fc.Features = append(fc.Features, Feature{
				Type: TypeFeature,
				Geometry: Geometry{
					Type:        TypePoint,
					Coordinates: coords,
				},
				Properties: Properties{
					ID:    id,
					Value: features[j][i],
					Time:  times[j],
				},
			})
		}
		doc = append(doc, fc)
	}
	return doc, nil
}

// Features counts the features across all collections.
func (d Document) Features() int {
	n := 0
	for _, fc := range d {
		n += len(fc.Features)
	}
	return n
}

// ValueRange returns the minimum and maximum feature value across the whole
// document. ok is false when the document holds no features.
func (d Document) ValueRange() (lo, hi float64, ok bool) {
	values := make([]float64, 0, d.Features())
	for _, fc := range d {
		for _, f := range fc.Features {
			values = append(values, f.Properties.Value)
		}
	}
	if len(values) == 0 {
		return 0, 0, false
	}
	return floats.Min(values), floats.Max(values), true
}
