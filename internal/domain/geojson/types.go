// Package geojson builds the per-entity time-stamped FeatureCollections.
package geojson

// GeoJSON object type names (RFC 7946).
const (
	TypeFeatureCollection = "FeatureCollection"
	TypeFeature           = "Feature"
	TypePoint             = "Point"
)

// FeatureCollection holds every time-stamped observation of one entity.
type FeatureCollection struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature is one observation of an entity at one timestamp.
type Feature struct {
	Type       string     `json:"type"`
	Geometry   Geometry   `json:"geometry"`
	Properties Properties `json:"properties"`
}

// Geometry is always a Point.
type Geometry struct {
	Type        string           `json:"type"`
	Coordinates PointCoordinates `json:"coordinates"`
}

// PointCoordinates is [longitude, latitude].
type PointCoordinates [2]float64

// Properties carries the entity id, its feature value and the observation time.
type Properties struct {
	ID    string  `json:"id"`
	Value float64 `json:"value"`
	Time  string  `json:"time"`
}

// Document is the ordered list of collections, one per entity.
type Document []FeatureCollection
