package models

import (
	"math"
	"time"
)

// RawRecord is a single row of the open-data feed. The feed schema is not
// under our control, so the record stays an opaque field→value mapping and
// nothing here may assume a field exists.
type RawRecord map[string]any

// Coordinate is a WGS-84 latitude/longitude pair in degrees.
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both components are finite and inside the WGS-84
// bounds. Parse results that fail this check are discarded, never stored.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Latitude) || math.IsInf(c.Latitude, 0) {
		return false
	}
	if math.IsNaN(c.Longitude) || math.IsInf(c.Longitude, 0) {
		return false
	}
	return c.Latitude >= -90 && c.Latitude <= 90 && c.Longitude >= -180 && c.Longitude <= 180
}

// LocatedPoint is a feed record successfully resolved to a coordinate plus
// the display fields the map layer renders. Immutable once created; the
// whole set is discarded and rebuilt on every refresh.
type LocatedPoint struct {
	Coordinate

	Name     string `json:"name,omitempty"`
	Species  string `json:"species,omitempty"`
	Breed    string `json:"breed,omitempty"`
	Sex      string `json:"sex,omitempty"`
	Age      string `json:"age,omitempty"`
	Address  string `json:"address,omitempty"`
	PhotoURL string `json:"photo_url,omitempty"`

	// Source is the record this point was resolved from, kept for callers
	// that need fields we do not surface. Read-only, excluded from JSON.
	Source RawRecord `json:"-"`
}

// RankedPoint is a located point plus its great-circle distance from the
// reference position, in kilometers.
type RankedPoint struct {
	LocatedPoint
	DistanceKm float64 `json:"distance_km"`
}

// RunStats summarizes one pipeline run. The output point list itself stays
// placeholder-free; these counts exist so dropped records are observable.
type RunStats struct {
	RunID            string        `json:"run_id"`
	Records          int           `json:"records"`
	ResolvedEmbedded int           `json:"resolved_embedded"`
	ResolvedGeocoded int           `json:"resolved_geocoded"`
	Lookups          int           `json:"lookups"`
	DroppedNoCoord   int           `json:"dropped_no_coord"`
	DroppedBudget    int           `json:"dropped_budget"`
	Duration         time.Duration `json:"-"`
}

// Resolved returns the total number of records that produced a point.
func (s RunStats) Resolved() int {
	return s.ResolvedEmbedded + s.ResolvedGeocoded
}
