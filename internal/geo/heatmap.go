package geo

import (
	"sort"

	"github.com/golang/geo/s2"

	"github.com/sassil1/petmap/internal/models"
)

// DefaultHeatLevel is the S2 cell level used when the caller asks for no
// particular resolution. Level 13 cells are roughly a kilometer across,
// about right for a county-scale heatmap.
const DefaultHeatLevel = 13

// HeatCell is one bucket of the density view: the centroid of an S2 cell,
// how many points fell into it, and an intensity normalized against the
// densest cell of the same pass.
type HeatCell struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
	Intensity float64 `json:"intensity"`
}

// HeatCells buckets points into S2 cells at the given level. Cells are
// returned ordered by cell id so the output is deterministic. Levels
// outside [0, 30] are clamped.
func HeatCells(points []models.LocatedPoint, level int) []HeatCell {
	if level < 0 {
		level = 0
	} else if level > 30 {
		level = 30
	}

	counts := make(map[s2.CellID]int)
	for _, p := range points {
		ll := s2.LatLngFromDegrees(p.Latitude, p.Longitude)
		cell := s2.CellIDFromLatLng(ll).Parent(level)
		counts[cell]++
	}

	ids := make([]s2.CellID, 0, len(counts))
	max := 0
	for id, n := range counts {
		ids = append(ids, id)
		if n > max {
			max = n
		}
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	cells := make([]HeatCell, 0, len(ids))
	for _, id := range ids {
		center := id.LatLng()
		cells = append(cells, HeatCell{
			Latitude:  center.Lat.Degrees(),
			Longitude: center.Lng.Degrees(),
			Count:     counts[id],
			Intensity: float64(counts[id]) / float64(max),
		})
	}
	return cells
}
