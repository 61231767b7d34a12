package geo

import (
	"sort"

	"github.com/sassil1/petmap/internal/models"
)

// DefaultNearestLimit is the ranked-list size when the caller asks for no
// particular k.
const DefaultNearestLimit = 25

// Nearest ranks points by great-circle distance from reference, ascending,
// and returns the closest k (or fewer). The sort is stable, so points at
// equal distance keep their input order. A nil reference yields an empty
// list; ranking without a position is not an error.
func Nearest(reference *models.Coordinate, points []models.LocatedPoint, k int) []models.RankedPoint {
	if reference == nil || len(points) == 0 || k <= 0 {
		return []models.RankedPoint{}
	}

	ranked := make([]models.RankedPoint, len(points))
	for i, p := range points {
		ranked[i] = models.RankedPoint{
			LocatedPoint: p,
			DistanceKm:   Haversine(reference.Latitude, reference.Longitude, p.Latitude, p.Longitude),
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].DistanceKm < ranked[j].DistanceKm
	})

	if k < len(ranked) {
		ranked = ranked[:k]
	}
	return ranked
}
