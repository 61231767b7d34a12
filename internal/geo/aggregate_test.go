package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sassil1/petmap/internal/models"
)

func TestHeatCells(t *testing.T) {
	// Two points inside the same ~1km cell, one far away.
	points := []models.LocatedPoint{
		point("a", 39.1500, -77.2400),
		point("b", 39.1501, -77.2401),
		point("c", 38.5000, -76.5000),
	}

	cells := HeatCells(points, DefaultHeatLevel)

	require.Len(t, cells, 2)

	total := 0
	sawMax := false
	for _, cell := range cells {
		total += cell.Count
		assert.Greater(t, cell.Intensity, 0.0)
		assert.LessOrEqual(t, cell.Intensity, 1.0)
		if cell.Count == 2 {
			sawMax = true
			assert.Equal(t, 1.0, cell.Intensity)
			assert.InDelta(t, 39.15, cell.Latitude, 0.01)
			assert.InDelta(t, -77.24, cell.Longitude, 0.01)
		}
	}
	assert.Equal(t, 3, total)
	assert.True(t, sawMax, "densest cell should carry intensity 1.0")
}

func TestHeatCells_Empty(t *testing.T) {
	assert.Empty(t, HeatCells(nil, DefaultHeatLevel))
}

func TestHeatCells_ClampsLevel(t *testing.T) {
	points := []models.LocatedPoint{point("a", 39.15, -77.24)}

	assert.Len(t, HeatCells(points, -5), 1)
	assert.Len(t, HeatCells(points, 99), 1)
}

func TestClusters(t *testing.T) {
	points := []models.LocatedPoint{
		point("a", 39.1500, -77.2400),
		point("b", 39.1502, -77.2402),
		point("c", 38.5000, -76.5000),
	}

	clusters := Clusters(points, DefaultClusterPrecision)

	require.Len(t, clusters, 2)

	var near, far *Cluster
	for i := range clusters {
		if clusters[i].Count == 2 {
			near = &clusters[i]
		} else {
			far = &clusters[i]
		}
	}
	require.NotNil(t, near)
	require.NotNil(t, far)

	assert.Len(t, near.Geohash, DefaultClusterPrecision)
	assert.Equal(t, []int{0, 1}, near.Members)
	assert.InDelta(t, 39.1501, near.Latitude, 0.001)
	assert.InDelta(t, -77.2401, near.Longitude, 0.001)

	assert.Equal(t, []int{2}, far.Members)
	assert.InDelta(t, 38.5, far.Latitude, 0.001)
}

func TestClusters_ClampsPrecision(t *testing.T) {
	points := []models.LocatedPoint{point("a", 39.15, -77.24)}

	low := Clusters(points, 0)
	require.Len(t, low, 1)
	assert.Len(t, low[0].Geohash, 1)

	high := Clusters(points, 40)
	require.Len(t, high, 1)
	assert.Len(t, high[0].Geohash, 12)
}

func TestFeatureCollection(t *testing.T) {
	p := point("Rex", 39.15, -77.24)
	p.Species = "Dog"
	p.Address = "100 Main St"

	fc := FeatureCollection([]models.LocatedPoint{p})

	assert.Equal(t, "FeatureCollection", fc.Type)
	require.Len(t, fc.Features, 1)

	f := fc.Features[0]
	assert.Equal(t, "Feature", f.Type)
	assert.Equal(t, "Point", f.Geometry.Type)
	assert.Equal(t, []float64{-77.24, 39.15}, f.Geometry.Coordinates)
	assert.Equal(t, "Rex", f.Properties["name"])
	assert.Equal(t, "Dog", f.Properties["species"])
	assert.Equal(t, "100 Main St", f.Properties["address"])
	assert.NotContains(t, f.Properties, "breed")
}

func TestFeatureCollection_Empty(t *testing.T) {
	fc := FeatureCollection(nil)

	assert.Equal(t, "FeatureCollection", fc.Type)
	assert.Empty(t, fc.Features)
}
