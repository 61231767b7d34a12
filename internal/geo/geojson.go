package geo

import "github.com/sassil1/petmap/internal/models"

// GeoJSONFeatureCollection represents a collection of geographic features.
// It follows the standard GeoJSON structure.
type GeoJSONFeatureCollection struct {
	Type     string           `json:"type"`
	Features []GeoJSONFeature `json:"features"`
}

// GeoJSONFeature represents a single geographic feature with geometry and
// properties.
type GeoJSONFeature struct {
	Type       string          `json:"type"`
	Geometry   GeoJSONGeometry `json:"geometry"`
	Properties map[string]any  `json:"properties"`
}

// GeoJSONGeometry represents the geometry of a feature.
type GeoJSONGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"` // [Lon, Lat]
}

// FeatureCollection converts located points into a GeoJSON
// FeatureCollection of Point features, display metadata in the properties.
// Map front ends consume this directly.
func FeatureCollection(points []models.LocatedPoint) GeoJSONFeatureCollection {
	features := make([]GeoJSONFeature, 0, len(points))
	for _, p := range points {
		props := map[string]any{}
		if p.Name != "" {
			props["name"] = p.Name
		}
		if p.Species != "" {
			props["species"] = p.Species
		}
		if p.Breed != "" {
			props["breed"] = p.Breed
		}
		if p.Sex != "" {
			props["sex"] = p.Sex
		}
		if p.Age != "" {
			props["age"] = p.Age
		}
		if p.Address != "" {
			props["address"] = p.Address
		}
		if p.PhotoURL != "" {
			props["photo_url"] = p.PhotoURL
		}

		features = append(features, GeoJSONFeature{
			Type: "Feature",
			Geometry: GeoJSONGeometry{
				Type:        "Point",
				Coordinates: []float64{p.Longitude, p.Latitude},
			},
			Properties: props,
		})
	}

	return GeoJSONFeatureCollection{Type: "FeatureCollection", Features: features}
}
