package geo

import (
	"sort"

	geohash "github.com/TomiHiltunen/geohash-golang"

	"github.com/sassil1/petmap/internal/models"
)

// DefaultClusterPrecision is the geohash length used when the caller asks
// for no particular precision. Six characters is roughly neighborhood
// scale.
const DefaultClusterPrecision = 6

// Cluster is one marker-cluster bucket: every point sharing a geohash
// prefix, with the mean centroid of its members and their indices into the
// input slice.
type Cluster struct {
	Geohash   string  `json:"geohash"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Count     int     `json:"count"`
	Members   []int   `json:"members"`
}

// Clusters buckets points by geohash prefix at the given precision.
// Precisions outside [1, 12] are clamped. Buckets are returned ordered by
// geohash so the output is deterministic; member indices keep input order.
func Clusters(points []models.LocatedPoint, precision int) []Cluster {
	if precision < 1 {
		precision = 1
	} else if precision > 12 {
		precision = 12
	}

	buckets := make(map[string]*Cluster)
	for i, p := range points {
		hash := geohash.EncodeWithPrecision(p.Latitude, p.Longitude, precision)
		b, ok := buckets[hash]
		if !ok {
			b = &Cluster{Geohash: hash}
			buckets[hash] = b
		}
		b.Latitude += p.Latitude
		b.Longitude += p.Longitude
		b.Count++
		b.Members = append(b.Members, i)
	}

	hashes := make([]string, 0, len(buckets))
	for hash := range buckets {
		hashes = append(hashes, hash)
	}
	sort.Strings(hashes)

	clusters := make([]Cluster, 0, len(hashes))
	for _, hash := range hashes {
		b := buckets[hash]
		b.Latitude /= float64(b.Count)
		b.Longitude /= float64(b.Count)
		clusters = append(clusters, *b)
	}
	return clusters
}
