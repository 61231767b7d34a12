// Package resolver turns heterogeneous feed records into located points,
// preferring coordinates embedded in the record and falling back to a
// geocoder lookup on a derived address.
package resolver

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/sassil1/petmap/internal/models"
)

// coordinateFields is the fixed priority order scanned for an embedded
// coordinate. The first field yielding two finite in-range values wins.
var coordinateFields = []string{"location", "geocoded_column", "geolocation"}

// addressFields is the fixed priority order scanned for fallback address
// text when no embedded coordinate exists.
var addressFields = []string{"address", "crossing", "found_location", "location"}

// Outcome describes how a single record's resolution ended.
type Outcome int

const (
	// OutcomeEmbedded means the coordinate came straight from the record.
	OutcomeEmbedded Outcome = iota
	// OutcomeGeocoded means the fallback lookup produced the coordinate.
	OutcomeGeocoded
	// OutcomeLookupFailed means the fallback lookup ran and found nothing.
	OutcomeLookupFailed
	// OutcomeNoAddress means the record had neither a coordinate nor any
	// address-like field to look up.
	OutcomeNoAddress
	// OutcomeSkipped means a lookup was needed but not allowed (budget).
	OutcomeSkipped
)

// ConsumedLookup reports whether this outcome spent a geocoder invocation.
// Failed lookups count: the budget meters attempts, not successes.
func (o Outcome) ConsumedLookup() bool {
	return o == OutcomeGeocoded || o == OutcomeLookupFailed
}

// AddressGeocoder is the fallback lookup, satisfied by *geocode.Geocoder.
type AddressGeocoder interface {
	Resolve(ctx context.Context, addressText string) (models.Coordinate, bool)
}

// Resolver resolves one record at a time. It holds no per-run state; the
// lookup budget belongs to the pipeline driving it.
type Resolver struct {
	geocoder AddressGeocoder
}

// NewResolver builds a resolver over the given fallback geocoder.
func NewResolver(geocoder AddressGeocoder) *Resolver {
	return &Resolver{geocoder: geocoder}
}

// Resolve extracts an embedded coordinate if the record carries one, and
// otherwise — when allowFallback permits — geocodes a derived address.
// Extraction never suspends; only the fallback path can block.
func (r *Resolver) Resolve(ctx context.Context, rec models.RawRecord, allowFallback bool) (models.LocatedPoint, Outcome) {
	address := DeriveAddress(rec)

	if coord, ok := ExtractCoordinate(rec); ok {
		return buildPoint(rec, address, coord), OutcomeEmbedded
	}

	if address == "" {
		return models.LocatedPoint{}, OutcomeNoAddress
	}
	if !allowFallback {
		return models.LocatedPoint{}, OutcomeSkipped
	}

	coord, ok := r.geocoder.Resolve(ctx, address)
	if !ok {
		return models.LocatedPoint{}, OutcomeLookupFailed
	}
	return buildPoint(rec, address, coord), OutcomeGeocoded
}

// ExtractCoordinate scans the known coordinate fields, then a top-level
// latitude/longitude pair. Values may be numbers or numeric strings; both
// Socrata point styles are understood. Non-finite or out-of-range values
// are discarded.
func ExtractCoordinate(rec models.RawRecord) (models.Coordinate, bool) {
	for _, field := range coordinateFields {
		v, ok := rec[field]
		if !ok {
			continue
		}
		if coord, ok := coordinateFromValue(v); ok {
			return coord, true
		}
	}

	if lat, ok := numberFromValue(rec["latitude"]); ok {
		if lon, ok := numberFromValue(rec["longitude"]); ok {
			coord := models.Coordinate{Latitude: lat, Longitude: lon}
			if coord.Valid() {
				return coord, true
			}
		}
	}

	return models.Coordinate{}, false
}

// coordinateFromValue reads one candidate field value. Understood shapes:
// {"latitude": ..., "longitude": ...} and the GeoJSON-style
// {"type": "Point", "coordinates": [lon, lat]}.
func coordinateFromValue(v any) (models.Coordinate, bool) {
	obj, ok := v.(map[string]any)
	if !ok {
		return models.Coordinate{}, false
	}

	if lat, ok := numberFromValue(obj["latitude"]); ok {
		if lon, ok := numberFromValue(obj["longitude"]); ok {
			coord := models.Coordinate{Latitude: lat, Longitude: lon}
			if coord.Valid() {
				return coord, true
			}
		}
	}

	if raw, ok := obj["coordinates"].([]any); ok && len(raw) == 2 {
		// GeoJSON order: [longitude, latitude]
		if lon, ok := numberFromValue(raw[0]); ok {
			if lat, ok := numberFromValue(raw[1]); ok {
				coord := models.Coordinate{Latitude: lat, Longitude: lon}
				if coord.Valid() {
					return coord, true
				}
			}
		}
	}

	return models.Coordinate{}, false
}

// numberFromValue accepts JSON numbers and numeric strings.
func numberFromValue(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// humanAddress is the JSON payload Socrata packs into human_address.
type humanAddress struct {
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Zip     string `json:"zip"`
}

// DeriveAddress produces one free-text address line from the record, or ""
// when no address-like field exists. String fields are used directly;
// structured fields are joined street, city, state, zip.
func DeriveAddress(rec models.RawRecord) string {
	for _, field := range addressFields {
		v, ok := rec[field]
		if !ok {
			continue
		}

		switch val := v.(type) {
		case string:
			if s := strings.TrimSpace(val); s != "" {
				return s
			}
		case map[string]any:
			if s := addressFromObject(val); s != "" {
				return s
			}
		}
	}
	return ""
}

// addressFromObject joins the structured parts of an address value.
func addressFromObject(obj map[string]any) string {
	if raw, ok := obj["human_address"].(string); ok && raw != "" {
		var ha humanAddress
		if err := json.Unmarshal([]byte(raw), &ha); err == nil {
			if s := joinParts(ha.Address, ha.City, ha.State, ha.Zip); s != "" {
				return s
			}
		}
	}

	street, _ := obj["street"].(string)
	if street == "" {
		street, _ = obj["address"].(string)
	}
	city, _ := obj["city"].(string)
	state, _ := obj["state"].(string)
	zip, _ := obj["zip"].(string)
	if zip == "" {
		zip, _ = obj["zip_code"].(string)
	}
	return joinParts(street, city, state, zip)
}

func joinParts(parts ...string) string {
	kept := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ", ")
}

// buildPoint assembles the located point with its display metadata. Every
// display field is optional; the feed guarantees nothing.
func buildPoint(rec models.RawRecord, address string, coord models.Coordinate) models.LocatedPoint {
	return models.LocatedPoint{
		Coordinate: coord,
		Name:       firstString(rec, "pet_name", "name", "animal_name"),
		Species:    firstString(rec, "animal_type", "species", "type"),
		Breed:      firstString(rec, "breed"),
		Sex:        firstString(rec, "sex", "gender"),
		Age:        firstString(rec, "pet_age", "age"),
		Address:    address,
		PhotoURL:   firstString(rec, "url", "photo", "picture"),
		Source:     rec,
	}
}

// firstString returns the first non-blank string value among keys.
func firstString(rec models.RawRecord, keys ...string) string {
	for _, k := range keys {
		if s, ok := rec[k].(string); ok {
			if s = strings.TrimSpace(s); s != "" {
				return s
			}
		}
	}
	return ""
}
