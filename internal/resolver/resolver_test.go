package resolver

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sassil1/petmap/internal/models"
)

// MockGeocoder is a mock implementation of the AddressGeocoder interface
type MockGeocoder struct {
	mock.Mock
}

func (m *MockGeocoder) Resolve(ctx context.Context, addressText string) (models.Coordinate, bool) {
	args := m.Called(ctx, addressText)
	return args.Get(0).(models.Coordinate), args.Bool(1)
}

func TestExtractCoordinate(t *testing.T) {
	tests := []struct {
		name     string
		record   models.RawRecord
		expected models.Coordinate
		found    bool
	}{
		{
			name: "location with string coordinates",
			record: models.RawRecord{
				"location": map[string]any{"latitude": "39.0", "longitude": "-77.1"},
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
		{
			name: "location with numeric coordinates",
			record: models.RawRecord{
				"location": map[string]any{"latitude": 39.0, "longitude": -77.1},
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
		{
			name: "geojson point value",
			record: models.RawRecord{
				"geocoded_column": map[string]any{
					"type":        "Point",
					"coordinates": []any{-77.1, 39.0},
				},
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
		{
			name: "top-level pair",
			record: models.RawRecord{
				"latitude":  "39.0",
				"longitude": "-77.1",
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
		{
			name: "field priority order",
			record: models.RawRecord{
				"geolocation": map[string]any{"latitude": "1.0", "longitude": "1.0"},
				"location":    map[string]any{"latitude": "39.0", "longitude": "-77.1"},
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
		{
			name: "out of range latitude discarded",
			record: models.RawRecord{
				"location": map[string]any{"latitude": "95.0", "longitude": "-77.1"},
			},
			found: false,
		},
		{
			name: "unparseable values discarded",
			record: models.RawRecord{
				"location": map[string]any{"latitude": "north", "longitude": "west"},
			},
			found: false,
		},
		{
			name: "missing longitude",
			record: models.RawRecord{
				"location": map[string]any{"latitude": "39.0"},
			},
			found: false,
		},
		{
			name:   "no coordinate fields",
			record: models.RawRecord{"pet_name": "Rex"},
			found:  false,
		},
		{
			name: "bad field then good field",
			record: models.RawRecord{
				"location":    "not an object",
				"geolocation": map[string]any{"latitude": "39.0", "longitude": "-77.1"},
			},
			expected: models.Coordinate{Latitude: 39.0, Longitude: -77.1},
			found:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coord, ok := ExtractCoordinate(tt.record)
			assert.Equal(t, tt.found, ok)
			if tt.found {
				assert.Equal(t, tt.expected, coord)
			}
		})
	}
}

func TestDeriveAddress(t *testing.T) {
	tests := []struct {
		name     string
		record   models.RawRecord
		expected string
	}{
		{
			name:     "plain string address",
			record:   models.RawRecord{"address": "100 Main St"},
			expected: "100 Main St",
		},
		{
			name:     "crossing used when address absent",
			record:   models.RawRecord{"crossing": "Main St & 1st Ave"},
			expected: "Main St & 1st Ave",
		},
		{
			name: "structured address joined",
			record: models.RawRecord{
				"address": map[string]any{
					"street": "100 Main St",
					"city":   "Rockville",
					"state":  "MD",
					"zip":    "20850",
				},
			},
			expected: "100 Main St, Rockville, MD, 20850",
		},
		{
			name: "socrata human_address",
			record: models.RawRecord{
				"location": map[string]any{
					"human_address": `{"address": "100 Main St", "city": "Rockville", "state": "MD", "zip": "20850"}`,
				},
			},
			expected: "100 Main St, Rockville, MD, 20850",
		},
		{
			name:     "priority order prefers address",
			record:   models.RawRecord{"address": "100 Main St", "crossing": "elsewhere"},
			expected: "100 Main St",
		},
		{
			name:     "blank string skipped",
			record:   models.RawRecord{"address": "   ", "crossing": "Main St & 1st Ave"},
			expected: "Main St & 1st Ave",
		},
		{
			name:     "nothing address-like",
			record:   models.RawRecord{"pet_name": "Rex"},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DeriveAddress(tt.record))
		})
	}
}

func TestResolver_ResolveEmbedded(t *testing.T) {
	geocoder := new(MockGeocoder)
	r := NewResolver(geocoder)

	record := models.RawRecord{
		"pet_name":    "Rex",
		"animal_type": "Dog",
		"location":    map[string]any{"latitude": "39.0", "longitude": "-77.1"},
	}

	point, outcome := r.Resolve(context.Background(), record, true)

	assert.Equal(t, OutcomeEmbedded, outcome)
	assert.False(t, outcome.ConsumedLookup())
	assert.Equal(t, models.Coordinate{Latitude: 39.0, Longitude: -77.1}, point.Coordinate)
	assert.Equal(t, "Rex", point.Name)
	assert.Equal(t, "Dog", point.Species)
	assert.Equal(t, record, point.Source)

	// Embedded extraction never touches the geocoder.
	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolver_ResolveFallback(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Resolve", mock.Anything, "100 Main St").
		Return(models.Coordinate{Latitude: 39.2, Longitude: -77.3}, true)

	r := NewResolver(geocoder)

	record := models.RawRecord{"pet_name": "Rex", "address": "100 Main St"}
	point, outcome := r.Resolve(context.Background(), record, true)

	assert.Equal(t, OutcomeGeocoded, outcome)
	assert.True(t, outcome.ConsumedLookup())
	assert.Equal(t, models.Coordinate{Latitude: 39.2, Longitude: -77.3}, point.Coordinate)
	assert.Equal(t, "100 Main St", point.Address)
	geocoder.AssertExpectations(t)
}

func TestResolver_ResolveFallbackFails(t *testing.T) {
	geocoder := new(MockGeocoder)
	geocoder.On("Resolve", mock.Anything, "100 Main St").
		Return(models.Coordinate{}, false)

	r := NewResolver(geocoder)

	_, outcome := r.Resolve(context.Background(), models.RawRecord{"address": "100 Main St"}, true)

	assert.Equal(t, OutcomeLookupFailed, outcome)
	assert.True(t, outcome.ConsumedLookup(), "failed lookups still consume budget")
}

func TestResolver_ResolveNoAddress(t *testing.T) {
	geocoder := new(MockGeocoder)
	r := NewResolver(geocoder)

	_, outcome := r.Resolve(context.Background(), models.RawRecord{"pet_name": "Rex"}, true)

	assert.Equal(t, OutcomeNoAddress, outcome)
	assert.False(t, outcome.ConsumedLookup())
	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolver_ResolveFallbackDisallowed(t *testing.T) {
	geocoder := new(MockGeocoder)
	r := NewResolver(geocoder)

	_, outcome := r.Resolve(context.Background(), models.RawRecord{"address": "100 Main St"}, false)

	assert.Equal(t, OutcomeSkipped, outcome)
	assert.False(t, outcome.ConsumedLookup())
	geocoder.AssertNotCalled(t, "Resolve", mock.Anything, mock.Anything)
}

func TestResolver_IdempotentWithWarmCache(t *testing.T) {
	// A warm cache behaves like a geocoder that keeps answering the same
	// coordinate; both passes must agree.
	geocoder := new(MockGeocoder)
	geocoder.On("Resolve", mock.Anything, "100 Main St").
		Return(models.Coordinate{Latitude: 39.2, Longitude: -77.3}, true).Twice()

	r := NewResolver(geocoder)
	record := models.RawRecord{"address": "100 Main St"}

	first, outcome := r.Resolve(context.Background(), record, true)
	require.Equal(t, OutcomeGeocoded, outcome)

	second, outcome := r.Resolve(context.Background(), record, true)
	require.Equal(t, OutcomeGeocoded, outcome)

	assert.Equal(t, first.Coordinate, second.Coordinate)
}
