package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/sassil1/petmap/internal/geo"
)

// MockAggregateService is a mock implementation of the AggregateService interface
type MockAggregateService struct {
	mock.Mock
}

func (m *MockAggregateService) HeatCells(level int) []geo.HeatCell {
	args := m.Called(level)
	return args.Get(0).([]geo.HeatCell)
}

func (m *MockAggregateService) Clusters(precision int) []geo.Cluster {
	args := m.Called(precision)
	return args.Get(0).([]geo.Cluster)
}

func TestAggregateHandler_Heatmap(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cells := []geo.HeatCell{{Latitude: 39.15, Longitude: -77.24, Count: 3, Intensity: 1.0}}

	tests := []struct {
		name           string
		query          string
		mockLevel      int
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "default level",
			query:          "",
			mockLevel:      geo.DefaultHeatLevel,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "explicit level",
			query:          "level=10",
			mockLevel:      10,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid level",
			query:          "level=coarse",
			expectedStatus: http.StatusBadRequest,
			expectedError:  "invalid level format",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAggregateService)
			if tt.expectedError == "" {
				mockService.On("HeatCells", tt.mockLevel).Return(cells)
			}

			h := NewAggregateHandler(mockService)

			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, "/api/pets/heatmap?"+tt.query, nil)

			h.Heatmap(c)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedError != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestAggregateHandler_Clusters(t *testing.T) {
	gin.SetMode(gin.TestMode)

	clusters := []geo.Cluster{{Geohash: "dqcjr2", Latitude: 39.15, Longitude: -77.24, Count: 2, Members: []int{0, 1}}}

	mockService := new(MockAggregateService)
	mockService.On("Clusters", 4).Return(clusters)

	h := NewAggregateHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pets/clusters?precision=4", nil)

	h.Clusters(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body []geo.Cluster
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, clusters, body)
	mockService.AssertExpectations(t)
}
