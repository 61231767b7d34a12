package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/sassil1/petmap/internal/models"
	"github.com/sassil1/petmap/internal/service"
)

// MockPetsService is a mock implementation of the PetsService interface
type MockPetsService struct {
	mock.Mock
}

func (m *MockPetsService) Points() []models.LocatedPoint {
	args := m.Called()
	return args.Get(0).([]models.LocatedPoint)
}

func (m *MockPetsService) Status() service.Status {
	args := m.Called()
	return args.Get(0).(service.Status)
}

func TestPetsHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)

	points := []models.LocatedPoint{
		{
			Coordinate: models.Coordinate{Latitude: 39.15, Longitude: -77.24},
			Name:       "Rex",
			Species:    "Dog",
		},
	}
	updatedAt := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	status := service.Status{
		UpdatedAt: updatedAt,
		Loading:   false,
		Stats:     models.RunStats{RunID: "run-1", Records: 1, ResolvedEmbedded: 1},
	}

	mockService := new(MockPetsService)
	mockService.On("Points").Return(points)
	mockService.On("Status").Return(status)

	h := NewPetsHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body PetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, points, body.Points)
	assert.True(t, body.UpdatedAt.Equal(updatedAt))
	assert.False(t, body.Loading)
	assert.Empty(t, body.LastError)
	assert.Equal(t, "run-1", body.Stats.RunID)

	mockService.AssertExpectations(t)
}

func TestPetsHandler_ListEmptyState(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mockService := new(MockPetsService)
	mockService.On("Points").Return([]models.LocatedPoint{})
	mockService.On("Status").Return(service.Status{LastError: "feed: fetch failed"})

	h := NewPetsHandler(mockService)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/pets", nil)

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)

	var body PetsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Empty(t, body.Points)
	assert.Equal(t, "feed: fetch failed", body.LastError)
}
