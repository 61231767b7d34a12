// Package service owns the refresh loop and the committed snapshot the
// HTTP handlers read from.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/config"
	"github.com/sassil1/petmap/internal/export"
	"github.com/sassil1/petmap/internal/geo"
	"github.com/sassil1/petmap/internal/models"
)

// ErrSuperseded is returned by Refresh when a newer refresh started while
// this one was running. The superseded run's results are discarded, never
// committed.
var ErrSuperseded = errors.New("service: refresh superseded by a newer run")

// FeedFetcher downloads one record set, satisfied by *feed.Client.
type FeedFetcher interface {
	Fetch(ctx context.Context, url string, limit int) ([]models.RawRecord, error)
}

// LocationPipeline resolves a record set into located points, satisfied by
// *pipeline.Pipeline.
type LocationPipeline interface {
	Run(ctx context.Context, records []models.RawRecord, maxLookups int) ([]models.LocatedPoint, models.RunStats, error)
}

// Status is the loading/error surface the rendering layer polls.
type Status struct {
	UpdatedAt time.Time       `json:"updated_at"`
	Loading   bool            `json:"loading"`
	LastError string          `json:"last_error,omitempty"`
	Stats     models.RunStats `json:"stats"`
}

// PetService fetches the configured feeds, runs the location pipeline, and
// serves read operations from the last committed snapshot. A newer refresh
// cancels and supersedes an in-flight one; only the newest run may commit.
type PetService struct {
	feed       FeedFetcher
	pipeline   LocationPipeline
	sources    []config.Source
	maxLookups int
	logger     zerolog.Logger

	mu         sync.Mutex
	generation int
	cancel     context.CancelFunc
	points     []models.LocatedPoint
	status     Status
}

// NewPetService wires the service from its collaborators. sources must be
// non-empty; maxLookups bounds fallback geocoding per refresh.
func NewPetService(feed FeedFetcher, pipe LocationPipeline, sources []config.Source, maxLookups int, logger zerolog.Logger) *PetService {
	return &PetService{
		feed:       feed,
		pipeline:   pipe,
		sources:    sources,
		maxLookups: maxLookups,
		logger:     logger,
	}
}

// Refresh fetches every configured source and replaces the snapshot with
// the pipeline's output. Calling Refresh while one is running cancels the
// older run; the older call returns ErrSuperseded and commits nothing.
func (s *PetService) Refresh(ctx context.Context) error {
	runCtx, gen := s.begin(ctx)
	defer s.finish(gen)

	var (
		records  []models.RawRecord
		fetchErr error
	)
	for _, src := range s.sources {
		recs, err := s.feed.Fetch(runCtx, src.URL, src.Limit)
		if err != nil {
			s.logger.Warn().Err(err).Str("source", src.Name).Msg("Feed fetch failed")
			if fetchErr == nil {
				fetchErr = err
			}
			continue
		}
		records = append(records, recs...)
	}
	if runCtx.Err() != nil && ctx.Err() == nil {
		return ErrSuperseded
	}
	if len(records) == 0 && fetchErr != nil {
		s.fail(gen, fetchErr)
		return fmt.Errorf("service: fetch feeds: %w", fetchErr)
	}

	points, stats, err := s.pipeline.Run(runCtx, records, s.maxLookups)
	if err != nil {
		if runCtx.Err() != nil && ctx.Err() == nil {
			return ErrSuperseded
		}
		s.fail(gen, err)
		return fmt.Errorf("service: pipeline run: %w", err)
	}

	return s.commit(gen, points, stats)
}

// begin registers a new run: it bumps the generation, cancels any run in
// flight, and flags the snapshot as loading.
func (s *PetService) begin(ctx context.Context) (context.Context, int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.generation++
	s.status.Loading = true
	return runCtx, s.generation
}

// finish clears the loading flag, unless a newer run owns it now.
func (s *PetService) finish(gen int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.status.Loading = false
	}
}

// commit installs the run's output as the visible snapshot. A superseded
// run's output is discarded here, behind the same lock that guards reads.
func (s *PetService) commit(gen int, points []models.LocatedPoint, stats models.RunStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		s.logger.Debug().Str("run_id", stats.RunID).Msg("Discarding superseded refresh")
		return ErrSuperseded
	}

	s.points = points
	s.status.UpdatedAt = time.Now()
	s.status.LastError = ""
	s.status.Stats = stats
	return nil
}

// fail records the run's error for Status, keeping the previous snapshot.
func (s *PetService) fail(gen int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen == s.generation {
		s.status.LastError = err.Error()
	}
}

// Run performs an initial refresh and then refreshes on the given
// interval until ctx is canceled. A zero interval means refresh once.
func (s *PetService) Run(ctx context.Context, interval time.Duration) {
	if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
		s.logger.Error().Err(err).Msg("Initial refresh failed")
	}
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil && !errors.Is(err, ErrSuperseded) {
				s.logger.Error().Err(err).Msg("Scheduled refresh failed")
			}
		}
	}
}

// Points returns the committed located points in feed order.
func (s *PetService) Points() []models.LocatedPoint {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.LocatedPoint, len(s.points))
	copy(out, s.points)
	return out
}

// Nearest ranks the committed points against reference and returns the
// closest k.
func (s *PetService) Nearest(reference *models.Coordinate, k int) []models.RankedPoint {
	return geo.Nearest(reference, s.Points(), k)
}

// HeatCells buckets the committed points for the density view.
func (s *PetService) HeatCells(level int) []geo.HeatCell {
	return geo.HeatCells(s.Points(), level)
}

// Clusters buckets the committed points for the clustered-marker view.
func (s *PetService) Clusters(precision int) []geo.Cluster {
	return geo.Clusters(s.Points(), precision)
}

// Export writes the committed points as a spreadsheet.
func (s *PetService) Export(w io.Writer) error {
	return export.WriteXLSX(w, s.Points())
}

// Status reports the snapshot's freshness and the last run's outcome.
func (s *PetService) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}
