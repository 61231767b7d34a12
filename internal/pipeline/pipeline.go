// Package pipeline drives coordinate resolution over a full record set.
package pipeline

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sassil1/petmap/internal/models"
	"github.com/sassil1/petmap/internal/resolver"
)

// DefaultMaxLookups caps address-fallback geocode attempts in one run.
const DefaultMaxLookups = 150

// RecordResolver resolves a single record, reporting how it ended.
type RecordResolver interface {
	Resolve(ctx context.Context, rec models.RawRecord, allowFallback bool) (models.LocatedPoint, resolver.Outcome)
}

// Pipeline resolves records strictly one at a time, in input order. The
// sequencing is deliberate: each fallback lookup completes (including its
// pacing wait) before the next record starts.
type Pipeline struct {
	resolver RecordResolver
	logger   zerolog.Logger
}

// New builds a pipeline over the given resolver.
func New(res RecordResolver, logger zerolog.Logger) *Pipeline {
	return &Pipeline{resolver: res, logger: logger}
}

// Run resolves every record and returns the located points in input order.
// Records that fail resolution are absent from the output, with no
// placeholder; the stats carry the drop counts. maxLookups bounds the
// address-fallback attempts for the whole run (≤0 disables fallback).
//
// Cancellation is checked before each record and again before the results
// are returned, so a superseded run never hands back partial output.
func (p *Pipeline) Run(ctx context.Context, records []models.RawRecord, maxLookups int) ([]models.LocatedPoint, models.RunStats, error) {
	stats := models.RunStats{
		RunID:   uuid.NewString(),
		Records: len(records),
	}
	start := time.Now()

	p.logger.Debug().
		Str("run_id", stats.RunID).
		Int("records", len(records)).
		Int("max_lookups", maxLookups).
		Msg("Location pipeline started")

	points := make([]models.LocatedPoint, 0, len(records))
	remaining := maxLookups

	for _, rec := range records {
		if err := ctx.Err(); err != nil {
			return nil, stats, err
		}

		point, outcome := p.resolver.Resolve(ctx, rec, remaining > 0)
		if outcome.ConsumedLookup() {
			remaining--
			stats.Lookups++
		}

		switch outcome {
		case resolver.OutcomeEmbedded:
			stats.ResolvedEmbedded++
			points = append(points, point)
		case resolver.OutcomeGeocoded:
			stats.ResolvedGeocoded++
			points = append(points, point)
		case resolver.OutcomeSkipped:
			stats.DroppedBudget++
		default:
			stats.DroppedNoCoord++
		}
	}

	if err := ctx.Err(); err != nil {
		return nil, stats, err
	}

	stats.Duration = time.Since(start)
	p.logger.Info().
		Str("run_id", stats.RunID).
		Int("records", stats.Records).
		Int("resolved", stats.Resolved()).
		Int("geocoded", stats.ResolvedGeocoded).
		Int("lookups", stats.Lookups).
		Int("dropped_no_coord", stats.DroppedNoCoord).
		Int("dropped_budget", stats.DroppedBudget).
		Dur("duration", stats.Duration).
		Msg("Location pipeline finished")

	return points, stats, nil
}
