// Command loader is a one-shot artifact producer: it fetches the
// configured feeds, runs the location pipeline, and writes the results as
// GeoJSON, a spreadsheet, and optionally the raw records.
package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"path/filepath"

	"github.com/jessevdk/go-flags"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/sassil1/petmap/internal/config"
	"github.com/sassil1/petmap/internal/export"
	"github.com/sassil1/petmap/internal/feed"
	"github.com/sassil1/petmap/internal/geo"
	"github.com/sassil1/petmap/internal/geocode"
	"github.com/sassil1/petmap/internal/models"
	"github.com/sassil1/petmap/internal/pipeline"
	"github.com/sassil1/petmap/internal/resolver"
)

type Options struct {
	LogLevel    string `short:"L" long:"log-level"   env:"LOG_LEVEL"   description:"Log level (trace, debug, info, warn, error)" default:"info"`
	ConfigDir   string `short:"c" long:"config"      env:"CONFIG_DIR"  description:"Path to configuration directory" default:"./configs"`
	OutDir      string `short:"o" long:"out"         env:"OUT_DIR"     description:"Output directory for artifacts" default:"."`
	MaxLookups  int    `short:"m" long:"max-lookups" env:"MAX_LOOKUPS" description:"Address-fallback geocode budget, -1 uses config" default:"-1"`
	GeoJSONOnly bool   `short:"g" long:"geojson-only" description:"Write GeoJSON only"`
	XLSXOnly    bool   `short:"x" long:"xlsx-only"    description:"Write the spreadsheet only"`
	Raw         bool   `short:"r" long:"raw"          description:"Also write the raw feed records"`
}

func main() {
	var opts Options
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	level, err := zerolog.ParseLevel(opts.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	cfg, err := config.LoadConfig(opts.ConfigDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if opts.MaxLookups < 0 {
		opts.MaxLookups = cfg.MaxLookups
	}

	sources := []config.Source{{Name: "default", URL: cfg.FeedURL, Limit: cfg.FeedLimit}}
	if cfg.SourcesFile != "" {
		sources, err = config.LoadSources(cfg.SourcesFile, cfg.FeedLimit)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SourcesFile).Msg("Failed to load sources catalog")
		}
	}

	store := geocode.NewFileStore(cfg.CacheFile, log.Logger)
	geocoder := geocode.NewGeocoder(store, log.Logger,
		geocode.WithBaseURL(cfg.GeocoderURL),
		geocode.WithRegion(cfg.GeocoderRegion),
		geocode.WithPacing(cfg.GeocodePacing),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.GeocodeTimeout}),
	)
	pipe := pipeline.New(resolver.NewResolver(geocoder), log.Logger)
	feedClient := feed.NewClient(&http.Client{Timeout: cfg.FetchTimeout}, log.Logger)

	ctx := context.Background()

	var records []models.RawRecord
	for _, src := range sources {
		recs, err := feedClient.Fetch(ctx, src.URL, src.Limit)
		if err != nil {
			log.Warn().Err(err).Str("source", src.Name).Msg("Feed fetch failed")
			continue
		}
		log.Info().Str("source", src.Name).Int("records", len(recs)).Msg("Feed fetched")
		records = append(records, recs...)
	}
	if len(records) == 0 {
		log.Fatal().Msg("No records fetched from any source")
	}

	points, stats, err := pipe.Run(ctx, records, opts.MaxLookups)
	if err != nil {
		log.Fatal().Err(err).Msg("Pipeline run failed")
	}
	log.Info().
		Int("resolved", stats.Resolved()).
		Int("dropped_no_coord", stats.DroppedNoCoord).
		Int("dropped_budget", stats.DroppedBudget).
		Msg("Pipeline finished")

	if err := os.MkdirAll(opts.OutDir, 0755); err != nil {
		log.Fatal().Err(err).Str("dir", opts.OutDir).Msg("Failed to create output directory")
	}

	if !opts.XLSXOnly {
		writeGeoJSON(filepath.Join(opts.OutDir, "locations.geojson"), points)
	}
	if !opts.GeoJSONOnly {
		writeXLSX(filepath.Join(opts.OutDir, "pets.xlsx"), points)
	}
	if opts.Raw {
		writeRaw(filepath.Join(opts.OutDir, "records.json"), records)
	}
}

func writeGeoJSON(path string, points []models.LocatedPoint) {
	data, err := json.MarshalIndent(geo.FeatureCollection(points), "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal GeoJSON")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write GeoJSON")
	}
	log.Info().Str("path", path).Int("features", len(points)).Msg("GeoJSON written")
}

func writeXLSX(path string, points []models.LocatedPoint) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to create spreadsheet")
	}
	defer f.Close()

	if err := export.WriteXLSX(f, points); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write spreadsheet")
	}
	log.Info().Str("path", path).Int("rows", len(points)).Msg("Spreadsheet written")
}

func writeRaw(path string, records []models.RawRecord) {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to marshal raw records")
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		log.Fatal().Err(err).Str("path", path).Msg("Failed to write raw records")
	}
	log.Info().Str("path", path).Int("records", len(records)).Msg("Raw records written")
}
