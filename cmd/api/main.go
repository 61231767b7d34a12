package main

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/sassil1/petmap/docs"
	"github.com/sassil1/petmap/internal/config"
	"github.com/sassil1/petmap/internal/feed"
	"github.com/sassil1/petmap/internal/geocode"
	"github.com/sassil1/petmap/internal/handler"
	"github.com/sassil1/petmap/internal/pipeline"
	"github.com/sassil1/petmap/internal/repository"
	"github.com/sassil1/petmap/internal/resolver"
	"github.com/sassil1/petmap/internal/service"
)

// @title			PetMap API
// @version		1.0
// @description	Adoptable-pet and found-animal locations for map front ends.
func main() {
	cfg, err := config.LoadConfig("./configs")
	if err != nil {
		log.Fatal().Err(err).Msg("cannot load config")
	}

	// Geocode cache: Postgres when a DB source is configured, a JSON file
	// otherwise. Both fail open on storage trouble.
	var store geocode.Store
	if cfg.DBSource != "" {
		conn, err := pgxpool.New(context.Background(), cfg.DBSource)
		if err != nil {
			log.Fatal().Err(err).Msg("cannot connect to db")
		}
		defer conn.Close()

		cache := repository.NewGeocodeCache(conn, log.Logger)
		if err := cache.Init(context.Background()); err != nil {
			log.Fatal().Err(err).Msg("cannot init geocode cache table")
		}
		log.Info().Int("entries", cache.Len(context.Background())).Msg("Using Postgres geocode cache")
		store = cache
	} else {
		fileStore := geocode.NewFileStore(cfg.CacheFile, log.Logger)
		log.Info().Int("entries", fileStore.Len()).Str("path", cfg.CacheFile).Msg("Using file geocode cache")
		store = fileStore
	}

	// Feed sources: the YAML catalog when present, the single configured
	// feed otherwise.
	sources := []config.Source{{Name: "default", URL: cfg.FeedURL, Limit: cfg.FeedLimit}}
	if cfg.SourcesFile != "" {
		sources, err = config.LoadSources(cfg.SourcesFile, cfg.FeedLimit)
		if err != nil {
			log.Fatal().Err(err).Str("path", cfg.SourcesFile).Msg("cannot load sources catalog")
		}
	}

	// Initialize layers
	geocoder := geocode.NewGeocoder(store, log.Logger,
		geocode.WithBaseURL(cfg.GeocoderURL),
		geocode.WithRegion(cfg.GeocoderRegion),
		geocode.WithPacing(cfg.GeocodePacing),
		geocode.WithHTTPClient(&http.Client{Timeout: cfg.GeocodeTimeout}),
	)
	res := resolver.NewResolver(geocoder)
	pipe := pipeline.New(res, log.Logger)
	feedClient := feed.NewClient(&http.Client{Timeout: cfg.FetchTimeout}, log.Logger)

	petService := service.NewPetService(feedClient, pipe, sources, cfg.MaxLookups, log.Logger)

	petsHandler := handler.NewPetsHandler(petService)
	nearestHandler := handler.NewNearestHandler(petService)
	aggregateHandler := handler.NewAggregateHandler(petService)
	exportHandler := handler.NewExportHandler(petService)
	refreshHandler := handler.NewRefreshHandler(petService, log.Logger)

	// Initial load plus the optional periodic refresh.
	go petService.Run(context.Background(), cfg.RefreshInterval)

	r := gin.Default()

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	r.GET("/api/pets", petsHandler.List)
	r.GET("/api/pets/nearest", nearestHandler.Nearest)
	r.GET("/api/pets/heatmap", aggregateHandler.Heatmap)
	r.GET("/api/pets/clusters", aggregateHandler.Clusters)
	r.GET("/api/pets/export", exportHandler.Export)
	r.POST("/api/pets/refresh", refreshHandler.Refresh)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	if err := r.Run(cfg.ServerAddress); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
