package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// Config holds all runtime settings for the API server and the loader.
// Values come from configs/app.env and may be overridden by environment
// variables of the same name.
type Config struct {
	ServerAddress string `mapstructure:"SERVER_ADDRESS"`

	// DBSource enables the Postgres-backed geocode cache when set.
	// When empty the file cache at CacheFile is used instead.
	DBSource  string `mapstructure:"DB_SOURCE"`
	CacheFile string `mapstructure:"CACHE_FILE"`

	FeedURL      string        `mapstructure:"FEED_URL"`
	FeedLimit    int           `mapstructure:"FEED_LIMIT"`
	FetchTimeout time.Duration `mapstructure:"FETCH_TIMEOUT"`

	// SourcesFile points at an optional YAML catalog of feeds. When it is
	// empty or missing, FeedURL/FeedLimit define a single source.
	SourcesFile string `mapstructure:"SOURCES_FILE"`

	GeocoderURL    string        `mapstructure:"GEOCODER_URL"`
	GeocoderRegion string        `mapstructure:"GEOCODER_REGION"`
	GeocodePacing  time.Duration `mapstructure:"GEOCODE_PACING"`
	GeocodeTimeout time.Duration `mapstructure:"GEOCODE_TIMEOUT"`
	MaxLookups     int           `mapstructure:"MAX_LOOKUPS"`

	NearestLimit     int           `mapstructure:"NEAREST_LIMIT"`
	HeatLevel        int           `mapstructure:"HEAT_LEVEL"`
	ClusterPrecision int           `mapstructure:"CLUSTER_PRECISION"`
	RefreshInterval  time.Duration `mapstructure:"REFRESH_INTERVAL"`
}

// LoadConfig reads configuration from the given directory and from the
// environment. A missing config file is not an error; env vars and the
// defaults below still apply.
func LoadConfig(path string) (config Config, err error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("app")
	viper.SetConfigType("env")

	viper.SetDefault("SERVER_ADDRESS", ":8080")
	viper.SetDefault("CACHE_FILE", "geocode-cache.json")
	viper.SetDefault("FEED_URL", "https://data.montgomerycountymd.gov/resource/e54u-qx42.json")
	viper.SetDefault("FEED_LIMIT", 1000)
	viper.SetDefault("FETCH_TIMEOUT", 30*time.Second)
	viper.SetDefault("GEOCODER_URL", "https://nominatim.openstreetmap.org/search")
	viper.SetDefault("GEOCODER_REGION", "Montgomery County, MD")
	viper.SetDefault("GEOCODE_PACING", 1100*time.Millisecond)
	viper.SetDefault("GEOCODE_TIMEOUT", 10*time.Second)
	viper.SetDefault("MAX_LOOKUPS", 150)
	viper.SetDefault("NEAREST_LIMIT", 25)
	viper.SetDefault("HEAT_LEVEL", 13)
	viper.SetDefault("CLUSTER_PRECISION", 6)
	viper.SetDefault("REFRESH_INTERVAL", time.Duration(0))

	viper.AutomaticEnv()

	if err = viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return
		}
		err = nil
	}

	err = viper.Unmarshal(&config)
	return
}
