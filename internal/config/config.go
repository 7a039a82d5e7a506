package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App         AppConfig         `mapstructure:"app"`
	Server      ServerConfig      `mapstructure:"server"`
	Log         LogConfig         `mapstructure:"log"`
	DB          DBConfig          `mapstructure:"db"`
	Cron        CronConfig        `mapstructure:"cron"`
	OpenLibrary OpenLibraryConfig `mapstructure:"openlibrary"`
	CatalogSync CatalogSyncConfig `mapstructure:"catalog_sync"`
	Preferences PreferencesConfig `mapstructure:"preferences"`
	Recommend   RecommendConfig   `mapstructure:"recommend"`
}

type AppConfig struct {
	Env string `mapstructure:"env"`
}

type ServerConfig struct {
	HTTPAddr string `mapstructure:"http_addr"`
}

type LogConfig struct {
	Level             string `mapstructure:"level"`
	Encoding          string `mapstructure:"encoding"`
	Development       bool   `mapstructure:"development"`
	Sampling          bool   `mapstructure:"sampling"`
	DisableCaller     bool   `mapstructure:"disable_caller"`
	DisableStacktrace bool   `mapstructure:"disable_stacktrace"`
}

type DBConfig struct {
	DSN             string        `mapstructure:"dsn"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Timezone        string        `mapstructure:"timezone"`
}

type CronConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	CatalogSync string `mapstructure:"catalog_sync"`
}

type OpenLibraryConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type CatalogSyncConfig struct {
	Sources         []ScrapeSourceConfig `mapstructure:"sources"`
	PageLimit       int                  `mapstructure:"page_limit"`
	MaxPages        int                  `mapstructure:"max_pages"`
	MaxAttempts     int                  `mapstructure:"max_attempts"`
	ExhaustedPolicy string               `mapstructure:"exhausted_policy"`
	ClaimTimeout    time.Duration        `mapstructure:"claim_timeout"`
}

// ScrapeSourceConfig names one upstream slice to ingest. Each source keeps an
// independent cursor row and claim.
type ScrapeSourceConfig struct {
	Name    string `mapstructure:"name"`
	Subject string `mapstructure:"subject"`
	Query   string `mapstructure:"query"`
}

type PreferencesConfig struct {
	MinWeight        float64 `mapstructure:"min_weight"`
	MaxWeight        float64 `mapstructure:"max_weight"`
	LikedThreshold   float64 `mapstructure:"liked_threshold"`
	DislikeThreshold float64 `mapstructure:"dislike_threshold"`
}

type RecommendConfig struct {
	GenreWeight          float64 `mapstructure:"genre_weight"`
	AuthorWeight         float64 `mapstructure:"author_weight"`
	LanguageWeight       float64 `mapstructure:"language_weight"`
	AgeRestrictionWeight float64 `mapstructure:"age_restriction_weight"`
	VolumeSizeWeight     float64 `mapstructure:"volume_size_weight"`
	CandidateLimit       int     `mapstructure:"candidate_limit"`
	PersistBatches       bool    `mapstructure:"persist_batches"`
}

func Load(path string, envOnly bool) (Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.AutomaticEnv()
	v.SetDefault("app.env", "dev")
	v.SetDefault("server.http_addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.encoding", "console")
	v.SetDefault("log.development", true)
	v.SetDefault("log.sampling", false)
	v.SetDefault("log.disable_caller", false)
	v.SetDefault("log.disable_stacktrace", false)
	v.SetDefault("db.max_open_conns", 20)
	v.SetDefault("db.max_idle_conns", 5)
	v.SetDefault("db.conn_max_lifetime", "30m")
	v.SetDefault("db.conn_max_idle_time", "5m")
	v.SetDefault("db.timezone", "UTC")
	v.SetDefault("cron.enabled", true)
	v.SetDefault("cron.catalog_sync", "@every 30s")
	v.SetDefault("openlibrary.base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary.timeout", "15s")
	v.SetDefault("catalog_sync.sources", []map[string]any{
		{"name": "science_fiction", "subject": "science_fiction"},
	})
	v.SetDefault("catalog_sync.page_limit", 100)
	v.SetDefault("catalog_sync.max_pages", 5)
	v.SetDefault("catalog_sync.max_attempts", 10)
	v.SetDefault("catalog_sync.exhausted_policy", "hold")
	v.SetDefault("catalog_sync.claim_timeout", "10m")
	v.SetDefault("preferences.min_weight", -10.0)
	v.SetDefault("preferences.max_weight", 10.0)
	v.SetDefault("preferences.liked_threshold", 1.0)
	v.SetDefault("preferences.dislike_threshold", -1.0)
	v.SetDefault("recommend.genre_weight", 0.35)
	v.SetDefault("recommend.author_weight", 0.30)
	v.SetDefault("recommend.language_weight", 0.15)
	v.SetDefault("recommend.age_restriction_weight", 0.10)
	v.SetDefault("recommend.volume_size_weight", 0.10)
	v.SetDefault("recommend.candidate_limit", 2000)
	v.SetDefault("recommend.persist_batches", true)

	if !envOnly {
		if err := v.ReadInConfig(); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
