package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"

	pkgerrors "github.com/ridgelinemoto/backend/pkg/errors"
)

type Config struct {
	App   AppConfig
	WPS   WPSConfig
	Redis RedisConfig
	Cache CacheConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.WPS.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"RIDGELINE_APP_ENV" required:"true"`
	Port         string   `envconfig:"RIDGELINE_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"RIDGELINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"RIDGELINE_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"RIDGELINE_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// WPSConfig carries the upstream catalog API credentials and tuning knobs.
type WPSConfig struct {
	BaseURL string        `envconfig:"RIDGELINE_WPS_BASE_URL" required:"true"`
	Token   string        `envconfig:"RIDGELINE_WPS_TOKEN" required:"true"`
	Timeout time.Duration `envconfig:"RIDGELINE_WPS_TIMEOUT" default:"15s"`

	// PageStyle selects which pagination convention requests use:
	// "cursor" (page[cursor]) or "offset" (page[number]).
	PageStyle string `envconfig:"RIDGELINE_WPS_PAGE_STYLE" default:"cursor"`

	DefaultPageSize  int `envconfig:"RIDGELINE_WPS_DEFAULT_PAGE_SIZE" default:"24"`
	MaxPageSize      int `envconfig:"RIDGELINE_WPS_MAX_PAGE_SIZE" default:"100"`
	ImageConcurrency int `envconfig:"RIDGELINE_WPS_IMAGE_CONCURRENCY" default:"10"`

	// CompatibilityPageLimit bounds the page walk in compatibility checks so a
	// misbehaving upstream cursor cannot loop forever.
	CompatibilityPageLimit int `envconfig:"RIDGELINE_WPS_COMPAT_PAGE_LIMIT" default:"50"`
}

// Validate fails fast on malformed upstream configuration.
func (w WPSConfig) Validate() error {
	base := strings.TrimSpace(w.BaseURL)
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return pkgerrors.New(pkgerrors.CodeConfig, fmt.Sprintf("wps base url %q is not a valid absolute URL", w.BaseURL))
	}
	if strings.TrimSpace(w.Token) == "" {
		return pkgerrors.New(pkgerrors.CodeConfig, "wps api token is required")
	}
	switch w.PageStyle {
	case PageStyleCursor, PageStyleOffset:
	default:
		return pkgerrors.New(pkgerrors.CodeConfig, fmt.Sprintf("wps page style %q must be %q or %q", w.PageStyle, PageStyleCursor, PageStyleOffset))
	}
	if w.MaxPageSize <= 0 || w.MaxPageSize > 100 {
		return pkgerrors.New(pkgerrors.CodeConfig, "wps max page size must be in (0,100]")
	}
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"RIDGELINE_REDIS_URL"`
	Address      string        `envconfig:"RIDGELINE_REDIS_ADDR"`
	Password     string        `envconfig:"RIDGELINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"RIDGELINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"RIDGELINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"RIDGELINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"RIDGELINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"RIDGELINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"RIDGELINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a cache backend was configured at all.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type CacheConfig struct {
	MakesTTL  time.Duration `envconfig:"RIDGELINE_CACHE_MAKES_TTL" default:"6h"`
	ModelsTTL time.Duration `envconfig:"RIDGELINE_CACHE_MODELS_TTL" default:"1h"`
	YearsTTL  time.Duration `envconfig:"RIDGELINE_CACHE_YEARS_TTL" default:"1h"`
}
