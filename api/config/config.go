// Package config loads the API server configuration from flags, environment
// variables and an optional .env file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/malbeclabs/weo/agent/pkg/relevance"
	flag "github.com/spf13/pflag"
)

const (
	defaultHTTPAddr        = "0.0.0.0:8080"
	defaultMetricsAddr     = "0.0.0.0:0"
	defaultAskPerMinute    = 10
	defaultAskBurst        = 3
	defaultShutdownTimeout = 30 * time.Second
)

type Config struct {
	HTTPAddr    string
	MetricsAddr string
	Verbose     bool

	// TablePath replaces the embedded table when set.
	TablePath string
	Fallback  relevance.Fallback

	AnthropicAPIKey string
	Model           string

	AskPerMinute   int
	AskBurst       int
	AllowedOrigins []string

	SentryDSN         string
	SentryEnvironment string

	ShutdownTimeout time.Duration
}

// LoadDotEnv loads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// Load parses args and applies environment overrides from getenv.
func Load(args []string, getenv func(string) string) (*Config, error) {
	fs := flag.NewFlagSet("weo-api", flag.ContinueOnError)
	httpAddr := fs.String("http-addr", defaultHTTPAddr, "Address to serve the API on (or set HTTP_ADDR env var)")
	metricsAddr := fs.String("metrics-addr", defaultMetricsAddr, "Address to listen on for prometheus metrics, empty to disable (or set METRICS_ADDR env var)")
	verbose := fs.Bool("verbose", false, "Enable verbose (debug) logging")
	tablePath := fs.String("table", "", "Path to a WEO tab-delimited table, defaults to the embedded table (or set WEO_TABLE env var)")
	fallback := fs.String("fallback", string(relevance.FallbackHeadline), "Indicators used when no keyword matches: headline or search (or set WEO_FALLBACK env var)")
	model := fs.String("model", "", "Anthropic model (or set ANTHROPIC_MODEL env var)")
	askPerMinute := fs.Int("ask-per-minute", defaultAskPerMinute, "Questions per minute allowed per client IP, 0 disables the limit")
	askBurst := fs.Int("ask-burst", defaultAskBurst, "Burst size of the per-IP question limit")
	origins := fs.StringSlice("allowed-origins", nil, "CORS allowed origins (or set ALLOWED_ORIGINS env var, comma separated)")
	shutdownTimeout := fs.Duration("shutdown-timeout", defaultShutdownTimeout, "Maximum time to wait for in-flight requests during shutdown")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if v := getenv("HTTP_ADDR"); v != "" {
		*httpAddr = v
	}
	if v := getenv("METRICS_ADDR"); v != "" {
		*metricsAddr = v
	}
	if v := getenv("WEO_TABLE"); v != "" {
		*tablePath = v
	}
	if v := getenv("WEO_FALLBACK"); v != "" {
		*fallback = v
	}
	if v := getenv("ANTHROPIC_MODEL"); v != "" {
		*model = v
	}
	if v := getenv("ALLOWED_ORIGINS"); v != "" {
		*origins = splitList(v)
	}
	if v := getenv("ASK_PER_MINUTE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid ASK_PER_MINUTE: %w", err)
		}
		*askPerMinute = n
	}

	fb, err := relevance.ParseFallback(*fallback)
	if err != nil {
		return nil, err
	}

	sentryEnv := getenv("SENTRY_ENVIRONMENT")
	if sentryEnv == "" {
		sentryEnv = "development"
	}

	cfg := &Config{
		HTTPAddr:          *httpAddr,
		MetricsAddr:       *metricsAddr,
		Verbose:           *verbose,
		TablePath:         *tablePath,
		Fallback:          fb,
		AnthropicAPIKey:   getenv("ANTHROPIC_API_KEY"),
		Model:             *model,
		AskPerMinute:      *askPerMinute,
		AskBurst:          *askBurst,
		AllowedOrigins:    *origins,
		SentryDSN:         getenv("SENTRY_DSN"),
		SentryEnvironment: sentryEnv,
		ShutdownTimeout:   *shutdownTimeout,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (cfg *Config) Validate() error {
	if cfg.HTTPAddr == "" {
		return errors.New("http address is required")
	}
	if cfg.AskPerMinute < 0 {
		return errors.New("ask-per-minute must not be negative")
	}
	if cfg.AskPerMinute > 0 && cfg.AskBurst < 1 {
		return errors.New("ask-burst must be at least 1")
	}
	if cfg.ShutdownTimeout <= 0 {
		return errors.New("shutdown-timeout must be positive")
	}
	return nil
}

// GenerationEnabled reports whether answers can be generated by the language
// model.
func (cfg *Config) GenerationEnabled() bool {
	return cfg.AnthropicAPIKey != ""
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
