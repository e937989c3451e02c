package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/getsentry/sentry-go"
	"github.com/jonboulle/clockwork"
	"github.com/malbeclabs/weo/agent/pkg/relevance"
	"github.com/malbeclabs/weo/agent/pkg/summary"
	"github.com/malbeclabs/weo/agent/pkg/workflow"
	"github.com/malbeclabs/weo/api/config"
	"github.com/malbeclabs/weo/api/handlers"
	"github.com/malbeclabs/weo/api/metrics"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
	"github.com/malbeclabs/weo/utils/pkg/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

var (
	// Set by LDFLAGS
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	cfg, err := config.Load(os.Args[1:], os.Getenv)
	if err != nil {
		return err
	}

	log := logger.New(cfg.Verbose)

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			Environment:      cfg.SentryEnvironment,
			Release:          version,
			EnableTracing:    true,
			TracesSampleRate: 1.0,
		}); err != nil {
			log.Warn("failed to initialize sentry", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
			log.Info("sentry initialized", "environment", cfg.SentryEnvironment)
		}
	}

	store, err := buildStore(log, cfg.TablePath)
	if err != nil {
		return err
	}
	metrics.StoreIndicators.Set(float64(store.Len()))

	assistant, err := buildAssistant(log, cfg, store)
	if err != nil {
		return err
	}

	clock := clockwork.NewRealClock()
	var limiter *handlers.RateLimiter
	if cfg.AskPerMinute > 0 {
		limiter = handlers.NewRateLimiter(clock, rate.Every(time.Minute/time.Duration(cfg.AskPerMinute)), cfg.AskBurst)
		defer limiter.Close()
	}

	h, err := handlers.New(handlers.Config{
		Logger:         log,
		Store:          store,
		Assistant:      assistant,
		Clock:          clock,
		AskLimiter:     limiter,
		AllowedOrigins: cfg.AllowedOrigins,
		Version:        handlers.VersionResponse{Version: version, Commit: commit, Date: date},
	})
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	servers := []*http.Server{{Addr: cfg.HTTPAddr, Handler: h.Router(), ReadHeaderTimeout: 10 * time.Second}}
	if cfg.MetricsAddr != "" {
		metrics.BuildInfo.WithLabelValues(version, commit, date).Set(1)
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		servers = append(servers, &http.Server{Addr: cfg.MetricsAddr, Handler: mux, ReadHeaderTimeout: 10 * time.Second})
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, srv := range servers {
		listener, err := net.Listen("tcp", srv.Addr)
		if err != nil {
			return fmt.Errorf("failed to listen on %s: %w", srv.Addr, err)
		}
		log.Info("server listening", "address", listener.Addr().String())
		g.Go(func() error {
			if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		var errs []error
		for _, srv := range servers {
			errs = append(errs, srv.Shutdown(shutdownCtx))
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	log.Info("server stopped")
	return nil
}

// buildStore loads the indicator table once. A store with no indicators is
// as fatal as a table that cannot be parsed.
func buildStore(log *slog.Logger, tablePath string) (*weo.Store, error) {
	var raw string
	if tablePath != "" {
		var err error
		raw, err = weo.LoadFile(tablePath)
		if err != nil {
			return nil, err
		}
	}
	store, err := weo.NewStore(weo.StoreConfig{Logger: log, Raw: raw})
	if err != nil {
		return nil, fmt.Errorf("failed to build indicator store: %w", err)
	}
	if store.Len() == 0 {
		return nil, errors.New("indicator table has no usable indicators")
	}
	first, last := store.YearSpan()
	log.Info("indicator store ready", "indicators", store.Len(), "country", store.Country(), "firstYear", first, "lastYear", last)
	return store, nil
}

func buildAssistant(log *slog.Logger, cfg *config.Config, store *weo.Store) (*workflow.Assistant, error) {
	engine, err := relevance.NewEngine(relevance.EngineConfig{Searcher: store})
	if err != nil {
		return nil, err
	}
	summarizer, err := summary.New(summary.Config{})
	if err != nil {
		return nil, err
	}

	acfg := workflow.AssistantConfig{
		Logger:     log,
		Store:      store,
		Engine:     engine,
		Summarizer: summarizer,
		Fallback:   cfg.Fallback,
	}
	if cfg.GenerationEnabled() {
		llm, err := workflow.NewAnthropicLLMClient(workflow.AnthropicConfig{
			Logger: log,
			APIKey: cfg.AnthropicAPIKey,
			Model:  anthropic.Model(cfg.Model),
			Name:   "ask",
		})
		if err != nil {
			return nil, err
		}
		acfg.LLM = llm
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, answers will use the fallback narrative")
	}
	return workflow.NewAssistant(acfg)
}
