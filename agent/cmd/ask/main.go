package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/joho/godotenv"
	"github.com/malbeclabs/weo/agent/pkg/relevance"
	"github.com/malbeclabs/weo/agent/pkg/summary"
	"github.com/malbeclabs/weo/agent/pkg/workflow"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
	"github.com/malbeclabs/weo/utils/pkg/logger"
	flag "github.com/spf13/pflag"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	indicatorFlag := flag.String("indicator", "", "Answer about this indicator code instead of matching keywords")
	tableFlag := flag.String("table", "", "Path to a WEO tab-delimited table (defaults to the embedded table)")
	fallbackFlag := flag.String("fallback", string(relevance.FallbackHeadline), "Indicators used when no keyword matches: headline or search")
	modelFlag := flag.String("model", "", "Anthropic model (or set ANTHROPIC_MODEL env var)")
	timeoutFlag := flag.Duration("timeout", 2*time.Minute, "Maximum time to wait for an answer")
	showSourceFlag := flag.Bool("show-source", false, "Print how the answer was produced")
	verboseFlag := flag.Bool("verbose", false, "Enable verbose (debug) logging")
	flag.Parse()

	// Local .env is optional.
	_ = godotenv.Load()

	question := strings.TrimSpace(strings.Join(flag.Args(), " "))
	if question == "" {
		return errors.New("usage: ask [flags] <question>")
	}
	fallback, err := relevance.ParseFallback(*fallbackFlag)
	if err != nil {
		return err
	}
	if v := os.Getenv("ANTHROPIC_MODEL"); v != "" && *modelFlag == "" {
		*modelFlag = v
	}

	log := logger.NewWithWriter(os.Stderr, logger.Level(*verboseFlag), false)

	var raw string
	if *tableFlag != "" {
		raw, err = weo.LoadFile(*tableFlag)
		if err != nil {
			return err
		}
	}
	store, err := weo.NewStore(weo.StoreConfig{Logger: log, Raw: raw})
	if err != nil {
		return fmt.Errorf("failed to build indicator store: %w", err)
	}
	if store.Len() == 0 {
		return errors.New("indicator table has no usable indicators")
	}

	engine, err := relevance.NewEngine(relevance.EngineConfig{Searcher: store})
	if err != nil {
		return err
	}
	summarizer, err := summary.New(summary.Config{})
	if err != nil {
		return err
	}

	acfg := workflow.AssistantConfig{
		Logger:     log,
		Store:      store,
		Engine:     engine,
		Summarizer: summarizer,
		Fallback:   fallback,
	}
	llm, err := workflow.NewAnthropicLLMClientFromEnv(log, anthropic.Model(*modelFlag))
	if err != nil {
		return err
	}
	if llm != nil {
		acfg.LLM = llm
	} else {
		log.Warn("ANTHROPIC_API_KEY not set, answering from the fallback narrative")
	}
	assistant, err := workflow.NewAssistant(acfg)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	ctx, cancelTimeout := context.WithTimeout(ctx, *timeoutFlag)
	defer cancelTimeout()

	ans := assistant.GenerateResponse(ctx, question, *indicatorFlag)
	fmt.Println(ans.Text)
	if *showSourceFlag {
		fmt.Fprintf(os.Stderr, "\nsource=%s indicators=%s id=%s\n", ans.Source, strings.Join(ans.Indicators, ","), ans.ID)
		if ans.FailureReason != "" {
			fmt.Fprintf(os.Stderr, "failure_reason=%s\n", ans.FailureReason)
		}
	}
	return nil
}
