package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/malbeclabs/weo/agent/pkg/relevance"
	"github.com/malbeclabs/weo/agent/pkg/summary"
	"github.com/malbeclabs/weo/api/metrics"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
)

// Source says how an answer was produced.
type Source string

const (
	SourceGenerated Source = "generated"
	SourceFallback  Source = "fallback"
	SourceNoData    Source = "no_data"
)

// Indicators is the read side of the store the assistant needs. *weo.Store
// satisfies it.
type Indicators interface {
	GetFull(code string) (*weo.Indicator, bool)
	Country() string
	YearSpan() (int, int)
}

type AssistantConfig struct {
	Logger     *slog.Logger
	Store      Indicators
	Engine     *relevance.Engine
	Summarizer *summary.Summarizer
	// LLM may be nil, in which case every answer is narrated locally.
	LLM      LLMClient
	Fallback relevance.Fallback
}

func (cfg *AssistantConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if cfg.Store == nil {
		return errors.New("store is required")
	}
	if cfg.Engine == nil {
		return errors.New("relevance engine is required")
	}
	if cfg.Summarizer == nil {
		return errors.New("summarizer is required")
	}
	if cfg.Fallback == "" {
		cfg.Fallback = relevance.FallbackHeadline
	}
	return nil
}

// Assistant answers questions about the indicators in a store.
type Assistant struct {
	log        *slog.Logger
	store      Indicators
	engine     *relevance.Engine
	summarizer *summary.Summarizer
	llm        LLMClient
	fallback   relevance.Fallback
}

func NewAssistant(cfg AssistantConfig) (*Assistant, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Assistant{
		log:        cfg.Logger,
		store:      cfg.Store,
		engine:     cfg.Engine,
		summarizer: cfg.Summarizer,
		llm:        cfg.LLM,
		fallback:   cfg.Fallback,
	}, nil
}

// Answer is the response to one question.
type Answer struct {
	ID         uuid.UUID `json:"id"`
	Text       string    `json:"answer"`
	Source     Source    `json:"source"`
	Indicators []string  `json:"indicators"`
	// FailureReason explains why a fallback answer was narrated.
	FailureReason string `json:"failure_reason,omitempty"`
}

type answerIDKey struct{}

func withAnswerID(ctx context.Context, id uuid.UUID) context.Context {
	return context.WithValue(ctx, answerIDKey{}, id.String())
}

// AnswerIDFromContext returns the id of the answer being generated, if any.
func AnswerIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(answerIDKey{}).(string)
	return id, ok
}

// GenerateResponse answers query. A non-empty hint names the indicator to
// use and bypasses relevance. It never fails: when the language model is
// unavailable or errors, the answer is narrated from the digests instead.
func (a *Assistant) GenerateResponse(ctx context.Context, query, hint string) *Answer {
	ans := &Answer{ID: uuid.New()}
	log := a.log.With("answer_id", ans.ID.String())

	codes := a.selectCodes(log, query, hint)
	inds := make([]*weo.Indicator, 0, len(codes))
	for _, code := range codes {
		ind, ok := a.store.GetFull(code)
		if !ok {
			log.Debug("workflow: selected indicator not in store", "code", code)
			continue
		}
		inds = append(inds, ind)
		ans.Indicators = append(ans.Indicators, code)
	}

	if len(inds) == 0 {
		ans.Text = summary.NoInformation
		ans.Source = SourceNoData
		metrics.RecordAnswer(string(ans.Source))
		return ans
	}

	digests := a.summarizer.DigestAll(inds)
	gen := a.generate(withAnswerID(ctx, ans.ID), query, digests)
	if gen.OK() {
		ans.Text = gen.Text
		ans.Source = SourceGenerated
	} else {
		log.Warn("workflow: answering from fallback narrative", "reason", gen.FailureReason)
		ans.Text = a.summarizer.Narrate(digests)
		ans.Source = SourceFallback
		ans.FailureReason = gen.FailureReason
	}
	metrics.RecordAnswer(string(ans.Source))
	return ans
}

func (a *Assistant) selectCodes(log *slog.Logger, query, hint string) []string {
	if hint = strings.TrimSpace(hint); hint != "" {
		return []string{hint}
	}
	res := a.engine.Relevant(query, a.fallback)
	if res.Fallback != "" {
		log.Debug("workflow: no keyword matched", "fallback", res.Fallback, "codes", res.Codes)
		metrics.RecordRelevanceFallback(string(res.Fallback))
	}
	return res.Codes
}

func (a *Assistant) generate(ctx context.Context, query string, digests []summary.IndicatorDigest) Generation {
	if a.llm == nil {
		return Generation{FailureReason: ErrNoClient.Error()}
	}
	country := a.store.Country()
	first, last := a.store.YearSpan()
	system := BuildSystemPrompt(country, fmt.Sprintf("%d-%d", first, last))
	user := BuildUserPrompt(a.summarizer.RenderContext(country, digests), query)
	return Generate(ctx, a.llm, system, user)
}
