package workflow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/getsentry/sentry-go"
	"github.com/malbeclabs/weo/api/metrics"
)

const (
	DefaultModel       = anthropic.Model("claude-sonnet-4-5")
	DefaultMaxTokens   = 1500
	DefaultTemperature = 0.3

	// APIKeyEnv is read to decide whether answers can be generated at all.
	APIKeyEnv = "ANTHROPIC_API_KEY"
)

// AnthropicLLMClient implements LLMClient using the Anthropic API.
type AnthropicLLMClient struct {
	log         *slog.Logger
	client      anthropic.Client
	model       anthropic.Model
	maxTokens   int64
	temperature float64
	name        string // label for logs and metrics (e.g., "ask", "eval")
}

type AnthropicConfig struct {
	Logger      *slog.Logger
	APIKey      string
	Model       anthropic.Model
	MaxTokens   int64
	Temperature float64
	Name        string
}

func (cfg *AnthropicConfig) Validate() error {
	if cfg.Logger == nil {
		return errors.New("logger is required")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return fmt.Errorf("api key is required (set %s)", APIKeyEnv)
	}
	if cfg.Model == "" {
		cfg.Model = DefaultModel
	}
	if cfg.MaxTokens == 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.MaxTokens < 0 {
		return errors.New("max tokens must be positive")
	}
	if cfg.Temperature == 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Temperature < 0 || cfg.Temperature > 1 {
		return errors.New("temperature must be between 0 and 1")
	}
	if cfg.Name == "" {
		cfg.Name = "ask"
	}
	return nil
}

// NewAnthropicLLMClient creates a new Anthropic-based LLM client.
func NewAnthropicLLMClient(cfg AnthropicConfig) (*AnthropicLLMClient, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &AnthropicLLMClient{
		log:         cfg.Logger,
		client:      anthropic.NewClient(option.WithAPIKey(cfg.APIKey)),
		model:       cfg.Model,
		maxTokens:   cfg.MaxTokens,
		temperature: cfg.Temperature,
		name:        cfg.Name,
	}, nil
}

// NewAnthropicLLMClientFromEnv returns nil when ANTHROPIC_API_KEY is unset,
// which callers treat as "answer from the fallback narrative only".
func NewAnthropicLLMClientFromEnv(log *slog.Logger, model anthropic.Model) (*AnthropicLLMClient, error) {
	key := os.Getenv(APIKeyEnv)
	if key == "" {
		return nil, nil
	}
	return NewAnthropicLLMClient(AnthropicConfig{Logger: log, APIKey: key, Model: model})
}

// Complete sends a prompt to Claude and returns the response text.
func (c *AnthropicLLMClient) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	span := sentry.StartSpan(ctx, "gen_ai.chat", sentry.WithDescription(fmt.Sprintf("chat %s", c.model)))
	span.SetData("gen_ai.operation.name", "chat")
	span.SetData("gen_ai.request.model", string(c.model))
	span.SetData("gen_ai.request.max_tokens", c.maxTokens)
	span.SetData("gen_ai.request.temperature", c.temperature)
	span.SetData("gen_ai.system", "anthropic")
	if id, ok := AnswerIDFromContext(ctx); ok {
		span.SetTag("answer_id", id)
	}
	ctx = span.Context()
	defer span.Finish()

	start := time.Now()
	c.log.Info("Anthropic API call starting", "phase", c.name, "model", c.model, "maxTokens", c.maxTokens, "userPromptLen", len(userPrompt))

	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:       c.model,
		MaxTokens:   c.maxTokens,
		Temperature: anthropic.Float(c.temperature),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	})

	duration := time.Since(start)
	if err != nil {
		c.log.Error("Anthropic API call failed", "phase", c.name, "duration", duration, "error", err)
		metrics.RecordAnthropicRequest(c.name, duration, err)
		span.Status = sentry.SpanStatusInternalError
		return "", fmt.Errorf("anthropic API error: %w", err)
	}

	c.log.Info("Anthropic API call completed",
		"phase", c.name,
		"duration", duration,
		"stopReason", msg.StopReason,
		"inputTokens", msg.Usage.InputTokens,
		"outputTokens", msg.Usage.OutputTokens,
	)

	metrics.RecordAnthropicRequest(c.name, duration, nil)
	metrics.RecordAnthropicTokens(msg.Usage.InputTokens, msg.Usage.OutputTokens)

	span.SetData("gen_ai.usage.input_tokens", msg.Usage.InputTokens)
	span.SetData("gen_ai.usage.output_tokens", msg.Usage.OutputTokens)
	span.SetData("gen_ai.usage.total_tokens", msg.Usage.InputTokens+msg.Usage.OutputTokens)
	span.Status = sentry.SpanStatusOK

	var sb strings.Builder
	for _, block := range msg.Content {
		if block.Type == "text" {
			sb.WriteString(block.Text)
		}
	}
	if sb.Len() == 0 {
		return "", errors.New("no text content in response")
	}
	return sb.String(), nil
}
