package workflow

import (
	"context"
	"errors"
	"strings"
)

// LLMClient completes a single system/user prompt pair.
type LLMClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ErrNoClient is the failure reason used when no LLM client is configured.
var ErrNoClient = errors.New("no language model configured")

// Generation is the outcome of one completion attempt. Exactly one of Text
// and FailureReason is set.
type Generation struct {
	Text          string
	FailureReason string
}

func (g Generation) OK() bool {
	return g.FailureReason == ""
}

// Generate runs one completion and folds every failure mode, including a
// missing client, an error, a panic, or an empty response, into a
// Generation with a failure reason. It is not retried.
func Generate(ctx context.Context, client LLMClient, systemPrompt, userPrompt string) (g Generation) {
	if client == nil {
		return Generation{FailureReason: ErrNoClient.Error()}
	}
	defer func() {
		if r := recover(); r != nil {
			g = Generation{FailureReason: "language model panicked"}
		}
	}()

	text, err := client.Complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		return Generation{FailureReason: err.Error()}
	}
	if strings.TrimSpace(text) == "" {
		return Generation{FailureReason: "empty response from language model"}
	}
	return Generation{Text: text}
}
