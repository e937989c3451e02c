//go:build evals

package evals_test

import (
	"os"
	"testing"

	"github.com/malbeclabs/weo/agent/pkg/relevance"
	"github.com/malbeclabs/weo/agent/pkg/summary"
	"github.com/malbeclabs/weo/agent/pkg/workflow"
	"github.com/malbeclabs/weo/indexer/pkg/weo"
	weotesting "github.com/malbeclabs/weo/utils/pkg/testing"
	"github.com/stretchr/testify/require"
)

// newEvalAssistant wires the assistant against the live Anthropic API. Evals
// are skipped when no API key is configured.
func newEvalAssistant(t *testing.T) *workflow.Assistant {
	t.Helper()
	apiKey := os.Getenv(workflow.APIKeyEnv)
	if apiKey == "" {
		t.Skip("ANTHROPIC_API_KEY not set, skipping eval test")
	}

	log := weotesting.NewLogger()
	store, err := weo.NewStore(weo.StoreConfig{Logger: log})
	require.NoError(t, err)
	engine, err := relevance.NewEngine(relevance.EngineConfig{Searcher: store})
	require.NoError(t, err)
	summarizer, err := summary.New(summary.Config{})
	require.NoError(t, err)
	llm, err := workflow.NewAnthropicLLMClient(workflow.AnthropicConfig{
		Logger: log,
		APIKey: apiKey,
		Name:   "eval",
	})
	require.NoError(t, err)

	a, err := workflow.NewAssistant(workflow.AssistantConfig{
		Logger:     log,
		Store:      store,
		Engine:     engine,
		Summarizer: summarizer,
		LLM:        llm,
	})
	require.NoError(t, err)
	return a
}
