//go:build evals

package evals_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/malbeclabs/weo/agent/pkg/summary"
	"github.com/malbeclabs/weo/agent/pkg/workflow"
	"github.com/stretchr/testify/require"
)

func TestWEO_Agent_Evals_Anthropic_UnemploymentTrend(t *testing.T) {
	t.Parallel()
	a := newEvalAssistant(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ans := a.GenerateResponse(ctx, "¿Cómo ha evolucionado el desempleo en Ecuador desde la dolarización?", "")
	require.Equal(t, workflow.SourceGenerated, ans.Source, ans.FailureReason)
	require.Equal(t, []string{"LUR"}, ans.Indicators)

	// The answer should cite figures that are in the context.
	require.True(t, strings.Contains(ans.Text, "2000") || strings.Contains(ans.Text, "2024"), ans.Text)
	require.Regexp(t, `\d+[.,]\d`, ans.Text)
}

func TestWEO_Agent_Evals_Anthropic_DollarizationInflation(t *testing.T) {
	t.Parallel()
	a := newEvalAssistant(t)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	ans := a.GenerateResponse(ctx, "¿Qué efecto tuvo la dolarización sobre la inflación?", "")
	require.Equal(t, workflow.SourceGenerated, ans.Source, ans.FailureReason)
	require.Contains(t, ans.Indicators, "PCPIPCH")
	require.Contains(t, strings.ToLower(ans.Text), "inflación")
}

func TestWEO_Agent_Evals_Anthropic_UnrelatedQuestionNoData(t *testing.T) {
	t.Parallel()
	a := newEvalAssistant(t)

	ans := a.GenerateResponse(context.Background(), "the weather", "NOPE")
	require.Equal(t, workflow.SourceNoData, ans.Source)
	require.Equal(t, summary.NoInformation, ans.Text)
}
