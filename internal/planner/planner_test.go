package planner_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"triptacticx/internal/config"
	"triptacticx/internal/mocks"
	"triptacticx/internal/models"
	"triptacticx/internal/planner"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var tripInput = models.TripInput{
	Destination:    "Goa",
	Days:           4,
	GroupSize:      3,
	Budget:         45000,
	TripType:       "leisure",
	Preferences:    "beaches, seafood",
	SourceLocation: "Pune",
}

func newPlanner(t *testing.T, client planner.AIClient) *planner.AgentPlanner {
	t.Helper()
	prompts, err := planner.NewPromptProvider()
	require.NoError(t, err)
	return planner.NewAgentPlanner(client, prompts, planner.GenerationParams{}, zap.NewNop())
}

func TestAgentPlanner_Success(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	var calls []string

	for _, key := range models.CanonicalSections {
		agent := string(key)
		client.On("GenerateText", mock.Anything, agent,
			mock.MatchedBy(func(p string) bool { return strings.Contains(p, "Goa") }),
			mock.MatchedBy(func(in string) bool { return strings.Contains(in, "Travelling from: Pune") }),
			planner.GenerationParams{},
		).Run(func(mock.Arguments) { calls = append(calls, agent) }).
			Return("  - "+agent+" item\n", planner.UsageInfo{TotalTokens: 10}, nil).Once()
	}
	client.On("GenerateText", mock.Anything, planner.SummaryPromptKey, mock.Anything,
		mock.MatchedBy(func(in string) bool {
			return strings.Contains(in, "Stay Options:\n- stay item") && strings.Contains(in, "Budget Planning:\n- budget item")
		}),
		planner.GenerationParams{},
	).Run(func(mock.Arguments) { calls = append(calls, planner.SummaryPromptKey) }).
		Return("Relaxed beach trip.", planner.UsageInfo{}, nil).Once()

	result, err := newPlanner(t, client).Plan(context.Background(), tripInput)

	require.NoError(t, err)
	assert.Equal(t, "Relaxed beach trip.", result.Summary)
	require.Len(t, result.Sections, len(models.CanonicalSections))
	assert.Equal(t, "- dining item", result.Sections[models.SectionDining])
	assert.Equal(t, []string{"booking", "stay", "experiences", "dining", "logistics", "budget", "summary"}, calls)
}

func TestAgentPlanner_AgentErrorStopsPipeline(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("GenerateText", mock.Anything, "booking", mock.Anything, mock.Anything, mock.Anything).
		Return("- train", planner.UsageInfo{}, nil).Once()
	client.On("GenerateText", mock.Anything, "stay", mock.Anything, mock.Anything, mock.Anything).
		Return("", planner.UsageInfo{}, planner.ErrAIGenerationFailed).Once()

	result, err := newPlanner(t, client).Plan(context.Background(), tripInput)

	require.Error(t, err)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrPlanningFailed)
	assert.ErrorIs(t, err, planner.ErrAIGenerationFailed)
	assert.Contains(t, err.Error(), "agent stay")
}

func TestAgentPlanner_EmptyOutputFails(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	client.On("GenerateText", mock.Anything, "booking", mock.Anything, mock.Anything, mock.Anything).
		Return(" \n\n ", planner.UsageInfo{}, nil).Once()

	result, err := newPlanner(t, client).Plan(context.Background(), tripInput)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrPlanningFailed)
}

func TestAgentPlanner_SummaryErrorFails(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	for _, key := range models.CanonicalSections {
		client.On("GenerateText", mock.Anything, string(key), mock.Anything, mock.Anything, mock.Anything).
			Return("- ok", planner.UsageInfo{}, nil).Once()
	}
	client.On("GenerateText", mock.Anything, planner.SummaryPromptKey, mock.Anything, mock.Anything, mock.Anything).
		Return("", planner.UsageInfo{}, errors.New("rate limited")).Once()

	result, err := newPlanner(t, client).Plan(context.Background(), tripInput)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrPlanningFailed)
}

func TestAgentPlanner_CanceledContext(t *testing.T) {
	client := mocks.NewMockAIClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := newPlanner(t, client).Plan(ctx, tripInput)

	assert.Nil(t, result)
	assert.ErrorIs(t, err, models.ErrPlanningFailed)
	assert.ErrorIs(t, err, context.Canceled)
	client.AssertNotCalled(t, "GenerateText", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestAgentPlanner_WithStubClient(t *testing.T) {
	result, err := newPlanner(t, planner.NewStubClient()).Plan(context.Background(), tripInput)

	require.NoError(t, err)
	assert.NotEmpty(t, result.Summary)
	for _, key := range models.CanonicalSections {
		assert.NotEmpty(t, result.Sections[key], key)
	}

	again, err := newPlanner(t, planner.NewStubClient()).Plan(context.Background(), tripInput)
	require.NoError(t, err)
	assert.Equal(t, result, again)
}

func TestPromptProvider_GetPrompt(t *testing.T) {
	prompts, err := planner.NewPromptProvider()
	require.NoError(t, err)

	brief, err := prompts.GetPrompt(planner.TripBriefPromptKey, tripInput)
	require.NoError(t, err)
	assert.Contains(t, brief, "Destination: Goa")
	assert.Contains(t, brief, "Duration: 4 days")
	assert.Contains(t, brief, "Group size: 3 people")
	assert.Contains(t, brief, "Total budget: 45000")
	assert.Contains(t, brief, "Preferences: beaches, seafood")
	assert.NotContains(t, brief, "{{")

	for _, key := range models.CanonicalSections {
		prompt, err := prompts.GetPrompt(string(key), tripInput)
		require.NoError(t, err, key)
		assert.NotContains(t, prompt, "{{", key)
	}

	noPrefs := tripInput
	noPrefs.Preferences = "  "
	brief, err = prompts.GetPrompt(planner.TripBriefPromptKey, noPrefs)
	require.NoError(t, err)
	assert.Contains(t, brief, "Preferences: none")

	_, err = prompts.GetPrompt("weather", tripInput)
	assert.ErrorIs(t, err, planner.ErrPromptNotFound)
}

func TestPricing_Cost(t *testing.T) {
	p := planner.Pricing{InputPerMillion: 0.15, OutputPerMillion: 0.6}
	assert.InDelta(t, 0.75, p.Cost(1_000_000, 1_000_000), 1e-9)
	assert.Zero(t, p.Cost(0, 0))
}

func TestUsageInfo_Add(t *testing.T) {
	sum := planner.UsageInfo{PromptTokens: 1, CompletionTokens: 2, TotalTokens: 3, EstimatedCostUSD: 0.5}.
		Add(planner.UsageInfo{PromptTokens: 10, CompletionTokens: 20, TotalTokens: 30, EstimatedCostUSD: 0.25})
	assert.Equal(t, planner.UsageInfo{PromptTokens: 11, CompletionTokens: 22, TotalTokens: 33, EstimatedCostUSD: 0.75}, sum)
}

func TestNewAIClient(t *testing.T) {
	base := config.Config{
		AIModel:   "gpt-4o-mini",
		AIBaseURL: "https://api.openai.com/v1",
		AIAPIKey:  "sk-test",
	}

	for _, clientType := range []string{config.AIClientOpenAI, config.AIClientOllama, config.AIClientStub, "STUB"} {
		t.Run(clientType, func(t *testing.T) {
			cfg := base
			cfg.AIClientType = clientType
			client, err := planner.NewAIClient(&cfg, zap.NewNop())
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}

	t.Run("unknown", func(t *testing.T) {
		cfg := base
		cfg.AIClientType = "gemini"
		client, err := planner.NewAIClient(&cfg, zap.NewNop())
		assert.Error(t, err)
		assert.Nil(t, client)
	})

	t.Run("ollama bad url", func(t *testing.T) {
		cfg := base
		cfg.AIClientType = config.AIClientOllama
		cfg.AIBaseURL = "http://[::1"
		_, err := planner.NewAIClient(&cfg, zap.NewNop())
		assert.Error(t, err)
	})
}

func TestParamsFromConfig(t *testing.T) {
	params := planner.ParamsFromConfig(&config.Config{AITemperature: 0.7, AIMaxTokens: 1024})
	require.NotNil(t, params.Temperature)
	require.NotNil(t, params.MaxTokens)
	assert.Equal(t, 0.7, *params.Temperature)
	assert.Equal(t, 1024, *params.MaxTokens)

	empty := planner.ParamsFromConfig(&config.Config{})
	assert.Nil(t, empty.Temperature)
	assert.Nil(t, empty.MaxTokens)
}
