package planner

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"triptacticx/internal/models"

	"go.uber.org/zap"
)

var errEmptyOutput = errors.New("agent returned empty output")

// Planner строит план поездки по ее параметрам.
type Planner interface {
	Plan(ctx context.Context, input models.TripInput) (*models.PlanningResult, error)
}

// AgentPlanner последовательно опрашивает агента каждого раздела,
// затем агента сводки, который получает тексты всех разделов.
type AgentPlanner struct {
	client  AIClient
	prompts *PromptProvider
	params  GenerationParams
	logger  *zap.Logger
}

func NewAgentPlanner(client AIClient, prompts *PromptProvider, params GenerationParams, logger *zap.Logger) *AgentPlanner {
	return &AgentPlanner{
		client:  client,
		prompts: prompts,
		params:  params,
		logger:  logger.Named("AgentPlanner"),
	}
}

var _ Planner = (*AgentPlanner)(nil)

// Plan возвращает либо полный результат, либо ошибку ErrPlanningFailed.
func (p *AgentPlanner) Plan(ctx context.Context, input models.TripInput) (*models.PlanningResult, error) {
	start := time.Now()
	log := p.logger.With(zap.String("destination", input.Destination), zap.Int("days", input.Days))
	log.Info("Начало планирования поездки")

	brief, err := p.prompts.GetPrompt(TripBriefPromptKey, input)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", models.ErrPlanningFailed, err)
	}

	var total UsageInfo
	sections := make(map[models.SectionKey]string, len(models.CanonicalSections))
	for _, key := range models.CanonicalSections {
		text, usage, err := p.runAgent(ctx, string(key), input, brief)
		if err != nil {
			log.Error("Агент раздела завершился с ошибкой", zap.String("agent", string(key)), zap.Error(err))
			return nil, fmt.Errorf("%w: agent %s: %w", models.ErrPlanningFailed, key, err)
		}
		sections[key] = text
		total = total.Add(usage)
	}

	summary, usage, err := p.runAgent(ctx, SummaryPromptKey, input, summaryInput(brief, sections))
	if err != nil {
		log.Error("Агент сводки завершился с ошибкой", zap.Error(err))
		return nil, fmt.Errorf("%w: agent %s: %w", models.ErrPlanningFailed, SummaryPromptKey, err)
	}
	total = total.Add(usage)

	duration := time.Since(start)
	planDuration.Observe(duration.Seconds())
	log.Info("Планирование завершено",
		zap.Duration("duration", duration),
		zap.Int("total_tokens", total.TotalTokens),
		zap.Float64("estimated_cost_usd", total.EstimatedCostUSD),
	)
	return &models.PlanningResult{Summary: summary, Sections: sections}, nil
}

func (p *AgentPlanner) runAgent(ctx context.Context, agent string, input models.TripInput, userInput string) (string, UsageInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", UsageInfo{}, err
	}
	systemPrompt, err := p.prompts.GetPrompt(agent, input)
	if err != nil {
		return "", UsageInfo{}, err
	}
	text, usage, err := p.client.GenerateText(ctx, agent, systemPrompt, userInput, p.params)
	if err != nil {
		return "", usage, err
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", usage, errEmptyOutput
	}
	return text, usage, nil
}

func summaryInput(brief string, sections map[models.SectionKey]string) string {
	var b strings.Builder
	b.WriteString(brief)
	for _, key := range models.CanonicalSections {
		b.WriteString("\n\n")
		b.WriteString(key.Title())
		b.WriteString(":\n")
		b.WriteString(sections[key])
	}
	return b.String()
}
