package planner

import (
	"context"
	"fmt"
	"strings"

	"triptacticx/internal/models"
)

// StubClient возвращает шаблонные ответы без обращения к AI.
// Используется локально и в CLI, когда ключ API не задан.
type StubClient struct{}

func NewStubClient() *StubClient {
	return &StubClient{}
}

var stubOutputs = map[string]string{
	string(models.SectionBooking): "- Compare flight and train fares two to three weeks before departure\n" +
		"- Book refundable tickets when dates are not final\n\n" +
		"- Keep a digital copy of every booking",
	string(models.SectionStay): "- Mid-range hotel close to the city centre\n" +
		"- Serviced apartment for larger groups\n" +
		"- Budget guesthouse near public transport",
	string(models.SectionExperiences): "Day 1: Arrival and a walk around the centre\n\n" +
		"- Guided walking tour of the old town\n" +
		"- Sunset viewpoint\n\n" +
		"- Local market visit on the last day",
	string(models.SectionDining): "- Try the regional speciality at a family-run restaurant\n" +
		"- Street food area for an inexpensive dinner\n" +
		"- Reserve one special dinner in advance",
	string(models.SectionLogistics): "- Buy a multi-day public transport pass\n" +
		"- Use licensed taxis or ride-hailing apps at night\n\n" +
		"- Carry ID and a printed copy of the itinerary",
	string(models.SectionBudget): "- Transport: 30%\n" +
		"- Accommodation: 35%\n" +
		"- Food: 20%\n" +
		"- Activities and reserve: 15%",
	SummaryPromptKey: "A balanced trip with comfortable stays, local food and a relaxed pace.",
}

// GenerateText возвращает фиксированный текст для агента.
func (c *StubClient) GenerateText(ctx context.Context, agent string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error) {
	if err := ctx.Err(); err != nil {
		return "", UsageInfo{}, err
	}
	if strings.TrimSpace(systemPrompt) == "" {
		return "", UsageInfo{}, fmt.Errorf("%w: системный промт пуст", ErrAIGenerationFailed)
	}
	text, ok := stubOutputs[agent]
	if !ok {
		text = "- No suggestions for " + agent
	}
	aiRequestsTotal.WithLabelValues("stub", "success", agent).Inc()
	return text, UsageInfo{}, nil
}
