package planner

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"strconv"
	"strings"

	"triptacticx/internal/models"
)

//go:embed prompts/*.md
var promptFS embed.FS

const (
	// SummaryPromptKey - промт агента, собирающего общее резюме плана.
	SummaryPromptKey = "summary"
	// TripBriefPromptKey - описание поездки, передаваемое агентам как ввод пользователя.
	TripBriefPromptKey = "trip_brief"

	noPreferences = "none"
)

var ErrPromptNotFound = errors.New("prompt not found")

// PromptProvider хранит шаблоны промтов и подставляет в них параметры поездки.
type PromptProvider struct {
	templates map[string]string
}

// NewPromptProvider загружает встроенные шаблоны из prompts/*.md.
func NewPromptProvider() (*PromptProvider, error) {
	return newPromptProviderFS(promptFS, "prompts")
}

func newPromptProviderFS(fsys fs.FS, dir string) (*PromptProvider, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt templates: %w", err)
	}

	templates := make(map[string]string, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || path.Ext(entry.Name()) != ".md" {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("failed to read prompt %s: %w", entry.Name(), err)
		}
		templates[strings.TrimSuffix(entry.Name(), ".md")] = strings.TrimSpace(string(content))
	}

	for _, key := range requiredPromptKeys() {
		if _, ok := templates[key]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrPromptNotFound, key)
		}
	}
	return &PromptProvider{templates: templates}, nil
}

func requiredPromptKeys() []string {
	keys := make([]string, 0, len(models.CanonicalSections)+2)
	for _, key := range models.CanonicalSections {
		keys = append(keys, string(key))
	}
	return append(keys, SummaryPromptKey, TripBriefPromptKey)
}

// GetPrompt возвращает шаблон key с подставленными параметрами поездки.
func (p *PromptProvider) GetPrompt(key string, input models.TripInput) (string, error) {
	content, ok := p.templates[key]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrPromptNotFound, key)
	}
	return placeholders(input).Replace(content), nil
}

func placeholders(input models.TripInput) *strings.Replacer {
	preferences := strings.TrimSpace(input.Preferences)
	if preferences == "" {
		preferences = noPreferences
	}
	return strings.NewReplacer(
		"{{DESTINATION}}", input.Destination,
		"{{DAYS}}", strconv.Itoa(input.Days),
		"{{GROUP_SIZE}}", strconv.Itoa(input.GroupSize),
		"{{BUDGET}}", strconv.FormatFloat(input.Budget, 'f', -1, 64),
		"{{TRIP_TYPE}}", input.TripType,
		"{{PREFERENCES}}", preferences,
		"{{SOURCE_LOCATION}}", input.SourceLocation,
	)
}
