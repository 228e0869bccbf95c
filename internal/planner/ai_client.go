package planner

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"triptacticx/internal/config"

	"github.com/ollama/ollama/api"
	openaigo "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// ErrAIGenerationFailed - ошибка при генерации текста AI
var ErrAIGenerationFailed = errors.New("ошибка генерации текста AI")

// GenerationParams - параметры генерации. Указатели отличают 0 от "не задано".
type GenerationParams struct {
	Temperature *float64
	MaxTokens   *int
}

// UsageInfo содержит информацию об использовании токенов и стоимости
type UsageInfo struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
	EstimatedCostUSD float64
}

// Add суммирует использование нескольких запросов.
func (u UsageInfo) Add(other UsageInfo) UsageInfo {
	return UsageInfo{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CompletionTokens: u.CompletionTokens + other.CompletionTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
		EstimatedCostUSD: u.EstimatedCostUSD + other.EstimatedCostUSD,
	}
}

// AIClient интерфейс для взаимодействия с AI API
type AIClient interface {
	// GenerateText генерирует текст по системному промту и вводу пользователя.
	// agent используется для логов и метрик.
	GenerateText(ctx context.Context, agent string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error)
}

// NewAIClient создает клиента по AI_CLIENT_TYPE.
func NewAIClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	pricing := Pricing{InputPerMillion: cfg.AIPriceInputPerM, OutputPerMillion: cfg.AIPriceOutputPerM}

	switch strings.ToLower(cfg.AIClientType) {
	case config.AIClientOpenAI:
		openaiConfig := openaigo.DefaultConfig(cfg.AIAPIKey)
		openaiConfig.BaseURL = cfg.AIBaseURL
		openaiConfig.HTTPClient = &http.Client{Timeout: cfg.AITimeout}
		logger.Info("Используется реализация AI клиента: OpenAI",
			zap.String("base_url", cfg.AIBaseURL), zap.String("model", cfg.AIModel), zap.Duration("timeout", cfg.AITimeout))
		return &openAIClient{
			client:  openaigo.NewClientWithConfig(openaiConfig),
			model:   cfg.AIModel,
			pricing: pricing,
			tokens:  newTokenCounter(cfg.AIModel),
			logger:  logger.Named("OpenAIClient"),
		}, nil
	case config.AIClientOllama:
		logger.Info("Используется реализация AI клиента: Ollama")
		return newOllamaClient(cfg, logger)
	case config.AIClientStub:
		logger.Warn("Используется заглушка AI клиента, планы будут шаблонными")
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("неизвестный тип AI клиента: '%s'", cfg.AIClientType)
	}
}

// ParamsFromConfig возвращает параметры генерации из AI_TEMPERATURE и AI_MAX_TOKENS.
func ParamsFromConfig(cfg *config.Config) GenerationParams {
	params := GenerationParams{}
	if cfg.AITemperature > 0 {
		temperature := cfg.AITemperature
		params.Temperature = &temperature
	}
	if cfg.AIMaxTokens > 0 {
		maxTokens := cfg.AIMaxTokens
		params.MaxTokens = &maxTokens
	}
	return params
}

// --- OpenAI ---

type openAIClient struct {
	client  *openaigo.Client
	model   string
	pricing Pricing
	tokens  *tokenCounter
	logger  *zap.Logger
}

func (c *openAIClient) GenerateText(ctx context.Context, agent string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{}
	log := c.logger.With(zap.String("agent", agent), zap.String("model", c.model))

	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: системный промт пуст", ErrAIGenerationFailed)
	}

	messages := []openaigo.ChatCompletionMessage{
		{Role: openaigo.ChatMessageRoleSystem, Content: systemPrompt},
	}
	if userInput != "" {
		messages = append(messages, openaigo.ChatCompletionMessage{Role: openaigo.ChatMessageRoleUser, Content: userInput})
	}

	startTime := time.Now()
	log.Debug("Отправка запроса к AI", zap.Int("system_prompt_bytes", len(systemPrompt)), zap.Int("user_input_bytes", len(userInput)))

	resp, err := c.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model:       c.model,
		Messages:    messages,
		Temperature: float32Val(params.Temperature),
		MaxTokens:   intVal(params.MaxTokens),
	})
	duration := time.Since(startTime)

	if err != nil {
		log.Error("Ошибка от AI API", zap.Duration("duration", duration), zap.Error(err))
		aiRequestsTotal.WithLabelValues(c.model, "error", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		log.Error("AI API вернул пустой ответ", zap.Duration("duration", duration))
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	generatedText := resp.Choices[0].Message.Content
	if resp.Usage.TotalTokens > 0 {
		usageInfo.PromptTokens = resp.Usage.PromptTokens
		usageInfo.CompletionTokens = resp.Usage.CompletionTokens
		usageInfo.TotalTokens = resp.Usage.TotalTokens
	} else {
		// Некоторые OpenAI-совместимые шлюзы не возвращают usage
		usageInfo.PromptTokens = c.tokens.Count(systemPrompt) + c.tokens.Count(userInput)
		usageInfo.CompletionTokens = c.tokens.Count(generatedText)
		usageInfo.TotalTokens = usageInfo.PromptTokens + usageInfo.CompletionTokens
	}
	usageInfo.EstimatedCostUSD = c.pricing.Cost(usageInfo.PromptTokens, usageInfo.CompletionTokens)

	observeUsage(c.model, agent, duration.Seconds(), usageInfo)
	log.Info("Ответ от AI API получен",
		zap.Duration("duration", duration),
		zap.Int("response_chars", len(generatedText)),
		zap.Int("total_tokens", usageInfo.TotalTokens),
		zap.Float64("estimated_cost_usd", usageInfo.EstimatedCostUSD),
	)
	return generatedText, usageInfo, nil
}

func float32Val(f64 *float64) float32 {
	if f64 == nil {
		return 0 // 0 опускается в запросе, используется значение API по умолчанию
	}
	return float32(*f64)
}

func intVal(i *int) int {
	if i == nil {
		return 0
	}
	return *i
}

// --- Ollama ---

type ollamaClient struct {
	client  *api.Client
	model   string
	timeout time.Duration
	logger  *zap.Logger
}

func newOllamaClient(cfg *config.Config, logger *zap.Logger) (AIClient, error) {
	// api.NewClient требует URL без суффикса /v1
	ollamaBaseURL := strings.TrimSuffix(cfg.AIBaseURL, "/")
	ollamaBaseURL = strings.TrimSuffix(ollamaBaseURL, "/v1")

	parsedURL, err := url.Parse(ollamaBaseURL)
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга Ollama Base URL '%s': %w", ollamaBaseURL, err)
	}

	client := api.NewClient(parsedURL, &http.Client{Timeout: cfg.AITimeout})
	logger.Info("Ollama клиент создан",
		zap.String("base_url", ollamaBaseURL), zap.String("model", cfg.AIModel), zap.Duration("timeout", cfg.AITimeout))

	return &ollamaClient{
		client:  client,
		model:   cfg.AIModel,
		timeout: cfg.AITimeout,
		logger:  logger.Named("OllamaClient"),
	}, nil
}

func (c *ollamaClient) GenerateText(ctx context.Context, agent string, systemPrompt string, userInput string, params GenerationParams) (string, UsageInfo, error) {
	usageInfo := UsageInfo{} // Ollama обычно локальный, стоимость 0
	log := c.logger.With(zap.String("agent", agent), zap.String("model", c.model))

	if strings.TrimSpace(systemPrompt) == "" {
		aiRequestsTotal.WithLabelValues(c.model, "error", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: системный промт пуст", ErrAIGenerationFailed)
	}

	messages := []api.Message{{Role: "system", Content: systemPrompt}}
	if userInput != "" {
		messages = append(messages, api.Message{Role: "user", Content: userInput})
	}

	options := map[string]interface{}{}
	if params.Temperature != nil {
		options["temperature"] = *params.Temperature
	}
	if params.MaxTokens != nil {
		options["num_predict"] = *params.MaxTokens
	}
	stream := false
	req := &api.ChatRequest{
		Model:    c.model,
		Messages: messages,
		Stream:   &stream,
		Options:  options,
	}

	requestCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		requestCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	startTime := time.Now()
	var resp api.ChatResponse
	err := c.client.Chat(requestCtx, req, func(r api.ChatResponse) error {
		resp = r // без стрима приходит один полный ответ
		return nil
	})
	duration := time.Since(startTime)

	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			log.Error("Таймаут Ollama API", zap.Duration("timeout", c.timeout), zap.Error(err))
		} else {
			log.Error("Ошибка от Ollama API", zap.Duration("duration", duration), zap.Error(err))
		}
		aiRequestsTotal.WithLabelValues(c.model, "error", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: %v", ErrAIGenerationFailed, err)
	}
	if strings.TrimSpace(resp.Message.Content) == "" {
		log.Error("Ollama API вернул пустой ответ", zap.Duration("duration", duration))
		aiRequestsTotal.WithLabelValues(c.model, "error_empty_response", agent).Inc()
		return "", usageInfo, fmt.Errorf("%w: получен пустой ответ", ErrAIGenerationFailed)
	}

	usageInfo.PromptTokens = resp.PromptEvalCount
	usageInfo.CompletionTokens = resp.EvalCount
	usageInfo.TotalTokens = resp.PromptEvalCount + resp.EvalCount

	observeUsage(c.model, agent, duration.Seconds(), usageInfo)
	log.Info("Ответ от Ollama API получен",
		zap.Duration("duration", duration),
		zap.Int("response_chars", len(resp.Message.Content)),
		zap.Int("total_tokens", usageInfo.TotalTokens),
	)
	return resp.Message.Content, usageInfo, nil
}
