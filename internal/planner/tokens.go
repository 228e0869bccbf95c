package planner

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const fallbackEncoding = "cl100k_base"

// Pricing - цена за миллион токенов в USD.
type Pricing struct {
	InputPerMillion  float64
	OutputPerMillion float64
}

// Cost рассчитывает оценочную стоимость запроса.
func (p Pricing) Cost(promptTokens, completionTokens int) float64 {
	return float64(promptTokens)*p.InputPerMillion/1_000_000.0 +
		float64(completionTokens)*p.OutputPerMillion/1_000_000.0
}

// tokenCounter лениво загружает кодировку tiktoken для модели.
// Если кодировка недоступна, используется оценка "4 символа на токен".
type tokenCounter struct {
	model string
	once  sync.Once
	enc   *tiktoken.Tiktoken
}

func newTokenCounter(model string) *tokenCounter {
	return &tokenCounter{model: model}
}

func (t *tokenCounter) load() {
	enc, err := tiktoken.EncodingForModel(t.model)
	if err != nil {
		enc, err = tiktoken.GetEncoding(fallbackEncoding)
	}
	if err == nil {
		t.enc = enc
	}
}

// Count возвращает число токенов в тексте.
func (t *tokenCounter) Count(text string) int {
	t.once.Do(t.load)
	if t.enc == nil {
		return approxTokens(text)
	}
	return len(t.enc.Encode(text, nil, nil))
}

func approxTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len([]rune(text)) + 3) / 4
}
