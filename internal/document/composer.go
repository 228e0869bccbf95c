package document

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"triptacticx/internal/models"

	"go.uber.org/zap"
)

const (
	// DocumentTitle - заголовок на первой странице.
	DocumentTitle = "TripTacticx – Your Travel Plan"
	// EmptySectionText - заглушка для пустого раздела.
	EmptySectionText = "No details available."
	// FileName - имя PDF-файла во вложении и при скачивании.
	FileName = "TripTacticx_TravelPlan.pdf"
	// ContentType - MIME-тип результата.
	ContentType = "application/pdf"
)

// RenderedSection - раздел, готовый к выводу.
type RenderedSection struct {
	Key     models.SectionKey
	Title   string
	Blocks  []Block
	IsEmpty bool
}

// Document - заголовок и разделы в каноническом порядке.
type Document struct {
	Title    string
	Sections []RenderedSection
}

// Compose строит документ из результата планировщика.
// Шесть канонических разделов присутствуют всегда и идут первыми;
// неизвестные ключи добавляются после них в алфавитном порядке.
func Compose(result *models.PlanningResult) Document {
	sections := result.NormalizedSections()

	doc := Document{Title: DocumentTitle}
	for _, key := range orderedKeys(sections) {
		doc.Sections = append(doc.Sections, composeSection(key, sections[key]))
	}
	return doc
}

func orderedKeys(sections map[models.SectionKey]string) []models.SectionKey {
	keys := make([]models.SectionKey, 0, len(models.CanonicalSections)+len(sections))
	keys = append(keys, models.CanonicalSections...)

	var extra []models.SectionKey
	for key := range sections {
		if !key.IsCanonical() {
			extra = append(extra, key)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return append(keys, extra...)
}

func composeSection(key models.SectionKey, text string) RenderedSection {
	section := RenderedSection{Key: key, Title: key.Title()}
	if strings.TrimSpace(text) != "" {
		section.Blocks = Segment(text)
	}
	section.IsEmpty = len(section.Blocks) == 0
	return section
}

// Composer собирает и сериализует документ, записывая метрики и логи.
type Composer struct {
	style  Style
	logger *zap.Logger
}

// NewComposer создает Composer со стандартными стилями.
func NewComposer(logger *zap.Logger) *Composer {
	return &Composer{style: DefaultStyle(), logger: logger.Named("DocumentComposer")}
}

// Render собирает PDF для результата планировщика.
func (c *Composer) Render(result *models.PlanningResult) ([]byte, error) {
	start := time.Now()
	doc := Compose(result)

	pdf, err := RenderPDF(doc, c.style)
	duration := time.Since(start)
	if err != nil {
		renderTotal.WithLabelValues("error").Inc()
		c.logger.Error("Failed to render plan PDF", zap.Error(err))
		return nil, fmt.Errorf("render pdf: %w", err)
	}

	renderTotal.WithLabelValues("success").Inc()
	renderDuration.Observe(duration.Seconds())
	renderSizeBytes.Observe(float64(len(pdf)))
	c.logger.Debug("Plan PDF rendered",
		zap.Int("sections", len(doc.Sections)),
		zap.Int("bytes", len(pdf)),
		zap.Duration("duration", duration),
	)
	return pdf, nil
}
