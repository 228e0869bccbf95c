package models

import (
	"sort"
	"strings"
)

// SectionKey - ключ раздела плана, который заполняет отдельный агент.
type SectionKey string

const (
	SectionBooking     SectionKey = "booking"
	SectionStay        SectionKey = "stay"
	SectionExperiences SectionKey = "experiences"
	SectionDining      SectionKey = "dining"
	SectionLogistics   SectionKey = "logistics"
	SectionBudget      SectionKey = "budget"
)

// CanonicalSections - фиксированный порядок разделов в документе.
var CanonicalSections = []SectionKey{
	SectionBooking,
	SectionStay,
	SectionExperiences,
	SectionDining,
	SectionLogistics,
	SectionBudget,
}

var sectionTitles = map[SectionKey]string{
	SectionBooking:     "Booking Suggestions",
	SectionStay:        "Stay Options",
	SectionExperiences: "Experiences",
	SectionDining:      "Local Food & Dining",
	SectionLogistics:   "Travel Logistics",
	SectionBudget:      "Budget Planning",
}

// Title возвращает заголовок раздела; для неизвестного ключа - сам ключ.
func (k SectionKey) Title() string {
	if title, ok := sectionTitles[k]; ok {
		return title
	}
	return string(k)
}

// IsCanonical сообщает, входит ли ключ в фиксированный набор разделов.
func (k SectionKey) IsCanonical() bool {
	_, ok := sectionTitles[k]
	return ok
}

// NormalizeSectionKey приводит ключ к каноническому виду.
// Принимает как ключи ("stay"), так и заголовки разделов ("Stay Options").
func NormalizeSectionKey(raw string) SectionKey {
	trimmed := strings.TrimSpace(raw)
	lowered := strings.ToLower(trimmed)
	for key, title := range sectionTitles {
		if lowered == string(key) || lowered == strings.ToLower(title) {
			return key
		}
	}
	return SectionKey(trimmed)
}

// PlanningResult - результат работы планировщика: сводка и тексты разделов.
type PlanningResult struct {
	Summary  string                `json:"summary" yaml:"summary"`
	Sections map[SectionKey]string `json:"agent_outputs" yaml:"agent_outputs"`
}

// NormalizedSections возвращает копию разделов с каноническими ключами.
// При совпадении ключей после нормализации приоритет у точного ключа,
// затем у первого непустого текста в порядке сортировки исходных ключей.
func (r *PlanningResult) NormalizedSections() map[SectionKey]string {
	if r == nil {
		return map[SectionKey]string{}
	}
	out := make(map[SectionKey]string, len(r.Sections))

	keys := make([]SectionKey, 0, len(r.Sections))
	for key := range r.Sections {
		keys = append(keys, key)
	}
	sort.SliceStable(keys, func(i, j int) bool {
		ci, cj := keys[i].IsCanonical(), keys[j].IsCanonical()
		if ci != cj {
			return ci
		}
		return keys[i] < keys[j]
	})

	for _, key := range keys {
		normalized := NormalizeSectionKey(string(key))
		if existing, ok := out[normalized]; ok && strings.TrimSpace(existing) != "" {
			continue
		}
		out[normalized] = r.Sections[key]
	}
	return out
}
