package document_test

import (
	"testing"

	"triptacticx/internal/document"
	"triptacticx/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sectionKeys(doc document.Document) []models.SectionKey {
	keys := make([]models.SectionKey, 0, len(doc.Sections))
	for _, s := range doc.Sections {
		keys = append(keys, s.Key)
	}
	return keys
}

func TestCompose_EmptySections(t *testing.T) {
	doc := document.Compose(&models.PlanningResult{Sections: map[models.SectionKey]string{}})

	assert.Equal(t, document.DocumentTitle, doc.Title)
	require.Len(t, doc.Sections, 6)
	assert.Equal(t, models.CanonicalSections, sectionKeys(doc))
	for _, s := range doc.Sections {
		assert.True(t, s.IsEmpty, s.Key)
		assert.Empty(t, s.Blocks)
	}
	assert.Equal(t, "Booking Suggestions", doc.Sections[0].Title)
	assert.Equal(t, "Budget Planning", doc.Sections[5].Title)
}

func TestCompose_NilResult(t *testing.T) {
	doc := document.Compose(nil)

	assert.Equal(t, models.CanonicalSections, sectionKeys(doc))
	for _, s := range doc.Sections {
		assert.True(t, s.IsEmpty, s.Key)
	}
}

func TestCompose_CanonicalOrderRegardlessOfInput(t *testing.T) {
	result := &models.PlanningResult{Sections: map[models.SectionKey]string{
		models.SectionBudget:  "Total: 45000",
		models.SectionDining:  "- Fish thali",
		models.SectionBooking: "* Flight AI-101",
		models.SectionStay:    "* Hotel A\n* Hotel B",
	}}

	doc := document.Compose(result)

	assert.Equal(t, models.CanonicalSections, sectionKeys(doc))
	stay := doc.Sections[1]
	assert.False(t, stay.IsEmpty)
	require.Len(t, stay.Blocks, 1)
	assert.Equal(t, []string{"Hotel A", "Hotel B"}, stay.Blocks[0].Items())
	assert.True(t, doc.Sections[2].IsEmpty, "experiences отсутствует во входных данных")
	assert.True(t, doc.Sections[4].IsEmpty, "logistics отсутствует во входных данных")
}

func TestCompose_UnknownAndAliasKeys(t *testing.T) {
	result := &models.PlanningResult{Sections: map[models.SectionKey]string{
		"Stay Options": "* Hotel A",
		"visa":         "Apply online.",
		"insurance":    "Recommended.",
	}}

	doc := document.Compose(result)

	require.Len(t, doc.Sections, 8)
	keys := sectionKeys(doc)
	assert.Equal(t, models.CanonicalSections, keys[:6])
	assert.Equal(t, []models.SectionKey{"insurance", "visa"}, keys[6:])
	assert.Equal(t, "visa", doc.Sections[7].Title, "заголовок неизвестного раздела - сам ключ")
	assert.False(t, doc.Sections[1].IsEmpty, "заголовок 'Stay Options' приводится к ключу stay")
}

func TestCompose_WhitespaceOnlyIsEmpty(t *testing.T) {
	doc := document.Compose(&models.PlanningResult{Sections: map[models.SectionKey]string{
		models.SectionExperiences: " \n\n \t ",
	}})

	assert.True(t, doc.Sections[2].IsEmpty)
	assert.Empty(t, doc.Sections[2].Blocks)
}

func TestCompose_IsPure(t *testing.T) {
	result := &models.PlanningResult{
		Summary: "A relaxed Goa trip",
		Sections: map[models.SectionKey]string{
			models.SectionDining: "Try the local market.\n\nIt is open daily.",
			"zeta":               "z",
			"alpha":              "a",
		},
	}

	first := document.Compose(result)
	second := document.Compose(result)

	assert.Equal(t, first, second)
	require.Len(t, first.Sections[3].Blocks, 2)
	assert.Equal(t, "A relaxed Goa trip", result.Summary, "входные данные не изменяются")
}
