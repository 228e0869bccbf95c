package handler_test

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"triptacticx/internal/delivery"
	"triptacticx/internal/document"
	"triptacticx/internal/handler"
	"triptacticx/internal/messaging"
	"triptacticx/internal/planner"
	"triptacticx/internal/repository"
	"triptacticx/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tsawler/tabula"
	"go.uber.org/zap"
)

// newPipelineRouter собирает настоящий конвейер с AI-заглушкой и без внешних систем.
func newPipelineRouter(t *testing.T) *gin.Engine {
	t.Helper()
	prompts, err := planner.NewPromptProvider()
	require.NoError(t, err)

	svc := service.NewTripService(
		planner.NewAgentPlanner(planner.NewStubClient(), prompts, planner.GenerationParams{}, zap.NewNop()),
		document.NewComposer(zap.NewNop()),
		delivery.NewNopDeliverer(zap.NewNop()),
		repository.NewNopPlanRepository(),
		messaging.NewNopPublisher(),
		zap.NewNop(),
	)
	router := gin.New()
	handler.NewTripHandler(svc, "", zap.NewNop()).RegisterRoutes(router, nil)
	return router
}

func pdfText(t *testing.T, pdf []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), document.FileName)
	require.NoError(t, os.WriteFile(path, pdf, 0o600))
	text, _, err := tabula.Open(path).Text()
	require.NoError(t, err)
	return text
}

func TestPipeline_PlanTripPDF(t *testing.T) {
	router := newPipelineRouter(t)

	w := do(router, http.MethodPost, "/plan-trip", tripBody, map[string]string{"Accept": "application/pdf"})

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "false", w.Header().Get("X-Email-Sent"))
	assert.Empty(t, w.Header().Get("X-Plan-ID"))

	text := pdfText(t, w.Body.Bytes())
	for _, want := range []string{
		"Booking Suggestions", "Stay Options", "Experiences",
		"Local Food & Dining", "Travel Logistics", "Budget Planning",
		"Buy a multi-day public transport pass",
	} {
		assert.Contains(t, text, want)
	}
}

func TestPipeline_RenderPlanPlaceholders(t *testing.T) {
	router := newPipelineRouter(t)

	w := do(router, http.MethodPost, "/render-plan",
		`{"summary":"","agent_outputs":{"Stay Options":"* Hotel Mandovi\n* Casa Goa","weather":"Sunny"}}`, nil)

	require.Equal(t, http.StatusOK, w.Code)
	text := pdfText(t, w.Body.Bytes())
	assert.Contains(t, text, "Hotel Mandovi")
	assert.Contains(t, text, "Casa Goa")
	assert.Contains(t, text, "weather")
	assert.Contains(t, text, "Sunny")
	assert.Contains(t, text, document.EmptySectionText)
}

func TestPipeline_InvalidBudget(t *testing.T) {
	router := newPipelineRouter(t)

	body := `{"name":"A","email":"a@example.com","destination":"Goa","days":2,"group_size":1,
		"budget":"cheap","trip_type":"solo","source_location":"Pune"}`
	w := do(router, http.MethodPost, "/plan-trip", body, nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decodeError(t, w), "invalid input data")
}

func TestPipeline_ArchiveDisabled(t *testing.T) {
	router := newPipelineRouter(t)

	w := do(router, http.MethodGet, "/plans/0b5c2f7e-8d4a-4c39-9f0e-2a9d1c6b7e11/pdf", "", nil)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
