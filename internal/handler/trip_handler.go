package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"triptacticx/internal/document"
	"triptacticx/internal/models"
	"triptacticx/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	headerEmailSent = "X-Email-Sent"
	headerPlanID    = "X-Plan-ID"
)

type TripHandler struct {
	svc       service.TripService
	staticDir string
	logger    *zap.Logger
}

func NewTripHandler(svc service.TripService, staticDir string, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		svc:       svc,
		staticDir: staticDir,
		logger:    logger.Named("TripHandler"),
	}
}

// RegisterRoutes регистрирует API, healthcheck и раздачу фронтенда.
// planLimiter применяется только к /plan-trip; nil - без ограничения.
func (h *TripHandler) RegisterRoutes(router *gin.Engine, planLimiter gin.HandlerFunc) {
	router.GET("/health", h.health)
	router.HEAD("/health", h.health)

	planHandlers := []gin.HandlerFunc{h.planTrip}
	if planLimiter != nil {
		planHandlers = append([]gin.HandlerFunc{planLimiter}, planHandlers...)
	}
	router.POST("/plan-trip", planHandlers...)
	router.POST("/render-plan", h.renderPlan)

	plans := router.Group("/plans")
	{
		plans.GET("/:id", h.getPlan)
		plans.GET("/:id/pdf", h.getPlanPDF)
	}

	router.GET("/", h.serveIndex)
	router.NoRoute(h.noRoute)
}

func (h *TripHandler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *TripHandler) planTrip(c *gin.Context) {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Невалидное тело запроса /plan-trip", zap.Error(err))
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	result, err := h.svc.PlanTrip(c.Request.Context(), req)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	planID := ""
	if result.PlanID != uuid.Nil {
		planID = result.PlanID.String()
	}

	if wantsPDF(c) {
		c.Header(headerEmailSent, strconv.FormatBool(result.EmailSent))
		if planID != "" {
			c.Header(headerPlanID, planID)
		}
		h.writePDF(c, result.PDF)
		return
	}

	c.JSON(http.StatusOK, models.PlanTripResponse{
		ID:           planID,
		Summary:      result.Plan.Summary,
		AgentOutputs: result.Plan.Sections,
		EmailSent:    result.EmailSent,
		Message:      result.Message,
	})
}

func (h *TripHandler) renderPlan(c *gin.Context) {
	var req models.RenderPlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		handleServiceError(c, fmt.Errorf("%w: %v", models.ErrInvalidInput, err))
		return
	}

	pdf, err := h.svc.RenderPlan(c.Request.Context(), &models.PlanningResult{
		Summary:  req.Summary,
		Sections: req.AgentOutputs,
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}
	h.writePDF(c, pdf)
}

func (h *TripHandler) getPlan(c *gin.Context) {
	id, ok := parsePlanID(c)
	if !ok {
		return
	}
	record, err := h.svc.GetPlan(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, record)
}

func (h *TripHandler) getPlanPDF(c *gin.Context) {
	id, ok := parsePlanID(c)
	if !ok {
		return
	}
	pdf, err := h.svc.GetPlanPDF(c.Request.Context(), id)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.Header(headerPlanID, id.String())
	h.writePDF(c, pdf)
}

func (h *TripHandler) writePDF(c *gin.Context, pdf []byte) {
	pdfResponsesTotal.WithLabelValues(c.FullPath()).Inc()
	c.Header("Content-Disposition", "attachment; filename="+document.FileName)
	c.Data(http.StatusOK, document.ContentType, pdf)
}

func parsePlanID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		handleServiceError(c, fmt.Errorf("%w: plan id %q is not a UUID", models.ErrInvalidInput, c.Param("id")))
		return uuid.Nil, false
	}
	return id, true
}

// wantsPDF - клиент явно запросил PDF через Accept.
func wantsPDF(c *gin.Context) bool {
	return strings.Contains(strings.ToLower(c.GetHeader("Accept")), document.ContentType)
}
