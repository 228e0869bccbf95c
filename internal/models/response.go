package models

import "time"

// ErrorResponse - единый формат ошибки API.
type ErrorResponse struct {
	Error string `json:"error"`
}

// PlanTripResponse - ответ POST /plan-trip.
type PlanTripResponse struct {
	ID           string                `json:"id,omitempty"`
	Summary      string                `json:"summary"`
	AgentOutputs map[SectionKey]string `json:"agent_outputs"`
	EmailSent    bool                  `json:"email_sent"`
	Message      string                `json:"message"`
}

// RenderPlanRequest - тело POST /render-plan.
type RenderPlanRequest struct {
	Summary      string                `json:"summary"`
	AgentOutputs map[SectionKey]string `json:"agent_outputs" binding:"required"`
}

// PlanGeneratedEvent публикуется после успешного построения плана.
type PlanGeneratedEvent struct {
	PlanID      string    `json:"plan_id"`
	Destination string    `json:"destination"`
	Days        int       `json:"days"`
	GroupSize   int       `json:"group_size"`
	EmailSent   bool      `json:"email_sent"`
	PDFSize     int       `json:"pdf_size"`
	CreatedAt   time.Time `json:"created_at"`
}
