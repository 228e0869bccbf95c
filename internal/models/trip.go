package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// FlexInt принимает в JSON как число, так и строку с целым числом ("5").
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("value %q is not an integer", s)
		}
		*f = FlexInt(n)
		return nil
	}
	var num float64
	if err := json.Unmarshal(data, &num); err != nil {
		return err
	}
	if num != math.Trunc(num) || math.IsInf(num, 0) {
		return fmt.Errorf("value %v is not an integer", num)
	}
	*f = FlexInt(num)
	return nil
}

// FlexString принимает в JSON строку или число (бюджет часто приходит числом).
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var num json.Number
	if err := json.Unmarshal(data, &num); err != nil {
		return fmt.Errorf("value must be a string or a number: %w", err)
	}
	*f = FlexString(num.String())
	return nil
}

// TripRequest - тело запроса POST /plan-trip.
type TripRequest struct {
	Name           string     `json:"name" binding:"required"`
	Email          string     `json:"email" binding:"required"`
	Destination    string     `json:"destination" binding:"required"`
	Days           FlexInt    `json:"days" binding:"required"`
	GroupSize      FlexInt    `json:"group_size" binding:"required"`
	Budget         FlexString `json:"budget" binding:"required"`
	TripType       string     `json:"trip_type" binding:"required"`
	SourceLocation string     `json:"source_location" binding:"required"`
	Preferences    string     `json:"preferences"`
}

// Validate проверяет обязательные поля независимо от транспорта (HTTP, CLI).
func (r TripRequest) Validate() error {
	required := []struct {
		field string
		value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"destination", r.Destination},
		{"budget", string(r.Budget)},
		{"trip_type", r.TripType},
		{"source_location", r.SourceLocation},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return fmt.Errorf("%w: field '%s' is required", ErrInvalidInput, f.field)
		}
	}
	if r.Days <= 0 {
		return fmt.Errorf("%w: field 'days' must be a positive integer", ErrInvalidInput)
	}
	if r.GroupSize <= 0 {
		return fmt.Errorf("%w: field 'group_size' must be a positive integer", ErrInvalidInput)
	}
	return nil
}

// TripInput - параметры поездки, передаваемые планировщику.
type TripInput struct {
	Destination    string  `yaml:"destination"`
	Days           int     `yaml:"days"`
	GroupSize      int     `yaml:"group_size"`
	Budget         float64 `yaml:"budget"`
	TripType       string  `yaml:"trip_type"`
	Preferences    string  `yaml:"preferences"`
	SourceLocation string  `yaml:"source_location"`
}

// PlanTripResult - итог работы конвейера для одного запроса.
type PlanTripResult struct {
	PlanID    uuid.UUID
	Plan      PlanningResult
	EmailSent bool
	Message   string
	PDF       []byte
}

// PlanRecord - запись архива планов.
type PlanRecord struct {
	ID             uuid.UUID             `db:"id" json:"id"`
	Name           string                `db:"name" json:"name"`
	Email          string                `db:"email" json:"email"`
	Destination    string                `db:"destination" json:"destination"`
	Days           int                   `db:"days" json:"days"`
	GroupSize      int                   `db:"group_size" json:"group_size"`
	Budget         float64               `db:"budget" json:"budget"`
	TripType       string                `db:"trip_type" json:"trip_type"`
	SourceLocation string                `db:"source_location" json:"source_location"`
	Preferences    string                `db:"preferences" json:"preferences"`
	Summary        string                `db:"summary" json:"summary"`
	AgentOutputs   map[SectionKey]string `db:"agent_outputs" json:"agent_outputs"`
	EmailSent      bool                  `db:"email_sent" json:"email_sent"`
	CreatedAt      time.Time             `db:"created_at" json:"created_at"`
}

// PlanningResult восстанавливает результат планировщика из записи архива.
func (p *PlanRecord) PlanningResult() *PlanningResult {
	return &PlanningResult{Summary: p.Summary, Sections: p.AgentOutputs}
}
