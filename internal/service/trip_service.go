package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"triptacticx/internal/delivery"
	"triptacticx/internal/messaging"
	"triptacticx/internal/models"
	"triptacticx/internal/planner"
	"triptacticx/internal/repository"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	MessageEmailSent   = "Email sent successfully!"
	MessageEmailFailed = "Failed to send email."
)

// Renderer превращает результат планировщика в PDF.
type Renderer interface {
	Render(result *models.PlanningResult) ([]byte, error)
}

// TripService - конвейер планирования: планировщик, PDF, доставка, архив.
type TripService interface {
	// PlanTrip строит план, собирает PDF и пытается отправить его на почту.
	PlanTrip(ctx context.Context, req models.TripRequest) (*models.PlanTripResult, error)
	// RenderPlan собирает PDF из готового результата.
	RenderPlan(ctx context.Context, result *models.PlanningResult) ([]byte, error)
	GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error)
	GetPlanPDF(ctx context.Context, id uuid.UUID) ([]byte, error)
}

type tripServiceImpl struct {
	planner   planner.Planner
	renderer  Renderer
	deliverer delivery.Deliverer
	repo      repository.PlanRepository
	publisher messaging.PlanEventPublisher
	logger    *zap.Logger
	now       func() time.Time
}

// NewTripService создает сервис. repo и publisher могут быть Nop-реализациями.
func NewTripService(
	planner planner.Planner,
	renderer Renderer,
	deliverer delivery.Deliverer,
	repo repository.PlanRepository,
	publisher messaging.PlanEventPublisher,
	logger *zap.Logger,
) TripService {
	return &tripServiceImpl{
		planner:   planner,
		renderer:  renderer,
		deliverer: deliverer,
		repo:      repo,
		publisher: publisher,
		logger:    logger.Named("TripService"),
		now:       time.Now,
	}
}

func (s *tripServiceImpl) PlanTrip(ctx context.Context, req models.TripRequest) (*models.PlanTripResult, error) {
	input, err := BuildTripInput(req)
	if err != nil {
		plansTotal.WithLabelValues("invalid_input").Inc()
		s.logger.Warn("Некорректный запрос на планирование", zap.Error(err))
		return nil, err
	}
	log := s.logger.With(zap.String("destination", input.Destination), zap.String("recipient", req.Email))

	plan, err := s.planner.Plan(ctx, input)
	if err != nil {
		plansTotal.WithLabelValues("planning_failed").Inc()
		log.Error("Планировщик не смог построить план", zap.Error(err))
		if !errors.Is(err, models.ErrPlanningFailed) {
			err = fmt.Errorf("%w: %w", models.ErrPlanningFailed, err)
		}
		return nil, err
	}

	pdf, err := s.renderer.Render(plan)
	if err != nil {
		plansTotal.WithLabelValues("render_failed").Inc()
		log.Error("Не удалось собрать PDF", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrRenderFailed, err)
	}

	emailSent := s.deliverer.Deliver(ctx, req.Name, req.Email, pdf)
	message := MessageEmailFailed
	if emailSent {
		message = MessageEmailSent
		emailsTotal.WithLabelValues("sent").Inc()
	} else {
		emailsTotal.WithLabelValues("not_sent").Inc()
	}

	result := &models.PlanTripResult{
		Plan:      *plan,
		EmailSent: emailSent,
		Message:   message,
		PDF:       pdf,
	}

	planID := uuid.New()
	createdAt := s.now().UTC()
	if s.archive(ctx, planID, req, input, plan, emailSent, createdAt) {
		result.PlanID = planID
	}

	event := models.PlanGeneratedEvent{
		PlanID:      planID.String(),
		Destination: input.Destination,
		Days:        input.Days,
		GroupSize:   input.GroupSize,
		EmailSent:   emailSent,
		PDFSize:     len(pdf),
		CreatedAt:   createdAt,
	}
	if err := s.publisher.PublishPlanGenerated(ctx, event); err != nil {
		log.Warn("Не удалось опубликовать событие о плане", zap.String("plan_id", event.PlanID), zap.Error(err))
	}

	plansTotal.WithLabelValues("success").Inc()
	log.Info("План построен", zap.Bool("email_sent", emailSent), zap.Int("pdf_bytes", len(pdf)))
	return result, nil
}

// archive сохраняет план и сообщает, попал ли он в архив. Ошибка не прерывает запрос.
func (s *tripServiceImpl) archive(
	ctx context.Context,
	id uuid.UUID,
	req models.TripRequest,
	input models.TripInput,
	plan *models.PlanningResult,
	emailSent bool,
	createdAt time.Time,
) bool {
	record := &models.PlanRecord{
		ID:             id,
		Name:           req.Name,
		Email:          req.Email,
		Destination:    input.Destination,
		Days:           input.Days,
		GroupSize:      input.GroupSize,
		Budget:         input.Budget,
		TripType:       input.TripType,
		SourceLocation: input.SourceLocation,
		Preferences:    input.Preferences,
		Summary:        plan.Summary,
		AgentOutputs:   plan.Sections,
		EmailSent:      emailSent,
		CreatedAt:      createdAt,
	}
	err := s.repo.Save(ctx, record)
	switch {
	case err == nil:
		return true
	case errors.Is(err, models.ErrArchiveDisabled):
		s.logger.Debug("Архив отключен, план не сохранен")
	default:
		s.logger.Warn("Не удалось сохранить план в архив", zap.String("plan_id", id.String()), zap.Error(err))
	}
	return false
}

func (s *tripServiceImpl) RenderPlan(ctx context.Context, result *models.PlanningResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("%w: plan is empty", models.ErrInvalidInput)
	}
	pdf, err := s.renderer.Render(result)
	if err != nil {
		s.logger.Error("Не удалось собрать PDF по готовому плану", zap.Error(err))
		return nil, fmt.Errorf("%w: %w", models.ErrRenderFailed, err)
	}
	return pdf, nil
}

func (s *tripServiceImpl) GetPlan(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *tripServiceImpl) GetPlanPDF(ctx context.Context, id uuid.UUID) ([]byte, error) {
	record, err := s.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.RenderPlan(ctx, record.PlanningResult())
}

// BuildTripInput проверяет запрос и переводит его в параметры планировщика.
func BuildTripInput(req models.TripRequest) (models.TripInput, error) {
	if err := req.Validate(); err != nil {
		return models.TripInput{}, err
	}
	budget, err := ParseBudget(string(req.Budget))
	if err != nil {
		return models.TripInput{}, err
	}
	return models.TripInput{
		Destination:    strings.TrimSpace(req.Destination),
		Days:           int(req.Days),
		GroupSize:      int(req.GroupSize),
		Budget:         budget,
		TripType:       strings.TrimSpace(req.TripType),
		Preferences:    strings.TrimSpace(req.Preferences),
		SourceLocation: strings.TrimSpace(req.SourceLocation),
	}, nil
}
