package repository

import (
	"context"
	"errors"
	"fmt"

	"triptacticx/internal/models"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const (
	planFields = `id, name, email, destination, days, group_size, budget, trip_type,
		source_location, preferences, summary, agent_outputs, email_sent, created_at`

	savePlanQuery = `
		INSERT INTO trip_plans (` + planFields + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (id) DO UPDATE SET
			summary = EXCLUDED.summary,
			agent_outputs = EXCLUDED.agent_outputs,
			email_sent = EXCLUDED.email_sent
	`
	getPlanByIDQuery = `SELECT ` + planFields + ` FROM trip_plans WHERE id = $1`
)

// DBTX - общий интерфейс пула и транзакции pgx.
type DBTX interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PlanRepository - архив построенных планов.
type PlanRepository interface {
	Save(ctx context.Context, record *models.PlanRecord) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error)
}

type PgPlanRepository struct {
	db     DBTX
	logger *zap.Logger
}

// NewPgPlanRepository создает репозиторий планов поверх пула или транзакции.
func NewPgPlanRepository(db DBTX, logger *zap.Logger) *PgPlanRepository {
	return &PgPlanRepository{
		db:     db,
		logger: logger.Named("PgPlanRepo"),
	}
}

var _ PlanRepository = (*PgPlanRepository)(nil)

// Save сохраняет план. Повторное сохранение с тем же ID обновляет результат.
func (r *PgPlanRepository) Save(ctx context.Context, record *models.PlanRecord) error {
	outputs := record.AgentOutputs
	if outputs == nil {
		outputs = map[models.SectionKey]string{}
	}

	tag, err := r.db.Exec(ctx, savePlanQuery,
		record.ID,
		record.Name,
		record.Email,
		record.Destination,
		record.Days,
		record.GroupSize,
		record.Budget,
		record.TripType,
		record.SourceLocation,
		record.Preferences,
		record.Summary,
		outputs,
		record.EmailSent,
		record.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to save trip plan", zap.String("plan_id", record.ID.String()), zap.Error(err))
		return fmt.Errorf("error saving trip plan: %w", err)
	}
	r.logger.Debug("Trip plan saved", zap.String("plan_id", record.ID.String()), zap.Int64("rows_affected", tag.RowsAffected()))
	return nil
}

// GetByID возвращает план по ID или models.ErrNotFound.
func (r *PgPlanRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.PlanRecord, error) {
	log := r.logger.With(zap.String("plan_id", id.String()))

	var record models.PlanRecord
	if err := pgxscan.Get(ctx, r.db, &record, getPlanByIDQuery, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			log.Warn("Trip plan not found")
			return nil, models.ErrNotFound
		}
		log.Error("Error getting trip plan by id", zap.Error(err))
		return nil, fmt.Errorf("failed to get trip plan %s: %w", id, err)
	}
	return &record, nil
}

// NopPlanRepository используется, когда архив отключен (DB_HOST не задан).
type NopPlanRepository struct{}

func NewNopPlanRepository() *NopPlanRepository {
	return &NopPlanRepository{}
}

var _ PlanRepository = (*NopPlanRepository)(nil)

func (NopPlanRepository) Save(context.Context, *models.PlanRecord) error {
	return models.ErrArchiveDisabled
}

func (NopPlanRepository) GetByID(context.Context, uuid.UUID) (*models.PlanRecord, error) {
	return nil, models.ErrArchiveDisabled
}
