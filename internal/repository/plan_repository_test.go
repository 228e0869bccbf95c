package repository_test

import (
	"context"
	"testing"

	"triptacticx/internal/models"
	"triptacticx/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestNopPlanRepository(t *testing.T) {
	repo := repository.NewNopPlanRepository()

	err := repo.Save(context.Background(), &models.PlanRecord{ID: uuid.New()})
	assert.ErrorIs(t, err, models.ErrArchiveDisabled)

	record, err := repo.GetByID(context.Background(), uuid.New())
	assert.Nil(t, record)
	assert.ErrorIs(t, err, models.ErrArchiveDisabled)
}
