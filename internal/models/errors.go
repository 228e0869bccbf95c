package models

import "errors"

var (
	// ErrInvalidInput - некорректные поля запроса (например, нечисловой бюджет).
	ErrInvalidInput = errors.New("invalid input data")
	// ErrPlanningFailed - планировщик не смог построить план.
	ErrPlanningFailed = errors.New("trip planning failed")
	// ErrRenderFailed - не удалось собрать PDF.
	ErrRenderFailed = errors.New("document rendering failed")
	// ErrNotFound - запись не найдена в архиве.
	ErrNotFound = errors.New("not found")
	// ErrArchiveDisabled - архив планов не настроен.
	ErrArchiveDisabled = errors.New("plan archive is disabled")
)
