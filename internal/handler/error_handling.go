package handler

import (
	"errors"
	"net/http"

	"triptacticx/internal/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// handleServiceError переводит ошибку сервиса в HTTP-ответ {"error": ...}.
// Любой сбой конвейера планирования отдается как 400.
func handleServiceError(c *gin.Context, err error) {
	var statusCode int
	var errResp models.ErrorResponse

	switch {
	case errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrPlanningFailed),
		errors.Is(err, models.ErrRenderFailed):
		statusCode = http.StatusBadRequest
		errResp = models.ErrorResponse{Error: err.Error()}
	case errors.Is(err, models.ErrNotFound):
		statusCode = http.StatusNotFound
		errResp = models.ErrorResponse{Error: "Plan not found"}
	case errors.Is(err, models.ErrArchiveDisabled):
		statusCode = http.StatusServiceUnavailable
		errResp = models.ErrorResponse{Error: "Plan archive is disabled"}
	default:
		zap.L().Error("Unhandled internal error in handleServiceError", zap.Error(err))
		statusCode = http.StatusInternalServerError
		errResp = models.ErrorResponse{Error: "An unexpected internal error occurred"}
	}

	requestErrorsTotal.WithLabelValues(c.FullPath(), http.StatusText(statusCode)).Inc()
	c.AbortWithStatusJSON(statusCode, errResp)
}
