package middleware

import (
	"net/http"
	"time"

	"triptacticx/internal/models"

	rateli "github.com/JGLTechnologies/gin-rate-limit"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// NewRateLimiter ограничивает число запросов с одного IP в минуту.
// При redisClient == nil используется хранилище в памяти процесса.
func NewRateLimiter(redisClient *redis.Client, limit uint, logger *zap.Logger) gin.HandlerFunc {
	return newRateLimiter(redisClient, limit, time.Minute, logger)
}

func newRateLimiter(redisClient *redis.Client, limit uint, rate time.Duration, logger *zap.Logger) gin.HandlerFunc {
	var store rateli.Store
	if redisClient != nil {
		store = rateli.RedisStore(&rateli.RedisOptions{
			RedisClient: redisClient,
			Rate:        rate,
			Limit:       limit,
		})
		logger.Info("Rate limiter использует Redis", zap.Uint("limit", limit), zap.Duration("rate", rate))
	} else {
		store = rateli.InMemoryStore(&rateli.InMemoryOptions{
			Rate:  rate,
			Limit: limit,
		})
		logger.Info("Rate limiter использует память процесса", zap.Uint("limit", limit), zap.Duration("rate", rate))
	}

	return rateli.RateLimiter(store, &rateli.Options{
		ErrorHandler: func(c *gin.Context, info rateli.Info) {
			logger.Warn("Rate limit exceeded",
				zap.String("clientIP", c.ClientIP()),
				zap.Time("resetTime", info.ResetTime),
				zap.String("path", c.Request.URL.Path),
			)
			c.AbortWithStatusJSON(http.StatusTooManyRequests, models.ErrorResponse{
				Error: "Too many requests. Try again in " + time.Until(info.ResetTime).Round(time.Second).String(),
			})
		},
		KeyFunc: func(c *gin.Context) string {
			return c.ClientIP()
		},
	})
}
