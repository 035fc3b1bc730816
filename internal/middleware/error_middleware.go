package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
	"github.com/seojin/hakwonhub/internal/pkg/logger"
)

// HandleAPIError classifies any error at the request boundary and writes the
// uniform error body. Controllers call this instead of mapping statuses
// themselves.
func HandleAPIError(c *gin.Context, err error) {
	appErr := apperrors.Classify(err)

	if appErr.StatusCode >= 500 {
		logger.Error().
			Err(err).
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Msg("request failed")
	}

	c.JSON(appErr.StatusCode, dto.NewErrorResponse(appErr))
}

// Recovery converts panics into the uniform error body instead of letting
// gin's default handler write a bare 500.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if recovered := recover(); recovered != nil {
				appErr := apperrors.ClassifyRecovered(recovered)

				logger.Error().
					Interface("panic", recovered).
					Str("method", c.Request.Method).
					Str("path", c.Request.URL.Path).
					Msg("recovered from panic")

				c.AbortWithStatusJSON(appErr.StatusCode, dto.NewErrorResponse(appErr))
			}
		}()
		c.Next()
	}
}
