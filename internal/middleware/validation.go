package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/pkg/apperrors"
)

// BindJSON binds and validates the request body. On failure it writes the
// uniform 400 body with per-field details and returns false; the handler
// should return immediately.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		appErr := apperrors.NewValidationError("invalid request body").
			WithDetails(dto.ValidationIssuesFromError(err))
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(appErr))
		return false
	}
	return true
}
