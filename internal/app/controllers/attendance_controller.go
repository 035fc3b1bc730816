package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// AttendanceController handles attendance session operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService) *AttendanceController {
	return &AttendanceController{attendanceService: attendanceService}
}

// CreateSession schedules a session
// @Summary Schedule an attendance session
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateSessionRequest true "Session information"
// @Success 201 {object} dto.APIResponse{data=dto.SessionResponse}
// @Router /attendance/sessions [post]
func (c *AttendanceController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.attendanceService.CreateSession(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetSession retrieves a session by id
func (c *AttendanceController) GetSession(ctx *gin.Context) {
	resp, err := c.attendanceService.GetSession(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListClassSessions lists a class's sessions
func (c *AttendanceController) ListClassSessions(ctx *gin.Context) {
	resp, err := c.attendanceService.ListSessionsByClass(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateSession drives a session through its lifecycle
// @Summary Transition an attendance session
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Session ID"
// @Param request body dto.UpdateSessionRequest true "Target status"
// @Success 200 {object} dto.APIResponse{data=dto.SessionResponse}
// @Failure 409 {object} dto.ErrorResponse "Illegal status transition"
// @Router /attendance/sessions/{id} [patch]
func (c *AttendanceController) UpdateSession(ctx *gin.Context) {
	var req dto.UpdateSessionRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.attendanceService.UpdateSession(ctx, middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteSession soft-deletes a session
func (c *AttendanceController) DeleteSession(ctx *gin.Context) {
	if err := c.attendanceService.DeleteSession(ctx, middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}
