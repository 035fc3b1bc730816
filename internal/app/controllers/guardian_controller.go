package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// GuardianController handles guardian-related operations
type GuardianController struct {
	guardianService *services.GuardianService
}

// NewGuardianController creates a new GuardianController
func NewGuardianController(guardianService *services.GuardianService) *GuardianController {
	return &GuardianController{guardianService: guardianService}
}

// CreateGuardian registers a guardian
// @Summary Register a guardian
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGuardianRequest true "Guardian information"
// @Success 201 {object} dto.APIResponse{data=dto.GuardianResponse}
// @Router /guardians [post]
func (c *GuardianController) CreateGuardian(ctx *gin.Context) {
	var req dto.CreateGuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.guardianService.CreateGuardian(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetGuardian retrieves a guardian by id
func (c *GuardianController) GetGuardian(ctx *gin.Context) {
	resp, err := c.guardianService.GetGuardian(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// UpdateGuardian applies a partial update to a guardian
func (c *GuardianController) UpdateGuardian(ctx *gin.Context) {
	var req dto.UpdateGuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.guardianService.UpdateGuardian(ctx, middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// DeleteGuardian soft-deletes a guardian
func (c *GuardianController) DeleteGuardian(ctx *gin.Context) {
	if err := c.guardianService.DeleteGuardian(ctx, middleware.TenantID(ctx), ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.SuccessResponse{Success: true})
}

// LinkGuardian attaches a guardian to a student
// @Summary Link a guardian to a student
// @Tags guardians
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.LinkGuardianRequest true "Link information"
// @Success 201 {object} dto.APIResponse{data=dto.StudentGuardianResponse}
// @Router /students/{id}/guardians [post]
func (c *GuardianController) LinkGuardian(ctx *gin.Context) {
	var req dto.LinkGuardianRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.guardianService.LinkGuardian(ctx, middleware.TenantID(ctx), ctx.Param("id"), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// ListStudentGuardians lists a student's guardians, primary first
func (c *GuardianController) ListStudentGuardians(ctx *gin.Context) {
	resp, err := c.guardianService.ListStudentGuardians(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
