package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// ClassController handles class-related operations
type ClassController struct {
	classService *services.ClassService
}

// NewClassController creates a new ClassController
func NewClassController(classService *services.ClassService) *ClassController {
	return &ClassController{classService: classService}
}

// CreateClass opens a class
// @Summary Open a class
// @Tags classes
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateClassRequest true "Class information"
// @Success 201 {object} dto.APIResponse{data=dto.ClassResponse}
// @Router /classes [post]
func (c *ClassController) CreateClass(ctx *gin.Context) {
	var req dto.CreateClassRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.classService.CreateClass(ctx, middleware.TenantID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.APIResponse{Data: resp})
}

// GetClass retrieves a class by id
func (c *ClassController) GetClass(ctx *gin.Context) {
	resp, err := c.classService.GetClass(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// ListClasses lists the tenant's classes
func (c *ClassController) ListClasses(ctx *gin.Context) {
	resp, err := c.classService.ListClasses(ctx, middleware.TenantID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Enroll increments the class headcount, rejecting a full class
func (c *ClassController) Enroll(ctx *gin.Context) {
	resp, err := c.classService.Enroll(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// Withdraw decrements the class headcount
func (c *ClassController) Withdraw(ctx *gin.Context) {
	resp, err := c.classService.Withdraw(ctx, middleware.TenantID(ctx), ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
