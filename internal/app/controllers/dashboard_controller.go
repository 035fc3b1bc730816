package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// DashboardController serves dashboard statistics and preferences
type DashboardController struct {
	dashboardService *services.DashboardService
}

// NewDashboardController creates a new DashboardController
func NewDashboardController(dashboardService *services.DashboardService) *DashboardController {
	return &DashboardController{dashboardService: dashboardService}
}

// GetStats returns the tenant aggregate over an inclusive date window
// @Summary Dashboard statistics
// @Tags dashboard
// @Produce json
// @Security BearerAuth
// @Param periodStart query string false "Window start (YYYY-MM-DD)"
// @Param periodEnd query string false "Window end (YYYY-MM-DD)"
// @Success 200 {object} dto.APIResponse{data=dto.DashboardStatsResponse}
// @Router /dashboard/stats [get]
func (c *DashboardController) GetStats(ctx *gin.Context) {
	resp, err := c.dashboardService.GetStats(ctx,
		middleware.TenantID(ctx),
		ctx.Query("periodStart"),
		ctx.Query("periodEnd"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// GetPreferences returns the caller's stored dashboard preferences
func (c *DashboardController) GetPreferences(ctx *gin.Context) {
	resp, err := c.dashboardService.GetPreferences(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}

// SavePreferences merges the payload into the caller's stored preferences
func (c *DashboardController) SavePreferences(ctx *gin.Context) {
	var req dto.SavePreferencesRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	resp, err := c.dashboardService.SavePreferences(ctx, middleware.UserID(ctx), req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: resp})
}
