package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/seojin/hakwonhub/internal/app/models/dto"
	"github.com/seojin/hakwonhub/internal/app/services"
	"github.com/seojin/hakwonhub/internal/middleware"
)

// AuthController handles authentication operations
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// loginResponse pairs the token set with the user profile
type loginResponse struct {
	Tokens *dto.TokenResponse `json:"tokens"`
	User   *dto.UserResponse  `json:"user"`
}

// Login verifies credentials and issues a token pair
// @Summary Log in
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Credentials"
// @Success 200 {object} dto.APIResponse{data=dto.TokenResponse}
// @Failure 401 {object} dto.ErrorResponse "Invalid credentials"
// @Router /auth/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req dto.LoginRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tokens, user, err := c.authService.Login(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: loginResponse{Tokens: tokens, User: user}})
}

// Refresh exchanges a refresh token for a new pair
func (c *AuthController) Refresh(ctx *gin.Context) {
	var req dto.RefreshTokenRequest
	if !middleware.BindJSON(ctx, &req) {
		return
	}

	tokens, err := c.authService.RefreshTokens(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: tokens})
}

// Me returns the authenticated user's profile
func (c *AuthController) Me(ctx *gin.Context) {
	user, err := c.authService.GetCurrentUser(ctx, middleware.UserID(ctx))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.APIResponse{Data: user})
}
