package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/assacalos/easyconnect/internal/core/ports/services"
	"github.com/assacalos/easyconnect/internal/dto"
	"github.com/assacalos/easyconnect/internal/middleware"
	"github.com/gin-gonic/gin"
)

// authHandler handles authentication related requests.
type authHandler struct {
	authService portssvc.AuthSvcFacade
}

// registerAuthRoutes registers the public login route behind its own limiter.
func registerAuthRoutes(rg *gin.RouterGroup, authService portssvc.AuthSvcFacade, limit gin.HandlerFunc) {
	h := &authHandler{authService: authService}

	auth := rg.Group("/auth")
	if limit != nil {
		auth.Use(limit)
	}
	auth.POST("/login", h.login)
}

// login godoc
// @Summary Login user
// @Description Authenticates a user by username and password and returns a JWT token
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   credentials body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} Response{data=dto.LoginResponse}
// @Failure 400 {object} Response "Invalid input"
// @Failure 401 {object} Response "Authentication failed"
// @Failure 429 {object} Response "Too many attempts"
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	user, token, expiresAt, err := h.authService.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	logger.Info("Login succeeded", slog.String("user_id", user.UserID))
	respondOK(c, http.StatusOK, dto.LoginResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      dto.ToUserResponse(user),
	}, "Login successful")
}
