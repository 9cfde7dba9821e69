package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/mei_retail_app/internal/core/ports/services"
	"github.com/SscSPs/mei_retail_app/internal/dto"
	"github.com/SscSPs/mei_retail_app/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	limitergin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// AuthHandler handles authentication related requests.
type AuthHandler struct {
	authService  portssvc.AuthSvc
	ownerService portssvc.OwnerSvc
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(as portssvc.AuthSvc, owners portssvc.OwnerSvc) *AuthHandler {
	return &AuthHandler{authService: as, ownerService: owners}
}

// registerAuthRoutes sets up the public authentication routes.
func registerAuthRoutes(r *gin.Engine, authService portssvc.AuthSvc, ownerService portssvc.OwnerSvc) {
	h := NewAuthHandler(authService, ownerService)

	// Define rate limit: 5 requests per minute
	rate, _ := limiter.NewRateFromFormatted("5-M")
	ipLimiter := limiter.New(memory.NewStore(), rate)
	limitMiddleware := limitergin.NewMiddleware(ipLimiter)

	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", limitMiddleware, h.Login)
		auth.POST("/register", limitMiddleware, h.Register)
	}
}

// Login godoc
// @Summary Owner login
// @Description Authenticates an owner and returns a JWT token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login Credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "log in")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Register godoc
// @Summary Register new owner
// @Description Creates an owner with its inventory and its BANK and CASH wallets.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Owner Registration Info"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "E-mail already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, logger, err)
		return
	}

	owner, err := h.authService.RegisterOwner(c.Request.Context(), req)
	if err != nil {
		respondError(c, logger, err, "register owner")
		return
	}

	logger.Info("Owner registered", slog.String("user_id", owner.User.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(owner))
}

// Me godoc
// @Summary Current owner
// @Description Returns the authenticated owner and its inventory.
// @Tags auth
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	owner, ok := resolveOwner(c, h.ownerService)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(owner))
}
