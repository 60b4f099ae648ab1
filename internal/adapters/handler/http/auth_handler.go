package http

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/screenaware/screenaware/internal/adapters/handler/http/middleware"
	"github.com/screenaware/screenaware/internal/core/domain"
	"github.com/screenaware/screenaware/internal/core/services"
)

type AuthHandler struct {
	service  *services.AuthService
	tokens   *services.TokenService
	verifier *services.FederatedVerifier
}

func NewAuthHandler(service *services.AuthService, tokens *services.TokenService, verifier *services.FederatedVerifier) *AuthHandler {
	return &AuthHandler{
		service:  service,
		tokens:   tokens,
		verifier: verifier,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type federatedRequest struct {
	IDToken string `json:"id_token" binding:"required"`
}

type userResponse struct {
	ID          string `json:"uid"`
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Provider    string `json:"provider"`
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:          u.ID,
		Email:       u.Email,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Provider:    u.Provider,
		DisplayName: u.DisplayName(""),
	}
}

func (h *AuthHandler) RegisterRoutes(router *gin.RouterGroup) {
	authGroup := router.Group("/auth")
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/federated", h.Federated)
	}
}

// RegisterProtectedRoutes expects a group already guarded by AuthMiddleware.
func (h *AuthHandler) RegisterProtectedRoutes(router *gin.RouterGroup) {
	router.POST("/auth/logout", h.Logout)
	router.GET("/me", h.Me)
}

// Register godoc
// @Summary  Create an account and its profile
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input body registerRequest true "Credentials and names"
// @Success  201 {object} authResponse
// @Failure  400 {object} map[string]string
// @Failure  409 {object} map[string]string
// @Router   /api/v1/auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusCreated, user)
}

// Login godoc
// @Summary  Sign in with email and password
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input body loginRequest true "Credentials"
// @Success  200 {object} authResponse
// @Failure  401 {object} map[string]string
// @Router   /api/v1/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.service.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) Federated(c *gin.Context) {
	var req federatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	identity, err := h.verifier.Verify(req.IDToken)
	if err != nil {
		log.Printf("[AUTH] Federated sign-in rejected: %v", err)
		handleError(c, err)
		return
	}

	user, err := h.service.SignInFederated(c.Request.Context(), identity)
	if err != nil {
		handleError(c, err)
		return
	}

	h.respondWithToken(c, http.StatusOK, user)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token, ok := middleware.GetToken(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "token context missing"})
		return
	}

	if err := h.tokens.Revoke(c.Request.Context(), token); err != nil {
		handleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Me godoc
// @Summary   Current user's profile
// @Tags      auth
// @Produce   json
// @Security  BearerAuth
// @Success   200 {object} userResponse
// @Failure   401 {object} map[string]string
// @Router    /api/v1/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "user context missing"})
		return
	}

	user, err := h.service.Profile(c.Request.Context(), userID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, newUserResponse(user))
}

func (h *AuthHandler) respondWithToken(c *gin.Context, status int, user *domain.User) {
	token, err := h.tokens.GenerateToken(user.ID)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(status, authResponse{
		Token: token,
		User:  newUserResponse(user),
	})
}
