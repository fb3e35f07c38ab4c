package handlers

import (
	"errors"

	"github.com/farmlink/farmlink-api/internal/dto"
	"github.com/farmlink/farmlink-api/internal/models"
	"github.com/farmlink/farmlink-api/internal/response"
	"github.com/farmlink/farmlink-api/internal/services"
	"github.com/farmlink/farmlink-api/internal/token"
	"github.com/gin-gonic/gin"
)

// AuthHandler coordinates signup and login.
type AuthHandler struct {
	authService *services.AuthService
	tokens      *token.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, tokens *token.Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		tokens:      tokens,
	}
}

// Signup registers a new profile and returns it with a bearer token.
func (h *AuthHandler) Signup(c *gin.Context) {
	type SignupRequest struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Location string `json:"location"`
		UserType string `json:"userType"`
		Password string `json:"password"`
	}

	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request body")
		return
	}

	profile, err := h.authService.Signup(services.SignupInput{
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Location: req.Location,
		UserType: models.UserType(req.UserType),
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, profile)
}

// Login authenticates a profile and returns it with a bearer token.
func (h *AuthHandler) Login(c *gin.Context) {
	type LoginRequest struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Fail(c, "Invalid request body")
		return
	}

	profile, err := h.authService.Login(services.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	h.respondWithToken(c, profile)
}

func (h *AuthHandler) respondWithToken(c *gin.Context, profile *models.Profile) {
	signed, err := h.tokens.Generate(profile.ID)
	if err != nil {
		response.Fail(c, "Failed to issue token")
		return
	}

	response.OK(c, gin.H{
		"user":  dto.ToUserDTO(*profile),
		"token": signed,
	})
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNameRequired),
		errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordRequired),
		errors.Is(err, services.ErrPasswordTooShort),
		errors.Is(err, services.ErrInvalidUserType),
		errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrInvalidCredentials),
		errors.Is(err, services.ErrUserNotFound):
		response.Fail(c, err.Error())
	default:
		response.Fail(c, "Internal server error")
	}
}
