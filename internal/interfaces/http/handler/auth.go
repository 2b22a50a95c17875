package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	appidentity "github.com/shelfscan/backend/internal/application/identity"
	"github.com/shelfscan/backend/internal/interfaces/http/dto"
	"github.com/shelfscan/backend/internal/interfaces/http/middleware"
)

// AuthService is the identity application surface the handler depends on
type AuthService interface {
	Register(ctx context.Context, input appidentity.RegisterInput) (*appidentity.RegisterResult, error)
	Login(ctx context.Context, input appidentity.LoginInput) (*appidentity.LoginResult, error)
	RefreshToken(ctx context.Context, input appidentity.RefreshTokenInput) (*appidentity.RefreshTokenResult, error)
	Logout(ctx context.Context, input appidentity.LogoutInput) error
	GetCurrentUser(ctx context.Context, input appidentity.GetCurrentUserInput) (*appidentity.CurrentUserResult, error)
}

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRoutes registers auth routes on the given group
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup) {
	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.Refresh)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", h.Me)
	}
}

// RegisterRequest is the registration payload
type RegisterRequest struct {
	CompanyDomain string `json:"company_domain" binding:"required"`
	CompanyName   string `json:"company_name"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required,min=8"`
	Role          string `json:"role" binding:"required,oneof=owner worker customer"`
}

// LoginRequest is the login payload
type LoginRequest struct {
	CompanyDomain string `json:"company_domain" binding:"required"`
	Email         string `json:"email" binding:"required,email"`
	Password      string `json:"password" binding:"required"`
}

// RefreshRequest is the token refresh payload
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// TokenPairResponse carries issued tokens
type TokenPairResponse struct {
	AccessToken           string `json:"access_token"`
	RefreshToken          string `json:"refresh_token"`
	AccessTokenExpiresAt  int64  `json:"access_token_expires_at"`
	RefreshTokenExpiresAt int64  `json:"refresh_token_expires_at"`
	TokenType             string `json:"token_type"`
}

// UserResponse is the client representation of a user
type UserResponse struct {
	ID            string `json:"id"`
	CompanyID     string `json:"company_id"`
	CompanyDomain string `json:"company_domain"`
	CompanyName   string `json:"company_name"`
	Email         string `json:"email"`
	Role          string `json:"role"`
	LandingPath   string `json:"landing_path"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Tokens         TokenPairResponse `json:"tokens"`
	User           UserResponse      `json:"user"`
	CompanyCreated bool              `json:"company_created,omitempty"`
}

func toUserResponse(u appidentity.UserInfo) UserResponse {
	return UserResponse{
		ID:            u.ID.String(),
		CompanyID:     u.CompanyID.String(),
		CompanyDomain: u.CompanyDomain,
		CompanyName:   u.CompanyName,
		Email:         u.Email,
		Role:          u.Role,
		LandingPath:   u.LandingPath,
	}
}

// Register handles POST /auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid registration payload", getRequestID(c), bindingDetails(err)))
		return
	}

	result, err := h.authService.Register(c.Request.Context(), appidentity.RegisterInput{
		CompanyDomain: req.CompanyDomain,
		CompanyName:   req.CompanyName,
		Email:         req.Email,
		Password:      req.Password,
		Role:          req.Role,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, AuthResponse{
		Tokens: TokenPairResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt.Unix(),
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt.Unix(),
			TokenType:             result.TokenType,
		},
		User:           toUserResponse(result.User),
		CompanyCreated: result.CompanyCreated,
	})
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid login payload", getRequestID(c), bindingDetails(err)))
		return
	}

	result, err := h.authService.Login(c.Request.Context(), appidentity.LoginInput{
		CompanyDomain: req.CompanyDomain,
		Email:         req.Email,
		Password:      req.Password,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, AuthResponse{
		Tokens: TokenPairResponse{
			AccessToken:           result.AccessToken,
			RefreshToken:          result.RefreshToken,
			AccessTokenExpiresAt:  result.AccessTokenExpiresAt.Unix(),
			RefreshTokenExpiresAt: result.RefreshTokenExpiresAt.Unix(),
			TokenType:             result.TokenType,
		},
		User: toUserResponse(result.User),
	})
}

// Refresh handles POST /auth/refresh
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationErrorResponse(
			"Invalid refresh payload", getRequestID(c), bindingDetails(err)))
		return
	}

	result, err := h.authService.RefreshToken(c.Request.Context(), appidentity.RefreshTokenInput{
		RefreshToken: req.RefreshToken,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, TokenPairResponse{
		AccessToken:           result.AccessToken,
		RefreshToken:          result.RefreshToken,
		AccessTokenExpiresAt:  result.AccessTokenExpiresAt.Unix(),
		RefreshTokenExpiresAt: result.RefreshTokenExpiresAt.Unix(),
		TokenType:             result.TokenType,
	})
}

// Logout handles POST /auth/logout. The access token presented on this
// request is revoked for its remaining lifetime.
func (h *AuthHandler) Logout(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}
	companyID, err := claims.GetCompanyUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	if err := h.authService.Logout(c.Request.Context(), appidentity.LogoutInput{
		UserID:    userID,
		CompanyID: companyID,
		TokenJTI:  claims.ID,
		TokenTTL:  claims.GetRemainingTTL(),
	}); err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, gin.H{"message": "Logged out"})
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	claims := middleware.GetJWTClaims(c)
	if claims == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	userID, err := claims.GetUserUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}
	companyID, err := claims.GetCompanyUUID()
	if err != nil {
		h.Unauthorized(c, "Invalid token claims")
		return
	}

	result, err := h.authService.GetCurrentUser(c.Request.Context(), appidentity.GetCurrentUserInput{
		UserID:    userID,
		CompanyID: companyID,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, toUserResponse(result.User))
}
