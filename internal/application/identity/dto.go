package identity

import (
	"time"

	"github.com/google/uuid"
)

// RegisterInput contains the input for registering a user.
// When the company domain is not yet known, a company record is created as
// part of the same registration.
type RegisterInput struct {
	CompanyDomain string
	CompanyName   string
	Email         string
	Password      string
	Role          string
}

// RegisterResult contains the result of a successful registration
type RegisterResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
	CompanyCreated        bool
}

// LoginInput contains the input for user login
type LoginInput struct {
	CompanyDomain string
	Email         string
	Password      string
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	User                  UserInfo
}

// UserInfo contains basic user information returned to the client
type UserInfo struct {
	ID            uuid.UUID
	CompanyID     uuid.UUID
	CompanyDomain string
	CompanyName   string
	Email         string
	Role          string
	LandingPath   string
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for user logout
type LogoutInput struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
	TokenJTI  string        // JWT ID of the access token being revoked
	TokenTTL  time.Duration // Remaining lifetime of that token
}

// GetCurrentUserInput contains the input for getting current user info
type GetCurrentUserInput struct {
	UserID    uuid.UUID
	CompanyID uuid.UUID
}

// CurrentUserResult contains the current user's information
type CurrentUserResult struct {
	User UserInfo
}
