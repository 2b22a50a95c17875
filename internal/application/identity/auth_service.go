package identity

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/shelfscan/backend/internal/domain/identity"
	"github.com/shelfscan/backend/internal/domain/shared"
	"github.com/shelfscan/backend/internal/infrastructure/auth"
)

// AuthService handles registration, login and token lifecycle
type AuthService struct {
	companyRepo identity.CompanyRepository
	userRepo    identity.UserRepository
	jwtService  *auth.JWTService
	blacklist   auth.TokenBlacklist
	events      shared.EventPublisher
	logger      *zap.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	companyRepo identity.CompanyRepository,
	userRepo identity.UserRepository,
	jwtService *auth.JWTService,
	blacklist auth.TokenBlacklist,
	events shared.EventPublisher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		companyRepo: companyRepo,
		userRepo:    userRepo,
		jwtService:  jwtService,
		blacklist:   blacklist,
		events:      events,
		logger:      logger,
	}
}

// Register creates a user account under the company identified by domain.
// The first registration for a domain creates the company as well; later
// registrations join the existing one.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*RegisterResult, error) {
	role, err := identity.ParseRole(input.Role)
	if err != nil {
		return nil, err
	}

	candidate, err := identity.NewCompany(input.CompanyDomain, input.CompanyName)
	if err != nil {
		return nil, err
	}

	company, existed, err := s.companyRepo.FindOrCreateByDomain(ctx, candidate)
	if err != nil {
		s.logger.Error("Failed to resolve company during registration",
			zap.String("domain", candidate.Domain), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register company")
	}

	user, err := identity.NewUser(company.ID, input.Email, input.Password, role)
	if err != nil {
		return nil, err
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, shared.ErrAlreadyExists) {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "A user with this email is already registered in the company")
		}
		s.logger.Error("Failed to create user during registration",
			zap.String("domain", company.Domain), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to register user")
	}

	s.publishEvents(ctx, append(company.GetDomainEvents(), user.GetDomainEvents()...))
	company.ClearDomainEvents()
	user.ClearDomainEvents()

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		CompanyID: company.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair after registration", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("company_domain", company.Domain),
		zap.String("role", string(user.Role)),
		zap.Bool("company_created", !existed))

	return &RegisterResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  s.userInfo(user, company),
		CompanyCreated:        !existed,
	}, nil
}

// Login authenticates a user within a company and returns tokens.
// Lookup failures and bad passwords produce the same error so the endpoint
// does not leak which part was wrong.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*LoginResult, error) {
	domain := identity.NormalizeDomain(input.CompanyDomain)
	s.logger.Info("Login attempt", zap.String("company_domain", domain))

	company, err := s.companyRepo.FindByDomain(ctx, domain)
	if err != nil {
		s.logger.Warn("Unknown company domain during login", zap.String("company_domain", domain))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid company, email or password")
	}

	user, err := s.userRepo.FindByEmail(ctx, company.ID, input.Email)
	if err != nil {
		s.logger.Warn("User not found during login",
			zap.String("company_domain", domain))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid company, email or password")
	}

	if !user.IsActive() {
		s.logger.Warn("Login attempt for deactivated account",
			zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account has been deactivated")
	}

	if !user.VerifyPassword(input.Password) {
		s.logger.Warn("Invalid password attempt",
			zap.String("user_id", user.ID.String()))
		return nil, shared.NewDomainError("INVALID_CREDENTIALS", "Invalid company, email or password")
	}

	tokenPair, err := s.jwtService.GenerateTokenPair(auth.GenerateTokenInput{
		CompanyID: company.ID,
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
	})
	if err != nil {
		s.logger.Error("Failed to generate token pair", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to generate authentication tokens")
	}

	s.logger.Info("User logged in",
		zap.String("user_id", user.ID.String()),
		zap.String("company_domain", domain),
		zap.String("role", string(user.Role)))

	return &LoginResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
		User:                  s.userInfo(user, company),
	}, nil
}

// RefreshToken rotates the token pair using a valid refresh token
func (s *AuthService) RefreshToken(ctx context.Context, input RefreshTokenInput) (*RefreshTokenResult, error) {
	claims, err := s.jwtService.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	// Refresh tokens revoked on logout must not mint new access tokens
	if s.blacklist != nil {
		blacklisted, err := s.blacklist.IsBlacklisted(ctx, claims.ID)
		if err != nil {
			s.logger.Warn("Token blacklist check failed during refresh", zap.Error(err))
		} else if blacklisted {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Refresh token has been revoked")
		}

		invalidated, err := s.blacklist.IsUserTokenInvalidated(ctx, claims.UserID, claims.GetIssuedAtTime())
		if err != nil {
			s.logger.Warn("User invalidation check failed during refresh", zap.Error(err))
		} else if invalidated {
			return nil, shared.NewDomainError("TOKEN_INVALID", "Session has been terminated")
		}
	}

	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		return nil, shared.NewDomainError("TOKEN_INVALID", "Invalid user ID in token")
	}

	// Verify the user still exists and is active
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		s.logger.Warn("User not found during token refresh", zap.String("user_id", userID.String()))
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.IsActive() {
		return nil, shared.NewDomainError("ACCOUNT_DEACTIVATED", "Account is no longer active")
	}

	tokenPair, err := s.jwtService.RefreshTokenPair(input.RefreshToken)
	if err != nil {
		return nil, mapTokenError(err)
	}

	s.logger.Info("Token refreshed", zap.String("user_id", userID.String()))

	return &RefreshTokenResult{
		AccessToken:           tokenPair.AccessToken,
		RefreshToken:          tokenPair.RefreshToken,
		AccessTokenExpiresAt:  tokenPair.AccessTokenExpiresAt,
		RefreshTokenExpiresAt: tokenPair.RefreshTokenExpiresAt,
		TokenType:             tokenPair.TokenType,
	}, nil
}

// Logout revokes the caller's access token by blacklisting its JTI for its
// remaining lifetime.
func (s *AuthService) Logout(ctx context.Context, input LogoutInput) error {
	if s.blacklist != nil && input.TokenJTI != "" && input.TokenTTL > 0 {
		if err := s.blacklist.AddToBlacklist(ctx, input.TokenJTI, input.TokenTTL); err != nil {
			s.logger.Error("Failed to blacklist token on logout",
				zap.String("user_id", input.UserID.String()), zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to log out")
		}
	}

	s.logger.Info("User logged out",
		zap.String("user_id", input.UserID.String()),
		zap.String("company_id", input.CompanyID.String()))

	return nil
}

// GetCurrentUser retrieves the authenticated user's profile
func (s *AuthService) GetCurrentUser(ctx context.Context, input GetCurrentUserInput) (*CurrentUserResult, error) {
	user, err := s.userRepo.FindByID(ctx, input.UserID)
	if err != nil {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}
	if !user.BelongsTo(input.CompanyID) {
		return nil, shared.NewDomainError("USER_NOT_FOUND", "User not found")
	}

	company, err := s.companyRepo.FindByID(ctx, user.CompanyID)
	if err != nil {
		s.logger.Error("Failed to load company for current user",
			zap.String("user_id", user.ID.String()), zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load user profile")
	}

	return &CurrentUserResult{User: s.userInfo(user, company)}, nil
}

func (s *AuthService) userInfo(user *identity.User, company *identity.Company) UserInfo {
	return UserInfo{
		ID:            user.ID,
		CompanyID:     user.CompanyID,
		CompanyDomain: company.Domain,
		CompanyName:   company.Name,
		Email:         user.Email,
		Role:          string(user.Role),
		LandingPath:   user.Role.LandingPath(),
	}
}

func (s *AuthService) publishEvents(ctx context.Context, events []shared.DomainEvent) {
	if s.events == nil || len(events) == 0 {
		return
	}
	if err := s.events.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish domain events", zap.Error(err))
	}
}

func mapTokenError(err error) error {
	switch {
	case errors.Is(err, auth.ErrExpiredToken):
		return shared.NewDomainError("TOKEN_EXPIRED", "Refresh token has expired")
	case errors.Is(err, auth.ErrMaxRefreshExceeded):
		return shared.NewDomainError("TOKEN_MAX_REFRESH", "Maximum token refresh count exceeded. Please log in again")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrInvalidTokenType), errors.Is(err, auth.ErrInvalidClaims):
		return shared.NewDomainError("TOKEN_INVALID", "Invalid refresh token")
	default:
		return shared.NewDomainError("TOKEN_ERROR", "Failed to validate refresh token")
	}
}
