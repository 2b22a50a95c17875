package identity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shelfscan/backend/internal/domain/shared"
	"golang.org/x/crypto/bcrypt"
)

// Role represents the fixed role of a user within a company
type Role string

const (
	RoleOwner    Role = "owner"
	RoleWorker   Role = "worker"
	RoleCustomer Role = "customer"
)

// ParseRole validates and returns a Role from its string form
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleOwner:
		return RoleOwner, nil
	case RoleWorker:
		return RoleWorker, nil
	case RoleCustomer:
		return RoleCustomer, nil
	default:
		return "", shared.NewDomainError("INVALID_ROLE", "Role must be one of: owner, worker, customer")
	}
}

// LandingPath returns the frontend landing page for the role.
// Used as a redirect hint when a role check fails.
func (r Role) LandingPath() string {
	switch r {
	case RoleOwner:
		return "/owner"
	case RoleWorker:
		return "/worker"
	case RoleCustomer:
		return "/customer"
	default:
		return "/"
	}
}

// UserStatus represents the status of a user
type UserStatus string

const (
	UserStatusActive      UserStatus = "active"
	UserStatusDeactivated UserStatus = "deactivated"
)

// Password cost for bcrypt
const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// User represents a user account scoped to a company
type User struct {
	shared.BaseAggregateRoot
	CompanyID    uuid.UUID
	Email        string
	PasswordHash string
	Role         Role
	Status       UserStatus
}

func validateEmail(email string) error {
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email is required")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailPattern.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Email format is invalid")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 6 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 6 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// NewUser creates a new active user with a hashed password
func NewUser(companyID uuid.UUID, email, password string, role Role) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := validateEmail(email); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}
	if _, err := ParseRole(string(role)); err != nil {
		return nil, err
	}
	if companyID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_COMPANY", "Company ID is required")
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	user := &User{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		CompanyID:         companyID,
		Email:             email,
		PasswordHash:      passwordHash,
		Role:              role,
		Status:            UserStatusActive,
	}

	user.AddDomainEvent(NewUserRegisteredEvent(user))

	return user, nil
}

// VerifyPassword verifies if the provided password matches
func (u *User) VerifyPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}

// SetPassword replaces the user's password
func (u *User) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}
	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}
	u.PasswordHash = passwordHash
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
	return nil
}

// Deactivate marks the user as deactivated
func (u *User) Deactivate() {
	u.Status = UserStatusDeactivated
	u.UpdatedAt = time.Now()
	u.IncrementVersion()
}

// IsActive reports whether the user may log in
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// BelongsTo reports whether the user belongs to the given company
func (u *User) BelongsTo(companyID uuid.UUID) bool {
	return u.CompanyID == companyID
}
