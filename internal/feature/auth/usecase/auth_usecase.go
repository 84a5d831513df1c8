package usecase

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"caboai_backend/internal/feature/auth/domain/entity"
)

const (
	// minPasswordLength is the minimum accepted password length.
	minPasswordLength = 8

	// maxPasswordLength is bcrypt's hard input limit in bytes; longer
	// passwords make GenerateFromPassword fail outright.
	maxPasswordLength = 72
)

// UserRepository abstracts the persistence layer for user entities.
// Following Go convention: interfaces are defined by the consumer
// (usecase), not the provider (adapters).
type UserRepository interface {
	// Create persists a new user. Returns ErrEmailAlreadyExists when a
	// user with the same email is already stored.
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail retrieves a user by email. Returns ErrUserNotFound
	// when no user matches.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by ID. Returns ErrUserNotFound when no
	// user matches.
	FindByID(ctx context.Context, id uint) (*entity.User, error)
}

// JWTGenerator issues signed access tokens for authenticated users.
type JWTGenerator interface {
	GenerateToken(userID uint, email string) (string, error)
}

// authUsecase implements the authentication business logic.
type authUsecase struct {
	users        UserRepository
	jwtGenerator JWTGenerator
}

// NewAuthUsecase creates a new authUsecase instance.
func NewAuthUsecase(users UserRepository, jwtGenerator JWTGenerator) *authUsecase {
	return &authUsecase{
		users:        users,
		jwtGenerator: jwtGenerator,
	}
}

// validatePassword checks that the password meets the security requirements.
func validatePassword(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf("%w: must be at least %d characters long", ErrInvalidPassword, minPasswordLength)
	}
	if len(password) > maxPasswordLength {
		return fmt.Errorf("%w: must be at most %d bytes long", ErrInvalidPassword, maxPasswordLength)
	}
	return nil
}

// normalizeEmail lower-cases an email so comparison and the storage
// unique index are case-insensitive.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a new user with a hashed password and returns the
// stored record. The plaintext password never leaves this call.
func (u *authUsecase) Register(ctx context.Context, email, password, firstName, lastName string) (*entity.User, error) {
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{
		Email:     normalizeEmail(email),
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
	}
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidateCredentials checks an email/password pair and returns the
// matching user. User-not-found and wrong-password both come back as
// ErrInvalidCredentials. A bcrypt comparison runs even when the user
// does not exist so the two cases are not distinguishable by timing.
func (u *authUsecase) ValidateCredentials(ctx context.Context, email, password string) (*entity.User, error) {
	user, err := u.users.FindByEmail(ctx, normalizeEmail(email))

	// Dummy hash keeps bcrypt.CompareHashAndPassword on the path when
	// the lookup failed.
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"
	if err == nil {
		passwordHash = user.Password
	}

	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates the user and returns a signed access token.
func (u *authUsecase) Login(ctx context.Context, email, password string) (string, error) {
	user, err := u.ValidateCredentials(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := u.jwtGenerator.GenerateToken(user.ID, user.Email)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}

	return token, nil
}
