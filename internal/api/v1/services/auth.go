package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"complaintbox/internal/api/errors"
	"complaintbox/internal/api/v1/dto"
	"complaintbox/internal/app/auth"
	"complaintbox/internal/app/model"
	"complaintbox/internal/app/repository"
)

// invalidCredentials is the single message for every login failure.
// Unknown email and wrong password are deliberately indistinguishable.
const invalidCredentials = "Invalid credentials"

// AuthServiceImpl implements AuthService.
type AuthServiceImpl struct {
	users     repository.UserRepository
	secretKey []byte
	logger    *slog.Logger
}

// NewAuthService creates an auth service signing credentials with
// secretKey.
func NewAuthService(users repository.UserRepository, secretKey []byte, logger *slog.Logger) AuthService {
	return &AuthServiceImpl{
		users:     users,
		secretKey: secretKey,
		logger:    logger,
	}
}

// Register hashes the password, stores the new identity, and issues a
// signed credential. A duplicate email fails validation; the store's
// uniqueness constraint is the only serialization point.
func (s *AuthServiceImpl) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.NewInternalError("Failed to hash password")
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
	}

	if err := s.users.CreateUser(ctx, user); err != nil {
		if stderrors.Is(err, repository.ErrEmailTaken) {
			return nil, errors.NewValidationError("Email already registered", map[string]string{
				"email": "already registered",
			})
		}
		s.logger.Error("failed to create user", "error", err)
		return nil, errors.NewInternalError("Failed to create user")
	}

	return s.issue(user)
}

// Login verifies the credentials and issues a fresh signed credential
// identical in shape to registration's.
func (s *AuthServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if stderrors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.NewBadRequestError(invalidCredentials)
		}
		s.logger.Error("failed to look up user", "error", err)
		return nil, errors.NewInternalError("Failed to look up user")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		return nil, errors.NewBadRequestError(invalidCredentials)
	}

	return s.issue(user)
}

func (s *AuthServiceImpl) issue(user *model.User) (*dto.AuthResponse, error) {
	token, err := auth.GenerateToken(user.ID, s.secretKey, auth.TokenValidity)
	if err != nil {
		s.logger.Error("failed to sign token", "error", err)
		return nil, errors.NewInternalError("Failed to issue credential")
	}

	return &dto.AuthResponse{
		Token: token,
		User: dto.UserResponse{
			ID:    user.ID,
			Name:  user.Name,
			Email: user.Email,
		},
	}, nil
}
