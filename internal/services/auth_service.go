package services

import (
	"context"
	"log/slog"

	"github.com/craftportal/learning-service/internal/apperrors"
	"github.com/craftportal/learning-service/internal/auth"
	"github.com/craftportal/learning-service/internal/models"
	"github.com/craftportal/learning-service/internal/repositories"
	"github.com/craftportal/learning-service/internal/validator"
)

type authService struct {
	repo      repositories.Repository
	tokens    *auth.TokenManager
	logger    *slog.Logger
	validator *validator.Validator
}

func NewAuthService(repo repositories.Repository, tokens *auth.TokenManager, logger *slog.Logger, v *validator.Validator) AuthService {
	return &authService{repo: repo, tokens: tokens, logger: logger, validator: v}
}

// Register creates a user with pending status and the requested role set.
// User row and role rows land in one transaction.
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}

	user := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		Status:       models.StatusPending,
	}
	for _, role := range models.NewRoleSet(req.Roles...).Slice() {
		user.Roles = append(user.Roles, models.UserRole{Role: role})
	}

	err = s.repo.WithTransaction(ctx, func(tx repositories.Repository) error {
		return tx.User().Create(ctx, user)
	})
	if err != nil {
		if apperrors.IsConflict(err) {
			return nil, apperrors.Conflict("a user with this email already exists")
		}
		s.logger.Error("user registration failed", "email", req.Email, "error", err)
		return nil, err
	}

	s.logger.Info("user registered", "user_id", user.ID, "roles", user.RoleSet().Slice())
	return user, nil
}

func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.repo.User().GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			return nil, apperrors.Forbidden("invalid email or password")
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.Forbidden("invalid email or password")
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, apperrors.Unexpected(err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &models.LoginResponse{Token: token, ExpiresAt: expiresAt, User: user}, nil
}
