package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	"github.com/medcore/hospital-api/pkg/auth"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/security"
	"github.com/medcore/hospital-api/pkg/validation"
)

// Message matching the login serializer's credential failure.
const msgBadCredentials = "Unable to log in with provided credentials."

type AuthService interface {
	Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error)
	Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenResponse, error)
}

type Service struct {
	users  repository.UserRepository
	jwtSvc *auth.JWTService
}

func NewService(users repository.UserRepository, jwtSvc *auth.JWTService) *Service {
	return &Service{users: users, jwtSvc: jwtSvc}
}

// Login verifies email and password and issues an access/refresh pair with
// the user payload.
func (s *Service) Login(ctx context.Context, req *model.LoginRequest) (*model.TokenResponse, error) {
	if fields := validation.Struct(req); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.FieldError("non_field_errors", msgBadCredentials)
		}
		return nil, apperrors.Internal(err)
	}

	if err := security.CheckPassword(user.PasswordHash, req.Password); err != nil {
		return nil, apperrors.FieldError("non_field_errors", msgBadCredentials)
	}

	return s.issueTokens(user)
}

// Refresh exchanges a valid refresh token for a new pair.
func (s *Service) Refresh(ctx context.Context, req *model.RefreshRequest) (*model.TokenResponse, error) {
	if fields := validation.Struct(req); fields != nil {
		return nil, apperrors.Validation(fields)
	}

	claims, err := s.jwtSvc.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		return nil, apperrors.Unauthenticated()
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.Unauthenticated()
		}
		return nil, apperrors.Internal(err)
	}

	return s.issueTokens(user)
}

func (s *Service) issueTokens(user *model.User) (*model.TokenResponse, error) {
	access, err := s.jwtSvc.GenerateAccessToken(user)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate access token: %w", err))
	}
	refresh, err := s.jwtSvc.GenerateRefreshToken(user)
	if err != nil {
		return nil, apperrors.Internal(fmt.Errorf("failed to generate refresh token: %w", err))
	}

	return &model.TokenResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User: &model.UserResponse{
			Email:       user.Email,
			Username:    user.Username,
			FirstName:   user.FirstName,
			LastName:    user.LastName,
			PhoneNumber: user.PhoneNumber,
			Role:        user.Role,
		},
	}, nil
}
