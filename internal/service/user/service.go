package user

import (
	"context"
	"errors"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

// UserService is read-only over HTTP; user administration is handled out of
// band.
type UserService interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	List(ctx context.Context, p model.Pagination) ([]*model.User, int, error)
}

type Service struct {
	repo repository.UserRepository
}

func NewService(repo repository.UserRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(err)
		}
		return nil, apperrors.Internal(err)
	}
	return user, nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.User, int, error) {
	p.Normalize()
	users, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return users, count, nil
}
