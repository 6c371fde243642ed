package ward

import (
	"context"
	"errors"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

// WardService is read-only: wards have no write endpoint.
type WardService interface {
	Get(ctx context.Context, id int64) (*model.Ward, error)
	List(ctx context.Context, p model.Pagination) ([]*model.Ward, int, error)
}

type Service struct {
	repo repository.WardRepository
}

func NewService(repo repository.WardRepository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Ward, error) {
	ward, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound(err)
		}
		return nil, apperrors.Internal(err)
	}
	return ward, nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Ward, int, error) {
	p.Normalize()
	wards, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return wards, count, nil
}
