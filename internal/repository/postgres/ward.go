package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
)

type wardRepository struct {
	db *sqlx.DB
}

func NewWardRepository(db *sqlx.DB) repository.WardRepository {
	return &wardRepository{db: db}
}

func (r *wardRepository) Get(ctx context.Context, id int64) (*model.Ward, error) {
	var ward model.Ward
	err := r.db.GetContext(ctx, &ward, `SELECT * FROM wards WHERE id = $1`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &ward, nil
}

func (r *wardRepository) List(ctx context.Context, p model.Pagination) ([]*model.Ward, error) {
	query := `SELECT * FROM wards ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	wards := []*model.Ward{}
	err := r.db.SelectContext(ctx, &wards, query, p.Limit(), p.Offset())
	return wards, err
}

func (r *wardRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM wards`)
	return count, err
}
