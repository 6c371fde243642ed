package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
)

type admissionRepository struct {
	db *sqlx.DB
}

func NewAdmissionRepository(db *sqlx.DB) repository.AdmissionRepository {
	return &admissionRepository{db: db}
}

func (r *admissionRepository) Create(ctx context.Context, admission *model.Admission) error {
	query := `
		INSERT INTO admissions (ward_id, patient_id, created_at, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		admission.WardID,
		admission.PatientID,
		admission.CreatedAt,
		admission.CreatedBy,
	).Scan(&admission.ID)
	if err != nil {
		return fmt.Errorf("failed to create admission: %w", err)
	}
	return nil
}

func (r *admissionRepository) Get(ctx context.Context, id int64) (*model.Admission, error) {
	var admission model.Admission
	err := r.db.GetContext(ctx, &admission, `SELECT * FROM admissions WHERE id = $1`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &admission, nil
}

func (r *admissionRepository) Update(ctx context.Context, admission *model.Admission) error {
	query := `
		UPDATE admissions
		SET ward_id = $1, patient_id = $2, updated_at = $3, updated_by = $4
		WHERE id = $5
	`
	res, err := r.db.ExecContext(ctx, query,
		admission.WardID,
		admission.PatientID,
		admission.UpdatedAt,
		admission.UpdatedBy,
		admission.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update admission: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *admissionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM admissions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete admission: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *admissionRepository) List(ctx context.Context, p model.Pagination) ([]*model.Admission, error) {
	query := `SELECT * FROM admissions ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions, query, p.Limit(), p.Offset())
	return admissions, err
}

func (r *admissionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admissions`)
	return count, err
}

func (r *admissionRepository) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Admission, error) {
	query := `
		SELECT * FROM admissions WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`
	admissions := []*model.Admission{}
	err := r.db.SelectContext(ctx, &admissions, query, patientID, p.Limit(), p.Offset())
	return admissions, err
}

func (r *admissionRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM admissions WHERE patient_id = $1`, patientID)
	return count, err
}
