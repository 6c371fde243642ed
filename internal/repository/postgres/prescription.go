package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
)

type prescriptionRepository struct {
	db *sqlx.DB
}

func NewPrescriptionRepository(db *sqlx.DB) repository.PrescriptionRepository {
	return &prescriptionRepository{db: db}
}

func (r *prescriptionRepository) Create(ctx context.Context, prescription *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (patient_id, start_datetime, end_datetime, description, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		prescription.PatientID,
		prescription.StartDatetime,
		prescription.EndDatetime,
		prescription.Description,
		prescription.CreatedAt,
		prescription.CreatedBy,
	).Scan(&prescription.ID)
	if err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	var prescription model.Prescription
	err := r.db.GetContext(ctx, &prescription, `SELECT * FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &prescription, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, prescription *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET patient_id = $1, start_datetime = $2, end_datetime = $3, description = $4,
			updated_at = $5, updated_by = $6
		WHERE id = $7
	`
	res, err := r.db.ExecContext(ctx, query,
		prescription.PatientID,
		prescription.StartDatetime,
		prescription.EndDatetime,
		prescription.Description,
		prescription.UpdatedAt,
		prescription.UpdatedBy,
		prescription.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update prescription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM prescriptions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete prescription: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *prescriptionRepository) List(ctx context.Context, p model.Pagination) ([]*model.Prescription, error) {
	query := `SELECT * FROM prescriptions ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	prescriptions := []*model.Prescription{}
	err := r.db.SelectContext(ctx, &prescriptions, query, p.Limit(), p.Offset())
	return prescriptions, err
}

func (r *prescriptionRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM prescriptions`)
	return count, err
}

func (r *prescriptionRepository) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Prescription, error) {
	query := `
		SELECT * FROM prescriptions WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`
	prescriptions := []*model.Prescription{}
	err := r.db.SelectContext(ctx, &prescriptions, query, patientID, p.Limit(), p.Offset())
	return prescriptions, err
}

func (r *prescriptionRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM prescriptions WHERE patient_id = $1`, patientID)
	return count, err
}
