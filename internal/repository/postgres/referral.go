package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
)

type referralRepository struct {
	db *sqlx.DB
}

func NewReferralRepository(db *sqlx.DB) repository.ReferralRepository {
	return &referralRepository{db: db}
}

func (r *referralRepository) Create(ctx context.Context, referral *model.Referral) error {
	query := `
		INSERT INTO referrals (patient_id, doctor_id, status, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	err := r.db.QueryRowxContext(ctx, query,
		referral.PatientID,
		referral.DoctorID,
		referral.Status,
		referral.CreatedAt,
		referral.CreatedBy,
	).Scan(&referral.ID)
	if err != nil {
		return fmt.Errorf("failed to create referral: %w", err)
	}
	return nil
}

func (r *referralRepository) Get(ctx context.Context, id int64) (*model.Referral, error) {
	var referral model.Referral
	err := r.db.GetContext(ctx, &referral, `SELECT * FROM referrals WHERE id = $1`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &referral, nil
}

func (r *referralRepository) Update(ctx context.Context, referral *model.Referral) error {
	query := `
		UPDATE referrals
		SET patient_id = $1, doctor_id = $2, status = $3, updated_at = $4, updated_by = $5
		WHERE id = $6
	`
	res, err := r.db.ExecContext(ctx, query,
		referral.PatientID,
		referral.DoctorID,
		referral.Status,
		referral.UpdatedAt,
		referral.UpdatedBy,
		referral.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update referral: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *referralRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM referrals WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete referral: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *referralRepository) List(ctx context.Context, p model.Pagination) ([]*model.Referral, error) {
	query := `SELECT * FROM referrals ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	referrals := []*model.Referral{}
	err := r.db.SelectContext(ctx, &referrals, query, p.Limit(), p.Offset())
	return referrals, err
}

func (r *referralRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM referrals`)
	return count, err
}

func (r *referralRepository) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Referral, error) {
	query := `
		SELECT * FROM referrals WHERE patient_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`
	referrals := []*model.Referral{}
	err := r.db.SelectContext(ctx, &referrals, query, patientID, p.Limit(), p.Offset())
	return referrals, err
}

func (r *referralRepository) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM referrals WHERE patient_id = $1`, patientID)
	return count, err
}

func (r *referralRepository) ListByDoctor(ctx context.Context, doctorID int64, p model.Pagination) ([]*model.Referral, error) {
	query := `
		SELECT * FROM referrals WHERE doctor_id = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`
	referrals := []*model.Referral{}
	err := r.db.SelectContext(ctx, &referrals, query, doctorID, p.Limit(), p.Offset())
	return referrals, err
}

func (r *referralRepository) CountByDoctor(ctx context.Context, doctorID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM referrals WHERE doctor_id = $1`, doctorID)
	return count, err
}
