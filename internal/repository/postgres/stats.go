package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/repository"
)

type statsRepository struct {
	db *sqlx.DB
}

func NewStatsRepository(db *sqlx.DB) repository.StatsRepository {
	return &statsRepository{db: db}
}

// count runs a single COUNT query, optionally narrowed to a creator-style
// column and a time window. Each stat is an independent query.
func (r *statsRepository) count(ctx context.Context, table, byColumn string, userID int64, w *repository.Window) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s`, table)
	args := []interface{}{}

	if byColumn != "" {
		query += fmt.Sprintf(` WHERE %s = $1`, byColumn)
		args = append(args, userID)
		if w != nil {
			query += ` AND created_at >= $2 AND created_at < $3`
			args = append(args, w.From, w.To)
		}
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("failed to count %s: %w", table, err)
	}
	return count, nil
}

func (r *statsRepository) CountReferrals(ctx context.Context) (int, error) {
	return r.count(ctx, "referrals", "", 0, nil)
}

func (r *statsRepository) CountReferralsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	return r.count(ctx, "referrals", "created_by", userID, w)
}

func (r *statsRepository) CountReferralsAssignedTo(ctx context.Context, doctorID int64, w *repository.Window) (int, error) {
	return r.count(ctx, "referrals", "doctor_id", doctorID, w)
}

func (r *statsRepository) CountPatients(ctx context.Context) (int, error) {
	return r.count(ctx, "patients", "", 0, nil)
}

func (r *statsRepository) CountPatientsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	return r.count(ctx, "patients", "created_by", userID, w)
}

func (r *statsRepository) CountAdmissions(ctx context.Context) (int, error) {
	return r.count(ctx, "admissions", "", 0, nil)
}

func (r *statsRepository) CountAdmissionsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	return r.count(ctx, "admissions", "created_by", userID, w)
}

func (r *statsRepository) CountPrescriptions(ctx context.Context) (int, error) {
	return r.count(ctx, "prescriptions", "", 0, nil)
}

func (r *statsRepository) CountPrescriptionsCreatedBy(ctx context.Context, userID int64, w *repository.Window) (int, error) {
	return r.count(ctx, "prescriptions", "created_by", userID, w)
}
