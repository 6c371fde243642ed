package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) NextID(ctx context.Context) (int64, error) {
	var id int64
	err := r.db.GetContext(ctx, &id, `SELECT nextval(pg_get_serial_sequence('patients', 'id'))`)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve patient id: %w", err)
	}
	return id, nil
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (id, patient_number, next_of_kin, address, date_of_birth,
			age, contacts, patient_name, created_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := r.db.ExecContext(ctx, query,
		patient.ID,
		patient.PatientNumber,
		patient.NextOfKin,
		patient.Address,
		patient.DateOfBirth,
		patient.Age,
		patient.Contacts,
		patient.PatientName,
		patient.CreatedAt,
		patient.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, `SELECT * FROM patients WHERE id = $1`, id)
	if err != nil {
		return nil, wrapNotFound(err)
	}
	return &patient, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET next_of_kin = $1, address = $2, date_of_birth = $3, age = $4,
			contacts = $5, patient_name = $6, updated_at = $7, updated_by = $8
		WHERE id = $9
	`
	res, err := r.db.ExecContext(ctx, query,
		patient.NextOfKin,
		patient.Address,
		patient.DateOfBirth,
		patient.Age,
		patient.Contacts,
		patient.PatientName,
		patient.UpdatedAt,
		patient.UpdatedBy,
		patient.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM patients WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete patient: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *patientRepository) List(ctx context.Context, p model.Pagination) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY created_at DESC, id DESC LIMIT $1 OFFSET $2`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, p.Limit(), p.Offset())
	return patients, err
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`)
	return count, err
}

func (r *patientRepository) ListByCreator(ctx context.Context, userID int64, p model.Pagination) ([]*model.Patient, error) {
	query := `
		SELECT * FROM patients WHERE created_by = $1
		ORDER BY created_at DESC, id DESC LIMIT $2 OFFSET $3
	`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, userID, p.Limit(), p.Offset())
	return patients, err
}

func (r *patientRepository) CountByCreator(ctx context.Context, userID int64) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients WHERE created_by = $1`, userID)
	return count, err
}

func (r *patientRepository) FindByNameExact(ctx context.Context, name string) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE LOWER(patient_name) = LOWER($1) ORDER BY created_at DESC, id DESC`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, name)
	return patients, err
}

func (r *patientRepository) FindByNameContains(ctx context.Context, name string) ([]*model.Patient, error) {
	query := `SELECT * FROM patients WHERE patient_name ILIKE '%' || $1 || '%' ESCAPE '\' ORDER BY created_at DESC, id DESC`
	patients := []*model.Patient{}
	err := r.db.SelectContext(ctx, &patients, query, escapeLike(name))
	return patients, err
}

// escapeLike neutralizes LIKE metacharacters so the search term matches
// literally.
func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
