package repository

import (
	"context"
	"errors"
	"time"

	"github.com/medcore/hospital-api/internal/model"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("record not found")

// Window bounds a count query to a half-open time range [From, To).
type Window struct {
	From time.Time
	To   time.Time
}

type UserRepository interface {
	Get(ctx context.Context, id int64) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
	List(ctx context.Context, p model.Pagination) ([]*model.User, error)
	Count(ctx context.Context) (int, error)
}

type PatientRepository interface {
	// NextID reserves the next identity from the patients sequence so the
	// derived patient number can be written in the same insert.
	NextID(ctx context.Context) (int64, error)
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Patient, error)
	Count(ctx context.Context) (int, error)
	ListByCreator(ctx context.Context, userID int64, p model.Pagination) ([]*model.Patient, error)
	CountByCreator(ctx context.Context, userID int64) (int, error)
	FindByNameExact(ctx context.Context, name string) ([]*model.Patient, error)
	FindByNameContains(ctx context.Context, name string) ([]*model.Patient, error)
}

type WardRepository interface {
	Get(ctx context.Context, id int64) (*model.Ward, error)
	List(ctx context.Context, p model.Pagination) ([]*model.Ward, error)
	Count(ctx context.Context) (int, error)
}

type AdmissionRepository interface {
	Create(ctx context.Context, admission *model.Admission) error
	Get(ctx context.Context, id int64) (*model.Admission, error)
	Update(ctx context.Context, admission *model.Admission) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Admission, error)
	Count(ctx context.Context) (int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Admission, error)
	CountByPatient(ctx context.Context, patientID int64) (int, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, prescription *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	Update(ctx context.Context, prescription *model.Prescription) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Prescription, error)
	Count(ctx context.Context) (int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Prescription, error)
	CountByPatient(ctx context.Context, patientID int64) (int, error)
}

type ReferralRepository interface {
	Create(ctx context.Context, referral *model.Referral) error
	Get(ctx context.Context, id int64) (*model.Referral, error)
	Update(ctx context.Context, referral *model.Referral) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Referral, error)
	Count(ctx context.Context) (int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Referral, error)
	CountByPatient(ctx context.Context, patientID int64) (int, error)
	ListByDoctor(ctx context.Context, doctorID int64, p model.Pagination) ([]*model.Referral, error)
	CountByDoctor(ctx context.Context, doctorID int64) (int, error)
}

// StatsRepository backs the per-actor stat summaries. Each count is its own
// query; a nil window means all time.
type StatsRepository interface {
	CountReferrals(ctx context.Context) (int, error)
	CountReferralsCreatedBy(ctx context.Context, userID int64, w *Window) (int, error)
	CountReferralsAssignedTo(ctx context.Context, doctorID int64, w *Window) (int, error)
	CountPatients(ctx context.Context) (int, error)
	CountPatientsCreatedBy(ctx context.Context, userID int64, w *Window) (int, error)
	CountAdmissions(ctx context.Context) (int, error)
	CountAdmissionsCreatedBy(ctx context.Context, userID int64, w *Window) (int, error)
	CountPrescriptions(ctx context.Context) (int, error)
	CountPrescriptionsCreatedBy(ctx context.Context, userID int64, w *Window) (int, error)
}
