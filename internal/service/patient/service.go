package patient

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	"github.com/medcore/hospital-api/internal/service/audit"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/validation"
)

type PatientService interface {
	Create(ctx context.Context, actorID int64, req *model.CreatePatientRequest) (*model.Patient, error)
	Get(ctx context.Context, id int64) (*model.Patient, error)
	Update(ctx context.Context, actorID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Patient, int, error)
	ListByCreator(ctx context.Context, actorID int64, p model.Pagination) ([]*model.Patient, int, error)
	SearchByName(ctx context.Context, name string) ([]*model.Patient, error)
}

type Service struct {
	repo repository.PatientRepository
	now  func() time.Time
}

func NewService(repo repository.PatientRepository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	fields := apperrors.FieldErrors(validation.Struct(req))
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	now := s.now()
	dob, _ := s.validateDOB(req.DateOfBirth, now, fields)
	if err := fields.Err(); err != nil {
		return nil, err
	}

	// The identity is reserved up front so the derived patient number can
	// be written in the same insert.
	id, err := s.repo.NextID(ctx)
	if err != nil {
		return nil, apperrors.Internal(err)
	}

	patient := &model.Patient{
		ID:            id,
		PatientNumber: model.FormatPatientNumber(id),
		NextOfKin:     req.NextOfKin,
		Address:       req.Address,
		DateOfBirth:   dob,
		Age:           model.AgeAt(dob, now),
		Contacts:      req.Contacts,
		PatientName:   req.PatientName,
	}
	audit.StampCreate(&patient.Audit, actorID, now)

	if err := s.repo.Create(ctx, patient); err != nil {
		return nil, apperrors.Internal(err)
	}
	return patient, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return patient, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	fields := apperrors.FieldErrors{}
	now := s.now()

	applyText(fields, "next_of_kin", req.NextOfKin, &patient.NextOfKin)
	applyText(fields, "address", req.Address, &patient.Address)
	applyText(fields, "contacts", req.Contacts, &patient.Contacts)
	applyText(fields, "patient_name", req.PatientName, &patient.PatientName)

	if req.DateOfBirth != nil {
		if dob, ok := s.validateDOB(*req.DateOfBirth, now, fields); ok {
			patient.DateOfBirth = dob
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	// Age reflects the moment of the most recent save, not creation time.
	patient.Age = model.AgeAt(patient.DateOfBirth, now)
	audit.StampUpdate(&patient.Audit, actorID, now)

	if err := s.repo.Update(ctx, patient); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return patient, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Patient, int, error) {
	p.Normalize()
	patients, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return patients, count, nil
}

func (s *Service) ListByCreator(ctx context.Context, actorID int64, p model.Pagination) ([]*model.Patient, int, error) {
	p.Normalize()
	patients, err := s.repo.ListByCreator(ctx, actorID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.CountByCreator(ctx, actorID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return patients, count, nil
}

// SearchByName tries an exact case-insensitive match first and falls back
// to a substring match when nothing matched exactly.
func (s *Service) SearchByName(ctx context.Context, name string) ([]*model.Patient, error) {
	patients, err := s.repo.FindByNameExact(ctx, name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if len(patients) > 0 {
		return patients, nil
	}

	patients, err = s.repo.FindByNameContains(ctx, name)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return patients, nil
}

// validateDOB parses the wire date and enforces date_of_birth <= today.
// Parse failures and future dates are reported on the field; ok is false
// only when the value could not be parsed.
func (s *Service) validateDOB(raw string, now time.Time, fields apperrors.FieldErrors) (time.Time, bool) {
	dob, err := time.Parse(model.DateFormat, raw)
	if err != nil {
		fields.Add("date_of_birth", validation.MsgBadDate)
		return time.Time{}, false
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if dob.After(today) {
		fields.Add("date_of_birth",
			fmt.Sprintf("Date should be less than or equal to %s.", today.Format(model.DateFormat)))
	}
	return dob, true
}

// applyText copies a supplied field onto the record, rejecting blanks.
func applyText(fields apperrors.FieldErrors, name string, src *string, dst *string) {
	if src == nil {
		return
	}
	if *src == "" {
		fields.Add(name, apperrors.MsgBlank)
		return
	}
	*dst = *src
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(err)
	}
	return apperrors.Internal(err)
}
