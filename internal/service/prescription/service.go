package prescription

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	"github.com/medcore/hospital-api/internal/service/audit"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
	"github.com/medcore/hospital-api/pkg/validation"
)

type PrescriptionService interface {
	Create(ctx context.Context, actorID int64, req *model.CreatePrescriptionRequest, r *href.Resolver) (*model.Prescription, error)
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	Update(ctx context.Context, actorID, id int64, req *model.UpdatePrescriptionRequest, r *href.Resolver) (*model.Prescription, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Prescription, int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Prescription, int, error)
}

type Service struct {
	repo     repository.PrescriptionRepository
	patients repository.PatientRepository
	now      func() time.Time
}

func NewService(repo repository.PrescriptionRepository, patients repository.PatientRepository) *Service {
	return &Service{repo: repo, patients: patients, now: time.Now}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreatePrescriptionRequest, r *href.Resolver) (*model.Prescription, error) {
	fields := apperrors.FieldErrors(validation.Struct(req))
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	now := s.now()

	var patientID int64
	if req.Patient != "" {
		patientID = s.resolvePatient(ctx, r, req.Patient, fields)
	}
	var start, end time.Time
	if req.StartDatetime != "" {
		start = parseFutureDatetime("start_datetime", req.StartDatetime, now, fields)
	}
	if req.EndDatetime != "" {
		end = parseFutureDatetime("end_datetime", req.EndDatetime, now, fields)
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	prescription := &model.Prescription{
		PatientID:     patientID,
		StartDatetime: start,
		EndDatetime:   end,
		Description:   req.Description,
	}
	audit.StampCreate(&prescription.Audit, actorID, now)

	if err := s.repo.Create(ctx, prescription); err != nil {
		return nil, apperrors.Internal(err)
	}
	return prescription, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return prescription, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdatePrescriptionRequest, r *href.Resolver) (*model.Prescription, error) {
	prescription, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	fields := apperrors.FieldErrors{}
	now := s.now()

	if req.Patient != nil {
		if pid := s.resolvePatient(ctx, r, *req.Patient, fields); pid != 0 {
			prescription.PatientID = pid
		}
	}
	if req.StartDatetime != nil {
		if start := parseFutureDatetime("start_datetime", *req.StartDatetime, now, fields); !start.IsZero() {
			prescription.StartDatetime = start
		}
	}
	if req.EndDatetime != nil {
		if end := parseFutureDatetime("end_datetime", *req.EndDatetime, now, fields); !end.IsZero() {
			prescription.EndDatetime = end
		}
	}
	if req.Description != nil {
		if utf8.RuneCountInString(*req.Description) < model.MinDescriptionLength {
			fields.Add("description", "Ensure this field has at least 20 characters.")
		} else {
			prescription.Description = *req.Description
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	audit.StampUpdate(&prescription.Audit, actorID, now)

	if err := s.repo.Update(ctx, prescription); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return prescription, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Prescription, int, error) {
	p.Normalize()
	prescriptions, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return prescriptions, count, nil
}

// ListByPatient backs the prescriptions-info view. A zero patientID means
// the unfiltered, global set.
func (s *Service) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Prescription, int, error) {
	if patientID == 0 {
		return s.List(ctx, p)
	}
	p.Normalize()
	prescriptions, err := s.repo.ListByPatient(ctx, patientID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.CountByPatient(ctx, patientID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return prescriptions, count, nil
}

func (s *Service) resolvePatient(ctx context.Context, r *href.Resolver, raw string, fields apperrors.FieldErrors) int64 {
	id, err := r.Resolve("patients", raw)
	if err != nil {
		fields.Add("patient", apperrors.MsgNoURLMatch)
		return 0
	}
	if _, err := s.patients.Get(ctx, id); err != nil {
		fields.Add("patient", apperrors.MsgNoURLMatch)
		return 0
	}
	return id
}

// parseFutureDatetime parses an RFC 3339 datetime and enforces that it is
// not before the moment of validation.
func parseFutureDatetime(field, raw string, now time.Time, fields apperrors.FieldErrors) time.Time {
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		fields.Add(field, validation.MsgBadDatetime)
		return time.Time{}
	}
	if t.Before(now) {
		fields.Add(field, validation.MsgNotCurrent)
	}
	return t
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(err)
	}
	return apperrors.Internal(err)
}
