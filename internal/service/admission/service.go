package admission

import (
	"context"
	"errors"
	"time"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	"github.com/medcore/hospital-api/internal/service/audit"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
	"github.com/medcore/hospital-api/pkg/validation"
)

type AdmissionService interface {
	Create(ctx context.Context, actorID int64, req *model.CreateAdmissionRequest, r *href.Resolver) (*model.Admission, error)
	Get(ctx context.Context, id int64) (*model.Admission, error)
	Update(ctx context.Context, actorID, id int64, req *model.UpdateAdmissionRequest, r *href.Resolver) (*model.Admission, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Admission, int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Admission, int, error)
}

type Service struct {
	repo     repository.AdmissionRepository
	patients repository.PatientRepository
	wards    repository.WardRepository
	now      func() time.Time
}

func NewService(repo repository.AdmissionRepository, patients repository.PatientRepository, wards repository.WardRepository) *Service {
	return &Service{repo: repo, patients: patients, wards: wards, now: time.Now}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreateAdmissionRequest, r *href.Resolver) (*model.Admission, error) {
	fields := apperrors.FieldErrors(validation.Struct(req))
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	var patientID, wardID int64
	if req.Patient != "" {
		patientID = s.resolvePatient(ctx, r, req.Patient, fields)
	}
	if req.Ward != "" {
		wardID = s.resolveWard(ctx, r, req.Ward, fields)
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	admission := &model.Admission{
		WardID:    &wardID,
		PatientID: patientID,
	}
	audit.StampCreate(&admission.Audit, actorID, s.now())

	if err := s.repo.Create(ctx, admission); err != nil {
		return nil, apperrors.Internal(err)
	}
	return admission, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return admission, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdateAdmissionRequest, r *href.Resolver) (*model.Admission, error) {
	admission, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	fields := apperrors.FieldErrors{}

	if req.Patient != nil {
		if pid := s.resolvePatient(ctx, r, *req.Patient, fields); pid != 0 {
			admission.PatientID = pid
		}
	}
	if req.Ward != nil {
		if wid := s.resolveWard(ctx, r, *req.Ward, fields); wid != 0 {
			admission.WardID = &wid
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	audit.StampUpdate(&admission.Audit, actorID, s.now())

	if err := s.repo.Update(ctx, admission); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return admission, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Admission, int, error) {
	p.Normalize()
	admissions, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return admissions, count, nil
}

// ListByPatient backs the admissions-info view. A zero patientID means the
// unfiltered, global set.
func (s *Service) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Admission, int, error) {
	if patientID == 0 {
		return s.List(ctx, p)
	}
	p.Normalize()
	admissions, err := s.repo.ListByPatient(ctx, patientID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.CountByPatient(ctx, patientID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return admissions, count, nil
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

func (s *Service) resolveWard(ctx context.Context, r *href.Resolver, raw string, fields apperrors.FieldErrors) int64 {
	id, err := r.Resolve("wards", raw)
	if err != nil {
		fields.Add("ward", apperrors.MsgNoURLMatch)
		return 0
	}
	if _, err := s.wards.Get(ctx, id); err != nil {
		fields.Add("ward", apperrors.MsgNoURLMatch)
		return 0
	}
	return id
}

func notFoundOrInternal(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return apperrors.NotFound(err)
	}
	return apperrors.Internal(err)
}
