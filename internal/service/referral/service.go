package referral

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

type ReferralService interface {
	Create(ctx context.Context, actorID int64, req *model.CreateReferralRequest, r *href.Resolver) (*model.Referral, error)
	Get(ctx context.Context, id int64) (*model.Referral, error)
	Update(ctx context.Context, actorID, id int64, req *model.UpdateReferralRequest, r *href.Resolver) (*model.Referral, error)
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, p model.Pagination) ([]*model.Referral, int, error)
	ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Referral, int, error)
	ListByDoctor(ctx context.Context, doctorID int64, p model.Pagination) ([]*model.Referral, int, error)
}

type Service struct {
	repo     repository.ReferralRepository
	patients repository.PatientRepository
	users    repository.UserRepository
	now      func() time.Time
}

func NewService(repo repository.ReferralRepository, patients repository.PatientRepository, users repository.UserRepository) *Service {
	return &Service{repo: repo, patients: patients, users: users, now: time.Now}
}

func (s *Service) Create(ctx context.Context, actorID int64, req *model.CreateReferralRequest, r *href.Resolver) (*model.Referral, error) {
	fields := apperrors.FieldErrors(validation.Struct(req))
	if fields == nil {
		fields = apperrors.FieldErrors{}
	}

	var patientID, doctorID int64
	if req.Patient != "" {
		patientID = s.resolvePatient(ctx, r, req.Patient, fields)
	}
	if req.Doctor != "" {
		doctorID = s.resolveDoctor(ctx, r, req.Doctor, fields)
	}

	status := model.ReferralNotSeen
	if req.Status != "" {
		status = model.ReferralStatus(req.Status)
		if !status.Valid() {
			fields.Add("status", `"`+req.Status+`" is not a valid choice.`)
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	referral := &model.Referral{
		PatientID: patientID,
		DoctorID:  &doctorID,
		Status:    status,
	}
	audit.StampCreate(&referral.Audit, actorID, s.now())

	if err := s.repo.Create(ctx, referral); err != nil {
		return nil, apperrors.Internal(err)
	}
	return referral, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*model.Referral, error) {
	referral, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}
	return referral, nil
}

func (s *Service) Update(ctx context.Context, actorID, id int64, req *model.UpdateReferralRequest, r *href.Resolver) (*model.Referral, error) {
	referral, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, notFoundOrInternal(err)
	}

	fields := apperrors.FieldErrors{}

	if req.Patient != nil {
		if pid := s.resolvePatient(ctx, r, *req.Patient, fields); pid != 0 {
			referral.PatientID = pid
		}
	}
	if req.Doctor != nil {
		if did := s.resolveDoctor(ctx, r, *req.Doctor, fields); did != 0 {
			referral.DoctorID = &did
		}
	}
	// Status stays untouched unless explicitly supplied.
	if req.Status != nil {
		status := model.ReferralStatus(*req.Status)
		if !status.Valid() {
			fields.Add("status", `"`+*req.Status+`" is not a valid choice.`)
		} else {
			referral.Status = status
		}
	}

	if err := fields.Err(); err != nil {
		return nil, err
	}

	audit.StampUpdate(&referral.Audit, actorID, s.now())

	if err := s.repo.Update(ctx, referral); err != nil {
		return nil, notFoundOrInternal(err)
	}
	return referral, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return notFoundOrInternal(err)
	}
	return nil
}

func (s *Service) List(ctx context.Context, p model.Pagination) ([]*model.Referral, int, error) {
	p.Normalize()
	referrals, err := s.repo.List(ctx, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return referrals, count, nil
}

// ListByPatient backs the referrals-info view. A zero patientID means the
// unfiltered, global set.
func (s *Service) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Referral, int, error) {
	if patientID == 0 {
		return s.List(ctx, p)
	}
	p.Normalize()
	referrals, err := s.repo.ListByPatient(ctx, patientID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.CountByPatient(ctx, patientID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return referrals, count, nil
}

// ListByDoctor backs the assigned-to-me view for clinicians.
func (s *Service) ListByDoctor(ctx context.Context, doctorID int64, p model.Pagination) ([]*model.Referral, int, error) {
	p.Normalize()
	referrals, err := s.repo.ListByDoctor(ctx, doctorID, p)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	count, err := s.repo.CountByDoctor(ctx, doctorID)
	if err != nil {
		return nil, 0, apperrors.Internal(err)
	}
	return referrals, count, nil
}

// resolvePatient turns a hyperlink reference into an existing patient id.
// A malformed URL and a URL for a missing row both read the same to the
// client: no URL match.
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

func (s *Service) resolveDoctor(ctx context.Context, r *href.Resolver, raw string, fields apperrors.FieldErrors) int64 {
	id, err := r.Resolve("users", raw)
	if err != nil {
		fields.Add("doctor", apperrors.MsgNoURLMatch)
		return 0
	}
	if _, err := s.users.Get(ctx, id); err != nil {
		fields.Add("doctor", apperrors.MsgNoURLMatch)
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
