package referral

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/repository"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type fakeReferralRepo struct {
	nextID    int64
	referrals map[int64]*model.Referral
}

func newFakeReferralRepo() *fakeReferralRepo {
	return &fakeReferralRepo{referrals: make(map[int64]*model.Referral)}
}

func (f *fakeReferralRepo) Create(ctx context.Context, r *model.Referral) error {
	f.nextID++
	r.ID = f.nextID
	cp := *r
	f.referrals[r.ID] = &cp
	return nil
}

func (f *fakeReferralRepo) Get(ctx context.Context, id int64) (*model.Referral, error) {
	r, ok := f.referrals[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReferralRepo) Update(ctx context.Context, r *model.Referral) error {
	if _, ok := f.referrals[r.ID]; !ok {
		return repository.ErrNotFound
	}
	cp := *r
	f.referrals[r.ID] = &cp
	return nil
}

func (f *fakeReferralRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.referrals[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.referrals, id)
	return nil
}

func (f *fakeReferralRepo) List(ctx context.Context, p model.Pagination) ([]*model.Referral, error) {
	out := make([]*model.Referral, 0, len(f.referrals))
	for _, r := range f.referrals {
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeReferralRepo) Count(ctx context.Context) (int, error) { return len(f.referrals), nil }

func (f *fakeReferralRepo) ListByPatient(ctx context.Context, patientID int64, p model.Pagination) ([]*model.Referral, error) {
	var out []*model.Referral
	for _, r := range f.referrals {
		if r.PatientID == patientID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReferralRepo) CountByPatient(ctx context.Context, patientID int64) (int, error) {
	items, _ := f.ListByPatient(ctx, patientID, model.Pagination{})
	return len(items), nil
}

func (f *fakeReferralRepo) ListByDoctor(ctx context.Context, doctorID int64, p model.Pagination) ([]*model.Referral, error) {
	var out []*model.Referral
	for _, r := range f.referrals {
		if r.DoctorID != nil && *r.DoctorID == doctorID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeReferralRepo) CountByDoctor(ctx context.Context, doctorID int64) (int, error) {
	items, _ := f.ListByDoctor(ctx, doctorID, model.Pagination{})
	return len(items), nil
}

// fakeEntityStore satisfies the patient and user lookups the referral
// service performs when resolving hyperlinks.
type fakePatientStore struct{ ids map[int64]bool }

func (f *fakePatientStore) Get(ctx context.Context, id int64) (*model.Patient, error) {
	if !f.ids[id] {
		return nil, repository.ErrNotFound
	}
	return &model.Patient{ID: id}, nil
}

func (f *fakePatientStore) NextID(ctx context.Context) (int64, error)              { return 0, nil }
func (f *fakePatientStore) Create(ctx context.Context, p *model.Patient) error     { return nil }
func (f *fakePatientStore) Update(ctx context.Context, p *model.Patient) error     { return nil }
func (f *fakePatientStore) Delete(ctx context.Context, id int64) error             { return nil }
func (f *fakePatientStore) Count(ctx context.Context) (int, error)                 { return 0, nil }
func (f *fakePatientStore) CountByCreator(ctx context.Context, id int64) (int, error) {
	return 0, nil
}
func (f *fakePatientStore) List(ctx context.Context, p model.Pagination) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientStore) ListByCreator(ctx context.Context, id int64, p model.Pagination) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientStore) FindByNameExact(ctx context.Context, name string) ([]*model.Patient, error) {
	return nil, nil
}
func (f *fakePatientStore) FindByNameContains(ctx context.Context, name string) ([]*model.Patient, error) {
	return nil, nil
}

type fakeUserStore struct{ ids map[int64]bool }

func (f *fakeUserStore) Get(ctx context.Context, id int64) (*model.User, error) {
	if !f.ids[id] {
		return nil, repository.ErrNotFound
	}
	return &model.User{ID: id, Role: model.RoleDoctor}, nil
}

func (f *fakeUserStore) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return nil, repository.ErrNotFound
}
func (f *fakeUserStore) List(ctx context.Context, p model.Pagination) ([]*model.User, error) {
	return nil, nil
}
func (f *fakeUserStore) Count(ctx context.Context) (int, error) { return 0, nil }

func newTestService() (*Service, *fakeReferralRepo) {
	repo := newFakeReferralRepo()
	svc := NewService(
		repo,
		&fakePatientStore{ids: map[int64]bool{1: true}},
		&fakeUserStore{ids: map[int64]bool{5: true}},
	)
	svc.now = func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) }
	return svc, repo
}

func resolver() *href.Resolver {
	return href.New("http://localhost:8080/api/v1")
}

func TestCreateDefaultsStatus(t *testing.T) {
	svc, _ := newTestService()

	ref, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/patients/1",
		Doctor:  "http://localhost:8080/api/v1/users/5",
	}, resolver())
	require.NoError(t, err)

	assert.Equal(t, model.ReferralNotSeen, ref.Status)
	assert.Equal(t, int64(1), ref.PatientID)
	require.NotNil(t, ref.DoctorID)
	assert.Equal(t, int64(5), *ref.DoctorID)
	require.NotNil(t, ref.CreatedBy)
	assert.Equal(t, int64(7), *ref.CreatedBy)
}

func TestCreateRejectsUnresolvableHyperlinks(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/wards/1",
		Doctor:  "not a hyperlink",
	}, resolver())
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, []string{apperrors.MsgNoURLMatch}, appErr.Fields["patient"])
	assert.Equal(t, []string{apperrors.MsgNoURLMatch}, appErr.Fields["doctor"])
}

func TestCreateRejectsMissingTargetRows(t *testing.T) {
	svc, _ := newTestService()

	// well-formed URLs pointing at rows that do not exist
	_, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/patients/999",
		Doctor:  "http://localhost:8080/api/v1/users/999",
	}, resolver())
	require.Error(t, err)

	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, []string{apperrors.MsgNoURLMatch}, appErr.Fields["patient"])
	assert.Equal(t, []string{apperrors.MsgNoURLMatch}, appErr.Fields["doctor"])
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/patients/1",
		Doctor:  "http://localhost:8080/api/v1/users/5",
		Status:  "Dismissed",
	}, resolver())
	require.Error(t, err)

	appErr, _ := apperrors.AsAppError(err)
	assert.Equal(t, []string{`"Dismissed" is not a valid choice.`}, appErr.Fields["status"])
}

func TestUpdatePreservesStatusWhenNotSupplied(t *testing.T) {
	svc, _ := newTestService()

	ref, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/patients/1",
		Doctor:  "http://localhost:8080/api/v1/users/5",
		Status:  string(model.ReferralInProgress),
	}, resolver())
	require.NoError(t, err)

	doctor := "http://localhost:8080/api/v1/users/5"
	updated, err := svc.Update(context.Background(), 8, ref.ID, &model.UpdateReferralRequest{
		Doctor: &doctor,
	}, resolver())
	require.NoError(t, err)

	assert.Equal(t, model.ReferralInProgress, updated.Status)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, int64(8), *updated.UpdatedBy)
}

func TestUpdateSetsStatusWhenSupplied(t *testing.T) {
	svc, _ := newTestService()

	ref, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
		Patient: "http://localhost:8080/api/v1/patients/1",
		Doctor:  "http://localhost:8080/api/v1/users/5",
	}, resolver())
	require.NoError(t, err)

	seen := string(model.ReferralSeen)
	updated, err := svc.Update(context.Background(), 8, ref.ID, &model.UpdateReferralRequest{
		Status: &seen,
	}, resolver())
	require.NoError(t, err)
	assert.Equal(t, model.ReferralSeen, updated.Status)
}

func TestListByPatientZeroMeansGlobal(t *testing.T) {
	svc, _ := newTestService()

	for i := 0; i < 3; i++ {
		_, err := svc.Create(context.Background(), 7, &model.CreateReferralRequest{
			Patient: "http://localhost:8080/api/v1/patients/1",
			Doctor:  "http://localhost:8080/api/v1/users/5",
		}, resolver())
		require.NoError(t, err)
	}

	_, count, err := svc.ListByPatient(context.Background(), 0, model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, count, err = svc.ListByPatient(context.Background(), 1, model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	_, count, err = svc.ListByPatient(context.Background(), 42, model.Pagination{})
	require.NoError(t, err)
	assert.Equal(t, 0, count)
}
