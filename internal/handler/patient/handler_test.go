package patient

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/pkg/auth"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
)

// fakePatientService serves canned data so route wiring and representation
// shape can be exercised without a database.
type fakePatientService struct {
	patients map[int64]*model.Patient
}

func newFakeService() *fakePatientService {
	return &fakePatientService{patients: make(map[int64]*model.Patient)}
}

func (f *fakePatientService) add(p *model.Patient) {
	f.patients[p.ID] = p
}

func (f *fakePatientService) Create(ctx context.Context, actorID int64, req *model.CreatePatientRequest) (*model.Patient, error) {
	if req.PatientName == "" {
		return nil, apperrors.FieldError("patient_name", apperrors.MsgBlank)
	}
	id := int64(len(f.patients) + 1)
	p := &model.Patient{
		ID:            id,
		PatientNumber: model.FormatPatientNumber(id),
		PatientName:   req.PatientName,
		NextOfKin:     req.NextOfKin,
		Address:       req.Address,
		Contacts:      req.Contacts,
		DateOfBirth:   time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC),
		Age:           36,
		Audit: model.Audit{
			CreatedAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
			CreatedBy: &actorID,
		},
	}
	f.add(p)
	return p, nil
}

func (f *fakePatientService) Get(ctx context.Context, id int64) (*model.Patient, error) {
	p, ok := f.patients[id]
	if !ok {
		return nil, apperrors.NotFound(nil)
	}
	return p, nil
}

func (f *fakePatientService) Update(ctx context.Context, actorID, id int64, req *model.UpdatePatientRequest) (*model.Patient, error) {
	return f.Get(ctx, id)
}

func (f *fakePatientService) Delete(ctx context.Context, id int64) error {
	if _, ok := f.patients[id]; !ok {
		return apperrors.NotFound(nil)
	}
	delete(f.patients, id)
	return nil
}

func (f *fakePatientService) List(ctx context.Context, p model.Pagination) ([]*model.Patient, int, error) {
	out := make([]*model.Patient, 0, len(f.patients))
	for _, v := range f.patients {
		out = append(out, v)
	}
	return out, len(out), nil
}

func (f *fakePatientService) ListByCreator(ctx context.Context, actorID int64, p model.Pagination) ([]*model.Patient, int, error) {
	var out []*model.Patient
	for _, v := range f.patients {
		if v.CreatedBy != nil && *v.CreatedBy == actorID {
			out = append(out, v)
		}
	}
	return out, len(out), nil
}

func (f *fakePatientService) SearchByName(ctx context.Context, name string) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, v := range f.patients {
		if v.PatientName == name {
			out = append(out, v)
		}
	}
	return out, nil
}

func newTestRouter(svc *fakePatientService) (*gin.Engine, *auth.JWTService) {
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.Config{Secret: "test-secret", RefreshSecret: "test-refresh"})
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	r := gin.New()
	r.Use(middleware.ErrorHandler())
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), authMw)
	return r, jwtSvc
}

func tokenFor(t *testing.T, jwtSvc *auth.JWTService, id int64, role model.Role) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(&model.User{ID: id, Email: "u@hospital.test", Role: role})
	require.NoError(t, err)
	return token
}

func do(r *gin.Engine, method, path, bearer string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Host = "localhost:8080"
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestPatientsRequireAuthentication(t *testing.T) {
	r, _ := newTestRouter(newFakeService())

	w := do(r, http.MethodGet, "/api/v1/patients", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, w.Body.String())
}

func TestPatientsForbiddenForNurseAndStudent(t *testing.T) {
	r, jwtSvc := newTestRouter(newFakeService())

	for _, role := range []model.Role{model.RoleNurse, model.RoleStudentClinician} {
		w := do(r, http.MethodGet, "/api/v1/patients", tokenFor(t, jwtSvc, 1, role), nil)
		assert.Equal(t, http.StatusForbidden, w.Code, string(role))
		assert.JSONEq(t, `{"detail": "You do not have permission to perform this action."}`, w.Body.String())
	}
}

func TestCreatePatientAsReceptionist(t *testing.T) {
	r, jwtSvc := newTestRouter(newFakeService())

	w := do(r, http.MethodPost, "/api/v1/patients", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), map[string]string{
		"patient_name":  "John Doe",
		"next_of_kin":   "Jane Doe",
		"address":       "12 Hill Road",
		"contacts":      "555-0100",
		"date_of_birth": "1990-03-10",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "P-1", resp["patient_number"])
	assert.Equal(t, "http://localhost:8080/api/v1/patients/1", resp["url"])
	assert.Equal(t, "http://localhost:8080/api/v1/users/7", resp["created_by"])
	assert.Equal(t, "1990-03-10", resp["date_of_birth"])
	assert.Nil(t, resp["updated_by"])
}

func TestCreatePatientValidationErrorShape(t *testing.T) {
	r, jwtSvc := newTestRouter(newFakeService())

	w := do(r, http.MethodPost, "/api/v1/patients", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), map[string]string{
		"patient_name": "",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"patient_name": ["This field may not be blank."]}`, w.Body.String())
}

func TestListPatientsEnvelope(t *testing.T) {
	svc := newFakeService()
	creator := int64(7)
	svc.add(&model.Patient{ID: 1, PatientNumber: "P-1", PatientName: "Ann", Audit: model.Audit{CreatedBy: &creator}})
	r, jwtSvc := newTestRouter(svc)

	w := do(r, http.MethodGet, "/api/v1/patients", tokenFor(t, jwtSvc, 7, model.RoleDoctor), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])
	assert.Nil(t, resp["next"])
	assert.Nil(t, resp["previous"])
	results, ok := resp["results"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestReceptionistPatientsScopedToCreator(t *testing.T) {
	svc := newFakeService()
	mine, other := int64(7), int64(8)
	svc.add(&model.Patient{ID: 1, PatientName: "Mine", Audit: model.Audit{CreatedBy: &mine}})
	svc.add(&model.Patient{ID: 2, PatientName: "Other", Audit: model.Audit{CreatedBy: &other}})
	r, jwtSvc := newTestRouter(svc)

	w := do(r, http.MethodGet, "/api/v1/receptionist-patients", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, float64(1), resp["count"])

	// clinicians have no access to the receptionist view
	w = do(r, http.MethodGet, "/api/v1/receptionist-patients", tokenFor(t, jwtSvc, 7, model.RoleDoctor), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSearchByNameBareArray(t *testing.T) {
	svc := newFakeService()
	creator := int64(7)
	svc.add(&model.Patient{ID: 1, PatientName: "Ann", Audit: model.Audit{CreatedBy: &creator}})
	r, jwtSvc := newTestRouter(svc)

	// any authenticated role may search
	w := do(r, http.MethodGet, "/api/v1/patient/by-name?patient_name=Ann", tokenFor(t, jwtSvc, 7, model.RoleStudentClinician), nil)
	require.Equal(t, http.StatusOK, w.Code)

	var results []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &results))
	require.Len(t, results, 1)
	assert.Equal(t, "Ann", results[0]["patient_name"])
}

func TestSearchByNameBlankQuery(t *testing.T) {
	r, jwtSvc := newTestRouter(newFakeService())

	w := do(r, http.MethodGet, "/api/v1/patient/by-name", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), nil)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"patient_name": ["This field may not be blank."]}`, w.Body.String())
}

func TestGetMissingPatientIs404(t *testing.T) {
	r, jwtSvc := newTestRouter(newFakeService())

	w := do(r, http.MethodGet, "/api/v1/patients/99", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.JSONEq(t, `{"detail": "Not found."}`, w.Body.String())
}

func TestDeletePatient(t *testing.T) {
	svc := newFakeService()
	creator := int64(7)
	svc.add(&model.Patient{ID: 1, PatientName: "Ann", Audit: model.Audit{CreatedBy: &creator}})
	r, jwtSvc := newTestRouter(svc)

	w := do(r, http.MethodDelete, "/api/v1/patients/1", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = do(r, http.MethodDelete, "/api/v1/patients/1", tokenFor(t, jwtSvc, 7, model.RoleReceptionist), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
