package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/pkg/auth"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.JWTService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtSvc := auth.NewJWTService(auth.Config{Secret: "test-secret", RefreshSecret: "test-refresh"})
	m := NewAuthMiddleware(jwtSvc)

	r := gin.New()
	r.GET("/protected", m.Authenticate(), func(c *gin.Context) {
		id, _ := ActorID(c)
		c.JSON(http.StatusOK, gin.H{"actor_id": id})
	})
	r.GET("/reception-only", m.Authenticate(), m.RequireAnyRole(model.RoleReceptionist), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	r.GET("/clinicians-only", m.Authenticate(), m.RequireAnyRole(model.Clinicians...), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, jwtSvc
}

func tokenFor(t *testing.T, jwtSvc *auth.JWTService, role model.Role) string {
	t.Helper()
	token, err := jwtSvc.GenerateAccessToken(&model.User{ID: 7, Email: "u@hospital.test", Role: role})
	require.NoError(t, err)
	return token
}

func doGet(r *gin.Engine, path, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthenticateMissingCredentials(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := doGet(r, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, w.Body.String())
}

func TestAuthenticateBadToken(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	w := doGet(r, "/protected", "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.JSONEq(t, `{"detail": "Authentication credentials were not provided."}`, w.Body.String())
}

func TestAuthenticateMalformedHeader(t *testing.T) {
	r, _ := newAuthTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateValidToken(t *testing.T) {
	r, jwtSvc := newAuthTestRouter(t)

	w := doGet(r, "/protected", tokenFor(t, jwtSvc, model.RoleDoctor))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"actor_id": 7}`, w.Body.String())
}

func TestRequireAnyRoleForbidden(t *testing.T) {
	r, jwtSvc := newAuthTestRouter(t)

	w := doGet(r, "/reception-only", tokenFor(t, jwtSvc, model.RoleStudentClinician))
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.JSONEq(t, `{"detail": "You do not have permission to perform this action."}`, w.Body.String())
}

func TestRequireAnyRoleDisjunction(t *testing.T) {
	r, jwtSvc := newAuthTestRouter(t)

	for _, role := range model.Clinicians {
		w := doGet(r, "/clinicians-only", tokenFor(t, jwtSvc, role))
		assert.Equal(t, http.StatusOK, w.Code, string(role))
	}

	w := doGet(r, "/clinicians-only", tokenFor(t, jwtSvc, model.RoleReceptionist))
	assert.Equal(t, http.StatusForbidden, w.Code)
}
