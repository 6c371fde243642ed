package admission

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/admission"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service admission.AdmissionService
}

func NewHandler(service admission.AdmissionService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	admissions := r.Group("/admissions", auth.Authenticate())
	{
		clinicians := auth.RequireAnyRole(model.Clinicians...)
		admissions.POST("", clinicians, h.Create)
		admissions.GET("", clinicians, h.List)
		admissions.GET("/:id", clinicians, h.Get)
		admissions.PATCH("/:id", clinicians, h.Update)
		// Only doctors may discharge by deleting an admission.
		admissions.DELETE("/:id", auth.RequireAnyRole(model.RoleDoctor), h.Delete)
	}

	r.GET("/admissions-info",
		auth.Authenticate(),
		auth.RequireAnyRole(model.Clinicians...),
		h.Info,
	)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateAdmissionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	a, err := h.service.Create(c.Request.Context(), actorID, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, present(handler.Resolver(c), a))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	a, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), a))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	var req model.UpdateAdmissionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	a, err := h.service.Update(c.Request.Context(), actorID, id, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), a))
}

func (h *Handler) Delete(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		handler.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *Handler) List(c *gin.Context) {
	p := handler.BindPagination(c)
	admissions, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), admissions)))
}

// Info returns admissions for one patient when patient_id is supplied, the
// global set otherwise.
func (h *Handler) Info(c *gin.Context) {
	patientID, _ := strconv.ParseInt(c.Query("patient_id"), 10, 64)
	p := handler.BindPagination(c)

	admissions, count, err := h.service.ListByPatient(c.Request.Context(), patientID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), admissions)))
}

func present(r *href.Resolver, a *model.Admission) model.AdmissionResponse {
	createdBy, updatedBy := handler.AuditURLs(r, a.Audit)
	var ward *string
	if a.WardID != nil {
		w := r.URL("wards", *a.WardID)
		ward = &w
	}
	return model.AdmissionResponse{
		URL:       r.URL("admissions", a.ID),
		Ward:      ward,
		Patient:   r.URL("patients", a.PatientID),
		CreatedBy: createdBy,
		CreatedAt: a.CreatedAt,
		UpdatedBy: updatedBy,
		UpdatedAt: a.UpdatedAt,
	}
}

func presentList(r *href.Resolver, admissions []*model.Admission) []model.AdmissionResponse {
	out := make([]model.AdmissionResponse, 0, len(admissions))
	for _, a := range admissions {
		out = append(out, present(r, a))
	}
	return out
}
