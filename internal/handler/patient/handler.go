package patient

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/patient"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service patient.PatientService
}

func NewHandler(service patient.PatientService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	patients := r.Group("/patients",
		auth.Authenticate(),
		auth.RequireAnyRole(model.RoleReceptionist, model.RoleDoctor),
	)
	{
		patients.POST("", h.Create)
		patients.GET("", h.List)
		patients.GET("/:id", h.Get)
		patients.PATCH("/:id", h.Update)
		patients.DELETE("/:id", h.Delete)
	}

	r.GET("/receptionist-patients",
		auth.Authenticate(),
		auth.RequireAnyRole(model.RoleReceptionist),
		h.ListOwn,
	)

	r.GET("/patient/by-name", auth.Authenticate(), h.SearchByName)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	p, err := h.service.Create(c.Request.Context(), actorID, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, present(handler.Resolver(c), p))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	p, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), p))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	var req model.UpdatePatientRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	p, err := h.service.Update(c.Request.Context(), actorID, id, &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), p))
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
	patients, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), patients)))
}

// ListOwn returns only the patients registered by the requesting
// receptionist.
func (h *Handler) ListOwn(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)
	p := handler.BindPagination(c)

	patients, count, err := h.service.ListByCreator(c.Request.Context(), actorID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), patients)))
}

// SearchByName returns an unpaginated list: exact match when any row
// matches, substring fallback otherwise.
func (h *Handler) SearchByName(c *gin.Context) {
	name := c.Query("patient_name")
	if name == "" {
		handler.Error(c, apperrors.FieldError("patient_name", apperrors.MsgBlank))
		return
	}

	patients, err := h.service.SearchByName(c.Request.Context(), name)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, presentList(handler.Resolver(c), patients))
}

func present(r *href.Resolver, p *model.Patient) model.PatientResponse {
	createdBy, updatedBy := handler.AuditURLs(r, p.Audit)
	return model.PatientResponse{
		URL:           r.URL("patients", p.ID),
		PatientNumber: p.PatientNumber,
		NextOfKin:     p.NextOfKin,
		Address:       p.Address,
		DateOfBirth:   p.DateOfBirth.Format(model.DateFormat),
		Age:           p.Age,
		Contacts:      p.Contacts,
		PatientName:   p.PatientName,
		CreatedBy:     createdBy,
		CreatedAt:     p.CreatedAt,
		UpdatedBy:     updatedBy,
		UpdatedAt:     p.UpdatedAt,
	}
}

func presentList(r *href.Resolver, patients []*model.Patient) []model.PatientResponse {
	out := make([]model.PatientResponse, 0, len(patients))
	for _, p := range patients {
		out = append(out, present(r, p))
	}
	return out
}
