package prescription

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/prescription"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service prescription.PrescriptionService
}

func NewHandler(service prescription.PrescriptionService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	prescriptions := r.Group("/prescriptions", auth.Authenticate())
	{
		clinicians := auth.RequireAnyRole(model.Clinicians...)
		prescriptions.POST("", clinicians, h.Create)
		prescriptions.GET("", clinicians, h.List)
		prescriptions.GET("/:id", clinicians, h.Get)
		prescriptions.PATCH("/:id", clinicians, h.Update)
		// Only doctors may take a prescription off the record.
		prescriptions.DELETE("/:id", auth.RequireAnyRole(model.RoleDoctor), h.Delete)
	}

	r.GET("/prescriptions-info",
		auth.Authenticate(),
		auth.RequireAnyRole(model.Clinicians...),
		h.Info,
	)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	pr, err := h.service.Create(c.Request.Context(), actorID, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, present(handler.Resolver(c), pr))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	pr, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), pr))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	var req model.UpdatePrescriptionRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	pr, err := h.service.Update(c.Request.Context(), actorID, id, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), pr))
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
	prescriptions, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), prescriptions)))
}

// Info returns prescriptions for one patient when patient_id is supplied,
// the global set otherwise.
func (h *Handler) Info(c *gin.Context) {
	patientID, _ := strconv.ParseInt(c.Query("patient_id"), 10, 64)
	p := handler.BindPagination(c)

	prescriptions, count, err := h.service.ListByPatient(c.Request.Context(), patientID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), prescriptions)))
}

func present(r *href.Resolver, pr *model.Prescription) model.PrescriptionResponse {
	createdBy, updatedBy := handler.AuditURLs(r, pr.Audit)
	return model.PrescriptionResponse{
		URL:           r.URL("prescriptions", pr.ID),
		Patient:       r.URL("patients", pr.PatientID),
		StartDatetime: pr.StartDatetime,
		EndDatetime:   pr.EndDatetime,
		Description:   pr.Description,
		CreatedBy:     createdBy,
		CreatedAt:     pr.CreatedAt,
		UpdatedBy:     updatedBy,
		UpdatedAt:     pr.UpdatedAt,
	}
}

func presentList(r *href.Resolver, prescriptions []*model.Prescription) []model.PrescriptionResponse {
	out := make([]model.PrescriptionResponse, 0, len(prescriptions))
	for _, pr := range prescriptions {
		out = append(out, present(r, pr))
	}
	return out
}
