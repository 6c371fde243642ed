package referral

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/referral"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service referral.ReferralService
}

func NewHandler(service referral.ReferralService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	// Referral mutation deliberately requires the receptionist role on the
	// general endpoint; clinicians consume referrals through the scoped and
	// info views below.
	referrals := r.Group("/referrals",
		auth.Authenticate(),
		auth.RequireAnyRole(model.RoleReceptionist),
	)
	{
		referrals.POST("", h.Create)
		referrals.GET("", h.List)
		referrals.GET("/:id", h.Get)
		referrals.PATCH("/:id", h.Update)
		referrals.DELETE("/:id", h.Delete)
	}

	r.GET("/assigned-patients",
		auth.Authenticate(),
		auth.RequireAnyRole(model.Clinicians...),
		h.ListAssigned,
	)

	r.GET("/referrals-info",
		auth.Authenticate(),
		auth.RequireAnyRole(append([]model.Role{model.RoleReceptionist}, model.Clinicians...)...),
		h.Info,
	)
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreateReferralRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	ref, err := h.service.Create(c.Request.Context(), actorID, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, present(handler.Resolver(c), ref))
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	ref, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), ref))
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	var req model.UpdateReferralRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	actorID, _ := middleware.ActorID(c)
	ref, err := h.service.Update(c.Request.Context(), actorID, id, &req, handler.Resolver(c))
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), ref))
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
	referrals, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), referrals)))
}

// ListAssigned returns the referrals assigned to the requesting clinician.
func (h *Handler) ListAssigned(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)
	p := handler.BindPagination(c)

	referrals, count, err := h.service.ListByDoctor(c.Request.Context(), actorID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), referrals)))
}

// Info returns referrals for one patient when patient_id is supplied, the
// global set otherwise. No actor scoping: this is a global view for
// authorized roles.
func (h *Handler) Info(c *gin.Context) {
	patientID, _ := strconv.ParseInt(c.Query("patient_id"), 10, 64)
	p := handler.BindPagination(c)

	referrals, count, err := h.service.ListByPatient(c.Request.Context(), patientID, p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, presentList(handler.Resolver(c), referrals)))
}

func present(r *href.Resolver, ref *model.Referral) model.ReferralResponse {
	createdBy, updatedBy := handler.AuditURLs(r, ref.Audit)
	return model.ReferralResponse{
		URL:       r.URL("referrals", ref.ID),
		Patient:   r.URL("patients", ref.PatientID),
		Doctor:    handler.UserURL(r, ref.DoctorID),
		Status:    ref.Status,
		CreatedBy: createdBy,
		CreatedAt: ref.CreatedAt,
		UpdatedBy: updatedBy,
		UpdatedAt: ref.UpdatedAt,
	}
}

func presentList(r *href.Resolver, referrals []*model.Referral) []model.ReferralResponse {
	out := make([]model.ReferralResponse, 0, len(referrals))
	for _, ref := range referrals {
		out = append(out, present(r, ref))
	}
	return out
}
