package stats

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/stats"
)

type Handler struct {
	service stats.StatsService
}

func NewHandler(service stats.StatsService) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	r.GET("/receptionists/stats",
		auth.Authenticate(),
		auth.RequireAnyRole(model.RoleReceptionist),
		h.Receptionist,
	)
	r.GET("/medics/stats",
		auth.Authenticate(),
		auth.RequireAnyRole(model.Clinicians...),
		h.Clinician,
	)
}

func (h *Handler) Receptionist(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)
	s, err := h.service.ReceptionistStats(c.Request.Context(), actorID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}

func (h *Handler) Clinician(c *gin.Context) {
	actorID, _ := middleware.ActorID(c)
	s, err := h.service.ClinicianStats(c.Request.Context(), actorID)
	if err != nil {
		handler.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, s)
}
