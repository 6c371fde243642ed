package ward

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/ward"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service ward.WardService
}

func NewHandler(service ward.WardService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes wards read-only to any authenticated actor.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	wards := r.Group("/wards", auth.Authenticate())
	{
		wards.GET("", h.List)
		wards.GET("/:id", h.Get)
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	w, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), w))
}

func (h *Handler) List(c *gin.Context) {
	p := handler.BindPagination(c)
	wards, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	out := make([]model.WardResponse, 0, len(wards))
	r := handler.Resolver(c)
	for _, w := range wards {
		out = append(out, present(r, w))
	}
	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, out))
}

func present(r *href.Resolver, w *model.Ward) model.WardResponse {
	return model.WardResponse{
		URL:  r.URL("wards", w.ID),
		Name: w.Name,
	}
}
