package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/middleware"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/user"
	apperrors "github.com/medcore/hospital-api/pkg/errors"
	"github.com/medcore/hospital-api/pkg/href"
)

type Handler struct {
	service user.UserService
}

func NewHandler(service user.UserService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes users read-only to any authenticated actor.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, auth *middleware.AuthMiddleware) {
	users := r.Group("/users", auth.Authenticate())
	{
		users.GET("", h.List)
		users.GET("/:id", h.Get)
	}
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := handler.ParseID(c)
	if !ok {
		handler.Error(c, apperrors.NotFound(nil))
		return
	}

	u, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, present(handler.Resolver(c), u))
}

func (h *Handler) List(c *gin.Context) {
	p := handler.BindPagination(c)
	users, count, err := h.service.List(c.Request.Context(), p)
	if err != nil {
		handler.Error(c, err)
		return
	}

	out := make([]model.UserResponse, 0, len(users))
	r := handler.Resolver(c)
	for _, u := range users {
		out = append(out, present(r, u))
	}
	c.JSON(http.StatusOK, handler.NewPageResponse(c, count, p, out))
}

func present(r *href.Resolver, u *model.User) model.UserResponse {
	return model.UserResponse{
		URL:         r.URL("users", u.ID),
		Email:       u.Email,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		PhoneNumber: u.PhoneNumber,
		Role:        u.Role,
	}
}
