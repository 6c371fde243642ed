package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medcore/hospital-api/internal/handler"
	"github.com/medcore/hospital-api/internal/model"
	"github.com/medcore/hospital-api/internal/service/auth"
)

type Handler struct {
	service auth.AuthService
}

func NewHandler(service auth.AuthService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes exposes the anonymous auth endpoints.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	ar := r.Group("/auth")
	{
		ar.POST("/login", h.Login)
		ar.POST("/refresh", h.Refresh)
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}

func (h *Handler) Refresh(c *gin.Context) {
	var req model.RefreshRequest
	if !handler.BindJSON(c, &req) {
		return
	}

	tokens, err := h.service.Refresh(c.Request.Context(), &req)
	if err != nil {
		handler.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, tokens)
}
