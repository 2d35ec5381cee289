package history

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"lablend/internal/pkg/response"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/history", h.List)
}

func (h *Handler) List(c *gin.Context) {
	entries, err := h.service.List(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error fetching history: "+err.Error())
		return
	}
	response.JSON(c, http.StatusOK, entries)
}
