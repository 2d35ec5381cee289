package registry

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"lablend/internal/pkg/response"
)

// Handler manages all HTTP interactions for the tool registry
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the read-only tool listings.
func (h *Handler) RegisterPublicRoutes(r gin.IRoutes) {
	r.GET("/tools", h.ListTools)
	r.GET("/search", h.SearchTools)
}

// RegisterProtectedRoutes mounts everything that mutates state.
func (h *Handler) RegisterProtectedRoutes(r gin.IRoutes) {
	r.POST("/add-tool", h.AddTool)
	r.PATCH("/borrow/:id", h.Borrow)
	r.PATCH("/return/:id", h.Return)
	r.DELETE("/delete-tool/:id", h.DeleteTool)
}

func (h *Handler) AddTool(c *gin.Context) {
	var req AddToolRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Error saving tool: invalid request body")
		return
	}

	tool, err := h.service.AddTool(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			response.Error(c, http.StatusBadRequest, "Tool name is required")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error saving tool: "+err.Error())
		return
	}

	response.JSON(c, http.StatusCreated, tool)
}

func (h *Handler) ListTools(c *gin.Context) {
	tools, err := h.service.ListTools(c.Request.Context())
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error fetching tools: "+err.Error())
		return
	}
	response.JSON(c, http.StatusOK, tools)
}

func (h *Handler) SearchTools(c *gin.Context) {
	tools, err := h.service.SearchTools(c.Request.Context(), c.Query("name"), c.Query("category"))
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "Error searching tools: "+err.Error())
		return
	}
	response.JSON(c, http.StatusOK, tools)
}

func (h *Handler) Borrow(c *gin.Context) {
	var req BorrowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "borrowerName is required")
		return
	}

	tool, err := h.service.Borrow(c.Request.Context(), c.Param("id"), req.BorrowerName)
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			response.Error(c, http.StatusNotFound, "Tool not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error: "+err.Error())
		return
	}

	response.Text(c, http.StatusOK, fmt.Sprintf("Success! %s is now borrowed by %s", tool.Name, tool.BorrowerName))
}

func (h *Handler) Return(c *gin.Context) {
	_, err := h.service.Return(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrToolNotFound) {
			response.Error(c, http.StatusNotFound, "Tool not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Server Error")
		return
	}

	response.Text(c, http.StatusOK, "Returned successfully")
}

func (h *Handler) DeleteTool(c *gin.Context) {
	if err := h.service.DeleteTool(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrToolNotFound) {
			response.Error(c, http.StatusNotFound, "Tool not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error deleting tool: "+err.Error())
		return
	}

	response.Text(c, http.StatusOK, "Tool removed successfully")
}
