package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"lablend/internal/pkg/response"
)

// Handler manages all HTTP interactions for authentication
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.POST("/register", h.Register)
	r.POST("/login", h.Login)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	if _, err := h.service.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			response.Error(c, http.StatusBadRequest, "Username already exists")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error registering user: "+err.Error())
		return
	}

	response.Text(c, http.StatusCreated, "User registered successfully!")
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Username and password are required")
		return
	}

	token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusBadRequest, "Invalid credentials")
			return
		}
		response.Error(c, http.StatusInternalServerError, "Error logging in: "+err.Error())
		return
	}

	response.JSON(c, http.StatusOK, LoginResponse{
		Token:    token,
		Username: req.Username,
	})
}
