package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ovenside/bakery-admin/internal/admins/domain"
	"github.com/ovenside/bakery-admin/internal/admins/service"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

type AdminHandler struct {
	adminService service.AdminService
}

func NewAdminHandler(as service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: as}
}

func (h *AdminHandler) RegisterRoutes(router gin.IRouter) {
	router.POST("/register-admin", h.Register)
	router.POST("/login-admin", h.Login)
}

func (h *AdminHandler) Register(c *gin.Context) {
	var req domain.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if _, err := h.adminService.Register(c.Request.Context(), req); err != nil {
		if errors.Is(err, service.ErrAdminAlreadyExists) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Admin with email " + req.Email + " already exists"})
			return
		}
		logger.Error("Register: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to register admin"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Admin registered successfully"})
}

func (h *AdminHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if _, err := h.adminService.Login(c.Request.Context(), req); err != nil {
		switch {
		case errors.Is(err, service.ErrAdminNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Admin not found"})
		case errors.Is(err, service.ErrInvalidPassword):
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid password"})
		default:
			logger.Error("Login: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to login"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Admin login successful"})
}
