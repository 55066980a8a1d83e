package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ovenside/bakery-admin/internal/orders/domain"
	"github.com/ovenside/bakery-admin/internal/orders/repository"
	"github.com/ovenside/bakery-admin/internal/orders/service"
	"github.com/ovenside/bakery-admin/internal/platform/logger"
)

type OrderHandler struct {
	orderService service.OrderService
}

func NewOrderHandler(os service.OrderService) *OrderHandler {
	return &OrderHandler{orderService: os}
}

func (h *OrderHandler) RegisterRoutes(router gin.IRouter) {
	router.GET("/orders", h.ListOrders)
	router.PUT("/orders/:id/status", h.SetStatus)
	router.PUT("/update_status", h.SetFulfilmentStatus)
}

func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders, err := h.orderService.ListOrders(c.Request.Context())
	if err != nil {
		logger.Error("ListOrders: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve orders"})
		return
	}
	c.JSON(http.StatusOK, orders)
}

func (h *OrderHandler) SetStatus(c *gin.Context) {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order id"})
		return
	}

	var req domain.SetStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Status is required"})
		return
	}

	if err := h.orderService.SetStatus(c.Request.Context(), orderID, req.Status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		logger.Error("SetStatus: service error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Order status updated successfully"})
}

func (h *OrderHandler) SetFulfilmentStatus(c *gin.Context) {
	var req domain.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := h.orderService.SetFulfilmentStatus(c.Request.Context(), req.OrderID, req.NewStatus); err != nil {
		switch {
		case errors.Is(err, service.ErrStatusNotAllowed):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid status. Allowed: 'shipped', 'delivered'"})
		case errors.Is(err, repository.ErrOrderNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		default:
			logger.Error("SetFulfilmentStatus: service error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order status"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("Order %d updated to %s", req.OrderID, req.NewStatus)})
}
