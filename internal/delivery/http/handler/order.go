package handler

import (
	"net/http"

	"bookstore-service/internal/delivery/http/middleware"
	"bookstore-service/internal/domain/entities"
	"bookstore-service/internal/usecase"

	"github.com/gin-gonic/gin"
)

func (h *Handler) CreateOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.respondError(c, usecase.ErrUnauthorized)
		return
	}

	var req CreateOrderRequest
	if !h.bind(c, &req) {
		return
	}

	details, err := h.orders.CreateOrder(c.Request.Context(), user.ID, req.toInput())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toOrderResponse(details))
}

func (h *Handler) ListMyOrders(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.respondError(c, usecase.ErrUnauthorized)
		return
	}

	orders, err := h.orders.ListUserOrders(c.Request.Context(), user.ID)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponses(orders))
}

func (h *Handler) ListAllOrders(c *gin.Context) {
	page, err := h.orders.ListOrders(c.Request.Context(), queryInt(c, "page"), queryInt(c, "limit"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, OrderListResponse{
		Orders:      toOrderResponses(page.Orders),
		TotalPages:  page.TotalPages,
		CurrentPage: page.CurrentPage,
		Total:       page.Total,
	})
}

func (h *Handler) GetOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.respondError(c, usecase.ErrUnauthorized)
		return
	}

	details, err := h.orders.GetOrder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(details))
}

// CancelOrder serves both the owner route and the admin route; the use
// case decides what the caller may cancel.
func (h *Handler) CancelOrder(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		h.respondError(c, usecase.ErrUnauthorized)
		return
	}

	details, err := h.orders.CancelOrder(c.Request.Context(), user, c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(details))
}

func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if !h.bind(c, &req) {
		return
	}

	details, err := h.orders.UpdateOrderStatus(c.Request.Context(), c.Param("id"), entities.OrderStatus(req.Status))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(details))
}

func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if !h.bind(c, &req) {
		return
	}

	details, err := h.orders.UpdatePaymentStatus(c.Request.Context(), c.Param("id"), entities.PaymentStatus(req.PaymentStatus))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(details))
}
