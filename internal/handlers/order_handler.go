package handlers

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/services"
)

// OrderHandler handles HTTP requests for checkout and orders.
type OrderHandler struct {
	service       *services.OrderService
	deliverySlots []models.DeliverySlot
	validate      *validator.Validate
	logger        *zap.Logger
}

// NewOrderHandler creates a new OrderHandler. The first delivery slot is the checkout default.
func NewOrderHandler(service *services.OrderService, deliverySlots []models.DeliverySlot, logger *zap.Logger) *OrderHandler {
	return &OrderHandler{
		service:       service,
		deliverySlots: deliverySlots,
		validate:      validator.New(),
		logger:        logger,
	}
}

// CheckoutRequest is the checkout form.
type CheckoutRequest struct {
	Customer      models.Customer      `json:"customer"`
	Address       models.Address       `json:"address"`
	DeliverySlot  string               `json:"delivery_slot"`
	PaymentMethod models.PaymentMethod `json:"payment_method" validate:"required,oneof=cod card"`
}

// StatusRequest carries a new order status.
type StatusRequest struct {
	Status models.OrderStatus `json:"status" validate:"required"`
}

// RegisterRoutes registers the public order routes.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/delivery-slots", h.HandleGetDeliverySlots)

	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
}

// RegisterAdminRoutes registers order management routes. router must already be admin-guarded.
func (h *OrderHandler) RegisterAdminRoutes(router fiber.Router) {
	router.Patch("/orders/:id/status", h.HandleUpdateOrderStatus)
}

// HandleGetDeliverySlots lists the selectable delivery windows.
func (h *OrderHandler) HandleGetDeliverySlots(c *fiber.Ctx) error {
	return c.JSON(h.deliverySlots)
}

// HandleGetOrders retrieves all orders, most recent first.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAllOrders())
}

// HandleGetOrderByID retrieves a single order by its ID.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.service.GetOrderByID(orderID)
	if err != nil {
		return serviceError(c, h.logger, fmt.Sprintf("Order with ID %s not found", orderID), err)
	}
	return c.JSON(order)
}

// HandleCreateOrder checks out the current cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CheckoutRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return requestError(c, err)
	}

	slot, ok := h.resolveSlot(req.DeliverySlot)
	if !ok {
		return badRequest(c, fmt.Sprintf("Unknown delivery slot %q", req.DeliverySlot), nil)
	}
	order, err := h.service.CreateOrder(c.UserContext(), services.CheckoutDetails{
		Customer:     req.Customer,
		Address:      req.Address,
		DeliverySlot: slot,
		Payment: models.Payment{
			Method: req.PaymentMethod,
			Paid:   req.PaymentMethod == models.PaymentCard,
		},
		RequireItems: true,
	})
	if errors.Is(err, services.ErrEmptyCart) {
		return badRequest(c, "Cart is empty", nil)
	}
	if err != nil {
		return serviceError(c, h.logger, "Could not create order", err)
	}
	return c.Status(fiber.StatusCreated).JSON(order)
}

func (h *OrderHandler) resolveSlot(value string) (string, bool) {
	if value == "" && len(h.deliverySlots) > 0 {
		return h.deliverySlots[0].Value, true
	}
	for _, s := range h.deliverySlots {
		if s.Value == value {
			return value, true
		}
	}
	return "", false
}

// HandleUpdateOrderStatus updates the status of an existing order.
func (h *OrderHandler) HandleUpdateOrderStatus(c *fiber.Ctx) error {
	orderID := c.Params("id")
	var req StatusRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return requestError(c, err)
	}

	if err := h.service.UpdateOrderStatus(c.UserContext(), orderID, req.Status); err != nil {
		return serviceError(c, h.logger, "Order update failed", err)
	}
	return c.JSON(fiber.Map{
		"message": fmt.Sprintf("Order %s status updated successfully to %s", orderID, req.Status),
	})
}
