package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kawther/internal/services"
)

// CartHandler handles HTTP requests for the session cart.
type CartHandler struct {
	service  *services.CartService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService, logger *zap.Logger) *CartHandler {
	return &CartHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// CartItemRequest identifies a cart line and a quantity.
type CartItemRequest struct {
	ProductID         string `json:"product_id" validate:"required"`
	WeightOptionIndex int    `json:"weight_option_index" validate:"gte=0"`
	Qty               int    `json:"qty"`
}

// CouponRequest carries a coupon code.
type CouponRequest struct {
	Code string `json:"code" validate:"required"`
}

// RegisterRoutes registers the cart routes.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:productId/:weightIndex", h.HandleRemoveItem)
	cartRoutes.Post("/coupon", h.HandleApplyCoupon)
	cartRoutes.Delete("/coupon", h.HandleRemoveCoupon)
}

// HandleGetCart returns the priced cart.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCart())
}

// HandleAddItem adds a product to the cart.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return requestError(c, err)
	}
	view, err := h.service.AddItem(c.UserContext(), req.ProductID, req.WeightOptionIndex, req.Qty)
	if err != nil {
		return serviceError(c, h.logger, "Could not add item", err)
	}
	return c.JSON(view)
}

// HandleUpdateItem sets the quantity of a line; zero or less removes it.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return requestError(c, err)
	}
	view, err := h.service.UpdateItemQty(c.UserContext(), req.ProductID, req.WeightOptionIndex, req.Qty)
	if err != nil {
		return serviceError(c, h.logger, "Could not update item", err)
	}
	return c.JSON(view)
}

// HandleRemoveItem removes a cart line.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	weightIndex, err := c.ParamsInt("weightIndex")
	if err != nil {
		return badRequest(c, "Invalid weight option index", err)
	}
	view, err := h.service.RemoveItem(c.UserContext(), c.Params("productId"), weightIndex)
	if err != nil {
		return serviceError(c, h.logger, "Could not remove item", err)
	}
	return c.JSON(view)
}

// HandleClearCart empties the cart.
func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	if err := h.service.ClearCart(c.UserContext()); err != nil {
		return serviceError(c, h.logger, "Could not clear cart", err)
	}
	return c.JSON(h.service.GetCart())
}

// HandleApplyCoupon validates a code and applies it. A rejected code is reported in the body
// with status 200 and success false.
func (h *CartHandler) HandleApplyCoupon(c *fiber.Ctx) error {
	var req CouponRequest
	if err := bindBody(c, h.validate, &req); err != nil {
		return requestError(c, err)
	}
	result, err := h.service.ApplyCoupon(c.UserContext(), req.Code)
	if err != nil {
		return serviceError(c, h.logger, "Could not apply coupon", err)
	}
	return c.JSON(fiber.Map{
		"success": result.Success,
		"message": result.Message,
		"cart":    h.service.GetCart(),
	})
}

// HandleRemoveCoupon drops the applied coupon.
func (h *CartHandler) HandleRemoveCoupon(c *fiber.Ctx) error {
	if err := h.service.RemoveCoupon(c.UserContext()); err != nil {
		return serviceError(c, h.logger, "Could not remove coupon", err)
	}
	return c.JSON(h.service.GetCart())
}
