package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/services"
)

var errNegativeCoupon = errors.New("value and minimum subtotal must not be negative")

// CouponHandler handles coupon administration.
type CouponHandler struct {
	service  *services.CouponService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewCouponHandler creates a new CouponHandler.
func NewCouponHandler(service *services.CouponService, logger *zap.Logger) *CouponHandler {
	return &CouponHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterAdminRoutes registers coupon routes. router must already be admin-guarded.
func (h *CouponHandler) RegisterAdminRoutes(router fiber.Router) {
	couponRoutes := router.Group("/coupons")
	couponRoutes.Get("/", h.HandleGetCoupons)
	couponRoutes.Post("/", h.HandleCreateCoupon)
	couponRoutes.Put("/:code", h.HandleUpdateCoupon)
	couponRoutes.Delete("/:code", h.HandleDeleteCoupon)
}

// HandleGetCoupons lists every coupon.
func (h *CouponHandler) HandleGetCoupons(c *fiber.Ctx) error {
	return c.JSON(h.service.GetAllCoupons())
}

func (h *CouponHandler) parseCoupon(c *fiber.Ctx) (*models.Coupon, error) {
	var coupon models.Coupon
	if err := bindBody(c, h.validate, &coupon); err != nil {
		return nil, err
	}
	if coupon.Value.IsNegative() || coupon.MinSubtotal.IsNegative() {
		return nil, errNegativeCoupon
	}
	return &coupon, nil
}

// HandleCreateCoupon adds a coupon.
func (h *CouponHandler) HandleCreateCoupon(c *fiber.Ctx) error {
	coupon, err := h.parseCoupon(c)
	if err != nil {
		return requestError(c, err)
	}
	if err := h.service.CreateCoupon(c.UserContext(), *coupon); err != nil {
		return serviceError(c, h.logger, "Could not create coupon", err)
	}
	return c.Status(fiber.StatusCreated).JSON(coupon)
}

// HandleUpdateCoupon replaces the coupon at :code.
func (h *CouponHandler) HandleUpdateCoupon(c *fiber.Ctx) error {
	coupon, err := h.parseCoupon(c)
	if err != nil {
		return requestError(c, err)
	}
	coupon.Code = c.Params("code")
	if err := h.service.UpdateCoupon(c.UserContext(), *coupon); err != nil {
		return serviceError(c, h.logger, "Could not update coupon", err)
	}
	return c.JSON(coupon)
}

// HandleDeleteCoupon removes a coupon.
func (h *CouponHandler) HandleDeleteCoupon(c *fiber.Ctx) error {
	if err := h.service.DeleteCoupon(c.UserContext(), c.Params("code")); err != nil {
		return serviceError(c, h.logger, "Could not delete coupon", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
