package handlers

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/services"
)

var errNegativePrice = errors.New("price must not be negative")

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
	logger   *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
		logger:   logger,
	}
}

// RegisterRoutes registers the public catalog routes.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/categories", h.HandleGetCategories)
	router.Get("/categories/:key", h.HandleGetCategory)

	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/featured", h.HandleGetFeatured)
	productRoutes.Get("/slug/:slug", h.HandleGetProductBySlug)
	productRoutes.Get("/:id", h.HandleGetProductByID)
}

// RegisterAdminRoutes registers catalog editing routes. router must already be admin-guarded.
func (h *ProductHandler) RegisterAdminRoutes(router fiber.Router) {
	adminRoutes := router.Group("/products")
	adminRoutes.Post("/", h.HandleCreateProduct)
	adminRoutes.Put("/:id", h.HandleUpdateProduct)
	adminRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetCategories lists categories with their product counts.
func (h *ProductHandler) HandleGetCategories(c *fiber.Ctx) error {
	return c.JSON(h.service.GetCategories())
}

// HandleGetCategory returns a category, by id or slug, with its products.
func (h *ProductHandler) HandleGetCategory(c *fiber.Ctx) error {
	category, err := h.service.GetCategory(c.Params("key"))
	if err != nil {
		return serviceError(c, h.logger, "Category not found", err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"products": h.service.ListProducts(services.ProductFilter{Category: category.ID}),
	})
}

// HandleListProducts lists products. Query: search, category, inStock, frozen, sort.
func (h *ProductHandler) HandleListProducts(c *fiber.Ctx) error {
	filter := services.ProductFilter{
		Search:      c.Query("search"),
		Category:    c.Query("category"),
		InStockOnly: c.QueryBool("inStock"),
		FrozenOnly:  c.QueryBool("frozen"),
		Sort:        services.SortKey(c.Query("sort", string(services.SortNewest))),
	}
	return c.JSON(h.service.ListProducts(filter))
}

// HandleGetFeatured returns the featured products.
func (h *ProductHandler) HandleGetFeatured(c *fiber.Ctx) error {
	return c.JSON(h.service.GetFeaturedProducts())
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return serviceError(c, h.logger, "Product not found", err)
	}
	return c.JSON(product)
}

// HandleGetProductBySlug retrieves a product and its related products.
func (h *ProductHandler) HandleGetProductBySlug(c *fiber.Ctx) error {
	product, err := h.service.GetProductBySlug(c.Params("slug"))
	if err != nil {
		return serviceError(c, h.logger, "Product not found", err)
	}
	return c.JSON(fiber.Map{
		"product": product,
		"related": h.service.GetRelatedProducts(product),
	})
}

// parseProduct binds and checks a product body. Currency defaults to EGP.
func (h *ProductHandler) parseProduct(c *fiber.Ctx) (*models.Product, error) {
	var product models.Product
	if err := bindBody(c, h.validate, &product); err != nil {
		return nil, err
	}
	if product.Price.IsNegative() {
		return nil, errNegativePrice
	}
	if product.Currency == "" {
		product.Currency = "EGP"
	}
	return &product, nil
}

// HandleCreateProduct adds a product to the catalog.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	product, err := h.parseProduct(c)
	if err != nil {
		return requestError(c, err)
	}
	if err := h.service.CreateProduct(c.UserContext(), product); err != nil {
		return serviceError(c, h.logger, "Could not create product", err)
	}
	return c.Status(fiber.StatusCreated).JSON(product)
}

// HandleUpdateProduct replaces the product at :id.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	product, err := h.parseProduct(c)
	if err != nil {
		return requestError(c, err)
	}
	product.ID = c.Params("id")
	if err := h.service.UpdateProduct(c.UserContext(), product); err != nil {
		return serviceError(c, h.logger, "Could not update product", err)
	}
	return c.JSON(product)
}

// HandleDeleteProduct removes a product from the catalog.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	if err := h.service.DeleteProduct(c.UserContext(), c.Params("id")); err != nil {
		return serviceError(c, h.logger, "Could not delete product", err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
