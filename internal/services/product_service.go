package services

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"kawther/internal/models"
	"kawther/internal/store"
)

type SortKey string

const (
	SortNewest      SortKey = "newest"
	SortPriceAsc    SortKey = "priceAsc"
	SortPriceDesc   SortKey = "priceDesc"
	SortBestselling SortKey = "bestselling"
)

const (
	relatedLimit  = 4
	featuredLimit = 8
)

// ProductFilter narrows and orders a product listing. Zero values mean "no filter".
type ProductFilter struct {
	Search      string
	Category    string // id or slug; "all" means any
	InStockOnly bool
	FrozenOnly  bool
	Sort        SortKey
}

// ProductService handles catalog reads and admin edits.
type ProductService struct {
	store      *store.Store
	categories []models.Category
	logger     *zap.Logger
}

// NewProductService creates a new ProductService over a static category list.
func NewProductService(st *store.Store, categories []models.Category, logger *zap.Logger) *ProductService {
	return &ProductService{
		store:      st,
		categories: categories,
		logger:     logger,
	}
}

// GetCategories returns every category with its current product count.
func (s *ProductService) GetCategories() []models.CategoryWithCount {
	products := s.store.Snapshot().Products
	out := make([]models.CategoryWithCount, 0, len(s.categories))
	for _, c := range s.categories {
		n := 0
		for i := range products {
			if products[i].CategoryID == c.ID {
				n++
			}
		}
		out = append(out, models.CategoryWithCount{Category: c, ProductCount: n})
	}
	return out
}

// GetCategory finds a category by id or slug.
func (s *ProductService) GetCategory(idOrSlug string) (*models.Category, error) {
	for i := range s.categories {
		if s.categories[i].ID == idOrSlug || s.categories[i].Slug == idOrSlug {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, fmt.Errorf("category %s: %w", idOrSlug, ErrCategoryNotFound)
}

// GetAllProducts returns the catalog in stored order.
func (s *ProductService) GetAllProducts() []models.Product {
	return s.store.Snapshot().Products
}

// ListProducts filters and sorts the catalog. Sorting is stable; unknown keys sort as newest.
func (s *ProductService) ListProducts(f ProductFilter) []models.Product {
	products := s.store.Snapshot().Products

	categoryID := ""
	if f.Category != "" && f.Category != "all" {
		categoryID = f.Category
		if c, err := s.GetCategory(f.Category); err == nil {
			categoryID = c.ID
		}
	}
	search := strings.ToLower(strings.TrimSpace(f.Search))

	result := make([]models.Product, 0, len(products))
	for _, p := range products {
		if search != "" && !matchesSearch(&p, search) {
			continue
		}
		if categoryID != "" && p.CategoryID != categoryID {
			continue
		}
		if f.InStockOnly && p.StockQty <= 0 {
			continue
		}
		if f.FrozenOnly && !p.IsFrozen {
			continue
		}
		result = append(result, p)
	}

	switch f.Sort {
	case SortPriceAsc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.LessThan(result[j].Price) })
	case SortPriceDesc:
		sort.SliceStable(result, func(i, j int) bool { return result[i].Price.GreaterThan(result[j].Price) })
	case SortBestselling:
		sortByBadge(result, models.BadgeBestseller)
	default:
		sortByBadge(result, models.BadgeNew)
	}
	return result
}

func matchesSearch(p *models.Product, needle string) bool {
	for _, field := range []string{p.NameAr, p.NameEn, p.DescAr, p.DescEn} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func sortByBadge(products []models.Product, badge models.Badge) {
	sort.SliceStable(products, func(i, j int) bool {
		return products[i].HasBadge(badge) && !products[j].HasBadge(badge)
	})
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	if p := s.store.Snapshot().ProductByID(id); p != nil {
		out := *p
		return &out, nil
	}
	return nil, fmt.Errorf("product %s: %w", id, ErrProductNotFound)
}

// GetProductBySlug retrieves a single product by its slug.
func (s *ProductService) GetProductBySlug(slug string) (*models.Product, error) {
	products := s.store.Snapshot().Products
	for i := range products {
		if products[i].Slug == slug {
			out := products[i]
			return &out, nil
		}
	}
	return nil, fmt.Errorf("product slug %s: %w", slug, ErrProductNotFound)
}

// GetProductsByCategory returns the products in a category, in stored order.
func (s *ProductService) GetProductsByCategory(categoryID string) []models.Product {
	var out []models.Product
	for _, p := range s.store.Snapshot().Products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	return out
}

// GetRelatedProducts returns up to four other products from the same category.
func (s *ProductService) GetRelatedProducts(product *models.Product) []models.Product {
	related := make([]models.Product, 0, relatedLimit)
	for _, p := range s.GetProductsByCategory(product.CategoryID) {
		if p.ID == product.ID {
			continue
		}
		related = append(related, p)
		if len(related) == relatedLimit {
			break
		}
	}
	return related
}

// GetFeaturedProducts returns up to eight products badged bestseller or new.
func (s *ProductService) GetFeaturedProducts() []models.Product {
	featured := make([]models.Product, 0, featuredLimit)
	for _, p := range s.store.Snapshot().Products {
		if !p.HasBadge(models.BadgeBestseller) && !p.HasBadge(models.BadgeNew) {
			continue
		}
		featured = append(featured, p)
		if len(featured) == featuredLimit {
			break
		}
	}
	return featured
}

// CreateProduct adds a product. An empty ID is generated; slugs must be unique.
func (s *ProductService) CreateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.GetCategory(product.CategoryID); err != nil {
		return err
	}
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	return s.store.Update(ctx, func(st *store.State) error {
		for i := range st.Products {
			if st.Products[i].ID == product.ID || st.Products[i].Slug == product.Slug {
				return fmt.Errorf("product %s (%s): %w", product.ID, product.Slug, ErrProductExists)
			}
		}
		st.Products = append(st.Products, *product)
		return nil
	})
}

// UpdateProduct replaces an existing product. Orders already placed keep their own copy.
func (s *ProductService) UpdateProduct(ctx context.Context, product *models.Product) error {
	if _, err := s.GetCategory(product.CategoryID); err != nil {
		return err
	}
	return s.store.Update(ctx, func(st *store.State) error {
		idx := -1
		for i := range st.Products {
			if st.Products[i].ID == product.ID {
				idx = i
			} else if st.Products[i].Slug == product.Slug {
				return fmt.Errorf("slug %s: %w", product.Slug, ErrProductExists)
			}
		}
		if idx < 0 {
			return fmt.Errorf("product %s: %w", product.ID, ErrProductNotFound)
		}
		st.Products[idx] = *product
		return nil
	})
}

// DeleteProduct removes a product. Cart lines pointing at it are dropped on the next read.
func (s *ProductService) DeleteProduct(ctx context.Context, id string) error {
	err := s.store.Update(ctx, func(st *store.State) error {
		for i := range st.Products {
			if st.Products[i].ID == id {
				st.Products = append(st.Products[:i], st.Products[i+1:]...)
				return nil
			}
		}
		return fmt.Errorf("product %s: %w", id, ErrProductNotFound)
	})
	if err != nil {
		return err
	}
	s.logger.Info("product deleted", zap.String("product_id", id))
	return nil
}
