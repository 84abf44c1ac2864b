package models

// Category groups products on the storefront. Categories are static seed data.
type Category struct {
	ID         string `json:"id"`
	Slug       string `json:"slug"`
	ColorToken string `json:"color_token"` // frozen, meat, grocery
	Icon       string `json:"icon"`
	NameAr     string `json:"name_ar"`
	NameEn     string `json:"name_en"`
}

// CategoryWithCount is a category plus the number of products currently in it.
type CategoryWithCount struct {
	Category
	ProductCount int `json:"product_count"`
}
