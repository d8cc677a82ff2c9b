package product

import (
	"strings"
	"time"

	"github.com/corray333/backend-labs/store/internal/service/models/money"
)

// Product is a catalog entry that can be ordered.
type Product struct {
	ID           int64       `json:"id"`
	Name         string      `json:"name"`
	PriceCents   money.Cents `json:"priceCents"`
	ImageURL     string      `json:"imageUrl"`
	Color        string      `json:"color"`
	BrandID      int64       `json:"brandId"`
	BrandName    string      `json:"brandName,omitempty"`
	CategoryID   int64       `json:"categoryId"`
	CategoryName string      `json:"categoryName,omitempty"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// QueryProductsModel represents filter parameters for querying products.
type QueryProductsModel struct {
	Ids         []int64 `json:"ids,omitempty"`
	BrandIds    []int64 `json:"brandIds,omitempty"`
	CategoryIds []int64 `json:"categoryIds,omitempty"`
	Limit       int     `json:"limit,omitempty"`
	Offset      int     `json:"offset,omitempty"`
}

// NormalizeImageURL keeps absolute URLs and rooted paths as they are and
// places bare file names under /images/.
func NormalizeImageURL(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if strings.HasPrefix(trimmed, "http://") ||
		strings.HasPrefix(trimmed, "https://") ||
		strings.HasPrefix(trimmed, "/") {
		return trimmed
	}

	return "/images/" + trimmed
}

// ProductInput is the writable part of a product.
type ProductInput struct {
	Name       string      `json:"name" validate:"required,max=200"`
	PriceCents money.Cents `json:"priceCents" validate:"gte=0"`
	ImageURL   string      `json:"imageUrl" validate:"max=500"`
	Color      string      `json:"color" validate:"max=50"`
	BrandID    int64       `json:"brandId" validate:"gt=0"`
	CategoryID int64       `json:"categoryId" validate:"gt=0"`
}
