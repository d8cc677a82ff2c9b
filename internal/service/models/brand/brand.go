package brand

import "time"

type Brand struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	FoundedYear int       `json:"foundedYear"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type QueryBrandsModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// BrandInput is the writable part of a brand.
type BrandInput struct {
	Name        string `json:"name" schema:"name" validate:"required,max=100"`
	Description string `json:"description" schema:"description" validate:"max=1000"`
	FoundedYear int    `json:"foundedYear" schema:"foundedYear" validate:"gte=0,lte=9999"`
}
