package category

import "time"

type Category struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type QueryCategoriesModel struct {
	Ids    []int64 `json:"ids,omitempty"`
	Limit  int     `json:"limit,omitempty"`
	Offset int     `json:"offset,omitempty"`
}

// CategoryInput is the writable part of a category.
type CategoryInput struct {
	Name     string `json:"name" schema:"name" validate:"required,max=100"`
	IsActive bool   `json:"isActive" schema:"isActive"`
}
