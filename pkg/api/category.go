package api

type Category struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"` // EXPENSE or INCOME
	Description string `json:"description"`
	IsSystem    bool   `json:"is_system"`
	// Editable is set when the caller may update or delete the category.
	Editable bool `json:"editable"`
}

type ListCategoriesRequest struct {
	// Type filters by EXPENSE or INCOME; empty lists both.
	Type string `json:"type,omitempty"`
}

type ListCategoriesResponse struct {
	Categories []*Category `json:"categories"`
}

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type CreateCategoryResponse struct {
	Category *Category `json:"category"`
}

type UpdateCategoryRequest struct {
	CategoryID  string `json:"category_id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
}

type UpdateCategoryResponse struct {
	Category *Category `json:"category"`
}

type DeleteCategoryRequest struct {
	CategoryID string `json:"category_id"`
}

type DeleteCategoryResponse struct{}
