package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/fortuna-tracker/internal/domain"
	"github.com/labstack/echo/v4"
)

// CategoryHandler serves the fixed category registry
type CategoryHandler struct {
	registry *domain.CategoryRegistry
}

// NewCategoryHandler creates a new CategoryHandler
func NewCategoryHandler(registry *domain.CategoryRegistry) *CategoryHandler {
	return &CategoryHandler{registry: registry}
}

// CategoryResponse represents a category in API responses
type CategoryResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// GetCategories godoc
// @Summary List categories
// @Description Get the categories in declaration order. The first category of a kind is the default selection.
// @Tags categories
// @Produce json
// @Param kind query string false "Category kind (income or expense)"
// @Success 200 {array} CategoryResponse
// @Failure 400 {object} ProblemDetails
// @Router /categories [get]
func (h *CategoryHandler) GetCategories(c echo.Context) error {
	categories := h.registry.All()

	if kindStr := c.QueryParam("kind"); kindStr != "" {
		kind, err := domain.ParseTransactionType(kindStr)
		if err != nil {
			return fieldError(c, "kind", "Kind must be one of: income, expense")
		}
		categories = h.registry.ListByKind(kind)
	}

	resp := make([]CategoryResponse, len(categories))
	for i, cat := range categories {
		resp[i] = CategoryResponse{
			ID:   cat.ID,
			Name: cat.Name,
			Type: string(cat.Kind),
		}
	}
	return c.JSON(http.StatusOK, resp)
}
