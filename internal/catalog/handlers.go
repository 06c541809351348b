package catalog

import (
	"errors"

	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles catalog handlers.
type Handlers struct {
	Service *Service
}

// SearchProducts GET /api/v1/products/search?q=
func (h *Handlers) SearchProducts(c *fiber.Ctx) error {
	products, err := h.Service.SearchProducts(c.Context(), c.Query("q"))
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Products fetched successfully", products, nil)
}
