package assets

import (
	"errors"

	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles asset handlers.
type Handlers struct {
	Service *Service
}

// ListHoldings GET /api/v1/assets?portfolio_id=&page=&per_page=
func (h *Handlers) ListHoldings(c *fiber.Ctx) error {
	portfolioID := c.QueryInt("portfolio_id")
	if portfolioID <= 0 {
		return response.Error(c, "portfolio_id is required", fiber.StatusBadRequest, nil)
	}
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	items, total, err := h.Service.ListHoldings(c.Context(), uint(portfolioID), page, perPage)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Paginated(c, "Holdings fetched successfully", items, response.PageMeta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}
