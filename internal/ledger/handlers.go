package ledger

import (
	"errors"

	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles ledger handlers.
type Handlers struct {
	Service *Service
}

// ListTransactions GET /api/v1/transactions?portfolio_id=&page=&per_page=
func (h *Handlers) ListTransactions(c *fiber.Ctx) error {
	portfolioID := c.QueryInt("portfolio_id")
	if portfolioID <= 0 {
		return response.Error(c, "portfolio_id is required", fiber.StatusBadRequest, nil)
	}
	page := c.QueryInt("page", 1)
	perPage := c.QueryInt("per_page", 10)

	items, total, err := h.Service.ListTransactions(c.Context(), uint(portfolioID), page, perPage)
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
	return response.Paginated(c, "Transactions fetched successfully", items, response.PageMeta{
		Total:   total,
		Page:    page,
		PerPage: perPage,
	})
}

type deleteRequestBody struct {
	TransactionIDs []uint `json:"transaction_ids"`
}

// DeleteTransactions DELETE /api/v1/transactions
func (h *Handlers) DeleteTransactions(c *fiber.Ctx) error {
	var body deleteRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	report, err := h.Service.DeleteTransactions(c.Context(), body.TransactionIDs)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Transactions deleted", report, nil)
}
