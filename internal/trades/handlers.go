package trades

import (
	"errors"
	"time"

	"folio-backend/internal/domain"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// Handlers bundles trade handlers.
type Handlers struct {
	Reconciler *Reconciler
}

type tradeRequestBody struct {
	PortfolioID  uint            `json:"portfolio_id"`
	ProductID    uint            `json:"financial_product_id"`
	Side         string          `json:"transaction_type"`
	Price        decimal.Decimal `json:"price"`
	Quantity     decimal.Decimal `json:"quantity"`
	CurrencyCode string          `json:"currency_code"`
	ExecutedAt   *time.Time      `json:"created_at"`
}

// ApplyTrade POST /api/v1/trades
func (h *Handlers) ApplyTrade(c *fiber.Ctx) error {
	var body tradeRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if body.PortfolioID == 0 || body.ProductID == 0 {
		return response.Error(c, "portfolio_id and financial_product_id are required", fiber.StatusBadRequest, nil)
	}
	executedAt := time.Now().UTC()
	if body.ExecutedAt != nil {
		executedAt = *body.ExecutedAt
	}

	result, err := h.Reconciler.ApplyTrade(c.Context(), TradeRequest{
		PortfolioID:  body.PortfolioID,
		ProductID:    body.ProductID,
		Side:         body.Side,
		Price:        body.Price,
		Quantity:     body.Quantity,
		CurrencyCode: body.CurrencyCode,
		ExecutedAt:   executedAt,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, domain.ErrNoPosition):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		case errors.Is(err, domain.ErrInsufficientQuantity):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrCurrencyMismatch):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		case errors.Is(err, domain.ErrConflict):
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Trade applied successfully", result, nil)
}
