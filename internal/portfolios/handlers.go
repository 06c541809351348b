package portfolios

import (
	"errors"

	"folio-backend/internal/domain"
	"folio-backend/internal/middleware"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles portfolio handlers.
type Handlers struct {
	Service *Service
}

type portfolioRequestBody struct {
	PortfolioName string `json:"portfolio_name"`
}

// Create POST /api/v1/portfolios
func (h *Handlers) Create(c *fiber.Ctx) error {
	var body portfolioRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	portfolio, err := h.Service.Create(c.Context(), middleware.GetUserID(c), body.PortfolioName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, ErrNameTaken):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "Portfolio created successfully", portfolio, nil)
}

// List GET /api/v1/portfolios
func (h *Handlers) List(c *fiber.Ctx) error {
	portfolios, err := h.Service.ListByUser(c.Context(), middleware.GetUserID(c))
	if err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Portfolios fetched successfully", portfolios, nil)
}

// Rename PATCH /api/v1/portfolios/:id
func (h *Handlers) Rename(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid portfolio id", fiber.StatusBadRequest, nil)
	}
	var body portfolioRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	portfolio, err := h.Service.Rename(c.Context(), uint(id), body.PortfolioName)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, ErrNameTaken):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "Portfolio updated successfully", portfolio, nil)
}

// Delete DELETE /api/v1/portfolios/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid portfolio id", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
