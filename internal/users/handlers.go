package users

import (
	"errors"

	"folio-backend/internal/domain"
	"folio-backend/internal/middleware"
	"folio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// Handlers bundles user handlers.
type Handlers struct {
	Service *Service
}

// Signup POST /api/v1/users/signup
func (h *Handlers) Signup(c *fiber.Ctx) error {
	var body SignupRequest
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Signup(c.Context(), body)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation), errors.Is(err, ErrEmailTaken):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User created successfully", user, nil)
}

type loginRequestBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/v1/users/login
func (h *Handlers) Login(c *fiber.Ctx) error {
	var body loginRequestBody
	if err := c.BodyParser(&body); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	token, user, err := h.Service.Login(c.Context(), body.Email, body.Password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return response.Unauthorized(c, err.Error())
		}
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	return response.Success(c, "Login successful", fiber.Map{
		"access_token": token,
		"token_type":   "bearer",
		"user":         user,
	}, nil)
}

// Update PATCH /api/v1/users/:id
func (h *Handlers) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}
	var patch UserPatch
	if err := c.BodyParser(&patch); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Update(c.Context(), middleware.GetUserID(c), uint(id), patch)
	if err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case errors.Is(err, domain.ErrValidation):
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "User updated successfully", user, nil)
}

// Delete DELETE /api/v1/users/:id
func (h *Handlers) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return response.Error(c, "Invalid user id", fiber.StatusBadRequest, nil)
	}

	if err := h.Service.Delete(c.Context(), middleware.GetUserID(c), uint(id)); err != nil {
		switch {
		case errors.Is(err, ErrForbidden):
			return response.Error(c, err.Error(), fiber.StatusForbidden, nil)
		case errors.Is(err, domain.ErrNotFound):
			return response.Error(c, err.Error(), fiber.StatusNotFound, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.Success(c, "User deleted successfully", nil, nil)
}
