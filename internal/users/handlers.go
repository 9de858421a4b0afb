package users

import (
	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

type Handlers struct {
	Service *Service
}

// Register POST /api/auth/register — create an account, return the profile.
func (h *Handlers) Register(c *fiber.Ctx) error {
	var in RegisterInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	if in.Username == "" || in.Email == "" || in.Password == "" || in.Password2 == "" {
		return response.Error(c, "username, email, password and password2 are required", fiber.StatusBadRequest, nil)
	}

	user, err := h.Service.Register(c.Context(), in)
	if err != nil {
		switch err {
		case ErrPasswordsDoNotMatch, ErrInvalidEmailFormat, ErrWeakPassword, ErrInvalidUsername:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrEmailTaken, ErrUsernameTaken:
			return response.Error(c, err.Error(), fiber.StatusConflict, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}
	return response.SuccessCreated(c, "User registered successfully", fiber.Map{"user": user}, nil)
}

// Profile GET /api/users/me
func (h *Handlers) Profile(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	user, err := h.Service.Profile(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile fetched successfully", fiber.Map{"user": user}, nil)
}

// UpdateProfile PUT /api/users/me
func (h *Handlers) UpdateProfile(c *fiber.Ctx) error {
	var in UpdateProfileInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	actor := middleware.GetActor(c)
	user, err := h.Service.UpdateProfile(c.Context(), actor, in)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Profile updated successfully", fiber.Map{"user": user}, nil)
}

// SellerProfile GET /api/users/me/seller
func (h *Handlers) SellerProfile(c *fiber.Ctx) error {
	actor := middleware.GetActor(c)
	user, err := h.Service.SellerProfile(c.Context(), actor)
	if err != nil {
		return response.FromError(c, err)
	}
	return response.Success(c, "Seller profile fetched successfully", fiber.Map{"user": user}, nil)
}
