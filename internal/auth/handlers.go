package auth

import (
	"context"
	"strconv"

	"carmarket-backend/internal/middleware"
	"carmarket-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const userSessionsPrefix = "user_sessions:"

// Handlers holds dependencies for auth endpoints.
type Handlers struct {
	UserFinder UserFinder
	Rdb        *redis.Client
	Config     middleware.SessionConfig
}

// LoginRequest body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login POST /api/auth/login — authenticate, create session, track it under
// user_sessions:<id>, set cookie.
func (h *Handlers) Login(c *fiber.Ctx) error {
	if h.UserFinder == nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}
	if req.Email == "" || req.Password == "" {
		return response.Error(c, "Email and password are required", fiber.StatusBadRequest, nil)
	}

	user, err := h.UserFinder.FindByEmailAndPassword(req.Email, req.Password)
	if err != nil {
		switch err {
		case ErrEmailPasswordRequired:
			return response.Error(c, err.Error(), fiber.StatusBadRequest, nil)
		case ErrInvalidEmail, ErrIncorrectPassword:
			return response.Error(c, err.Error(), fiber.StatusUnauthorized, nil)
		default:
			return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
		}
	}

	// New session for this login
	sessionID := middleware.RegenerateSessionID(c)

	middleware.SetSessionUser(c, middleware.SessionUser{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		IsSeller: user.IsSeller,
		IsStaff:  user.IsStaff,
	})

	ctx := context.Background()
	if err := h.Rdb.SAdd(ctx, userSessionsPrefix+strconv.FormatUint(uint64(user.ID), 10), sessionID).Err(); err != nil {
		return response.Error(c, "Internal Server Error", fiber.StatusInternalServerError, nil)
	}

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = "s:" + sessionID
	c.Cookie(&cookie)

	log.Info().Uint("user_id", user.ID).Bool("is_seller", user.IsSeller).Bool("is_staff", user.IsStaff).Msg("login")

	return response.Success(c, "Login successful", fiber.Map{
		"user": fiber.Map{
			"user_id":   user.ID,
			"username":  user.Username,
			"email":     user.Email,
			"is_seller": user.IsSeller,
			"is_staff":  user.IsStaff,
		},
	}, nil)
}

// Me GET /api/auth/me — return current session user in standard success format.
func (h *Handlers) Me(c *fiber.Ctx) error {
	sessionUser := middleware.GetUser(c)
	user, err := VerifyUser(sessionUser)
	if err != nil {
		return response.Error(c, "Not authenticated", fiber.StatusUnauthorized, nil)
	}
	return response.Success(c, "Authenticated", fiber.Map{"user": user}, nil)
}

// Logout DELETE /api/auth/logout — untrack session, delete the Redis key,
// clear cookie.
func (h *Handlers) Logout(c *fiber.Ctx) error {
	sessionID := middleware.GetSessionID(c)
	sessionUser := middleware.GetUser(c)

	ctx := context.Background()

	if sessionUser != nil && sessionID != "" {
		if u, err := VerifyUser(sessionUser); err == nil {
			_ = h.Rdb.SRem(ctx, userSessionsPrefix+strconv.FormatUint(uint64(u.UserID), 10), sessionID).Err()
		}
	}

	if sessionID != "" {
		_ = h.Rdb.Del(ctx, middleware.SessionRedisPrefix+sessionID).Err()
	}

	middleware.DestroySession(c)

	cookie := middleware.SessionCookieConfig(h.Config)
	cookie.Value = ""
	cookie.MaxAge = -1
	c.Cookie(&cookie)

	return response.Success(c, "Logged out successfully", nil, nil)
}
