package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/models"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/user"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type AuthHandler struct {
	users *user.Service
}

func NewAuthHandler(users *user.Service) *AuthHandler {
	return &AuthHandler{users: users}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var input models.CreateUserInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	registered, err := h.users.Register(input)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "registration successful",
		"user":    registered,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var input struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	loggedIn, accessToken, refreshToken, err := h.users.Login(input.Email, input.Password)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	return response.Success(c, "login successful", fiber.Map{
		"user":          loggedIn,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var input struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	accessToken, refreshToken, err := h.users.RefreshTokens(input.RefreshToken)
	if err != nil {
		return response.Error(c, fiber.StatusUnauthorized, err.Error())
	}
	return response.Success(c, "tokens refreshed", fiber.Map{
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	})
}

func (h *AuthHandler) Profile(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	profile, err := h.users.GetProfile(claims.UserID)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "profile", profile)
}

func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var input struct {
		OldPassword string `json:"old_password"`
		NewPassword string `json:"new_password"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.users.ChangePassword(claims.UserID, input.OldPassword, input.NewPassword); err != nil {
		return response.BadRequest(c, err.Error())
	}
	return response.Success(c, "password changed", nil)
}

func (h *AuthHandler) ChangePIN(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}

	var input struct {
		CurrentPIN string `json:"current_pin"`
		NewPIN     string `json:"new_pin"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := h.users.ChangePIN(claims.UserID, input.CurrentPIN, input.NewPIN); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "pin changed", nil)
}
