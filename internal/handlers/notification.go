package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/middleware"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/services/notification"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/pagination"
	"github.com/zefortsolutionsdataworks-eng/claverica-backend/internal/utils/response"
)

type NotificationHandler struct {
	notifications *notification.Service
}

func NewNotificationHandler(notifications *notification.Service) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

func (h *NotificationHandler) List(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	p := pagination.ParseFromRequest(c)
	notifications, err := h.notifications.List(claims.UserID, p.Limit, p.Offset)
	if err != nil {
		return fail(c, err)
	}
	return response.Success(c, "notifications", notifications)
}

func (h *NotificationHandler) MarkRead(c *fiber.Ctx) error {
	claims := middleware.Claims(c)
	if claims == nil {
		return response.Unauthorized(c)
	}
	notificationID, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return response.BadRequest(c, "invalid notification id")
	}

	if err := h.notifications.MarkRead(claims.UserID, uint(notificationID)); err != nil {
		return fail(c, err)
	}
	return response.Success(c, "notification marked read", nil)
}
