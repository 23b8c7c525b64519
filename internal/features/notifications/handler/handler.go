package handler

import (
	"net/http"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/notifications/ports"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// NotificationHandler handles HTTP requests for the notification history.
type NotificationHandler struct {
	service ports.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service ports.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// Register mounts the notification routes on router.
func (h *NotificationHandler) Register(router fiber.Router) {
	router.Get("/notifications", h.ListNotifications)
	router.Delete("/notifications", h.ClearNotifications)
}

// ListNotifications handles GET /notifications.
// @Summary List notifications
// @Description Returns the recent operator notifications, newest first.
// @Tags Notifications
// @Produce json
// @Success 200 {array} domain.Notification
// @Failure 500 {object} map[string]string
// @Router /notifications [get]
func (h *NotificationHandler) ListNotifications(c *fiber.Ctx) error {
	history, err := h.service.List(c.UserContext())
	if err != nil {
		logger.Get().Error("Failed to list notifications", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(history)
}

// ClearNotifications handles DELETE /notifications.
// @Summary Clear notifications
// @Description Removes the stored notification history.
// @Tags Notifications
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /notifications [delete]
func (h *NotificationHandler) ClearNotifications(c *fiber.Ctx) error {
	if err := h.service.Clear(c.UserContext()); err != nil {
		logger.Get().Error("Failed to clear notifications", zap.Error(err))
		return c.Status(http.StatusInternalServerError).JSON(fiber.Map{
			"error": "Internal server error",
		})
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{
		"message": "Notifications cleared",
	})
}
