package handler

import (
	"errors"

	"dashboard-reminders/internal/core/logger"
	"dashboard-reminders/internal/features/callhome/domain"
	"dashboard-reminders/internal/features/callhome/ports"
	"dashboard-reminders/internal/features/callhome/service"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// CallHomeHandler handles the Call Home configuration dialog requests.
type CallHomeHandler struct {
	service ports.CallHomeService
}

// NewCallHomeHandler creates a new CallHomeHandler.
func NewCallHomeHandler(service ports.CallHomeService) *CallHomeHandler {
	return &CallHomeHandler{
		service: service,
	}
}

// Register mounts the Call Home routes on router.
func (h *CallHomeHandler) Register(router fiber.Router) {
	g := router.Group("/call-home")
	g.Get("/status", h.Status)
	g.Post("/activate", h.Activate)
	g.Post("/deactivate", h.Deactivate)
	g.Get("/info", h.Info)
	g.Get("/report/:type", h.Report)
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	// Message describes the error.
	Message string `json:"message"`
	// Fields lists invalid form fields.
	Fields map[string]string `json:"fields,omitempty"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// StatusResponse reports whether the agent is enabled.
type StatusResponse struct {
	Enabled bool `json:"enabled"`
}

func fail(c *fiber.Ctx, err error) error {
	rayID, _ := c.Locals("requestid").(string)
	resp := ErrorResponse{Message: err.Error(), RayID: rayID}

	var fields domain.FieldErrors
	switch {
	case errors.As(err, &fields):
		resp.Message = domain.ErrInvalidCustomerInfo.Error()
		resp.Fields = fields
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrUnknownReportType):
		return c.Status(fiber.StatusBadRequest).JSON(resp)
	case errors.Is(err, domain.ErrCallHomeDisabled):
		return c.Status(fiber.StatusConflict).JSON(resp)
	case errors.Is(err, service.ErrReconnectTimeout):
		logger.Get().Warn("Manager did not reconnect", zap.String("ray_id", rayID), zap.Error(err))
		return c.Status(fiber.StatusGatewayTimeout).JSON(resp)
	}

	logger.Get().Error("Call home request failed", zap.String("ray_id", rayID), zap.Error(err))
	resp.Message = "Manager request failed"
	return c.Status(fiber.StatusBadGateway).JSON(resp)
}

// Status handles GET /call-home/status.
// @Summary Call Home agent status
// @Tags CallHome
// @Produce json
// @Success 200 {object} StatusResponse
// @Failure 502 {object} ErrorResponse
// @Router /call-home/status [get]
func (h *CallHomeHandler) Status(c *fiber.Ctx) error {
	enabled, err := h.service.Status(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(StatusResponse{Enabled: enabled})
}

// Activate handles POST /call-home/activate.
// @Summary Activate the Call Home agent
// @Description Stores the customer details, enables the agent and waits for the manager to reconnect.
// @Tags CallHome
// @Accept json
// @Produce json
// @Param customer body domain.CustomerInfo true "Customer details"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /call-home/activate [post]
func (h *CallHomeHandler) Activate(c *fiber.Ctx) error {
	var info domain.CustomerInfo
	if err := c.BodyParser(&info); err != nil {
		rayID, _ := c.Locals("requestid").(string)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	if err := h.service.Activate(c.UserContext(), info); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": domain.ActivatedTitle,
	})
}

// Deactivate handles POST /call-home/deactivate.
// @Summary Deactivate the Call Home agent
// @Tags CallHome
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 502 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse
// @Router /call-home/deactivate [post]
func (h *CallHomeHandler) Deactivate(c *fiber.Ctx) error {
	if err := h.service.Deactivate(c.UserContext()); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": domain.DeactivatedTitle,
	})
}

// Info handles GET /call-home/info.
// @Summary Customer details known to the agent
// @Tags CallHome
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 502 {object} ErrorResponse
// @Router /call-home/info [get]
func (h *CallHomeHandler) Info(c *fiber.Ctx) error {
	info, err := h.service.Info(c.UserContext())
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Status(fiber.StatusOK).Send(info)
}

// Report handles GET /call-home/report/:type.
// @Summary Download an agent report
// @Tags CallHome
// @Produce json
// @Param type path string true "Report type" Enums(inventory, status, last_contact, alerts)
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /call-home/report/{type} [get]
func (h *CallHomeHandler) Report(c *fiber.Ctx) error {
	report, err := h.service.Report(c.UserContext(), c.Params("type"))
	if err != nil {
		return fail(c, err)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	c.Attachment(c.Params("type") + ".json")
	return c.Status(fiber.StatusOK).Send(report)
}
