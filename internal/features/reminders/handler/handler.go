package handler

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"dashboard-reminders/internal/core/logger"
	notification "dashboard-reminders/internal/features/notifications/domain"
	"dashboard-reminders/internal/features/reminders/domain"
	"dashboard-reminders/internal/features/reminders/ports"
	"dashboard-reminders/internal/features/reminders/service"
	"dashboard-reminders/internal/features/reminders/view"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"
)

// DefaultKeepAlive is the comment interval of the event stream.
const DefaultKeepAlive = 15 * time.Second

// ReminderHandler handles HTTP requests for reminder banners.
type ReminderHandler struct {
	order     []string
	banners   map[string]*view.Banner
	notifier  ports.Notifier
	keepAlive time.Duration
}

// NewReminderHandler creates a new ReminderHandler serving banners in the given order.
func NewReminderHandler(banners []*view.Banner, notifier ports.Notifier) *ReminderHandler {
	h := &ReminderHandler{
		banners:   make(map[string]*view.Banner, len(banners)),
		notifier:  notifier,
		keepAlive: DefaultKeepAlive,
	}
	for _, b := range banners {
		name := b.Feature().Name
		h.order = append(h.order, name)
		h.banners[name] = b
	}
	return h
}

// WithKeepAlive changes the event stream comment interval.
func (h *ReminderHandler) WithKeepAlive(d time.Duration) *ReminderHandler {
	h.keepAlive = d
	return h
}

// Register mounts the reminder routes on router.
func (h *ReminderHandler) Register(router fiber.Router) {
	g := router.Group("/reminders")
	g.Get("/", h.ListReminders)
	g.Get("/:feature", h.GetReminder)
	g.Get("/:feature/events", h.StreamVisibility)
	g.Post("/:feature/dismiss", h.Dismiss)
	g.Put("/:feature/visibility", h.SetVisibility)
	g.Post("/:feature/refresh", h.Refresh)
	g.Post("/:feature/dialog", h.DialogClosed)
}

// ErrorResponse represents a structured error response.
type ErrorResponse struct {
	// Message describes the error.
	Message string `json:"message"`
	// RayID is the unique request identifier for tracing.
	RayID string `json:"ray_id,omitempty"`
}

// DismissResponse is returned after a reminder was muted.
type DismissResponse struct {
	Feature       string    `json:"feature"`
	RemindLaterOn string    `json:"remind_later_on"`
	Deadline      time.Time `json:"deadline"`
	Days          int       `json:"days"`
}

// VisibilityRequest forces a reminder visibility.
type VisibilityRequest struct {
	Visible *bool `json:"visible"`
}

// VisibilityResponse is the visibility a reminder emitted.
type VisibilityResponse struct {
	Feature string `json:"feature"`
	Visible bool   `json:"visible"`
}

// DialogRequest reports how the configuration dialog was closed.
type DialogRequest struct {
	Outcome view.Outcome `json:"outcome"`
}

func rayID(c *fiber.Ctx) string {
	id, _ := c.Locals("requestid").(string)
	return id
}

func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(ErrorResponse{
		Message: message,
		RayID:   rayID(c),
	})
}

func (h *ReminderHandler) banner(c *fiber.Ctx) (*view.Banner, bool) {
	b, ok := h.banners[c.Params("feature")]
	return b, ok
}

func notFound(c *fiber.Ctx) error {
	return fail(c, fiber.StatusNotFound, fmt.Sprintf("%s: %s", domain.ErrUnknownFeature, c.Params("feature")))
}

// ListReminders handles GET /reminders.
// @Summary List reminder banners
// @Description Returns the state of every reminder banner of this build flavor.
// @Tags Reminders
// @Produce json
// @Success 200 {array} view.State
// @Router /reminders [get]
func (h *ReminderHandler) ListReminders(c *fiber.Ctx) error {
	states := make([]view.State, 0, len(h.order))
	for _, name := range h.order {
		states = append(states, h.banners[name].State())
	}
	return c.Status(fiber.StatusOK).JSON(states)
}

// GetReminder handles GET /reminders/:feature.
// @Summary Get a reminder banner
// @Tags Reminders
// @Produce json
// @Param feature path string true "Feature name" Enums(call_home, storage_insights)
// @Success 200 {object} view.State
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{feature} [get]
func (h *ReminderHandler) GetReminder(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}
	return c.Status(fiber.StatusOK).JSON(b.State())
}

// Dismiss handles POST /reminders/:feature/dismiss.
// @Summary Mute a reminder
// @Description Hides the banner and stores a new remind-later deadline.
// @Tags Reminders
// @Produce json
// @Param feature path string true "Feature name"
// @Success 200 {object} DismissResponse
// @Failure 404 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reminders/{feature}/dismiss [post]
func (h *ReminderHandler) Dismiss(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}

	ctx := c.UserContext()
	feature := b.Feature()
	snooze, err := b.Dismiss(ctx)
	if err != nil {
		logger.Get().Error("Failed to mute reminder", zap.String("feature", feature.Name), zap.Error(err))
		h.notifier.Notify(ctx, notification.KindError,
			fmt.Sprintf("Failed to mute %s activation reminder", feature.DisplayName), err.Error())
		return fail(c, fiber.StatusBadGateway, "Failed to store the remind-later deadline")
	}

	return c.Status(fiber.StatusOK).JSON(DismissResponse{
		Feature:       feature.Name,
		RemindLaterOn: snooze.Token,
		Deadline:      snooze.Deadline,
		Days:          snooze.Days,
	})
}

// SetVisibility handles PUT /reminders/:feature/visibility.
// @Summary Force a reminder visibility
// @Tags Reminders
// @Accept json
// @Produce json
// @Param feature path string true "Feature name"
// @Param visibility body VisibilityRequest true "Visibility"
// @Success 200 {object} VisibilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{feature}/visibility [put]
func (h *ReminderHandler) SetVisibility(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}

	var req VisibilityRequest
	if err := c.BodyParser(&req); err != nil || req.Visible == nil {
		return fail(c, fiber.StatusBadRequest, "Request body must contain a boolean 'visible'")
	}

	b.Service().SetVisibility(*req.Visible)

	return c.Status(fiber.StatusOK).JSON(VisibilityResponse{
		Feature: b.Feature().Name,
		Visible: *req.Visible,
	})
}

// Refresh handles POST /reminders/:feature/refresh.
// @Summary Re-resolve a reminder
// @Description Reads the feature status and snooze deadline again.
// @Tags Reminders
// @Produce json
// @Param feature path string true "Feature name"
// @Success 200 {object} VisibilityResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reminders/{feature}/refresh [post]
func (h *ReminderHandler) Refresh(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}
	return h.resolved(c, b, b.Service().Resolve(c.UserContext()))
}

// DialogClosed handles POST /reminders/:feature/dialog.
// @Summary Report the configuration dialog result
// @Tags Reminders
// @Accept json
// @Produce json
// @Param feature path string true "Feature name"
// @Param dialog body DialogRequest true "Outcome: submitted or cancelled"
// @Success 200 {object} VisibilityResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /reminders/{feature}/dialog [post]
func (h *ReminderHandler) DialogClosed(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}

	var req DialogRequest
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fiber.StatusBadRequest, "Invalid request body")
	}

	err := b.DialogClosed(c.UserContext(), req.Outcome)
	if errors.Is(err, view.ErrInvalidOutcome) {
		return fail(c, fiber.StatusBadRequest, "Outcome must be submitted or cancelled")
	}
	return h.resolved(c, b, err)
}

func (h *ReminderHandler) resolved(c *fiber.Ctx, b *view.Banner, err error) error {
	svc := b.Service()
	switch {
	case err == nil:
	case errors.Is(err, service.ErrSuperseded):
		return fail(c, fiber.StatusConflict, "Visibility was changed while resolving")
	default:
		logger.Get().Error("Failed to resolve reminder", zap.String("feature", svc.Feature().Name), zap.Error(err))
		return fail(c, fiber.StatusBadGateway, "Failed to read the feature status")
	}

	return c.Status(fiber.StatusOK).JSON(VisibilityResponse{
		Feature: svc.Feature().Name,
		Visible: svc.CurrentlyVisible(),
	})
}

// StreamVisibility handles GET /reminders/:feature/events.
// @Summary Stream reminder visibility
// @Description Server-sent events carrying every visibility the reminder emits, starting with the latest one.
// @Tags Reminders
// @Produce text/event-stream
// @Param feature path string true "Feature name"
// @Success 200 {string} string
// @Failure 404 {object} ErrorResponse
// @Router /reminders/{feature}/events [get]
func (h *ReminderHandler) StreamVisibility(c *fiber.Ctx) error {
	b, ok := h.banner(c)
	if !ok {
		return notFound(c)
	}

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")
	c.Set("X-Accel-Buffering", "no")

	name := b.Feature().Name
	sub := b.Service().Subscribe()
	keepAlive := h.keepAlive
	log := logger.Named("sse").With(zap.String("feature", name), zap.String("ray_id", rayID(c)))

	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer sub.Close()
		log.Debug("Visibility stream opened")

		ticker := time.NewTicker(keepAlive)
		defer ticker.Stop()

		for {
			select {
			case visible, ok := <-sub.C():
				if !ok {
					return
				}
				data, _ := json.Marshal(VisibilityResponse{Feature: name, Visible: visible})
				fmt.Fprintf(w, "event: visibility\ndata: %s\n\n", data)
			case <-ticker.C:
				fmt.Fprint(w, ": keep-alive\n\n")
			}
			if err := w.Flush(); err != nil {
				log.Debug("Visibility stream closed", zap.Error(err))
				return
			}
		}
	}))

	return nil
}
