package handler

import (
	"dashboard-reminders/internal/features/callhome/domain"
	"dashboard-reminders/internal/features/callhome/ports"

	"github.com/gofiber/fiber/v2"
)

// StorageInsightsHandler handles the Storage Insights opt-in dialog requests.
type StorageInsightsHandler struct {
	service ports.StorageInsightsService
}

// NewStorageInsightsHandler creates a new StorageInsightsHandler.
func NewStorageInsightsHandler(service ports.StorageInsightsService) *StorageInsightsHandler {
	return &StorageInsightsHandler{
		service: service,
	}
}

// Register mounts the tenant routes under /call-home.
func (h *StorageInsightsHandler) Register(router fiber.Router) {
	g := router.Group("/call-home")
	g.Get("/tenants", h.ListTenants)
	g.Put("/tenant", h.SetTenant)
}

// TenantRequest selects the tenant the agent reports to.
type TenantRequest struct {
	TenantID string `json:"tenant_id"`
	domain.TenantOwner
}

// ListTenants handles GET /call-home/tenants.
// @Summary List Storage Insights tenants
// @Tags StorageInsights
// @Produce json
// @Param ibm_id query string true "IBM ID"
// @Param company_name query string true "Company name"
// @Param first_name query string true "First name"
// @Param last_name query string true "Last name"
// @Param email query string true "Email"
// @Success 200 {array} domain.Tenant
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /call-home/tenants [get]
func (h *StorageInsightsHandler) ListTenants(c *fiber.Ctx) error {
	owner := domain.TenantOwner{
		IBMID:       c.Query("ibm_id"),
		CompanyName: c.Query("company_name"),
		FirstName:   c.Query("first_name"),
		LastName:    c.Query("last_name"),
		Email:       c.Query("email"),
	}

	tenants, err := h.service.Tenants(c.UserContext(), owner)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusOK).JSON(tenants)
}

// SetTenant handles PUT /call-home/tenant.
// @Summary Opt in to Storage Insights
// @Description Points the agent at a tenant and mutes the Storage Insights reminder.
// @Tags StorageInsights
// @Accept json
// @Produce json
// @Param tenant body TenantRequest true "Tenant and owner"
// @Success 200 {object} map[string]string
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 502 {object} ErrorResponse
// @Router /call-home/tenant [put]
func (h *StorageInsightsHandler) SetTenant(c *fiber.Ctx) error {
	var req TenantRequest
	if err := c.BodyParser(&req); err != nil {
		rayID, _ := c.Locals("requestid").(string)
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Message: "Invalid request body",
			RayID:   rayID,
		})
	}

	if err := h.service.OptIn(c.UserContext(), req.TenantID, req.TenantOwner); err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"tenant_id": req.TenantID,
	})
}
