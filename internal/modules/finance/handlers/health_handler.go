package handlers

import "github.com/gofiber/fiber/v2"

// Providers names the configured capabilities for the health report.
type Providers struct {
	OCR        string `json:"ocr"`
	Extraction string `json:"extraction"`
	Upload     string `json:"upload"`
}

type HealthHandler struct {
	providers Providers
}

func NewHealthHandler(providers Providers) *HealthHandler {
	return &HealthHandler{providers: providers}
}

// GetHealth godoc
// @Summary Service health check
// @Description Check if API is alive
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) GetHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "household-finance-api",
		"providers": h.providers,
	})
}
