package handlers

import (
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every handler of the finance module.
type Handlers struct {
	Health   *HealthHandler
	Receipts *ReceiptHandler
	Expenses *ExpenseHandler
	Jobs     *JobHandler
}

// RegisterRoutes mounts the finance API on router.
func RegisterRoutes(router fiber.Router, h Handlers) {
	router.Get("/health", h.Health.GetHealth)

	receipts := router.Group("/receipts")
	receipts.Post("/parse", h.Receipts.ParseText)
	receipts.Post("/normalize", h.Receipts.Normalize)
	receipts.Post("/import", h.Receipts.Import)
	receipts.Post("/", h.Receipts.Save)
	receipts.Get("/", h.Receipts.List)
	receipts.Get("/:id", h.Receipts.Get)
	receipts.Get("/:id/export", h.Receipts.Export)

	expenses := router.Group("/expenses")
	expenses.Get("/", h.Expenses.List)
	expenses.Get("/summary", h.Expenses.Summary)
	expenses.Get("/export", h.Expenses.Export)

	router.Get("/jobs/:id", h.Jobs.Get)
}
