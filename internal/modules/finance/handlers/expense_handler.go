package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services"
)

type ExpenseHandler struct {
	expenses *services.ExpenseService
}

func NewExpenseHandler(expenses *services.ExpenseService) *ExpenseHandler {
	return &ExpenseHandler{expenses: expenses}
}

// List godoc
// @Summary List expenses of a month
// @Tags Expenses
// @Produce json
// @Param year query int false "Year (default current)"
// @Param month query int false "Month 1-12 (default current)"
// @Success 200 {object} services.MonthListing
// @Failure 400 {object} map[string]string
// @Router /expenses [get]
func (h *ExpenseHandler) List(c *fiber.Ctx) error {
	listing, err := h.expenses.ListMonth(c.UserContext(), c.QueryInt("year", 0), c.QueryInt("month", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(listing)
}

// Summary godoc
// @Summary Spending by category
// @Tags Expenses
// @Produce json
// @Param period query string false "today, this_week, this_month, last_month, this_year, last_30_days, last_90_days"
// @Success 200 {object} analytics.Summary
// @Failure 400 {object} map[string]string
// @Router /expenses/summary [get]
func (h *ExpenseHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.expenses.Summary(c.UserContext(), c.Query("period"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}

// Export godoc
// @Summary Export expenses of a month
// @Tags Expenses
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param year query int false "Year"
// @Param month query int false "Month"
// @Param format query string false "excel or pdf"
// @Success 200 {file} file
// @Router /expenses/export [get]
func (h *ExpenseHandler) Export(c *fiber.Ctx) error {
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	file, err := h.expenses.Export(c.UserContext(), c.QueryInt("year", 0), c.QueryInt("month", 0), format)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}
