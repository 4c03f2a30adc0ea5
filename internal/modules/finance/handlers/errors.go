package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/extraction"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/repositories"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

var badRequestErrors = []error{
	services.ErrNoImage,
	services.ErrInvalidSource,
	services.ErrInvalidSaveMode,
	services.ErrNothingToSave,
	services.ErrInvalidPeriod,
	services.ErrInvalidMonth,
	services.ErrReceiptRequired,
	extraction.ErrInvalidPayload,
	upload.ErrTooLarge,
	upload.ErrTypeNotAllowed,
	ocr.ErrEmptyImage,
}

// respondError maps service errors to HTTP statuses: validation 400,
// missing records 404, unavailable features 503, failing external
// capabilities 502 and anything else 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	message := "internal server error"

	switch {
	case isAny(err, badRequestErrors):
		status, message = fiber.StatusBadRequest, err.Error()
	case errors.Is(err, repositories.ErrNotFound), errors.Is(err, jobs.ErrJobNotFound):
		status, message = fiber.StatusNotFound, "not found"
	case errors.Is(err, services.ErrNoCapability), errors.Is(err, services.ErrAsyncUnavailable):
		status, message = fiber.StatusServiceUnavailable, err.Error()
	case errors.Is(err, services.ErrRecognitionFailed):
		status, message = fiber.StatusBadGateway, err.Error()
	}

	logger := utils.FromContext(c.UserContext())
	if status >= fiber.StatusInternalServerError {
		logger.Error().Err(err).Int("status", status).Msg("❌ Request failed")
	} else {
		logger.Warn().Err(err).Int("status", status).Msg("⚠️ Request rejected")
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}

func isAny(err error, targets []error) bool {
	for _, t := range targets {
		if errors.Is(err, t) {
			return true
		}
	}
	return false
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": message})
}
