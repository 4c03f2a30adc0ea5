package handlers

import (
	"io"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/extraction"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/shared/utils"
)

// ReceiptHandler exposes receipt parsing, import and storage.
type ReceiptHandler struct {
	receipts       *services.ReceiptService
	maxUploadBytes int64
}

func NewReceiptHandler(receipts *services.ReceiptService, maxUploadMB int) *ReceiptHandler {
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}
	return &ReceiptHandler{receipts: receipts, maxUploadBytes: int64(maxUploadMB) * 1024 * 1024}
}

// ParseTextRequest is raw OCR text to parse.
type ParseTextRequest struct {
	Text string `json:"text"`
}

// ParseText godoc
// @Summary Parse receipt OCR text
// @Description Classify the lines of raw OCR text, extract items and reconcile them with the printed total
// @Tags Receipts
// @Accept json
// @Produce json
// @Param data body ParseTextRequest true "OCR text"
// @Success 200 {object} receipt.Receipt
// @Failure 400 {object} map[string]string
// @Router /receipts/parse [post]
func (h *ReceiptHandler) ParseText(c *fiber.Ctx) error {
	var req ParseTextRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Text == "" {
		return badRequest(c, "text is required")
	}
	return c.JSON(h.receipts.ParseText(req.Text))
}

// Normalize godoc
// @Summary Normalize a structured extraction payload
// @Description Fill missing quantities and prices of an extraction service result and reconcile it with the reported total
// @Tags Receipts
// @Accept json
// @Produce json
// @Param data body map[string]interface{} true "Extraction payload"
// @Success 200 {object} receipt.Receipt
// @Failure 400 {object} map[string]string
// @Router /receipts/normalize [post]
func (h *ReceiptHandler) Normalize(c *fiber.Ctx) error {
	summary, err := extraction.ParsePayload(c.Body())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(h.receipts.Normalize(*summary))
}

// Import godoc
// @Summary Import a receipt image
// @Description Recognize a receipt image with OCR or a structured extraction service. With async=true the image is archived and a job id is returned.
// @Tags Receipts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Receipt image"
// @Param source formData string false "ocr, extraction or auto"
// @Param async query bool false "Queue the import"
// @Success 200 {object} services.ImportResult
// @Success 202 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /receipts/import [post]
func (h *ReceiptHandler) Import(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return badRequest(c, "image file is required")
	}
	if file.Size > h.maxUploadBytes {
		return badRequest(c, "image is too large")
	}

	f, err := file.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return respondError(c, err)
	}

	req := services.ImportRequest{
		Image:       data,
		ContentType: file.Header.Get("Content-Type"),
		Source:      c.FormValue("source", c.Query("source")),
	}
	ctx := c.UserContext()
	utils.FromContext(ctx).Info().
		Str("filename", file.Filename).
		Float64("size_kb", float64(file.Size)/1024).
		Msg("📸 Receipt image received")

	if async, _ := strconv.ParseBool(c.Query("async", c.FormValue("async"))); async {
		job, err := h.receipts.ImportAsync(ctx, req)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"job_id": job.ID,
			"status": job.Status,
		})
	}

	result, err := h.receipts.ImportImage(ctx, req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(result)
}

// Save godoc
// @Summary Save a reviewed receipt
// @Description Store the receipt and book expenses, one for the whole receipt (aggregate) or one per item (per_item)
// @Tags Receipts
// @Accept json
// @Produce json
// @Param data body services.SaveRequest true "Receipt and booking options"
// @Success 201 {object} services.SaveResult
// @Failure 400 {object} map[string]string
// @Router /receipts [post]
func (h *ReceiptHandler) Save(c *fiber.Ctx) error {
	var req services.SaveRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	result, err := h.receipts.Save(c.UserContext(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// List godoc
// @Summary List receipts
// @Tags Receipts
// @Produce json
// @Param limit query int false "Max results (default 50)"
// @Success 200 {array} models.Receipt
// @Router /receipts [get]
func (h *ReceiptHandler) List(c *fiber.Ctx) error {
	receipts, err := h.receipts.List(c.UserContext(), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"receipts": receipts,
		"count":    len(receipts),
	})
}

// Get godoc
// @Summary Get a receipt
// @Tags Receipts
// @Produce json
// @Param id path string true "Receipt ID"
// @Success 200 {object} services.ReceiptDetail
// @Failure 404 {object} map[string]string
// @Router /receipts/{id} [get]
func (h *ReceiptHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid receipt id")
	}
	detail, err := h.receipts.Get(c.UserContext(), id)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(detail)
}

// Export godoc
// @Summary Export a receipt
// @Tags Receipts
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce application/pdf
// @Param id path string true "Receipt ID"
// @Param format query string false "excel or pdf"
// @Success 200 {file} file
// @Failure 404 {object} map[string]string
// @Router /receipts/{id}/export [get]
func (h *ReceiptHandler) Export(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid receipt id")
	}
	format, err := export.ParseFormat(c.Query("format"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	file, err := h.receipts.Export(c.UserContext(), id, format)
	if err != nil {
		return respondError(c, err)
	}
	return sendFile(c, file)
}

func sendFile(c *fiber.Ctx, file *export.File) error {
	c.Set(fiber.HeaderContentType, file.ContentType)
	c.Attachment(file.Filename)
	return c.Send(file.Data)
}
