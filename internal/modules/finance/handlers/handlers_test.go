package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/jobs"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/upload"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/models"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/repositories"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services/mocks"
)

const receiptText = "MERCADO EXEMPLO\nCNPJ 12.345.678/0001-00\n01/03/2025\n" +
	"ARROZ 5KG 29,90\nDESCONTO 5,00-\nLEITE INTEGRAL 12X1L 52,80\nTOTAL R$ 77,70"

type fakeJobs struct {
	jobs map[uuid.UUID]*jobs.Job
}

func (f *fakeJobs) GetJob(_ context.Context, id uuid.UUID) (*jobs.Job, error) {
	job, ok := f.jobs[id]
	if !ok {
		return nil, jobs.ErrJobNotFound
	}
	return job, nil
}

type testApp struct {
	app      *fiber.App
	ocr      *mocks.MockTextRecognizer
	archive  *mocks.MockImageArchive
	enqueuer *mocks.MockJobEnqueuer
	receipts *mocks.MockReceiptRepo
	expenses *mocks.MockExpenseRepo
	jobs     *fakeJobs
}

func newTestApp(t *testing.T) *testApp {
	ctrl := gomock.NewController(t)
	ta := &testApp{
		ocr:      mocks.NewMockTextRecognizer(ctrl),
		archive:  mocks.NewMockImageArchive(ctrl),
		enqueuer: mocks.NewMockJobEnqueuer(ctrl),
		receipts: mocks.NewMockReceiptRepo(ctrl),
		expenses: mocks.NewMockExpenseRepo(ctrl),
		jobs:     &fakeJobs{jobs: map[uuid.UUID]*jobs.Job{}},
	}

	receiptSvc := services.NewReceiptService(receipt.DefaultRules(), services.ReceiptServiceDeps{
		OCR:      ta.ocr,
		Archive:  ta.archive,
		Jobs:     ta.enqueuer,
		Receipts: ta.receipts,
		Expenses: ta.expenses,
	})
	expenseSvc := services.NewExpenseService(ta.expenses, mocks.NewMockSpendingAggregator(ctrl), nil)

	ta.app = fiber.New()
	ta.app.Use(RequestLogger())
	RegisterRoutes(ta.app, Handlers{
		Health:   NewHealthHandler(Providers{OCR: "Tesseract OCR", Extraction: "none", Upload: "Local Storage"}),
		Receipts: NewReceiptHandler(receiptSvc, 1),
		Expenses: NewExpenseHandler(expenseSvc),
		Jobs:     NewJobHandler(ta.jobs),
	})
	return ta
}

func (ta *testApp) do(t *testing.T, req *http.Request) (*http.Response, []byte) {
	resp, err := ta.app.Test(req, -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func jsonRequest(method, path string, body any) *http.Request {
	var buf bytes.Buffer
	_ = json.NewEncoder(&buf).Encode(body)
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func imageRequest(t *testing.T, path string, image []byte, fields map[string]string) *http.Request {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "cupom.jpg")
	require.NoError(t, err)
	_, err = part.Write(image)
	require.NoError(t, err)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealth(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get(requestIDHeader))
	assert.Contains(t, string(body), `"ocr":"Tesseract OCR"`)
}

func TestReceiptHandler_ParseText(t *testing.T) {
	ta := newTestApp(t)

	resp, body := ta.do(t, jsonRequest(http.MethodPost, "/receipts/parse", ParseTextRequest{Text: receiptText}))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var r receipt.Receipt
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, "MERCADO EXEMPLO", r.StoreName)
	assert.Len(t, r.Items, 2)
	assert.Equal(t, receipt.SourceOCR, r.Source)

	resp, _ = ta.do(t, jsonRequest(http.MethodPost, "/receipts/parse", ParseTextRequest{}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceiptHandler_Normalize(t *testing.T) {
	ta := newTestApp(t)

	payload := `{"loja":"Pet Shop","total_cupom":"189,90","itens":[{"descricao":"Racao 15kg","quantidade":1,"total":"189,90"}]}`
	req := httptest.NewRequest(http.MethodPost, "/receipts/normalize", strings.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	resp, body := ta.do(t, req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var r receipt.Receipt
	require.NoError(t, json.Unmarshal(body, &r))
	assert.Equal(t, "Pet Shop", r.StoreName)
	assert.Equal(t, receipt.SourceExtraction, r.Source)
	require.Len(t, r.Items, 1)
	assert.Empty(t, r.Warnings)

	req = httptest.NewRequest(http.MethodPost, "/receipts/normalize", strings.NewReader(`not json`))
	resp, _ = ta.do(t, req)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceiptHandler_Import(t *testing.T) {
	image := []byte("jpeg-bytes")

	t.Run("sync import returns the parsed receipt", func(t *testing.T) {
		ta := newTestApp(t)
		ta.archive.EXPECT().Enabled().Return(true)
		ta.archive.EXPECT().Archive(gomock.Any(), image, gomock.Any()).
			Return(&upload.Object{Key: "receipts/2025/03/a.jpg", URL: "/files/receipts/2025/03/a.jpg"}, nil)
		ta.ocr.EXPECT().ExtractText(gomock.Any(), image).Return(&ocr.Result{Text: receiptText}, nil)
		ta.ocr.EXPECT().GetProviderName().Return("Tesseract OCR")

		resp, body := ta.do(t, imageRequest(t, "/receipts/import", image, map[string]string{"source": "ocr"}))
		require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

		var res services.ImportResult
		require.NoError(t, json.Unmarshal(body, &res))
		assert.Equal(t, "Tesseract OCR", res.Provider)
		assert.Equal(t, "receipts/2025/03/a.jpg", res.ImageKey)
		assert.Len(t, res.Receipt.Items, 2)
	})

	t.Run("async import queues a job", func(t *testing.T) {
		ta := newTestApp(t)
		jobID := uuid.New()
		ta.archive.EXPECT().Enabled().Return(true)
		ta.archive.EXPECT().Archive(gomock.Any(), image, gomock.Any()).Return(&upload.Object{Key: "receipts/k.jpg"}, nil)
		ta.enqueuer.EXPECT().EnqueueReceiptImport(gomock.Any(), gomock.Any()).
			Return(&jobs.Job{ID: jobID, Status: jobs.StatusPending}, nil)

		resp, body := ta.do(t, imageRequest(t, "/receipts/import?async=true", image, nil))
		require.Equal(t, http.StatusAccepted, resp.StatusCode, string(body))
		assert.Contains(t, string(body), jobID.String())
	})

	t.Run("recognition failure is a bad gateway", func(t *testing.T) {
		ta := newTestApp(t)
		ta.archive.EXPECT().Enabled().Return(false)
		ta.ocr.EXPECT().ExtractText(gomock.Any(), image).Return(nil, errors.New("provider down"))

		resp, _ := ta.do(t, imageRequest(t, "/receipts/import", image, map[string]string{"source": "ocr"}))
		assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
	})

	t.Run("invalid source and missing file are rejected", func(t *testing.T) {
		ta := newTestApp(t)

		resp, _ := ta.do(t, imageRequest(t, "/receipts/import", image, map[string]string{"source": "magic"}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

		resp, _ = ta.do(t, jsonRequest(http.MethodPost, "/receipts/import", map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("oversized image is rejected", func(t *testing.T) {
		ta := newTestApp(t)
		big := bytes.Repeat([]byte{0xff}, 1024*1024+1)

		resp, _ := ta.do(t, imageRequest(t, "/receipts/import", big, nil))
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})
}

func TestReceiptHandler_Save(t *testing.T) {
	ta := newTestApp(t)
	r := receipt.NewParser(receipt.DefaultRules()).Parse(receiptText)

	ta.receipts.EXPECT().CreateWithExpenses(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, m *models.Receipt, expenses []models.Expense) error {
			assert.Equal(t, "MERCADO EXEMPLO", m.StoreName)
			assert.Len(t, expenses, 2)
			return nil
		})

	resp, body := ta.do(t, jsonRequest(http.MethodPost, "/receipts", services.SaveRequest{Receipt: r, Mode: "per_item"}))
	require.Equal(t, http.StatusCreated, resp.StatusCode, string(body))

	resp, _ = ta.do(t, jsonRequest(http.MethodPost, "/receipts", services.SaveRequest{Receipt: r, Mode: "weekly"}))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceiptHandler_Get(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()

	ta.receipts.EXPECT().GetByID(gomock.Any(), id).Return(nil, repositories.ErrNotFound)
	resp, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/receipts/"+id.String(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp, _ = ta.do(t, httptest.NewRequest(http.MethodGet, "/receipts/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestReceiptHandler_Export(t *testing.T) {
	ta := newTestApp(t)
	id := uuid.New()
	r := receipt.NewParser(receipt.DefaultRules()).Parse(receiptText)
	m, err := models.NewReceipt(r)
	require.NoError(t, err)
	m.ID = id

	ta.receipts.EXPECT().GetByID(gomock.Any(), id).Return(m, nil)
	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/receipts/"+id.String()+"/export?format=pdf", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	resp, _ = ta.do(t, httptest.NewRequest(http.MethodGet, "/receipts/"+id.String()+"/export?format=csv", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestExpenseHandler_List(t *testing.T) {
	ta := newTestApp(t)

	resp, _ := ta.do(t, httptest.NewRequest(http.MethodGet, "/expenses?year=2025&month=13", nil))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	ta.expenses.EXPECT().ListBetween(gomock.Any(), gomock.Any(), gomock.Any()).Return([]models.Expense{}, nil)
	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/expenses?year=2025&month=3", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"month":3`)
}

func TestJobHandler_Get(t *testing.T) {
	ta := newTestApp(t)
	job := &jobs.Job{ID: uuid.New(), Type: jobs.TypeReceiptImport, Status: jobs.StatusCompleted}
	ta.jobs.jobs[job.ID] = job

	resp, body := ta.do(t, httptest.NewRequest(http.MethodGet, "/jobs/"+job.ID.String(), nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), job.ID.String())

	resp, _ = ta.do(t, httptest.NewRequest(http.MethodGet, "/jobs/"+uuid.NewString(), nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
