package batch

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/export"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/modules/finance/services/mocks"
)

const balanced = "MERCADO EXEMPLO\n01/03/2025\nARROZ 5KG 29,90\nFEIJAO 1KG 8,50\nTOTAL 38,40\n"
const mismatched = "PADARIA CENTRAL\nPAO FRANCES 12,00\nTOTAL 20,00\n"

func writeFiles(t *testing.T, files map[string]string) string {
	dir := t.TempDir()
	for name, content := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	}
	return dir
}

func TestFindFiles(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"b.txt":     balanced,
		"a.TXT":     mismatched,
		"photo.jpg": "jpeg",
		"notes.md":  "ignored",
	})
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.txt"), 0o755))

	files, err := FindFiles(dir, false)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "a.TXT"), filepath.Join(dir, "b.txt")}, files)

	files, err = FindFiles(dir, true)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	_, err = FindFiles(filepath.Join(dir, "missing"), false)
	assert.Error(t, err)
}

func TestProcessor_Run(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"1.txt": balanced,
		"2.txt": mismatched,
		"3.png": "png-bytes",
		"4.jpg": "jpg-bytes",
	})
	files, err := FindFiles(dir, true)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	recognizer := mocks.NewMockTextRecognizer(ctrl)
	recognizer.EXPECT().ExtractText(gomock.Any(), []byte("png-bytes")).Return(&ocr.Result{Text: balanced}, nil)
	recognizer.EXPECT().ExtractText(gomock.Any(), []byte("jpg-bytes")).Return(nil, errors.New("engine crashed"))

	var done int32
	results := NewProcessor(receipt.DefaultRules(), recognizer, 2).Run(context.Background(), files, func() {
		atomic.AddInt32(&done, 1)
	})

	require.Len(t, results, 4)
	assert.EqualValues(t, 4, done)
	for i, res := range results {
		assert.Equal(t, files[i], res.File)
	}

	require.NoError(t, results[0].Err)
	assert.Equal(t, "MERCADO EXEMPLO", results[0].Receipt.StoreName)
	assert.Empty(t, results[0].Receipt.Warnings)
	assert.NotEmpty(t, results[1].Receipt.Warnings)
	require.NoError(t, results[2].Err)
	assert.Len(t, results[2].Receipt.Items, 2)
	assert.ErrorContains(t, results[3].Err, "engine crashed")

	c := Count(results)
	assert.Equal(t, Counts{Parsed: 3, Failed: 1, WithWarnings: 1}, c)
}

func TestProcessor_ImageWithoutRecognizer(t *testing.T) {
	dir := writeFiles(t, map[string]string{"1.png": "png"})

	results := NewProcessor(receipt.DefaultRules(), nil, 1).Run(context.Background(), []string{filepath.Join(dir, "1.png")}, nil)
	require.Len(t, results, 1)
	assert.ErrorContains(t, results[0].Err, "no OCR provider")
}

func TestReportDocument(t *testing.T) {
	parser := receipt.NewParser(receipt.DefaultRules())
	results := []Result{
		{File: "/tmp/1.txt", Receipt: parser.Parse(balanced)},
		{File: "/tmp/2.txt", Receipt: parser.Parse(mismatched)},
		{File: "/tmp/3.jpg", Err: errors.New("unreadable")},
	}

	doc := ReportDocument(results)
	require.Len(t, doc.Tables, 2)
	assert.Len(t, doc.Tables[0].Rows, 3)
	require.Len(t, doc.Tables[1].Rows, 3)
	assert.Equal(t, "ok", doc.Tables[1].Rows[0][1])
	assert.Equal(t, "review", doc.Tables[1].Rows[1][1])
	assert.Equal(t, "error", doc.Tables[1].Rows[2][1])

	file, err := export.NewService().Export(doc, export.FormatExcel, "report")
	require.NoError(t, err)
	f, err := excelize.OpenReader(bytes.NewReader(file.Data))
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, []string{"Items", "Receipts"}, f.GetSheetList())
}
