// Package batch parses a directory of receipts offline and builds a
// spreadsheet report of the results.
package batch

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/ocr"
	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

var imageExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".webp": true,
}

// TextRecognizer turns an image into OCR text.
type TextRecognizer interface {
	ExtractText(ctx context.Context, imageData []byte) (*ocr.Result, error)
	GetProviderName() string
}

// Result is the outcome for one file.
type Result struct {
	File    string
	Receipt *receipt.Receipt
	Err     error
}

// Processor parses receipt files concurrently. Text files are parsed
// directly; images need a recognizer.
type Processor struct {
	parser  *receipt.Parser
	ocr     TextRecognizer
	workers int
}

func NewProcessor(rules receipt.Rules, recognizer TextRecognizer, workers int) *Processor {
	if workers <= 0 {
		workers = 4
	}
	return &Processor{
		parser:  receipt.NewParser(rules),
		ocr:     recognizer,
		workers: workers,
	}
}

// FindFiles lists the .txt files of dir, plus images when withImages is
// set. Subdirectories are not visited.
func FindFiles(dir string, withImages bool) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".txt" || (withImages && imageExtensions[ext]) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Run processes files and returns one result per file in input order.
// progress, when set, is called after each file.
func (p *Processor) Run(ctx context.Context, files []string, progress func()) []Result {
	results := make([]Result, len(files))
	indexes := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range indexes {
				r, err := p.processFile(ctx, files[i])
				results[i] = Result{File: files[i], Receipt: r, Err: err}
				if progress != nil {
					progress()
				}
			}
		}()
	}

	for i := range files {
		if ctx.Err() != nil {
			break
		}
		indexes <- i
	}
	close(indexes)
	wg.Wait()

	for i := range results {
		if results[i].File == "" {
			results[i] = Result{File: files[i], Err: ctx.Err()}
		}
	}
	return results
}

func (p *Processor) processFile(ctx context.Context, path string) (*receipt.Receipt, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.EqualFold(filepath.Ext(path), ".txt") {
		return p.parser.Parse(string(data)), nil
	}
	if p.ocr == nil {
		return nil, fmt.Errorf("no OCR provider for %s", filepath.Base(path))
	}
	res, err := p.ocr.ExtractText(ctx, data)
	if err != nil {
		return nil, fmt.Errorf("ocr: %w", err)
	}
	return p.parser.Parse(res.Text), nil
}
