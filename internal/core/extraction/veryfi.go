package extraction

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/MuhamadAgungGumelar/household-finance-be/internal/core/receipt"
)

var (
	pharmacyVendor = regexp.MustCompile(`farmacia|drug|pharm|drogaria`)
	groceryVendor  = regexp.MustCompile(`mercado|market|supermarket|grocery`)
)

// VeryfiExtractor calls the Veryfi document processing API.
type VeryfiExtractor struct {
	baseURL  string
	clientID string
	username string
	apiKey   string
	client   *http.Client
}

func NewVeryfiExtractor(baseURL, clientID, username, apiKey string) *VeryfiExtractor {
	return &VeryfiExtractor{
		baseURL:  strings.TrimRight(baseURL, "/"),
		clientID: clientID,
		username: username,
		apiKey:   apiKey,
		client:   &http.Client{Timeout: 90 * time.Second},
	}
}

func (v *VeryfiExtractor) GetProviderName() string {
	return "Veryfi"
}

type veryfiRequest struct {
	FileData   string   `json:"file_data"`
	FileName   string   `json:"file_name"`
	Categories []string `json:"categories,omitempty"`
}

func (v *VeryfiExtractor) Extract(ctx context.Context, image []byte, mimeType string) (*receipt.StructuredSummary, error) {
	body, err := json.Marshal(veryfiRequest{
		FileData:   base64.StdEncoding.EncodeToString(image),
		FileName:   "receipt" + extensionFor(mimeType),
		Categories: []string{"Grocery", "Pharmacy", "Fuel", "Pet"},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, v.baseURL+"/documents", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("CLIENT-ID", v.clientID)
	req.Header.Set("AUTHORIZATION", fmt.Sprintf("apikey %s:%s", v.username, v.apiKey))

	resp, err := v.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("veryfi request failed: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("veryfi error (status: %d): %s", resp.StatusCode, string(raw))
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc map[string]any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	summary := DecodeSummary(veryfiSummaryMap(doc))
	summary.RawText, _ = doc["ocr_text"].(string)

	log.Info().
		Str("store", summary.Store).
		Int("items", len(summary.Items)).
		Str("suggested_category", summary.SuggestedCategory).
		Msg("✅ Veryfi document processed")
	return &summary, nil
}

// veryfiSummaryMap flattens a Veryfi document into the summary key layout.
func veryfiSummaryMap(doc map[string]any) map[string]any {
	vendor, _ := doc["vendor"].(map[string]any)

	out := map[string]any{
		"store":              firstString(vendor, []string{"name", "raw_name"}),
		"date":               firstString(doc, []string{"date", "created_date"}),
		"currency":           firstString(doc, []string{"currency_code"}),
		"items":              doc["line_items"],
		"suggested_category": suggestCategoryFromVendor(doc, vendor),
	}
	if out["store"] == "" {
		out["store"] = firstString(doc, []string{"vendor_name", "bill_to_name"})
	}
	for _, k := range []string{"total", "total_amount", "subtotal", "net_total"} {
		if _, ok := toDecimal(doc[k]); ok {
			out["total"] = doc[k]
			break
		}
	}
	return out
}

// suggestCategoryFromVendor guesses a receipt-level category from the vendor
// and document category text.
func suggestCategoryFromVendor(doc, vendor map[string]any) string {
	bucket := strings.ToLower(strings.Join([]string{
		firstString(doc, []string{"category"}),
		firstString(vendor, []string{"category"}),
		firstString(vendor, []string{"type"}),
		firstString(vendor, []string{"name"}),
		firstString(vendor, []string{"raw_name"}),
		firstString(doc, []string{"vendor_name"}),
	}, " "))

	switch {
	case pharmacyVendor.MatchString(bucket):
		return "farmacia"
	case groceryVendor.MatchString(bucket):
		return "mercado"
	default:
		return ""
	}
}

func extensionFor(mimeType string) string {
	switch mimeType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "application/pdf":
		return ".pdf"
	default:
		return ".jpg"
	}
}
