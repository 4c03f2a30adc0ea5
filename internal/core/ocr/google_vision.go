package ocr

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const visionEndpoint = "https://vision.googleapis.com/v1/images:annotate"

// GoogleVisionProvider calls the Cloud Vision annotate API with an API key.
type GoogleVisionProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
}

func NewGoogleVisionProvider(apiKey string) *GoogleVisionProvider {
	return &GoogleVisionProvider{
		apiKey:   apiKey,
		endpoint: visionEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
	}
}

// WithEndpoint points the provider at another annotate URL.
func (p *GoogleVisionProvider) WithEndpoint(endpoint string) *GoogleVisionProvider {
	p.endpoint = endpoint
	return p
}

func (p *GoogleVisionProvider) GetProviderName() string {
	return "Google Cloud Vision"
}

type visionRequest struct {
	Requests []visionRequestItem `json:"requests"`
}

type visionRequestItem struct {
	Image        visionImage        `json:"image"`
	Features     []visionFeature    `json:"features"`
	ImageContext visionImageContext `json:"imageContext"`
}

type visionImage struct {
	Content string `json:"content"`
}

type visionFeature struct {
	Type string `json:"type"`
}

type visionImageContext struct {
	LanguageHints []string `json:"languageHints"`
}

type visionResponse struct {
	Responses []struct {
		FullTextAnnotation *struct {
			Text  string `json:"text"`
			Pages []struct {
				Confidence float64 `json:"confidence"`
			} `json:"pages"`
		} `json:"fullTextAnnotation"`
		Error *struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		} `json:"error,omitempty"`
	} `json:"responses"`
}

// ExtractText uses DOCUMENT_TEXT_DETECTION, which keeps the line structure
// of dense printed text better than TEXT_DETECTION.
func (p *GoogleVisionProvider) ExtractText(ctx context.Context, imageData []byte) (*Result, error) {
	reqBody := visionRequest{
		Requests: []visionRequestItem{{
			Image:        visionImage{Content: base64.StdEncoding.EncodeToString(imageData)},
			Features:     []visionFeature{{Type: "DOCUMENT_TEXT_DETECTION"}},
			ImageContext: visionImageContext{LanguageHints: []string{"pt"}},
		}},
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	u := p.endpoint + "?key=" + url.QueryEscape(p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("google vision request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google vision error (status: %d): %s", resp.StatusCode, string(body))
	}

	var visionResp visionResponse
	if err := json.Unmarshal(body, &visionResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(visionResp.Responses) == 0 {
		return nil, fmt.Errorf("no response from Google Vision")
	}
	first := visionResp.Responses[0]
	if first.Error != nil {
		return nil, fmt.Errorf("google vision API error: %s", first.Error.Message)
	}

	res := &Result{Provider: p.GetProviderName()}
	if first.FullTextAnnotation == nil {
		return res, nil
	}
	res.Text = first.FullTextAnnotation.Text
	res.Confidence = 0.95
	if pages := first.FullTextAnnotation.Pages; len(pages) > 0 && pages[0].Confidence > 0 {
		res.Confidence = pages[0].Confidence
	}
	return res, nil
}
