// Package llm calls the Gemini vision model to pre-fill a transaction from
// a photographed receipt.
package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"google.golang.org/genai"

	"finance-tracker/api/models"
)

// ErrScanFailed covers every way the model response can be unusable: not
// JSON, wrong shape, or not a receipt at all.
var ErrScanFailed = errors.New("Failed to scan receipt")

const receiptPrompt = `Analyze this receipt image and extract the following information in JSON format:
- Total amount (just the number)
- Date (in ISO format)
- Description or items purchased (brief summary)
- Merchant/store name
- Suggested category (one of: housing,transportation,groceries,utilities,entertainment,food,shopping,healthcare,education,personal,travel,insurance,gifts,bills,other-expense)

Only respond with valid JSON in this exact format:
{
  "amount": number,
  "date": "ISO date string",
  "description": "string",
  "merchantName": "string",
  "category": "string"
}

Return ONLY valid raw JSON, no Markdown and no code fences.
If it is not a receipt, return an empty object.`

type ReceiptScanner struct {
	client *genai.Client
	model  string
}

func NewReceiptScanner(ctx context.Context, apiKey, model string) (*ReceiptScanner, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:      apiKey,
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}
	return &ReceiptScanner{client: client, model: model}, nil
}

// Scan sends the image to the model and parses its JSON answer.
func (s *ReceiptScanner) Scan(ctx context.Context, image []byte, mimeType string) (*models.ReceiptScan, error) {
	contents := []*genai.Content{
		{
			Role: "user",
			Parts: []*genai.Part{
				{InlineData: &genai.Blob{MIMEType: mimeType, Data: image}},
				{Text: receiptPrompt},
			},
		},
	}

	resp, err := s.client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return nil, fmt.Errorf("generate content: %w", err)
	}
	return parseScan(resp.Text())
}

type scanPayload struct {
	Amount       json.Number `json:"amount"`
	Date         string      `json:"date"`
	Description  string      `json:"description"`
	MerchantName string      `json:"merchantName"`
	Category     string      `json:"category"`
}

func parseScan(raw string) (*models.ReceiptScan, error) {
	clean := cleanModelJSON(raw)
	if clean == "" {
		return nil, ErrScanFailed
	}

	var payload scanPayload
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScanFailed, err)
	}
	if payload.Amount == "" && payload.MerchantName == "" {
		// The model returns an empty object for non-receipts.
		return nil, ErrScanFailed
	}

	amount, err := payload.Amount.Float64()
	if err != nil {
		return nil, fmt.Errorf("%w: bad amount %q", ErrScanFailed, payload.Amount)
	}

	date, err := parseReceiptDate(payload.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: bad date %q", ErrScanFailed, payload.Date)
	}

	return &models.ReceiptScan{
		Amount:       amount,
		Date:         date,
		Description:  payload.Description,
		Category:     payload.Category,
		MerchantName: payload.MerchantName,
	}, nil
}

func parseReceiptDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format")
}

// cleanModelJSON strips Markdown fences the model sometimes wraps its
// answer in despite instructions.
func cleanModelJSON(raw string) string {
	s := strings.TrimSpace(raw)
	if strings.HasPrefix(s, "```") {
		if idx := strings.Index(s, "\n"); idx != -1 {
			s = s[idx+1:]
		}
		s = strings.TrimSpace(s)
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}
