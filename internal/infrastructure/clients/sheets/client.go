package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/velectro/voicelead/backend/pkg/config"
)

const defaultBaseURL = "https://sheets.googleapis.com/v4"

// Client appends lead rows to a Google Sheet via the Sheets REST API.
type Client struct {
	spreadsheetID string
	sheetRange    string
	accessToken   string
	baseURL       string
	httpClient    *http.Client
}

// NewClient creates a new Sheets client.
func NewClient(cfg *config.SheetsConfig) (*Client, error) {
	if cfg == nil || !cfg.Configured() {
		return nil, errors.New("sheets spreadsheet id and access token are required")
	}

	sheetRange := cfg.Range
	if sheetRange == "" {
		sheetRange = "Sheet1!A:C"
	}

	return &Client{
		spreadsheetID: cfg.SpreadsheetID,
		sheetRange:    sheetRange,
		accessToken:   cfg.AccessToken,
		baseURL:       defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type appendRequest struct {
	Values [][]string `json:"values"`
}

// AppendLead appends one name/phone/timestamp row.
func (c *Client) AppendLead(ctx context.Context, name, phone string, submittedAt time.Time) error {
	payload := appendRequest{
		Values: [][]string{
			{name, phone, submittedAt.UTC().Format(time.RFC3339)},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal append request: %w", err)
	}

	endpoint := fmt.Sprintf(
		"%s/spreadsheets/%s/values/%s:append?valueInputOption=USER_ENTERED",
		c.baseURL,
		url.PathEscape(c.spreadsheetID),
		url.PathEscape(c.sheetRange),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to append row: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets api error (status %d): %s", resp.StatusCode, string(detail))
	}

	return nil
}
