package sheets

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/velectro/voicelead/backend/pkg/config"
)

func TestNewClient(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.SheetsConfig
		wantErr bool
	}{
		{
			name: "Valid config",
			cfg: &config.SheetsConfig{
				SpreadsheetID: "sheet-1",
				AccessToken:   "token",
			},
			wantErr: false,
		},
		{
			name:    "Missing spreadsheet id",
			cfg:     &config.SheetsConfig{AccessToken: "token"},
			wantErr: true,
		},
		{
			name:    "Missing access token",
			cfg:     &config.SheetsConfig{SpreadsheetID: "sheet-1"},
			wantErr: true,
		},
		{
			name:    "Nil config",
			cfg:     nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewClient() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && client == nil {
				t.Error("NewClient() returned nil client")
			}
		})
	}
}

func TestClient_AppendLead(t *testing.T) {
	tests := []struct {
		name           string
		mockStatusCode int
		wantErr        bool
	}{
		{
			name:           "Successful append",
			mockStatusCode: http.StatusOK,
			wantErr:        false,
		},
		{
			name:           "API error response",
			mockStatusCode: http.StatusForbidden,
			wantErr:        true,
		},
	}

	submittedAt := time.Date(2025, 6, 1, 12, 30, 0, 0, time.UTC)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != "POST" {
					t.Errorf("Expected POST request, got %s", r.Method)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer token" {
					t.Errorf("Unexpected Authorization header: %s", got)
				}
				if got := r.URL.Query().Get("valueInputOption"); got != "USER_ENTERED" {
					t.Errorf("Unexpected valueInputOption: %s", got)
				}

				var payload appendRequest
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode body: %v", err)
				}
				if len(payload.Values) != 1 || len(payload.Values[0]) != 3 {
					t.Fatalf("Expected one row of three cells, got %v", payload.Values)
				}
				row := payload.Values[0]
				if row[0] != "Jane Smith" || row[1] != "(555) 123-4567" || row[2] != "2025-06-01T12:30:00Z" {
					t.Errorf("Unexpected row: %v", row)
				}

				w.WriteHeader(tt.mockStatusCode)
			}))
			defer server.Close()

			client := &Client{
				spreadsheetID: "sheet-1",
				sheetRange:    "Sheet1!A:C",
				accessToken:   "token",
				baseURL:       server.URL,
				httpClient:    server.Client(),
			}

			err := client.AppendLead(context.Background(), "Jane Smith", "(555) 123-4567", submittedAt)
			if (err != nil) != tt.wantErr {
				t.Errorf("AppendLead() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
