package openai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/velectro/voicelead/backend/internal/domain/providers"
)

func testClient(serverURL string) *Client {
	return &Client{
		apiKey:             "test-key",
		model:              "gpt-4o",
		transcriptionModel: "whisper-1",
		baseURL:            serverURL,
		httpClient:         http.DefaultClient,
	}
}

func chatBody(content string) string {
	resp := map[string]interface{}{
		"choices": []map[string]interface{}{
			{"message": map[string]string{"role": "assistant", "content": content}},
		},
	}
	b, _ := json.Marshal(resp)
	return string(b)
}

func productsJSON(count int) string {
	items := make([]string, 0, count)
	for i := 0; i < count; i++ {
		items = append(items, fmt.Sprintf(`{"id":"p%d","name":"Product %d","rating":4.5}`, i+1, i+1))
	}
	return `{"products":[` + strings.Join(items, ",") + `]}`
}

func TestClient_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		audio          []byte
		mockStatusCode int
		mockBody       string
		wantErr        bool
		wantText       string
	}{
		{
			name:           "Successful transcription",
			audio:          []byte("audio-bytes"),
			mockStatusCode: http.StatusOK,
			mockBody:       `{"text":"wants a camera phone"}`,
			wantErr:        false,
			wantText:       "wants a camera phone",
		},
		{
			name:    "Empty audio",
			audio:   nil,
			wantErr: true,
		},
		{
			name:           "Empty transcription text",
			audio:          []byte("audio-bytes"),
			mockStatusCode: http.StatusOK,
			mockBody:       `{"text":"  "}`,
			wantErr:        true,
		},
		{
			name:           "API error response",
			audio:          []byte("audio-bytes"),
			mockStatusCode: http.StatusInternalServerError,
			mockBody:       `{}`,
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/audio/transcriptions" {
					t.Errorf("Unexpected path: %s", r.URL.Path)
				}
				if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
					t.Errorf("Unexpected Authorization header: %s", got)
				}

				if err := r.ParseMultipartForm(1 << 20); err != nil {
					t.Fatalf("failed to parse multipart form: %v", err)
				}
				if got := r.FormValue("model"); got != "whisper-1" {
					t.Errorf("Unexpected model: %s", got)
				}
				if _, _, err := r.FormFile("file"); err != nil {
					t.Errorf("Expected file part: %v", err)
				}

				w.WriteHeader(tt.mockStatusCode)
				w.Write([]byte(tt.mockBody))
			}))
			defer server.Close()

			client := testClient(server.URL)

			text, err := client.Transcribe(context.Background(), tt.audio, "CA123.mp3")
			if (err != nil) != tt.wantErr {
				t.Errorf("Transcribe() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && text != tt.wantText {
				t.Errorf("Transcribe() = %q, want %q", text, tt.wantText)
			}
		})
	}
}

func TestClient_Transcribe_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.Transcribe(context.Background(), []byte("audio"), "CA123.mp3")
	if !errors.Is(err, providers.ErrRecommendationUnauthorized) {
		t.Errorf("Expected ErrRecommendationUnauthorized, got %v", err)
	}
}

func TestClient_GenerateRecommendations(t *testing.T) {
	tests := []struct {
		name           string
		transcript     string
		mockStatusCode int
		mockBody       string
		wantErr        bool
		wantCount      int
	}{
		{
			name:           "Successful generation",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       chatBody(productsJSON(3)),
			wantErr:        false,
			wantCount:      3,
		},
		{
			name:           "Strips markdown code fence",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       chatBody("```json\n" + productsJSON(3) + "\n```"),
			wantErr:        false,
			wantCount:      3,
		},
		{
			name:           "Truncates to three products",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       chatBody(productsJSON(5)),
			wantErr:        false,
			wantCount:      3,
		},
		{
			name:       "Empty transcript",
			transcript: "   ",
			wantErr:    true,
		},
		{
			name:           "No products in response",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       chatBody(`{"products":[]}`),
			wantErr:        true,
		},
		{
			name:           "Response missing choices",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       `{"choices":[]}`,
			wantErr:        true,
		},
		{
			name:           "Non-JSON content",
			transcript:     "wants a camera phone",
			mockStatusCode: http.StatusOK,
			mockBody:       chatBody("sorry, I cannot help with that"),
			wantErr:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/chat/completions" {
					t.Errorf("Unexpected path: %s", r.URL.Path)
				}

				var payload map[string]interface{}
				if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
					t.Fatalf("failed to decode payload: %v", err)
				}
				if payload["model"] != "gpt-4o" {
					t.Errorf("Unexpected model: %v", payload["model"])
				}
				if _, ok := payload["response_format"]; !ok {
					t.Error("Expected response_format in payload")
				}

				w.WriteHeader(tt.mockStatusCode)
				w.Write([]byte(tt.mockBody))
			}))
			defer server.Close()

			client := testClient(server.URL)

			products, err := client.GenerateRecommendations(context.Background(), tt.transcript)
			if (err != nil) != tt.wantErr {
				t.Errorf("GenerateRecommendations() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && len(products) != tt.wantCount {
				t.Errorf("GenerateRecommendations() returned %d products, want %d", len(products), tt.wantCount)
			}
		})
	}
}

func TestClient_GenerateRecommendations_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	client := testClient(server.URL)

	_, err := client.GenerateRecommendations(context.Background(), "wants a camera phone")
	if !errors.Is(err, providers.ErrRecommendationUnauthorized) {
		t.Errorf("Expected ErrRecommendationUnauthorized, got %v", err)
	}
}

func TestStripCodeFence(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"Plain JSON", `{"products":[]}`, `{"products":[]}`},
		{"JSON fence", "```json\n{\"products\":[]}\n```", `{"products":[]}`},
		{"Bare fence", "```\n{\"products\":[]}\n```", `{"products":[]}`},
		{"Surrounding whitespace", "  {\"products\":[]}  ", `{"products":[]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := stripCodeFence(tt.input); got != tt.want {
				t.Errorf("stripCodeFence() = %q, want %q", got, tt.want)
			}
		})
	}
}
