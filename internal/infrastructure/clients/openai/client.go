package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/velectro/voicelead/backend/internal/domain/entities"
	"github.com/velectro/voicelead/backend/internal/domain/providers"
	"github.com/velectro/voicelead/backend/pkg/config"
)

const defaultBaseURL = "https://api.openai.com/v1"

// Client implements the recommendation provider against the OpenAI API:
// Whisper for transcription, chat completions for product generation.
type Client struct {
	apiKey             string
	model              string
	transcriptionModel string
	baseURL            string
	httpClient         *http.Client
	limiter            *tokenBucket
}

// NewClient creates a new OpenAI client.
func NewClient(cfg *config.OpenAIConfig) (*Client, error) {
	if cfg == nil || cfg.APIKey == "" {
		return nil, errors.New("openai api key is required")
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o"
	}
	transcriptionModel := cfg.TranscriptionModel
	if transcriptionModel == "" {
		transcriptionModel = "whisper-1"
	}

	return &Client{
		apiKey:             cfg.APIKey,
		model:              model,
		transcriptionModel: transcriptionModel,
		baseURL:            defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		limiter: newTokenBucket(cfg.RateLimitRPM, cfg.RateLimitBurst),
	}, nil
}

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Transcribe converts interview audio to text via the Whisper endpoint.
func (c *Client) Transcribe(ctx context.Context, audio []byte, filename string) (string, error) {
	if len(audio) == 0 {
		return "", errors.New("audio is required")
	}
	if filename == "" {
		filename = "recording.mp3"
	}

	if err := c.wait(ctx); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return "", err
	}
	if _, err := part.Write(audio); err != nil {
		return "", err
	}
	if err := writer.WriteField("model", c.transcriptionModel); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/audio/transcriptions", &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequestMetric(ctx, c.transcriptionModel, 0, time.Since(start), err)
		return "", fmt.Errorf("transcription request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := c.statusError(resp.StatusCode)
		recordRequestMetric(ctx, c.transcriptionModel, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	var transcription transcriptionResponse
	if err := json.NewDecoder(resp.Body).Decode(&transcription); err != nil {
		recordRequestMetric(ctx, c.transcriptionModel, resp.StatusCode, time.Since(start), err)
		return "", err
	}
	if strings.TrimSpace(transcription.Text) == "" {
		err := errors.New("transcription response missing text")
		recordRequestMetric(ctx, c.transcriptionModel, resp.StatusCode, time.Since(start), err)
		return "", err
	}

	recordRequestMetric(ctx, c.transcriptionModel, resp.StatusCode, time.Since(start), nil)
	return transcription.Text, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatChoice struct {
	Message chatMessage `json:"message"`
}

type chatResponse struct {
	Choices []chatChoice `json:"choices"`
}

type productsEnvelope struct {
	Products []entities.Product `json:"products"`
}

// GenerateRecommendations produces exactly three products from a transcript.
func (c *Client) GenerateRecommendations(ctx context.Context, transcript string) ([]entities.Product, error) {
	if strings.TrimSpace(transcript) == "" {
		return nil, errors.New("transcript is required")
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"model": c.model,
		"messages": []chatMessage{
			{Role: "system", Content: recommendationSystemPrompt},
			{Role: "user", Content: buildRecommendationUserPrompt(transcript)},
		},
		"response_format": map[string]string{"type": "json_object"},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		recordRequestMetric(ctx, c.model, 0, time.Since(start), err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		err := c.statusError(resp.StatusCode)
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	var envelope chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}
	if len(envelope.Choices) == 0 {
		err := errors.New("openai response missing choices")
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	cleaned := stripCodeFence(envelope.Choices[0].Message.Content)

	var parsed productsEnvelope
	if err := json.Unmarshal([]byte(cleaned), &parsed); err != nil {
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, fmt.Errorf("failed to parse openai response: %w", err)
	}
	if len(parsed.Products) == 0 {
		err := errors.New("openai response contains no products")
		recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), err)
		return nil, err
	}

	products := parsed.Products
	if len(products) > recommendationCount {
		products = products[:recommendationCount]
	}

	recordRequestMetric(ctx, c.model, resp.StatusCode, time.Since(start), nil)
	return products, nil
}

func (c *Client) wait(ctx context.Context) error {
	if c.limiter == nil {
		return nil
	}
	waitStart := time.Now()
	if err := c.limiter.Wait(ctx); err != nil {
		return err
	}
	recordRateLimitWait(ctx, c.model, time.Since(waitStart))
	return nil
}

func (c *Client) statusError(statusCode int) error {
	if statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		return fmt.Errorf("%w: openai request failed with status %d", providers.ErrRecommendationUnauthorized, statusCode)
	}
	return fmt.Errorf("openai request failed with status %d", statusCode)
}

// stripCodeFence cleans Markdown code blocks if present
func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimPrefix(cleaned, "```json")
		cleaned = strings.TrimSuffix(cleaned, "```")
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSuffix(cleaned, "```")
	}
	return strings.TrimSpace(cleaned)
}

func newTokenBucket(rpm int, burst int) *tokenBucket {
	if rpm == 0 {
		rpm = 60
	}
	if rpm < 0 {
		return nil
	}
	if burst <= 0 {
		burst = 5
	}
	return newTokenBucketWithRate(rpm, burst)
}

type tokenBucket struct {
	tokens chan struct{}
}

func newTokenBucketWithRate(rpm int, burst int) *tokenBucket {
	bucket := &tokenBucket{
		tokens: make(chan struct{}, burst),
	}

	for i := 0; i < burst; i++ {
		bucket.tokens <- struct{}{}
	}

	interval := time.Minute / time.Duration(rpm)
	if interval <= 0 {
		interval = time.Millisecond
	}

	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			select {
			case bucket.tokens <- struct{}{}:
			default:
			}
		}
	}()

	return bucket
}

func (b *tokenBucket) Wait(ctx context.Context) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-b.tokens:
		return nil
	}
}
