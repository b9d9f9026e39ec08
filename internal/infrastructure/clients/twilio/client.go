package twilio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/velectro/voicelead/backend/pkg/config"
)

const defaultBaseURL = "https://api.twilio.com"

// Client places interview calls and fetches recordings via the Twilio REST API.
type Client struct {
	accountSID      string
	authToken       string
	fromNumber      string
	callbackBaseURL string
	baseURL         string
	httpClient      *http.Client
}

// NewClient creates a new Twilio client. callbackBaseURL is the externally
// reachable address of this service, used for TwiML and recording callbacks.
func NewClient(cfg *config.TwilioConfig, callbackBaseURL string) (*Client, error) {
	if cfg == nil || !cfg.Configured() {
		return nil, errors.New("twilio account sid, auth token and from number are required")
	}

	return &Client{
		accountSID:      cfg.AccountSID,
		authToken:       cfg.AuthToken,
		fromNumber:      cfg.FromNumber,
		callbackBaseURL: strings.TrimRight(callbackBaseURL, "/"),
		baseURL:         defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}, nil
}

type callResponse struct {
	SID     string `json:"sid"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// StartInterviewCall places an outbound call that runs the interview script.
// Twilio fetches the first question from /api/twiml/{leadID} and posts the
// finished recording to /api/recording-callback.
func (c *Client) StartInterviewCall(ctx context.Context, phone, leadID string) (string, error) {
	form := url.Values{}
	form.Set("To", phone)
	form.Set("From", c.fromNumber)
	form.Set("Url", fmt.Sprintf("%s/api/twiml/%s", c.callbackBaseURL, leadID))
	form.Set("Record", "true")
	form.Set("RecordingStatusCallback", c.callbackBaseURL+"/api/recording-callback")
	form.Set("RecordingStatusCallbackMethod", "POST")

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Calls.json", c.baseURL, c.accountSID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to initiate call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("twilio api error (status %d): %s", resp.StatusCode, string(body))
	}

	var call callResponse
	if err := json.Unmarshal(body, &call); err != nil {
		return "", fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if call.SID == "" {
		return "", errors.New("no call sid in response")
	}

	return call.SID, nil
}

// FetchRecording downloads a finished call recording as MP3 audio.
func (c *Client) FetchRecording(ctx context.Context, recordingURL string) ([]byte, error) {
	if recordingURL == "" {
		return nil, errors.New("recording url is required")
	}

	// Twilio recording resources serve audio when the media extension is
	// appended to the resource URL.
	if !strings.HasSuffix(recordingURL, ".mp3") && !strings.HasSuffix(recordingURL, ".wav") {
		recordingURL += ".mp3"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, recordingURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(c.accountSID, c.authToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recording: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("twilio recording fetch failed (status %d)", resp.StatusCode)
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read recording: %w", err)
	}
	if len(audio) == 0 {
		return nil, errors.New("recording is empty")
	}

	return audio, nil
}
