package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("BASE_URL")
	os.Unsetenv("OPENAI_MODEL")
	os.Unsetenv("LEAD_INTERVIEW_TIMEOUT")
	os.Unsetenv("GOOGLE_SHEET_RANGE")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "http://localhost:8080", cfg.Server.BaseURL)
	assert.Equal(t, "gpt-4o", cfg.OpenAI.Model)
	assert.Equal(t, "whisper-1", cfg.OpenAI.TranscriptionModel)
	assert.Equal(t, 15*time.Minute, cfg.Lead.InterviewTimeout)
	assert.Equal(t, "Sheet1!A:C", cfg.Sheets.Range)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_TwilioConfig(t *testing.T) {
	os.Setenv("TWILIO_ACCOUNT_SID", "AC123")
	os.Setenv("TWILIO_AUTH_TOKEN", "token")
	os.Setenv("TWILIO_PHONE_NUMBER", "+15550001111")
	defer func() {
		os.Unsetenv("TWILIO_ACCOUNT_SID")
		os.Unsetenv("TWILIO_AUTH_TOKEN")
		os.Unsetenv("TWILIO_PHONE_NUMBER")
	}()

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "AC123", cfg.Twilio.AccountSID)
	assert.True(t, cfg.Twilio.Configured())
}

func TestLoad_InterviewTimeout(t *testing.T) {
	os.Setenv("LEAD_INTERVIEW_TIMEOUT", "30m")
	defer os.Unsetenv("LEAD_INTERVIEW_TIMEOUT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 30*time.Minute, cfg.Lead.InterviewTimeout)
}

func TestLoad_InvalidDurationFallsBack(t *testing.T) {
	os.Setenv("LEAD_INTERVIEW_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("LEAD_INTERVIEW_TIMEOUT")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.Lead.InterviewTimeout)
}

func TestTwilioConfig_Configured(t *testing.T) {
	assert.False(t, (&TwilioConfig{}).Configured())
	assert.False(t, (&TwilioConfig{AccountSID: "AC123", AuthToken: "t"}).Configured())
	assert.True(t, (&TwilioConfig{AccountSID: "AC123", AuthToken: "t", FromNumber: "+1"}).Configured())
}

func TestRedisConfig_RedisAddr(t *testing.T) {
	cfg := &RedisConfig{Host: "redis", Port: 6380}
	assert.Equal(t, "redis:6380", cfg.RedisAddr())
}
