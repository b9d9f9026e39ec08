package providers

import (
	"context"
)

// VoiceProvider defines the interface for the external telephony service
// (Twilio or compatible) that runs the interview call.
type VoiceProvider interface {
	// StartInterviewCall places an outbound call to the given number and
	// returns the provider's call identifier. The provider fetches its
	// script from the TwiML endpoints and posts recording callbacks back
	// to this service.
	StartInterviewCall(ctx context.Context, phone, leadID string) (callSID string, err error)

	// FetchRecording downloads a finished call recording.
	FetchRecording(ctx context.Context, recordingURL string) ([]byte, error)
}
