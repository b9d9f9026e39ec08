package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/velectro/voicelead/backend/internal/application/services"
	"github.com/velectro/voicelead/backend/internal/infrastructure/clients/twilio"
	"github.com/velectro/voicelead/backend/internal/infrastructure/observability"
)

// TwiMLHandler serves the interview call script to Twilio. The first
// question is served when the call connects; each recorded answer POSTs
// back here to fetch the next one.
type TwiMLHandler struct {
	script  *services.InterviewScript
	baseURL string
}

// NewTwiMLHandler creates a new TwiML handler. baseURL is the publicly
// reachable address Twilio calls back into.
func NewTwiMLHandler(script *services.InterviewScript, baseURL string) *TwiMLHandler {
	return &TwiMLHandler{script: script, baseURL: baseURL}
}

// ServeInterview handles GET /api/twiml/{userId} and serves the first question
func (h *TwiMLHandler) ServeInterview(w http.ResponseWriter, r *http.Request) {
	h.writeTwiML(w, r, 0)
}

// Advance handles POST /api/twiml-response and serves the next question.
// The current question index rides on the Record action URL.
func (h *TwiMLHandler) Advance(w http.ResponseWriter, r *http.Request) {
	index := 0
	if raw := r.FormValue("questionIndex"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			index = parsed
		}
	}
	h.writeTwiML(w, r, index+1)
}

func (h *TwiMLHandler) writeTwiML(w http.ResponseWriter, r *http.Request, index int) {
	prompt, done := h.script.Prompt(index)

	var (
		doc []byte
		err error
	)
	if done {
		doc, err = twilio.ClosingTwiML(prompt)
	} else {
		actionURL := fmt.Sprintf("%s/api/twiml-response?questionIndex=%d", h.baseURL, index)
		doc, err = twilio.QuestionTwiML(prompt, actionURL, h.baseURL+"/api/recording-callback")
	}
	if err != nil {
		observability.LoggerFromContext(r.Context()).Error().Err(err).Msg("Failed to render TwiML")
		http.Error(w, "Error generating TwiML", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/xml")
	w.WriteHeader(http.StatusOK)
	w.Write(doc)
}
