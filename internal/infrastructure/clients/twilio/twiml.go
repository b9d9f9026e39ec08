package twilio

import (
	"encoding/xml"
	"fmt"
)

// TwiML document types, marshaled in the order Twilio executes verbs.

type twimlResponse struct {
	XMLName xml.Name     `xml:"Response"`
	Say     *twimlSay    `xml:"Say,omitempty"`
	Record  *twimlRecord `xml:"Record,omitempty"`
	Hangup  *twimlHangup `xml:"Hangup,omitempty"`
}

type twimlSay struct {
	Voice string `xml:"voice,attr"`
	Text  string `xml:",chardata"`
}

type twimlRecord struct {
	Timeout                       int    `xml:"timeout,attr"`
	FinishOnKey                   string `xml:"finishOnKey,attr"`
	Action                        string `xml:"action,attr"`
	Method                        string `xml:"method,attr"`
	RecordingStatusCallback       string `xml:"recordingStatusCallback,attr"`
	RecordingStatusCallbackMethod string `xml:"recordingStatusCallbackMethod,attr"`
}

type twimlHangup struct{}

const twimlVoice = "alice"

// QuestionTwiML renders the TwiML that asks one interview question and
// records the answer. actionURL receives the POST that advances the script;
// recordingCallbackURL receives recording-status webhooks.
func QuestionTwiML(question, actionURL, recordingCallbackURL string) ([]byte, error) {
	doc := twimlResponse{
		Say: &twimlSay{Voice: twimlVoice, Text: question},
		Record: &twimlRecord{
			Timeout:                       10,
			FinishOnKey:                   "#",
			Action:                        actionURL,
			Method:                        "POST",
			RecordingStatusCallback:       recordingCallbackURL,
			RecordingStatusCallbackMethod: "POST",
		},
	}
	return marshalTwiML(doc)
}

// ClosingTwiML renders the TwiML that thanks the caller and hangs up.
func ClosingTwiML(statement string) ([]byte, error) {
	doc := twimlResponse{
		Say:    &twimlSay{Voice: twimlVoice, Text: statement},
		Hangup: &twimlHangup{},
	}
	return marshalTwiML(doc)
}

func marshalTwiML(doc twimlResponse) ([]byte, error) {
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal twiml: %w", err)
	}
	return append([]byte(xml.Header), body...), nil
}
