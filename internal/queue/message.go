package queue

import (
	"encoding/json"
	"time"
)

// MessageVersion is the current payload version.
const MessageVersion = 1

// Message asks a worker to analyze one candidate's resume.
type Message struct {
	CandidateID string `json:"candidateId"`
	RequestID   string `json:"requestId"`
	EnqueuedAt  string `json:"enqueuedAt"`
	Version     int    `json:"version"`
}

// NewMessage stamps a message with the current version and time.
func NewMessage(candidateID, requestID string, now time.Time) Message {
	return Message{
		CandidateID: candidateID,
		RequestID:   requestID,
		EnqueuedAt:  now.UTC().Format(time.RFC3339),
		Version:     MessageVersion,
	}
}

// EncodeMessage returns the JSON representation of a message.
func EncodeMessage(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

// DecodeMessage parses a JSON payload into a Message.
func DecodeMessage(payload []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(payload, &msg); err != nil {
		return Message{}, err
	}
	return msg, nil
}
