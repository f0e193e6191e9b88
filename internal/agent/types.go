// Package agent implements the guidance conversation orchestrator and its
// LLM gateway.
package agent

import (
	"encoding/json"
	"time"
)

// Config holds orchestrator configuration.
type Config struct {
	ModelMain       string
	ResponseTimeout time.Duration
	MaxTokensMain   int
	Temperature     float64
	TopicLock       bool
}

// DefaultConfig returns default orchestrator configuration.
func DefaultConfig() Config {
	return Config{
		ModelMain:       "gpt-4o",
		ResponseTimeout: 12 * time.Second,
		MaxTokensMain:   220,
		Temperature:     0.6,
		TopicLock:       true,
	}
}

// TurnRequest is one inbound user turn after request-layer validation.
// UserID is already hashed.
type TurnRequest struct {
	Persona      string   `json:"persona"`
	Message      string   `json:"message"`
	History      []string `json:"history"`
	UserID       string   `json:"userId"`
	PersonaExtra string   `json:"persona_extra"`
}

// CompletionRequest is a single structured completion call.
type CompletionRequest struct {
	Model       string
	System      string
	User        string
	MaxTokens   int
	Temperature float64
	Schema      ResponseSchema
}

// ResponseSchema names a JSON schema the provider must constrain output to.
type ResponseSchema struct {
	Name   string
	Schema json.RawMessage
}

// GuidanceSchema constrains the model to {message, bible:{text, ref}, question?}.
var GuidanceSchema = ResponseSchema{
	Name: "SpiritualGuidance",
	Schema: json.RawMessage(`{
  "type": "object",
  "properties": {
    "message": {"type": "string"},
    "bible": {
      "type": "object",
      "properties": {"text": {"type": "string"}, "ref": {"type": "string"}},
      "required": ["text", "ref"],
      "additionalProperties": false
    },
    "question": {"type": "string"}
  },
  "required": ["message", "bible"],
  "additionalProperties": false
}`),
}
