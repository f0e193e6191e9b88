package agent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

var errMalformedReply = errors.New("malformed structured reply")

// StructuredReply is the exact shape the model must return.
type StructuredReply struct {
	Message  *string        `json:"message"`
	Bible    *structuredRef `json:"bible"`
	Question *string        `json:"question,omitempty"`
}

type structuredRef struct {
	Text *string `json:"text"`
	Ref  *string `json:"ref"`
}

// ParseStructuredReply decodes model output. Any deviation from the schema
// (unknown fields, missing required fields, wrong types, trailing data)
// yields an all-empty reply and a non-nil error.
func ParseStructuredReply(content string) (domain.Reply, error) {
	dec := json.NewDecoder(strings.NewReader(content))
	dec.DisallowUnknownFields()

	var sr StructuredReply
	if err := dec.Decode(&sr); err != nil {
		return domain.Reply{}, fmt.Errorf("%w: %v", errMalformedReply, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.Reply{}, fmt.Errorf("%w: trailing data", errMalformedReply)
	}
	if sr.Message == nil || sr.Bible == nil || sr.Bible.Text == nil || sr.Bible.Ref == nil {
		return domain.Reply{}, fmt.Errorf("%w: missing required field", errMalformedReply)
	}

	reply := domain.Reply{
		Message: *sr.Message,
		Bible:   domain.BibleCitation{Text: *sr.Bible.Text, Ref: *sr.Bible.Ref},
	}
	if sr.Question != nil {
		reply.Question = *sr.Question
	}
	return reply, nil
}
