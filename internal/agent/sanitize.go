package agent

import (
	"regexp"
	"strings"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/policy"
	"github.com/ashureev/spiritual-guide/internal/shared"
)

const (
	maxMessageWords = 60
	maxClosingWords = 30
)

var questionEnd = regexp.MustCompile(`\?\s*$`)

// SanitizeParams carries the turn context that sanitization depends on.
type SanitizeParams struct {
	AckMode bool
	// ForcedRef, when set, replaces whatever reference the model chose.
	ForcedRef string
	// RecentQuestions are normalized questions already asked in the transcript.
	RecentQuestions []string
}

// Sanitize enforces reply policy on model output. It is idempotent:
// sanitizing an already sanitized reply returns it unchanged.
func Sanitize(r domain.Reply, p SanitizeParams) domain.Reply {
	msg := shared.LimitWords(shared.StripQuestionMarks(strings.TrimSpace(r.Message)), maxMessageWords)
	ref := shared.CleanRef(strings.TrimSpace(r.Bible.Ref))
	text := strings.TrimSpace(r.Bible.Text)
	question := strings.TrimSpace(r.Question)

	if p.ForcedRef != "" {
		ref = p.ForcedRef
	}

	if question == "" || !questionEnd.MatchString(question) || p.AckMode || isRecent(question, p.RecentQuestions) {
		question = ""
	}

	if p.AckMode {
		if msg == "" {
			msg = policy.ClosingTip
		}
		msg = shared.LimitWords(shared.StripQuestionMarks(msg), maxClosingWords)
	}

	return domain.Reply{
		Message:  msg,
		Bible:    domain.BibleCitation{Text: text, Ref: ref},
		Question: question,
	}
}

// WithDefaults fills each empty field with its fixed fallback, so the reply
// always carries a message and a complete citation.
func WithDefaults(r domain.Reply) domain.Reply {
	if r.Message == "" {
		r.Message = policy.DefaultMessage
	}
	if r.Bible.Text == "" {
		r.Bible.Text = policy.DefaultCitation.Text
	}
	if r.Bible.Ref == "" {
		r.Bible.Ref = policy.DefaultCitation.Ref
	}
	return r
}

func isRecent(question string, recent []string) bool {
	norm := shared.NormalizeQuestion(question)
	for _, q := range recent {
		if shared.NormalizeQuestion(q) == norm {
			return true
		}
	}
	return false
}
