package domain

// BibleCitation is a single quoted verse.
type BibleCitation struct {
	Text string `json:"text"`
	Ref  string `json:"ref"`
}

// Reply is the payload returned to the chat client for one turn.
type Reply struct {
	Message  string        `json:"message"`
	Bible    BibleCitation `json:"bible"`
	Question string        `json:"question,omitempty"`
}

// HasQuestion reports whether the reply carries a follow-up question.
func (r Reply) HasQuestion() bool {
	return r.Question != ""
}
