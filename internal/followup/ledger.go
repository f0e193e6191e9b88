// Package followup records the last advice given per topic key and whether
// the user still owes a confirmation that they acted on it.
//
// Records are never pruned; the set of keys is the fixed domain.TopicKey
// enumeration.
package followup

import (
	"regexp"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/shared"
)

// MaxFieldLen bounds LastIssue and LastAdvice, in runes.
const MaxFieldLen = 160

var confirmationPattern = regexp.MustCompile(`(?i)(lo hice|pude hacerlo|funcion[oó]|me sirvi[oó]|lo intentar[eé]|har[eé] eso)`)

// IsConfirmation reports whether text says the advice was acted on.
func IsConfirmation(text string) bool {
	return confirmationPattern.MatchString(text)
}

// SaveAdvice upserts the record for key and marks a follow-up as pending.
func SaveAdvice(state *domain.UserState, key domain.TopicKey, issue, advice string, now time.Time) {
	if state.Topics == nil {
		state.Topics = make(map[domain.TopicKey]*domain.TopicRecord)
	}
	rec := state.Topics[key]
	if rec == nil {
		rec = &domain.TopicRecord{}
		state.Topics[key] = rec
	}
	rec.LastIssue = shared.Truncate(issue, MaxFieldLen)
	rec.LastAdvice = shared.Truncate(advice, MaxFieldLen)
	rec.LastCheck = now.UnixMilli()
	rec.PendingFollowup = true
}

// ShouldFollowUp reports whether key has a pending follow-up.
func ShouldFollowUp(state *domain.UserState, key domain.TopicKey) bool {
	rec := state.Topics[key]
	return rec != nil && rec.PendingFollowup
}

// ResolveIfConfirmed clears the pending follow-up for key when text confirms
// the advice was acted on. It reports whether a record was resolved.
func ResolveIfConfirmed(state *domain.UserState, key domain.TopicKey, text string, now time.Time) bool {
	if !IsConfirmation(text) {
		return false
	}
	rec := state.Topics[key]
	if rec == nil {
		return false
	}
	rec.PendingFollowup = false
	rec.LastCheck = now.UnixMilli()
	return true
}
