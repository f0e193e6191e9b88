// Package domain contains core domain types for the guidance service.
package domain

import (
	"encoding/json"
	"math"
	"time"
)

// StateVersion is the schema tag written with every UserState.
const StateVersion = 1

// Frame holds the locked conversation topic for a user.
type Frame struct {
	TopicPrimary TopicTag `json:"topic_primary"`
}

// TopicRecord tracks the last advice given on one topic key.
type TopicRecord struct {
	LastIssue       string `json:"last_issue"`
	LastAdvice      string `json:"last_advice"`
	LastCheck       int64  `json:"last_check"`
	PendingFollowup bool   `json:"pending_followup"`
}

// ReadingPlanState is a user's position in a sequential reading plan.
// Items is never empty once EnsurePlan has run; Index satisfies
// 0 <= Index <= len(Items).
type ReadingPlanState struct {
	PlanID      string   `json:"plan_id"`
	Items       []string `json:"items"`
	Index       int      `json:"index"`
	LastRef     string   `json:"last_ref"`
	LastUpdated int64    `json:"last_updated"`
}

// UnmarshalJSON decodes a plan without failing on malformed content. A plan
// that is not an object, or a malformed items or index field, is left
// zeroed so the plan tracker can reinitialize it. A whole-number index
// written as a float (2.0) is kept.
func (p *ReadingPlanState) UnmarshalJSON(data []byte) error {
	*p = ReadingPlanState{}

	var raw struct {
		PlanID      json.RawMessage `json:"plan_id"`
		Items       json.RawMessage `json:"items"`
		Index       json.RawMessage `json:"index"`
		LastRef     json.RawMessage `json:"last_ref"`
		LastUpdated json.RawMessage `json:"last_updated"`
	}
	if json.Unmarshal(data, &raw) != nil {
		return nil
	}

	decodeString(raw.PlanID, &p.PlanID)
	decodeString(raw.LastRef, &p.LastRef)

	var items []string
	if len(raw.Items) > 0 && json.Unmarshal(raw.Items, &items) == nil {
		p.Items = items
	}
	if n, ok := decodeWhole(raw.Index); ok && n >= 0 {
		p.Index = int(n)
	}
	if n, ok := decodeWhole(raw.LastUpdated); ok {
		p.LastUpdated = n
	}
	return nil
}

func decodeString(data json.RawMessage, dst *string) {
	var s string
	if len(data) > 0 && json.Unmarshal(data, &s) == nil {
		*dst = s
	}
}

// decodeWhole reads a JSON number, truncating any fraction.
func decodeWhole(data json.RawMessage) (int64, bool) {
	var f float64
	if len(data) == 0 || json.Unmarshal(data, &f) != nil {
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f > math.MaxInt64 || f < math.MinInt64 {
		return 0, false
	}
	return int64(f), true
}

// UserState is the durable per-user conversational memory.
type UserState struct {
	Version      int                       `json:"v"`
	Frame        *Frame                    `json:"frame"`
	Topics       map[TopicKey]*TopicRecord `json:"topics"`
	Bible        *ReadingPlanState         `json:"bible"`
	LastBibleRef string                    `json:"last_bible_ref,omitempty"`
	LastSeen     int64                     `json:"last_seen"`
}

// NewUserState returns the default state for a user with no stored record.
func NewUserState(now time.Time) *UserState {
	return &UserState{
		Version:  StateVersion,
		Topics:   make(map[TopicKey]*TopicRecord),
		LastSeen: now.UnixMilli(),
	}
}

// Touch fills missing defaults and stamps LastSeen. Called before every write.
func (s *UserState) Touch(now time.Time) {
	if s.Version == 0 {
		s.Version = StateVersion
	}
	if s.Topics == nil {
		s.Topics = make(map[TopicKey]*TopicRecord)
	}
	s.LastSeen = now.UnixMilli()
}

// LockedTopic returns the topic stored in the frame, if any.
func (s *UserState) LockedTopic() (TopicTag, bool) {
	if s.Frame == nil || s.Frame.TopicPrimary == "" {
		return "", false
	}
	return s.Frame.TopicPrimary, true
}
