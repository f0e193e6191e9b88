// Package store provides durable per-user memory backends.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"time"

	"github.com/ashureev/spiritual-guide/internal/domain"
)

// ErrInvalidKey is returned for user keys that are empty or contain
// characters outside [A-Za-z0-9_-].
var ErrInvalidKey = errors.New("invalid user key")

var keyPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{1,128}$`)

// Repository defines the interface for persisting user memory.
// Keys are hashed user ids (see identity.HashUserID).
type Repository interface {
	// Read returns the stored state, or a fresh default state when no record
	// exists or the record cannot be decoded. An error means the backend
	// itself failed.
	Read(ctx context.Context, userID string) (*domain.UserState, error)

	// Write replaces the stored state. It is durable once it returns nil.
	// Concurrent writers for the same key overwrite each other.
	Write(ctx context.Context, userID string, state *domain.UserState) error

	// Ping verifies backend connectivity.
	Ping(ctx context.Context) error

	// Close releases backend resources.
	Close() error
}

func validateKey(userID string) error {
	if !keyPattern.MatchString(userID) {
		return fmt.Errorf("%w: %q", ErrInvalidKey, userID)
	}
	return nil
}

// decodeState parses a stored record. Undecodable records yield a default
// state so a corrupt entry never blocks the user.
func decodeState(data []byte, userID, backend string) *domain.UserState {
	var state domain.UserState
	if err := json.Unmarshal(data, &state); err != nil {
		slog.Warn("discarding unreadable user memory", "backend", backend, "user_id", userID, "error", err)
		return domain.NewUserState(time.Now())
	}
	if state.Version == 0 {
		state.Version = domain.StateVersion
	}
	if state.Topics == nil {
		state.Topics = make(map[domain.TopicKey]*domain.TopicRecord)
	}
	return &state
}

func encodeState(state *domain.UserState, indent bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if indent {
		data, err = json.MarshalIndent(state, "", "  ")
	} else {
		data, err = json.Marshal(state)
	}
	if err != nil {
		return nil, fmt.Errorf("encode user memory: %w", err)
	}
	return data, nil
}
