package agent

import (
	"context"
	"errors"
)

var (
	// ErrGatewayTimeout means the completion did not finish before the deadline.
	ErrGatewayTimeout = errors.New("gateway timeout")
	// ErrGatewayUnavailable means the provider could not be reached or refused the call.
	ErrGatewayUnavailable = errors.New("gateway unavailable")
)

// Gateway defines the interface for structured LLM completions.
// This interface is implemented by the OpenAI client.
type Gateway interface {
	// Complete sends one system/user exchange and returns the raw content of
	// the first choice. Implementations make a single attempt and honour the
	// context deadline, reporting it as ErrGatewayTimeout.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// Ensure OpenAIClient implements Gateway.
var _ Gateway = (*OpenAIClient)(nil)
