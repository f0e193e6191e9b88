package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ashureev/spiritual-guide/internal/bible"
	"github.com/ashureev/spiritual-guide/internal/domain"
	"github.com/ashureev/spiritual-guide/internal/followup"
	"github.com/ashureev/spiritual-guide/internal/history"
	"github.com/ashureev/spiritual-guide/internal/policy"
	"github.com/ashureev/spiritual-guide/internal/store"
	"github.com/google/uuid"
)

// Service runs conversation turns against a gateway and a memory store.
type Service struct {
	gateway Gateway
	repo    store.Repository
	cfg     Config
	logger  *slog.Logger
	metrics *Metrics
	locks   *keyedMutex
	now     func() time.Time
}

// NewService creates a new orchestrator. A nil logger uses slog.Default and
// nil metrics are created unregistered.
func NewService(gateway Gateway, repo store.Repository, cfg Config, logger *slog.Logger, metrics *Metrics) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewMetrics(nil)
	}
	if cfg.ResponseTimeout <= 0 {
		cfg.ResponseTimeout = DefaultConfig().ResponseTimeout
	}
	return &Service{
		gateway: gateway,
		repo:    repo,
		cfg:     cfg,
		logger:  logger,
		metrics: metrics,
		locks:   newKeyedMutex(),
		now:     time.Now,
	}
}

// HandleTurn produces the reply for one user turn. Crisis and off-topic
// messages return their fixed payloads without touching memory or the
// gateway. Gateway failures degrade to sanitized defaults. The only error
// returned is a failed memory write.
func (s *Service) HandleTurn(ctx context.Context, req TurnRequest) (domain.Reply, error) {
	turnID := uuid.NewString()
	logger := s.logger.With("turn_id", turnID, "user_id", req.UserID)

	message := strings.TrimSpace(req.Message)
	persona := strings.TrimSpace(req.Persona)
	if persona == "" {
		persona = policy.DefaultPersona
	}

	if policy.IsCrisis(message) {
		s.metrics.turn(OutcomeCrisis)
		logger.Info("crisis message short-circuited")
		return policy.CrisisReply(), nil
	}
	if policy.IsOffTopic(message) {
		s.metrics.turn(OutcomeOffTopic)
		logger.Info("off-topic message redirected")
		return policy.RedirectReply(), nil
	}

	unlock := s.locks.Lock(req.UserID)
	defer unlock()

	// Memory I/O outlives a cancelled request so a finished turn is recorded.
	storeCtx := context.WithoutCancel(ctx)

	state, err := s.repo.Read(storeCtx, req.UserID)
	if err != nil {
		s.metrics.storeFailure("read")
		logger.Warn("memory read failed, using default state", "error", err)
		state = domain.NewUserState(s.now())
	}

	topic := policy.GuessTopic(message)
	if locked, ok := state.LockedTopic(); ok && s.cfg.TopicLock {
		topic = locked
	}
	state.Frame = &domain.Frame{TopicPrimary: topic}

	now := s.now()
	ackMode := policy.IsAckOrShort(message)
	key := policy.TopicKeyFromMessage(message)
	followup.ResolveIfConfirmed(state, key, message, now)
	followupMode := followup.ShouldFollowUp(state, key)

	var forcedRef string
	switch {
	case bible.WantsStart(message):
		bible.Reset(state)
		forcedRef = bible.NextRef(state, now)
	case bible.WantsContinue(message):
		forcedRef = bible.NextRef(state, now)
	}

	recentQs := history.RecentAssistantQuestions(req.History, history.DefaultMaxQuestions)
	bannedRefs := history.RecentBibleRefs(req.History, history.DefaultMaxRefs)
	lastRef := state.LastBibleRef
	if len(bannedRefs) > 0 {
		lastRef = bannedRefs[0]
	}

	frame := RequestFrame{
		Persona:         persona,
		PersonaExtra:    strings.TrimSpace(req.PersonaExtra),
		Message:         message,
		Frame:           *state.Frame,
		AllowedTopics:   policy.AllowedTopics,
		VetoedTopics:    policy.VetoedTopics,
		AckMode:         ackMode,
		FollowupMode:    followupMode,
		LastBibleRef:    lastRef,
		BannedRefs:      bannedRefs,
		RecentQuestions: recentQs,
		History:         history.Compact(req.History, history.DefaultKeep, history.DefaultMaxLen),
	}

	raw, degraded := s.complete(ctx, logger, frame)

	reply := Sanitize(raw, SanitizeParams{
		AckMode:         ackMode,
		ForcedRef:       forcedRef,
		RecentQuestions: recentQs,
	})

	if !ackMode && key != domain.KeyGeneral {
		followup.SaveAdvice(state, key, message, reply.Message, now)
	}
	if reply.Bible.Ref != "" {
		state.LastBibleRef = reply.Bible.Ref
	}
	state.Touch(now)

	if err := s.repo.Write(storeCtx, req.UserID, state); err != nil {
		s.metrics.storeFailure("write")
		s.metrics.turn(OutcomeError)
		logger.Error("memory write failed", "error", err)
		return domain.Reply{}, fmt.Errorf("write user memory: %w", err)
	}

	outcome := OutcomeAnswered
	if degraded {
		outcome = OutcomeDegraded
	}
	s.metrics.turn(outcome)
	logger.Info("turn completed",
		"topic", topic,
		"topic_key", key,
		"ack_mode", ackMode,
		"followup_mode", followupMode,
		"forced_ref", forcedRef != "",
		"has_question", reply.HasQuestion(),
		"degraded", degraded,
	)

	return WithDefaults(reply), nil
}

// complete calls the gateway once under the response timeout. Any failure
// yields an empty reply and reports degraded.
func (s *Service) complete(ctx context.Context, logger *slog.Logger, frame RequestFrame) (domain.Reply, bool) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.ResponseTimeout)
	defer cancel()

	start := time.Now()
	content, err := s.gateway.Complete(ctx, CompletionRequest{
		Model:       s.cfg.ModelMain,
		System:      policy.SystemPrompt,
		User:        frame.Render(),
		MaxTokens:   s.cfg.MaxTokensMain,
		Temperature: s.cfg.Temperature,
		Schema:      GuidanceSchema,
	})
	s.metrics.gatewayCall(time.Since(start), err)
	if err != nil {
		logger.Warn("gateway call failed", "reason", gatewayFailureReason(err), "error", err)
		return domain.Reply{}, true
	}

	reply, err := ParseStructuredReply(content)
	if err != nil {
		s.metrics.malformed()
		logger.Warn("discarding malformed model output", "content_length", len(content), "error", err)
		return domain.Reply{}, true
	}
	return reply, false
}
