package conversation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/PabloGalante/aide/internal/app/agentflow"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// ApologyMessage is recorded and returned when a message cannot be handled.
const ApologyMessage = "Sorry, I could not process your message right now. Please try again in a moment."

// Flow classifies and dispatches a message. *agentflow.Orchestrator implements it.
type Flow interface {
	Classify(ctx context.Context, text string) domain.Action
	Dispatch(ctx context.Context, action domain.Action, text string) (*agentflow.Outcome, error)
}

type Service struct {
	sessionStore  domain.SessionStore
	exchangeStore domain.ExchangeStore
	flow          Flow
	now           func() time.Time
}

func NewService(
	sessionStore domain.SessionStore,
	exchangeStore domain.ExchangeStore,
	flow Flow,
) *Service {
	return &Service{
		sessionStore:  sessionStore,
		exchangeStore: exchangeStore,
		flow:          flow,
		now:           time.Now,
	}
}

type SubmitMessageInput struct {
	// SessionID is optional; a new session is created when empty or unknown.
	SessionID domain.SessionID
	Text      string
}

type SubmitMessageOutput struct {
	SessionID domain.SessionID
	Response  string
	Exchange  *domain.Exchange
	Outcome   *agentflow.Outcome
	// Path lists the states the message went through.
	Path []State
}

// ExchangeError is returned when a message ends in the Failed state. The
// apology exchange has already been recorded (unless that write failed too,
// in which case Err says so).
type ExchangeError struct {
	SessionID domain.SessionID
	Response  string
	FailedAt  State
	Err       error
}

func (e *ExchangeError) Error() string {
	return fmt.Sprintf("message failed while %s: %v", e.FailedAt, e.Err)
}

func (e *ExchangeError) Unwrap() error { return e.Err }

// SubmitMessage runs one message through
// ResolvingSession -> Classifying -> Dispatching -> branch -> Persisting -> Done.
// Every message records exactly one exchange, failed ones included.
func (s *Service) SubmitMessage(ctx context.Context, in SubmitMessageInput) (*SubmitMessageOutput, error) {
	r := newRun(ctx, in)

	sessionID, err := s.resolveSession(ctx, in.SessionID)
	r.sessionID = sessionID
	r.log = r.log.With("session_id", sessionID)
	if err != nil {
		return nil, s.fail(ctx, r, err)
	}

	r.to(StateClassifying)
	if strings.TrimSpace(in.Text) == "" {
		return nil, s.fail(ctx, r, fmt.Errorf("%w: message text is required", domain.ErrInvalidInput))
	}
	action := s.flow.Classify(ctx, in.Text)
	r.intent = action.Kind()

	r.to(StateDispatching)
	r.to(branchFor(action))
	out, err := s.flow.Dispatch(ctx, action, in.Text)
	if err != nil {
		return nil, s.fail(ctx, r, err)
	}

	r.to(StatePersisting)
	ex := s.newExchange(r, out.Response, false)
	if err := s.exchangeStore.AppendExchange(context.WithoutCancel(ctx), ex); err != nil {
		r.log.Error("failed to append exchange", "error", err)
		r.to(StateFailed)
		return nil, &ExchangeError{
			SessionID: sessionID,
			Response:  ApologyMessage,
			FailedAt:  StatePersisting,
			Err:       fmt.Errorf("%w: append exchange: %w", domain.ErrPersistence, err),
		}
	}

	r.to(StateDone)
	r.log.Info("message handled", "intent", out.Kind, "partial", out.Partial)

	return &SubmitMessageOutput{
		SessionID: sessionID,
		Response:  out.Response,
		Exchange:  ex,
		Outcome:   out,
		Path:      r.path,
	}, nil
}

// History returns the exchanges of a session, oldest first. Unknown
// sessions have an empty history.
func (s *Service) History(ctx context.Context, sessionID domain.SessionID) ([]*domain.Exchange, error) {
	log := observability.LoggerFromContext(ctx).With("session_id", sessionID)

	exs, err := s.exchangeStore.ListExchangesBySession(ctx, sessionID, 0)
	if err != nil {
		log.Error("failed to list exchanges", "error", err)
		return nil, fmt.Errorf("%w: list exchanges: %w", domain.ErrPersistence, err)
	}

	log.Info("fetched session history", "exchange_count", len(exs))
	return exs, nil
}

// resolveSession returns the id to use even when persisting the session
// fails, so the failed exchange can still be attributed.
func (s *Service) resolveSession(ctx context.Context, id domain.SessionID) (domain.SessionID, error) {
	if id == "" {
		id = domain.SessionID(uuid.NewString())
	} else {
		_, err := s.sessionStore.GetSession(ctx, id)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return id, fmt.Errorf("%w: get session: %w", domain.ErrPersistence, err)
		}
	}

	err := s.sessionStore.CreateSession(ctx, &domain.Session{ID: id, CreatedAt: s.now()})
	if err != nil && !errors.Is(err, domain.ErrAlreadyExists) {
		return id, fmt.Errorf("%w: create session: %w", domain.ErrPersistence, err)
	}
	return id, nil
}

// fail moves the run to Failed and records the apology exchange. The
// write is detached from ctx so a dropped client does not lose the record.
func (s *Service) fail(ctx context.Context, r *run, cause error) error {
	failedAt := r.state
	r.to(StateFailed)
	r.log.Error("message failed", "failed_at", failedAt, "error", cause)

	ex := s.newExchange(r, ApologyMessage, true)
	if err := s.exchangeStore.AppendExchange(context.WithoutCancel(ctx), ex); err != nil {
		r.log.Error("failed to record failed exchange", "error", err)
		cause = errors.Join(cause, fmt.Errorf("%w: append failed exchange: %w", domain.ErrPersistence, err))
	}

	return &ExchangeError{
		SessionID: r.sessionID,
		Response:  ApologyMessage,
		FailedAt:  failedAt,
		Err:       cause,
	}
}

func (s *Service) newExchange(r *run, response string, failed bool) *domain.Exchange {
	intent := r.intent
	if intent == "" {
		intent = domain.ActionConverse
	}
	return &domain.Exchange{
		ID:        domain.ExchangeID(uuid.NewString()),
		SessionID: r.sessionID,
		Message:   r.message,
		Response:  response,
		Intent:    intent,
		Failed:    failed,
		Timestamp: s.now(),
	}
}
