package agentflow

import (
	"context"
	"time"

	"github.com/PabloGalante/aide/internal/app/dates"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// Budgets are the token limits handed to the completion provider.
type Budgets struct {
	Classify int
	Reply    int
}

// Orchestrator wires the classifier, the dispatcher and the conversation
// fallback around one completion gateway.
type Orchestrator struct {
	classifier *Classifier
	dispatcher *Dispatcher
}

// NewDefaultOrchestrator constructs the classify -> dispatch flow.
func NewDefaultOrchestrator(
	llm domain.CompletionGateway,
	notes NoteWriter,
	reminders ReminderWriter,
	resolver *dates.Resolver,
	budgets Budgets,
	loc *time.Location,
) *Orchestrator {
	conversation := NewConversationAgent(llm, budgets.Reply)
	return &Orchestrator{
		classifier: NewClassifier(llm, budgets.Classify, loc),
		dispatcher: NewDispatcher(notes, reminders, resolver, conversation),
	}
}

// Classify maps text onto an action. A failed classification call degrades
// to a conversation so the message still gets an answer; the conversation
// call then decides whether the provider is really unusable.
func (o *Orchestrator) Classify(ctx context.Context, text string) domain.Action {
	log := observability.LoggerFromContext(ctx)
	start := time.Now()

	action, err := o.classifier.Classify(ctx, text)
	if err != nil {
		log.Warn("classification unavailable, falling back to conversation", "error", err)
		return domain.Converse{}
	}

	log.Info("classify end", "elapsed_ms", time.Since(start).Milliseconds())
	return action
}

// Dispatch executes the action for text.
func (o *Orchestrator) Dispatch(ctx context.Context, action domain.Action, text string) (*Outcome, error) {
	log := observability.LoggerFromContext(ctx)
	start := time.Now()

	out, err := o.dispatcher.Dispatch(ctx, action, text)
	if err != nil {
		log.Error("dispatch failed", "intent", action.Kind(), "error", err)
		return nil, err
	}

	log.Info("dispatch end", "intent", out.Kind, "partial", out.Partial,
		"elapsed_ms", time.Since(start).Milliseconds())
	return out, nil
}
