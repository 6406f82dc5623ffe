package agentflow

import (
	"context"

	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// ConversationAgent answers messages that are not notes or reminders.
type ConversationAgent struct {
	llm       domain.CompletionGateway
	maxTokens int
}

func NewConversationAgent(llm domain.CompletionGateway, maxTokens int) *ConversationAgent {
	return &ConversationAgent{llm: llm, maxTokens: maxTokens}
}

func (a *ConversationAgent) Name() string {
	return "conversation"
}

// Reply returns the provider's answer verbatim.
func (a *ConversationAgent) Reply(ctx context.Context, text string) (string, error) {
	log := observability.LoggerFromContext(ctx).With("agent", a.Name())

	reply, err := a.llm.Complete(ctx, ConversationInstruction(), text, a.maxTokens)
	if err != nil {
		log.Error("conversation call failed", "error", err)
		return "", err
	}
	return reply, nil
}
