package agentflow

import (
	"context"
	"time"

	"github.com/PabloGalante/aide/internal/app/intent"
	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

// ClassifyTemperature keeps the tagged one-line answer close to deterministic.
const ClassifyTemperature = float32(0.1)

// Classifier asks the completion provider which action a message maps to.
type Classifier struct {
	llm       domain.CompletionGateway
	maxTokens int
	now       func() time.Time
	loc       *time.Location
}

func NewClassifier(llm domain.CompletionGateway, maxTokens int, loc *time.Location) *Classifier {
	if loc == nil {
		loc = time.Local
	}
	return &Classifier{
		llm:       llm,
		maxTokens: maxTokens,
		now:       time.Now,
		loc:       loc,
	}
}

func (c *Classifier) Name() string {
	return "classifier"
}

// Classify returns the parsed action. Errors are provider failures only;
// malformed output is never an error.
func (c *Classifier) Classify(ctx context.Context, text string) (domain.Action, error) {
	log := observability.LoggerFromContext(ctx).With("agent", c.Name())

	raw, err := c.llm.Complete(domain.WithTemperature(ctx, ClassifyTemperature), ClassificationInstruction(c.now().In(c.loc)), text, c.maxTokens)
	if err != nil {
		log.Error("classification call failed", "error", err)
		return nil, err
	}

	action := intent.Parse(raw)
	log.Info("message classified", "intent", action.Kind(), "raw", raw)
	return action, nil
}
