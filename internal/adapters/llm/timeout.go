package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/PabloGalante/aide/internal/domain"
)

// TimeoutGateway bounds every completion call with a wall-clock deadline and
// guarantees failures are reported as domain.ErrProviderFailure.
type TimeoutGateway struct {
	next    domain.CompletionGateway
	timeout time.Duration
}

func WithTimeout(next domain.CompletionGateway, timeout time.Duration) *TimeoutGateway {
	return &TimeoutGateway{next: next, timeout: timeout}
}

func (g *TimeoutGateway) Complete(ctx context.Context, instruction, userText string, maxTokens int) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	out, err := g.next.Complete(ctx, instruction, userText, maxTokens)
	if err != nil {
		if IsProviderFailure(err) {
			return "", err
		}
		return "", fmt.Errorf("%w: %w", domain.ErrProviderFailure, err)
	}
	return out, nil
}
