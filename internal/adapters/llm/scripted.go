package llm

import (
	"context"
	"fmt"
	"sync"

	"github.com/PabloGalante/aide/internal/domain"
)

// Call records one Complete invocation on a ScriptedGateway.
type Call struct {
	Instruction string
	UserText    string
	MaxTokens   int
	// Temperature is set when the caller asked for one.
	Temperature *float32
}

// Reply is one scripted answer. A non-nil Err is returned instead of Text.
type Reply struct {
	Text string
	Err  error
}

// ScriptedGateway replays a fixed list of replies in order, recording every
// call. Running out of replies is a provider failure.
type ScriptedGateway struct {
	mu      sync.Mutex
	replies []Reply
	calls   []Call
}

func NewScriptedGateway(replies ...Reply) *ScriptedGateway {
	return &ScriptedGateway{replies: replies}
}

func (g *ScriptedGateway) Complete(ctx context.Context, instruction, userText string, maxTokens int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	call := Call{Instruction: instruction, UserText: userText, MaxTokens: maxTokens}
	if t, ok := domain.TemperatureFromContext(ctx); ok {
		call.Temperature = &t
	}
	g.calls = append(g.calls, call)

	if len(g.replies) == 0 {
		return "", fmt.Errorf("%w: no scripted reply left", domain.ErrProviderFailure)
	}
	r := g.replies[0]
	g.replies = g.replies[1:]
	if r.Err != nil {
		return "", r.Err
	}
	return r.Text, nil
}

func (g *ScriptedGateway) Calls() []Call {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]Call(nil), g.calls...)
}
