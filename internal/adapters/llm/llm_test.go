package llm_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/aide/internal/adapters/llm"
	"github.com/PabloGalante/aide/internal/domain"
)

type blockingGateway struct{}

func (blockingGateway) Complete(ctx context.Context, _, _ string, _ int) (string, error) {
	<-ctx.Done()
	return "", ctx.Err()
}

type plainErrGateway struct{ err error }

func (g plainErrGateway) Complete(context.Context, string, string, int) (string, error) {
	return "", g.err
}

func TestTimeoutGatewayCancelsSlowProvider(t *testing.T) {
	gw := llm.WithTimeout(blockingGateway{}, 20*time.Millisecond)

	start := time.Now()
	_, err := gw.Complete(context.Background(), "sys", "hi", 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestTimeoutGatewayWrapsPlainErrors(t *testing.T) {
	boom := errors.New("connection refused")
	gw := llm.WithTimeout(plainErrGateway{err: boom}, time.Second)

	_, err := gw.Complete(context.Background(), "sys", "hi", 10)

	assert.ErrorIs(t, err, domain.ErrProviderFailure)
	assert.ErrorIs(t, err, boom)
}

func TestTimeoutGatewayPassesThroughText(t *testing.T) {
	gw := llm.WithTimeout(llm.NewScriptedGateway(llm.Reply{Text: "hello"}), time.Second)

	out, err := gw.Complete(context.Background(), "sys", "hi", 10)

	require.NoError(t, err)
	assert.Equal(t, "hello", out)
}

func TestScriptedGatewayRecordsCallsAndRunsDry(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Text: "one"})

	out, err := gw.Complete(context.Background(), "inst", "text", 42)
	require.NoError(t, err)
	assert.Equal(t, "one", out)

	_, err = gw.Complete(context.Background(), "inst", "again", 42)
	assert.ErrorIs(t, err, domain.ErrProviderFailure)

	calls := gw.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, llm.Call{Instruction: "inst", UserText: "text", MaxTokens: 42}, calls[0])
}

func TestMockLLMClassifies(t *testing.T) {
	m := llm.NewMockLLM()
	ctx := context.Background()
	classify := "Answer with CREATE_NOTE, CREATE_REMINDER or CONVERSE."

	out, err := m.Complete(ctx, classify, "remind me to call mom at 15:30", 64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "CREATE_REMINDER|"), out)
	assert.Contains(t, out, "|15:30|")

	out, err = m.Complete(ctx, classify, "take a note: buy milk", 64)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "CREATE_NOTE|"), out)

	out, err = m.Complete(ctx, classify, "how are you?", 64)
	require.NoError(t, err)
	assert.Equal(t, "CONVERSE", out)

	out, err = m.Complete(ctx, "You are a helpful assistant.", "how are you?", 64)
	require.NoError(t, err)
	assert.Contains(t, out, "how are you?")
}
