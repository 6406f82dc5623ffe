package agentflow_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/aide/internal/adapters/llm"
	"github.com/PabloGalante/aide/internal/adapters/storage/memory"
	"github.com/PabloGalante/aide/internal/app/agentflow"
	"github.com/PabloGalante/aide/internal/app/dates"
	"github.com/PabloGalante/aide/internal/domain"
)

var fixedNow = time.Date(2024, 7, 1, 18, 30, 0, 0, time.UTC)

func newResolver() *dates.Resolver {
	return dates.NewResolver(time.UTC).WithClock(func() time.Time { return fixedNow })
}

func TestClassificationInstructionMentionsFormatsAndNow(t *testing.T) {
	instr := agentflow.ClassificationInstruction(fixedNow)

	for _, want := range []string{
		"CREATE_NOTE|<title>|<content>|<category>",
		"CREATE_REMINDER|<title>|<description>|<date>|<priority>",
		"CONVERSE",
		"2024-07-01T18:30:00",
		"Monday",
	} {
		assert.Contains(t, instr, want)
	}
}

func TestClassifierUsesBudgetAndParses(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Text: "CREATE_REMINDER|Gym|Leg day|2024-07-02T07:00:00|high"})
	c := agentflow.NewClassifier(gw, 512, time.UTC)

	action, err := c.Classify(context.Background(), "remind me about the gym")
	require.NoError(t, err)

	r, ok := action.(domain.CreateReminder)
	require.True(t, ok, "got %T", action)
	assert.Equal(t, "Gym", r.Title)
	assert.Equal(t, domain.PriorityHigh, r.Priority)

	calls := gw.Calls()
	require.Len(t, calls, 1)
	assert.Equal(t, 512, calls[0].MaxTokens)
	assert.Equal(t, "remind me about the gym", calls[0].UserText)
	assert.True(t, strings.Contains(calls[0].Instruction, "CREATE_NOTE"))
}

func TestClassifierReturnsProviderError(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Err: domain.ErrProviderFailure})
	c := agentflow.NewClassifier(gw, 512, nil)

	_, err := c.Classify(context.Background(), "hi")
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestDispatcherNoteDefaults(t *testing.T) {
	notes := memory.NewNoteStore()
	d := agentflow.NewDispatcher(notes, memory.NewReminderStore(), newResolver(), nil)

	out, err := d.Dispatch(context.Background(), domain.CreateNote{Title: "T", Content: "C"}, "note this")
	require.NoError(t, err)

	require.NotNil(t, out.Note)
	assert.Equal(t, domain.DefaultCategory, out.Note.Category)
	assert.NotNil(t, out.Note.Tags)
	assert.Empty(t, out.Note.Tags)
	assert.Equal(t, out.Note.CreatedAt, out.Note.UpdatedAt)
	assert.Equal(t, "Note saved.\n\nTitle: T\nContent: C\nCategory: general", out.Response)

	stored, err := notes.GetNote(context.Background(), out.Note.ID)
	require.NoError(t, err)
	assert.Equal(t, "T", stored.Title)
}

func TestDispatcherReminderDateLadder(t *testing.T) {
	cases := []struct {
		name      string
		raw       string
		utterance string
		want      time.Time
	}{
		{"strict", "2024-07-09T15:00:00", "", time.Date(2024, 7, 9, 15, 0, 0, 0, time.UTC)},
		{"clock in message", "not-a-date", "call the bank at 15h", time.Date(2024, 7, 2, 15, 0, 0, 0, time.UTC)},
		{"default", "", "water the plants", time.Date(2024, 7, 2, dates.DefaultHour, 0, 0, 0, time.UTC)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			reminders := memory.NewReminderStore()
			d := agentflow.NewDispatcher(memory.NewNoteStore(), reminders, newResolver(), nil)

			out, err := d.Dispatch(context.Background(),
				domain.CreateReminder{Title: "T", Description: "D", RawDate: tc.raw}, tc.utterance)
			require.NoError(t, err)

			require.NotNil(t, out.Reminder)
			assert.True(t, out.Reminder.Date.Equal(tc.want), "got %s", out.Reminder.Date)
			assert.Equal(t, domain.PriorityMedium, out.Reminder.Priority)

			all, err := reminders.ListReminders(context.Background(), domain.ReminderFilter{})
			require.NoError(t, err)
			assert.Len(t, all, 1)
		})
	}
}

func TestDispatcherPartialWritesNothing(t *testing.T) {
	notes := memory.NewNoteStore()
	reminders := memory.NewReminderStore()
	d := agentflow.NewDispatcher(notes, reminders, newResolver(), nil)

	out, err := d.Dispatch(context.Background(), domain.PartialIntent{
		Intent:  domain.ActionCreateReminder,
		Missing: []string{"date", "priority"},
	}, "remind me")
	require.NoError(t, err)

	assert.True(t, out.Partial)
	assert.Equal(t, domain.ActionCreateReminder, out.Kind)
	assert.Contains(t, out.Response, "the date, priority")

	n, _ := notes.CountNotes(context.Background())
	r, _ := reminders.CountReminders(context.Background(), domain.ReminderFilter{})
	assert.Zero(t, n)
	assert.Zero(t, r)
}

type brokenReminders struct{}

func (brokenReminders) CreateReminder(context.Context, *domain.Reminder) error {
	return errors.New("connection reset")
}

func TestDispatcherWrapsPersistenceErrors(t *testing.T) {
	d := agentflow.NewDispatcher(memory.NewNoteStore(), brokenReminders{}, newResolver(), nil)

	_, err := d.Dispatch(context.Background(), domain.CreateReminder{Title: "T", RawDate: "2024-07-09"}, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrPersistence)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestClassificationRunsColderThanConversation(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Text: "CONVERSE"}, llm.Reply{Text: "hi"})
	o := agentflow.NewDefaultOrchestrator(gw, memory.NewNoteStore(), memory.NewReminderStore(),
		newResolver(), agentflow.Budgets{Classify: 512, Reply: 4096}, time.UTC)

	ctx := context.Background()
	_, err := o.Dispatch(ctx, o.Classify(ctx, "hello"), "hello")
	require.NoError(t, err)

	calls := gw.Calls()
	require.Len(t, calls, 2)
	require.NotNil(t, calls[0].Temperature)
	assert.Equal(t, agentflow.ClassifyTemperature, *calls[0].Temperature)
	assert.Nil(t, calls[1].Temperature)
}

func TestConversationAgentReturnsVerbatim(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Text: "\n  spaced *reply*  \n"})
	a := agentflow.NewConversationAgent(gw, 4096)

	got, err := a.Reply(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, "\n  spaced *reply*  \n", got)
	assert.Equal(t, 4096, gw.Calls()[0].MaxTokens)
}

func TestOrchestratorClassifyDegradesToConverse(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Err: fmt.Errorf("%w: 503", domain.ErrProviderFailure)})
	o := agentflow.NewDefaultOrchestrator(gw, memory.NewNoteStore(), memory.NewReminderStore(),
		newResolver(), agentflow.Budgets{Classify: 512, Reply: 4096}, time.UTC)

	action := o.Classify(context.Background(), "hello")
	assert.Equal(t, domain.Converse{}, action)
}

func TestOrchestratorConverseMakesOneExtraCall(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Text: "CONVERSE"}, llm.Reply{Text: "Hi!"})
	o := agentflow.NewDefaultOrchestrator(gw, memory.NewNoteStore(), memory.NewReminderStore(),
		newResolver(), agentflow.Budgets{Classify: 512, Reply: 4096}, time.UTC)

	ctx := context.Background()
	action := o.Classify(ctx, "hello")
	out, err := o.Dispatch(ctx, action, "hello")
	require.NoError(t, err)

	assert.Equal(t, domain.ActionConverse, out.Kind)
	assert.Equal(t, "Hi!", out.Response)
	assert.Len(t, gw.Calls(), 2)
}

func TestOrchestratorConverseFailurePropagates(t *testing.T) {
	gw := llm.NewScriptedGateway(llm.Reply{Err: domain.ErrProviderFailure})
	o := agentflow.NewDefaultOrchestrator(gw, memory.NewNoteStore(), memory.NewReminderStore(),
		newResolver(), agentflow.Budgets{Classify: 512, Reply: 4096}, time.UTC)

	_, err := o.Dispatch(context.Background(), domain.Converse{}, "hello")
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}

func TestDispatcherConverseWithoutAgentFails(t *testing.T) {
	d := agentflow.NewDispatcher(memory.NewNoteStore(), memory.NewReminderStore(), newResolver(), nil)

	_, err := d.Dispatch(context.Background(), domain.Converse{}, "hello")
	assert.ErrorIs(t, err, domain.ErrProviderFailure)
}
