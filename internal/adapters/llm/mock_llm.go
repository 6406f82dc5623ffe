package llm

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// MockLLM is an offline gateway for local development. It answers
// classification instructions with a keyword guess and everything else with
// an echo.
type MockLLM struct{}

func NewMockLLM() *MockLLM {
	return &MockLLM{}
}

var mockClock = regexp.MustCompile(`\d{1,2}(?::\d{2}|h\d{0,2})`)

func (m *MockLLM) Complete(_ context.Context, instruction, userText string, _ int) (string, error) {
	if !strings.Contains(instruction, "CREATE_REMINDER") {
		return fmt.Sprintf("I hear you. You said %q. Tell me a bit more about it.", userText), nil
	}

	lower := strings.ToLower(userText)
	title := firstWords(userText, 6)
	body := strings.ReplaceAll(userText, "|", " ")

	switch {
	case strings.Contains(lower, "remind") || strings.Contains(lower, "lembr"):
		when := mockClock.FindString(userText)
		if when == "" {
			when = "tomorrow"
		}
		return fmt.Sprintf("CREATE_REMINDER|%s|%s|%s|medium", title, body, when), nil
	case strings.Contains(lower, "note") || strings.Contains(lower, "anot"):
		return fmt.Sprintf("CREATE_NOTE|%s|%s|general", title, body), nil
	default:
		return "CONVERSE", nil
	}
}

func firstWords(s string, n int) string {
	words := strings.Fields(strings.ReplaceAll(s, "|", " "))
	if len(words) > n {
		words = words[:n]
	}
	return strings.Join(words, " ")
}
