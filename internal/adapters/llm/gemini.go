package llm

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"

	"github.com/PabloGalante/aide/internal/domain"
)

// GeminiConfig selects the backend used by GeminiClient. APIKey selects the
// Gemini API; Project and Location select Vertex AI.
type GeminiConfig struct {
	APIKey    string
	Project   string
	Location  string
	ModelName string
}

type GeminiClient struct {
	client    *genai.Client
	modelName string
}

// NewGeminiClient creates a domain.CompletionGateway backed by Gemini, either
// through the Gemini API (API key) or Vertex AI (project + location).
func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	modelName := cfg.ModelName
	if modelName == "" {
		modelName = "gemini-2.0-flash"
	}

	cc := &genai.ClientConfig{}
	switch {
	case cfg.APIKey != "":
		cc.APIKey = cfg.APIKey
		cc.Backend = genai.BackendGeminiAPI
	case cfg.Project != "" && cfg.Location != "":
		cc.Project = cfg.Project
		cc.Location = cfg.Location
		cc.Backend = genai.BackendVertexAI
	default:
		return nil, fmt.Errorf("gemini client needs an API key or a project and location")
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{
		client:    client,
		modelName: modelName,
	}, nil
}

// Complete implements domain.CompletionGateway.
func (g *GeminiClient) Complete(
	ctx context.Context,
	instruction string,
	userText string,
	maxTokens int,
) (string, error) {
	cfg := generateConfig(ctx, instruction, maxTokens)

	contents := []*genai.Content{
		genai.NewContentFromText(userText, genai.RoleUser),
	}

	res, err := g.client.Models.GenerateContent(ctx, g.modelName, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("%w: gemini generate content: %w", domain.ErrProviderFailure, err)
	}

	text := res.Text()
	if text == "" {
		reason := "empty response"
		if len(res.Candidates) > 0 && res.Candidates[0].FinishReason == genai.FinishReasonMaxTokens {
			reason = "token budget exhausted"
		}
		return "", fmt.Errorf("%w: gemini returned no text (%s)", domain.ErrProviderFailure, reason)
	}

	return text, nil
}

// Conversational sampling defaults, overridable per call with
// domain.WithTemperature.
const (
	defaultTemperature = float32(0.7)
	defaultTopP        = float32(0.9)
)

func generateConfig(ctx context.Context, instruction string, maxTokens int) *genai.GenerateContentConfig {
	temp := defaultTemperature
	if t, ok := domain.TemperatureFromContext(ctx); ok {
		temp = t
	}
	topP := defaultTopP

	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       &temp,
		TopP:              &topP,
		MaxOutputTokens:   int32(maxTokens),
	}
}

// IsProviderFailure reports whether err came from a completion provider.
func IsProviderFailure(err error) bool {
	return errors.Is(err, domain.ErrProviderFailure)
}
