// Package research answers free-form search and code questions with a
// single completion call each. Nothing is persisted.
package research

import (
	"context"
	"fmt"
	"strings"

	"github.com/PabloGalante/aide/internal/domain"
	"github.com/PabloGalante/aide/internal/observability"
)

const (
	DefaultSearchType = "general"
	DefaultLanguage   = "python"
)

type CodeTask string

const (
	TaskAnalyze CodeTask = "analyze"
	TaskExplain CodeTask = "explain"
	TaskImprove CodeTask = "improve"
)

const searchInstruction = `
You are an assistant specialized in research.
Give precise, detailed and well structured answers about any topic you are asked about.
Answer in the SAME LANGUAGE as the user.
`

const codeInstruction = `
You are a software development expert.
Analyze code, point out problems, suggest improvements and give detailed explanations.
Answer in the SAME LANGUAGE as the user.
`

type Service struct {
	llm       domain.CompletionGateway
	maxTokens int
}

func NewService(llm domain.CompletionGateway, maxTokens int) *Service {
	return &Service{llm: llm, maxTokens: maxTokens}
}

type SearchResult struct {
	Query   string `json:"query"`
	Results string `json:"results"`
	Type    string `json:"type"`
}

// Search asks the provider for detailed information about query.
func (s *Service) Search(ctx context.Context, query, searchType string) (*SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", domain.ErrInvalidInput)
	}
	if searchType == "" {
		searchType = DefaultSearchType
	}

	log := observability.LoggerFromContext(ctx).With("search_type", searchType)

	prompt := "Research and give detailed information about: " + query
	results, err := s.llm.Complete(ctx, searchInstruction, prompt, s.maxTokens)
	if err != nil {
		log.Error("search failed", "error", err)
		return nil, err
	}

	log.Info("search answered", "result_len", len(results))
	return &SearchResult{Query: query, Results: results, Type: searchType}, nil
}

type CodeRequest struct {
	Code     string
	Language string
	Task     CodeTask
}

type CodeAnalysis struct {
	Code     string   `json:"code"`
	Language string   `json:"language"`
	Task     CodeTask `json:"task"`
	Analysis string   `json:"analysis"`
}

// AnalyzeCode runs one of the code tasks. Unknown tasks are treated as analyze.
func (s *Service) AnalyzeCode(ctx context.Context, req CodeRequest) (*CodeAnalysis, error) {
	if strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	}
	if req.Language == "" {
		req.Language = DefaultLanguage
	}
	if req.Task == "" {
		req.Task = TaskAnalyze
	}

	log := observability.LoggerFromContext(ctx).With("language", req.Language, "task", req.Task)

	analysis, err := s.llm.Complete(ctx, codeInstruction, codePrompt(req), s.maxTokens)
	if err != nil {
		log.Error("code analysis failed", "error", err)
		return nil, err
	}

	log.Info("code analyzed")
	return &CodeAnalysis{
		Code:     req.Code,
		Language: req.Language,
		Task:     req.Task,
		Analysis: analysis,
	}, nil
}

func codePrompt(req CodeRequest) string {
	switch req.Task {
	case TaskExplain:
		return fmt.Sprintf("Explain this %s code in detail:\n\n%s", req.Language, req.Code)
	case TaskImprove:
		return fmt.Sprintf("Improve this %s code and explain the improvements:\n\n%s", req.Language, req.Code)
	default:
		return fmt.Sprintf("Analyze this %s code:\n\n%s\n\n"+
			"Give a detailed analysis including problems, improvements, explanations and suggestions.",
			req.Language, req.Code)
	}
}
