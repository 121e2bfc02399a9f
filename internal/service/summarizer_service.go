package service

import (
	"context"

	"ai-notes-be/pkg/llm"
)

const (
	summarySystemPrompt = "You are a helpful assistant that summarizes text concisely and accurately. Provide a clear, concise summary that captures the main points."
	summaryUserPrefix   = "Please summarize the following text in 1-2 sentences (not bullet points):\n\n"

	summaryTemperature = 0.2
	summaryTopP        = 0.7
	summaryMaxTokens   = 200
)

type ISummarizerService interface {
	// Summarize returns a one or two sentence summary of text. One request,
	// no retries, no caching.
	Summarize(ctx context.Context, text string) (string, error)
}

type summarizerService struct {
	provider llm.LLMProvider
}

func NewSummarizerService(provider llm.LLMProvider) ISummarizerService {
	return &summarizerService{
		provider: provider,
	}
}

func (s *summarizerService) Summarize(ctx context.Context, text string) (string, error) {
	history := []llm.Message{
		{Role: llm.RoleSystem, Content: summarySystemPrompt},
		{Role: llm.RoleUser, Content: summaryUserPrefix + text},
	}

	return s.provider.Chat(ctx, history,
		llm.WithTemperature(summaryTemperature),
		llm.WithTopP(summaryTopP),
		llm.WithMaxTokens(summaryMaxTokens),
	)
}
