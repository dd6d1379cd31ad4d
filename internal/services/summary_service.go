package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/sashabaranov/go-openai"
)

const (
	summaryModel       = openai.GPT4oMini
	summaryMaxTokens   = 150
	summaryTemperature = 0.3

	summarySystemPrompt = `You are a professional project manager API.
Summarize the current status of the project based on the provided details.
Identify risks (overdue tasks) and progress.
Keep it concise (max 3-4 sentences).`
)

// SummaryService is the gateway to the external text-generation endpoint.
// Each call is a fresh request: no retry, no caching, transport-default
// timeouts. A failure here must never be fatal to the enclosing request.
type SummaryService struct {
	client *openai.Client
	logger zerolog.Logger
}

// NewSummaryService creates a SummaryService. baseURL overrides the
// endpoint host and is meant for tests; leave it empty in production.
func NewSummaryService(apiKey, baseURL string, logger zerolog.Logger) *SummaryService {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &SummaryService{
		client: openai.NewClientWithConfig(cfg),
		logger: logger,
	}
}

// GenerateProjectSummary produces a short status summary for a project.
// The project's Tasks must be loaded.
func (s *SummaryService) GenerateProjectSummary(ctx context.Context, project *models.Project) (string, error) {
	taskParts := make([]string, len(project.Tasks))
	for i, t := range project.Tasks {
		taskParts[i] = fmt.Sprintf("%s (Status: %s, Due: %s)",
			t.Title, t.Status, t.EndDate.Format("2006-01-02"))
	}

	userPrompt := fmt.Sprintf("Project: %s. Description: %s. Tasks: %s. Please provide a status summary.",
		project.Title, project.Description, strings.Join(taskParts, "; "))

	s.logger.Info().Uint64("project_id", project.ID).Msg("requesting project summary")

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: summaryModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: summarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
		Temperature: summaryTemperature,
		MaxTokens:   summaryMaxTokens,
	})
	if err != nil {
		s.logger.Error().Err(err).Uint64("project_id", project.ID).Msg("summary request failed")
		return "", fmt.Errorf("summary endpoint error: %w", err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("empty response from summary endpoint")
	}

	return resp.Choices[0].Message.Content, nil
}
