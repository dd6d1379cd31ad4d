package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/projectflow/project-management-api/internal/models"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type capturedChatRequest struct {
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
	Messages    []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func summaryTestProject() *models.Project {
	due := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	return &models.Project{
		ID:          1,
		Title:       "Website Relaunch",
		Description: "Rebuild the marketing site",
		Tasks: []models.Task{
			{Title: "Design mockups", Status: models.TaskStatusCompleted, EndDate: due},
			{Title: "Implement frontend", Status: models.TaskStatusInProgress, EndDate: due.Add(96 * time.Hour)},
		},
	}
}

func TestGenerateProjectSummary(t *testing.T) {
	var captured capturedChatRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[{"message":{"role":"assistant","content":"Design is done; frontend is underway."}}]}`)
	}))
	defer srv.Close()

	svc := NewSummaryService("test-key", srv.URL+"/v1", zerolog.Nop())

	summary, err := svc.GenerateProjectSummary(context.Background(), summaryTestProject())
	require.NoError(t, err)
	require.Equal(t, "Design is done; frontend is underway.", summary)

	require.Equal(t, "gpt-4o-mini", captured.Model)
	require.Equal(t, 150, captured.MaxTokens)
	require.InDelta(t, 0.3, captured.Temperature, 0.001)

	require.Len(t, captured.Messages, 2)
	require.Equal(t, "system", captured.Messages[0].Role)
	require.Equal(t, "user", captured.Messages[1].Role)

	prompt := captured.Messages[1].Content
	require.Contains(t, prompt, "Project: Website Relaunch.")
	require.Contains(t, prompt, "Design mockups (Status: COMPLETED, Due: 2026-09-01)")
	require.Contains(t, prompt, "Implement frontend (Status: IN_PROGRESS, Due: 2026-09-05)")
	require.Contains(t, prompt, "; ", "task lines are semicolon separated")
}

func TestGenerateProjectSummary_EndpointError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	svc := NewSummaryService("test-key", srv.URL+"/v1", zerolog.Nop())

	_, err := svc.GenerateProjectSummary(context.Background(), summaryTestProject())
	require.Error(t, err)
	require.Contains(t, err.Error(), "429")
}

func TestGenerateProjectSummary_EmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"choices":[]}`)
	}))
	defer srv.Close()

	svc := NewSummaryService("test-key", srv.URL+"/v1", zerolog.Nop())

	_, err := svc.GenerateProjectSummary(context.Background(), summaryTestProject())
	require.Error(t, err)
	require.Contains(t, err.Error(), "empty response")
}
