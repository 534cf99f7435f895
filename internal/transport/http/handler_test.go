package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/generator"
	"adaptive-quiz-service/internal/infra/memory"
)

func newTestServer(t *testing.T) (*httptest.Server, *app.QuizService) {
	t.Helper()
	service := app.NewQuizService(memory.NewQuizStore(), memory.NewAttemptStore(), &generator.Mock{})
	handler := NewHandler(service, nil)
	wsHandler := NewWSHandler(service)

	mux := http.NewServeMux()
	handler.Register(mux)
	mux.HandleFunc("/ws/leaderboard", wsHandler.ServeWS)
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, service
}

func postJSON(t *testing.T, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	resp, err := http.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	return resp
}

func decode(t *testing.T, resp *http.Response, into any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestGenerateSubmitFlow(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/quiz/generate", map[string]any{
		"learnerId":      "u1",
		"subject":        "Math",
		"grade":          5,
		"totalQuestions": 6,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("generate status %d", resp.StatusCode)
	}
	var quiz struct {
		ID        string `json:"id"`
		Questions []struct {
			ID            string `json:"id"`
			CorrectOption string `json:"correctOption"`
			Explanation   string `json:"explanation"`
		} `json:"questions"`
	}
	decode(t, resp, &quiz)
	if len(quiz.Questions) != 6 {
		t.Fatalf("expected 6 questions, got %d", len(quiz.Questions))
	}
	// Answers must not leak to the quiz taker.
	for _, q := range quiz.Questions {
		if q.CorrectOption != "" || q.Explanation != "" {
			t.Fatalf("quiz payload leaks answers: %+v", q)
		}
	}

	answers := make([]map[string]string, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		answers = append(answers, map[string]string{"questionId": q.ID, "answer": "A"})
	}
	resp = postJSON(t, server.URL+"/quiz/submit", map[string]any{
		"learnerId": "u1",
		"quizId":    quiz.ID,
		"answers":   answers,
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("submit status %d", resp.StatusCode)
	}
	var attempt domain.Attempt
	decode(t, resp, &attempt)
	if attempt.TotalScore != attempt.MaxScore {
		t.Fatalf("expected full marks, got %v/%v", attempt.TotalScore, attempt.MaxScore)
	}
}

func TestGenerateRejectsBadRequest(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/quiz/generate", map[string]any{
		"learnerId":      "u1",
		"subject":        "Math",
		"grade":          5,
		"totalQuestions": 2,
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for too few questions, got %d", resp.StatusCode)
	}
}

func TestSubmitUnknownQuizIs404(t *testing.T) {
	server, _ := newTestServer(t)

	resp := postJSON(t, server.URL+"/quiz/submit", map[string]any{
		"learnerId": "u1",
		"quizId":    "missing",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestHistoryInvalidRangeIs400(t *testing.T) {
	server, _ := newTestServer(t)

	url := server.URL + "/quiz/history?learnerId=u1&from=2026-03-10&to=2026-03-01"
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("get history: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for start>end, got %d", resp.StatusCode)
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	server, service := newTestServer(t)
	seedAttempts(t, service)

	resp, err := http.Get(server.URL + "/quiz/leaderboard?subject=Math&limit=5")
	if err != nil {
		t.Fatalf("get leaderboard: %v", err)
	}
	var board struct {
		Entries []domain.LeaderboardEntry `json:"entries"`
	}
	decode(t, resp, &board)
	if len(board.Entries) != 2 {
		t.Fatalf("expected 2 math entries, got %d", len(board.Entries))
	}
	if board.Entries[0].Rank != 1 || board.Entries[0].TotalScore < board.Entries[1].TotalScore {
		t.Fatalf("entries out of order: %+v", board.Entries)
	}
}

func seedAttempts(t *testing.T, service *app.QuizService) {
	t.Helper()
	ctx := context.Background()
	for i, learner := range []string{"u1", "u2"} {
		quiz, err := service.GenerateQuiz(ctx, app.GenerateRequest{
			LearnerID: learner, Subject: "Math", Grade: 5, TotalQuestions: 5,
		})
		if err != nil {
			t.Fatalf("seed generate: %v", err)
		}
		sheet := domain.AnswerSheet{QuizID: quiz.ID}
		for j, q := range quiz.Questions {
			answer := "A"
			if j <= i { // give u2 a lower score than u1
				answer = "B"
			}
			sheet.Answers = append(sheet.Answers, domain.SubmittedAnswer{QuestionID: q.ID, Answer: answer})
		}
		if _, err := service.SubmitQuiz(ctx, learner, sheet); err != nil {
			t.Fatalf("seed submit: %v", err)
		}
	}
}
