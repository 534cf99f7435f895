// Package http exposes the quiz use cases over JSON REST and websockets.
package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"adaptive-quiz-service/internal/app"
	"adaptive-quiz-service/internal/domain"
	"adaptive-quiz-service/internal/history"
)

// Handler serves the quiz API. Leaderboard reads go through the provider so a
// cache can sit in front of the service.
type Handler struct {
	service *app.QuizService
	boards  app.LeaderboardProvider
}

func NewHandler(service *app.QuizService, boards app.LeaderboardProvider) *Handler {
	if boards == nil {
		boards = service
	}
	return &Handler{service: service, boards: boards}
}

// Register wires all routes onto the mux.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	mux.HandleFunc("/quiz/generate", h.generate)
	mux.HandleFunc("/quiz/submit", h.submit)
	mux.HandleFunc("/quiz/history", h.history)
	mux.HandleFunc("/quiz/subjects", h.subjects)
	mux.HandleFunc("/quiz/leaderboard", h.leaderboard)
	mux.HandleFunc("/quiz/hint", h.hint)
}

type generateRequest struct {
	LearnerID      string                 `json:"learnerId"`
	Subject        string                 `json:"subject"`
	Grade          int                    `json:"grade"`
	TotalQuestions int                    `json:"totalQuestions"`
	Points         *domain.PointsStrategy `json:"pointsStrategy,omitempty"`
}

func (h *Handler) generate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	quiz, err := h.service.GenerateQuiz(r.Context(), app.GenerateRequest{
		LearnerID:      req.LearnerID,
		Subject:        req.Subject,
		Grade:          req.Grade,
		TotalQuestions: req.TotalQuestions,
		Points:         req.Points,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, publicQuiz(quiz))
}

type submitRequest struct {
	LearnerID string                   `json:"learnerId"`
	QuizID    string                   `json:"quizId"`
	Answers   []domain.SubmittedAnswer `json:"answers"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req submitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	attempt, err := h.service.SubmitQuiz(r.Context(), req.LearnerID, domain.AnswerSheet{
		QuizID:  req.QuizID,
		Answers: req.Answers,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	if inv, ok := h.boards.(boardInvalidator); ok {
		if err := inv.Invalidate(r.Context(), attempt); err != nil {
			log.Printf("invalidate leaderboard cache: %v", err)
		}
	}
	writeJSON(w, http.StatusCreated, attempt)
}

// boardInvalidator is implemented by caching leaderboard providers whose
// entries go stale when a new attempt lands.
type boardInvalidator interface {
	Invalidate(ctx context.Context, attempt domain.Attempt) error
}

func (h *Handler) history(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learnerId")
	if learnerID == "" {
		http.Error(w, "missing learnerId", http.StatusBadRequest)
		return
	}

	query := history.Query{Subject: r.URL.Query().Get("subject")}
	if g := r.URL.Query().Get("grade"); g != "" {
		grade, err := strconv.Atoi(g)
		if err != nil {
			http.Error(w, "invalid grade", http.StatusBadRequest)
			return
		}
		query.Grade = grade
	}
	var err error
	if query.Start, err = parseDate(r.URL.Query().Get("from"), false); err != nil {
		http.Error(w, "invalid from date", http.StatusBadRequest)
		return
	}
	if query.End, err = parseDate(r.URL.Query().Get("to"), true); err != nil {
		http.Error(w, "invalid to date", http.StatusBadRequest)
		return
	}
	if v := r.URL.Query().Get("minScore"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid minScore", http.StatusBadRequest)
			return
		}
		query.MinScore = &score
	}
	if v := r.URL.Query().Get("maxScore"); v != "" {
		score, err := strconv.ParseFloat(v, 64)
		if err != nil {
			http.Error(w, "invalid maxScore", http.StatusBadRequest)
			return
		}
		query.MaxScore = &score
	}

	attempts, err := h.service.History(r.Context(), learnerID, query)
	if err != nil {
		writeError(w, err)
		return
	}
	rangeStart, rangeEnd, err := h.service.HistoryRange(r.Context(), learnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"count":   len(attempts),
		"results": attempts,
		"defaultRange": map[string]any{
			"from": rangeStart,
			"to":   rangeEnd,
		},
	})
}

func (h *Handler) subjects(w http.ResponseWriter, r *http.Request) {
	learnerID := r.URL.Query().Get("learnerId")
	if learnerID == "" {
		http.Error(w, "missing learnerId", http.StatusBadRequest)
		return
	}
	subjects, err := h.service.Subjects(r.Context(), learnerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subjects": subjects})
}

func (h *Handler) leaderboard(w http.ResponseWriter, r *http.Request) {
	scope := app.Scope{Subject: r.URL.Query().Get("subject")}
	if g := r.URL.Query().Get("grade"); g != "" {
		grade, err := strconv.Atoi(g)
		if err != nil {
			http.Error(w, "invalid grade", http.StatusBadRequest)
			return
		}
		scope.Grade = grade
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil {
			http.Error(w, "invalid limit", http.StatusBadRequest)
			return
		}
		limit = parsed
	}

	entries, err := h.boards.Leaderboard(r.Context(), scope, limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subject": scope.Subject,
		"grade":   scope.Grade,
		"entries": entries,
	})
}

type hintRequest struct {
	Question   string `json:"question"`
	UserAnswer string `json:"userAnswer,omitempty"`
}

func (h *Handler) hint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	var req hintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return
	}
	hint, err := h.service.Hint(r.Context(), req.Question, req.UserAnswer)
	if err != nil {
		if errors.Is(err, app.ErrInvalidRequest) {
			writeError(w, err)
		} else {
			http.Error(w, "hint generation failed", http.StatusBadGateway)
		}
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"question": req.Question, "hint": hint})
}

// publicQuiz hides correct answers and explanations from the quiz payload the
// learner takes.
func publicQuiz(quiz domain.Quiz) map[string]any {
	questions := make([]map[string]any, 0, len(quiz.Questions))
	for _, q := range quiz.Questions {
		questions = append(questions, map[string]any{
			"id":         q.ID,
			"difficulty": q.Difficulty,
			"prompt":     q.Prompt,
			"options":    q.Options,
			"points":     q.Points,
		})
	}
	return map[string]any{
		"id":        quiz.ID,
		"learnerId": quiz.LearnerID,
		"subject":   quiz.Subject,
		"grade":     quiz.Grade,
		"maxScore":  quiz.MaxScore,
		"createdAt": quiz.CreatedAt,
		"questions": questions,
	}
}

// parseDate accepts YYYY-MM-DD or RFC3339. Bare end dates extend to the end of
// the day so "to=2026-03-01" includes that whole day.
func parseDate(raw string, endOfDay bool) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return time.Time{}, err
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return t, nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("write response: %v", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrInvalidRequest),
		errors.Is(err, domain.ErrInvalidSubmission),
		errors.Is(err, domain.ErrInvalidRange):
		status = http.StatusBadRequest
	case errors.Is(err, domain.ErrQuizNotFound):
		status = http.StatusNotFound
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
