package handler

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strings"

	"schoolplanner/internal/entity"
	"schoolplanner/internal/httputil"
	"schoolplanner/internal/quiz"
	"schoolplanner/internal/session"
)

const questionsPerTest = 10

// maxScore is the largest value the INTEGER score columns hold.
const maxScore = math.MaxInt32

type ResultStore interface {
	Create(ctx context.Context, r *entity.TestResult) error
	ListByUser(ctx context.Context, userID int64) ([]entity.TestResult, error)
}

type QuizHandler struct {
	results   ResultStore
	generator *quiz.Generator
	sm        *session.Manager
	view      *Renderer
	log       *slog.Logger
}

func NewQuizHandler(results ResultStore, generator *quiz.Generator, sm *session.Manager, view *Renderer, log *slog.Logger) *QuizHandler {
	return &QuizHandler{
		results:   results,
		generator: generator,
		sm:        sm,
		view:      view,
		log:       log,
	}
}

type submitTestRequest struct {
	Score    int    `json:"score"`
	Total    int    `json:"total"`
	TestName string `json:"test_name"`
}

type SubmitTestResponse struct {
	Success bool `json:"success"`
	Score   int  `json:"score"`
	Total   int  `json:"total"`
	Saved   bool `json:"saved"`
}

// TestPage renders a freshly generated set of questions. Answers are checked
// in the browser.
func (h *QuizHandler) TestPage(w http.ResponseWriter, r *http.Request) {
	questions, err := h.generator.Generate(quiz.DefaultKinds, questionsPerTest)
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.Page(w, r, http.StatusOK, "test.html", View{Title: "Test", Questions: questions})
}

// SubmitTest echoes the score back. Only a logged in user's result is stored.
func (h *QuizHandler) SubmitTest(w http.ResponseWriter, r *http.Request) {
	var req submitTestRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.view.respondError(w, r, err)
		return
	}
	if req.Score < 0 || req.Total < 0 {
		httputil.RespondWithError(w, http.StatusBadRequest, "score and total must not be negative")
		return
	}
	if req.Score > maxScore || req.Total > maxScore {
		httputil.RespondWithError(w, http.StatusBadRequest, "score and total are too large")
		return
	}

	saved := false
	if id, ok := h.sm.Current(r); ok {
		res := entity.NewTestResult(id.UserID, strings.TrimSpace(req.TestName), req.Score, req.Total)
		if err := h.results.Create(r.Context(), &res); err != nil {
			h.view.respondError(w, r, err)
			return
		}
		saved = true
		h.log.InfoContext(r.Context(), "test result saved", "result_id", res.ID, "user_id", id.UserID, "score", req.Score, "total", req.Total)
	}

	httputil.RespondWithJSON(w, http.StatusOK, SubmitTestResponse{
		Success: true,
		Score:   req.Score,
		Total:   req.Total,
		Saved:   saved,
	})
}

// Results lists the caller's saved test results.
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())

	results, err := h.results.ListByUser(r.Context(), id.UserID)
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.Page(w, r, http.StatusOK, "results.html", View{Title: "Results", Results: results})
}
