package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/httputil"
	"schoolplanner/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

type TaskStore interface {
	Create(ctx context.Context, t *entity.Task) error
	ListByUser(ctx context.Context, userID int64) ([]entity.Task, error)
	DeleteByIDAndOwner(ctx context.Context, id, userID int64) (bool, error)
}

type TaskHandler struct {
	tasks    TaskStore
	validate *validator.Validate
	view     *Renderer
	log      *slog.Logger
}

func NewTaskHandler(tasks TaskStore, validate *validator.Validate, view *Renderer, log *slog.Logger) *TaskHandler {
	return &TaskHandler{
		tasks:    tasks,
		validate: validate,
		view:     view,
		log:      log,
	}
}

type addTaskRequest struct {
	Title       string `json:"title" validate:"required,max=200"`
	Description string `json:"description" validate:"max=2000"`
	Subject     string `json:"subject" validate:"required,max=100"`
	DueDate     string `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
}

type TaskResponse struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description null.String `json:"description"`
	Subject     string      `json:"subject"`
	DueDate     null.String `json:"due_date"`
	Completed   bool        `json:"completed"`
}

type AddTaskResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Task    TaskResponse `json:"task"`
}

func newTaskResponse(t entity.Task) TaskResponse {
	res := TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Subject:     t.Subject,
		Completed:   t.Completed,
	}
	if t.DueDate.Valid {
		res.DueDate = null.StringFrom(t.Due())
	}
	return res
}

// Tasks lists the caller's own tasks, undated ones last.
func (h *TaskHandler) Tasks(w http.ResponseWriter, r *http.Request) {
	id, _ := session.FromContext(r.Context())

	tasks, err := h.tasks.ListByUser(r.Context(), id.UserID)
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.view.Page(w, r, http.StatusOK, "tasks.html", View{Title: "Tasks", Tasks: tasks})
}

func (h *TaskHandler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req addTaskRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.view.respondError(w, r, err)
		return
	}

	req.Title = strings.TrimSpace(req.Title)
	req.Subject = strings.TrimSpace(req.Subject)
	req.Description = strings.TrimSpace(req.Description)
	req.DueDate = strings.TrimSpace(req.DueDate)

	if err := h.validate.Struct(req); err != nil {
		h.view.respondError(w, r, apperror.FromValidator(err))
		return
	}

	id, _ := session.FromContext(r.Context())
	task := entity.Task{
		Title:   req.Title,
		Subject: req.Subject,
		UserID:  id.UserID,
	}
	if req.Description != "" {
		task.Description = null.StringFrom(req.Description)
	}
	if req.DueDate != "" {
		// already checked by the datetime tag
		due, _ := time.Parse(entity.DateLayout, req.DueDate)
		task.DueDate = null.TimeFrom(due)
	}

	if err := h.tasks.Create(r.Context(), &task); err != nil {
		h.view.respondError(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "task added", "task_id", task.ID, "user_id", id.UserID)
	httputil.RespondWithJSON(w, http.StatusOK, AddTaskResponse{
		Success: true,
		Message: "Task added",
		Task:    newTaskResponse(task),
	})
}

// DeleteTask only touches the caller's own task. Someone else's id, or one
// that does not exist, changes nothing and still reports success.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r)
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	id, _ := session.FromContext(r.Context())
	deleted, err := h.tasks.DeleteByIDAndOwner(r.Context(), taskID, id.UserID)
	if err != nil {
		h.view.respondError(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "task delete", "task_id", taskID, "user_id", id.UserID, "deleted", deleted)
	httputil.RespondWithJSON(w, http.StatusOK, httputil.Result{Success: true, Message: "Task deleted"})
}
