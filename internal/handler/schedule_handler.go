package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/httputil"
	"schoolplanner/internal/session"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"
)

type LessonStore interface {
	Create(ctx context.Context, l *entity.Lesson) error
	List(ctx context.Context) ([]entity.Lesson, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type ScheduleHandler struct {
	lessons  LessonStore
	validate *validator.Validate
	view     *Renderer
	log      *slog.Logger
}

func NewScheduleHandler(lessons LessonStore, validate *validator.Validate, view *Renderer, log *slog.Logger) *ScheduleHandler {
	return &ScheduleHandler{
		lessons:  lessons,
		validate: validate,
		view:     view,
		log:      log,
	}
}

type lessonForm struct {
	Subject   string `form:"subject" validate:"required,max=100"`
	Teacher   string `form:"teacher" validate:"required,max=100"`
	Classroom string `form:"classroom" validate:"required,max=50"`
	DayOfWeek string `form:"day_of_week" validate:"required,weekday"`
	TimeStart string `form:"time_start" validate:"required,clock"`
	TimeEnd   string `form:"time_end" validate:"required,clock"`
}

func (f lessonForm) values() map[string]string {
	return map[string]string{
		"subject":     f.Subject,
		"teacher":     f.Teacher,
		"classroom":   f.Classroom,
		"day_of_week": f.DayOfWeek,
		"time_start":  f.TimeStart,
		"time_end":    f.TimeEnd,
	}
}

func (h *ScheduleHandler) validateLesson(f lessonForm) error {
	if err := h.validate.Struct(f); err != nil {
		return apperror.FromValidator(err)
	}
	// zero padded HH:MM compares correctly as text
	if f.TimeStart >= f.TimeEnd {
		return apperror.NewValidationError(apperror.FieldError{
			Field:   "time_end",
			Message: "time_end must be later than time_start",
		})
	}
	return nil
}

// Schedule shows every lesson grouped by school day, Monday first.
func (h *ScheduleHandler) Schedule(w http.ResponseWriter, r *http.Request) {
	lessons, err := h.lessons.List(r.Context())
	if err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	id, _ := session.FromContext(r.Context())
	h.view.Page(w, r, http.StatusOK, "schedule.html", View{
		Title:          "Schedule",
		Schedule:       entity.GroupByWeekday(lessons),
		CanEditLessons: id.Role.In(entity.LessonEditors...),
	})
}

func (h *ScheduleHandler) AddLessonPage(w http.ResponseWriter, r *http.Request) {
	h.view.Page(w, r, http.StatusOK, "add_lesson.html", View{
		Title:    "Add lesson",
		Weekdays: entity.Weekdays,
		Form:     map[string]string{"day_of_week": entity.Monday},
	})
}

func (h *ScheduleHandler) AddLesson(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	form := lessonForm{
		Subject:   strings.TrimSpace(r.PostFormValue("subject")),
		Teacher:   strings.TrimSpace(r.PostFormValue("teacher")),
		Classroom: strings.TrimSpace(r.PostFormValue("classroom")),
		DayOfWeek: strings.TrimSpace(r.PostFormValue("day_of_week")),
		TimeStart: strings.TrimSpace(r.PostFormValue("time_start")),
		TimeEnd:   strings.TrimSpace(r.PostFormValue("time_end")),
	}

	if err := h.validateLesson(form); err != nil {
		h.view.Page(w, r, http.StatusUnprocessableEntity, "add_lesson.html", View{
			Title:    "Add lesson",
			Error:    apperror.Message(err),
			Weekdays: entity.Weekdays,
			Form:     form.values(),
		})
		return
	}

	id, _ := session.FromContext(r.Context())
	lesson := entity.Lesson{
		Subject:   form.Subject,
		Teacher:   form.Teacher,
		Classroom: form.Classroom,
		DayOfWeek: form.DayOfWeek,
		TimeStart: form.TimeStart,
		TimeEnd:   form.TimeEnd,
		CreatedBy: null.Int64From(id.UserID),
	}
	if err := h.lessons.Create(r.Context(), &lesson); err != nil {
		h.view.ServerError(w, r, err)
		return
	}

	h.log.InfoContext(r.Context(), "lesson added", "lesson_id", lesson.ID, "user_id", id.UserID)
	h.view.Redirect(w, r, "/schedule", "Lesson added successfully")
}

// DeleteLesson lets any admin or teacher remove any lesson. Deleting a lesson
// that does not exist still succeeds.
func (h *ScheduleHandler) DeleteLesson(w http.ResponseWriter, r *http.Request) {
	lessonID, ok := pathID(r)
	if !ok {
		httputil.RespondWithError(w, http.StatusBadRequest, "Invalid lesson id")
		return
	}

	deleted, err := h.lessons.Delete(r.Context(), lessonID)
	if err != nil {
		h.view.respondError(w, r, err)
		return
	}

	id, _ := session.FromContext(r.Context())
	h.log.InfoContext(r.Context(), "lesson delete", "lesson_id", lessonID, "user_id", id.UserID, "deleted", deleted)
	httputil.RespondWithJSON(w, http.StatusOK, httputil.Result{Success: true, Message: "Lesson deleted"})
}
