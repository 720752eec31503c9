package handler

import (
	"bytes"
	"html/template"
	"log/slog"
	"net/http"

	"schoolplanner/internal/entity"
	"schoolplanner/internal/quiz"
	"schoolplanner/internal/session"
	"schoolplanner/internal/templates"
	"schoolplanner/internal/weather"

	"github.com/pkg/errors"
)

// View is the data every page template receives. Pages read only the fields
// they need.
type View struct {
	Title    string
	User     session.Identity
	LoggedIn bool
	Flashes  []string
	Error    string
	Form     map[string]string

	CanEditLessons bool
	Roles          []entity.Role
	Weekdays       []string
	Weather        *weather.Reading
	Schedule       []entity.DaySchedule
	Tasks          []entity.Task
	Questions      []quiz.Question
	Results        []entity.TestResult
}

var funcMap = template.FuncMap{
	"percent": func(score, total int) int {
		if total <= 0 {
			return 0
		}
		return score * 100 / total
	},
}

type Renderer struct {
	pages map[string]*template.Template
	sm    *session.Manager
	log   *slog.Logger
}

func NewRenderer(sm *session.Manager, log *slog.Logger) (*Renderer, error) {
	pages := make(map[string]*template.Template, len(templates.Pages))
	for _, name := range templates.Pages {
		tmpl, err := template.New(name).Funcs(funcMap).ParseFS(templates.FS, "layout.html", name)
		if err != nil {
			return nil, errors.Wrapf(err, "parsing %s", name)
		}
		pages[name] = tmpl
	}

	return &Renderer{pages: pages, sm: sm, log: log}, nil
}

// Page renders a full page. The session identity and pending flashes are
// filled in here so handlers only set their own fields.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, name string, v View) {
	tmpl, ok := rd.pages[name]
	if !ok {
		rd.ServerError(w, r, errors.Errorf("unknown page %q", name))
		return
	}

	id, ok := session.FromContext(r.Context())
	if !ok {
		id, ok = rd.sm.Current(r)
	}
	v.User, v.LoggedIn = id, ok
	v.Flashes = rd.sm.Flashes(w, r)

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", v); err != nil {
		rd.ServerError(w, r, errors.Wrapf(err, "executing %s", name))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// ServerError logs err and answers with a generic 500.
func (rd *Renderer) ServerError(w http.ResponseWriter, r *http.Request, err error) {
	rd.log.ErrorContext(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

// Redirect adds a flash notice and sends the browser to url with 303.
func (rd *Renderer) Redirect(w http.ResponseWriter, r *http.Request, url, flash string) {
	if flash != "" {
		if err := rd.sm.AddFlash(w, r, flash); err != nil {
			rd.log.WarnContext(r.Context(), "flash not saved", "error", err)
		}
	}
	http.Redirect(w, r, url, http.StatusSeeOther)
}
