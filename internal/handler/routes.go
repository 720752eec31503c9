package handler

import (
	"log/slog"
	"net/http"

	"schoolplanner/internal/entity"
	"schoolplanner/internal/middleware"
	"schoolplanner/internal/quiz"
	"schoolplanner/internal/session"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
)

// Deps is everything the HTTP layer needs. Stores are interfaces so tests can
// run the router against in-memory implementations.
type Deps struct {
	Sessions *session.Manager
	Auth     Authenticator
	Lessons  LessonStore
	Tasks    TaskStore
	Results  ResultStore
	Weather  WeatherFetcher
	Quiz     *quiz.Generator
	Validate *validator.Validate
	Log      *slog.Logger
}

func NewRouter(d Deps) (http.Handler, error) {
	view, err := NewRenderer(d.Sessions, d.Log)
	if err != nil {
		return nil, err
	}

	index := NewIndexHandler(d.Weather, view)
	login := NewLoginHandler(d.Auth, d.Sessions, view, d.Log)
	registration := NewRegistrationHandler(d.Auth, view)
	schedule := NewScheduleHandler(d.Lessons, d.Validate, view, d.Log)
	tasks := NewTaskHandler(d.Tasks, d.Validate, view, d.Log)
	quizzes := NewQuizHandler(d.Results, d.Quiz, d.Sessions, view, d.Log)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLogger(d.Log))
	r.Use(chimw.Recoverer)

	r.Get("/health", Health)

	// public pages
	r.Get("/", index.Index)
	r.Get("/register", registration.RegisterPage)
	r.Post("/register", registration.Register)
	r.Get("/login", login.LoginPage)
	r.Post("/login", login.Login)
	r.Get("/logout", login.Logout)
	r.Get("/test", quizzes.TestPage)
	r.Post("/submit_test", quizzes.SubmitTest)

	// browser pages behind the login
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth(d.Sessions))

		r.Get("/schedule", schedule.Schedule)
		r.Get("/tasks", tasks.Tasks)
		r.Get("/results", quizzes.Results)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireRoles(d.Sessions, entity.LessonEditors...))
			r.Get("/add_lesson", schedule.AddLessonPage)
			r.Post("/add_lesson", schedule.AddLesson)
		})
	})

	// JSON endpoints behind the login
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuthAPI(d.Sessions))

		r.Post("/add_task", tasks.AddTask)
		r.Delete("/delete_task/{id}", tasks.DeleteTask)

		r.With(middleware.RequireRolesAPI(entity.LessonEditors...)).
			Delete("/delete_lesson/{id}", schedule.DeleteLesson)
	})

	return r, nil
}
