package app_test

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"os"
	"strings"
	"testing"

	"schoolplanner/internal/app"
	"schoolplanner/internal/config"
	"schoolplanner/internal/database/dbtest"
	"schoolplanner/internal/logger"
	"schoolplanner/internal/password"
	"schoolplanner/internal/repository"
	"schoolplanner/internal/seed"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

func testConfig() *config.Config {
	return &config.Config{
		Env: "test",
		Session: config.SessionConfig{
			Name:   "app-session",
			Secret: "0123456789abcdef0123456789abcdef",
			MaxAge: 3600,
		},
		Weather: config.WeatherConfig{City: "Kyiv"},
		Mail:    config.MailConfig{FromEmail: "noreply@localhost", FromName: "School Planner"},
	}
}

func TestHandler_Postgres(t *testing.T) {
	pg := dbtest.SetupPostgres(t)
	defer pg.Cleanup(t)

	ctx := context.Background()
	log := logger.Discard()

	sum, err := seed.Seed(ctx, app.SeedStores(pg.DB), log)
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Users)

	h, err := app.NewHandler(testConfig(), log, pg.DB)
	require.NoError(t, err)
	srv := httptest.NewServer(h)
	defer srv.Close()

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	get := func(path string) (int, string) {
		t.Helper()
		res, err := client.Get(srv.URL + path)
		require.NoError(t, err)
		defer res.Body.Close()
		body, err := io.ReadAll(res.Body)
		require.NoError(t, err)
		return res.StatusCode, string(body)
	}

	code, _ := get("/health")
	assert.Equal(t, http.StatusOK, code)

	res, err := client.PostForm(srv.URL+"/login", url.Values{"username": {"teacher"}, "password": {"teacher123"}})
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusSeeOther, res.StatusCode)

	code, body := get("/schedule")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "teacher (teacher)")
	assert.Contains(t, body, "Computer science")

	req, err := http.NewRequest(http.MethodDelete, srv.URL+"/delete_lesson/1", nil)
	require.NoError(t, err)
	res, err = client.Do(req)
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	lessons, err := repository.NewLessonRepository(pg.DB).List(ctx)
	require.NoError(t, err)
	assert.Len(t, lessons, 19)

	res, err = client.Post(srv.URL+"/submit_test", "application/json", strings.NewReader(`{"score":9,"total":10}`))
	require.NoError(t, err)
	res.Body.Close()
	assert.Equal(t, http.StatusOK, res.StatusCode)

	n, err := repository.NewResultRepository(pg.DB).Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 6, n)
}
