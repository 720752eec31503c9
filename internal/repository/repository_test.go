package repository_test

import (
	"context"
	"testing"
	"time"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/database/dbtest"
	"schoolplanner/internal/entity"
	"schoolplanner/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
)

func TestRepositories_Postgres(t *testing.T) {
	pg := dbtest.SetupPostgres(t)
	defer pg.Cleanup(t)

	ctx := context.Background()
	users := repository.NewUserRepository(pg.DB)
	lessons := repository.NewLessonRepository(pg.DB)
	tasks := repository.NewTaskRepository(pg.DB)
	results := repository.NewResultRepository(pg.DB)

	allTables := []string{"test_results", "tasks", "lessons", "users"}

	createUser := func(t *testing.T, username, email string, role entity.Role) entity.User {
		t.Helper()
		u := entity.User{Username: username, Email: email, PasswordHash: "hash", Role: role}
		require.NoError(t, users.Create(ctx, &u))
		return u
	}

	t.Run("User_CreateAndFind", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)

		u := createUser(t, "alice", "a@x.com", entity.RoleStudent)
		assert.NotZero(t, u.ID)
		assert.NotZero(t, u.CreatedAt)

		byName, err := users.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, u.ID, byName.ID)
		assert.Equal(t, entity.RoleStudent, byName.Role)
		assert.Equal(t, "hash", byName.PasswordHash)

		byID, err := users.FindByID(ctx, u.ID)
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", byID.Email)
	})

	t.Run("User_NotFound", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)

		_, err := users.FindByUsername(ctx, "nobody")
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		_, err = users.FindByID(ctx, 42)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("User_Uniqueness", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		createUser(t, "alice", "a@x.com", entity.RoleStudent)

		exists, err := users.ExistsByUsernameOrEmail(ctx, "alice", "other@x.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = users.ExistsByUsernameOrEmail(ctx, "other", "a@x.com")
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = users.ExistsByUsernameOrEmail(ctx, "bob", "b@x.com")
		require.NoError(t, err)
		assert.False(t, exists)

		dup := entity.User{Username: "alice", Email: "new@x.com", PasswordHash: "hash", Role: entity.RoleStudent}
		assert.ErrorIs(t, users.Create(ctx, &dup), apperror.ErrConflict)

		n, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("User_InjectionProbe", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		createUser(t, "alice", "a@x.com", entity.RoleStudent)

		_, err := users.FindByUsername(ctx, "'; DROP TABLE users; --")
		assert.ErrorIs(t, err, apperror.ErrNotFound)

		n, err := users.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("Lesson_ListOrdering", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		teacher := createUser(t, "bob", "b@x.com", entity.RoleTeacher)

		input := []entity.Lesson{
			{Subject: "Chemistry", DayOfWeek: entity.Friday, TimeStart: "08:00", TimeEnd: "09:35"},
			{Subject: "Physics", DayOfWeek: entity.Monday, TimeStart: "11:40", TimeEnd: "13:15"},
			{Subject: "History", DayOfWeek: entity.Tuesday, TimeStart: "09:50", TimeEnd: "11:25"},
			{Subject: "Maths", DayOfWeek: entity.Monday, TimeStart: "08:00", TimeEnd: "09:35"},
			{Subject: "Biology", DayOfWeek: entity.Wednesday, TimeStart: "09:50", TimeEnd: "11:25"},
		}
		for i := range input {
			input[i].Teacher = "T"
			input[i].Classroom = "101"
			input[i].CreatedBy = null.Int64From(teacher.ID)
			require.NoError(t, lessons.Create(ctx, &input[i]))
		}

		list, err := lessons.List(ctx)
		require.NoError(t, err)

		subjects := make([]string, 0, len(list))
		for _, l := range list {
			subjects = append(subjects, l.Subject)
		}
		assert.Equal(t, []string{"Maths", "Physics", "History", "Biology", "Chemistry"}, subjects)
		assert.Equal(t, teacher.ID, list[0].CreatedBy.Int64)
	})

	t.Run("Lesson_Delete", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)

		l := entity.Lesson{Subject: "Maths", Teacher: "T", Classroom: "201", DayOfWeek: entity.Monday, TimeStart: "08:00", TimeEnd: "09:35"}
		require.NoError(t, lessons.Create(ctx, &l))

		deleted, err := lessons.Delete(ctx, l.ID)
		require.NoError(t, err)
		assert.True(t, deleted)

		deleted, err = lessons.Delete(ctx, l.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		_, err = lessons.FindByID(ctx, l.ID)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})

	t.Run("Lesson_InvalidWeekdayRejected", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)

		l := entity.Lesson{Subject: "Maths", Teacher: "T", Classroom: "201", DayOfWeek: "Sunday", TimeStart: "08:00", TimeEnd: "09:35"}
		assert.Error(t, lessons.Create(ctx, &l))
	})

	t.Run("Task_ListByUserOrdering", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		alice := createUser(t, "alice", "a@x.com", entity.RoleStudent)
		bob := createUser(t, "bob", "b@x.com", entity.RoleStudent)

		due := func(s string) null.Time {
			d, err := time.Parse(entity.DateLayout, s)
			require.NoError(t, err)
			return null.TimeFrom(d)
		}

		for _, task := range []entity.Task{
			{Title: "undated", Subject: "Art", UserID: alice.ID},
			{Title: "later", Subject: "Maths", DueDate: due("2025-08-20"), UserID: alice.ID},
			{Title: "sooner", Subject: "Maths", DueDate: due("2025-08-10"), Description: null.StringFrom("p. 45"), UserID: alice.ID},
			{Title: "bobs", Subject: "Maths", DueDate: due("2025-08-01"), UserID: bob.ID},
		} {
			task := task
			require.NoError(t, tasks.Create(ctx, &task))
			assert.False(t, task.Completed)
		}

		list, err := tasks.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "sooner", list[0].Title)
		assert.Equal(t, "p. 45", list[0].Description.String)
		assert.Equal(t, "2025-08-10", list[0].Due())
		assert.Equal(t, "later", list[1].Title)
		assert.Equal(t, "undated", list[2].Title)
		assert.False(t, list[2].DueDate.Valid)
		assert.False(t, list[2].Description.Valid)
	})

	t.Run("Task_DeleteIsOwnerScoped", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		alice := createUser(t, "alice", "a@x.com", entity.RoleStudent)
		mallory := createUser(t, "mallory", "m@x.com", entity.RoleStudent)

		task := entity.Task{Title: "essay", Subject: "Literature", UserID: alice.ID}
		require.NoError(t, tasks.Create(ctx, &task))

		deleted, err := tasks.DeleteByIDAndOwner(ctx, task.ID, mallory.ID)
		require.NoError(t, err)
		assert.False(t, deleted)

		list, err := tasks.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		assert.Len(t, list, 1)

		deleted, err = tasks.DeleteByIDAndOwner(ctx, task.ID, alice.ID)
		require.NoError(t, err)
		assert.True(t, deleted)
	})

	t.Run("Result_CreateAndList", func(t *testing.T) {
		dbtest.CleanupTables(t, pg.DB, allTables...)
		alice := createUser(t, "alice", "a@x.com", entity.RoleStudent)

		res := entity.NewTestResult(alice.ID, "", 7, 10)
		require.NoError(t, results.Create(ctx, &res))
		assert.NotZero(t, res.ID)
		assert.NotZero(t, res.CompletedAt)

		list, err := results.ListByUser(ctx, alice.ID)
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, entity.DefaultTestName, list[0].TestName)
		assert.Equal(t, 7, list[0].Score)
		assert.Equal(t, 10, list[0].TotalQuestions)

		n, err := results.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}
