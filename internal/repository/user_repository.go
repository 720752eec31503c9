package repository

import (
	"context"

	"schoolplanner/internal/apperror"
	"schoolplanner/internal/entity"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, username, email, password_hash, role, created_at`

// Create inserts u and fills in the generated id and timestamp. A unique
// violation is reported as apperror.ErrConflict.
func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO users (username, email, password_hash, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`, u.Username, u.Email, u.PasswordHash, u.Role).Scan(&u.ID, &u.CreatedAt)

	if isUniqueViolation(err) {
		return apperror.ErrConflict
	}
	return errors.Wrap(err, "inserting user")
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (entity.User, error) {
	var u entity.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	if err != nil {
		return entity.User{}, notFound(err, "selecting user by id")
	}
	return u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (entity.User, error) {
	var u entity.User
	err := r.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	if err != nil {
		return entity.User{}, notFound(err, "selecting user by username")
	}
	return u, nil
}

// ExistsByUsernameOrEmail is the uniqueness check run before registration.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM users WHERE username = $1 OR email = $2)
	`, username, email)
	return exists, errors.Wrap(err, "checking user uniqueness")
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM users`)
	return n, errors.Wrap(err, "counting users")
}
