package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/tripnest/vacation-api/internal/domain"
	"github.com/tripnest/vacation-api/internal/repository/ports"
)

type UserRepository struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create relies on the unique index on email: a duplicate registration
// surfaces as a unique-violation error instead of racing a prior existence
// check.
func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	const query = `
        INSERT INTO users (first_name, last_name, email, password_hash, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, first_name, last_name, email, password_hash, role, created_at
    `

	row := r.db.QueryRowxContext(ctx, query, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.Role)
	var stored domain.User
	if err := row.StructScan(&stored); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
        SELECT id, first_name, last_name, email, password_hash, role, created_at
        FROM users
        WHERE email = $1
    `
	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		return nil, err
	}
	return &user, nil
}

var _ ports.UserRepository = (*UserRepository)(nil)
