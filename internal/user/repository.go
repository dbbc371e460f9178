package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles user data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new user repository with database dependency injected
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user into the database
func (r *Repository) Create(ctx context.Context, u *User) (*User, error) {
	query := `
		INSERT INTO users (uuid, name, email)
		VALUES ($1, $2, $3)
		RETURNING id, uuid, name, email, created_at
	`

	created := &User{}
	err := r.db.QueryRowContext(ctx, query, u.UUID, u.Name, u.Email).Scan(
		&created.ID,
		&created.UUID,
		&created.Name,
		&created.Email,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

// GetByEmail retrieves a user by their email
func (r *Repository) GetByEmail(ctx context.Context, email string) (*User, error) {
	query := `
		SELECT id, uuid, name, email, created_at
		FROM users
		WHERE email = $1
	`

	u := &User{}
	err := r.db.QueryRowContext(ctx, query, email).Scan(
		&u.ID,
		&u.UUID,
		&u.Name,
		&u.Email,
		&u.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

// ListByEmails retrieves all users whose email appears in the given set
func (r *Repository) ListByEmails(ctx context.Context, emails []string) ([]*User, error) {
	query := `
		SELECT id, uuid, name, email, created_at
		FROM users
		WHERE email = ANY($1)
		ORDER BY id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(emails))
	if err != nil {
		return nil, fmt.Errorf("failed to list users by emails: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ListAll retrieves every registered user
func (r *Repository) ListAll(ctx context.Context) ([]*User, error) {
	query := `
		SELECT id, uuid, name, email, created_at
		FROM users
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		u := &User{}
		if err := rows.Scan(&u.ID, &u.UUID, &u.Name, &u.Email, &u.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, rows.Err()
}

// ExistsByEmail reports whether a user with the given email is registered
func (r *Repository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}
