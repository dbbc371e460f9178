package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already registered")
)

// Store is the persistence surface the service needs. *Repository satisfies
// it; tests substitute an in-memory implementation.
type Store interface {
	Create(ctx context.Context, u *User) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByEmails(ctx context.Context, emails []string) ([]*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
}

// Service handles user business logic
type Service struct {
	store Store
}

// NewService creates a new user service with the store dependency injected
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Create registers a new user. Emails are unique; registering an email twice
// fails with ErrEmailAlreadyInUse.
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	exists, err := s.store.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailAlreadyInUse
	}

	return s.store.Create(ctx, &User{
		UUID:  uuid.NewString(),
		Name:  req.Name,
		Email: req.Email,
	})
}

// GetByEmail retrieves a user by their email
func (s *Service) GetByEmail(ctx context.Context, email string) (*User, error) {
	u, err := s.store.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, fmt.Errorf("%w: %s", ErrUserNotFound, email)
	}
	return u, nil
}

// GetAllByEmails retrieves every user whose email appears in the given set.
// Callers detect unknown emails by comparing result size with the input.
func (s *Service) GetAllByEmails(ctx context.Context, emails []string) ([]*User, error) {
	return s.store.ListByEmails(ctx, emails)
}

// ExistsByEmail reports whether a user with the given email is registered
func (s *Service) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.store.ExistsByEmail(ctx, email)
}

// List returns all users, or the single user matching the email filter when
// one is given.
func (s *Service) List(ctx context.Context, email string) ([]*User, error) {
	if email != "" {
		u, err := s.GetByEmail(ctx, email)
		if err != nil {
			return nil, err
		}
		return []*User{u}, nil
	}
	return s.store.ListAll(ctx)
}
