package user

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeStore is an in-memory Store keyed by email.
type fakeStore struct {
	users  map[string]*User
	nextID int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[string]*User)}
}

func (f *fakeStore) Create(ctx context.Context, u *User) (*User, error) {
	f.nextID++
	saved := *u
	saved.ID = f.nextID
	saved.CreatedAt = time.Now()
	f.users[saved.Email] = &saved
	return &saved, nil
}

func (f *fakeStore) GetByEmail(ctx context.Context, email string) (*User, error) {
	return f.users[email], nil
}

func (f *fakeStore) ListByEmails(ctx context.Context, emails []string) ([]*User, error) {
	var out []*User
	for _, email := range emails {
		if u, ok := f.users[email]; ok {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeStore) ListAll(ctx context.Context) ([]*User, error) {
	out := make([]*User, 0, len(f.users))
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeStore) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	_, ok := f.users[email]
	return ok, nil
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	created, err := svc.Create(ctx, &CreateUserRequest{Name: "Harsh", Email: "harsh@x.com"})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if created.Name != "Harsh" || created.Email != "harsh@x.com" {
		t.Errorf("Create() = %q/%q, want Harsh/harsh@x.com", created.Name, created.Email)
	}
	if created.UUID == "" {
		t.Error("Create() did not assign a UUID")
	}
	if created.ID == 0 {
		t.Error("Create() did not assign an ID")
	}
}

func TestCreateUserDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	if _, err := svc.Create(ctx, &CreateUserRequest{Name: "Harsh", Email: "harsh@x.com"}); err != nil {
		t.Fatalf("first Create() error = %v", err)
	}

	_, err := svc.Create(ctx, &CreateUserRequest{Name: "Other Harsh", Email: "harsh@x.com"})
	if !errors.Is(err, ErrEmailAlreadyInUse) {
		t.Errorf("second Create() error = %v, want %v", err, ErrEmailAlreadyInUse)
	}
}

func TestGetByEmail(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := NewService(store)

	if _, err := svc.Create(ctx, &CreateUserRequest{Name: "Janhvi", Email: "janhvi@x.com"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	u, err := svc.GetByEmail(ctx, "janhvi@x.com")
	if err != nil {
		t.Fatalf("GetByEmail() error = %v", err)
	}
	if u.Name != "Janhvi" {
		t.Errorf("GetByEmail().Name = %q, want Janhvi", u.Name)
	}

	_, err = svc.GetByEmail(ctx, "nobody@x.com")
	if !errors.Is(err, ErrUserNotFound) {
		t.Errorf("GetByEmail(unknown) error = %v, want %v", err, ErrUserNotFound)
	}
}

func TestToResponseNormalizesTimestampToUTC(t *testing.T) {
	ist := time.FixedZone("IST", 5*3600+1800)
	u := &User{
		UUID:      "u-1",
		Name:      "Harsh",
		Email:     "harsh@x.com",
		CreatedAt: time.Date(2026, 1, 2, 10, 0, 0, 0, ist),
	}

	resp := u.ToResponse()
	if resp.CreatedAt != "2026-01-02T04:30:00Z" {
		t.Errorf("CreatedAt = %q, want 2026-01-02T04:30:00Z", resp.CreatedAt)
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	svc := NewService(newFakeStore())

	for _, u := range []CreateUserRequest{
		{Name: "Harsh", Email: "harsh@x.com"},
		{Name: "Krish", Email: "krish@x.com"},
	} {
		req := u
		if _, err := svc.Create(ctx, &req); err != nil {
			t.Fatalf("Create(%s) error = %v", u.Email, err)
		}
	}

	all, err := svc.List(ctx, "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List() returned %d users, want 2", len(all))
	}

	filtered, err := svc.List(ctx, "krish@x.com")
	if err != nil {
		t.Fatalf("List(krish) error = %v", err)
	}
	if len(filtered) != 1 || filtered[0].Email != "krish@x.com" {
		t.Errorf("List(krish) = %v, want single krish@x.com", filtered)
	}

	if _, err := svc.List(ctx, "ghost@x.com"); !errors.Is(err, ErrUserNotFound) {
		t.Errorf("List(unknown) error = %v, want %v", err, ErrUserNotFound)
	}
}
