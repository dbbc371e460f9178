package user

import "time"

// User represents a registered user. The email is the value identity used
// throughout balance computations and never changes once an expense
// references it.
type User struct {
	ID        int64     `json:"id"`
	UUID      string    `json:"uuid"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}
