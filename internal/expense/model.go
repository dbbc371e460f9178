package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense represents a shared expense. Expenses are immutable after
// creation: there are no update or delete paths.
type Expense struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	PayerID     int64           `json:"payer_id"`
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerName  string `json:"payer_name,omitempty"`
	PayerEmail string `json:"payer_email,omitempty"`

	// Participants are owned by the expense: created with it in one
	// transaction and never mutated independently.
	Participants []*ParticipantShare `json:"participants,omitempty"`
}

// ParticipantShare records how much of the expense one participant is
// responsible for. The payer appears here too with their own share.
type ParticipantShare struct {
	ID        int64           `json:"id"`
	ExpenseID int64           `json:"expense_id"`
	UserID    int64           `json:"user_id"`
	Share     decimal.Decimal `json:"share_amount"`

	// Populated via JOIN
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// ShareOf returns the stored share for the participant with the given
// email, or zero if they are not on the expense.
func (e *Expense) ShareOf(email string) decimal.Decimal {
	for _, p := range e.Participants {
		if p.Email == email {
			return p.Share
		}
	}
	return decimal.Zero
}
