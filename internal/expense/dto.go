package expense

import "github.com/shopspring/decimal"

// ParticipantInput is one participant entry on a create-expense request.
// Share is only meaningful for EXACT splits.
type ParticipantInput struct {
	Email string           `json:"email" validate:"required,email"`
	Share *decimal.Decimal `json:"share,omitempty"`
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	Description  string              `json:"description" validate:"required,min=1,max=255"`
	Amount       decimal.Decimal     `json:"amount" validate:"required"`
	PaidByEmail  string              `json:"paid_by_email" validate:"required,email"`
	SplitType    string              `json:"split_type" validate:"required,oneof=EQUAL EXACT PERCENT"`
	Participants []*ParticipantInput `json:"participants" validate:"required,min=1"`
}

// UserRef identifies a user by display name and email in responses
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ParticipantBreakdown reports, per participant, what they owe the payer
// and what the payer should get back from them.
type ParticipantBreakdown struct {
	Name            string          `json:"name"`
	Email           string          `json:"email"`
	AmountOwed      decimal.Decimal `json:"amount_owed"`
	AmountToReceive decimal.Decimal `json:"amount_to_receive"`
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID                    int64                   `json:"id"`
	Description           string                  `json:"description"`
	Amount                decimal.Decimal         `json:"amount"`
	PaidBy                UserRef                 `json:"paid_by"`
	Participants          []*ParticipantBreakdown `json:"participants,omitempty"`
	CreatedAt             string                  `json:"created_at"`
	NetTransactionBalance *decimal.Decimal        `json:"net_transaction_balance,omitempty"`
}

// UserExpenseSummary is the per-user expense listing with a running net
// balance (positive: receiving, negative: owes).
type UserExpenseSummary struct {
	NetBalance decimal.Decimal    `json:"net_balance"`
	Expenses   []*ExpenseResponse `json:"expenses"`
}
