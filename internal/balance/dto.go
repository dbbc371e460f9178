package balance

import "github.com/shopspring/decimal"

// UserRef identifies a user by display name and email
type UserRef struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Transaction is a single proposed payment: From pays To the given
// (positive) amount. Transactions are derived per request and never
// persisted.
type Transaction struct {
	From   UserRef         `json:"from"`
	To     UserRef         `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// RawBalanceResponse lists the focal user's individual pairwise debts
// without minimizing transactions.
type RawBalanceResponse struct {
	User         UserRef         `json:"user"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	Transactions []Transaction   `json:"transactions"`
}

// SimplifiedBalanceResponse lists the minimal settling transactions that
// involve the focal user.
type SimplifiedBalanceResponse struct {
	User         UserRef         `json:"user"`
	NetBalance   decimal.Decimal `json:"net_balance"`
	Transactions []Transaction   `json:"transactions"`
}
