package balance

import (
	"context"
	"errors"
	"log/slog"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/harshluthra/ExpenseSync/internal/expense"
	"github.com/harshluthra/ExpenseSync/internal/user"
)

// UserDirectory resolves emails to registered users. *user.Service
// satisfies it.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

// ExpenseSource reads stored expenses. *expense.Service satisfies it.
type ExpenseSource interface {
	ListByParticipantEmail(ctx context.Context, email string) ([]*expense.Expense, error)
	ListAll(ctx context.Context) ([]*expense.Expense, error)
}

// Service computes raw and simplified balances. Both computations are pure
// functions of the stored expenses: every call works on fresh local maps and
// returns a fresh result, so repeated calls over unchanged data are
// identical.
type Service struct {
	users    UserDirectory
	expenses ExpenseSource
}

// NewService creates a new balance service with dependencies injected
func NewService(users UserDirectory, expenses ExpenseSource) *Service {
	return &Service{users: users, expenses: expenses}
}

// RawBalance computes the focal user's net position against every
// counterparty, one transaction per counterparty with a non-zero net.
//
// Every expense is treated as an equal split (total / participants, rounded
// half-up to 2 decimals) regardless of how it was originally split. That is
// the historical raw-balance behavior and is kept deliberately; the expense
// summary endpoint is the view that honors stored shares.
func (s *Service) RawBalance(ctx context.Context, email string) (*RawBalanceResponse, error) {
	focal, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	focalRef := UserRef{Name: focal.Name, Email: focal.Email}

	expenses, err := s.expenses.ListByParticipantEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	balances := make(map[string]decimal.Decimal)
	for _, e := range expenses {
		if len(e.Participants) == 0 {
			continue
		}
		share := equalShare(e)
		isPayer := e.PayerEmail == email

		for _, p := range e.Participants {
			if p.Email == email {
				continue
			}
			if isPayer {
				balances[p.Email] = balances[p.Email].Add(share)
			} else if p.Email == e.PayerEmail {
				balances[p.Email] = balances[p.Email].Sub(share)
			}
		}
	}

	netBalance := decimal.Zero
	transactions := make([]Transaction, 0, len(balances))
	for _, counterpartyEmail := range sortedKeys(balances) {
		amt := balances[counterpartyEmail]
		if amt.IsZero() {
			continue
		}

		counterparty, err := s.users.GetByEmail(ctx, counterpartyEmail)
		if err != nil {
			return nil, err
		}
		counterpartyRef := UserRef{Name: counterparty.Name, Email: counterparty.Email}

		netBalance = netBalance.Add(amt)
		if amt.IsPositive() {
			transactions = append(transactions, Transaction{From: counterpartyRef, To: focalRef, Amount: amt})
		} else {
			transactions = append(transactions, Transaction{From: focalRef, To: counterpartyRef, Amount: amt.Abs()})
		}
	}

	return &RawBalanceResponse{
		User:         focalRef,
		NetBalance:   netBalance,
		Transactions: transactions,
	}, nil
}

// SimplifiedBalance computes the globally minimized settlement set over all
// expenses and returns the transactions that involve the focal user.
func (s *Service) SimplifiedBalance(ctx context.Context, email string) (*SimplifiedBalanceResponse, error) {
	focal, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	focalRef := UserRef{Name: focal.Name, Email: focal.Email}

	all, err := s.expenses.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	netBalances := calculateNetBalances(all)

	// The greedy loop consumes its working copy, so the focal user's net
	// is captured first.
	netBalance := netBalances[email]

	simplified, err := s.minimizeTransactions(ctx, netBalances)
	if err != nil {
		return nil, err
	}

	userTransactions := make([]Transaction, 0)
	for _, txn := range simplified {
		if txn.From.Email == email || txn.To.Email == email {
			userTransactions = append(userTransactions, txn)
		}
	}

	return &SimplifiedBalanceResponse{
		User:         focalRef,
		NetBalance:   netBalance,
		Transactions: userTransactions,
	}, nil
}

// calculateNetBalances computes the net position per user across every
// expense: each participant is down their equal share and the payer is up
// the full amount, so the payer nets amount minus their own share.
func calculateNetBalances(expenses []*expense.Expense) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal)

	for _, e := range expenses {
		if len(e.Participants) == 0 {
			continue
		}
		share := equalShare(e)

		for _, p := range e.Participants {
			balances[p.Email] = balances[p.Email].Sub(share)
		}
		balances[e.PayerEmail] = balances[e.PayerEmail].Add(e.Amount)
	}

	return balances
}

// balanceEntry is one user's remaining amount during the greedy matching.
type balanceEntry struct {
	email  string
	amount decimal.Decimal
}

// minimizeTransactions greedily matches the largest remaining debtor with
// the smallest remaining creditor until both sides are exhausted. The result
// is a deterministic, minimal-in-practice set of settling transactions; the
// total moved always equals the sum of positive nets.
func (s *Service) minimizeTransactions(ctx context.Context, balances map[string]decimal.Decimal) ([]Transaction, error) {
	var creditors, debtors []balanceEntry
	for _, email := range sortedKeys(balances) {
		amt := balances[email]
		switch {
		case amt.IsPositive():
			creditors = append(creditors, balanceEntry{email: email, amount: amt})
		case amt.IsNegative():
			debtors = append(debtors, balanceEntry{email: email, amount: amt})
		}
	}

	// Creditors ascending, debtors most negative first. Keys were collected
	// in sorted order, so equal amounts tie-break by email and the output is
	// stable across calls.
	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].amount.LessThan(creditors[j].amount)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].amount.LessThan(debtors[j].amount)
	})

	result := make([]Transaction, 0)
	i, j := 0, 0
	for i < len(debtors) && j < len(creditors) {
		debtor := &debtors[i]
		creditor := &creditors[j]

		amount := decimal.Min(debtor.amount.Abs(), creditor.amount)

		from, to, err := s.lookupPair(ctx, debtor.email, creditor.email)
		if err != nil {
			return nil, err
		}
		if from != nil && to != nil {
			result = append(result, Transaction{
				From:   UserRef{Name: from.Name, Email: from.Email},
				To:     UserRef{Name: to.Name, Email: to.Email},
				Amount: amount,
			})
		}

		debtor.amount = debtor.amount.Add(amount)
		creditor.amount = creditor.amount.Sub(amount)

		if debtor.amount.IsZero() {
			i++
		}
		if creditor.amount.IsZero() {
			j++
		}
	}

	return result, nil
}

// lookupPair resolves both ends of a settlement. A balance-map email with no
// user record is skipped rather than failing the whole computation.
func (s *Service) lookupPair(ctx context.Context, fromEmail, toEmail string) (*user.User, *user.User, error) {
	from, err := s.users.GetByEmail(ctx, fromEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.WarnContext(ctx, "skipping settlement for unknown user", "email", fromEmail)
			return nil, nil, nil
		}
		return nil, nil, err
	}
	to, err := s.users.GetByEmail(ctx, toEmail)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			slog.WarnContext(ctx, "skipping settlement for unknown user", "email", toEmail)
			return nil, nil, nil
		}
		return nil, nil, err
	}
	return from, to, nil
}

// equalShare is the unweighted per-head share, rounded half-up at 2 decimals.
func equalShare(e *expense.Expense) decimal.Decimal {
	return e.Amount.DivRound(decimal.NewFromInt(int64(len(e.Participants))), 2)
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
