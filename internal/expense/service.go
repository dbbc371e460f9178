package expense

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/harshluthra/ExpenseSync/internal/expense/split"
	"github.com/harshluthra/ExpenseSync/internal/user"
)

// Common errors
var (
	ErrPayerNotParticipant = errors.New("payer must be a participant in the expense")
)

// UserDirectory resolves participant emails to registered users.
// *user.Service satisfies it.
type UserDirectory interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
	GetAllByEmails(ctx context.Context, emails []string) ([]*user.User, error)
}

// Store persists expenses and reads them back. *Repository satisfies it;
// tests substitute an in-memory implementation.
type Store interface {
	Save(ctx context.Context, e *Expense) (*Expense, error)
	ListByParticipantEmail(ctx context.Context, email string) ([]*Expense, error)
	ListAll(ctx context.Context) ([]*Expense, error)
}

// Service handles expense business logic
type Service struct {
	users        UserDirectory
	store        Store
	splitFactory *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(users UserDirectory, store Store, splitFactory *split.Factory) *Service {
	return &Service{
		users:        users,
		store:        store,
		splitFactory: splitFactory,
	}
}

// CreateExpense validates the request, calculates shares with the requested
// split strategy, and persists the expense with its participant shares.
// Validation runs in full before anything is written, so a failing request
// never leaves a partial expense behind.
func (s *Service) CreateExpense(ctx context.Context, req *CreateExpenseRequest) (*ExpenseResponse, error) {
	if !payerIsParticipant(req) {
		return nil, ErrPayerNotParticipant
	}

	emails, shareByEmail := collectParticipants(req)

	users, err := s.users.GetAllByEmails(ctx, emails)
	if err != nil {
		return nil, err
	}
	if len(users) != len(emails) {
		return nil, fmt.Errorf("%w: %s", user.ErrUserNotFound, strings.Join(missingEmails(emails, users), ", "))
	}
	byEmail := make(map[string]*user.User, len(users))
	for _, u := range users {
		byEmail[u.Email] = u
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitType)
	if err != nil {
		return nil, err
	}

	inputs := make([]split.Input, len(emails))
	for i, email := range emails {
		inputs[i] = split.Input{Email: email, Share: shareByEmail[email]}
	}

	shares, err := strategy.Calculate(req.Amount, inputs)
	if err != nil {
		return nil, err
	}

	payer := byEmail[req.PaidByEmail]
	e := &Expense{
		Description: req.Description,
		Amount:      req.Amount,
		PayerID:     payer.ID,
		PayerName:   payer.Name,
		PayerEmail:  payer.Email,
	}
	for _, share := range shares {
		u := byEmail[share.Email]
		e.Participants = append(e.Participants, &ParticipantShare{
			UserID: u.ID,
			Name:   u.Name,
			Email:  u.Email,
			Share:  share.Amount,
		})
	}

	saved, err := s.store.Save(ctx, e)
	if err != nil {
		return nil, err
	}

	return saved.toResponse(true), nil
}

// GetUserExpenseSummary lists a user's expenses with their net position per
// expense (amount paid minus their stored share) and the running total.
func (s *Service) GetUserExpenseSummary(ctx context.Context, email string, showParticipants bool) (*UserExpenseSummary, error) {
	if _, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, err
	}

	expenses, err := s.store.ListByParticipantEmail(ctx, email)
	if err != nil {
		return nil, err
	}

	netBalance := decimal.Zero
	summary := make([]*ExpenseResponse, 0, len(expenses))

	for _, e := range expenses {
		paid := decimal.Zero
		if e.PayerEmail == email {
			paid = e.Amount
		}
		net := paid.Sub(e.ShareOf(email))
		netBalance = netBalance.Add(net)

		resp := e.toResponse(showParticipants)
		resp.NetTransactionBalance = &net
		summary = append(summary, resp)
	}

	return &UserExpenseSummary{
		NetBalance: netBalance,
		Expenses:   summary,
	}, nil
}

// ListByParticipantEmail returns all expenses the user is involved in
func (s *Service) ListByParticipantEmail(ctx context.Context, email string) ([]*Expense, error) {
	return s.store.ListByParticipantEmail(ctx, email)
}

// ListAll returns every expense in the system
func (s *Service) ListAll(ctx context.Context) ([]*Expense, error) {
	return s.store.ListAll(ctx)
}

func (e *Expense) toResponse(withBreakdown bool) *ExpenseResponse {
	resp := &ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		PaidBy:      UserRef{Name: e.PayerName, Email: e.PayerEmail},
		CreatedAt:   e.CreatedAt.UTC().Format(time.RFC3339),
	}
	if withBreakdown {
		resp.Participants = e.breakdown()
	}
	return resp
}

// breakdown reports each participant's position relative to the payer: the
// payer owes nothing and receives total minus their own share, everyone else
// owes their share.
func (e *Expense) breakdown() []*ParticipantBreakdown {
	entries := make([]*ParticipantBreakdown, len(e.Participants))
	for i, p := range e.Participants {
		owed := p.Share
		receive := decimal.Zero
		if p.Email == e.PayerEmail {
			owed = decimal.Zero
			receive = e.Amount.Sub(p.Share)
		}
		entries[i] = &ParticipantBreakdown{
			Name:            p.Name,
			Email:           p.Email,
			AmountOwed:      owed,
			AmountToReceive: receive,
		}
	}
	return entries
}

func payerIsParticipant(req *CreateExpenseRequest) bool {
	for _, p := range req.Participants {
		if p.Email == req.PaidByEmail {
			return true
		}
	}
	return false
}

// collectParticipants deduplicates participant emails preserving request
// order, keeping the first explicit share seen for each email.
func collectParticipants(req *CreateExpenseRequest) ([]string, map[string]*decimal.Decimal) {
	emails := make([]string, 0, len(req.Participants))
	shares := make(map[string]*decimal.Decimal, len(req.Participants))
	for _, p := range req.Participants {
		if _, seen := shares[p.Email]; seen {
			continue
		}
		emails = append(emails, p.Email)
		shares[p.Email] = p.Share
	}
	return emails, shares
}

func missingEmails(requested []string, found []*user.User) []string {
	known := make(map[string]bool, len(found))
	for _, u := range found {
		known[u.Email] = true
	}
	var missing []string
	for _, email := range requested {
		if !known[email] {
			missing = append(missing, email)
		}
	}
	return missing
}
