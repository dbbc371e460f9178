package expense

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
)

// Repository handles expense and participant-share data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new expense repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Save inserts the expense and all its participant shares in a single
// transaction, so a failure on any row leaves nothing behind.
func (r *Repository) Save(ctx context.Context, e *Expense) (*Expense, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO expenses (description, amount, payer_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := tx.QueryRowContext(ctx, query, e.Description, e.Amount, e.PayerID).Scan(&e.ID, &e.CreatedAt); err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	shareQuery := `
		INSERT INTO expense_participants (expense_id, user_id, share_amount)
		VALUES ($1, $2, $3)
		RETURNING id
	`
	for _, p := range e.Participants {
		p.ExpenseID = e.ID
		if err := tx.QueryRowContext(ctx, shareQuery, e.ID, p.UserID, p.Share).Scan(&p.ID); err != nil {
			return nil, fmt.Errorf("failed to create participant share: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit expense: %w", err)
	}

	return e, nil
}

// ListByParticipantEmail retrieves all expenses where the given user is the
// payer or a participant, with participant shares attached.
func (r *Repository) ListByParticipantEmail(ctx context.Context, email string) ([]*Expense, error) {
	query := `
		SELECT DISTINCT e.id, e.description, e.amount, e.payer_id, e.created_at, pu.name, pu.email
		FROM expenses e
		JOIN users pu ON e.payer_id = pu.id
		JOIN expense_participants ep ON ep.expense_id = e.id
		JOIN users u ON ep.user_id = u.id
		WHERE u.email = $1 OR pu.email = $1
		ORDER BY e.id
	`

	expenses, err := r.queryExpenses(ctx, query, email)
	if err != nil {
		return nil, err
	}

	return r.attachParticipants(ctx, expenses)
}

// ListAll retrieves every expense in the system with participant shares
// attached.
func (r *Repository) ListAll(ctx context.Context) ([]*Expense, error) {
	query := `
		SELECT e.id, e.description, e.amount, e.payer_id, e.created_at, pu.name, pu.email
		FROM expenses e
		JOIN users pu ON e.payer_id = pu.id
		ORDER BY e.id
	`

	expenses, err := r.queryExpenses(ctx, query)
	if err != nil {
		return nil, err
	}

	return r.attachParticipants(ctx, expenses)
}

func (r *Repository) queryExpenses(ctx context.Context, query string, args ...any) ([]*Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*Expense
	for rows.Next() {
		e := &Expense{}
		if err := rows.Scan(
			&e.ID,
			&e.Description,
			&e.Amount,
			&e.PayerID,
			&e.CreatedAt,
			&e.PayerName,
			&e.PayerEmail,
		); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	return expenses, rows.Err()
}

// attachParticipants loads the participant shares for every expense in one
// query and distributes them onto the expense structs.
func (r *Repository) attachParticipants(ctx context.Context, expenses []*Expense) ([]*Expense, error) {
	if len(expenses) == 0 {
		return expenses, nil
	}

	ids := make([]int64, len(expenses))
	byID := make(map[int64]*Expense, len(expenses))
	for i, e := range expenses {
		ids[i] = e.ID
		byID[e.ID] = e
	}

	query := `
		SELECT ep.id, ep.expense_id, ep.user_id, ep.share_amount, u.name, u.email
		FROM expense_participants ep
		JOIN users u ON ep.user_id = u.id
		WHERE ep.expense_id = ANY($1)
		ORDER BY ep.id
	`

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list participant shares: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		p := &ParticipantShare{}
		if err := rows.Scan(&p.ID, &p.ExpenseID, &p.UserID, &p.Share, &p.Name, &p.Email); err != nil {
			return nil, fmt.Errorf("failed to scan participant share: %w", err)
		}
		if e, ok := byID[p.ExpenseID]; ok {
			e.Participants = append(e.Participants, p)
		}
	}

	return expenses, rows.Err()
}
