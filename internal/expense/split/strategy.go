package split

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Type identifies how an expense is divided among its participants.
type Type string

const (
	TypeEqual   Type = "EQUAL"
	TypeExact   Type = "EXACT"
	TypePercent Type = "PERCENT"
)

// Input represents one participant in a split. Share is only consulted by
// the EXACT strategy; a nil Share is treated as zero.
type Input struct {
	Email string
	Share *decimal.Decimal
}

// Share is the calculated amount one participant is responsible for.
// The payer keeps a share like everyone else; what they get back is derived
// later from the expense total.
type Share struct {
	Email  string
	Amount decimal.Decimal
}

// Strategy is the interface that all split strategies must implement.
type Strategy interface {
	// Calculate computes each participant's share of the total amount.
	// The returned slice preserves the input participant order.
	Calculate(totalAmount decimal.Decimal, participants []Input) ([]Share, error)

	// Type returns the type identifier for this strategy
	Type() Type

	// Validate checks if the inputs are valid for this strategy
	Validate(totalAmount decimal.Decimal, participants []Input) error
}

// Factory creates split strategies based on the requested type
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the type
func (f *Factory) Create(splitType Type) (Strategy, error) {
	switch splitType {
	case TypeEqual:
		return &EqualStrategy{}, nil
	case TypeExact:
		return &ExactStrategy{}, nil
	case TypePercent:
		return &PercentStrategy{}, nil
	default:
		return nil, fmt.Errorf("unknown split type: %s", splitType)
	}
}

// CreateFromString creates a strategy from a string type (useful for API requests)
func (f *Factory) CreateFromString(splitType string) (Strategy, error) {
	return f.Create(Type(splitType))
}

var (
	ErrNoParticipants   = errors.New("at least one participant is required")
	ErrNegativeAmount   = errors.New("amounts cannot be negative")
	ErrSharesMismatch   = errors.New("sum of shares must equal total amount for EXACT split")
	ErrUnsupportedSplit = errors.New("PERCENT split is not supported")
)
