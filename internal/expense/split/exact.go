package split

import "github.com/shopspring/decimal"

// =============================================================================
// EXACT SPLIT STRATEGY
// Each participant owes a specific exact amount (must sum to total)
// =============================================================================

// ExactStrategy implements the Strategy interface for exact amount splits
type ExactStrategy struct{}

// Type returns the split type identifier
func (s *ExactStrategy) Type() Type {
	return TypeExact
}

// Validate checks if the inputs are valid for an exact split. The shares
// must sum to the total amount exactly; there is no tolerance because the
// arithmetic is fixed-point.
func (s *ExactStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount.IsNegative() {
		return ErrNegativeAmount
	}

	sum := decimal.Zero
	for _, p := range participants {
		share := shareOrZero(p)
		if share.IsNegative() {
			return ErrNegativeAmount
		}
		sum = sum.Add(share)
	}

	if !sum.Equal(totalAmount) {
		return ErrSharesMismatch
	}

	return nil
}

// Calculate returns the exact amounts specified for each participant.
// A participant without an explicit share is treated as owing zero.
func (s *ExactStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			Email:  p.Email,
			Amount: shareOrZero(p),
		}
	}

	return shares, nil
}

func shareOrZero(p Input) decimal.Decimal {
	if p.Share == nil {
		return decimal.Zero
	}
	return *p.Share
}
