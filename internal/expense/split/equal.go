package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Type returns the split type identifier
func (s *EqualStrategy) Type() Type {
	return TypeEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	if len(participants) == 0 {
		return ErrNoParticipants
	}
	if totalAmount.IsNegative() {
		return ErrNegativeAmount
	}
	return nil
}

// Calculate gives every participant the identical rounded share
// (total / count, half-up at 2 decimals). The rounding remainder is not
// redistributed, so the shares may undershoot or overshoot the total by up
// to a cent per participant.
func (s *EqualStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) ([]Share, error) {
	if err := s.Validate(totalAmount, participants); err != nil {
		return nil, err
	}

	share := totalAmount.DivRound(decimal.NewFromInt(int64(len(participants))), 2)

	shares := make([]Share, len(participants))
	for i, p := range participants {
		shares[i] = Share{
			Email:  p.Email,
			Amount: share,
		}
	}

	return shares, nil
}
