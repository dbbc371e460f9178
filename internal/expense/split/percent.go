package split

import "github.com/shopspring/decimal"

// =============================================================================
// PERCENT SPLIT STRATEGY
// Recognized as a split type but not supported: every request is rejected
// =============================================================================

// PercentStrategy implements the Strategy interface for percentage-based
// splits. The type is part of the closed set so that requests for it fail
// with a stable, documented error instead of an unknown-type error.
type PercentStrategy struct{}

// Type returns the split type identifier
func (s *PercentStrategy) Type() Type {
	return TypePercent
}

// Validate always rejects percent splits
func (s *PercentStrategy) Validate(totalAmount decimal.Decimal, participants []Input) error {
	return ErrUnsupportedSplit
}

// Calculate always rejects percent splits
func (s *PercentStrategy) Calculate(totalAmount decimal.Decimal, participants []Input) ([]Share, error) {
	return nil, ErrUnsupportedSplit
}
