package split

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func inputs(emails ...string) []Input {
	out := make([]Input, len(emails))
	for i, e := range emails {
		out[i] = Input{Email: e}
	}
	return out
}

func TestEqualStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		participants []Input
		wantErr      error
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:         "two participants split evenly",
			total:        dec("100"),
			participants: inputs("p@x.com", "q@x.com"),
			validateFunc: func(t *testing.T, shares []Share) {
				for _, s := range shares {
					if !s.Amount.Equal(dec("50")) {
						t.Errorf("%s share = %s, want 50", s.Email, s.Amount)
					}
				}
			},
		},
		{
			name:         "three participants with rounding",
			total:        dec("100"),
			participants: inputs("a@x.com", "b@x.com", "c@x.com"),
			validateFunc: func(t *testing.T, shares []Share) {
				// 100/3 rounds half-up to 33.33 for everyone
				for _, s := range shares {
					if !s.Amount.Equal(dec("33.33")) {
						t.Errorf("%s share = %s, want 33.33", s.Email, s.Amount)
					}
				}
			},
		},
		{
			name:         "no participants",
			total:        dec("10"),
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
		{
			name:         "negative amount",
			total:        dec("-5"),
			participants: inputs("a@x.com"),
			wantErr:      ErrNegativeAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &EqualStrategy{}
			shares, err := strategy.Calculate(tt.total, tt.participants)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

// Rounded equal shares are never reconciled back to the total: the sum may
// drift from the total by up to one cent per participant, but no more.
func TestEqualSharesSlackBound(t *testing.T) {
	cases := []struct {
		total string
		count int
	}{
		{"100", 3},
		{"1200", 7},
		{"0.05", 3},
		{"999.99", 6},
		{"10", 4},
	}

	strategy := &EqualStrategy{}
	for _, c := range cases {
		participants := make([]Input, c.count)
		for i := range participants {
			participants[i] = Input{Email: string(rune('a'+i)) + "@x.com"}
		}

		shares, err := strategy.Calculate(dec(c.total), participants)
		if err != nil {
			t.Fatalf("Calculate(%s, %d) error = %v", c.total, c.count, err)
		}

		sum := decimal.Zero
		for _, s := range shares {
			if !s.Amount.Equal(shares[0].Amount) {
				t.Errorf("total %s: unequal shares %s vs %s", c.total, s.Amount, shares[0].Amount)
			}
			sum = sum.Add(s.Amount)
		}

		slack := sum.Sub(dec(c.total)).Abs()
		bound := dec("0.01").Mul(decimal.NewFromInt(int64(c.count)))
		if slack.GreaterThan(bound) {
			t.Errorf("total %s over %d participants: slack %s exceeds bound %s", c.total, c.count, slack, bound)
		}
	}
}

func TestExactStrategy(t *testing.T) {
	tests := []struct {
		name         string
		total        decimal.Decimal
		participants []Input
		wantErr      error
		validateFunc func(t *testing.T, shares []Share)
	}{
		{
			name:  "shares sum to total",
			total: dec("1200"),
			participants: []Input{
				{Email: "a@x.com", Share: decPtr("500")},
				{Email: "b@x.com", Share: decPtr("400")},
				{Email: "c@x.com", Share: decPtr("300")},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				want := []string{"500", "400", "300"}
				for i, s := range shares {
					if !s.Amount.Equal(dec(want[i])) {
						t.Errorf("%s share = %s, want %s", s.Email, s.Amount, want[i])
					}
				}
			},
		},
		{
			name:  "shares do not sum to total",
			total: dec("1200"),
			participants: []Input{
				{Email: "a@x.com", Share: decPtr("500")},
				{Email: "b@x.com", Share: decPtr("400")},
				{Email: "c@x.com", Share: decPtr("200")},
			},
			wantErr: ErrSharesMismatch,
		},
		{
			name:  "missing share treated as zero",
			total: dec("900"),
			participants: []Input{
				{Email: "a@x.com", Share: decPtr("900")},
				{Email: "b@x.com"},
			},
			validateFunc: func(t *testing.T, shares []Share) {
				if !shares[1].Amount.IsZero() {
					t.Errorf("b share = %s, want 0", shares[1].Amount)
				}
			},
		},
		{
			name:  "negative share",
			total: dec("100"),
			participants: []Input{
				{Email: "a@x.com", Share: decPtr("150")},
				{Email: "b@x.com", Share: decPtr("-50")},
			},
			wantErr: ErrNegativeAmount,
		},
		{
			name:         "no participants",
			total:        dec("10"),
			participants: nil,
			wantErr:      ErrNoParticipants,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy := &ExactStrategy{}
			shares, err := strategy.Calculate(tt.total, tt.participants)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Calculate() error = %v, want %v", err, tt.wantErr)
			}
			if tt.validateFunc != nil {
				tt.validateFunc(t, shares)
			}
		})
	}
}

func TestPercentStrategyAlwaysFails(t *testing.T) {
	strategy := &PercentStrategy{}

	if _, err := strategy.Calculate(dec("100"), inputs("a@x.com", "b@x.com")); !errors.Is(err, ErrUnsupportedSplit) {
		t.Errorf("Calculate() error = %v, want %v", err, ErrUnsupportedSplit)
	}
	if err := strategy.Validate(dec("100"), inputs("a@x.com")); !errors.Is(err, ErrUnsupportedSplit) {
		t.Errorf("Validate() error = %v, want %v", err, ErrUnsupportedSplit)
	}
}

func TestFactory(t *testing.T) {
	f := NewFactory()

	for _, splitType := range []Type{TypeEqual, TypeExact, TypePercent} {
		s, err := f.Create(splitType)
		if err != nil {
			t.Fatalf("Create(%s) error = %v", splitType, err)
		}
		if s.Type() != splitType {
			t.Errorf("Create(%s).Type() = %s", splitType, s.Type())
		}
	}

	if _, err := f.CreateFromString("RATIO"); err == nil {
		t.Error("CreateFromString(RATIO) expected error, got nil")
	}
}
