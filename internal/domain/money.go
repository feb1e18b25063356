package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Paise is a rupee amount in integer minor units. All arithmetic on money
// happens on this type so totals are exact; decimal rupees exist only at the
// API boundary.
type Paise int64

var ErrSubPaisePrecision = errors.New("amount has sub-paise precision")

// PaiseFromRupees converts a decimal rupee amount to paise.
// Amounts with more than two decimal places are rejected rather than rounded.
func PaiseFromRupees(rupees decimal.Decimal) (Paise, error) {
	minor := rupees.Mul(decimal.NewFromInt(100))
	if !minor.IsInteger() {
		return 0, fmt.Errorf("%w: %s", ErrSubPaisePrecision, rupees.String())
	}
	return Paise(minor.IntPart()), nil
}

func (p Paise) Rupees() decimal.Decimal {
	return decimal.New(int64(p), -2)
}

func (p Paise) String() string {
	return p.Rupees().StringFixed(2)
}

// MarshalJSON renders the amount as a decimal rupee number, e.g. 59.99.
func (p Paise) MarshalJSON() ([]byte, error) {
	return []byte(p.Rupees().StringFixed(2)), nil
}

func (p *Paise) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money amount %q: %w", s, err)
	}
	v, err := PaiseFromRupees(d)
	if err != nil {
		return err
	}
	*p = v
	return nil
}
