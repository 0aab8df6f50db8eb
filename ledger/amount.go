/*
amount.go - Exact fixed-point currency amounts

PURPOSE:
  Amount is the only numeric type balances and postings are allowed to
  use. It is a signed decimal with at most four fractional digits,
  backed by shopspring/decimal to avoid floating-point errors.

RANGE:
  The coefficient is bounded to 96 bits, so at four decimal places the
  representable magnitude is (2^96 - 1) / 10^4, roughly 2^82 in the
  integer part. shopspring/decimal itself is arbitrary precision and
  never wraps, so the bound is enforced here: any parse or arithmetic
  result outside the range fails with ErrOverflow / ErrAmountRange.

CHECKED ARITHMETIC:
  CheckedAdd and CheckedSub return an error instead of a result when
  the bound is exceeded. Operands are never modified; Amount is a value
  type.

PARSING:
  Optional sign, optional integer part, optional fraction:
    "12", "12.", "12.3456", ".5", "-0.1", "+3"
  A fifth fractional digit is rejected (ErrAmountPrecision) rather than
  truncated. "-0" parses to the canonical zero.

SEE ALSO:
  - errors.go: ErrOverflow, ErrAmountSyntax, ErrAmountPrecision, ErrAmountRange
  - account.go: The only arithmetic consumer
*/
package ledger

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// MaxFractionalDigits is the fixed scale of the currency representation.
const MaxFractionalDigits = 4

// amountLimit is the largest representable magnitude: (2^96 - 1) * 10^-4.
var amountLimit = decimal.NewFromBigInt(
	new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 96), big.NewInt(1)),
	-MaxFractionalDigits,
)

// Amount is an exact signed currency quantity with four decimal places.
// The zero value is the canonical zero amount.
type Amount struct {
	value decimal.Decimal
}

// Zero is the canonical zero amount.
var Zero = Amount{}

// ParseAmount parses the textual decimal form of an amount.
func ParseAmount(s string) (Amount, error) {
	neg := false
	rest := s
	if strings.HasPrefix(rest, "+") {
		rest = rest[1:]
	} else if strings.HasPrefix(rest, "-") {
		neg = true
		rest = rest[1:]
	}

	intPart := rest
	fracPart := ""
	if dot := strings.IndexByte(rest, '.'); dot >= 0 {
		intPart, fracPart = rest[:dot], rest[dot+1:]
		if strings.IndexByte(fracPart, '.') >= 0 {
			return Amount{}, ErrAmountSyntax
		}
	}
	if intPart == "" && fracPart == "" {
		return Amount{}, ErrAmountSyntax
	}
	if !allDigits(intPart) || !allDigits(fracPart) {
		return Amount{}, ErrAmountSyntax
	}
	if len(fracPart) > MaxFractionalDigits {
		return Amount{}, ErrAmountPrecision
	}

	coefficient, ok := new(big.Int).SetString(intPart+fracPart, 10)
	if !ok {
		return Amount{}, ErrAmountSyntax
	}
	if neg {
		coefficient.Neg(coefficient)
	}

	value := decimal.NewFromBigInt(coefficient, -int32(len(fracPart)))
	if value.Abs().GreaterThan(amountLimit) {
		return Amount{}, ErrAmountRange
	}
	return Amount{value: value}, nil
}

// MustParseAmount parses s and panics on failure. Test helper.
func MustParseAmount(s string) Amount {
	a, err := ParseAmount(s)
	if err != nil {
		panic("ledger: MustParseAmount(" + s + "): " + err.Error())
	}
	return a
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// String formats the amount in canonical decimal form. Trailing
// fractional zeros are trimmed ("1.5000" renders as "1.5").
func (a Amount) String() string {
	return a.value.String()
}

// CheckedAdd returns a+b, or ErrOverflow if the sum leaves the
// representable range.
func (a Amount) CheckedAdd(b Amount) (Amount, error) {
	sum := a.value.Add(b.value)
	if sum.Abs().GreaterThan(amountLimit) {
		return Amount{}, ErrOverflow
	}
	return Amount{value: sum}, nil
}

// CheckedSub returns a-b, or ErrOverflow if the difference leaves the
// representable range.
func (a Amount) CheckedSub(b Amount) (Amount, error) {
	diff := a.value.Sub(b.value)
	if diff.Abs().GreaterThan(amountLimit) {
		return Amount{}, ErrOverflow
	}
	return Amount{value: diff}, nil
}

// Neg returns the negation. Negation can never leave the range.
func (a Amount) Neg() Amount { return Amount{value: a.value.Neg()} }

// Cmp compares two amounts by value: -1 if a < b, 0 if equal, +1 if a > b.
func (a Amount) Cmp(b Amount) int { return a.value.Cmp(b.value) }

// Equal reports value equality. "1.50" and "1.5" are equal.
func (a Amount) Equal(b Amount) bool { return a.value.Equal(b.value) }

func (a Amount) IsZero() bool     { return a.value.IsZero() }
func (a Amount) IsPositive() bool { return a.value.IsPositive() }
func (a Amount) IsNegative() bool { return a.value.IsNegative() }
