// Package money handles invoice monetary amounts: parsing the comma-grouped
// figures that appear on printed invoices, currency-safe arithmetic in minor
// units, and display formatting. Arithmetic wraps go-money; parsing and VAT
// math use shopspring/decimal for exactness.
package money

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	gomoney "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// Currencies seen on regional proforma invoices (ISO-4217).
const (
	TZS = "TZS" // Tanzanian Shilling
	UGX = "UGX" // Ugandan Shilling
	KES = "KES" // Kenyan Shilling
	USD = "USD" // US Dollar
)

// DefaultCurrency is assumed when a document names no currency.
const DefaultCurrency = TZS

var (
	ErrEmptyAmount     = errors.New("empty amount")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrCurrencyMix     = errors.New("mismatched currencies")
	ErrUnknownCurrency = errors.New("unknown currency code")
)

var amountJunk = regexp.MustCompile(`[^\d\.\-]`)

// ParseAmount reads a printed invoice figure such as "1,037,400.00" or
// "TSH 5,200.00" into an exact decimal. Currency tokens, grouping commas,
// and surrounding whitespace are ignored.
func ParseAmount(s string) (decimal.Decimal, error) {
	cleaned := amountJunk.ReplaceAllString(strings.TrimSpace(s), "")
	if cleaned == "" {
		return decimal.Zero, ErrEmptyAmount
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidAmount, s)
	}
	return d, nil
}

// Money is an exact monetary amount in a single currency.
type Money struct {
	m *gomoney.Money
}

// New creates Money from minor units.
func New(minorUnits int64, currencyCode string) *Money {
	return &Money{m: gomoney.New(minorUnits, currencyCode)}
}

// NewFromDecimal converts an exact decimal amount into Money, rounding to
// the currency's minor unit.
func NewFromDecimal(amount decimal.Decimal, currencyCode string) (*Money, error) {
	currency := gomoney.GetCurrency(currencyCode)
	if currency == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCurrency, currencyCode)
	}
	minor := amount.Mul(decimal.New(1, int32(currency.Fraction))).Round(0).IntPart()
	return New(minor, currencyCode), nil
}

// MustFromDecimal is NewFromDecimal for known-good currency codes.
func MustFromDecimal(amount decimal.Decimal, currencyCode string) *Money {
	m, err := NewFromDecimal(amount, currencyCode)
	if err != nil {
		panic(err)
	}
	return m
}

// Amount returns the value in minor units.
func (m *Money) Amount() int64 { return m.m.Amount() }

// Currency returns the ISO-4217 code.
func (m *Money) Currency() string { return m.m.Currency().Code }

// Decimal returns the amount as an exact decimal in major units.
func (m *Money) Decimal() decimal.Decimal {
	return decimal.New(m.m.Amount(), -int32(m.m.Currency().Fraction))
}

// Add returns m+other; both must share a currency.
func (m *Money) Add(other *Money) (*Money, error) {
	sum, err := m.m.Add(other.m)
	if err != nil {
		return nil, ErrCurrencyMix
	}
	return &Money{m: sum}, nil
}

// Display formats the amount with its currency symbol and grouping.
func (m *Money) Display() string { return m.m.Display() }

// String implements fmt.Stringer.
func (m *Money) String() string { return m.Display() }

// IsZero reports whether the amount is zero.
func (m *Money) IsZero() bool { return m.m.IsZero() }

var hundred = decimal.NewFromInt(100)

// VATPercent derives the effective VAT rate from a net amount and the VAT
// charged on it, rounded to two decimals. A zero or negative net amount has
// no meaningful rate.
func VATPercent(net, vat decimal.Decimal) (decimal.Decimal, bool) {
	if !net.IsPositive() {
		return decimal.Zero, false
	}
	return vat.Div(net).Mul(hundred).Round(2), true
}

// VATAmount computes the VAT charged on a net amount at the given percent
// rate, rounded to two decimals.
func VATAmount(net, percent decimal.Decimal) decimal.Decimal {
	return net.Mul(percent).Div(hundred).Round(2)
}
