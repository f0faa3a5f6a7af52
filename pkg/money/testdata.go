package money

import (
	"fmt"
	"strings"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
)

// TestDataGenerator produces deterministic synthetic invoice data for tests.
// The same seed always yields the same sequence.
type TestDataGenerator struct {
	faker *gofakeit.Faker
}

func NewTestDataGenerator(seed uint64) *TestDataGenerator {
	return &TestDataGenerator{faker: gofakeit.New(int64(seed))}
}

// FakeItem is one synthetic invoice row with self-consistent amounts.
type FakeItem struct {
	Code        string
	Description string
	Unit        string
	Qty         int
	Rate        decimal.Decimal
	Value       decimal.Decimal
}

var fakeUnits = []string{"PCS", "NOS", "SET", "UNT", "BOX"}

// Item generates one plausible invoice row. Value is always qty*rate so the
// fixture arithmetic checks out.
func (g *TestDataGenerator) Item() FakeItem {
	qty := g.faker.Number(1, 20)
	rate := decimal.NewFromInt(int64(g.faker.Number(100, 2_000_000))).Div(hundred).Round(2)
	return FakeItem{
		Code:        fmt.Sprintf("%d", g.faker.Number(1000, 999_999_999)),
		Description: strings.ToUpper(g.faker.ProductName()),
		Unit:        fakeUnits[g.faker.Number(0, len(fakeUnits)-1)],
		Qty:         qty,
		Rate:        rate,
		Value:       rate.Mul(decimal.NewFromInt(int64(qty))),
	}
}

// CustomerName generates an uppercased company name like those printed on
// regional invoices.
func (g *TestDataGenerator) CustomerName() string {
	return strings.ToUpper(g.faker.Company()) + " LIMITED"
}

// CodeNo generates a customer code in letter-digits form.
func (g *TestDataGenerator) CodeNo() string {
	return g.faker.LetterN(1) + g.faker.DigitN(5)
}

// InvoiceText renders a complete synthetic proforma invoice as plain text
// with n line items, in the layout produced by PDF text extraction.
func (g *TestDataGenerator) InvoiceText(n int) string {
	var sb strings.Builder
	sb.WriteString("Proforma Invoice\n")
	fmt.Fprintf(&sb, "PI No: %d\n", g.faker.Number(1_000_000, 9_999_999))
	fmt.Fprintf(&sb, "Code No: %s\n", strings.ToUpper(g.CodeNo()))
	fmt.Fprintf(&sb, "Customer Name: %s\n", g.CustomerName())
	fmt.Fprintf(&sb, "Date: %02d/%02d/%d\n", g.faker.Number(1, 28), g.faker.Number(1, 12), g.faker.Number(2020, 2026))
	sb.WriteString("Sr Item Code Description Type Qty Rate Value\n")

	net := decimal.Zero
	for i := 1; i <= n; i++ {
		item := g.Item()
		fmt.Fprintf(&sb, "%d %s %s %s %d %s %s\n",
			i, item.Code, item.Description, item.Unit, item.Qty,
			groupAmount(item.Rate), groupAmount(item.Value))
		net = net.Add(item.Value)
	}

	vat := VATAmount(net, decimal.NewFromInt(18))
	fmt.Fprintf(&sb, "Net Value: %s\n", groupAmount(net))
	fmt.Fprintf(&sb, "VAT: %s\n", groupAmount(vat))
	fmt.Fprintf(&sb, "Grand Total: %s\n", groupAmount(net.Add(vat)))
	return sb.String()
}

// groupAmount renders a decimal with comma thousand grouping and two
// decimal places, the way invoice templates print figures.
func groupAmount(d decimal.Decimal) string {
	s := d.StringFixed(2)
	dot := strings.Index(s, ".")
	intPart, frac := s[:dot], s[dot:]

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ",") + frac
	if neg {
		out = "-" + out
	}
	return out
}
