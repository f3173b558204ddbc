package pricing

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// ErrUnknownPack is returned for a pack ID the catalog does not list.
var ErrUnknownPack = errors.New("unknown pack")

// Pack is a purchasable bundle of pull tokens. A first-time x2 doubles
// Tokens but not BonusTokens.
type Pack struct {
	ID          string `json:"id" yaml:"id" validate:"required"`
	Name        string `json:"name" yaml:"name"`
	Tokens      int    `json:"tokens" yaml:"tokens" validate:"gt=0"`
	BonusTokens int    `json:"bonus_tokens" yaml:"bonus_tokens" validate:"gte=0"`
	FirstTimeX2 bool   `json:"first_time_x2" yaml:"first_time_x2"`
	PriceCents  int    `json:"price_cents" yaml:"price_cents" validate:"gt=0"`
}

// Catalog is a regional store listing.
// Prices are pre-tax; set TaxRate to 0 for tax-inclusive prices.
type Catalog struct {
	TokenName string  `json:"token_name" yaml:"token_name"`
	Currency  string  `json:"currency" yaml:"currency" validate:"required,len=3"`
	TaxRate   float64 `json:"tax_rate" yaml:"tax_rate" validate:"gte=0,lt=1"`
	Packs     []Pack  `json:"packs" yaml:"packs" validate:"dive"`
}

// FirstTimeState maps pack IDs to whether the first-time x2 is still available.
type FirstTimeState map[string]bool

// ParseFirstTime builds the state from pack IDs whose x2 is still open.
// "all" opens every pack that offers one. Packs without a first-time x2 are
// accepted and ignored.
func ParseFirstTime(cat Catalog, ids []string) (FirstTimeState, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	known := make(map[string]bool, len(cat.Packs))
	for _, p := range cat.Packs {
		known[p.ID] = p.FirstTimeX2
	}
	state := FirstTimeState{}
	for _, id := range ids {
		if id == "all" {
			for pid, x2 := range known {
				if x2 {
					state[pid] = true
				}
			}
			continue
		}
		x2, ok := known[id]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownPack, id)
		}
		if x2 {
			state[id] = true
		}
	}
	return state, nil
}

// Plan is a purchase plan.
type Plan struct {
	Purchases   []Purchase `json:"purchases"`
	SubCents    int        `json:"sub_cents"`
	TaxCents    int        `json:"tax_cents"`
	TotalCents  int        `json:"total_cents"`
	TotalTokens int        `json:"total_tokens"`
	Currency    string     `json:"currency"`
}

// Purchase is one line item of a Plan.
type Purchase struct {
	PackID     string `json:"pack_id"`
	Name       string `json:"name"`
	Qty        int    `json:"qty"`
	UnitPrice  int    `json:"unit_price"`
	UnitTokens int    `json:"unit_tokens"` // x2/bonus applied
	Subtotal   int    `json:"subtotal"`
}

// Total formats the plan total in major units, e.g. "12.99 CAD".
func (p Plan) Total() string {
	return FormatCents(p.TotalCents) + " " + p.Currency
}

// FormatCents renders minor units with two decimals.
func FormatCents(cents int) string {
	return decimal.New(int64(cents), -2).StringFixed(2)
}

// ParseCents converts "12.99" to 1299, rounding half away from zero.
func ParseCents(s string) (int, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, err
	}
	return int(d.Shift(2).Round(0).IntPart()), nil
}

// applyTax returns tax and total for a subtotal, rounding tax to the cent.
func applyTax(sub int, taxRate float64) (tax int, total int) {
	if taxRate <= 0 {
		return 0, sub
	}
	t := decimal.NewFromInt(int64(sub)).Mul(decimal.NewFromFloat(taxRate)).Round(0).IntPart()
	return int(t), sub + int(t)
}

// preTaxBudget is the largest subtotal whose taxed total fits in budget.
func preTaxBudget(budget int, taxRate float64) int {
	if taxRate <= 0 {
		return budget
	}
	b := decimal.NewFromInt(int64(budget)).Div(decimal.NewFromFloat(1 + taxRate)).Floor().IntPart()
	sub := int(b)
	for sub > 0 {
		if _, total := applyTax(sub, taxRate); total <= budget {
			break
		}
		sub--
	}
	return sub
}
