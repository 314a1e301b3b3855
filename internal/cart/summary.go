package cart

import (
	"github.com/angelmondragon/freshcart/internal/catalog"
	"github.com/angelmondragon/freshcart/pkg/money"
)

// Summary is the order-summary view of a ledger. Amounts are rounded to whole
// currency units here and only here; the ledger keeps raw floats.
type Summary struct {
	Lines            []SummaryLine  `json:"lines"`
	Empty            bool           `json:"is_empty"`
	ItemCount        int            `json:"item_count"`
	Subtotal         float64        `json:"subtotal"`
	DeliveryFee      float64        `json:"delivery_fee"`
	FreeDelivery     bool           `json:"free_delivery"`
	RemainingForFree float64        `json:"remaining_for_free_delivery"`
	Total            float64        `json:"total"`
	Display          SummaryDisplay `json:"display"`
}

// SummaryLine is one cart row with its rounded line total.
type SummaryLine struct {
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	LineTotal float64         `json:"line_total"`
}

// SummaryDisplay holds the formatted strings the storefront prints.
type SummaryDisplay struct {
	Subtotal    string `json:"subtotal"`
	DeliveryFee string `json:"delivery_fee"`
	Total       string `json:"total"`
	Hint        string `json:"hint,omitempty"`
}

// Summarize snapshots the ledger under the given delivery policy.
func Summarize(l *Ledger, policy DeliveryPolicy) Summary {
	raw := l.TotalPrice()
	fee := policy.Fee(raw)
	free := policy.IsFree(raw)

	lines := make([]SummaryLine, 0, l.Len())
	for _, line := range l.Lines() {
		lines = append(lines, SummaryLine{
			Product:   line.Product,
			Quantity:  line.Quantity,
			LineTotal: money.Whole(line.Subtotal()),
		})
	}

	s := Summary{
		Lines:            lines,
		Empty:            l.IsEmpty(),
		ItemCount:        l.TotalItemCount(),
		Subtotal:         money.Whole(raw),
		DeliveryFee:      money.Whole(fee),
		FreeDelivery:     free,
		RemainingForFree: money.Whole(policy.RemainingForFree(raw)),
		Total:            money.Whole(raw + fee),
		Display: SummaryDisplay{
			Subtotal:    money.Format(raw),
			DeliveryFee: "FREE",
			Total:       money.Format(raw + fee),
		},
	}
	if !free {
		s.Display.DeliveryFee = money.Format(fee)
		s.Display.Hint = "Add " + money.Format(policy.RemainingForFree(raw)) + " more for free delivery"
	}
	return s
}
