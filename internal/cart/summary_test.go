package cart

import (
	"testing"
)

func TestDeliveryPolicyBoundary(t *testing.T) {
	t.Parallel()

	p := DefaultDeliveryPolicy
	threshold, justBelow := 500.0, 499.99
	tests := []struct {
		subtotal  float64
		fee       float64
		remaining float64
	}{
		{subtotal: 0, fee: 40, remaining: 500},
		{subtotal: justBelow, fee: 40, remaining: threshold - justBelow},
		{subtotal: 500, fee: 0, remaining: 0},
		{subtotal: 1200, fee: 0, remaining: 0},
	}
	for _, tt := range tests {
		if got := p.Fee(tt.subtotal); got != tt.fee {
			t.Fatalf("Fee(%v) = %v, want %v", tt.subtotal, got, tt.fee)
		}
		if got := p.RemainingForFree(tt.subtotal); got != tt.remaining {
			t.Fatalf("RemainingForFree(%v) = %v, want %v", tt.subtotal, got, tt.remaining)
		}
	}
}

func TestSummarizeEmptyCart(t *testing.T) {
	t.Parallel()

	s := Summarize(NewLedger(), DefaultDeliveryPolicy)
	if s.Subtotal != 0 || s.ItemCount != 0 || !s.Empty {
		t.Fatalf("expected empty totals, got %+v", s)
	}
	if s.FreeDelivery || s.DeliveryFee != 40 {
		t.Fatalf("empty cart must pay delivery, got fee=%v free=%v", s.DeliveryFee, s.FreeDelivery)
	}
	if s.Total != 40 {
		t.Fatalf("expected total 40, got %v", s.Total)
	}
	if s.Display.DeliveryFee != "₹40" || s.Display.Hint != "Add ₹500 more for free delivery" {
		t.Fatalf("unexpected display %+v", s.Display)
	}
	if s.Lines == nil {
		t.Fatal("lines must encode as an empty list, not null")
	}
}

func TestSummarizeFreeDeliveryAtThreshold(t *testing.T) {
	t.Parallel()

	l := NewLedger()
	l.AddItem(product("almonds", 250))
	l.AddItem(product("almonds", 250))

	s := Summarize(l, DefaultDeliveryPolicy)
	if !s.FreeDelivery || s.DeliveryFee != 0 {
		t.Fatalf("expected free delivery at 500, got %+v", s)
	}
	if s.Empty {
		t.Fatal("a cart with lines must not be reported empty")
	}
	if s.Total != 500 || s.Display.DeliveryFee != "FREE" || s.Display.Hint != "" {
		t.Fatalf("unexpected summary %+v", s)
	}
}

func TestSummarizeRoundsOnlyForDisplay(t *testing.T) {
	t.Parallel()

	a, b := 99.6, 0.3
	l := NewLedger()
	l.AddItem(product("a", a))
	l.AddItem(product("b", b))

	s := Summarize(l, DefaultDeliveryPolicy)
	if l.TotalPrice() != a+b {
		t.Fatalf("ledger total must stay unrounded")
	}
	if s.Subtotal != 100 {
		t.Fatalf("expected rounded subtotal 100, got %v", s.Subtotal)
	}
	if s.Lines[0].LineTotal != 100 || s.Lines[1].LineTotal != 0 {
		t.Fatalf("unexpected rounded line totals %+v", s.Lines)
	}
	if s.Total != 140 || s.Display.Total != "₹140" {
		t.Fatalf("expected total 140, got %v (%s)", s.Total, s.Display.Total)
	}
}
