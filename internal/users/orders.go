package users

// OrderSummary is one past order as listed on the profile page.
type OrderSummary struct {
	ID     string   `json:"id"`
	Date   string   `json:"date"`
	Total  float64  `json:"total"`
	Status string   `json:"status"`
	Items  []string `json:"items"`
}

// Checkout is not part of the storefront, so every shopper sees the same
// illustrative history.
var sampleOrders = []OrderSummary{
	{
		ID:     "1",
		Date:   "2024-01-15",
		Total:  485,
		Status: "Delivered",
		Items:  []string{"Fresh Organic Bananas", "Red Apples", "Organic Milk"},
	},
	{
		ID:     "2",
		Date:   "2024-01-10",
		Total:  320,
		Status: "Delivered",
		Items:  []string{"Whole Wheat Bread", "Farm Fresh Eggs"},
	},
}

// SampleOrderHistory returns a fresh copy of the illustrative order history,
// newest first.
func SampleOrderHistory() []OrderSummary {
	out := make([]OrderSummary, len(sampleOrders))
	for i, o := range sampleOrders {
		o.Items = append([]string(nil), o.Items...)
		out[i] = o
	}
	return out
}
