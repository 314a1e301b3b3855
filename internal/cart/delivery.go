package cart

// DeliveryPolicy decides the delivery fee shown next to a cart total.
// Nothing about it is stored; it is recomputed from the subtotal.
type DeliveryPolicy struct {
	FreeThreshold float64
	FlatFee       float64
}

// DefaultDeliveryPolicy is free delivery from 500, otherwise a flat 40.
var DefaultDeliveryPolicy = DeliveryPolicy{FreeThreshold: 500, FlatFee: 40}

// IsFree reports whether the subtotal reaches the free-delivery threshold.
func (p DeliveryPolicy) IsFree(subtotal float64) bool {
	return subtotal >= p.FreeThreshold
}

// Fee returns the delivery charge for a subtotal.
func (p DeliveryPolicy) Fee(subtotal float64) float64 {
	if p.IsFree(subtotal) {
		return 0
	}
	return p.FlatFee
}

// RemainingForFree is how much more the shopper must add to stop paying for delivery.
func (p DeliveryPolicy) RemainingForFree(subtotal float64) float64 {
	if p.IsFree(subtotal) {
		return 0
	}
	return p.FreeThreshold - subtotal
}
