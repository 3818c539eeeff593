package services

// ShippingCost is a deterministic function of the cart subtotal: a fixed
// percentage rounded up to the next minor unit. The server-side value is the
// sole source of truth; client-sent shipping estimates are never persisted.
func ShippingCost(subtotal int64, ratePercent int) int64 {
	if subtotal <= 0 || ratePercent <= 0 {
		return 0
	}
	return (subtotal*int64(ratePercent) + 99) / 100
}

// CartSubtotal sums unit price times quantity across the cart, in minor units.
func CartSubtotal(items []CheckoutItem) int64 {
	var subtotal int64
	for _, item := range items {
		subtotal += item.UnitPrice * int64(item.Quantity)
	}
	return subtotal
}
