package redis

// orderKey stores the full order hash for one identifier.
func orderKey(orderID string) string {
	return "ewhflex:order:" + orderID
}
