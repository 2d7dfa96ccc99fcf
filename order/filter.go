package order

import (
	"strings"

	"github.com/refhub/order-management-backend/interfaces"
)

// FilterOrders applies the admin dashboard filters to an externally
// supplied order collection: an exact order-date match and a
// case-insensitive staff-name substring match. An empty filter value
// matches everything. Source order is preserved.
func FilterOrders(orders []interfaces.Order, date, staffName string) []interfaces.Order {
	staffNeedle := strings.ToLower(staffName)

	filtered := make([]interfaces.Order, 0, len(orders))
	for _, o := range orders {
		if date != "" && o.OrderDate != date {
			continue
		}
		if staffNeedle != "" && !strings.Contains(strings.ToLower(o.StaffName), staffNeedle) {
			continue
		}
		filtered = append(filtered, o)
	}
	return filtered
}
