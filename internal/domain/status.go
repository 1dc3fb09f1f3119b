package domain

import "strings"

// Purchase order lifecycle. An order is created as Ordered by the
// materializer; the receiving flow moves it forward.
const (
	StatusDraft = iota
	StatusOrdered
	StatusPartiallyReceived
	StatusReceived
	StatusCancelled
)

var orderStatusLabels = map[int]string{
	StatusDraft:             "Draft",
	StatusOrdered:           "Ordered",
	StatusPartiallyReceived: "Partially Received",
	StatusReceived:          "Received",
	StatusCancelled:         "Cancelled",
}

var orderStatusCodes = map[string]int{
	"draft":              StatusDraft,
	"ordered":            StatusOrdered,
	"partially_received": StatusPartiallyReceived,
	"received":           StatusReceived,
	"cancelled":          StatusCancelled,
}

// OrderStatusLabel returns a human-readable label for an order status code.
func OrderStatusLabel(status int) string {
	if label, ok := orderStatusLabels[status]; ok {
		return label
	}

	return "Draft"
}

// ParseOrderStatus returns the status code for a given label (case-insensitive).
func ParseOrderStatus(label string) (int, bool) {
	code, ok := orderStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return code, ok
}
