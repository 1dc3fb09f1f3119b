package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusLabel(t *testing.T) {
	assert.Equal(t, "Ordered", OrderStatusLabel(StatusOrdered))
	assert.Equal(t, "Partially Received", OrderStatusLabel(StatusPartiallyReceived))
	assert.Equal(t, "Draft", OrderStatusLabel(99), "unknown codes fall back to Draft")
}

func TestParseOrderStatus(t *testing.T) {
	code, ok := ParseOrderStatus("Received")
	assert.True(t, ok)
	assert.Equal(t, StatusReceived, code)

	code, ok = ParseOrderStatus("  cancelled ")
	assert.True(t, ok)
	assert.Equal(t, StatusCancelled, code)

	_, ok = ParseOrderStatus("shipped")
	assert.False(t, ok)
}
