package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestOrderTransitions(t *testing.T) {
	tests := []struct {
		from, to OrderStatus
		ok       bool
	}{
		{OrderStatusNew, OrderStatusProcessing, true},
		{OrderStatusProcessing, OrderStatusPaid, true},
		{OrderStatusProcessing, OrderStatusCancelled, true},
		{OrderStatusPaid, OrderStatusShipped, true},

		{OrderStatusNew, OrderStatusPaid, false},
		{OrderStatusNew, OrderStatusCancelled, false},
		{OrderStatusPaid, OrderStatusCancelled, false},
		{OrderStatusShipped, OrderStatusCancelled, false},
		{OrderStatusCancelled, OrderStatusProcessing, false},
		{OrderStatusPaid, OrderStatusProcessing, false},
	}

	for _, tt := range tests {
		order := Order{Status: tt.from}
		err := order.TransitionTo(tt.to)
		if tt.ok {
			assert.NoError(t, err, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.to, order.Status)
		} else {
			assert.ErrorIs(t, err, ErrInvalidTransition, "%s -> %s", tt.from, tt.to)
			assert.Equal(t, tt.from, order.Status, "failed transition must not change state")
		}
	}
}

func TestParseOrderStatus(t *testing.T) {
	status, err := ParseOrderStatus("Shipped")
	assert.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, status)

	_, err = ParseOrderStatus("delivered")
	assert.Error(t, err)
}

func TestOrderItemSubtotal(t *testing.T) {
	item := OrderItem{Price: decimal.RequireFromString("800"), Quantity: 2}
	assert.Equal(t, "1600", item.Subtotal().String())
}
