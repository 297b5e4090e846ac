package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from OrderStatus
		to   OrderStatus
		want bool
	}{
		{"pending to shipped", StatusPending, StatusShipped, true},
		{"pending to delivered skips shipped", StatusPending, StatusDelivered, true},
		{"pending to cancelled", StatusPending, StatusCancelled, true},
		{"shipped to delivered", StatusShipped, StatusDelivered, true},
		{"shipped to cancelled", StatusShipped, StatusCancelled, true},
		{"shipped back to pending", StatusShipped, StatusPending, false},
		{"delivered to cancelled", StatusDelivered, StatusCancelled, false},
		{"delivered to shipped", StatusDelivered, StatusShipped, false},
		{"cancelled to pending", StatusCancelled, StatusPending, false},
		{"self transition pending", StatusPending, StatusPending, true},
		{"self transition delivered", StatusDelivered, StatusDelivered, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	st, err := ParseOrderStatus("SHIPPED")
	assert.NoError(t, err)
	assert.Equal(t, StatusShipped, st)

	_, err = ParseOrderStatus("LOST")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestAggregateQuantities(t *testing.T) {
	items := []OrderItem{
		{ProductID: 1, Quantity: 3},
		{ProductID: 2, Quantity: 1},
		{ProductID: 1, Quantity: 4},
	}
	totals := AggregateQuantities(items)
	assert.Equal(t, map[int64]int{1: 7, 2: 1}, totals)
}

func TestStatusAfterChange(t *testing.T) {
	tests := []struct {
		name     string
		prev     int
		next     int
		want     ProductStatus
		wantFlip bool
	}{
		{"stock hits zero", 3, 0, ProductOutOfStock, true},
		{"stock recovers", 0, 5, ProductActive, true},
		{"still positive", 5, 3, "", false},
		{"still zero", 0, 0, "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, flip := StatusAfterChange(tt.prev, tt.next)
			assert.Equal(t, tt.wantFlip, flip)
			if tt.wantFlip {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
