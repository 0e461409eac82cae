package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyStatusAppendsHistory(t *testing.T) {
	start := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	o := &Order{}
	o.ApplyStatus(OrderNew, "", "system", start)

	steps := []OrderStatus{OrderConfirmed, OrderPreparing, OrderShipping, OrderCompleted, OrderNew}
	for i, s := range steps {
		before := len(o.StatusHistory)
		entry := o.ApplyStatus(s, "note", "admin", start.Add(time.Duration(i+1)*time.Hour))

		require.Len(t, o.StatusHistory, before+1)
		assert.Equal(t, s, o.Status)
		assert.Equal(t, entry, o.StatusHistory[len(o.StatusHistory)-1])
		assert.Equal(t, o.Status, o.StatusHistory[len(o.StatusHistory)-1].Status)
	}
	// Earlier entries are untouched.
	assert.Equal(t, OrderNew, o.StatusHistory[0].Status)
	assert.Equal(t, "system", o.StatusHistory[0].UpdatedBy)
}

func TestOrderSubtotal(t *testing.T) {
	o := Order{Items: []OrderItem{
		{Quantity: 2, Price: 100},
		{Quantity: 1, Price: 49.5},
	}}
	assert.Equal(t, 249.5, o.Subtotal())
}

func TestOrderStatusValid(t *testing.T) {
	assert.True(t, OrderCancelRequested.Valid())
	assert.False(t, OrderStatus("lost").Valid())
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2099-01-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2099, 1, 1, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2024-05-06T07:08:09+07:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 6, 0, 8, 9, 0, time.UTC), d)

	_, err = ParseDate("tomorrow")
	assert.Error(t, err)
}
