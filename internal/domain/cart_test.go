package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCartRecalculate(t *testing.T) {
	discounted := dec("40")
	events := map[string]*Event{
		"event-a": {ID: "event-a", OriginalPrice: dec("50"), DiscountedPrice: &discounted},
		"event-b": {ID: "event-b", OriginalPrice: dec("30")},
	}

	cart := &Cart{Items: []CartItem{
		{ID: "item-a", EventID: "event-a", Quantity: 2},
		{ID: "item-b", EventID: "event-b", Quantity: 1},
		{ID: "item-gone", EventID: "event-gone", Quantity: 3},
	}}

	cart.Recalculate(events)

	assert.True(t, cart.TotalAmount.Equal(dec("110")), "total is %s", cart.TotalAmount)
	assert.True(t, cart.DiscountAmount.Equal(dec("20")), "discount is %s", cart.DiscountAmount)
	assert.True(t, cart.Items[0].UnitPrice.Equal(dec("40")))
	assert.True(t, cart.Items[0].OriginalPrice.Equal(dec("50")))
	assert.True(t, cart.Items[2].UnitPrice.IsZero())
	assert.Equal(t, []string{"event-a", "event-b", "event-gone"}, cart.EventIDs())
}
