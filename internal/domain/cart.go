package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type CartStatus string

const (
	CartStatusActive     CartStatus = "ACTIVE"
	CartStatusCheckedOut CartStatus = "CHECKED_OUT"
)

type Cart struct {
	ID             string
	UserID         string
	Status         CartStatus
	TotalAmount    decimal.Decimal
	DiscountAmount decimal.Decimal
	CheckedOutAt   *time.Time
	Items          []CartItem
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

type CartItem struct {
	ID        string
	CartID    string
	EventID   string
	Quantity  int
	BookingID *string
	// UnitPrice and OriginalPrice are filled in from the catalog on every recalculation.
	UnitPrice     decimal.Decimal
	OriginalPrice decimal.Decimal
}

func (c *Cart) CheckOwner(userID string) error {
	if c.UserID != userID {
		return Forbidden("cart does not belong to the current user")
	}

	return nil
}

func (c *Cart) Item(itemID string) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].ID == itemID {
			return &c.Items[i], true
		}
	}

	return nil, false
}

func (c *Cart) ItemForEvent(eventID string) (*CartItem, bool) {
	for i := range c.Items {
		if c.Items[i].EventID == eventID {
			return &c.Items[i], true
		}
	}

	return nil, false
}

func (c *Cart) EventIDs() []string {
	ids := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		ids = append(ids, item.EventID)
	}

	return ids
}

// Recalculate refreshes item prices and cart totals from the current catalog prices. Items whose
// event is no longer in the catalog contribute nothing.
func (c *Cart) Recalculate(events map[string]*Event) {
	total := decimal.Zero
	discount := decimal.Zero

	for i := range c.Items {
		item := &c.Items[i]

		event, ok := events[item.EventID]
		if !ok {
			item.UnitPrice = decimal.Zero
			item.OriginalPrice = decimal.Zero
			continue
		}

		qty := decimal.NewFromInt(int64(item.Quantity))
		item.OriginalPrice = event.OriginalPrice
		item.UnitPrice = event.UnitPrice()

		total = total.Add(item.UnitPrice.Mul(qty))

		if event.DiscountedPrice != nil {
			discount = discount.Add(event.OriginalPrice.Sub(*event.DiscountedPrice).Mul(qty))
		}
	}

	c.TotalAmount = total
	c.DiscountAmount = discount
}

type CartRepository interface {
	// GetActiveByUser returns ErrNotFound when the user has no active cart.
	GetActiveByUser(ctx context.Context, userID string) (*Cart, error)
	GetByID(ctx context.Context, id string) (*Cart, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Cart, error)
	Create(ctx context.Context, cart *Cart) error
	UpdateTotals(ctx context.Context, cart *Cart) error
	AddItem(ctx context.Context, item *CartItem) error
	UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error
	// DeleteItem is a no-op when the item does not exist.
	DeleteItem(ctx context.Context, cartID, itemID string) error
	LinkItemToBooking(ctx context.Context, itemID, bookingID string) error
	MarkCheckedOut(ctx context.Context, cartID string, at time.Time) error
}
