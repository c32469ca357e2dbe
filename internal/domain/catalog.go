package domain

import (
	"context"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Event, Schedule and PaymentMethod are owned by the catalog; this service only reads them.
type Event struct {
	ID              string
	Name            BilingualText
	Active          bool
	EndAt           time.Time
	HaveSeats       bool
	OriginalPrice   decimal.Decimal
	DiscountedPrice *decimal.Decimal
	LocationID      string
}

func (e *Event) Ended(now time.Time) bool {
	return !e.EndAt.IsZero() && !now.Before(e.EndAt)
}

// UnitPrice is the discounted price when one is set, the original price otherwise.
func (e *Event) UnitPrice() decimal.Decimal {
	return EffectivePrice(e.OriginalPrice, e.DiscountedPrice)
}

func EffectivePrice(original decimal.Decimal, discounted *decimal.Decimal) decimal.Decimal {
	if discounted != nil {
		return *discounted
	}

	return original
}

type Schedule struct {
	ID      string
	EventID string
	StartAt time.Time
}

type Channel string

const (
	ChannelWallet Channel = "wallet"
	ChannelCash   Channel = "cash"
)

type PaymentMethod struct {
	ID     string
	Name   BilingualText
	Active bool
}

// Channel derives the settlement channel from the method's display name. Any name other than
// wallet or cash is treated as an external gateway.
func (p *PaymentMethod) Channel() Channel {
	return Channel(strings.ToLower(strings.TrimSpace(p.Name.Primary)))
}

type CatalogRepository interface {
	GetEvent(ctx context.Context, id string) (*Event, error)
	GetEvents(ctx context.Context, ids []string) (map[string]*Event, error)
	GetSchedule(ctx context.Context, id string) (*Schedule, error)
	GetPaymentMethod(ctx context.Context, id string) (*PaymentMethod, error)
}

// TxManager runs fn inside a single storage transaction carried by the context passed to fn.
// Nested calls join the outer transaction.
type TxManager interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}
