package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

const DefaultMaxItemQuantity = 20

type CartService struct {
	tx          domain.TxManager
	catalog     domain.CatalogRepository
	carts       domain.CartRepository
	logger      *slog.Logger
	now         func() time.Time
	maxQuantity int
}

func NewCartService(
	tx domain.TxManager,
	catalog domain.CatalogRepository,
	carts domain.CartRepository,
	logger *slog.Logger,
	maxQuantity int) *CartService {

	if maxQuantity <= 0 {
		maxQuantity = DefaultMaxItemQuantity
	}

	return &CartService{
		tx:          tx,
		catalog:     catalog,
		carts:       carts,
		logger:      logger,
		now:         time.Now,
		maxQuantity: maxQuantity,
	}
}

// Get returns the user's active cart, creating an empty one on first use.
func (s *CartService) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	var cart *domain.Cart

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		cart, err = s.activeCart(ctx, userID)
		if err != nil {
			return err
		}

		return s.refresh(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// AddItem puts an event in the cart. Adding an event that is already there raises its quantity.
func (s *CartService) AddItem(ctx context.Context, userID, eventID string, quantity int) (*domain.Cart, error) {
	if err := s.checkQuantity(quantity); err != nil {
		return nil, err
	}

	event, err := s.catalog.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if err := checkEventOpen(event, s.now()); err != nil {
		return nil, err
	}

	var cart *domain.Cart

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		cart, err = s.activeCart(ctx, userID)
		if err != nil {
			return err
		}

		if item, ok := cart.ItemForEvent(eventID); ok {
			newQuantity := item.Quantity + quantity
			if err := s.checkQuantity(newQuantity); err != nil {
				return err
			}

			if err := s.carts.UpdateItemQuantity(ctx, item.ID, newQuantity); err != nil {
				return err
			}

			item.Quantity = newQuantity
		} else {
			item := domain.CartItem{
				ID:       uuid.NewString(),
				CartID:   cart.ID,
				EventID:  eventID,
				Quantity: quantity,
			}

			if err := s.carts.AddItem(ctx, &item); err != nil {
				return err
			}

			cart.Items = append(cart.Items, item)
		}

		return s.refresh(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) UpdateItem(ctx context.Context, userID, itemID string, quantity int) (*domain.Cart, error) {
	if err := s.checkQuantity(quantity); err != nil {
		return nil, err
	}

	var cart *domain.Cart

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		cart, err = s.activeCart(ctx, userID)
		if err != nil {
			return err
		}

		item, ok := cart.Item(itemID)
		if !ok {
			return domain.NotFound("cart item %s not found", itemID)
		}

		if err := s.carts.UpdateItemQuantity(ctx, item.ID, quantity); err != nil {
			return err
		}

		item.Quantity = quantity

		return s.refresh(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// RemoveItem drops an item from the cart. Removing an item that is already gone succeeds.
func (s *CartService) RemoveItem(ctx context.Context, userID, itemID string) (*domain.Cart, error) {
	var cart *domain.Cart

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		cart, err = s.activeCart(ctx, userID)
		if err != nil {
			return err
		}

		if err := s.carts.DeleteItem(ctx, cart.ID, itemID); err != nil {
			return err
		}

		cart.Items = slices.DeleteFunc(cart.Items, func(item domain.CartItem) bool {
			return item.ID == itemID
		})

		return s.refresh(ctx, cart)
	})
	if err != nil {
		return nil, err
	}

	return cart, nil
}

func (s *CartService) activeCart(ctx context.Context, userID string) (*domain.Cart, error) {
	cart, err := s.carts.GetActiveByUser(ctx, userID)
	if err == nil {
		return cart, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	cart = &domain.Cart{
		ID:     uuid.NewString(),
		UserID: userID,
		Status: domain.CartStatusActive,
		Items:  []domain.CartItem{},
	}

	err = s.carts.Create(ctx, cart)
	if errors.Is(err, domain.ErrActiveCartExists) {
		// a concurrent request created it first
		return s.carts.GetActiveByUser(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	return cart, nil
}

// refresh recomputes totals from current catalog prices and persists them.
func (s *CartService) refresh(ctx context.Context, cart *domain.Cart) error {
	events, err := s.catalog.GetEvents(ctx, cart.EventIDs())
	if err != nil {
		return err
	}

	cart.Recalculate(events)

	return s.carts.UpdateTotals(ctx, cart)
}

func (s *CartService) checkQuantity(quantity int) error {
	if quantity < 1 || quantity > s.maxQuantity {
		return domain.BadRequest("quantity must be between 1 and %d", s.maxQuantity)
	}

	return nil
}

func checkEventOpen(event *domain.Event, now time.Time) error {
	if !event.Active {
		return domain.BadRequest("event %s is not active", event.ID)
	}

	if event.Ended(now) {
		return domain.BadRequest("event %s has ended", event.ID)
	}

	return nil
}
