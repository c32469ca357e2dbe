package service

import (
	"context"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
)

const (
	DefaultPendingTransactionCap = 3
	DefaultCurrency              = "SAR"

	instrumentationName = "github.com/metinatakli/venue-checkout/internal/service"
)

type CheckoutConfig struct {
	PendingTransactionCap int
	Currency              string
}

type DirectPurchase struct {
	EventID         string
	Quantity        int
	PaymentMethodID string
	// SessionID, when set, buys the seats held by that session.
	SessionID string
}

type CartPurchase struct {
	CartID          string
	PaymentMethodID string
}

type CheckoutResult struct {
	Transaction *domain.Transaction
	Bookings    []domain.Booking
}

type CheckoutRepositories struct {
	Catalog      domain.CatalogRepository
	Seats        domain.SeatMapRepository
	Sessions     domain.SessionRepository
	Carts        domain.CartRepository
	Bookings     domain.BookingRepository
	Transactions domain.TransactionRepository
	Wallets      domain.WalletRepository
}

// CheckoutService turns a cart or a direct purchase into bookings with settled payment.
// Every checkout runs in a single storage transaction: either all of it persists or none.
type CheckoutService struct {
	tx       domain.TxManager
	repos    CheckoutRepositories
	seatMaps *SeatMapService
	locker   domain.SeatLocker
	logger   *slog.Logger
	now      func() time.Time
	cfg      CheckoutConfig

	bookingsCreated metric.Int64Counter
}

func NewCheckoutService(
	tx domain.TxManager,
	repos CheckoutRepositories,
	seatMaps *SeatMapService,
	locker domain.SeatLocker,
	logger *slog.Logger,
	cfg CheckoutConfig) *CheckoutService {

	if cfg.PendingTransactionCap <= 0 {
		cfg.PendingTransactionCap = DefaultPendingTransactionCap
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}

	counter, err := otel.Meter(instrumentationName).Int64Counter(
		"checkout.bookings",
		metric.WithDescription("Bookings created by checkout"),
	)
	if err != nil {
		logger.Warn("failed to create checkout counter", "error", err)
		counter = noop.Int64Counter{}
	}

	return &CheckoutService{
		tx:              tx,
		repos:           repos,
		seatMaps:        seatMaps,
		locker:          locker,
		logger:          logger,
		now:             time.Now,
		cfg:             cfg,
		bookingsCreated: counter,
	}
}

func (s *CheckoutService) Direct(ctx context.Context, userID string, req DirectPurchase) (*CheckoutResult, error) {
	if req.Quantity < 1 {
		return nil, domain.BadRequest("quantity must be at least 1")
	}

	event, err := s.repos.Catalog.GetEvent(ctx, req.EventID)
	if err != nil {
		return nil, err
	}

	if err := checkEventOpen(event, s.now()); err != nil {
		return nil, err
	}

	method, err := s.activePaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	var (
		session *domain.Session
		seatIDs []string
	)

	if req.SessionID != "" {
		session, seatIDs, err = s.heldSeats(ctx, userID, event, req)
		if err != nil {
			return nil, err
		}

		if err := s.locker.Lock(ctx, session.ScheduleID, seatIDs, session.ID); err != nil {
			return nil, err
		}
		defer func() {
			// the unique index still guards the reservation if a lock outlives its holder
			if err := s.locker.Unlock(context.WithoutCancel(ctx), session.ScheduleID, seatIDs, session.ID); err != nil {
				s.logger.Error("failed to release seat locks", "session_id", session.ID, "error", err)
			}
		}()
	}

	var result *CheckoutResult

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		unitPrice := event.UnitPrice()
		totalPrice := unitPrice.Mul(decimal.NewFromInt(int64(req.Quantity)))

		var (
			scheduleID *string
			seats      []domain.BookingSeat
		)

		if session != nil {
			locked, err := s.repos.Sessions.GetByIDForUpdate(ctx, session.ID)
			if err != nil {
				return err
			}

			if err := locked.CheckPending(); err != nil {
				return err
			}

			current, err := s.repos.Sessions.GetSeatIDs(ctx, session.ID)
			if err != nil {
				return err
			}

			if !sameSeats(current, seatIDs) {
				return domain.BadRequest("held seats of session %s changed during checkout, review them and retry", session.ID)
			}

			placements, err := s.seatMaps.ValidateForBooking(ctx, session.ScheduleID, seatIDs)
			if err != nil {
				return err
			}

			var priced []domain.SessionSeat
			priced, totalPrice, err = priceHeldSeats(ctx, s.repos.Seats, session, seatIDs)
			if err != nil {
				return err
			}

			for _, seat := range priced {
				if seat.Price == nil {
					return domain.BadRequest("seat %s has no price for this schedule", seat.Placement.SeatID)
				}
			}

			unitPrice = totalPrice.DivRound(decimal.NewFromInt(int64(req.Quantity)), 2)
			scheduleID = &session.ScheduleID

			for _, seatID := range seatIDs {
				seats = append(seats, domain.BookingSeat{
					SeatID:     seatID,
					ScheduleID: session.ScheduleID,
					IsReserved: true,
					Snapshot:   placements[seatID],
				})
			}
		}

		txn, err := s.settle(ctx, userID, method, totalPrice)
		if err != nil {
			return err
		}

		numbers, err := s.nextBookingNumbers(ctx, 1)
		if err != nil {
			return err
		}

		booking := newBooking(userID, event.ID, scheduleID, req.Quantity, unitPrice, totalPrice, txn, method, numbers[0])

		if err := s.repos.Bookings.Create(ctx, &booking); err != nil {
			return err
		}

		if session != nil {
			for i := range seats {
				seats[i].BookingID = booking.ID
			}

			if err := s.repos.Bookings.ReserveSeats(ctx, seats); err != nil {
				return err
			}

			if err := s.repos.Sessions.ClearSeats(ctx, session.ID); err != nil {
				return err
			}

			if err := s.repos.Sessions.UpdateStatus(ctx, session.ID, domain.SessionStatusConfirmed); err != nil {
				return err
			}

			booking.Seats = seats
		}

		result = &CheckoutResult{Transaction: txn, Bookings: []domain.Booking{booking}}
		return nil
	})
	if err != nil {
		s.logger.Warn("direct checkout failed", "user_id", userID, "event_id", req.EventID, "error", err)
		return nil, err
	}

	s.record(ctx, "direct", result)

	return result, nil
}

// heldSeats loads the session a seat purchase is made from and its held seats.
func (s *CheckoutService) heldSeats(
	ctx context.Context,
	userID string,
	event *domain.Event,
	req DirectPurchase) (*domain.Session, []string, error) {

	if !event.HaveSeats {
		return nil, nil, domain.BadRequest("event %s does not have assigned seating", event.ID)
	}

	session, err := s.repos.Sessions.GetByID(ctx, req.SessionID)
	if err != nil {
		return nil, nil, err
	}

	if err := session.CheckOwner(userID); err != nil {
		return nil, nil, err
	}

	if err := session.CheckPending(); err != nil {
		return nil, nil, err
	}

	if session.EventID != event.ID {
		return nil, nil, domain.BadRequest("session %s is not for event %s", session.ID, event.ID)
	}

	seatIDs, err := s.repos.Sessions.GetSeatIDs(ctx, session.ID)
	if err != nil {
		return nil, nil, err
	}

	if len(seatIDs) == 0 {
		return nil, nil, domain.BadRequest("session %s holds no seats", session.ID)
	}

	if len(seatIDs) != req.Quantity {
		return nil, nil, domain.BadRequest("quantity %d does not match the %d held seats", req.Quantity, len(seatIDs))
	}

	return session, seatIDs, nil
}

func sameSeats(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}

	a, b = slices.Clone(a), slices.Clone(b)
	slices.Sort(a)
	slices.Sort(b)

	return slices.Equal(a, b)
}

func (s *CheckoutService) Cart(ctx context.Context, userID string, req CartPurchase) (*CheckoutResult, error) {
	method, err := s.activePaymentMethod(ctx, req.PaymentMethodID)
	if err != nil {
		return nil, err
	}

	var result *CheckoutResult

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		cart, err := s.repos.Carts.GetByIDForUpdate(ctx, req.CartID)
		if err != nil {
			return err
		}

		if err := cart.CheckOwner(userID); err != nil {
			return err
		}

		if cart.Status != domain.CartStatusActive {
			return domain.BadRequest("cart %s is already checked out", cart.ID)
		}

		if len(cart.Items) == 0 {
			return domain.BadRequest("cart %s is empty", cart.ID)
		}

		events, err := s.repos.Catalog.GetEvents(ctx, cart.EventIDs())
		if err != nil {
			return err
		}

		now := s.now()
		for _, item := range cart.Items {
			event, ok := events[item.EventID]
			if !ok {
				return domain.NotFound("event %s not found", item.EventID)
			}

			if err := checkEventOpen(event, now); err != nil {
				return err
			}
		}

		cart.Recalculate(events)

		if err := s.repos.Carts.UpdateTotals(ctx, cart); err != nil {
			return err
		}

		txn, err := s.settle(ctx, userID, method, cart.TotalAmount)
		if err != nil {
			return err
		}

		numbers, err := s.nextBookingNumbers(ctx, len(cart.Items))
		if err != nil {
			return err
		}

		bookings := make([]domain.Booking, 0, len(cart.Items))

		for i, item := range cart.Items {
			total := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			booking := newBooking(userID, item.EventID, nil, item.Quantity, item.UnitPrice, total, txn, method, numbers[i])

			if err := s.repos.Bookings.Create(ctx, &booking); err != nil {
				return err
			}

			if err := s.repos.Carts.LinkItemToBooking(ctx, item.ID, booking.ID); err != nil {
				return err
			}

			bookings = append(bookings, booking)
		}

		if err := s.repos.Carts.MarkCheckedOut(ctx, cart.ID, now); err != nil {
			return err
		}

		result = &CheckoutResult{Transaction: txn, Bookings: bookings}
		return nil
	})
	if err != nil {
		s.logger.Warn("cart checkout failed", "user_id", userID, "cart_id", req.CartID, "error", err)
		return nil, err
	}

	s.record(ctx, "cart", result)

	return result, nil
}

func (s *CheckoutService) activePaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	method, err := s.repos.Catalog.GetPaymentMethod(ctx, id)
	if err != nil {
		return nil, err
	}

	if !method.Active {
		return nil, domain.BadRequest("payment method %s is not active", id)
	}

	return method, nil
}

// settle creates the purchase transaction for amount. Wallet payments are debited and completed
// immediately; every other channel stays PENDING until settled out of band.
func (s *CheckoutService) settle(
	ctx context.Context,
	userID string,
	method *domain.PaymentMethod,
	amount decimal.Decimal) (*domain.Transaction, error) {

	txn := &domain.Transaction{
		ID:       uuid.NewString(),
		UserID:   userID,
		Amount:   amount,
		Currency: s.cfg.Currency,
		Channel:  method.Channel(),
		Action:   domain.TransactionActionPurchase,
		Status:   domain.TransactionStatusPending,
	}

	if txn.Channel == domain.ChannelWallet {
		wallet, err := s.repos.Wallets.GetByUserForUpdate(ctx, userID, s.cfg.Currency)
		if err != nil {
			return nil, err
		}

		if !wallet.Active {
			return nil, domain.BadRequest("wallet is not active")
		}

		if amount.IsPositive() {
			if err := wallet.Debit(amount); err != nil {
				return nil, err
			}

			if err := s.repos.Wallets.UpdateBalance(ctx, wallet); err != nil {
				return nil, err
			}
		}

		txn.Status = domain.TransactionStatusCompleted
		txn.WalletID = &wallet.ID
	} else {
		if err := checkPendingCap(ctx, s.repos.Transactions, userID, s.cfg.PendingTransactionCap); err != nil {
			return nil, err
		}
	}

	if err := s.repos.Transactions.Create(ctx, txn); err != nil {
		return nil, err
	}

	return txn, nil
}

// checkPendingCap must run inside a transaction: the per-user lock it takes is held until
// commit, so the count stays valid for the insert that follows.
func checkPendingCap(ctx context.Context, repo domain.TransactionRepository, userID string, limit int) error {
	if err := repo.LockUser(ctx, userID); err != nil {
		return err
	}

	pending, err := repo.CountPendingByUser(ctx, userID)
	if err != nil {
		return err
	}

	if pending >= limit {
		return domain.BadRequest("too many pending transactions: settle or cancel one of the %d open ones first", pending)
	}

	return nil
}

// nextBookingNumbers assigns n numbers for today in one pass. The advisory lock serialises
// concurrent checkouts on the same day prefix until the transaction ends.
func (s *CheckoutService) nextBookingNumbers(ctx context.Context, n int) ([]string, error) {
	prefix := domain.BookingNumberPrefix(s.now())

	if err := s.repos.Bookings.LockBookingNumberPrefix(ctx, prefix); err != nil {
		return nil, err
	}

	current, err := s.repos.Bookings.MaxBookingSequence(ctx, prefix)
	if err != nil {
		return nil, err
	}

	return domain.NextBookingNumbers(prefix, current, n), nil
}

func newBooking(
	userID,
	eventID string,
	scheduleID *string,
	quantity int,
	unitPrice,
	totalPrice decimal.Decimal,
	txn *domain.Transaction,
	method *domain.PaymentMethod,
	number string) domain.Booking {

	status := domain.BookingStatusPending
	if txn.Status == domain.TransactionStatusCompleted {
		status = domain.BookingStatusConfirmed
	}

	return domain.Booking{
		ID:              uuid.NewString(),
		BookingNumber:   number,
		UserID:          userID,
		EventID:         eventID,
		ScheduleID:      scheduleID,
		Quantity:        quantity,
		UnitPrice:       unitPrice,
		TotalPrice:      totalPrice,
		Status:          status,
		TransactionID:   txn.ID,
		PaymentMethodID: method.ID,
	}
}

func (s *CheckoutService) record(ctx context.Context, kind string, result *CheckoutResult) {
	s.bookingsCreated.Add(ctx, int64(len(result.Bookings)),
		metric.WithAttributes(
			attribute.String("checkout.kind", kind),
			attribute.String("payment.channel", string(result.Transaction.Channel)),
		),
	)
}
