package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

type PaymentRepositories struct {
	Catalog      domain.CatalogRepository
	Bookings     domain.BookingRepository
	Transactions domain.TransactionRepository
	Wallets      domain.WalletRepository
}

// PaymentService settles transactions out of band and moves bookings through fulfilment.
type PaymentService struct {
	tx     domain.TxManager
	repos  PaymentRepositories
	logger *slog.Logger
	cfg    CheckoutConfig
}

func NewPaymentService(
	tx domain.TxManager,
	repos PaymentRepositories,
	logger *slog.Logger,
	cfg CheckoutConfig) *PaymentService {

	if cfg.PendingTransactionCap <= 0 {
		cfg.PendingTransactionCap = DefaultPendingTransactionCap
	}
	if cfg.Currency == "" {
		cfg.Currency = DefaultCurrency
	}

	return &PaymentService{
		tx:     tx,
		repos:  repos,
		logger: logger,
		cfg:    cfg,
	}
}

func (s *PaymentService) GetWallet(ctx context.Context, userID string) (*domain.Wallet, error) {
	return s.repos.Wallets.GetByUser(ctx, userID, s.cfg.Currency)
}

// RequestTopUp opens a PENDING cash deposit into the user's wallet, creating the wallet on first use.
func (s *PaymentService) RequestTopUp(
	ctx context.Context,
	userID string,
	amount decimal.Decimal,
	paymentMethodID string) (*domain.Transaction, error) {

	if !amount.IsPositive() {
		return nil, domain.BadRequest("top-up amount must be positive")
	}

	method, err := s.repos.Catalog.GetPaymentMethod(ctx, paymentMethodID)
	if err != nil {
		return nil, err
	}

	if !method.Active {
		return nil, domain.BadRequest("payment method %s is not active", paymentMethodID)
	}

	if method.Channel() != domain.ChannelCash {
		return nil, domain.BadRequest("wallet top-ups are only accepted in cash")
	}

	var txn *domain.Transaction

	err = s.tx.WithTx(ctx, func(ctx context.Context) error {
		wallet, err := s.walletFor(ctx, userID)
		if err != nil {
			return err
		}

		if !wallet.Active {
			return domain.BadRequest("wallet is not active")
		}

		if err := checkPendingCap(ctx, s.repos.Transactions, userID, s.cfg.PendingTransactionCap); err != nil {
			return err
		}

		txn = &domain.Transaction{
			ID:       uuid.NewString(),
			UserID:   userID,
			Amount:   amount,
			Currency: s.cfg.Currency,
			Channel:  domain.ChannelCash,
			Action:   domain.TransactionActionDeposit,
			Status:   domain.TransactionStatusPending,
			WalletID: &wallet.ID,
		}

		return s.repos.Transactions.Create(ctx, txn)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (s *PaymentService) walletFor(ctx context.Context, userID string) (*domain.Wallet, error) {
	wallet, err := s.repos.Wallets.GetByUserForUpdate(ctx, userID, s.cfg.Currency)
	if err == nil {
		return wallet, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	wallet = &domain.Wallet{
		ID:       uuid.NewString(),
		UserID:   userID,
		Currency: s.cfg.Currency,
		Amount:   decimal.Zero,
		Active:   true,
	}

	if err := s.repos.Wallets.Create(ctx, wallet); err != nil {
		return nil, err
	}

	return wallet, nil
}

// CompleteTransaction settles a pending cash transaction. A transaction bound to a wallet moves
// its balance in the direction of the transaction's action.
func (s *PaymentService) CompleteTransaction(
	ctx context.Context,
	caller domain.Caller,
	transactionID string) (*domain.Transaction, error) {

	if !caller.HasPermission(domain.PermissionCompleteTransaction) {
		s.logger.Warn("transaction completion without permission", "user_id", caller.UserID, "transaction_id", transactionID)
		return nil, domain.Forbidden("completing transactions requires the %s permission", domain.PermissionCompleteTransaction)
	}

	var txn *domain.Transaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		txn, err = s.repos.Transactions.GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}

		if err := txn.Complete(); err != nil {
			return err
		}

		if txn.WalletID != nil {
			wallet, err := s.repos.Wallets.GetByIDForUpdate(ctx, *txn.WalletID)
			if err != nil {
				return err
			}

			if err := wallet.Apply(txn.Action, txn.Amount); err != nil {
				return err
			}

			if err := s.repos.Wallets.UpdateBalance(ctx, wallet); err != nil {
				return err
			}
		}

		return s.repos.Transactions.UpdateStatus(ctx, txn.ID, txn.Status)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

func (s *PaymentService) CancelTransaction(
	ctx context.Context,
	caller domain.Caller,
	transactionID string) (*domain.Transaction, error) {

	var txn *domain.Transaction

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		txn, err = s.repos.Transactions.GetByIDForUpdate(ctx, transactionID)
		if err != nil {
			return err
		}

		if !caller.CanActOn(txn.UserID, domain.PermissionCompleteTransaction) {
			return domain.Forbidden("transaction does not belong to the current user")
		}

		if err := txn.Cancel(); err != nil {
			return err
		}

		return s.repos.Transactions.UpdateStatus(ctx, txn.ID, txn.Status)
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}

// ConfirmBooking confirms a pending booking whose payment has completed.
func (s *PaymentService) ConfirmBooking(ctx context.Context, caller domain.Caller, bookingID string) (*domain.Booking, error) {
	var booking *domain.Booking

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		booking, err = s.lockBooking(ctx, caller, bookingID)
		if err != nil {
			return err
		}

		txn, err := s.repos.Transactions.GetByID(ctx, booking.TransactionID)
		if err != nil {
			return err
		}

		if err := booking.Confirm(txn); err != nil {
			return err
		}

		return s.repos.Bookings.UpdateProgress(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

// AddUsedQuantity records admissions against a confirmed booking.
func (s *PaymentService) AddUsedQuantity(
	ctx context.Context,
	caller domain.Caller,
	bookingID string,
	n int) (*domain.Booking, error) {

	var booking *domain.Booking

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		booking, err = s.lockBooking(ctx, caller, bookingID)
		if err != nil {
			return err
		}

		if err := booking.AddUsedQuantity(n); err != nil {
			return err
		}

		return s.repos.Bookings.UpdateProgress(ctx, booking)
	})
	if err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *PaymentService) lockBooking(ctx context.Context, caller domain.Caller, bookingID string) (*domain.Booking, error) {
	booking, err := s.repos.Bookings.GetByIDForUpdate(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !caller.CanActOn(booking.UserID, domain.PermissionCompleteTransaction) {
		return nil, domain.Forbidden("booking does not belong to the current user")
	}

	return booking, nil
}

func (s *PaymentService) GetBooking(ctx context.Context, userID, bookingID string) (*domain.Booking, error) {
	booking, err := s.repos.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if err := booking.CheckOwner(userID); err != nil {
		return nil, err
	}

	return booking, nil
}

func (s *PaymentService) ListBookings(
	ctx context.Context,
	userID string,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	return s.repos.Bookings.ListByUser(ctx, userID, pagination)
}
