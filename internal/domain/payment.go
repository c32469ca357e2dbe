package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusPending   TransactionStatus = "PENDING"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusFailed    TransactionStatus = "FAILED"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

type TransactionAction string

const (
	TransactionActionDeposit  TransactionAction = "DEPOSIT"
	TransactionActionPurchase TransactionAction = "PURCHASE"
)

// PermissionCompleteTransaction allows staff to settle cash transactions.
const PermissionCompleteTransaction = "transactions:complete"

type Transaction struct {
	ID        string
	UserID    string
	Amount    decimal.Decimal
	Currency  string
	Channel   Channel
	Action    TransactionAction
	Status    TransactionStatus
	WalletID  *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Complete settles a pending cash transaction. Other channels are settled by their own
// integrations and cannot be completed by hand.
func (t *Transaction) Complete() error {
	if t.Status != TransactionStatusPending {
		return BadRequest("transaction is %s, only PENDING transactions can be completed", t.Status)
	}

	if t.Channel != ChannelCash {
		return BadRequest("only cash transactions can be completed manually, channel is %q", t.Channel)
	}

	t.Status = TransactionStatusCompleted

	return nil
}

func (t *Transaction) Cancel() error {
	if t.Status != TransactionStatusPending {
		return BadRequest("transaction is %s, only PENDING transactions can be cancelled", t.Status)
	}

	t.Status = TransactionStatusCancelled

	return nil
}

type Wallet struct {
	ID             string
	UserID         string
	Currency       string
	Amount         decimal.Decimal
	PreviousAmount decimal.Decimal
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Debit withdraws amount. The balance is left untouched when it does not cover the amount.
func (w *Wallet) Debit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return BadRequest("debit amount must be positive")
	}

	if w.Amount.LessThan(amount) {
		return BadRequest("insufficient wallet balance: %s available, %s requested", w.Amount.StringFixed(2), amount.StringFixed(2))
	}

	w.PreviousAmount = w.Amount
	w.Amount = w.Amount.Sub(amount)

	return nil
}

func (w *Wallet) Credit(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return BadRequest("credit amount must be positive")
	}

	w.PreviousAmount = w.Amount
	w.Amount = w.Amount.Add(amount)

	return nil
}

// Apply moves the balance in the direction implied by a transaction action.
func (w *Wallet) Apply(action TransactionAction, amount decimal.Decimal) error {
	switch action {
	case TransactionActionDeposit:
		return w.Credit(amount)
	case TransactionActionPurchase:
		return w.Debit(amount)
	}

	return BadRequest("unknown transaction action %q", action)
}

type TransactionRepository interface {
	Create(ctx context.Context, txn *Transaction) error
	GetByID(ctx context.Context, id string) (*Transaction, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Transaction, error)
	UpdateStatus(ctx context.Context, id string, status TransactionStatus) error
	// LockUser serialises pending-transaction bookkeeping for one user until the transaction ends.
	LockUser(ctx context.Context, userID string) error
	CountPendingByUser(ctx context.Context, userID string) (int, error)
}

type WalletRepository interface {
	// GetByUserForUpdate locks the wallet row until the surrounding transaction ends.
	GetByUserForUpdate(ctx context.Context, userID, currency string) (*Wallet, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Wallet, error)
	GetByUser(ctx context.Context, userID, currency string) (*Wallet, error)
	Create(ctx context.Context, wallet *Wallet) error
	// UpdateBalance writes Amount only if the stored amount still equals PreviousAmount,
	// returning ErrEditConflict otherwise.
	UpdateBalance(ctx context.Context, wallet *Wallet) error
}
