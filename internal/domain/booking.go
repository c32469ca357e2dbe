package domain

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "PENDING"
	BookingStatusConfirmed BookingStatus = "CONFIRMED"
	BookingStatusCompleted BookingStatus = "COMPLETED"
)

const bookingNumberPrefix = "WL"

// Booking is immutable once created except for Status and UsedQuantity.
type Booking struct {
	ID              string
	BookingNumber   string
	UserID          string
	EventID         string
	ScheduleID      *string
	Quantity        int
	UsedQuantity    int
	UnitPrice       decimal.Decimal
	TotalPrice      decimal.Decimal
	Status          BookingStatus
	TransactionID   string
	PaymentMethodID string
	Seats           []BookingSeat
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// BookingSeat is a committed reservation of a seat for a schedule with a snapshot of its placement.
type BookingSeat struct {
	SeatID     string
	ScheduleID string
	BookingID  string
	IsReserved bool
	Snapshot   SeatPlacement
}

func (b *Booking) CheckOwner(userID string) error {
	if b.UserID != userID {
		return Forbidden("booking does not belong to the current user")
	}

	return nil
}

func (b *Booking) RemainingQuantity() int {
	return b.Quantity - b.UsedQuantity
}

// AddUsedQuantity records n admissions as used. The booking completes exactly when nothing is left.
func (b *Booking) AddUsedQuantity(n int) error {
	if b.Status != BookingStatusConfirmed {
		return BadRequest("only confirmed bookings can be used, booking is %s", b.Status)
	}

	if n < 1 {
		return BadRequest("used quantity must be at least 1")
	}

	if n > b.RemainingQuantity() {
		return BadRequest("used quantity %d exceeds the remaining quantity %d", n, b.RemainingQuantity())
	}

	b.UsedQuantity += n
	if b.UsedQuantity == b.Quantity {
		b.Status = BookingStatusCompleted
	}

	return nil
}

// Confirm moves a pending booking to CONFIRMED once its payment has settled.
func (b *Booking) Confirm(txn *Transaction) error {
	if b.Status != BookingStatusPending {
		return BadRequest("booking is %s, only PENDING bookings can be confirmed", b.Status)
	}

	if txn.Status != TransactionStatusCompleted {
		return BadRequest("booking payment is %s, it must be COMPLETED first", txn.Status)
	}

	b.Status = BookingStatusConfirmed

	return nil
}

// BookingNumberPrefix returns the day prefix, e.g. WL-20260115-.
func BookingNumberPrefix(t time.Time) string {
	return fmt.Sprintf("%s-%s-", bookingNumberPrefix, t.Format("20060102"))
}

func FormatBookingNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%04d", prefix, seq)
}

func ParseBookingSequence(prefix, number string) (int, error) {
	suffix, ok := strings.CutPrefix(number, prefix)
	if !ok {
		return 0, fmt.Errorf("booking number %q does not start with %q", number, prefix)
	}

	seq, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, fmt.Errorf("booking number %q has an invalid sequence: %w", number, err)
	}

	return seq, nil
}

// NextBookingNumbers assigns n strictly increasing numbers following the current maximum sequence.
func NextBookingNumbers(prefix string, currentMax, n int) []string {
	numbers := make([]string, n)
	for i := range numbers {
		numbers[i] = FormatBookingNumber(prefix, currentMax+i+1)
	}

	return numbers
}

type BookingRepository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id string) (*Booking, error)
	GetByIDForUpdate(ctx context.Context, id string) (*Booking, error)
	ListByUser(ctx context.Context, userID string, pagination Pagination) ([]Booking, *Metadata, error)
	UpdateProgress(ctx context.Context, booking *Booking) error
	// LockBookingNumberPrefix serialises numbering for one day prefix until the transaction ends.
	LockBookingNumberPrefix(ctx context.Context, prefix string) error
	MaxBookingSequence(ctx context.Context, prefix string) (int, error)
	// ReserveSeats inserts committed seat reservations; a seat already reserved for the schedule
	// yields ErrConflict.
	ReserveSeats(ctx context.Context, seats []BookingSeat) error
}

// SeatLocker guards validate-then-reserve for (schedule, seat) pairs across processes.
type SeatLocker interface {
	// Lock acquires every seat or none, returning ErrSeatAlreadyReserved when one is taken.
	Lock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error
	Unlock(ctx context.Context, scheduleID string, seatIDs []string, owner string) error
}
