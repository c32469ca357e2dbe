package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "PENDING"
	SessionStatusConfirmed SessionStatus = "CONFIRMED"
	SessionStatusCancelled SessionStatus = "CANCELLED"
)

// Session is a user's seat-hold scope for one event occurrence. Holds are advisory: only a
// committed booking seat blocks another customer.
type Session struct {
	ID         string
	UserID     string
	EventID    string
	ScheduleID string
	Code       string
	Status     SessionStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (s *Session) CheckOwner(userID string) error {
	if s.UserID != userID {
		return Forbidden("session does not belong to the current user")
	}

	return nil
}

func (s *Session) CheckPending() error {
	if s.Status != SessionStatusPending {
		return BadRequest("session is %s, seats can only be changed while it is PENDING", s.Status)
	}

	return nil
}

type SessionSeat struct {
	Placement SeatPlacement
	Price     *decimal.Decimal
}

type SessionDetail struct {
	Session    Session
	Seats      []SessionSeat
	TotalPrice decimal.Decimal
}

type ToggleAction string

const (
	ToggleAdded   ToggleAction = "added"
	ToggleRemoved ToggleAction = "removed"
)

type ToggleResult struct {
	Action    ToggleAction
	Placement SeatPlacement
	HeldSeats int
}

type SessionRepository interface {
	Create(ctx context.Context, session *Session) error
	GetByID(ctx context.Context, id string) (*Session, error)
	// GetByIDForUpdate locks the session row for the rest of the surrounding transaction.
	GetByIDForUpdate(ctx context.Context, id string) (*Session, error)
	FindPending(ctx context.Context, userID, eventID, scheduleID string) (*Session, error)
	UpdateStatus(ctx context.Context, id string, status SessionStatus) error
	GetSeatIDs(ctx context.Context, sessionID string) ([]string, error)
	AddSeat(ctx context.Context, sessionID, seatID string) error
	RemoveSeat(ctx context.Context, sessionID, seatID string) error
	ClearSeats(ctx context.Context, sessionID string) error
}
