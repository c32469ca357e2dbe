package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v3"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

const sessionCodeLength = 8

// SessionService manages a user's tentative seat holds for one event occurrence.
type SessionService struct {
	tx       domain.TxManager
	catalog  domain.CatalogRepository
	seatMaps *SeatMapService
	seats    domain.SeatMapRepository
	sessions domain.SessionRepository
	logger   *slog.Logger
	newCode  func() string
}

func NewSessionService(
	tx domain.TxManager,
	catalog domain.CatalogRepository,
	seatMaps *SeatMapService,
	seats domain.SeatMapRepository,
	sessions domain.SessionRepository,
	logger *slog.Logger) *SessionService {

	return &SessionService{
		tx:       tx,
		catalog:  catalog,
		seatMaps: seatMaps,
		seats:    seats,
		sessions: sessions,
		logger:   logger,
		newCode:  newSessionCode,
	}
}

func newSessionCode() string {
	return shortuuid.New()[:sessionCodeLength]
}

// Create opens a hold session, or returns the user's PENDING session for the same occurrence.
func (s *SessionService) Create(ctx context.Context, userID, eventID, scheduleID string) (*domain.Session, error) {
	event, err := s.catalog.GetEvent(ctx, eventID)
	if err != nil {
		return nil, err
	}

	if !event.HaveSeats {
		return nil, domain.BadRequest("event %s does not have assigned seating", eventID)
	}

	schedule, err := s.catalog.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.EventID != event.ID {
		return nil, domain.BadRequest("schedule %s does not belong to event %s", scheduleID, eventID)
	}

	existing, err := s.sessions.FindPending(ctx, userID, eventID, scheduleID)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	session := &domain.Session{
		ID:         uuid.NewString(),
		UserID:     userID,
		EventID:    eventID,
		ScheduleID: scheduleID,
		Code:       s.newCode(),
		Status:     domain.SessionStatusPending,
	}

	err = s.sessions.Create(ctx, session)
	if errors.Is(err, domain.ErrSessionCodeTaken) {
		s.logger.Warn("session code collision, retrying with a new code", "code", session.Code)
		session.Code = s.newCode()
		err = s.sessions.Create(ctx, session)
	}
	if err != nil {
		if errors.Is(err, domain.ErrConflict) && !errors.Is(err, domain.ErrSessionCodeTaken) {
			// lost a race against a concurrent create for the same occurrence
			return s.sessions.FindPending(ctx, userID, eventID, scheduleID)
		}

		return nil, err
	}

	return session, nil
}

func (s *SessionService) Get(ctx context.Context, userID, sessionID string) (*domain.SessionDetail, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.CheckOwner(userID); err != nil {
		return nil, err
	}

	seatIDs, err := s.sessions.GetSeatIDs(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	seats, total, err := priceHeldSeats(ctx, s.seats, session, seatIDs)
	if err != nil {
		return nil, err
	}

	return &domain.SessionDetail{
		Session:    *session,
		Seats:      seats,
		TotalPrice: total,
	}, nil
}

// priceHeldSeats resolves held seats to their current zone pricing. A seat whose zone has no
// pricing row for the occurrence carries no price and adds nothing to the total.
func priceHeldSeats(
	ctx context.Context,
	repo domain.SeatMapRepository,
	session *domain.Session,
	seatIDs []string) ([]domain.SessionSeat, decimal.Decimal, error) {

	seats := make([]domain.SessionSeat, 0, len(seatIDs))
	total := decimal.Zero

	if len(seatIDs) == 0 {
		return seats, total, nil
	}

	placements, err := repo.GetSeatPlacements(ctx, seatIDs)
	if err != nil {
		return nil, decimal.Zero, err
	}

	pricing, err := repo.GetZonePricing(ctx, session.EventID, session.ScheduleID)
	if err != nil {
		return nil, decimal.Zero, err
	}

	priceByZone := make(map[string]decimal.Decimal, len(pricing))
	for _, p := range pricing {
		priceByZone[p.LocationZoneID] = p.Price()
	}

	for _, seatID := range seatIDs {
		placement, ok := placements[seatID]
		if !ok {
			continue
		}

		seat := domain.SessionSeat{Placement: placement}
		if price, ok := priceByZone[placement.LocationZoneID]; ok {
			seat.Price = &price
			total = total.Add(price)
		}

		seats = append(seats, seat)
	}

	return seats, total, nil
}

// ToggleSeat releases the addressed seat when it is held, holds it otherwise.
func (s *SessionService) ToggleSeat(
	ctx context.Context,
	userID,
	sessionID string,
	locator domain.SeatLocator) (*domain.ToggleResult, error) {

	var result *domain.ToggleResult

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		session, err := s.pendingSession(ctx, userID, sessionID)
		if err != nil {
			return err
		}

		seatMap, err := s.seatMaps.FullMap(ctx, session.ScheduleID)
		if err != nil {
			return err
		}

		placement, ok := seatMap.Locate(locator)
		if !ok {
			return domain.NotFound("seat %s not found at the event location", locator)
		}

		held, err := s.sessions.GetSeatIDs(ctx, session.ID)
		if err != nil {
			return err
		}

		if slices.Contains(held, placement.SeatID) {
			if err := s.sessions.RemoveSeat(ctx, session.ID, placement.SeatID); err != nil {
				return err
			}

			result = &domain.ToggleResult{Action: domain.ToggleRemoved, Placement: placement, HeldSeats: len(held) - 1}
			return nil
		}

		reserved, err := s.seats.GetReservedSeatIDs(ctx, session.ScheduleID, []string{placement.SeatID})
		if err != nil {
			return err
		}

		if reserved[placement.SeatID] {
			s.logger.Warn("hold rejected for a reserved seat", "session_id", session.ID, "seat_id", placement.SeatID)
			return domain.Conflict("seat %s is already reserved", locator)
		}

		if err := s.sessions.AddSeat(ctx, session.ID, placement.SeatID); err != nil {
			return err
		}

		result = &domain.ToggleResult{Action: domain.ToggleAdded, Placement: placement, HeldSeats: len(held) + 1}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (s *SessionService) RemoveSeat(ctx context.Context, userID, sessionID, seatID string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		session, err := s.pendingSession(ctx, userID, sessionID)
		if err != nil {
			return err
		}

		return s.sessions.RemoveSeat(ctx, session.ID, seatID)
	})
}

func (s *SessionService) ClearSeats(ctx context.Context, userID, sessionID string) error {
	return s.tx.WithTx(ctx, func(ctx context.Context) error {
		session, err := s.pendingSession(ctx, userID, sessionID)
		if err != nil {
			return err
		}

		return s.sessions.ClearSeats(ctx, session.ID)
	})
}

// Cancel releases every hold and closes the session for good.
func (s *SessionService) Cancel(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	var session *domain.Session

	err := s.tx.WithTx(ctx, func(ctx context.Context) error {
		var err error

		session, err = s.sessions.GetByIDForUpdate(ctx, sessionID)
		if err != nil {
			return err
		}

		if err := session.CheckOwner(userID); err != nil {
			return err
		}

		if session.Status == domain.SessionStatusCancelled {
			return nil
		}

		if err := session.CheckPending(); err != nil {
			return err
		}

		if err := s.sessions.ClearSeats(ctx, session.ID); err != nil {
			return err
		}

		if err := s.sessions.UpdateStatus(ctx, session.ID, domain.SessionStatusCancelled); err != nil {
			return err
		}

		session.Status = domain.SessionStatusCancelled
		return nil
	})
	if err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SessionService) pendingSession(ctx context.Context, userID, sessionID string) (*domain.Session, error) {
	session, err := s.sessions.GetByIDForUpdate(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if err := session.CheckOwner(userID); err != nil {
		return nil, err
	}

	if err := session.CheckPending(); err != nil {
		return nil, err
	}

	return session, nil
}
