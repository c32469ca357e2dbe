package service

import (
	"context"
	"log/slog"

	"github.com/metinatakli/venue-checkout/internal/domain"
)

// SeatMapService reads the venue hierarchy of a schedule with live availability.
type SeatMapService struct {
	catalog domain.CatalogRepository
	seats   domain.SeatMapRepository
	logger  *slog.Logger
}

func NewSeatMapService(
	catalog domain.CatalogRepository,
	seats domain.SeatMapRepository,
	logger *slog.Logger) *SeatMapService {

	return &SeatMapService{
		catalog: catalog,
		seats:   seats,
		logger:  logger,
	}
}

// seatedEvent resolves the schedule and its event, rejecting events without assigned seating.
func (s *SeatMapService) seatedEvent(ctx context.Context, scheduleID string) (*domain.Schedule, *domain.Event, error) {
	schedule, err := s.catalog.GetSchedule(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	event, err := s.catalog.GetEvent(ctx, schedule.EventID)
	if err != nil {
		return nil, nil, err
	}

	if !event.HaveSeats {
		s.logger.Warn("seat map requested for an event without seating", "event_id", event.ID, "schedule_id", scheduleID)
		return nil, nil, domain.BadRequest("event %s does not have assigned seating", event.ID)
	}

	return schedule, event, nil
}

func (s *SeatMapService) FullMap(ctx context.Context, scheduleID string) (*domain.SeatMap, error) {
	schedule, event, err := s.seatedEvent(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	layout, err := s.seats.GetLayout(ctx, event.LocationID)
	if err != nil {
		return nil, err
	}

	pricing, err := s.seats.GetZonePricing(ctx, event.ID, schedule.ID)
	if err != nil {
		return nil, err
	}

	reserved, err := s.seats.GetReservedSeatIDs(ctx, schedule.ID, nil)
	if err != nil {
		return nil, err
	}

	return domain.BuildSeatMap(schedule, layout, pricing, reserved), nil
}

func (s *SeatMapService) Zones(ctx context.Context, scheduleID string) ([]domain.ZoneNode, error) {
	seatMap, err := s.FullMap(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	return seatMap.Zones, nil
}

func (s *SeatMapService) Sections(ctx context.Context, scheduleID, locationZoneID string) ([]domain.SectionNode, error) {
	seatMap, err := s.FullMap(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	zone, ok := seatMap.Zone(locationZoneID)
	if !ok {
		return nil, domain.NotFound("zone %s not found for schedule %s", locationZoneID, scheduleID)
	}

	return zone.Sections, nil
}

func (s *SeatMapService) Rows(ctx context.Context, scheduleID, sectionID string) ([]domain.RowNode, error) {
	seatMap, err := s.FullMap(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	section, ok := seatMap.Section(sectionID)
	if !ok {
		return nil, domain.NotFound("section %s not found for schedule %s", sectionID, scheduleID)
	}

	return section.Rows, nil
}

func (s *SeatMapService) Seats(ctx context.Context, scheduleID, rowID string) ([]domain.SeatNode, error) {
	seatMap, err := s.FullMap(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	row, ok := seatMap.Row(rowID)
	if !ok {
		return nil, domain.NotFound("row %s not found for schedule %s", rowID, scheduleID)
	}

	return row.Seats, nil
}

// CheckAvailability reports, per seat, whether no committed booking reserves it for the schedule.
// It does not check that the ids exist; ValidateForBooking does.
func (s *SeatMapService) CheckAvailability(
	ctx context.Context,
	scheduleID string,
	seatIDs []string) (map[string]bool, error) {

	if _, _, err := s.seatedEvent(ctx, scheduleID); err != nil {
		return nil, err
	}

	availability := make(map[string]bool, len(seatIDs))
	if len(seatIDs) == 0 {
		return availability, nil
	}

	reserved, err := s.seats.GetReservedSeatIDs(ctx, scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}

	for _, seatID := range seatIDs {
		availability[seatID] = !reserved[seatID]
	}

	return availability, nil
}

// ValidateForBooking checks every seat and reports all violations at once. On success it
// returns the placement of each seat.
func (s *SeatMapService) ValidateForBooking(
	ctx context.Context,
	scheduleID string,
	seatIDs []string) (map[string]domain.SeatPlacement, error) {

	_, event, err := s.seatedEvent(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if len(seatIDs) == 0 {
		return nil, domain.BadRequest("at least one seat is required")
	}

	placements, err := s.seats.GetSeatPlacements(ctx, seatIDs)
	if err != nil {
		return nil, err
	}

	reserved, err := s.seats.GetReservedSeatIDs(ctx, scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}

	var report domain.SeatValidationError
	seen := make(map[string]bool, len(seatIDs))

	for _, seatID := range seatIDs {
		if seen[seatID] {
			continue
		}
		seen[seatID] = true

		placement, ok := placements[seatID]
		switch {
		case !ok:
			report.Missing = append(report.Missing, seatID)
		case placement.LocationID != event.LocationID:
			report.OutsideLocation = append(report.OutsideLocation, seatID)
		case reserved[seatID]:
			report.Unavailable = append(report.Unavailable, seatID)
		}
	}

	if report.HasViolations() {
		s.logger.Warn("seat selection rejected", "schedule_id", scheduleID, "violations", report.Error())
		return nil, &report
	}

	return placements, nil
}
