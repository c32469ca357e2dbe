package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresSeatMapRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSeatMapRepository(db *pgxpool.Pool) *PostgresSeatMapRepository {
	return &PostgresSeatMapRepository{
		db: db,
	}
}

func (p *PostgresSeatMapRepository) GetLayout(ctx context.Context, locationID string) (*domain.VenueLayout, error) {
	layout := domain.VenueLayout{LocationID: locationID}
	db := conn(ctx, p.db)

	query := `
		SELECT lz.id, lz.location_id, lz.priority, z.id, z.zone_type, z.name_primary, z.name_secondary
		FROM location_zones lz
		JOIN zones z ON z.id = lz.zone_id
		WHERE lz.location_id = $1
		ORDER BY lz.priority, lz.id
	`

	rows, err := db.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			zone      domain.LocationZone
			primary   string
			secondary *string
		)

		err = rows.Scan(&zone.ID, &zone.LocationID, &zone.Priority, &zone.Zone.ID, &zone.Zone.Type, &primary, &secondary)
		if err != nil {
			return nil, err
		}

		zone.Zone.Name = bilingual(primary, secondary)
		layout.Zones = append(layout.Zones, zone)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT s.id, s.location_zone_id, s.section_position
		FROM sections s
		JOIN location_zones lz ON lz.id = s.location_zone_id
		WHERE lz.location_id = $1
	`

	sectionRows, err := db.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer sectionRows.Close()

	for sectionRows.Next() {
		var section domain.Section

		err = sectionRows.Scan(&section.ID, &section.LocationZoneID, &section.Position)
		if err != nil {
			return nil, err
		}

		layout.Sections = append(layout.Sections, section)
	}

	if err = sectionRows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT r.id, r.section_id, r.row_number, r.row_order
		FROM seat_rows r
		JOIN sections s ON s.id = r.section_id
		JOIN location_zones lz ON lz.id = s.location_zone_id
		WHERE lz.location_id = $1
	`

	rowRows, err := db.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer rowRows.Close()

	for rowRows.Next() {
		var row domain.Row

		err = rowRows.Scan(&row.ID, &row.SectionID, &row.RowNumber, &row.Order)
		if err != nil {
			return nil, err
		}

		layout.Rows = append(layout.Rows, row)
	}

	if err = rowRows.Err(); err != nil {
		return nil, err
	}

	query = `
		SELECT se.id, se.row_id, se.seat_number, se.seat_label
		FROM seats se
		JOIN seat_rows r ON r.id = se.row_id
		JOIN sections s ON s.id = r.section_id
		JOIN location_zones lz ON lz.id = s.location_zone_id
		WHERE lz.location_id = $1
	`

	seatRows, err := db.Query(ctx, query, locationID)
	if err != nil {
		return nil, err
	}
	defer seatRows.Close()

	for seatRows.Next() {
		var seat domain.Seat

		err = seatRows.Scan(&seat.ID, &seat.RowID, &seat.SeatNumber, &seat.SeatLabel)
		if err != nil {
			return nil, err
		}

		layout.Seats = append(layout.Seats, seat)
	}

	if err = seatRows.Err(); err != nil {
		return nil, err
	}

	return &layout, nil
}

func (p *PostgresSeatMapRepository) GetZonePricing(
	ctx context.Context,
	eventID,
	scheduleID string) ([]domain.ZonePricing, error) {

	query := `
		SELECT location_zone_id, event_id, schedule_id, original_price, discounted_price
		FROM zone_pricing
		WHERE event_id = $1 AND schedule_id = $2
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, eventID, scheduleID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pricing := make([]domain.ZonePricing, 0)

	for rows.Next() {
		var (
			zp         domain.ZonePricing
			discounted decimal.NullDecimal
		)

		err = rows.Scan(&zp.LocationZoneID, &zp.EventID, &zp.ScheduleID, &zp.OriginalPrice, &discounted)
		if err != nil {
			return nil, err
		}

		zp.DiscountedPrice = decimalPtr(discounted)
		pricing = append(pricing, zp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return pricing, nil
}

func (p *PostgresSeatMapRepository) GetSeatPlacements(
	ctx context.Context,
	seatIDs []string) (map[string]domain.SeatPlacement, error) {

	placements := make(map[string]domain.SeatPlacement, len(seatIDs))
	if len(seatIDs) == 0 {
		return placements, nil
	}

	query := `
		SELECT se.id, lz.location_id, lz.id, z.zone_type, s.section_position, r.row_number,
			se.seat_number, se.seat_label
		FROM seats se
		JOIN seat_rows r ON r.id = se.row_id
		JOIN sections s ON s.id = r.section_id
		JOIN location_zones lz ON lz.id = s.location_zone_id
		JOIN zones z ON z.id = lz.zone_id
		WHERE se.id = ANY($1)
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sp domain.SeatPlacement

		err = rows.Scan(
			&sp.SeatID,
			&sp.LocationID,
			&sp.LocationZoneID,
			&sp.ZoneType,
			&sp.SectionPosition,
			&sp.RowNumber,
			&sp.SeatNumber,
			&sp.SeatLabel,
		)
		if err != nil {
			return nil, err
		}

		placements[sp.SeatID] = sp
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return placements, nil
}

func (p *PostgresSeatMapRepository) GetReservedSeatIDs(
	ctx context.Context,
	scheduleID string,
	seatIDs []string) (map[string]bool, error) {

	query := `
		SELECT seat_id
		FROM booking_seats
		WHERE schedule_id = $1 AND is_reserved
			AND (cardinality($2::text[]) = 0 OR seat_id = ANY($2))
	`

	if seatIDs == nil {
		seatIDs = []string{}
	}

	rows, err := conn(ctx, p.db).Query(ctx, query, scheduleID, seatIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reserved := make(map[string]bool)

	for rows.Next() {
		var seatID string

		if err = rows.Scan(&seatID); err != nil {
			return nil, err
		}

		reserved[seatID] = true
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return reserved, nil
}
