package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

const bookingSeatsReservedUnique = "booking_seats_reserved_unique"

type PostgresBookingRepository struct {
	db *pgxpool.Pool
}

func NewPostgresBookingRepository(db *pgxpool.Pool) *PostgresBookingRepository {
	return &PostgresBookingRepository{
		db: db,
	}
}

const bookingColumns = `
	id, booking_number, user_id, event_id, schedule_id, quantity, used_quantity, unit_price,
	total_price, status, transaction_id, payment_method_id, created_at, updated_at`

func scanBooking(row pgx.Row) (*domain.Booking, error) {
	var b domain.Booking

	err := row.Scan(
		&b.ID,
		&b.BookingNumber,
		&b.UserID,
		&b.EventID,
		&b.ScheduleID,
		&b.Quantity,
		&b.UsedQuantity,
		&b.UnitPrice,
		&b.TotalPrice,
		&b.Status,
		&b.TransactionID,
		&b.PaymentMethodID,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &b, nil
}

func (p *PostgresBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (
			id,
			booking_number,
			user_id,
			event_id,
			schedule_id,
			quantity,
			used_quantity,
			unit_price,
			total_price,
			status,
			transaction_id,
			payment_method_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING created_at, updated_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		booking.ID,
		booking.BookingNumber,
		booking.UserID,
		booking.EventID,
		booking.ScheduleID,
		booking.Quantity,
		booking.UsedQuantity,
		booking.UnitPrice,
		booking.TotalPrice,
		booking.Status,
		booking.TransactionID,
		booking.PaymentMethodID,
	).Scan(&booking.CreatedAt, &booking.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "bookings_booking_number_key") {
			return domain.Conflict("booking number %s is already taken", booking.BookingNumber)
		}

		return err
	}

	return nil
}

func (p *PostgresBookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1`

	return p.getBooking(ctx, query, id)
}

func (p *PostgresBookingRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	query := `SELECT` + bookingColumns + ` FROM bookings WHERE id = $1 FOR UPDATE`

	return p.getBooking(ctx, query, id)
}

func (p *PostgresBookingRepository) getBooking(ctx context.Context, query, id string) (*domain.Booking, error) {
	booking, err := scanBooking(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "booking %s not found", id)
	}

	seats, err := p.retrieveBookingSeats(ctx, booking.ID)
	if err != nil {
		return nil, err
	}

	booking.Seats = seats

	return booking, nil
}

func (p *PostgresBookingRepository) retrieveBookingSeats(
	ctx context.Context,
	bookingID string) ([]domain.BookingSeat, error) {

	query := `
		SELECT booking_id, seat_id, schedule_id, is_reserved, zone_type, section_position,
			row_number, seat_number, seat_label
		FROM booking_seats
		WHERE booking_id = $1
		ORDER BY id
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.BookingSeat, 0)

	for rows.Next() {
		var seat domain.BookingSeat

		err := rows.Scan(
			&seat.BookingID,
			&seat.SeatID,
			&seat.ScheduleID,
			&seat.IsReserved,
			&seat.Snapshot.ZoneType,
			&seat.Snapshot.SectionPosition,
			&seat.Snapshot.RowNumber,
			&seat.Snapshot.SeatNumber,
			&seat.Snapshot.SeatLabel,
		)
		if err != nil {
			return nil, err
		}

		seat.Snapshot.SeatID = seat.SeatID
		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}

func (p *PostgresBookingRepository) ListByUser(
	ctx context.Context,
	userID string,
	pagination domain.Pagination) ([]domain.Booking, *domain.Metadata, error) {

	query := `
		SELECT COUNT(*) OVER(),` + bookingColumns + `
		FROM bookings
		WHERE user_id = $1
		ORDER BY created_at DESC, booking_number DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	bookings := make([]domain.Booking, 0)
	totalRecords := 0

	for rows.Next() {
		var b domain.Booking

		err := rows.Scan(
			&totalRecords,
			&b.ID,
			&b.BookingNumber,
			&b.UserID,
			&b.EventID,
			&b.ScheduleID,
			&b.Quantity,
			&b.UsedQuantity,
			&b.UnitPrice,
			&b.TotalPrice,
			&b.Status,
			&b.TransactionID,
			&b.PaymentMethodID,
			&b.CreatedAt,
			&b.UpdatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		bookings = append(bookings, b)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	metadata := domain.NewMetadata(totalRecords, pagination.Page, pagination.PageSize)

	return bookings, metadata, nil
}

func (p *PostgresBookingRepository) UpdateProgress(ctx context.Context, booking *domain.Booking) error {
	query := `
		UPDATE bookings
		SET status = $1, used_quantity = $2, updated_at = NOW()
		WHERE id = $3
		RETURNING updated_at
	`

	err := conn(ctx, p.db).QueryRow(ctx, query, booking.Status, booking.UsedQuantity, booking.ID).
		Scan(&booking.UpdatedAt)

	return notFoundOr(err, "booking %s not found", booking.ID)
}

func (p *PostgresBookingRepository) LockBookingNumberPrefix(ctx context.Context, prefix string) error {
	_, err := conn(ctx, p.db).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, prefix)
	return err
}

func (p *PostgresBookingRepository) MaxBookingSequence(ctx context.Context, prefix string) (int, error) {
	query := `
		SELECT COALESCE(MAX(CAST(substring(booking_number FROM length($1) + 1) AS INTEGER)), 0)
		FROM bookings
		WHERE booking_number LIKE $1 || '%'
	`

	var seq int

	err := conn(ctx, p.db).QueryRow(ctx, query, prefix).Scan(&seq)
	if err != nil {
		return 0, err
	}

	return seq, nil
}

func (p *PostgresBookingRepository) ReserveSeats(ctx context.Context, seats []domain.BookingSeat) error {
	if len(seats) == 0 {
		return nil
	}

	rows := make([][]any, 0, len(seats))
	for _, seat := range seats {
		rows = append(rows, []any{
			seat.BookingID,
			seat.SeatID,
			seat.ScheduleID,
			seat.IsReserved,
			seat.Snapshot.ZoneType,
			string(seat.Snapshot.SectionPosition),
			seat.Snapshot.RowNumber,
			seat.Snapshot.SeatNumber,
			seat.Snapshot.SeatLabel,
		})
	}

	_, err := conn(ctx, p.db).CopyFrom(
		ctx,
		pgx.Identifier{"booking_seats"},
		[]string{
			"booking_id",
			"seat_id",
			"schedule_id",
			"is_reserved",
			"zone_type",
			"section_position",
			"row_number",
			"seat_number",
			"seat_label",
		},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err, bookingSeatsReservedUnique) {
			return domain.ErrSeatAlreadyReserved
		}

		return err
	}

	return nil
}
