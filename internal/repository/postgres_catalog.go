package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
	"github.com/shopspring/decimal"
)

type PostgresCatalogRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCatalogRepository(db *pgxpool.Pool) *PostgresCatalogRepository {
	return &PostgresCatalogRepository{
		db: db,
	}
}

const eventColumns = `
	id, name_primary, name_secondary, is_active, end_at, have_seats,
	original_price, discounted_price, location_id`

func scanEvent(row pgx.Row) (*domain.Event, error) {
	var (
		event      domain.Event
		secondary  *string
		endAt      *time.Time
		discounted decimal.NullDecimal
	)

	err := row.Scan(
		&event.ID,
		&event.Name.Primary,
		&secondary,
		&event.Active,
		&endAt,
		&event.HaveSeats,
		&event.OriginalPrice,
		&discounted,
		&event.LocationID,
	)
	if err != nil {
		return nil, err
	}

	event.Name.Secondary = secondary
	event.DiscountedPrice = decimalPtr(discounted)
	if endAt != nil {
		event.EndAt = *endAt
	}

	return &event, nil
}

func (p *PostgresCatalogRepository) GetEvent(ctx context.Context, id string) (*domain.Event, error) {
	query := `SELECT` + eventColumns + ` FROM events WHERE id = $1`

	event, err := scanEvent(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "event %s not found", id)
	}

	return event, nil
}

func (p *PostgresCatalogRepository) GetEvents(ctx context.Context, ids []string) (map[string]*domain.Event, error) {
	events := make(map[string]*domain.Event, len(ids))
	if len(ids) == 0 {
		return events, nil
	}

	query := `SELECT` + eventColumns + ` FROM events WHERE id = ANY($1)`

	rows, err := conn(ctx, p.db).Query(ctx, query, ids)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}

		events[event.ID] = event
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

func (p *PostgresCatalogRepository) GetSchedule(ctx context.Context, id string) (*domain.Schedule, error) {
	query := `SELECT id, event_id, start_at FROM schedules WHERE id = $1`

	var schedule domain.Schedule

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(&schedule.ID, &schedule.EventID, &schedule.StartAt)
	if err != nil {
		return nil, notFoundOr(err, "schedule %s not found", id)
	}

	return &schedule, nil
}

func (p *PostgresCatalogRepository) GetPaymentMethod(ctx context.Context, id string) (*domain.PaymentMethod, error) {
	query := `SELECT id, name_primary, name_secondary, is_active FROM payment_methods WHERE id = $1`

	var (
		method    domain.PaymentMethod
		secondary *string
	)

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(&method.ID, &method.Name.Primary, &secondary, &method.Active)
	if err != nil {
		return nil, notFoundOr(err, "payment method %s not found", id)
	}

	method.Name.Secondary = secondary

	return &method, nil
}
