package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

type PostgresCartRepository struct {
	db *pgxpool.Pool
}

func NewPostgresCartRepository(db *pgxpool.Pool) *PostgresCartRepository {
	return &PostgresCartRepository{
		db: db,
	}
}

const cartColumns = `id, user_id, status, total_amount, discount_amount, checked_out_at, created_at, updated_at`

func (p *PostgresCartRepository) GetActiveByUser(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE user_id = $1 AND status = 'ACTIVE'`

	return p.getCart(ctx, query, userID)
}

func (p *PostgresCartRepository) GetByID(ctx context.Context, id string) (*domain.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE id = $1`

	return p.getCart(ctx, query, id)
}

func (p *PostgresCartRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Cart, error) {
	query := `SELECT ` + cartColumns + ` FROM carts WHERE id = $1 FOR UPDATE`

	return p.getCart(ctx, query, id)
}

func (p *PostgresCartRepository) getCart(ctx context.Context, query string, arg string) (*domain.Cart, error) {
	var cart domain.Cart

	err := conn(ctx, p.db).QueryRow(ctx, query, arg).Scan(
		&cart.ID,
		&cart.UserID,
		&cart.Status,
		&cart.TotalAmount,
		&cart.DiscountAmount,
		&cart.CheckedOutAt,
		&cart.CreatedAt,
		&cart.UpdatedAt,
	)
	if err != nil {
		return nil, notFoundOr(err, "cart not found")
	}

	items, err := p.getItems(ctx, cart.ID)
	if err != nil {
		return nil, err
	}

	cart.Items = items

	return &cart, nil
}

func (p *PostgresCartRepository) getItems(ctx context.Context, cartID string) ([]domain.CartItem, error) {
	query := `
		SELECT id, cart_id, event_id, quantity, booking_id
		FROM cart_items
		WHERE cart_id = $1
		ORDER BY created_at, id
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, cartID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]domain.CartItem, 0)

	for rows.Next() {
		var item domain.CartItem

		err = rows.Scan(&item.ID, &item.CartID, &item.EventID, &item.Quantity, &item.BookingID)
		if err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// Create inserts an ACTIVE cart. When the user already has one, nothing is written and
// ErrActiveCartExists is returned without aborting the surrounding transaction.
func (p *PostgresCartRepository) Create(ctx context.Context, cart *domain.Cart) error {
	query := `
		INSERT INTO carts (id, user_id, status, total_amount, discount_amount)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) WHERE status = 'ACTIVE' DO NOTHING
		RETURNING created_at, updated_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		cart.ID,
		cart.UserID,
		cart.Status,
		cart.TotalAmount,
		cart.DiscountAmount,
	).Scan(&cart.CreatedAt, &cart.UpdatedAt)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.ErrActiveCartExists
		}

		return err
	}

	return nil
}

func (p *PostgresCartRepository) UpdateTotals(ctx context.Context, cart *domain.Cart) error {
	query := `
		UPDATE carts
		SET total_amount = $1, discount_amount = $2, updated_at = NOW()
		WHERE id = $3
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, cart.TotalAmount, cart.DiscountAmount, cart.ID)
	return err
}

func (p *PostgresCartRepository) AddItem(ctx context.Context, item *domain.CartItem) error {
	query := `
		INSERT INTO cart_items (id, cart_id, event_id, quantity)
		VALUES ($1, $2, $3, $4)
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, item.ID, item.CartID, item.EventID, item.Quantity)
	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.Conflict("event %s is already in the cart", item.EventID)
		}

		return err
	}

	return nil
}

func (p *PostgresCartRepository) UpdateItemQuantity(ctx context.Context, itemID string, quantity int) error {
	query := `UPDATE cart_items SET quantity = $1 WHERE id = $2`

	tag, err := conn(ctx, p.db).Exec(ctx, query, quantity, itemID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFound("cart item %s not found", itemID)
	}

	return nil
}

func (p *PostgresCartRepository) DeleteItem(ctx context.Context, cartID, itemID string) error {
	query := `DELETE FROM cart_items WHERE cart_id = $1 AND id = $2`

	_, err := conn(ctx, p.db).Exec(ctx, query, cartID, itemID)
	return err
}

func (p *PostgresCartRepository) LinkItemToBooking(ctx context.Context, itemID, bookingID string) error {
	query := `UPDATE cart_items SET booking_id = $1 WHERE id = $2`

	_, err := conn(ctx, p.db).Exec(ctx, query, bookingID, itemID)
	return err
}

func (p *PostgresCartRepository) MarkCheckedOut(ctx context.Context, cartID string, at time.Time) error {
	query := `
		UPDATE carts
		SET status = 'CHECKED_OUT', checked_out_at = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'ACTIVE'
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, at, cartID)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrEditConflict
	}

	return nil
}
