package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

const (
	sessionsPendingUnique = "sessions_pending_unique"
	sessionsCodeUnique    = "sessions_code_key"
)

type PostgresSessionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresSessionRepository(db *pgxpool.Pool) *PostgresSessionRepository {
	return &PostgresSessionRepository{
		db: db,
	}
}

const sessionColumns = `id, user_id, event_id, schedule_id, code, status, created_at, updated_at`

func scanSession(row pgx.Row) (*domain.Session, error) {
	var s domain.Session

	err := row.Scan(&s.ID, &s.UserID, &s.EventID, &s.ScheduleID, &s.Code, &s.Status, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

// Create inserts a session. A concurrent PENDING session for the same user and occurrence
// surfaces as ErrConflict, a duplicate code as ErrSessionCodeTaken.
func (p *PostgresSessionRepository) Create(ctx context.Context, session *domain.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, event_id, schedule_id, code, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		session.ID,
		session.UserID,
		session.EventID,
		session.ScheduleID,
		session.Code,
		session.Status,
	).Scan(&session.CreatedAt, &session.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, sessionsPendingUnique) {
			return domain.Conflict("a pending session already exists for this schedule")
		}

		if isUniqueViolation(err, sessionsCodeUnique) {
			return domain.ErrSessionCodeTaken
		}

		return err
	}

	return nil
}

func (p *PostgresSessionRepository) GetByID(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1`

	session, err := scanSession(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "session %s not found", id)
	}

	return session, nil
}

func (p *PostgresSessionRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Session, error) {
	query := `SELECT ` + sessionColumns + ` FROM sessions WHERE id = $1 FOR UPDATE`

	session, err := scanSession(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "session %s not found", id)
	}

	return session, nil
}

func (p *PostgresSessionRepository) FindPending(
	ctx context.Context,
	userID,
	eventID,
	scheduleID string) (*domain.Session, error) {

	query := `
		SELECT ` + sessionColumns + `
		FROM sessions
		WHERE user_id = $1 AND event_id = $2 AND schedule_id = $3 AND status = 'PENDING'
	`

	session, err := scanSession(conn(ctx, p.db).QueryRow(ctx, query, userID, eventID, scheduleID))
	if err != nil {
		return nil, notFoundOr(err, "no pending session")
	}

	return session, nil
}

func (p *PostgresSessionRepository) UpdateStatus(ctx context.Context, id string, status domain.SessionStatus) error {
	query := `UPDATE sessions SET status = $1, updated_at = NOW() WHERE id = $2`

	tag, err := conn(ctx, p.db).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFound("session %s not found", id)
	}

	return nil
}

func (p *PostgresSessionRepository) GetSeatIDs(ctx context.Context, sessionID string) ([]string, error) {
	query := `SELECT seat_id FROM seat_sessions WHERE session_id = $1 ORDER BY created_at, seat_id`

	rows, err := conn(ctx, p.db).Query(ctx, query, sessionID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (p *PostgresSessionRepository) AddSeat(ctx context.Context, sessionID, seatID string) error {
	query := `
		INSERT INTO seat_sessions (session_id, seat_id)
		VALUES ($1, $2)
		ON CONFLICT (session_id, seat_id) DO NOTHING
	`

	_, err := conn(ctx, p.db).Exec(ctx, query, sessionID, seatID)
	return err
}

func (p *PostgresSessionRepository) RemoveSeat(ctx context.Context, sessionID, seatID string) error {
	query := `DELETE FROM seat_sessions WHERE session_id = $1 AND seat_id = $2`

	_, err := conn(ctx, p.db).Exec(ctx, query, sessionID, seatID)
	return err
}

func (p *PostgresSessionRepository) ClearSeats(ctx context.Context, sessionID string) error {
	query := `DELETE FROM seat_sessions WHERE session_id = $1`

	_, err := conn(ctx, p.db).Exec(ctx, query, sessionID)
	return err
}
