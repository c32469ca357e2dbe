package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/venue-checkout/internal/domain"
)

type PostgresTransactionRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTransactionRepository(db *pgxpool.Pool) *PostgresTransactionRepository {
	return &PostgresTransactionRepository{
		db: db,
	}
}

const transactionColumns = `id, user_id, amount, currency, channel, action, status, wallet_id, created_at, updated_at`

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction

	err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Amount,
		&t.Currency,
		&t.Channel,
		&t.Action,
		&t.Status,
		&t.WalletID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (p *PostgresTransactionRepository) Create(ctx context.Context, txn *domain.Transaction) error {
	query := `
		INSERT INTO transactions (
			id,
			user_id,
			amount,
			currency,
			channel,
			action,
			status,
			wallet_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at
	`

	return conn(ctx, p.db).QueryRow(
		ctx,
		query,
		txn.ID,
		txn.UserID,
		txn.Amount,
		txn.Currency,
		txn.Channel,
		txn.Action,
		txn.Status,
		txn.WalletID,
	).Scan(&txn.CreatedAt, &txn.UpdatedAt)
}

func (p *PostgresTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`

	txn, err := scanTransaction(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "transaction %s not found", id)
	}

	return txn, nil
}

func (p *PostgresTransactionRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1 FOR UPDATE`

	txn, err := scanTransaction(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "transaction %s not found", id)
	}

	return txn, nil
}

func (p *PostgresTransactionRepository) UpdateStatus(
	ctx context.Context,
	id string,
	status domain.TransactionStatus) error {

	query := `UPDATE transactions
		SET status = $1, updated_at = NOW()
		WHERE id = $2
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, status, id)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return domain.NotFound("transaction %s not found", id)
	}

	return nil
}

func (p *PostgresTransactionRepository) LockUser(ctx context.Context, userID string) error {
	_, err := conn(ctx, p.db).Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('pending:' || $1))`, userID)
	return err
}

func (p *PostgresTransactionRepository) CountPendingByUser(ctx context.Context, userID string) (int, error) {
	query := `SELECT COUNT(*) FROM transactions WHERE user_id = $1 AND status = 'PENDING'`

	var count int

	err := conn(ctx, p.db).QueryRow(ctx, query, userID).Scan(&count)
	if err != nil {
		return 0, err
	}

	return count, nil
}

type PostgresWalletRepository struct {
	db *pgxpool.Pool
}

func NewPostgresWalletRepository(db *pgxpool.Pool) *PostgresWalletRepository {
	return &PostgresWalletRepository{
		db: db,
	}
}

const walletColumns = `id, user_id, currency, amount, previous_amount, is_active, created_at, updated_at`

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.UserID,
		&w.Currency,
		&w.Amount,
		&w.PreviousAmount,
		&w.Active,
		&w.CreatedAt,
		&w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

func (p *PostgresWalletRepository) GetByUser(ctx context.Context, userID, currency string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND currency = $2`

	wallet, err := scanWallet(conn(ctx, p.db).QueryRow(ctx, query, userID, currency))
	if err != nil {
		return nil, notFoundOr(err, "no %s wallet for the current user", currency)
	}

	return wallet, nil
}

func (p *PostgresWalletRepository) GetByUserForUpdate(
	ctx context.Context,
	userID,
	currency string) (*domain.Wallet, error) {

	query := `SELECT ` + walletColumns + ` FROM wallets WHERE user_id = $1 AND currency = $2 FOR UPDATE`

	wallet, err := scanWallet(conn(ctx, p.db).QueryRow(ctx, query, userID, currency))
	if err != nil {
		return nil, notFoundOr(err, "no %s wallet for the current user", currency)
	}

	return wallet, nil
}

func (p *PostgresWalletRepository) GetByIDForUpdate(ctx context.Context, id string) (*domain.Wallet, error) {
	query := `SELECT ` + walletColumns + ` FROM wallets WHERE id = $1 FOR UPDATE`

	wallet, err := scanWallet(conn(ctx, p.db).QueryRow(ctx, query, id))
	if err != nil {
		return nil, notFoundOr(err, "wallet %s not found", id)
	}

	return wallet, nil
}

func (p *PostgresWalletRepository) Create(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		INSERT INTO wallets (id, user_id, currency, amount, previous_amount, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := conn(ctx, p.db).QueryRow(
		ctx,
		query,
		wallet.ID,
		wallet.UserID,
		wallet.Currency,
		wallet.Amount,
		wallet.PreviousAmount,
		wallet.Active,
	).Scan(&wallet.CreatedAt, &wallet.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err, "") {
			return domain.Conflict("a %s wallet already exists", wallet.Currency)
		}

		return err
	}

	return nil
}

func (p *PostgresWalletRepository) UpdateBalance(ctx context.Context, wallet *domain.Wallet) error {
	query := `
		UPDATE wallets
		SET amount = $1, previous_amount = $2, updated_at = NOW()
		WHERE id = $3 AND amount = $2
		RETURNING updated_at
	`

	err := conn(ctx, p.db).QueryRow(ctx, query, wallet.Amount, wallet.PreviousAmount, wallet.ID).
		Scan(&wallet.UpdatedAt)

	if err != nil {
		if isNoRows(err) {
			return domain.ErrEditConflict
		}

		return err
	}

	return nil
}
