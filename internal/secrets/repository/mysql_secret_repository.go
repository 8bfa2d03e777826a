package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"

	"github.com/allisson/onetime/internal/database"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

// MySQLSecretRepository implements one-time secret persistence for MySQL.
//
// MySQL has no DELETE ... RETURNING, so TakeAndInvalidate locks the row with
// SELECT ... FOR UPDATE and deletes it in the same transaction. The DELETE must affect
// exactly one row for the take to count. The connection string needs parseTime=true.
type MySQLSecretRepository struct {
	db        *sql.DB
	txManager database.TxManager
	now       func() time.Time
}

// NewMySQLSecretRepository creates a new MySQL secret repository.
func NewMySQLSecretRepository(db *sql.DB, txManager database.TxManager) *MySQLSecretRepository {
	return &MySQLSecretRepository{db: db, txManager: txManager, now: time.Now}
}

// Put inserts the secret with expires_at = created_at + TTL.
func (m *MySQLSecretRepository) Put(ctx context.Context, secret *secretsDomain.StoredSecret) error {
	querier := database.GetTx(ctx, m.db)

	id, err := secret.ID.MarshalBinary()
	if err != nil {
		return err
	}

	query := `INSERT INTO one_time_secrets (id, ciphertext, nonce, created_at, expires_at)
			  VALUES (?, ?, ?, ?, ?)`

	_, err = querier.ExecContext(
		ctx,
		query,
		id,
		secret.Ciphertext,
		secret.Nonce,
		secret.CreatedAt,
		secret.ExpiresAt(),
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return secretsDomain.ErrSecretConflict
		}
		return unavailable(err)
	}
	return nil
}

// TakeAndInvalidate locks, reads and deletes the row in one transaction. An expired row
// is deleted as well but reported as not found.
func (m *MySQLSecretRepository) TakeAndInvalidate(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.StoredSecret, error) {
	binaryID, err := id.MarshalBinary()
	if err != nil {
		return nil, err
	}

	secret := secretsDomain.StoredSecret{ID: id}
	var expiresAt time.Time

	err = m.txManager.WithTx(ctx, func(txCtx context.Context) error {
		querier := database.GetTx(txCtx, m.db)

		query := `SELECT ciphertext, nonce, created_at, expires_at
				  FROM one_time_secrets WHERE id = ? FOR UPDATE`

		if err := querier.QueryRowContext(txCtx, query, binaryID).Scan(
			&secret.Ciphertext,
			&secret.Nonce,
			&secret.CreatedAt,
			&expiresAt,
		); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return secretsDomain.ErrSecretNotFound
			}
			return err
		}

		result, err := querier.ExecContext(txCtx, `DELETE FROM one_time_secrets WHERE id = ?`, binaryID)
		if err != nil {
			return err
		}
		deleted, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if deleted != 1 {
			return secretsDomain.ErrSecretNotFound
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, secretsDomain.ErrSecretNotFound) {
			return nil, err
		}
		return nil, unavailable(err)
	}

	secret.TTL = expiresAt.Sub(secret.CreatedAt)
	if secret.IsExpired(m.now()) {
		return nil, secretsDomain.ErrSecretNotFound
	}

	return &secret, nil
}

// DeleteExpired removes every row with expires_at at or before now.
func (m *MySQLSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, m.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM one_time_secrets WHERE expires_at <= ?`, now)
	if err != nil {
		return 0, unavailable(err)
	}

	count, err := result.RowsAffected()
	if err != nil {
		return 0, unavailable(err)
	}
	return count, nil
}

// Ping checks database connectivity.
func (m *MySQLSecretRepository) Ping(ctx context.Context) error {
	if err := m.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}
