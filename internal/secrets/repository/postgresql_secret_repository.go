package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/allisson/onetime/internal/database"
	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// pqUniqueViolation is the SQLSTATE for unique_violation.
const pqUniqueViolation = "23505"

// PostgreSQLSecretRepository implements one-time secret persistence for PostgreSQL.
//
// TakeAndInvalidate is a single DELETE ... RETURNING, which PostgreSQL executes
// atomically: two concurrent statements for the same id cannot both return the row.
type PostgreSQLSecretRepository struct {
	db  *sql.DB
	now func() time.Time
}

// NewPostgreSQLSecretRepository creates a new PostgreSQL secret repository.
func NewPostgreSQLSecretRepository(db *sql.DB) *PostgreSQLSecretRepository {
	return &PostgreSQLSecretRepository{db: db, now: time.Now}
}

// Put inserts the secret with expires_at = created_at + TTL.
func (p *PostgreSQLSecretRepository) Put(ctx context.Context, secret *secretsDomain.StoredSecret) error {
	querier := database.GetTx(ctx, p.db)

	query := `INSERT INTO one_time_secrets (id, ciphertext, nonce, created_at, expires_at)
			  VALUES ($1, $2, $3, $4, $5)`

	_, err := querier.ExecContext(
		ctx,
		query,
		secret.ID,
		secret.Ciphertext,
		secret.Nonce,
		secret.CreatedAt,
		secret.ExpiresAt(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return secretsDomain.ErrSecretConflict
		}
		return unavailable(err)
	}
	return nil
}

// TakeAndInvalidate deletes the row and returns its content. An expired row is deleted
// as well but reported as not found.
func (p *PostgreSQLSecretRepository) TakeAndInvalidate(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.StoredSecret, error) {
	querier := database.GetTx(ctx, p.db)

	query := `DELETE FROM one_time_secrets WHERE id = $1
			  RETURNING ciphertext, nonce, created_at, expires_at`

	secret := secretsDomain.StoredSecret{ID: id}
	var expiresAt time.Time
	err := querier.QueryRowContext(ctx, query, id).Scan(
		&secret.Ciphertext,
		&secret.Nonce,
		&secret.CreatedAt,
		&expiresAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, unavailable(err)
	}

	secret.TTL = expiresAt.Sub(secret.CreatedAt)
	if secret.IsExpired(p.now()) {
		return nil, secretsDomain.ErrSecretNotFound
	}

	return &secret, nil
}

// DeleteExpired removes every row with expires_at at or before now.
func (p *PostgreSQLSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	querier := database.GetTx(ctx, p.db)

	result, err := querier.ExecContext(ctx, `DELETE FROM one_time_secrets WHERE expires_at <= $1`, now)
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
func (p *PostgreSQLSecretRepository) Ping(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return unavailable(err)
	}
	return nil
}
