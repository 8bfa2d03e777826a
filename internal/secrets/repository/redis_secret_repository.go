package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// DefaultRedisKeyPrefix namespaces every key written by RedisSecretRepository.
const DefaultRedisKeyPrefix = "onetime:"

// RedisSecretRepository stores each secret as two keys, ciphertext and nonce, sharing one TTL.
//
// Key layout: <prefix>{<uuid>}:ciphertext and <prefix>{<uuid>}:nonce. The braces are a
// cluster hash tag so both keys always live in the same slot and can share a transaction.
type RedisSecretRepository struct {
	client redis.UniversalClient
	prefix string
}

// NewRedisSecretRepository creates a repository on top of client. An empty prefix
// falls back to DefaultRedisKeyPrefix.
func NewRedisSecretRepository(client redis.UniversalClient, prefix string) *RedisSecretRepository {
	if prefix == "" {
		prefix = DefaultRedisKeyPrefix
	}
	return &RedisSecretRepository{
		client: client,
		prefix: prefix,
	}
}

func (r *RedisSecretRepository) ciphertextKey(id uuid.UUID) string {
	return r.prefix + "{" + id.String() + "}:ciphertext"
}

func (r *RedisSecretRepository) nonceKey(id uuid.UUID) string {
	return r.prefix + "{" + id.String() + "}:nonce"
}

// Put writes nonce and ciphertext in one MULTI/EXEC with EX set to secret.TTL.
//
// Both keys are watched and checked for existence first; an identifier that is already
// taken, or that changes while the transaction is prepared, yields ErrSecretConflict.
// The nonce is written before the ciphertext so a reader never sees a ciphertext
// without its nonce.
func (r *RedisSecretRepository) Put(ctx context.Context, secret *secretsDomain.StoredSecret) error {
	cKey := r.ciphertextKey(secret.ID)
	nKey := r.nonceKey(secret.ID)

	txf := func(tx *redis.Tx) error {
		n, err := tx.Exists(ctx, cKey, nKey).Result()
		if err != nil {
			return err
		}
		if n > 0 {
			return secretsDomain.ErrSecretConflict
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, nKey, secret.Nonce, secret.TTL)
			pipe.Set(ctx, cKey, secret.Ciphertext, secret.TTL)
			return nil
		})
		return err
	}

	err := r.client.Watch(ctx, txf, cKey, nKey)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, secretsDomain.ErrSecretConflict):
		return err
	case errors.Is(err, redis.TxFailedErr):
		return secretsDomain.ErrSecretConflict
	default:
		return unavailable(err)
	}
}

// TakeAndInvalidate runs GETDEL on the ciphertext and the nonce inside one MULTI/EXEC.
//
// GETDEL is atomic on its own, so of several concurrent callers only one can observe the
// ciphertext. The transaction guarantees that caller also receives the nonce.
func (r *RedisSecretRepository) TakeAndInvalidate(
	ctx context.Context,
	id uuid.UUID,
) (*secretsDomain.StoredSecret, error) {
	var ciphertextCmd, nonceCmd *redis.StringCmd

	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		ciphertextCmd = pipe.GetDel(ctx, r.ciphertextKey(id))
		nonceCmd = pipe.GetDel(ctx, r.nonceKey(id))
		return nil
	})
	// Exec reports a missing key as redis.Nil, which is not a transport failure
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, unavailable(err)
	}

	ciphertext, err := ciphertextCmd.Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, unavailable(err)
	}

	nonce, err := nonceCmd.Bytes()
	if err != nil {
		// Ciphertext without nonce cannot be opened, and it is already gone
		if errors.Is(err, redis.Nil) {
			return nil, secretsDomain.ErrSecretNotFound
		}
		return nil, unavailable(err)
	}

	return &secretsDomain.StoredSecret{
		ID:         id,
		Ciphertext: ciphertext,
		Nonce:      nonce,
	}, nil
}

// DeleteExpired is a no-op: Redis expires keys natively.
func (r *RedisSecretRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

// Ping checks connectivity with PING.
func (r *RedisSecretRepository) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return unavailable(err)
	}
	return nil
}
