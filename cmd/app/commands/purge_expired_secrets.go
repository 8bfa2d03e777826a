package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
)

// RunPurgeExpiredSecrets deletes secrets whose TTL has elapsed. SQL stores keep expired rows
// until purged; Redis expires keys itself and always reports zero.
func RunPurgeExpiredSecrets(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	writer io.Writer,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	logger.Info("purging expired secrets")

	count, err := secretUseCase.PurgeExpired(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge expired secrets: %w", err)
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]interface{}{"count": count}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "Successfully purged %d expired secret(s)\n", count)
	}

	logger.Info("purge completed", slog.Int64("count", count))

	return nil
}
