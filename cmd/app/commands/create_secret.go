package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
)

// RunCreateSecret encrypts and stores a one-time secret and prints its identifier.
// When value is empty the content is read from stdio.Reader, with one trailing newline removed.
func RunCreateSecret(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	stdio IOTuple,
	value string,
	password string,
	maxSizeBytes int,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}
	if password == "" {
		return fmt.Errorf("password cannot be empty")
	}

	var plaintext []byte
	if value != "" {
		plaintext = []byte(value)
	} else {
		// Read one byte past the limit so oversized input is detected without buffering it all
		content, err := io.ReadAll(io.LimitReader(stdio.Reader, int64(maxSizeBytes)+1))
		if err != nil {
			return fmt.Errorf("failed to read secret from stdin: %w", err)
		}
		plaintext = trimTrailingNewline(content)
	}
	defer cryptoDomain.Zero(plaintext)

	if len(plaintext) == 0 {
		return fmt.Errorf("secret content cannot be empty")
	}
	if len(plaintext) > maxSizeBytes {
		return fmt.Errorf("secret content must be at most %d bytes", maxSizeBytes)
	}

	stored, err := secretUseCase.Create(ctx, plaintext, password)
	if err != nil {
		return fmt.Errorf("failed to create secret: %w", err)
	}

	if format == "json" {
		if err := writeJSON(stdio.Writer, map[string]interface{}{
			"id":         stored.ID.String(),
			"created_at": stored.CreatedAt.Format(time.RFC3339),
			"expires_at": stored.ExpiresAt().Format(time.RFC3339),
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintln(stdio.Writer, "Secret created successfully!")
		_, _ = fmt.Fprintf(stdio.Writer, "ID: %s\n", stored.ID)
		_, _ = fmt.Fprintf(stdio.Writer, "Expires At: %s\n", stored.ExpiresAt().Format(time.RFC3339))
		_, _ = fmt.Fprintln(stdio.Writer, "\nThe secret can be revealed exactly once.")
	}

	logger.Info("secret created",
		slog.String("id", stored.ID.String()),
		slog.Time("expires_at", stored.ExpiresAt()),
	)

	return nil
}

// trimTrailingNewline removes a single trailing "\n" or "\r\n".
func trimTrailingNewline(b []byte) []byte {
	n := len(b)
	if n > 0 && b[n-1] == '\n' {
		n--
		if n > 0 && b[n-1] == '\r' {
			n--
		}
	}
	return b[:n]
}
