package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	cryptoDomain "github.com/allisson/onetime/internal/crypto/domain"
	apperrors "github.com/allisson/onetime/internal/errors"
	secretsUseCase "github.com/allisson/onetime/internal/secrets/usecase"
)

// errSecretNotLocated is the single error reported for every not-found class failure.
var errSecretNotLocated = errors.New("the secret you are looking for could not be located")

// RunRevealSecret consumes a secret and prints its plaintext. The secret is destroyed
// whether or not the password is correct.
func RunRevealSecret(
	ctx context.Context,
	secretUseCase secretsUseCase.SecretUseCase,
	logger *slog.Logger,
	writer io.Writer,
	id string,
	password string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	secretID, err := uuid.Parse(id)
	if err != nil {
		return errSecretNotLocated
	}
	if password == "" {
		return errSecretNotLocated
	}

	secret, err := secretUseCase.Reveal(ctx, secretID, password)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			logger.Info("secret reveal failed", slog.String("id", secretID.String()))
			return errSecretNotLocated
		}
		return fmt.Errorf("failed to reveal secret: %w", err)
	}
	defer cryptoDomain.Zero(secret.Plaintext)

	logger.Info("secret revealed", slog.String("id", secretID.String()))

	if format == "json" {
		return writeJSON(writer, map[string]interface{}{
			"id":             secret.ID.String(),
			"secret_content": string(secret.Plaintext),
		})
	}

	if _, err := writer.Write(secret.Plaintext); err != nil {
		return fmt.Errorf("failed to write secret: %w", err)
	}
	_, err = fmt.Fprintln(writer)
	return err
}
