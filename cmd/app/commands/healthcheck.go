package commands

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"
)

const healthcheckTimeout = 5 * time.Second

// Pinger is satisfied by every secret store.
type Pinger interface {
	Ping(ctx context.Context) error
}

// RunHealthcheck pings the secret store and returns an error when it does not answer,
// so the process exits non-zero.
func RunHealthcheck(
	ctx context.Context,
	store Pinger,
	logger *slog.Logger,
	writer io.Writer,
	storeDriver string,
	format string,
) error {
	if err := validateFormat(format); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, healthcheckTimeout)
	defer cancel()

	status := "ok"
	pingErr := store.Ping(ctx)
	if pingErr != nil {
		status = "error"
		logger.Error("healthcheck failed", slog.String("store_driver", storeDriver), slog.Any("error", pingErr))
	}

	if format == "json" {
		if err := writeJSON(writer, map[string]interface{}{
			"store_driver": storeDriver,
			"status":       status,
		}); err != nil {
			return err
		}
	} else {
		_, _ = fmt.Fprintf(writer, "store (%s): %s\n", storeDriver, status)
	}

	if pingErr != nil {
		return fmt.Errorf("store %s is not reachable: %w", storeDriver, pingErr)
	}
	return nil
}
