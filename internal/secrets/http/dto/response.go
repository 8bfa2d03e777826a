package dto

import (
	"net/url"
	"time"

	secretsDomain "github.com/allisson/onetime/internal/secrets/domain"
)

// CreateSecretResponse carries the handle of a newly stored secret. Neither the
// plaintext nor the password is echoed back.
type CreateSecretResponse struct {
	ID        string    `json:"id"`
	URL       string    `json:"url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RevealSecretResponse carries the plaintext of a consumed secret.
// SECURITY: only ever sent once per secret and must be transmitted over HTTPS in production.
type RevealSecretResponse struct {
	ID            string `json:"id"`
	SecretContent string `json:"secret_content"`
}

// MapStoredSecretToCreateResponse converts stored secret metadata to an API response.
// When publicBaseURL is not empty a share link is built from it.
func MapStoredSecretToCreateResponse(
	secret *secretsDomain.StoredSecret,
	publicBaseURL string,
) CreateSecretResponse {
	response := CreateSecretResponse{
		ID:        secret.ID.String(),
		CreatedAt: secret.CreatedAt,
		ExpiresAt: secret.ExpiresAt(),
	}

	if publicBaseURL != "" {
		if link, err := url.JoinPath(publicBaseURL, "v1", "secrets", secret.ID.String()); err == nil {
			response.URL = link
		}
	}

	return response
}

// MapSecretToRevealResponse converts a revealed secret to an API response.
// The caller must zero secret.Plaintext after mapping using cryptoDomain.Zero.
func MapSecretToRevealResponse(secret *secretsDomain.Secret) RevealSecretResponse {
	return RevealSecretResponse{
		ID:            secret.ID.String(),
		SecretContent: string(secret.Plaintext),
	}
}
