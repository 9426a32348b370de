package ports

import (
	"context"

	"storefront-gateway/internal/domain"
)

// CredentialRepository defines persistence for per-tenant credentials.
// Lookups return (nil, nil) when no row exists; absence is not an error.
type CredentialRepository interface {
	// Upsert inserts or replaces the credential row for its domain.
	Upsert(ctx context.Context, cred *domain.ShopCredential) error

	// Get returns the row for a canonical domain, active or not.
	Get(ctx context.Context, canonicalDomain string) (*domain.ShopCredential, error)

	// ListActiveDomains returns every canonical domain with an active row.
	ListActiveDomains(ctx context.Context) ([]string, error)

	// Deactivate atomically marks the row inactive and replaces its token
	// with the given tombstone. Returns (nil, nil) when no row exists.
	Deactivate(ctx context.Context, canonicalDomain, tombstone string) (*domain.ShopCredential, error)
}

// Encryptor encrypts access tokens before they reach the repository.
type Encryptor interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// StateStore holds short-lived OAuth state nonces.
type StateStore interface {
	Put(ctx context.Context, state string, shop string) error
	// Take returns the shop bound to a state and consumes it. Returns
	// ("", nil) for an unknown or expired state.
	Take(ctx context.Context, state string) (string, error)
}
