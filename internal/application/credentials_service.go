package application

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// CredentialsService manages per-tenant upstream credentials. Tokens are
// encrypted before they reach the repository and decrypted on the way out.
type CredentialsService struct {
	repo      ports.CredentialRepository
	encryptor ports.Encryptor
	logger    zerolog.Logger
}

// NewCredentialsService creates a new credentials service.
func NewCredentialsService(repo ports.CredentialRepository, encryptor ports.Encryptor, logger zerolog.Logger) *CredentialsService {
	return &CredentialsService{
		repo:      repo,
		encryptor: encryptor,
		logger:    logger,
	}
}

// Save upserts the credential for a canonical domain and forces it active.
// Re-saving identical values leaves the observable state unchanged.
func (s *CredentialsService) Save(ctx context.Context, canonicalDomain, accessToken, scopes string) (*domain.ShopCredential, error) {
	encrypted, err := s.encryptor.Encrypt(accessToken)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt access token: %w", err)
	}

	cred := &domain.ShopCredential{
		Domain:      canonicalDomain,
		AccessToken: encrypted,
		Scopes:      scopes,
		Active:      true,
	}
	if err := s.repo.Upsert(ctx, cred); err != nil {
		return nil, err
	}

	s.logger.Info().
		Str("shop", canonicalDomain).
		Str("scopes", scopes).
		Msg("Credential saved")
	return cred, nil
}

// Get returns the decrypted token for a canonical domain. A missing or
// inactive row yields ("", nil); absence is a normal outcome here.
func (s *CredentialsService) Get(ctx context.Context, canonicalDomain string) (string, error) {
	cred, err := s.repo.Get(ctx, canonicalDomain)
	if err != nil {
		return "", err
	}
	if cred == nil || !cred.Active {
		s.logger.Warn().Str("shop", canonicalDomain).Msg("No active credential found")
		return "", nil
	}

	token, err := s.encryptor.Decrypt(cred.AccessToken)
	if err != nil {
		return "", fmt.Errorf("failed to decrypt access token: %w", err)
	}
	return token, nil
}

// Deactivate revokes the credential for a canonical domain, overwriting the
// token with a timestamped tombstone so a revoked value can never be reused.
// The row is kept for audit. Returns (nil, nil) when no row exists.
func (s *CredentialsService) Deactivate(ctx context.Context, canonicalDomain string) (*domain.ShopCredential, error) {
	cred, err := s.repo.Deactivate(ctx, canonicalDomain, domain.Tombstone(time.Now()))
	if err != nil {
		return nil, err
	}
	if cred == nil {
		s.logger.Warn().Str("shop", canonicalDomain).Msg("Deactivate requested for unknown shop")
		return nil, nil
	}

	s.logger.Info().Str("shop", canonicalDomain).Msg("Credential deactivated")
	return cred, nil
}
