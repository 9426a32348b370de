package application

import (
	"context"
	"net/url"
	"regexp"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/infrastructure/cache"
	"storefront-gateway/internal/ports"

	"github.com/rs/zerolog"
)

// versionSuffix matches the backend-domain version token, e.g. the "-v7" in
// "store-v7.myshopify.com". Kept as the observed pattern; no broader rule for
// deriving a public-facing domain is documented upstream.
var versionSuffix = regexp.MustCompile(`-v\d+`)

// DomainResolver maps arbitrary storefront domains to the canonical tenant
// domain under which credentials are stored. It owns the alias cache
// exclusively and only ever reads from the credential repository.
type DomainResolver struct {
	aliases *cache.AliasCache
	repo    ports.CredentialRepository
	logger  zerolog.Logger
}

// NewDomainResolver creates a resolver over the given alias cache.
func NewDomainResolver(aliases *cache.AliasCache, repo ports.CredentialRepository, logger zerolog.Logger) *DomainResolver {
	return &DomainResolver{
		aliases: aliases,
		repo:    repo,
		logger:  logger,
	}
}

// Resolve returns the canonical domain for an input domain. Resolution tries,
// in order: the alias cache, a direct active-credential probe, and the
// version-suffix pattern match over all active canonical domains. An
// unresolvable domain yields domain.ErrDomainNotResolved; that is a normal
// outcome, not a server fault.
func (r *DomainResolver) Resolve(ctx context.Context, inputDomain string) (string, error) {
	if canonical, ok := r.aliases.Lookup(inputDomain); ok {
		return canonical, nil
	}

	// The input may already be a canonical domain.
	cred, err := r.repo.Get(ctx, inputDomain)
	if err != nil {
		return "", err
	}
	if cred != nil && cred.Active {
		r.aliases.StoreIdentity(inputDomain)
		return inputDomain, nil
	}

	canonicals, err := r.repo.ListActiveDomains(ctx)
	if err != nil {
		return "", err
	}
	for _, canonical := range canonicals {
		if publicVariant(canonical) == inputDomain {
			r.logger.Info().
				Str("alias", inputDomain).
				Str("canonical", canonical).
				Msg("Learned domain alias by pattern match")
			r.aliases.Store(inputDomain, canonical)
			r.aliases.StoreIdentity(canonical)
			return canonical, nil
		}
	}

	r.logger.Debug().Str("domain", inputDomain).Msg("No domain mapping found")
	return "", domain.ErrDomainNotResolved
}

// IsKnownOrigin reports whether an Origin header value resolves to a known
// tenant. Any parse or lookup failure denies (fail closed); this gates
// cross-origin access.
func (r *DomainResolver) IsKnownOrigin(ctx context.Context, origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		r.logger.Warn().Str("origin", origin).Err(err).Msg("Rejecting unparseable origin")
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}

	_, err = r.Resolve(ctx, host)
	return err == nil
}

// publicVariant strips the first version-suffix token from a canonical
// domain, yielding the public-facing domain candidate.
func publicVariant(canonical string) string {
	loc := versionSuffix.FindStringIndex(canonical)
	if loc == nil {
		return canonical
	}
	return canonical[:loc[0]] + canonical[loc[1]:]
}
