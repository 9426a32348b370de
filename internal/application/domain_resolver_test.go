package application

import (
	"context"
	"testing"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/infrastructure/cache"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestResolver(repo *fakeCredentialRepo) *DomainResolver {
	return NewDomainResolver(cache.NewAliasCache(), repo, zerolog.Nop())
}

func TestResolveCanonicalDomainDirectly(t *testing.T) {
	repo := newFakeCredentialRepo()
	repo.rows["shop-v3.myshopify.com"] = &domain.ShopCredential{
		Domain: "shop-v3.myshopify.com",
		Active: true,
	}
	resolver := newTestResolver(repo)

	canonical, err := resolver.Resolve(context.Background(), "shop-v3.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "shop-v3.myshopify.com", canonical)

	// Second resolution hits the cache, not the repository.
	gets := repo.gets
	canonical, err = resolver.Resolve(context.Background(), "shop-v3.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "shop-v3.myshopify.com", canonical)
	require.Equal(t, gets, repo.gets)
}

func TestResolvePublicVariantByPattern(t *testing.T) {
	repo := newFakeCredentialRepo()
	repo.rows["store-v7.myshopify.com"] = &domain.ShopCredential{
		Domain: "store-v7.myshopify.com",
		Active: true,
	}
	resolver := newTestResolver(repo)

	canonical, err := resolver.Resolve(context.Background(), "store.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, "store-v7.myshopify.com", canonical)

	// Both directions are cached: re-resolving either form does not scan again.
	lists := repo.listCalls
	_, err = resolver.Resolve(context.Background(), "store.myshopify.com")
	require.NoError(t, err)
	_, err = resolver.Resolve(context.Background(), "store-v7.myshopify.com")
	require.NoError(t, err)
	require.Equal(t, lists, repo.listCalls)
}

func TestResolveInactiveCredentialDoesNotMatch(t *testing.T) {
	repo := newFakeCredentialRepo()
	repo.rows["closed-v1.myshopify.com"] = &domain.ShopCredential{
		Domain: "closed-v1.myshopify.com",
		Active: false,
	}
	resolver := newTestResolver(repo)

	_, err := resolver.Resolve(context.Background(), "closed-v1.myshopify.com")
	require.ErrorIs(t, err, domain.ErrDomainNotResolved)

	_, err = resolver.Resolve(context.Background(), "closed.myshopify.com")
	require.ErrorIs(t, err, domain.ErrDomainNotResolved)
}

func TestResolveUnknownDomain(t *testing.T) {
	resolver := newTestResolver(newFakeCredentialRepo())

	_, err := resolver.Resolve(context.Background(), "nobody.example.com")
	require.ErrorIs(t, err, domain.ErrDomainNotResolved)
}

func TestPublicVariantStripsFirstSuffixOnly(t *testing.T) {
	require.Equal(t, "store.myshopify.com", publicVariant("store-v7.myshopify.com"))
	require.Equal(t, "plain.myshopify.com", publicVariant("plain.myshopify.com"))
	require.Equal(t, "a-v2.myshopify.com", publicVariant("a-v1-v2.myshopify.com"))
}

func TestIsKnownOrigin(t *testing.T) {
	repo := newFakeCredentialRepo()
	repo.rows["store-v7.myshopify.com"] = &domain.ShopCredential{
		Domain: "store-v7.myshopify.com",
		Active: true,
	}
	resolver := newTestResolver(repo)

	cases := []struct {
		name   string
		origin string
		want   bool
	}{
		{"known canonical", "https://store-v7.myshopify.com", true},
		{"known public variant", "https://store.myshopify.com", true},
		{"known with port", "https://store-v7.myshopify.com:8443", true},
		{"unknown host", "https://evil.example.com", false},
		{"no host", "not a url", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.want, resolver.IsKnownOrigin(context.Background(), tc.origin))
		})
	}
}
