package application

import (
	"context"
	"strings"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/ports"
)

// fakeCredentialRepo is an in-memory CredentialRepository that counts lookups
// so tests can assert on cache behaviour.
type fakeCredentialRepo struct {
	rows      map[string]*domain.ShopCredential
	gets      int
	listCalls int
}

func newFakeCredentialRepo() *fakeCredentialRepo {
	return &fakeCredentialRepo{rows: make(map[string]*domain.ShopCredential)}
}

func (f *fakeCredentialRepo) Upsert(_ context.Context, cred *domain.ShopCredential) error {
	c := *cred
	f.rows[cred.Domain] = &c
	return nil
}

func (f *fakeCredentialRepo) Get(_ context.Context, canonicalDomain string) (*domain.ShopCredential, error) {
	f.gets++
	cred, ok := f.rows[canonicalDomain]
	if !ok {
		return nil, nil
	}
	c := *cred
	return &c, nil
}

func (f *fakeCredentialRepo) ListActiveDomains(_ context.Context) ([]string, error) {
	f.listCalls++
	var domains []string
	for d, cred := range f.rows {
		if cred.Active {
			domains = append(domains, d)
		}
	}
	return domains, nil
}

func (f *fakeCredentialRepo) Deactivate(_ context.Context, canonicalDomain, tombstone string) (*domain.ShopCredential, error) {
	cred, ok := f.rows[canonicalDomain]
	if !ok {
		return nil, nil
	}
	cred.Active = false
	cred.AccessToken = tombstone
	c := *cred
	return &c, nil
}

// plainEncryptor reverses the token so tests can tell encrypted and decrypted
// values apart without real key material.
type plainEncryptor struct{}

func (plainEncryptor) Encrypt(plaintext string) (string, error) {
	return "enc:" + plaintext, nil
}

func (plainEncryptor) Decrypt(ciphertext string) (string, error) {
	return strings.TrimPrefix(ciphertext, "enc:"), nil
}

// fakeCatalogClient records the last query and plays back canned pages.
type fakeCatalogClient struct {
	lastShop  string
	lastToken string
	lastQuery ports.CatalogQuery
	lastGID   string

	page     []domain.Product
	pageInfo domain.PageInfo
	product  *domain.Product
	err      error
}

func (f *fakeCatalogClient) FetchPage(_ context.Context, shopDomain, accessToken string, q ports.CatalogQuery) ([]domain.Product, domain.PageInfo, error) {
	f.lastShop = shopDomain
	f.lastToken = accessToken
	f.lastQuery = q
	if f.err != nil {
		return nil, domain.PageInfo{}, f.err
	}
	return f.page, f.pageInfo, nil
}

func (f *fakeCatalogClient) FetchProduct(_ context.Context, shopDomain, accessToken, productGID string) (*domain.Product, error) {
	f.lastShop = shopDomain
	f.lastToken = accessToken
	f.lastGID = productGID
	if f.err != nil {
		return nil, f.err
	}
	if f.product == nil {
		return nil, domain.ErrNotFound
	}
	return f.product, nil
}
