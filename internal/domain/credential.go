package domain

import (
	"fmt"
	"time"
)

// TombstonePrefix marks a token that has been irreversibly revoked. The
// row is kept for audit; the token value can never be mistaken for a live one.
const TombstonePrefix = "DEACTIVATED_"

// ShopCredential is the per-tenant upstream API credential, keyed on the
// canonical shop domain. At most one active credential exists per domain.
type ShopCredential struct {
	Domain      string    `json:"domain"`
	AccessToken string    `json:"-"`
	Scopes      string    `json:"scopes"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Tombstone returns the revoked-token value embedding the revocation time.
func Tombstone(now time.Time) string {
	return fmt.Sprintf("%s%d", TombstonePrefix, now.UnixMilli())
}
