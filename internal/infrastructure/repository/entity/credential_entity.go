package entity

import (
	"time"

	"storefront-gateway/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MongoCredentialDoc represents a tenant credential row in MongoDB.
type MongoCredentialDoc struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Domain      string             `bson:"domain"`
	AccessToken string             `bson:"accessToken"`
	Scopes      string             `bson:"scopes"`
	Active      bool               `bson:"active"`
	CreatedAt   time.Time          `bson:"createdAt"`
	UpdatedAt   time.Time          `bson:"updatedAt"`
}

// ToDomain converts the MongoDB document to a domain entity.
func (d *MongoCredentialDoc) ToDomain() *domain.ShopCredential {
	return &domain.ShopCredential{
		Domain:      d.Domain,
		AccessToken: d.AccessToken,
		Scopes:      d.Scopes,
		Active:      d.Active,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
	}
}

// MongoCredentialDocFromDomain converts a domain entity to a MongoDB document.
func MongoCredentialDocFromDomain(cred *domain.ShopCredential) *MongoCredentialDoc {
	return &MongoCredentialDoc{
		Domain:      cred.Domain,
		AccessToken: cred.AccessToken,
		Scopes:      cred.Scopes,
		Active:      cred.Active,
		CreatedAt:   cred.CreatedAt,
		UpdatedAt:   cred.UpdatedAt,
	}
}
