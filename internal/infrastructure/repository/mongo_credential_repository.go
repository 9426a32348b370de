package repository

import (
	"context"
	"fmt"
	"time"

	"storefront-gateway/internal/domain"
	"storefront-gateway/internal/infrastructure/repository/entity"
	"storefront-gateway/internal/ports"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoCredentialRepository implements CredentialRepository using MongoDB.
// Rows are keyed on the canonical shop domain; a unique index on "domain"
// makes the upsert atomic per tenant.
type MongoCredentialRepository struct {
	collection *mongo.Collection
}

// NewMongoCredentialRepository creates a new MongoDB credential repository
// and ensures the unique domain index exists.
func NewMongoCredentialRepository(ctx context.Context, db *mongo.Database) (ports.CredentialRepository, error) {
	coll := db.Collection("shop_credentials")

	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "domain", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to ensure credential index: %w", err)
	}

	return &MongoCredentialRepository{collection: coll}, nil
}

// Upsert inserts or replaces the credential row for its domain.
func (r *MongoCredentialRepository) Upsert(ctx context.Context, cred *domain.ShopCredential) error {
	doc := entity.MongoCredentialDocFromDomain(cred)
	doc.UpdatedAt = time.Now()

	opts := options.Update().SetUpsert(true)
	filter := bson.M{"domain": cred.Domain}
	update := bson.M{
		"$set": bson.M{
			"accessToken": doc.AccessToken,
			"scopes":      doc.Scopes,
			"active":      doc.Active,
			"updatedAt":   doc.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"domain":    doc.Domain,
			"createdAt": time.Now(),
		},
	}

	_, err := r.collection.UpdateOne(ctx, filter, update, opts)
	if err != nil {
		return fmt.Errorf("failed to save credential: %w", err)
	}

	return nil
}

// Get retrieves the credential row for a canonical domain, active or not.
func (r *MongoCredentialRepository) Get(ctx context.Context, canonicalDomain string) (*domain.ShopCredential, error) {
	var doc entity.MongoCredentialDoc
	filter := bson.M{"domain": canonicalDomain}

	err := r.collection.FindOne(ctx, filter).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return doc.ToDomain(), nil
}

// ListActiveDomains returns every canonical domain with an active credential.
func (r *MongoCredentialRepository) ListActiveDomains(ctx context.Context) ([]string, error) {
	opts := options.Find().SetProjection(bson.M{"domain": 1})
	cursor, err := r.collection.Find(ctx, bson.M{"active": true}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list active credentials: %w", err)
	}
	defer cursor.Close(ctx)

	var domains []string
	for cursor.Next(ctx) {
		var doc entity.MongoCredentialDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode credential: %w", err)
		}
		domains = append(domains, doc.Domain)
	}

	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("cursor error: %w", err)
	}

	return domains, nil
}

// Deactivate marks the row inactive and overwrites the token in one atomic
// update. The row is kept for audit.
func (r *MongoCredentialRepository) Deactivate(ctx context.Context, canonicalDomain, tombstone string) (*domain.ShopCredential, error) {
	filter := bson.M{"domain": canonicalDomain}
	update := bson.M{
		"$set": bson.M{
			"active":      false,
			"accessToken": tombstone,
			"updatedAt":   time.Now(),
		},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc entity.MongoCredentialDoc
	err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to deactivate credential: %w", err)
	}

	return doc.ToDomain(), nil
}
