package contactRepo

import (
	"context"
	"fmt"
	"time"

	"agendador/database"
	"agendador/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// nameCollation makes name lookups and the name index case-insensitive.
var nameCollation = &options.Collation{Locale: "en", Strength: 2}

// MongoContactRepo implements ContactRepository using MongoDB.
type MongoContactRepo struct {
	coll *mongo.Collection
}

// NewMongoContactRepo creates a new instance of ContactRepository using MongoDB.
func NewMongoContactRepo() ContactRepository {
	coll := database.MongoClient.Database("agendador").Collection("contacts")
	repo := &MongoContactRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create indexes: %v\n", err)
	}
	return repo
}

// newContext creates a context with the given timeout.
func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// ensureIndexes enforces the directory's unique constraints.
func (r *MongoContactRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetCollation(nameCollation),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	_, err := r.coll.Indexes().CreateMany(ctx, indexModels)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// GetByName retrieves a contact by name, case-insensitively.
func (r *MongoContactRepo) GetByName(name string) (*models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var contact models.Contact
	opts := options.FindOne().SetCollation(nameCollation)
	err := r.coll.FindOne(ctx, bson.M{"name": name}, opts).Decode(&contact)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get contact %q: %w", name, err)
	}
	return &contact, nil
}

// GetAll retrieves all contacts ordered by name.
func (r *MongoContactRepo) GetAll() ([]models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}}).SetCollation(nameCollation)
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}
	defer cursor.Close(ctx)

	var contacts []models.Contact
	if err := cursor.All(ctx, &contacts); err != nil {
		return nil, fmt.Errorf("failed to decode contacts: %w", err)
	}
	return contacts, nil
}

// Upsert inserts a contact or overwrites the email of an existing name.
func (r *MongoContactRepo) Upsert(name, email string) (*models.Contact, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	filter := bson.M{"name": name}
	update := bson.M{
		"$set": bson.M{
			"email":     email,
			"updatedAt": now,
		},
		"$setOnInsert": bson.M{
			"id":        uuid.NewString(),
			"name":      name,
			"createdAt": now,
		},
	}
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After).
		SetCollation(nameCollation)

	var contact models.Contact
	err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&contact)
	if mongo.IsDuplicateKeyError(err) {
		return nil, ErrDuplicate
	}
	if err != nil {
		return nil, fmt.Errorf("failed to upsert contact %q: %w", name, err)
	}
	return &contact, nil
}

// Delete removes a contact by name.
func (r *MongoContactRepo) Delete(name string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.Delete().SetCollation(nameCollation)
	result, err := r.coll.DeleteOne(ctx, bson.M{"name": name}, opts)
	if err != nil {
		return fmt.Errorf("failed to delete contact %q: %w", name, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
