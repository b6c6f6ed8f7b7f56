package mongodb

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fridgeagent/internal/domain/models"
	"fridgeagent/internal/repository"
)

const (
	itemsCollection   = "items"
	digestsCollection = "alert_digests"
)

// expiry ascending, then id, so "first match" is stable across runs.
var itemSortOrder = bson.D{{Key: "expiry_date", Value: 1}, {Key: "_id", Value: 1}}

// MongoDBRepository implements repository.Repository backed by MongoDB.
type MongoDBRepository struct {
	client *mongo.Client
	dbName string
}

// NewMongoDBRepository connects to MongoDB and verifies the connection.
func NewMongoDBRepository(ctx context.Context, uri string, dbName string) (*MongoDBRepository, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Ping the database to verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &MongoDBRepository{
		client: client,
		dbName: dbName,
	}, nil
}

func (r *MongoDBRepository) items() *mongo.Collection {
	return r.client.Database(r.dbName).Collection(itemsCollection)
}

// ListItems returns every inventory item sorted by expiry date ascending.
func (r *MongoDBRepository) ListItems(ctx context.Context) ([]models.Item, error) {
	cursor, err := r.items().Find(ctx, bson.M{}, options.Find().SetSort(itemSortOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// GetItem fetches a single item by id.
func (r *MongoDBRepository) GetItem(ctx context.Context, id string) (models.Item, error) {
	var item models.Item
	err := r.items().FindOne(ctx, bson.M{"_id": id}).Decode(&item)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Item{}, repository.ErrItemNotFound
	}
	if err != nil {
		return models.Item{}, fmt.Errorf("failed to get item %s: %w", id, err)
	}
	return item, nil
}

// InsertItem stores a new item.
func (r *MongoDBRepository) InsertItem(ctx context.Context, item models.Item) error {
	if _, err := r.items().InsertOne(ctx, item); err != nil {
		return fmt.Errorf("failed to insert item: %w", err)
	}
	return nil
}

// ReplaceItem overwrites the stored document for item.ID.
func (r *MongoDBRepository) ReplaceItem(ctx context.Context, item models.Item) error {
	result, err := r.items().ReplaceOne(ctx, bson.M{"_id": item.ID}, item)
	if err != nil {
		return fmt.Errorf("failed to replace item %s: %w", item.ID, err)
	}
	if result.MatchedCount == 0 {
		return repository.ErrItemNotFound
	}
	return nil
}

// DeleteItem removes an item by id.
func (r *MongoDBRepository) DeleteItem(ctx context.Context, id string) error {
	result, err := r.items().DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("failed to delete item %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return repository.ErrItemNotFound
	}
	return nil
}

// SearchItemsByName returns items whose name contains the fragment,
// case-insensitively, in the usual expiry sort order.
func (r *MongoDBRepository) SearchItemsByName(ctx context.Context, fragment string) ([]models.Item, error) {
	filter := bson.M{"name": bson.M{"$regex": regexp.QuoteMeta(fragment), "$options": "i"}}
	cursor, err := r.items().Find(ctx, filter, options.Find().SetSort(itemSortOrder))
	if err != nil {
		return nil, fmt.Errorf("failed to search items: %w", err)
	}

	items := []models.Item{}
	if err := cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode items: %w", err)
	}
	return items, nil
}

// SaveAlertDigest saves a daily alert digest to the database.
func (r *MongoDBRepository) SaveAlertDigest(ctx context.Context, digest models.AlertDigest) error {
	collection := r.client.Database(r.dbName).Collection(digestsCollection)
	if _, err := collection.InsertOne(ctx, digest); err != nil {
		return fmt.Errorf("failed to insert alert digest: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (r *MongoDBRepository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
