package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	inverrors "bukid/internal/inventory/errors"
	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	ItemCollectionName = "Inventory_items"
)

type ItemRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	FindByID(ctx context.Context, id string) (*model.InventoryItem, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.InventoryItem, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, item *model.InventoryItem) error
	Delete(ctx context.Context, id string) error
}

type mongoItemRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoItemRepository(cfg *config.Config) ItemRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoItemRepository{
		cfg:        cfg,
		collection: db.Collection(ItemCollectionName),
	}
}

func (r *mongoItemRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	item.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, item)
	if err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		item.ID = oid.Hex()
	}
	return nil
}

func (r *mongoItemRepository) FindByID(ctx context.Context, id string) (*model.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", inverrors.ErrInvalidID, id)
	}

	var item model.InventoryItem
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&item)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, inverrors.ErrItemNotFound
		}
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}

	return &item, nil
}

func (r *mongoItemRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.InventoryItem, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory items: %w", err)
	}
	defer cursor.Close(ctx)

	var items []*model.InventoryItem
	if err = cursor.All(ctx, &items); err != nil {
		return nil, fmt.Errorf("failed to decode inventory items: %w", err)
	}

	return items, nil
}

func (r *mongoItemRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count inventory items: %w", err)
	}
	return count, nil
}

func (r *mongoItemRepository) Update(ctx context.Context, id string, item *model.InventoryItem) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", inverrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":                item.Name,
			"category":            item.Category,
			"total_quantity":      item.TotalQuantity,
			"reserved_out":        item.ReservedOut,
			"low_stock_threshold": item.LowStockThreshold,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update inventory item: %w", err)
	}
	if result.MatchedCount == 0 {
		return inverrors.ErrItemNotFound
	}

	return nil
}

func (r *mongoItemRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", inverrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}
	if result.DeletedCount == 0 {
		return inverrors.ErrItemNotFound
	}

	return nil
}
