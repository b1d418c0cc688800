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

	discounterrors "bukid/internal/discounts/errors"
	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	DiscountCollectionName = "Discounts"
)

type DiscountRepository interface {
	Create(ctx context.Context, discount *model.Discount) error
	FindByID(ctx context.Context, id string) (*model.Discount, error)
	FindAll(ctx context.Context, status model.DiscountStatus, limit int, offset int64) ([]*model.Discount, error)
	Count(ctx context.Context, status model.DiscountStatus) (int64, error)
	// Review atomically moves a pending request to its reviewed state. A
	// request that is no longer pending is left untouched and ErrNotPending
	// is returned.
	Review(ctx context.Context, id string, to model.DiscountStatus, reviewedBy string, amount float64) error
	Delete(ctx context.Context, id string) error
}

type mongoDiscountRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDiscountRepository(cfg *config.Config) DiscountRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDiscountRepository{
		cfg:        cfg,
		collection: db.Collection(DiscountCollectionName),
	}
}

func statusFilter(status model.DiscountStatus) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}

func (r *mongoDiscountRepository) Create(ctx context.Context, discount *model.Discount) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	discount.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, discount)
	if err != nil {
		return fmt.Errorf("failed to create discount request: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		discount.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDiscountRepository) FindByID(ctx context.Context, id string) (*model.Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", discounterrors.ErrInvalidID, id)
	}

	var discount model.Discount
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&discount)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, discounterrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find discount request: %w", err)
	}

	return &discount, nil
}

func (r *mongoDiscountRepository) FindAll(ctx context.Context, status model.DiscountStatus, limit int, offset int64) ([]*model.Discount, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, statusFilter(status), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find discount requests: %w", err)
	}
	defer cursor.Close(ctx)

	var discounts []*model.Discount
	if err = cursor.All(ctx, &discounts); err != nil {
		return nil, fmt.Errorf("failed to decode discount requests: %w", err)
	}

	return discounts, nil
}

func (r *mongoDiscountRepository) Count(ctx context.Context, status model.DiscountStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, statusFilter(status))
	if err != nil {
		return 0, fmt.Errorf("failed to count discount requests: %w", err)
	}
	return count, nil
}

func (r *mongoDiscountRepository) Review(ctx context.Context, id string, to model.DiscountStatus, reviewedBy string, amount float64) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", discounterrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"status":      to,
			"reviewed_by": reviewedBy,
			"reviewed_at": time.Now().UTC().Truncate(time.Millisecond),
			"amount":      amount,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{
		"_id":    objectID,
		"status": model.DiscountPending,
	}, update)
	if err != nil {
		return fmt.Errorf("failed to review discount request: %w", err)
	}
	if result.MatchedCount == 0 {
		// Distinguish a missing request from one already reviewed.
		if _, findErr := r.FindByID(ctx, id); findErr != nil {
			return findErr
		}
		return discounterrors.ErrNotPending
	}

	return nil
}

func (r *mongoDiscountRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", discounterrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete discount request: %w", err)
	}
	if result.DeletedCount == 0 {
		return discounterrors.ErrNotFound
	}

	return nil
}
