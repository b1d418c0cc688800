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

	venueerrors "bukid/internal/pavilions/errors"
	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	PavilionCollectionName = "Pavilions"
)

type PavilionRepository interface {
	Create(ctx context.Context, pavilion *model.Pavilion) error
	FindByID(ctx context.Context, id string) (*model.Pavilion, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Pavilion, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, pavilion *model.Pavilion) error
	Delete(ctx context.Context, id string) error
}

type mongoPavilionRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoPavilionRepository(cfg *config.Config) PavilionRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoPavilionRepository{
		cfg:        cfg,
		collection: db.Collection(PavilionCollectionName),
	}
}

func (r *mongoPavilionRepository) Create(ctx context.Context, pavilion *model.Pavilion) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	pavilion.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, pavilion)
	if err != nil {
		return fmt.Errorf("failed to create pavilion: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		pavilion.ID = oid.Hex()
	}
	return nil
}

func (r *mongoPavilionRepository) FindByID(ctx context.Context, id string) (*model.Pavilion, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", venueerrors.ErrInvalidID, id)
	}

	var pavilion model.Pavilion
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&pavilion)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, venueerrors.ErrPavilionNotFound
		}
		return nil, fmt.Errorf("failed to find pavilion: %w", err)
	}

	return &pavilion, nil
}

func (r *mongoPavilionRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Pavilion, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find pavilions: %w", err)
	}
	defer cursor.Close(ctx)

	var pavilions []*model.Pavilion
	if err = cursor.All(ctx, &pavilions); err != nil {
		return nil, fmt.Errorf("failed to decode pavilions: %w", err)
	}

	return pavilions, nil
}

func (r *mongoPavilionRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count pavilions: %w", err)
	}
	return count, nil
}

func (r *mongoPavilionRepository) Update(ctx context.Context, id string, pavilion *model.Pavilion) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":        pavilion.Name,
			"description": pavilion.Description,
			"capacity":    pavilion.Capacity,
			"base_rate":   pavilion.BaseRate,
			"active":      pavilion.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update pavilion: %w", err)
	}
	if result.MatchedCount == 0 {
		return venueerrors.ErrPavilionNotFound
	}

	return nil
}

func (r *mongoPavilionRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", venueerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete pavilion: %w", err)
	}
	if result.DeletedCount == 0 {
		return venueerrors.ErrPavilionNotFound
	}

	return nil
}
