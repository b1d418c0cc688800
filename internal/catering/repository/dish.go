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

	cateringerrors "bukid/internal/catering/errors"
	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	DishCollectionName = "Dishes"
)

type DishRepository interface {
	Create(ctx context.Context, dish *model.Dish) error
	FindByID(ctx context.Context, id string) (*model.Dish, error)
	FindByIDs(ctx context.Context, ids []string) ([]*model.Dish, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Dish, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, id string, dish *model.Dish) error
	Delete(ctx context.Context, id string) error
}

type mongoDishRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoDishRepository(cfg *config.Config) DishRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoDishRepository{
		cfg:        cfg,
		collection: db.Collection(DishCollectionName),
	}
}

func (r *mongoDishRepository) Create(ctx context.Context, dish *model.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	dish.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, dish)
	if err != nil {
		return fmt.Errorf("failed to create dish: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		dish.ID = oid.Hex()
	}
	return nil
}

func (r *mongoDishRepository) FindByID(ctx context.Context, id string) (*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", cateringerrors.ErrInvalidID, id)
	}

	var dish model.Dish
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&dish)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, cateringerrors.ErrDishNotFound
		}
		return nil, fmt.Errorf("failed to find dish: %w", err)
	}

	return &dish, nil
}

func (r *mongoDishRepository) FindByIDs(ctx context.Context, ids []string) ([]*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectIDs := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		objectID, err := primitive.ObjectIDFromHex(id)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", cateringerrors.ErrInvalidID, id)
		}
		objectIDs = append(objectIDs, objectID)
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": objectIDs}})
	if err != nil {
		return nil, fmt.Errorf("failed to find dishes: %w", err)
	}
	defer cursor.Close(ctx)

	var dishes []*model.Dish
	if err = cursor.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}

	return dishes, nil
}

func (r *mongoDishRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Dish, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "category", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find dishes: %w", err)
	}
	defer cursor.Close(ctx)

	var dishes []*model.Dish
	if err = cursor.All(ctx, &dishes); err != nil {
		return nil, fmt.Errorf("failed to decode dishes: %w", err)
	}

	return dishes, nil
}

func (r *mongoDishRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count dishes: %w", err)
	}
	return count, nil
}

func (r *mongoDishRepository) Update(ctx context.Context, id string, dish *model.Dish) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", cateringerrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":      dish.Name,
			"category":  dish.Category,
			"price":     dish.Price,
			"allergens": dish.Allergens,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update dish: %w", err)
	}
	if result.MatchedCount == 0 {
		return cateringerrors.ErrDishNotFound
	}

	return nil
}

func (r *mongoDishRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", cateringerrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete dish: %w", err)
	}
	if result.DeletedCount == 0 {
		return cateringerrors.ErrDishNotFound
	}

	return nil
}
