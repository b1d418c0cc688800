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

	stafferrors "bukid/internal/staff/errors"
	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	EmployeeCollectionName = "Employees"
)

type EmployeeRepository interface {
	Create(ctx context.Context, employee *model.Employee) error
	FindByID(ctx context.Context, id string) (*model.Employee, error)
	FindAll(ctx context.Context, role string, limit int, offset int64) ([]*model.Employee, error)
	Count(ctx context.Context, role string) (int64, error)
	Update(ctx context.Context, id string, employee *model.Employee) error
	Delete(ctx context.Context, id string) error
}

type mongoEmployeeRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoEmployeeRepository(cfg *config.Config) EmployeeRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoEmployeeRepository{
		cfg:        cfg,
		collection: db.Collection(EmployeeCollectionName),
	}
}

func roleFilter(role string) bson.M {
	if role == "" {
		return bson.M{}
	}
	return bson.M{"role": role}
}

func (r *mongoEmployeeRepository) Create(ctx context.Context, employee *model.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	employee.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, employee)
	if err != nil {
		return fmt.Errorf("failed to create employee: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		employee.ID = oid.Hex()
	}
	return nil
}

func (r *mongoEmployeeRepository) FindByID(ctx context.Context, id string) (*model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", stafferrors.ErrInvalidID, id)
	}

	var employee model.Employee
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, stafferrors.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("failed to find employee: %w", err)
	}

	return &employee, nil
}

func (r *mongoEmployeeRepository) FindAll(ctx context.Context, role string, limit int, offset int64) ([]*model.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "role", Value: 1}, {Key: "name", Value: 1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, roleFilter(role), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	defer cursor.Close(ctx)

	var employees []*model.Employee
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}

	return employees, nil
}

func (r *mongoEmployeeRepository) Count(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, roleFilter(role))
	if err != nil {
		return 0, fmt.Errorf("failed to count employees: %w", err)
	}
	return count, nil
}

func (r *mongoEmployeeRepository) Update(ctx context.Context, id string, employee *model.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", stafferrors.ErrInvalidID, id)
	}

	update := bson.M{
		"$set": bson.M{
			"name":       employee.Name,
			"role":       employee.Role,
			"phone":      employee.Phone,
			"email":      employee.Email,
			"daily_rate": employee.DailyRate,
			"active":     employee.Active,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		return fmt.Errorf("failed to update employee: %w", err)
	}
	if result.MatchedCount == 0 {
		return stafferrors.ErrEmployeeNotFound
	}

	return nil
}

func (r *mongoEmployeeRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", stafferrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if result.DeletedCount == 0 {
		return stafferrors.ErrEmployeeNotFound
	}

	return nil
}
