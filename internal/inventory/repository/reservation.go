package repository

import (
	"context"
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
	ReservationCollectionName = "Inventory_reservations"
)

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.InventoryReservation) error
	FindOverlapping(ctx context.Context, itemID string, from, to time.Time) ([]*model.InventoryReservation, error)
	FindByBooking(ctx context.Context, bookingID string) ([]*model.InventoryReservation, error)
	UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) (int64, error)
	Delete(ctx context.Context, id string) error
}

type mongoReservationRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		collection: db.Collection(ReservationCollectionName),
	}
}

func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.InventoryReservation) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	reservation.CreatedAt = time.Now().UTC().Truncate(time.Millisecond)
	result, err := r.collection.InsertOne(ctx, reservation)
	if err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		reservation.ID = oid.Hex()
	}
	return nil
}

// FindOverlapping returns live reservations for the item whose date range
// touches [from, to]. Reservations whose booking snapshot is terminal are
// excluded; their stock is back in circulation.
func (r *mongoReservationRepository) FindOverlapping(ctx context.Context, itemID string, from, to time.Time) ([]*model.InventoryReservation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := bson.M{
		"item_id":        itemID,
		"start_at":       bson.M{"$lte": to},
		"end_at":         bson.M{"$gte": from},
		"booking_status": bson.M{"$nin": []model.BookingStatus{model.StatusCancelled, model.StatusArchived}},
	}

	opts := options.Find().SetSort(bson.D{{Key: "start_at", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.InventoryReservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func (r *mongoReservationRepository) FindByBooking(ctx context.Context, bookingID string) ([]*model.InventoryReservation, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, bson.M{"booking_id": bookingID})
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations by booking: %w", err)
	}
	defer cursor.Close(ctx)

	var reservations []*model.InventoryReservation
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// UpdateBookingStatus refreshes the booking status snapshot on every
// reservation held by the booking.
func (r *mongoReservationRepository) UpdateBookingStatus(ctx context.Context, bookingID string, status model.BookingStatus) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	result, err := r.collection.UpdateMany(ctx,
		bson.M{"booking_id": bookingID},
		bson.M{"$set": bson.M{"booking_status": status}},
	)
	if err != nil {
		return 0, fmt.Errorf("failed to update reservation snapshots: %w", err)
	}

	return result.ModifiedCount, nil
}

func (r *mongoReservationRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", inverrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete reservation: %w", err)
	}
	if result.DeletedCount == 0 {
		return inverrors.ErrReservationNotFound
	}

	return nil
}
