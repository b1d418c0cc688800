package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bukid/pkg/config"
	"bukid/pkg/model"
)

// ScheduleRepository tracks the reminder cadence anchor per booking.
type ScheduleRepository interface {
	Find(ctx context.Context, bookingID string) (*model.NotificationSchedule, error)
	RecordSent(ctx context.Context, bookingID string, entry model.NotificationEntry) error
}

type mongoScheduleRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoScheduleRepository(cfg *config.Config) ScheduleRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoScheduleRepository{
		cfg:        cfg,
		collection: db.Collection("Notification_schedules"),
	}
}

// Find returns nil without error when no schedule exists yet; a missing
// schedule just means nothing has been sent for the booking.
func (r *mongoScheduleRepository) Find(ctx context.Context, bookingID string) (*model.NotificationSchedule, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var schedule model.NotificationSchedule
	err := r.collection.FindOne(ctx, bson.M{"_id": bookingID}).Decode(&schedule)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find notification schedule: %w", err)
	}

	return &schedule, nil
}

// RecordSent advances the cadence anchor and appends to the history.
func (r *mongoScheduleRepository) RecordSent(ctx context.Context, bookingID string, entry model.NotificationEntry) error {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{
		"$set":  bson.M{"last_notification_sent": entry.SentAt},
		"$push": bson.M{"history": entry},
	}
	opts := options.Update().SetUpsert(true)

	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": bookingID}, update, opts); err != nil {
		return fmt.Errorf("failed to record notification send: %w", err)
	}
	return nil
}
