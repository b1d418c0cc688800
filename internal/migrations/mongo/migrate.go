package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"bukid/internal/migrations/mongo/validators"
	"bukid/pkg/logger"
	"bukid/pkg/model"
)

var (
	BookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "pavilion_id", Value: 1},
			{Key: "start_at", Value: 1},
			{Key: "end_at", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "end_at", Value: 1},
		}},
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "balance", Value: 1},
		}},
	}

	// Held slot locks evaporate on their own; the TTL monitor deletes a
	// lock once expires_at passes.
	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	}

	// One-shot notification types are unique per booking; unpaid reminders
	// repeat and are excluded from the constraint.
	NotificationsIndexes = []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "booking_id", Value: 1},
				{Key: "type", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{
					"type": bson.M{"$in": oneShotNotificationTypes()},
				}),
		},
		{Keys: bson.D{
			{Key: "read", Value: 1},
			{Key: "created_at", Value: -1},
		}},
	}

	InventoryItemsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "name", Value: 1},
		}},
	}

	InventoryReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "item_id", Value: 1},
			{Key: "start_at", Value: 1},
			{Key: "end_at", Value: 1},
		}},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}

	PavilionsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
	}

	RoomsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "pavilion_id", Value: 1},
			{Key: "name", Value: 1},
		}},
	}

	PackagesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "price_per_head", Value: 1},
		}},
	}

	DishesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "category", Value: 1},
			{Key: "name", Value: 1},
		}},
	}

	EmployeesIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "role", Value: 1},
			{Key: "name", Value: 1},
		}},
	}

	DiscountsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "status", Value: 1},
			{Key: "created_at", Value: -1},
		}},
		{Keys: bson.D{{Key: "booking_id", Value: 1}}},
	}
)

// oneShotNotificationTypes selects the types covered by the partial unique
// dedup index; repeating types are left out of the constraint.
func oneShotNotificationTypes() bson.A {
	types := bson.A{}
	for _, t := range model.AllNotificationTypes {
		if t.OneShot() {
			types = append(types, t)
		}
	}
	return types
}

type collectionDef struct {
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// RunMigration ensures every collection exists with its schema validator and
// indexes. It is idempotent; rerunning against an up-to-date database is a
// no-op.
func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	collections := map[string]collectionDef{
		"Bookings": {
			Indexes:   BookingsIndexes,
			Validator: validators.BookingValidator,
		},
		"Booking_locks": {
			Indexes:   BookingLocksIndexes,
			Validator: validators.BookingLockValidator,
		},
		"Notifications": {
			Indexes:   NotificationsIndexes,
			Validator: validators.NotificationValidator,
		},
		"Notification_schedules": {
			Validator: validators.NotificationScheduleValidator,
		},
		"Inventory_items": {
			Indexes:   InventoryItemsIndexes,
			Validator: validators.InventoryItemValidator,
		},
		"Inventory_reservations": {
			Indexes:   InventoryReservationsIndexes,
			Validator: validators.InventoryReservationValidator,
		},
		"Pavilions": {
			Indexes:   PavilionsIndexes,
			Validator: validators.PavilionValidator,
		},
		"Rooms": {
			Indexes:   RoomsIndexes,
			Validator: validators.RoomValidator,
		},
		"Packages": {
			Indexes:   PackagesIndexes,
			Validator: validators.PackageValidator,
		},
		"Dishes": {
			Indexes:   DishesIndexes,
			Validator: validators.DishValidator,
		},
		"Employees": {
			Indexes:   EmployeesIndexes,
			Validator: validators.EmployeeValidator,
		},
		"Discounts": {
			Indexes:   DiscountsIndexes,
			Validator: validators.DiscountValidator,
		},
	}

	for name, def := range collections {
		if err := ensureCollection(ctx, db, name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", name, err)
		}
		if len(def.Indexes) == 0 {
			continue
		}
		if err := ensureIndexes(ctx, db, name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", name, err)
		}
	}

	log.Info("All migrations applied")
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}
	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
