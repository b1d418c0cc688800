package repository

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"bukid/pkg/config"
	"bukid/pkg/model"
)

const (
	bookingCollectionName = "Bookings"
)

// ReportRepository aggregates over the bookings collection. Cancelled and
// archived bookings are excluded from revenue figures but counted in the
// status breakdown.
type ReportRepository interface {
	MonthlyRevenue(ctx context.Context, year int) ([]*model.MonthlyRevenue, error)
	BookingsPerPavilion(ctx context.Context, from, to time.Time) ([]*model.PavilionBookings, error)
	StatusBreakdown(ctx context.Context) ([]*model.StatusBreakdown, error)
}

type mongoReportRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoReportRepository(cfg *config.Config) ReportRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoReportRepository{
		cfg:        cfg,
		collection: db.Collection(bookingCollectionName),
	}
}

func (r *mongoReportRepository) MonthlyRevenue(ctx context.Context, year int) ([]*model.MonthlyRevenue, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, r.cfg.Location)
	yearEnd := yearStart.AddDate(1, 0, 0)

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"start_at": bson.M{"$gte": yearStart, "$lt": yearEnd},
			"status": bson.M{"$nin": bson.A{
				model.StatusCancelled, model.StatusArchived,
			}},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":      bson.M{"$month": bson.M{"date": "$start_at", "timezone": r.cfg.BusinessTimezone}},
			"bookings": bson.M{"$sum": 1},
			"revenue":  bson.M{"$sum": "$original_price"},
			"collected": bson.M{"$sum": bson.M{
				"$subtract": bson.A{"$original_price", "$balance"},
			}},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate monthly revenue: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Month     int     `bson:"_id"`
		Bookings  int64   `bson:"bookings"`
		Revenue   float64 `bson:"revenue"`
		Collected float64 `bson:"collected"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode monthly revenue: %w", err)
	}

	out := make([]*model.MonthlyRevenue, 0, len(rows))
	for _, row := range rows {
		out = append(out, &model.MonthlyRevenue{
			Year:      year,
			Month:     row.Month,
			Bookings:  row.Bookings,
			Revenue:   row.Revenue,
			Collected: row.Collected,
		})
	}
	return out, nil
}

func (r *mongoReportRepository) BookingsPerPavilion(ctx context.Context, from, to time.Time) ([]*model.PavilionBookings, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	match := bson.M{
		"status": bson.M{"$nin": bson.A{
			model.StatusCancelled, model.StatusArchived,
		}},
	}
	if !from.IsZero() || !to.IsZero() {
		window := bson.M{}
		if !from.IsZero() {
			window["$gte"] = from
		}
		if !to.IsZero() {
			window["$lt"] = to
		}
		match["start_at"] = window
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: match}},
		{{Key: "$group", Value: bson.M{
			"_id":      "$pavilion_id",
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "bookings", Value: -1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate bookings per pavilion: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*model.PavilionBookings
	if err = cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode bookings per pavilion: %w", err)
	}
	return out, nil
}

func (r *mongoReportRepository) StatusBreakdown(ctx context.Context) ([]*model.StatusBreakdown, error) {
	ctx, cancel := context.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":      "$status",
			"bookings": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate status breakdown: %w", err)
	}
	defer cursor.Close(ctx)

	var out []*model.StatusBreakdown
	if err = cursor.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("failed to decode status breakdown: %w", err)
	}
	return out, nil
}
