package bookingRepo

import (
	"context"

	"calendrix/config"
	"calendrix/database"
	"calendrix/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRecordRepository persists committed bookings. The collection is
// append-only: records are created once and read back for history.
type BookingRecordRepository interface {
	Create(ctx context.Context, record models.BookingRecord) (*models.BookingRecord, error)
	FindByDetails(ctx context.Context, name, date, startTime, endTime, title string) (*models.BookingRecord, error)
	GetRecent(ctx context.Context, limit int64) ([]models.BookingRecord, error)
	EnsureIndexes() error
}

type mongoBookingRecordRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRecordRepo returns a BookingRecordRepository backed by MongoDB.
func NewMongoBookingRecordRepo() BookingRecordRepository {
	db := database.MongoClient.Database(config.AppConfig.DatabaseName)
	return &mongoBookingRecordRepo{
		coll: db.Collection("bookings"),
	}
}
