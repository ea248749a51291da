package bookingRepo

import (
	"context"
	"time"

	"calendrix/models"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Create inserts a new booking record. A duplicate-key error from the unique
// details index means an identical commit won the insert race; the winner's
// record is returned instead of an error.
func (r *mongoBookingRecordRepo) Create(ctx context.Context, record models.BookingRecord) (*models.BookingRecord, error) {
	if record.ID == "" {
		record.ID = uuid.New().String()
	}
	record.CreatedAt = time.Now()

	if _, err := r.coll.InsertOne(ctx, record); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return r.FindByDetails(ctx, record.Name, record.Date, record.StartTime, record.EndTime, record.Title)
		}
		return nil, err
	}
	return &record, nil
}

// FindByDetails looks up a record by the five-field identity tuple. A nil
// record with nil error means no commit for this tuple exists yet.
func (r *mongoBookingRecordRepo) FindByDetails(ctx context.Context, name, date, startTime, endTime, title string) (*models.BookingRecord, error) {
	filter := bson.M{
		"name":      name,
		"date":      date,
		"startTime": startTime,
		"endTime":   endTime,
		"title":     title,
	}

	var record models.BookingRecord
	err := r.coll.FindOne(ctx, filter).Decode(&record)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// GetRecent returns the most recently created records, newest first.
func (r *mongoBookingRecordRepo) GetRecent(ctx context.Context, limit int64) ([]models.BookingRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(limit)

	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var records []models.BookingRecord
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}
