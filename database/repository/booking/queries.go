package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"toolshare/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func (r *mongoBookingRepo) list(ctx context.Context, filter bson.M, sortField string) ([]models.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: sortField, Value: -1}})
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	bookings := []models.Booking{}
	if err := cursor.All(ctx, &bookings); err != nil {
		return nil, err
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByRenter(ctx context.Context, renterID string) ([]models.Booking, error) {
	bookings, err := r.list(ctx, bson.M{"renterId": renterID}, "createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for renter %s: %w", renterID, err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByOwner(ctx context.Context, ownerID string) ([]models.Booking, error) {
	bookings, err := r.list(ctx, bson.M{"ownerId": ownerID}, "createdAt")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for owner %s: %w", ownerID, err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListByParticipant(ctx context.Context, userID string) ([]models.Booking, error) {
	filter := bson.M{"$or": bson.A{
		bson.M{"renterId": userID},
		bson.M{"ownerId": userID},
	}}
	bookings, err := r.list(ctx, filter, "updatedAt")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings for user %s: %w", userID, err)
	}
	return bookings, nil
}

func (r *mongoBookingRepo) ListAwaitingPayment(ctx context.Context) ([]models.Booking, error) {
	filter := bson.M{
		"status":          models.StatusApproved,
		"paymentIntentId": bson.M{"$exists": true, "$ne": ""},
	}
	bookings, err := r.list(ctx, filter, "updatedAt")
	if err != nil {
		return nil, fmt.Errorf("failed to list bookings awaiting payment: %w", err)
	}
	return bookings, nil
}
