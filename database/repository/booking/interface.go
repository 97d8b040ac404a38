// File: database/repository/booking/interface.go
package bookingRepo

import (
	"context"

	"emjay/database"
	"emjay/models"

	"go.mongodb.org/mongo-driver/mongo"
)

// BookingRepository persists booking dates. Every slot mutation is a single
// conditional update; a guard that no longer holds yields database.ErrVersionConflict.
type BookingRepository interface {
	GetByDate(ctx context.Context, date string) (*models.Booking, error)
	Create(ctx context.Context, booking *models.Booking) error
	ReserveSlot(ctx context.Context, date, slotID, customerID, serviceID string, distance float64) error
	ReleaseSlot(ctx context.Context, date, slotID, customerID string) error
	CompleteSlot(ctx context.Context, date, slotID string) error
	ResetSlot(ctx context.Context, date, slotID string) error
	// ScheduledSlots lists booked, incomplete slots on or after fromDate; customerID narrows when set.
	ScheduledSlots(ctx context.Context, fromDate, customerID string) ([]models.ScheduledSlot, error)
}

type mongoBookingRepo struct {
	coll *mongo.Collection
}

// NewMongoBookingRepo constructs a new MongoDB BookingRepository.
func NewMongoBookingRepo() BookingRepository {
	return &mongoBookingRepo{
		coll: database.DB().Collection("bookings"),
	}
}

func NewBookingRepoWithCollection(coll *mongo.Collection) BookingRepository {
	return &mongoBookingRepo{coll: coll}
}
