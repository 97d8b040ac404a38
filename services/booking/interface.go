package booking

import (
	"context"
	"time"

	bookingRepo "emjay/database/repository/booking"
	"emjay/models"
	"emjay/utils"

	"go.uber.org/zap"
)

// MessageLog appends chat messages and keeps the conversation summary current.
type MessageLog interface {
	RecordMessage(ctx context.Context, customerID, text string, from models.ChatReference) error
	UpsertConversationSummary(ctx context.Context, customerID, lastMessage string, from models.ChatReference, unreadDelta int) error
}

// PushSender delivers a push notification. Delivery is best effort.
type PushSender interface {
	Send(ctx context.Context, n models.PushNotification) error
}

type CustomerLookup interface {
	GetByID(ctx context.Context, id string) (*models.Customer, error)
}

type CatalogLookup interface {
	GetServiceByID(ctx context.Context, id string) (*models.Service, error)
}

// AdminTokenSource lists the push tokens of every admin account.
type AdminTokenSource interface {
	AdminTokens(ctx context.Context) ([]string, error)
}

// BookingService reserves and releases booking slots.
type BookingService interface {
	UpdateSlot(ctx context.Context, date, slotID, customerID, serviceID string, action models.BookingAction) (*models.SlotResult, error)
	UpdateScheduledBooking(ctx context.Context, date, slotID string, action models.ScheduledBookingAction) (*models.SlotResult, error)
	CreateBookingDates(ctx context.Context, dates []string) ([]models.Booking, error)
	GetBookingByDate(ctx context.Context, date string) (*models.Booking, error)
	GetCustomerBookings(ctx context.Context, customerID string) ([]models.ScheduledSlot, error)
	GetScheduledBookings(ctx context.Context) ([]models.ScheduledSlot, error)
}

// DefaultBookingService implements BookingService. Location decides which
// calendar day is "today"; nil means UTC.
type DefaultBookingService struct {
	Repo      bookingRepo.BookingRepository
	Customers CustomerLookup
	Catalog   CatalogLookup
	Admins    AdminTokenSource
	Messages  MessageLog
	Push      PushSender
	Location  *time.Location
	Logger    *zap.Logger
	Now       func() time.Time
}

func (s *DefaultBookingService) today() string {
	now := time.Now()
	if s.Now != nil {
		now = s.Now()
	}
	loc := s.Location
	if loc == nil {
		loc = time.UTC
	}
	return now.In(loc).Format(utils.DateLayout)
}

func (s *DefaultBookingService) logger() *zap.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return utils.GetLogger()
}

var _ BookingService = (*DefaultBookingService)(nil)
