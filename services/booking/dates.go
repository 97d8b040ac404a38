package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"
	"emjay/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var defaultSlotTimes = [][2]string{
	{"8:00 AM", "11:00 AM"},
	{"12:00 PM", "03:00 PM"},
	{"04:00 PM", "07:00 PM"},
}

func defaultSlots() []models.Slot {
	slots := make([]models.Slot, 0, len(defaultSlotTimes))
	for _, t := range defaultSlotTimes {
		slots = append(slots, models.Slot{
			ID:        uuid.New().String(),
			StartTime: t[0],
			EndTime:   t[1],
		})
	}
	return slots
}

// CreateBookingDates opens each date with the default slots. Dates are
// validated up front so a bad entry creates nothing.
func (s *DefaultBookingService) CreateBookingDates(ctx context.Context, dates []string) ([]models.Booking, error) {
	if len(dates) == 0 {
		return nil, utils.NewValidationError("dates", "at least one date is required")
	}
	seen := make(map[string]bool, len(dates))
	for _, d := range dates {
		if _, err := time.Parse(utils.DateLayout, d); err != nil {
			return nil, utils.NewValidationError("dates", fmt.Sprintf("%q is not a YYYY-MM-DD date", d))
		}
		if seen[d] {
			return nil, utils.NewValidationError("dates", fmt.Sprintf("%s is listed twice", d))
		}
		seen[d] = true
	}

	now := time.Now().UTC()
	if s.Now != nil {
		now = s.Now().UTC()
	}

	created := make([]models.Booking, 0, len(dates))
	for _, d := range dates {
		b := models.Booking{
			ID:        uuid.New().String(),
			Date:      d,
			IsOpen:    true,
			Slots:     defaultSlots(),
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := s.Repo.Create(ctx, &b); err != nil {
			if errors.Is(err, database.ErrDuplicate) {
				return created, utils.NewConflictError("date", fmt.Sprintf("bookings for %s already exist", d))
			}
			return created, err
		}
		created = append(created, b)
	}

	s.logger().Info("booking dates opened", zap.Strings("dates", dates))
	return created, nil
}

func (s *DefaultBookingService) GetBookingByDate(ctx context.Context, date string) (*models.Booking, error) {
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return nil, utils.NewValidationError("date", "date must be formatted YYYY-MM-DD")
	}
	b, err := s.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, utils.NewNotFoundError("date", fmt.Sprintf("no bookings are open on %s", date))
	}
	return b, nil
}

// GetCustomerBookings lists the customer's active slots from today on.
func (s *DefaultBookingService) GetCustomerBookings(ctx context.Context, customerID string) ([]models.ScheduledSlot, error) {
	if customerID == "" {
		return nil, utils.NewValidationError("customer_id", "customer is required")
	}
	return s.Repo.ScheduledSlots(ctx, s.today(), customerID)
}

func (s *DefaultBookingService) GetScheduledBookings(ctx context.Context) ([]models.ScheduledSlot, error) {
	return s.Repo.ScheduledSlots(ctx, s.today(), "")
}
