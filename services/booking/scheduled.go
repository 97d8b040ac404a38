package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"emjay/database"
	"emjay/models"
	"emjay/utils"

	"go.uber.org/zap"
)

// UpdateScheduledBooking lets staff mark a booked slot as completed or
// cancel it on the customer's behalf. Only the customer is notified.
func (s *DefaultBookingService) UpdateScheduledBooking(ctx context.Context, date, slotID string, action models.ScheduledBookingAction) (*models.SlotResult, error) {
	if !action.Valid() {
		return nil, utils.NewValidationError("action", fmt.Sprintf("invalid action %q", action))
	}
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return nil, utils.NewValidationError("date", "date must be formatted YYYY-MM-DD")
	}

	_, slot, err := s.loadSlot(ctx, date, slotID)
	if err != nil {
		return nil, err
	}
	if !slot.Booked() {
		return nil, utils.NewValidationError("slot_id", "slot has no booking")
	}

	if action == models.ScheduledComplete {
		err = s.Repo.CompleteSlot(ctx, date, slotID)
	} else {
		err = s.Repo.ResetSlot(ctx, date, slotID)
	}
	if errors.Is(err, database.ErrVersionConflict) {
		return nil, utils.NewConflictError("slot_id", "slot changed while it was being updated")
	}
	if err != nil {
		return nil, err
	}

	s.logger().Info("scheduled booking updated",
		zap.String("date", date), zap.String("slotId", slotID), zap.String("action", string(action)))

	customer, err := s.Customers.GetByID(ctx, slot.CustomerID)
	if err != nil || customer == nil {
		s.logger().Warn("scheduled booking updated but customer lookup failed",
			zap.String("customerId", slot.CustomerID), zap.Error(err))
	} else {
		text := completedMessage(date, slot)
		if action == models.ScheduledCancel {
			text = cancelledByShopMessage(date, slot)
		}
		s.notifyCustomer(ctx, customer, text)
	}

	return &models.SlotResult{Date: date, Time: slot.Label(), SlotID: slot.ID}, nil
}
