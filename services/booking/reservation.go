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

// UpdateSlot books or releases one slot for a customer.
func (s *DefaultBookingService) UpdateSlot(ctx context.Context, date, slotID, customerID, serviceID string, action models.BookingAction) (*models.SlotResult, error) {
	if !action.Valid() {
		return nil, utils.NewValidationError("action", fmt.Sprintf("invalid action %q", action))
	}
	if customerID == "" {
		return nil, utils.NewValidationError("customer_id", "customer is required")
	}
	if err := s.checkDate(date, action); err != nil {
		return nil, err
	}

	booking, slot, err := s.loadSlot(ctx, date, slotID)
	if err != nil {
		return nil, err
	}

	if action == models.BookingActionBook {
		err = s.book(ctx, booking, slot, customerID, serviceID)
	} else {
		err = s.release(ctx, booking, slot, customerID)
	}
	if err != nil {
		return nil, err
	}
	return &models.SlotResult{Date: date, Time: slot.Label(), SlotID: slot.ID}, nil
}

// checkDate rejects past dates and any same-day change.
func (s *DefaultBookingService) checkDate(date string, action models.BookingAction) error {
	if _, err := time.Parse(utils.DateLayout, date); err != nil {
		return utils.NewValidationError("date", "date must be formatted YYYY-MM-DD")
	}
	today := s.today()
	switch {
	case date < today:
		return utils.NewValidationError("date", "cannot book or cancel a slot on a past date")
	case date == today && action == models.BookingActionBook:
		return utils.NewValidationError("date", "same-day booking is not allowed")
	case date == today:
		return utils.NewValidationError("date", "same-day cancellation is not allowed")
	}
	return nil
}

func (s *DefaultBookingService) loadSlot(ctx context.Context, date, slotID string) (*models.Booking, models.Slot, error) {
	booking, err := s.Repo.GetByDate(ctx, date)
	if err != nil {
		return nil, models.Slot{}, err
	}
	if booking == nil {
		return nil, models.Slot{}, utils.NewNotFoundError("date", fmt.Sprintf("no bookings are open on %s", date))
	}
	idx := booking.FindSlot(slotID)
	if idx < 0 {
		return nil, models.Slot{}, utils.NewNotFoundError("slot_id", fmt.Sprintf("slot %s not found on %s", slotID, date))
	}
	return booking, booking.Slots[idx], nil
}

func (s *DefaultBookingService) book(ctx context.Context, booking *models.Booking, slot models.Slot, customerID, serviceID string) error {
	if !booking.IsOpen {
		return utils.NewValidationError("date", fmt.Sprintf("bookings on %s are closed", booking.Date))
	}
	if serviceID == "" {
		return utils.NewValidationError("service_id", "service is required")
	}
	service, err := s.Catalog.GetServiceByID(ctx, serviceID)
	if err != nil {
		return err
	}
	if service == nil {
		return utils.NewNotFoundError("service_id", fmt.Sprintf("service %s not found", serviceID))
	}
	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil {
		return err
	}
	if customer == nil {
		return utils.NewNotFoundError("customer_id", fmt.Sprintf("customer %s not found", customerID))
	}

	if slot.Booked() {
		return slotTakenError()
	}
	if holdsActiveSlot(booking, customerID) {
		return duplicateBookingError()
	}

	// The repository re-checks both conditions in its write filter.
	err = s.Repo.ReserveSlot(ctx, booking.Date, slot.ID, customerID, serviceID, customer.Distance)
	if errors.Is(err, database.ErrVersionConflict) {
		return s.classifyReserveConflict(ctx, booking.Date, slot.ID, customerID)
	}
	if err != nil {
		return err
	}

	s.logger().Info("slot booked",
		zap.String("date", booking.Date), zap.String("slotId", slot.ID), zap.String("customerId", customerID))
	s.notifyCustomerAndAdmins(ctx, customer, bookedMessage(booking.Date, slot, service.Title), "New booking",
		fmt.Sprintf("%s %s booked %s on %s, %s.", customer.FirstName, customer.LastName, service.Title, booking.Date, slot.Label()))
	return nil
}

func (s *DefaultBookingService) release(ctx context.Context, booking *models.Booking, slot models.Slot, customerID string) error {
	if slot.CustomerID != customerID {
		return notYourSlotError()
	}
	if slot.IsCompleted {
		return utils.NewValidationError("slot_id", "a completed booking cannot be cancelled")
	}

	err := s.Repo.ReleaseSlot(ctx, booking.Date, slot.ID, customerID)
	if errors.Is(err, database.ErrVersionConflict) {
		return notYourSlotError()
	}
	if err != nil {
		return err
	}

	s.logger().Info("slot released",
		zap.String("date", booking.Date), zap.String("slotId", slot.ID), zap.String("customerId", customerID))

	customer, err := s.Customers.GetByID(ctx, customerID)
	if err != nil || customer == nil {
		s.logger().Warn("booking released but customer lookup failed", zap.String("customerId", customerID), zap.Error(err))
		return nil
	}
	s.notifyCustomerAndAdmins(ctx, customer, cancelledMessage(booking.Date, slot), "Booking cancelled",
		fmt.Sprintf("%s %s cancelled the %s booking on %s.", customer.FirstName, customer.LastName, slot.Label(), booking.Date))
	return nil
}

// classifyReserveConflict re-reads the date after a lost race to report why.
func (s *DefaultBookingService) classifyReserveConflict(ctx context.Context, date, slotID, customerID string) error {
	fresh, err := s.Repo.GetByDate(ctx, date)
	if err != nil || fresh == nil {
		return slotTakenError()
	}
	if idx := fresh.FindSlot(slotID); idx >= 0 && fresh.Slots[idx].Booked() {
		return slotTakenError()
	}
	if holdsActiveSlot(fresh, customerID) {
		return duplicateBookingError()
	}
	return slotTakenError()
}

// holdsActiveSlot reports whether the customer has an incomplete slot on the date.
func holdsActiveSlot(b *models.Booking, customerID string) bool {
	for _, sl := range b.Slots {
		if sl.CustomerID == customerID && !sl.IsCompleted {
			return true
		}
	}
	return false
}

func slotTakenError() error {
	return utils.NewConflictError("slot_id", "slot is already booked")
}

func duplicateBookingError() error {
	return utils.NewConflictError("customer_id", "you already have a booking on this date")
}

func notYourSlotError() error {
	return utils.NewNotFoundError("slot_id", "you have no booking in this slot")
}
