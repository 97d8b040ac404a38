package booking

import (
	"context"
	"fmt"

	"emjay/models"

	"go.uber.org/zap"
)

const customerPushTitle = "Emjay Booking"

func bookedMessage(date string, slot models.Slot, serviceTitle string) string {
	return fmt.Sprintf("Your %s booking on %s, %s is confirmed. See you there!", serviceTitle, date, slot.Label())
}

func cancelledMessage(date string, slot models.Slot) string {
	return fmt.Sprintf("Your booking on %s, %s has been cancelled.", date, slot.Label())
}

func cancelledByShopMessage(date string, slot models.Slot) string {
	return fmt.Sprintf("We had to cancel your booking on %s, %s. Message us to pick a new schedule.", date, slot.Label())
}

func completedMessage(date string, slot models.Slot) string {
	return fmt.Sprintf("Your booking on %s, %s is done. Thank you for choosing Emjay!", date, slot.Label())
}

// notifyCustomer writes the chat message, bumps the conversation summary and
// pushes to the customer's device. Errors are logged only.
func (s *DefaultBookingService) notifyCustomer(ctx context.Context, customer *models.Customer, text string) {
	log := s.logger().With(zap.String("customerId", customer.ID))

	if s.Messages != nil {
		if err := s.Messages.RecordMessage(ctx, customer.ID, text, models.FromEmjay); err != nil {
			log.Warn("failed to record booking message", zap.Error(err))
		}
		if err := s.Messages.UpsertConversationSummary(ctx, customer.ID, text, models.FromEmjay, 1); err != nil {
			log.Warn("failed to update conversation", zap.Error(err))
		}
	}

	if s.Push == nil || customer.FCMToken == "" {
		return
	}
	err := s.Push.Send(ctx, models.PushNotification{
		Title: customerPushTitle,
		Body:  text,
		Token: customer.FCMToken,
		Data:  map[string]string{"type": "message", "id": customer.ID},
	})
	if err != nil {
		log.Warn("failed to push booking notification", zap.Error(err))
	}
}

func (s *DefaultBookingService) notifyCustomerAndAdmins(ctx context.Context, customer *models.Customer, text, adminTitle, adminBody string) {
	s.notifyCustomer(ctx, customer, text)

	if s.Push == nil || s.Admins == nil {
		return
	}
	tokens, err := s.Admins.AdminTokens(ctx)
	if err != nil {
		s.logger().Warn("failed to load admin push tokens", zap.Error(err))
		return
	}
	if len(tokens) == 0 {
		return
	}
	err = s.Push.Send(ctx, models.PushNotification{
		Title:  adminTitle,
		Body:   adminBody,
		Tokens: tokens,
		Data:   map[string]string{"type": "booking", "customerId": customer.ID},
	})
	if err != nil {
		s.logger().Warn("failed to push admin booking notification", zap.Error(err))
	}
}
