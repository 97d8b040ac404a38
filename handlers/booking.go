package handlers

import (
	"net/http"

	"emjay/models"
	"emjay/services/booking"
	"emjay/utils"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	Service booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBookingDatesHandler opens dates for booking (staff only).
func (h *BookingHandler) CreateBookingDatesHandler(c *gin.Context) {
	var req struct {
		Dates []string `json:"dates" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	created, err := h.Service.CreateBookingDates(c.Request.Context(), req.Dates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"bookings": created})
}

func (h *BookingHandler) GetBookingByDateHandler(c *gin.Context) {
	b, err := h.Service.GetBookingByDate(c.Request.Context(), c.Param("date"))
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// UpdateSlotHandler books or cancels a slot for the authenticated customer.
func (h *BookingHandler) UpdateSlotHandler(c *gin.Context) {
	customerID, ok := subject(c)
	if !ok {
		return
	}
	var req struct {
		SlotID    string               `json:"slotId" binding:"required"`
		ServiceID string               `json:"serviceId"`
		Action    models.BookingAction `json:"action" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.Service.UpdateSlot(c.Request.Context(), c.Param("date"), req.SlotID, customerID, req.ServiceID, req.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *BookingHandler) GetCustomerBookingsHandler(c *gin.Context) {
	customerID, ok := subject(c)
	if !ok {
		return
	}
	slots, err := h.Service.GetCustomerBookings(c.Request.Context(), customerID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": slots})
}

func (h *BookingHandler) GetScheduledBookingsHandler(c *gin.Context) {
	slots, err := h.Service.GetScheduledBookings(c.Request.Context())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": slots})
}

func (h *BookingHandler) UpdateScheduledBookingHandler(c *gin.Context) {
	var req struct {
		Date   string                        `json:"date" binding:"required"`
		SlotID string                        `json:"slotId" binding:"required"`
		Action models.ScheduledBookingAction `json:"action" binding:"required"`
	}
	if !bindJSON(c, &req) {
		return
	}
	res, err := h.Service.UpdateScheduledBooking(c.Request.Context(), req.Date, req.SlotID, req.Action)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
