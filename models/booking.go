package models

import "time"

type BookingAction string

const (
	BookingActionBook   BookingAction = "book"
	BookingActionCancel BookingAction = "cancel"
)

func (a BookingAction) Valid() bool {
	return a == BookingActionBook || a == BookingActionCancel
}

type ScheduledBookingAction string

const (
	ScheduledComplete ScheduledBookingAction = "complete"
	ScheduledCancel   ScheduledBookingAction = "cancel"
)

func (a ScheduledBookingAction) Valid() bool {
	return a == ScheduledComplete || a == ScheduledCancel
}

// Booking is one bookable calendar date and its fixed slots.
type Booking struct {
	ID        string    `bson:"id" json:"id"`
	Date      string    `bson:"date" json:"date"` // "YYYY-MM-DD"
	IsOpen    bool      `bson:"isOpen" json:"isOpen"`
	Slots     []Slot    `bson:"slots" json:"slots"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// Slot is booked iff CustomerID is set.
type Slot struct {
	ID          string  `bson:"id" json:"id"`
	StartTime   string  `bson:"startTime" json:"startTime"`
	EndTime     string  `bson:"endTime" json:"endTime"`
	CustomerID  string  `bson:"customerId" json:"customerId,omitempty"`
	ServiceID   string  `bson:"serviceId" json:"serviceId,omitempty"`
	Distance    float64 `bson:"distance" json:"distance,omitempty"`
	IsCompleted bool    `bson:"isCompleted" json:"isCompleted"`
}

func (s Slot) Booked() bool { return s.CustomerID != "" }

// Label formats the slot's time window.
func (s Slot) Label() string { return s.StartTime + " - " + s.EndTime }

// FindSlot returns the index of a slot by id, or -1.
func (b *Booking) FindSlot(slotID string) int {
	for i := range b.Slots {
		if b.Slots[i].ID == slotID {
			return i
		}
	}
	return -1
}

// SlotResult is returned to the caller after a booking action.
type SlotResult struct {
	Date   string `json:"date"`
	Time   string `json:"time"`
	SlotID string `json:"slotId"`
}

// ScheduledSlot is a booked slot flattened with its date.
type ScheduledSlot struct {
	Date string `bson:"date" json:"date"`
	Slot `bson:",inline"`
}
