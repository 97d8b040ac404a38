package booking

import (
	"context"
	"errors"
	"slices"
	"sync"

	"emjay/database"
	"emjay/models"
)

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings map[string]models.Booking
	// beforeReserve runs inside ReserveSlot ahead of the guard check and
	// lets a test simulate a concurrent writer.
	beforeReserve func(r *fakeBookingRepo)
}

func newFakeBookingRepo(bookings ...models.Booking) *fakeBookingRepo {
	r := &fakeBookingRepo{bookings: map[string]models.Booking{}}
	for _, b := range bookings {
		r.bookings[b.Date] = cloneBooking(b)
	}
	return r
}

func cloneBooking(b models.Booking) models.Booking {
	b.Slots = slices.Clone(b.Slots)
	return b
}

func (r *fakeBookingRepo) slot(date, slotID string) models.Slot {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[date]
	return b.Slots[b.FindSlot(slotID)]
}

// setSlot writes without locking; callers hold r.mu or run from beforeReserve.
func (r *fakeBookingRepo) setSlot(date string, slot models.Slot) {
	b := cloneBooking(r.bookings[date])
	b.Slots[b.FindSlot(slot.ID)] = slot
	r.bookings[date] = b
}

func (r *fakeBookingRepo) GetByDate(_ context.Context, date string) (*models.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[date]
	if !ok {
		return nil, nil
	}
	c := cloneBooking(b)
	return &c, nil
}

func (r *fakeBookingRepo) Create(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bookings[b.Date]; ok {
		return database.ErrDuplicate
	}
	r.bookings[b.Date] = cloneBooking(*b)
	return nil
}

func (r *fakeBookingRepo) ReserveSlot(_ context.Context, date, slotID, customerID, serviceID string, distance float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.beforeReserve != nil {
		r.beforeReserve(r)
	}
	b, ok := r.bookings[date]
	if !ok {
		return database.ErrVersionConflict
	}
	idx := b.FindSlot(slotID)
	if idx < 0 || b.Slots[idx].Booked() || holdsActiveSlot(&b, customerID) {
		return database.ErrVersionConflict
	}
	slot := b.Slots[idx]
	slot.CustomerID, slot.ServiceID, slot.Distance = customerID, serviceID, distance
	r.setSlot(date, slot)
	return nil
}

func (r *fakeBookingRepo) ReleaseSlot(_ context.Context, date, slotID, customerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.bookings[date]
	if !ok {
		return database.ErrVersionConflict
	}
	idx := b.FindSlot(slotID)
	if idx < 0 || b.Slots[idx].CustomerID != customerID {
		return database.ErrVersionConflict
	}
	slot := b.Slots[idx]
	slot.CustomerID, slot.ServiceID, slot.Distance = "", "", 0
	r.setSlot(date, slot)
	return nil
}

func (r *fakeBookingRepo) CompleteSlot(_ context.Context, date, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[date]
	idx := b.FindSlot(slotID)
	if idx < 0 || !b.Slots[idx].Booked() {
		return database.ErrVersionConflict
	}
	slot := b.Slots[idx]
	slot.IsCompleted = true
	r.setSlot(date, slot)
	return nil
}

func (r *fakeBookingRepo) ResetSlot(_ context.Context, date, slotID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := r.bookings[date]
	idx := b.FindSlot(slotID)
	if idx < 0 || !b.Slots[idx].Booked() {
		return database.ErrVersionConflict
	}
	r.setSlot(date, models.Slot{ID: slotID, StartTime: b.Slots[idx].StartTime, EndTime: b.Slots[idx].EndTime})
	return nil
}

func (r *fakeBookingRepo) ScheduledSlots(_ context.Context, fromDate, customerID string) ([]models.ScheduledSlot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.ScheduledSlot{}
	for date, b := range r.bookings {
		if date < fromDate {
			continue
		}
		for _, sl := range b.Slots {
			if !sl.Booked() || sl.IsCompleted {
				continue
			}
			if customerID != "" && sl.CustomerID != customerID {
				continue
			}
			out = append(out, models.ScheduledSlot{Date: date, Slot: sl})
		}
	}
	slices.SortFunc(out, func(a, b models.ScheduledSlot) int {
		if a.Date != b.Date {
			if a.Date < b.Date {
				return -1
			}
			return 1
		}
		if a.StartTime < b.StartTime {
			return -1
		}
		if a.StartTime > b.StartTime {
			return 1
		}
		return 0
	})
	return out, nil
}

type fakeCustomers map[string]models.Customer

func (f fakeCustomers) GetByID(_ context.Context, id string) (*models.Customer, error) {
	c, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

type fakeCatalog map[string]models.Service

func (f fakeCatalog) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := f[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

type fakeAdmins []string

func (f fakeAdmins) AdminTokens(context.Context) ([]string, error) { return f, nil }

type recordedMessage struct {
	CustomerID string
	Text       string
	From       models.ChatReference
}

type fakeMessageLog struct {
	mu            sync.Mutex
	messages      []recordedMessage
	conversations map[string]int
	fail          bool
}

func newFakeMessageLog() *fakeMessageLog {
	return &fakeMessageLog{conversations: map[string]int{}}
}

func (f *fakeMessageLog) RecordMessage(_ context.Context, customerID, text string, from models.ChatReference) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("messages collection unavailable")
	}
	f.messages = append(f.messages, recordedMessage{customerID, text, from})
	return nil
}

func (f *fakeMessageLog) UpsertConversationSummary(_ context.Context, customerID, _ string, _ models.ChatReference, unreadDelta int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return errors.New("conversations collection unavailable")
	}
	f.conversations[customerID] += unreadDelta
	return nil
}

type fakePush struct {
	mu   sync.Mutex
	sent []models.PushNotification
	err  error
}

func (f *fakePush) Send(_ context.Context, n models.PushNotification) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, n)
	return f.err
}

func (f *fakePush) all() []models.PushNotification {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.sent)
}
