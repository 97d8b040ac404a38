package models

import "time"

// WashServiceCount tracks progress toward a free wash for one size tier.
type WashServiceCount struct {
	Size  VehicleSize `bson:"size" json:"size"`
	Count int         `bson:"count" json:"count"`
}

// Customer holds profile fields and the loyalty balances.
type Customer struct {
	ID                   string             `bson:"id" json:"id"`
	FirstName            string             `bson:"firstName" json:"firstName"`
	LastName             string             `bson:"lastName" json:"lastName"`
	ContactNumber        string             `bson:"contactNumber" json:"contactNumber"`
	Address              string             `bson:"address,omitempty" json:"address,omitempty"`
	Distance             float64            `bson:"distance" json:"distance"`
	FCMToken             string             `bson:"fcmToken,omitempty" json:"-"`
	Points               int                `bson:"points" json:"points"`
	CarWashServiceCount  []WashServiceCount `bson:"carWashServiceCount" json:"carWashServiceCount"`
	MotoWashServiceCount []WashServiceCount `bson:"motoWashServiceCount" json:"motoWashServiceCount"`
	// AccruedTransactions lists completed transactions already credited.
	AccruedTransactions  []string           `bson:"accruedTransactions,omitempty" json:"-"`
	Version              int                `bson:"version" json:"version"`
	CreatedAt            time.Time          `bson:"createdAt" json:"createdAt"`
	UpdatedAt            time.Time          `bson:"updatedAt" json:"updatedAt"`
}

// HasAccrued reports whether the transaction has already been credited.
func (c *Customer) HasAccrued(txID string) bool {
	for _, id := range c.AccruedTransactions {
		if id == txID {
			return true
		}
	}
	return false
}

// DefaultWashCounts returns one zeroed counter per size tier.
func DefaultWashCounts() []WashServiceCount {
	counts := make([]WashServiceCount, 0, len(VehicleSizes))
	for _, s := range VehicleSizes {
		counts = append(counts, WashServiceCount{Size: s})
	}
	return counts
}

// FreeWashEligibility lists the counters that have earned a free wash.
type FreeWashEligibility struct {
	CustomerID string             `json:"customerId"`
	Points     int                `json:"points"`
	Car        []WashServiceCount `json:"car"`
	Motorcycle []WashServiceCount `json:"motorcycle"`
}
