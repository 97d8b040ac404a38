package models

import "time"

// PriceListEntry is the per-size pricing of a catalog service.
type PriceListEntry struct {
	Size          VehicleSize `bson:"size" json:"size"`
	Price         float64     `bson:"price" json:"price"`
	Points        int         `bson:"points" json:"points"`
	EarningPoints int         `bson:"earningPoints" json:"earningPoints"`
}

// Service is a catalog entry.
type Service struct {
	ID          string           `bson:"id" json:"id"`
	Title       string           `bson:"title" json:"title"`
	Type        VehicleType      `bson:"type" json:"type"`
	Description string           `bson:"description,omitempty" json:"description,omitempty"`
	Category    string           `bson:"category,omitempty" json:"category,omitempty"`
	PriceList   []PriceListEntry `bson:"priceList" json:"priceList"`
	CreatedAt   time.Time        `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time        `bson:"updatedAt" json:"updatedAt"`
}

// PriceFor returns the entry for a size tier.
func (s *Service) PriceFor(size VehicleSize) (PriceListEntry, bool) {
	for _, p := range s.PriceList {
		if p.Size == size {
			return p, true
		}
	}
	return PriceListEntry{}, false
}
