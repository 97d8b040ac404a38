package transaction

import (
	"context"
	"fmt"
	"slices"
	"sort"

	"emjay/models"
	"emjay/utils"

	"golang.org/x/sync/errgroup"
)

const (
	carWashTitle  = "Car Wash"
	motoWashTitle = "Moto Wash"

	// freeWashCycle is consumed from a wash counter when a wash is redeemed.
	freeWashCycle = 10
	// FreeWashThreshold is the counter value at which the next wash can be redeemed.
	FreeWashThreshold = 9
)

var motoCountedTitles = []string{motoWashTitle, "Hand Wax", "Buff Wax"}

// AccrualLine is a DONE service resolved against the catalog for the visit's size.
type AccrualLine struct {
	ServiceID     string
	Title         string
	IsFree        bool
	Points        int
	EarningPoints int
}

type LoyaltyInput struct {
	Points      int
	WashCounts  []models.WashServiceCount // list for VehicleType
	VehicleType models.VehicleType
	VehicleSize models.VehicleSize
	Lines       []AccrualLine
}

type LoyaltyResult struct {
	Points     int
	WashCounts []models.WashServiceCount
}

// AccrueLoyalty applies earning lines before redemptions so the balance never
// dips below zero mid-visit. Points and counters floor at zero.
func AccrueLoyalty(in LoyaltyInput) LoyaltyResult {
	lines := slices.Clone(in.Lines)
	sort.SliceStable(lines, func(i, j int) bool {
		return !lines[i].IsFree && lines[j].IsFree
	})

	counts := slices.Clone(in.WashCounts)
	if len(counts) == 0 {
		counts = models.DefaultWashCounts()
	}
	idx := slices.IndexFunc(counts, func(c models.WashServiceCount) bool { return c.Size == in.VehicleSize })
	if idx < 0 {
		counts = append(counts, models.WashServiceCount{Size: in.VehicleSize})
		idx = len(counts) - 1
	}

	points := in.Points
	for _, line := range lines {
		if line.IsFree {
			points -= line.Points
		} else {
			points += line.EarningPoints
		}
		points = max(0, points)

		if delta := washDelta(in.VehicleType, line); delta != 0 {
			counts[idx].Count = max(0, counts[idx].Count+delta)
		}
	}

	return LoyaltyResult{Points: points, WashCounts: counts}
}

func washDelta(vehicle models.VehicleType, line AccrualLine) int {
	switch vehicle {
	case models.VehicleCar:
		if line.Title != carWashTitle {
			return 0
		}
		if line.IsFree {
			return -freeWashCycle
		}
		return 1
	case models.VehicleMotorcycle:
		if !slices.Contains(motoCountedTitles, line.Title) {
			return 0
		}
		if line.IsFree && line.Title == motoWashTitle {
			return -freeWashCycle
		}
		return 1
	}
	return 0
}

// resolveAccrualLines looks up every DONE service of tx concurrently. A service
// missing from the catalog, or without a price for the visit's size, is an
// integrity error.
func resolveAccrualLines(ctx context.Context, catalog CatalogLookup, tx *models.Transaction) ([]AccrualLine, error) {
	var done []models.AvailedService
	for _, svc := range tx.AvailedServices {
		if svc.Status == models.AvailedDone {
			done = append(done, svc)
		}
	}

	lines := make([]AccrualLine, len(done))
	g, gctx := errgroup.WithContext(ctx)
	for i, svc := range done {
		i, svc := i, svc
		g.Go(func() error {
			service, err := catalog.GetServiceByID(gctx, svc.ServiceID)
			if err != nil {
				return fmt.Errorf("resolve service %s: %w", svc.ServiceID, err)
			}
			if service == nil {
				return utils.NewIntegrityError("service_id",
					fmt.Sprintf("service %s of availed service %s no longer exists", svc.ServiceID, svc.ID), nil)
			}
			entry, ok := service.PriceFor(tx.VehicleSize)
			if !ok {
				return utils.NewIntegrityError("service_id",
					fmt.Sprintf("service %s has no price for size %s", svc.ServiceID, tx.VehicleSize), nil)
			}
			lines[i] = AccrualLine{
				ServiceID:     svc.ServiceID,
				Title:         service.Title,
				IsFree:        svc.IsFree,
				Points:        entry.Points,
				EarningPoints: entry.EarningPoints,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return lines, nil
}

// washCountsFor returns the counter list matching the vehicle type.
func washCountsFor(c *models.Customer, vehicle models.VehicleType) []models.WashServiceCount {
	if vehicle == models.VehicleMotorcycle {
		return c.MotoWashServiceCount
	}
	return c.CarWashServiceCount
}

// eligibleCounts keeps the counters that have reached FreeWashThreshold.
func eligibleCounts(counts []models.WashServiceCount) []models.WashServiceCount {
	out := []models.WashServiceCount{}
	for _, c := range counts {
		if c.Count >= FreeWashThreshold {
			out = append(out, c)
		}
	}
	return out
}
