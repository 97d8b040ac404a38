package transaction

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"emjay/database"
	"emjay/models"
)

type fakeTxRepo struct {
	mu  sync.Mutex
	txs map[string]models.Transaction
	// beforeReplace edits the stored document once, ahead of the next
	// ReplaceVersioned, to stage a concurrent writer.
	beforeReplace func(stored *models.Transaction)
}

func newFakeTxRepo(txs ...models.Transaction) *fakeTxRepo {
	r := &fakeTxRepo{txs: map[string]models.Transaction{}}
	for _, tx := range txs {
		r.txs[tx.ID] = cloneTx(tx)
	}
	return r
}

func cloneTx(tx models.Transaction) models.Transaction {
	tx.AvailedServices = slices.Clone(tx.AvailedServices)
	return tx
}

func (r *fakeTxRepo) get(id string) models.Transaction {
	r.mu.Lock()
	defer r.mu.Unlock()
	return cloneTx(r.txs[id])
}

func (r *fakeTxRepo) Create(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.txs[tx.ID] = cloneTx(*tx)
	return nil
}

func (r *fakeTxRepo) GetByID(_ context.Context, id string) (*models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tx, ok := r.txs[id]
	if !ok {
		return nil, nil
	}
	c := cloneTx(tx)
	return &c, nil
}

func (r *fakeTxRepo) ReplaceVersioned(_ context.Context, tx *models.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if hook := r.beforeReplace; hook != nil {
		r.beforeReplace = nil
		stored := cloneTx(r.txs[tx.ID])
		hook(&stored)
		r.txs[tx.ID] = stored
	}
	stored, ok := r.txs[tx.ID]
	if !ok || stored.Version != tx.Version {
		return database.ErrVersionConflict
	}
	tx.Version++
	r.txs[tx.ID] = cloneTx(*tx)
	return nil
}

func (r *fakeTxRepo) PushAvailedService(_ context.Context, txID string, expectedVersion int, svc models.AvailedService) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.txs[txID]
	if !ok || stored.Version != expectedVersion || stored.Status != models.TransactionOngoing || stored.HasService(svc.ServiceID) {
		return database.ErrVersionConflict
	}
	stored = cloneTx(stored)
	stored.AvailedServices = append(stored.AvailedServices, svc)
	stored.Version++
	r.txs[txID] = stored
	return nil
}

func (r *fakeTxRepo) List(_ context.Context, f models.TransactionFilter) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Transaction{}
	for _, tx := range r.txs {
		if f.Status == "" || tx.Status == f.Status {
			out = append(out, cloneTx(tx))
		}
	}
	return out, nil
}

func (r *fakeTxRepo) FindCompleted(_ context.Context, start, end time.Time) ([]models.Transaction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []models.Transaction{}
	for _, tx := range r.txs {
		if tx.Status == models.TransactionCompleted && inWindow(tx.CheckOut, start, end) {
			out = append(out, cloneTx(tx))
		}
	}
	return out, nil
}

type fakeCustomers struct {
	mu        sync.Mutex
	customers map[string]models.Customer
	// conflicts makes the next n UpdateLoyalty calls fail with a version conflict.
	conflicts int
	updates   int
	reverts   int
}

func newFakeCustomers(cs ...models.Customer) *fakeCustomers {
	f := &fakeCustomers{customers: map[string]models.Customer{}}
	for _, c := range cs {
		f.customers[c.ID] = c
	}
	return f
}

func (f *fakeCustomers) GetByID(_ context.Context, id string) (*models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok {
		return nil, nil
	}
	c.CarWashServiceCount = slices.Clone(c.CarWashServiceCount)
	c.MotoWashServiceCount = slices.Clone(c.MotoWashServiceCount)
	c.AccruedTransactions = slices.Clone(c.AccruedTransactions)
	return &c, nil
}

func (f *fakeCustomers) UpdateLoyalty(_ context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.conflicts > 0 {
		f.conflicts--
		return database.ErrVersionConflict
	}
	c, ok := f.customers[id]
	if !ok || c.Version != expectedVersion || c.HasAccrued(txID) {
		return database.ErrVersionConflict
	}
	setLoyalty(&c, points, vehicle, counts)
	c.AccruedTransactions = append(slices.Clone(c.AccruedTransactions), txID)
	f.customers[id] = c
	f.updates++
	return nil
}

func (f *fakeCustomers) RevertLoyalty(_ context.Context, id string, expectedVersion int, txID string, points int, vehicle models.VehicleType, counts []models.WashServiceCount) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.customers[id]
	if !ok || c.Version != expectedVersion || !c.HasAccrued(txID) {
		return database.ErrVersionConflict
	}
	setLoyalty(&c, points, vehicle, counts)
	c.AccruedTransactions = slices.DeleteFunc(slices.Clone(c.AccruedTransactions), func(s string) bool { return s == txID })
	f.customers[id] = c
	f.reverts++
	return nil
}

func setLoyalty(c *models.Customer, points int, vehicle models.VehicleType, counts []models.WashServiceCount) {
	c.Points = points
	if vehicle == models.VehicleMotorcycle {
		c.MotoWashServiceCount = slices.Clone(counts)
	} else {
		c.CarWashServiceCount = slices.Clone(counts)
	}
	c.Version++
}

type fakeExpenses struct {
	expenses []models.Expense
	// onRead runs at the start of every FindInRange call.
	onRead func()
}

func (f *fakeExpenses) FindInRange(_ context.Context, start, end time.Time) ([]models.Expense, error) {
	if f.onRead != nil {
		f.onRead()
	}
	out := []models.Expense{}
	for _, e := range f.expenses {
		if !e.Date.Before(start) && !e.Date.After(end) {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeCatalog struct {
	services map[string]models.Service
}

func newFakeCatalog(ss ...models.Service) *fakeCatalog {
	c := &fakeCatalog{services: map[string]models.Service{}}
	for _, s := range ss {
		c.services[s.ID] = s
	}
	return c
}

func (c *fakeCatalog) GetServiceByID(_ context.Context, id string) (*models.Service, error) {
	s, ok := c.services[id]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

func (c *fakeCatalog) GetServicesByIDs(_ context.Context, ids []string) ([]models.Service, error) {
	out := []models.Service{}
	for _, id := range ids {
		if s, ok := c.services[id]; ok {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeEmployees map[string]bool

func (f fakeEmployees) Exists(_ context.Context, id string) (bool, error) {
	return f[id], nil
}

// fakeStatsCache mirrors the generation keying of RedisStatsCache.
type fakeStatsCache struct {
	mu          sync.Mutex
	entries     map[string]*models.Statistics
	generation  int
	invalidated int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{entries: map[string]*models.Statistics{}}
}

func (c *fakeStatsCache) Get(_ context.Context, filter models.StatisticsFilter, end string) (*models.Statistics, string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := fmt.Sprintf("%d:%s:%s", c.generation, filter, end)
	s, ok := c.entries[key]
	return s, key, ok
}

func (c *fakeStatsCache) Set(_ context.Context, key string, stats *models.Statistics) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = stats
}

func (c *fakeStatsCache) Invalidate(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.generation++
	c.invalidated++
}

func carWashService() models.Service {
	return models.Service{
		ID:    "svc-carwash",
		Title: "Car Wash",
		Type:  models.VehicleCar,
		PriceList: []models.PriceListEntry{
			{Size: models.SizeSmall, Price: 200, Points: 9, EarningPoints: 5},
			{Size: models.SizeMedium, Price: 250, Points: 12, EarningPoints: 6},
		},
	}
}

func waxService() models.Service {
	return models.Service{
		ID:    "svc-wax",
		Title: "Full Wax",
		Type:  models.VehicleCar,
		PriceList: []models.PriceListEntry{
			{Size: models.SizeSmall, Price: 500, Points: 20, EarningPoints: 10},
		},
	}
}
