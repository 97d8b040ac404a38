package transaction

import (
	"testing"
	"time"

	"emjay/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func completedAt(id string, checkOut time.Time, services ...models.AvailedService) models.Transaction {
	return models.Transaction{
		ID:              id,
		Status:          models.TransactionCompleted,
		CheckOut:        &checkOut,
		AvailedServices: services,
	}
}

func doneService(id string, price, earnings, share float64) models.AvailedService {
	return models.AvailedService{
		ID:                  id,
		ServiceID:           "svc-carwash",
		Price:               price,
		CompanyEarnings:     earnings,
		EmployeeShare:       share,
		Status:              models.AvailedDone,
		AssignedEmployeeIDs: []string{"e1"},
	}
}

func Test_StatisticsWindow(t *testing.T) {
	end := time.Date(2026, time.March, 11, 15, 0, 0, 0, time.UTC) // Wednesday

	tests := []struct {
		filter    models.StatisticsFilter
		wantStart time.Time
	}{
		{models.FilterDaily, day(2026, time.February, 25)},
		{models.FilterWeekly, day(2026, time.February, 9)},
		{models.FilterMonthly, day(2025, time.September, 1)},
		{models.FilterYearly, day(2022, time.January, 1)},
	}

	for _, tt := range tests {
		t.Run(string(tt.filter), func(t *testing.T) {
			start, last, err := StatisticsWindow(tt.filter, end)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, time.Date(2026, time.March, 11, 23, 59, 59, 999_000_000, time.UTC), last)
		})
	}

	_, _, err := StatisticsWindow("hourly", end)
	assert.Error(t, err)
}

func Test_ExpectedPeriods(t *testing.T) {
	end := endOfDay(day(2026, time.March, 11))

	assert.Len(t, ExpectedPeriods(models.FilterDaily, day(2026, time.February, 25), end), 15)
	assert.Equal(t,
		[]string{"2026-02-09", "2026-02-16", "2026-02-23", "2026-03-02", "2026-03-09"},
		ExpectedPeriods(models.FilterWeekly, day(2026, time.February, 9), end))
	assert.Equal(t,
		[]string{"2025-09", "2025-10", "2025-11", "2025-12", "2026-01", "2026-02", "2026-03"},
		ExpectedPeriods(models.FilterMonthly, day(2025, time.September, 1), end))
	assert.Equal(t,
		[]string{"2022", "2023", "2024", "2025", "2026"},
		ExpectedPeriods(models.FilterYearly, day(2022, time.January, 1), end))
}

func Test_PeriodKey_WeekStartsMonday(t *testing.T) {
	assert.Equal(t, "2026-03-09", periodKey(models.FilterWeekly, day(2026, time.March, 9)))                       // Monday
	assert.Equal(t, "2026-03-09", periodKey(models.FilterWeekly, time.Date(2026, 3, 15, 23, 0, 0, 0, time.UTC))) // Sunday
	assert.Equal(t, "2026-03-16", periodKey(models.FilterWeekly, day(2026, time.March, 16)))
}

func Test_AggregateIncome_ZeroFillsMissingDays(t *testing.T) {
	start := day(2026, time.March, 1)
	end := endOfDay(day(2026, time.March, 5))
	txs := []models.Transaction{
		completedAt("t1", day(2026, time.March, 2).Add(10*time.Hour), doneService("a1", 200, 120, 80)),
		completedAt("t2", day(2026, time.March, 4).Add(11*time.Hour),
			doneService("a2", 300, 180, 120),
			models.AvailedService{ID: "a3", Price: 999, Status: models.AvailedCancelled}),
		completedAt("t3", day(2026, time.March, 4).Add(12*time.Hour), doneService("a4", 100, 60, 40)),
	}

	got := AggregateIncome(models.FilterDaily, start, end, txs)

	require.Len(t, got, 5)
	zero := 0
	for _, p := range got {
		if p.GrossIncome == 0 && p.CompanyEarnings == 0 && p.EmployeeShare == 0 && p.Deduction == 0 && p.Discount == 0 {
			zero++
		}
	}
	assert.Equal(t, 3, zero)
	assert.Equal(t, "2026-03-02", got[1].Period)
	assert.Equal(t, 200.0, got[1].GrossIncome)
	assert.Equal(t, "2026-03-04", got[3].Period)
	assert.Equal(t, 400.0, got[3].GrossIncome, "cancelled services are excluded")
	assert.Equal(t, 240.0, got[3].CompanyEarnings)
}

func Test_AggregateIncome_IgnoresOtherStatusesAndOutOfWindow(t *testing.T) {
	start := day(2026, time.March, 1)
	end := endOfDay(day(2026, time.March, 2))
	cancelled := completedAt("c", day(2026, time.March, 1), doneService("a", 50, 30, 20))
	cancelled.Status = models.TransactionCancelled

	got := AggregateIncome(models.FilterDaily, start, end, []models.Transaction{
		cancelled,
		completedAt("late", day(2026, time.March, 3), doneService("b", 70, 42, 28)),
	})

	require.Len(t, got, 2)
	assert.Zero(t, got[0].GrossIncome)
	assert.Zero(t, got[1].GrossIncome)
}

func Test_AggregateExpenses(t *testing.T) {
	start := day(2025, time.September, 1)
	end := endOfDay(day(2026, time.March, 11))
	expenses := []models.Expense{
		{Amount: 100, Date: day(2025, time.October, 3)},
		{Amount: 50.5, Date: day(2025, time.October, 20)},
		{Amount: 75, Date: day(2026, time.March, 1)},
		{Amount: 999, Date: day(2025, time.August, 31)},
	}

	got := AggregateExpenses(models.FilterMonthly, start, end, expenses)

	require.Len(t, got, 7)
	assert.Equal(t, models.ExpensePeriod{Period: "2025-10", Amount: 150.5}, got[1])
	assert.Equal(t, models.ExpensePeriod{Period: "2026-03", Amount: 75}, got[6])
	assert.Zero(t, got[0].Amount)
}

func Test_ServiceLines_SortedByCheckOut(t *testing.T) {
	start := day(2026, time.March, 1)
	end := endOfDay(day(2026, time.March, 5))
	txs := []models.Transaction{
		completedAt("t2", day(2026, time.March, 4), doneService("a2", 300, 180, 120)),
		completedAt("t1", day(2026, time.March, 2), doneService("a1", 200, 120, 80)),
	}

	got := ServiceLines(txs, map[string]string{"svc-carwash": "Car Wash"}, start, end)

	require.Len(t, got, 2)
	assert.Equal(t, "t1", got[0].TransactionID)
	assert.Equal(t, "Car Wash", got[0].ServiceTitle)
	assert.Equal(t, "t2", got[1].TransactionID)
}

func Test_SameEmployees(t *testing.T) {
	assert.True(t, sameEmployees([]string{"a", "b"}, []string{"b", "a"}))
	assert.False(t, sameEmployees([]string{"a"}, []string{"a", "b"}))
	assert.False(t, sameEmployees([]string{"a", "a"}, []string{"a", "b"}))
}
