package transaction

import (
	"fmt"
	"sort"
	"time"

	"emjay/models"
	"emjay/utils"

	"github.com/shopspring/decimal"
)

const (
	drillDownDays = 14
	dailyDays     = 14
	weeklyWeeks   = 4
	monthlyMonths = 6
	yearlyYears   = 4
)

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func endOfDay(t time.Time) time.Time {
	return startOfDay(t).Add(24*time.Hour - time.Millisecond)
}

// startOfWeek returns the Monday that starts t's week.
func startOfWeek(t time.Time) time.Time {
	d := startOfDay(t)
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// StatisticsWindow derives the UTC reporting window that ends on end's day.
func StatisticsWindow(filter models.StatisticsFilter, end time.Time) (time.Time, time.Time, error) {
	last := endOfDay(end)
	day := startOfDay(end)

	var start time.Time
	switch filter {
	case models.FilterDaily:
		start = day.AddDate(0, 0, -dailyDays)
	case models.FilterWeekly:
		start = startOfWeek(day).AddDate(0, 0, -7*weeklyWeeks)
	case models.FilterMonthly:
		start = time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -monthlyMonths, 0)
	case models.FilterYearly:
		start = time.Date(day.Year()-yearlyYears, time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return time.Time{}, time.Time{}, utils.NewValidationError("filter", fmt.Sprintf("invalid filter %q", filter))
	}
	return start, last, nil
}

// periodKey buckets t. Scaffold generation and grouping both go through it.
func periodKey(filter models.StatisticsFilter, t time.Time) string {
	t = t.UTC()
	switch filter {
	case models.FilterWeekly:
		return startOfWeek(t).Format(utils.DateLayout)
	case models.FilterMonthly:
		return t.Format("2006-01")
	case models.FilterYearly:
		return t.Format("2006")
	default:
		return t.Format(utils.DateLayout)
	}
}

func nextPeriod(filter models.StatisticsFilter, t time.Time) time.Time {
	switch filter {
	case models.FilterWeekly:
		return t.AddDate(0, 0, 7)
	case models.FilterMonthly:
		return t.AddDate(0, 1, 0)
	case models.FilterYearly:
		return t.AddDate(1, 0, 0)
	default:
		return t.AddDate(0, 0, 1)
	}
}

func periodStart(filter models.StatisticsFilter, t time.Time) time.Time {
	d := startOfDay(t)
	switch filter {
	case models.FilterWeekly:
		return startOfWeek(d)
	case models.FilterMonthly:
		return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
	case models.FilterYearly:
		return time.Date(d.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	default:
		return d
	}
}

// ExpectedPeriods lists every period key touching [start, end], oldest first.
func ExpectedPeriods(filter models.StatisticsFilter, start, end time.Time) []string {
	keys := []string{}
	if end.Before(start) {
		return keys
	}
	for p := periodStart(filter, start); !p.After(end); p = nextPeriod(filter, p) {
		keys = append(keys, periodKey(filter, p))
	}
	return keys
}

type incomeSums struct {
	gross, earnings, share, deduction, discount decimal.Decimal
}

func (s *incomeSums) add(svc models.AvailedService) {
	s.gross = s.gross.Add(decimal.NewFromFloat(svc.Price))
	s.earnings = s.earnings.Add(decimal.NewFromFloat(svc.CompanyEarnings))
	s.share = s.share.Add(decimal.NewFromFloat(svc.EmployeeShare))
	s.deduction = s.deduction.Add(decimal.NewFromFloat(svc.Deduction))
	s.discount = s.discount.Add(decimal.NewFromFloat(svc.Discount))
}

func inWindow(t *time.Time, start, end time.Time) bool {
	return t != nil && !t.Before(start) && !t.After(end)
}

// AggregateIncome sums the DONE services of completed visits per period and
// zero-fills periods without sales.
func AggregateIncome(filter models.StatisticsFilter, start, end time.Time, txs []models.Transaction) []models.IncomePeriod {
	keys := ExpectedPeriods(filter, start, end)
	sums := make(map[string]*incomeSums, len(keys))
	for _, k := range keys {
		sums[k] = &incomeSums{}
	}

	for _, tx := range txs {
		if tx.Status != models.TransactionCompleted || !inWindow(tx.CheckOut, start, end) {
			continue
		}
		bucket, ok := sums[periodKey(filter, *tx.CheckOut)]
		if !ok {
			continue
		}
		for _, svc := range tx.AvailedServices {
			if svc.Status == models.AvailedDone {
				bucket.add(svc)
			}
		}
	}

	out := make([]models.IncomePeriod, 0, len(keys))
	for _, k := range keys {
		s := sums[k]
		out = append(out, models.IncomePeriod{
			Period:          k,
			GrossIncome:     s.gross.InexactFloat64(),
			CompanyEarnings: s.earnings.InexactFloat64(),
			EmployeeShare:   s.share.InexactFloat64(),
			Deduction:       s.deduction.InexactFloat64(),
			Discount:        s.discount.InexactFloat64(),
		})
	}
	return out
}

// AggregateExpenses sums expense amounts per period, zero-filled.
func AggregateExpenses(filter models.StatisticsFilter, start, end time.Time, expenses []models.Expense) []models.ExpensePeriod {
	keys := ExpectedPeriods(filter, start, end)
	sums := make(map[string]decimal.Decimal, len(keys))
	for _, k := range keys {
		sums[k] = decimal.Zero
	}

	for _, e := range expenses {
		if e.Date.Before(start) || e.Date.After(end) {
			continue
		}
		k := periodKey(filter, e.Date)
		if cur, ok := sums[k]; ok {
			sums[k] = cur.Add(decimal.NewFromFloat(e.Amount))
		}
	}

	out := make([]models.ExpensePeriod, 0, len(keys))
	for _, k := range keys {
		out = append(out, models.ExpensePeriod{Period: k, Amount: sums[k].InexactFloat64()})
	}
	return out
}

// ServiceLines flattens the DONE services of completed visits checked out in
// [start, end], ordered by check-out.
func ServiceLines(txs []models.Transaction, titles map[string]string, start, end time.Time) []models.ServiceLine {
	lines := []models.ServiceLine{}
	for _, tx := range txs {
		if tx.Status != models.TransactionCompleted || !inWindow(tx.CheckOut, start, end) {
			continue
		}
		for _, svc := range tx.AvailedServices {
			if svc.Status != models.AvailedDone {
				continue
			}
			lines = append(lines, models.ServiceLine{
				TransactionID:       tx.ID,
				AvailedServiceID:    svc.ID,
				ServiceID:           svc.ServiceID,
				ServiceTitle:        titles[svc.ServiceID],
				Price:               svc.Price,
				CompanyEarnings:     svc.CompanyEarnings,
				EmployeeShare:       svc.EmployeeShare,
				Deduction:           svc.Deduction,
				Discount:            svc.Discount,
				AssignedEmployeeIDs: svc.AssignedEmployeeIDs,
				CustomerID:          tx.CustomerID,
				Date:                *tx.CheckOut,
			})
		}
	}
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Date.Before(lines[j].Date) })
	return lines
}

// drillDownStart is the first instant of the drill-down list ending at end.
func drillDownStart(end time.Time) time.Time {
	return startOfDay(end).AddDate(0, 0, -drillDownDays)
}

// summarize totals lines.
func summarize(lines []models.ServiceLine) models.CompletedSummary {
	var s incomeSums
	for _, l := range lines {
		s.add(models.AvailedService{
			Price:           l.Price,
			CompanyEarnings: l.CompanyEarnings,
			EmployeeShare:   l.EmployeeShare,
			Deduction:       l.Deduction,
			Discount:        l.Discount,
		})
	}
	return models.CompletedSummary{
		GrossIncome:     s.gross.InexactFloat64(),
		CompanyEarnings: s.earnings.InexactFloat64(),
		EmployeeShare:   s.share.InexactFloat64(),
		Deduction:       s.deduction.InexactFloat64(),
		Discount:        s.discount.InexactFloat64(),
		Count:           len(lines),
		Transactions:    lines,
	}
}

// sameEmployees reports whether a and b hold the same set of ids.
func sameEmployees(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	seen := make(map[string]int, len(a))
	for _, id := range a {
		seen[id]++
	}
	for _, id := range b {
		if seen[id] == 0 {
			return false
		}
		seen[id]--
	}
	return true
}
