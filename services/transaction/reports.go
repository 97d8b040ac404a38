package transaction

import (
	"context"
	"time"

	"emjay/models"
	"emjay/utils"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ParseReportDate parses an optional YYYY-MM-DD date; empty means fallback.
func ParseReportDate(field, raw string, fallback time.Time) (time.Time, error) {
	if raw == "" {
		return fallback.UTC(), nil
	}
	t, err := time.Parse(utils.DateLayout, raw)
	if err != nil {
		return time.Time{}, utils.NewValidationError(field, field+" must be formatted YYYY-MM-DD")
	}
	return t, nil
}

func (s *DefaultTransactionService) GetStatistics(ctx context.Context, filter models.StatisticsFilter, end time.Time) (*models.Statistics, error) {
	start, last, err := StatisticsWindow(filter, end)
	if err != nil {
		return nil, err
	}
	var cacheKey string
	if s.Cache != nil {
		stats, key, ok := s.Cache.Get(ctx, filter, last.Format(utils.DateLayout))
		if ok {
			return stats, nil
		}
		cacheKey = key
	}

	var (
		txs      []models.Transaction
		expenses []models.Expense
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		txs, err = s.Repo.FindCompleted(gctx, start, last)
		return err
	})
	g.Go(func() error {
		var err error
		expenses, err = s.Expenses.FindInRange(gctx, start, last)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	lines, err := s.serviceLines(ctx, txs, drillDownStart(last), last)
	if err != nil {
		return nil, err
	}

	stats := &models.Statistics{
		Income:       AggregateIncome(filter, start, last, txs),
		Expenses:     AggregateExpenses(filter, start, last, expenses),
		Transactions: lines,
	}
	if s.Cache != nil {
		s.Cache.Set(ctx, cacheKey, stats)
	}
	return stats, nil
}

// GetSalesReport returns a zero-filled daily series over [start, end] and its drill-down list.
func (s *DefaultTransactionService) GetSalesReport(ctx context.Context, start, end time.Time) (*models.SalesReport, error) {
	from, to := startOfDay(start), endOfDay(end)
	if to.Before(from) {
		return nil, utils.NewValidationError("start", "start must not be after end")
	}

	txs, err := s.Repo.FindCompleted(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lines, err := s.serviceLines(ctx, txs, from, to)
	if err != nil {
		return nil, err
	}
	return &models.SalesReport{
		Sales:        AggregateIncome(models.FilterDaily, from, to, txs),
		Transactions: lines,
	}, nil
}

// GetCompletedSummary totals DONE services of completed visits, optionally
// narrowed to one customer or to services worked by exactly EmployeeIDs.
func (s *DefaultTransactionService) GetCompletedSummary(ctx context.Context, f models.CompletedFilter) (*models.CompletedSummary, error) {
	from, to := startOfDay(f.Start), endOfDay(f.End)
	if to.Before(from) {
		return nil, utils.NewValidationError("start", "start must not be after end")
	}

	txs, err := s.Repo.FindCompleted(ctx, from, to)
	if err != nil {
		return nil, err
	}
	lines, err := s.serviceLines(ctx, txs, from, to)
	if err != nil {
		return nil, err
	}

	filtered := make([]models.ServiceLine, 0, len(lines))
	for _, l := range lines {
		if f.CustomerID != "" && l.CustomerID != f.CustomerID {
			continue
		}
		if len(f.EmployeeIDs) > 0 && !sameEmployees(l.AssignedEmployeeIDs, f.EmployeeIDs) {
			continue
		}
		filtered = append(filtered, l)
	}
	summary := summarize(filtered)
	return &summary, nil
}

// serviceLines builds the drill-down list, looking titles up in one catalog query.
func (s *DefaultTransactionService) serviceLines(ctx context.Context, txs []models.Transaction, start, end time.Time) ([]models.ServiceLine, error) {
	idSet := map[string]struct{}{}
	for _, tx := range txs {
		for _, svc := range tx.AvailedServices {
			if svc.Status == models.AvailedDone {
				idSet[svc.ServiceID] = struct{}{}
			}
		}
	}

	titles := make(map[string]string, len(idSet))
	if len(idSet) > 0 {
		ids := make([]string, 0, len(idSet))
		for id := range idSet {
			ids = append(ids, id)
		}
		services, err := s.Catalog.GetServicesByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, svc := range services {
			titles[svc.ID] = svc.Title
		}
		if len(titles) < len(ids) {
			s.logger().Warn("report references services missing from the catalog",
				zap.Int("requested", len(ids)), zap.Int("found", len(titles)))
		}
	}
	return ServiceLines(txs, titles, start, end), nil
}
