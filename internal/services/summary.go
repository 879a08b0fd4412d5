package services

import (
	"context"
	"fmt"

	"moneymagic/internal/cache"
	"moneymagic/internal/core"
	"moneymagic/internal/log"
	"moneymagic/internal/storage"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// MonthlyReport is everything the dashboard renders for one month: the
// summary tables, the headline metrics and the chart aggregations.
type MonthlyReport struct {
	Summary    core.MonthlySummary
	Metrics    core.MonthlyMetrics
	ByCategory []core.CategoryAmount
}

// SummaryService materializes monthly reports from the ledger and the opening
// balances. Reports are cached per (user, month); concurrent requests for the
// same key share a single computation.
type SummaryService struct {
	storage *storage.SQLiteRepository
	reports *cache.LRU[MonthlyReport]
	group   singleflight.Group
	logger  *log.Logger
}

func NewSummaryService(storage *storage.SQLiteRepository, reports *cache.LRU[MonthlyReport], logger *log.Logger) *SummaryService {
	return &SummaryService{
		storage: storage,
		reports: reports,
		logger:  logger.WithComponent(log.ComponentSummary),
	}
}

// Monthly returns the report for a month in the given scope.
func (s *SummaryService) Monthly(ctx context.Context, month string, scope core.Scope) (MonthlyReport, error) {
	if _, ok := core.MonthOrdinal(month); !ok {
		return MonthlyReport{}, fmt.Errorf("%w: unknown month %q", core.ErrValidation, month)
	}

	key := reportKey(month, scope)
	if cached, ok := s.reports.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (any, error) {
		report, err := s.build(ctx, month, scope)
		if err != nil {
			return MonthlyReport{}, err
		}
		s.reports.Set(key, report)
		return report, nil
	})
	if err != nil {
		return MonthlyReport{}, err
	}
	return v.(MonthlyReport), nil
}

func (s *SummaryService) build(ctx context.Context, month string, scope core.Scope) (MonthlyReport, error) {
	accounts, err := s.storage.ListAccounts(ctx, scope)
	if err != nil {
		return MonthlyReport{}, err
	}
	rows, err := s.storage.FetchTransactions(ctx, core.TransactionFilter{Month: month}, scope)
	if err != nil {
		return MonthlyReport{}, err
	}

	openings := make(map[int64]decimal.Decimal, len(accounts))
	for _, a := range accounts {
		opening, err := s.storage.GetOpening(ctx, month, a.ID, scope)
		if err != nil {
			return MonthlyReport{}, err
		}
		openings[a.ID] = opening
	}

	report := MonthlyReport{
		Summary:    core.BuildMonthlySummary(month, accounts, rows, openings),
		Metrics:    core.ComputeMonthlyMetrics(rows),
		ByCategory: core.ExpensesByCategory(rows),
	}

	s.logger.DebugContext(ctx, "Monthly report built",
		log.FieldMonth, month,
		log.FieldUserID, scope.UserID,
		log.FieldAdmin, scope.Admin)
	return report, nil
}

// Invalidate drops every cached report. Called after any write that can move
// a balance: transactions, openings, account edits.
func (s *SummaryService) Invalidate() {
	s.reports.Purge()
}

func reportKey(month string, scope core.Scope) string {
	return fmt.Sprintf("%d|%t|%s", scope.UserID, scope.Admin, month)
}
