package services

import (
	"fmt"
	"time"

	"github.com/dgraph-io/ristretto"
	"gorm.io/gorm"

	apperrors "github.com/hetpatel672/BudgetWise/internal/errors"
	"github.com/hetpatel672/BudgetWise/internal/logger"
	"github.com/hetpatel672/BudgetWise/internal/models"
)

// reportService runs the grouped aggregation queries behind the summary,
// breakdown, and trend screens. Results are cached until the next
// transaction mutation; the queries are cheap but the report screens
// re-request them on every focus.
type reportService struct {
	db    *gorm.DB
	cache *ristretto.Cache
}

// NewReportService creates a new ReportServicer. If the cache cannot be
// initialized the service degrades to uncached queries.
func NewReportService(db *gorm.DB) ReportServicer {
	cache, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 1000,
		MaxCost:     100,
		BufferItems: 64,
	})
	if err != nil {
		logger.Get().Warnf("report cache disabled: %v", err)
		cache = nil
	}
	return &reportService{db: db, cache: cache}
}

// TransactionSummary aggregates total amount grouped by type within the
// inclusive date range. Types with no rows come back as zero.
func (s *reportService) TransactionSummary(start, end time.Time) (*Summary, error) {
	key := fmt.Sprintf("summary|%d|%d", start.Unix(), end.Unix())
	if cached, ok := s.cacheGet(key); ok {
		summary := cached.(Summary)
		return &summary, nil
	}

	var rows []struct {
		Type  models.TransactionType
		Total float64
	}
	err := s.db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total").
		Where("date BETWEEN ? AND ?", start, end).
		Group("type").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	summary := Summary{}
	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeIncome:
			summary.Income = row.Total
		case models.TransactionTypeExpense:
			summary.Expense = row.Total
		case models.TransactionTypeTransfer:
			summary.Transfer = row.Total
		}
	}

	s.cacheSet(key, summary)
	return &summary, nil
}

// CategoryBreakdown aggregates total amount and count grouped by category
// for one transaction type within a date range. Ordered by total descending
// with category name ascending as the deterministic tie-break.
func (s *reportService) CategoryBreakdown(txType models.TransactionType, start, end time.Time) ([]CategoryTotal, error) {
	if !txType.Valid() {
		return nil, apperrors.ErrInvalidTransactionType
	}

	key := fmt.Sprintf("breakdown|%s|%d|%d", txType, start.Unix(), end.Unix())
	if cached, ok := s.cacheGet(key); ok {
		return cached.([]CategoryTotal), nil
	}

	var rows []CategoryTotal
	err := s.db.Model(&models.Transaction{}).
		Select("category, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("type = ? AND date BETWEEN ? AND ?", txType, start, end).
		Group("category").
		Order("total DESC, category ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []CategoryTotal{}
	}

	s.cacheSet(key, rows)
	return rows, nil
}

// MonthlyTrends aggregates total amount grouped by (year-month, type) for
// the trailing N months including the current one. Ordered by month
// descending with type ascending as the deterministic tie-break.
func (s *reportService) MonthlyTrends(months int) ([]MonthlyTotal, error) {
	if months <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "months must be positive")
	}

	now := time.Now()
	key := trendsCacheKey(months, now)
	if cached, ok := s.cacheGet(key); ok {
		return cached.([]MonthlyTotal), nil
	}

	cutoff := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).
		AddDate(0, -(months - 1), 0)

	var rows []MonthlyTotal
	err := s.db.Model(&models.Transaction{}).
		Select("strftime('%Y-%m', date) AS month, type, COALESCE(SUM(amount), 0) AS total").
		Where("date >= ?", cutoff).
		Group("month, type").
		Order("month DESC, type ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if rows == nil {
		rows = []MonthlyTotal{}
	}

	s.cacheSet(key, rows)
	return rows, nil
}

// trendsCacheKey carries the current year-month so an entry cached before a
// month rollover cannot be served for the new month's window.
func trendsCacheKey(months int, now time.Time) string {
	return fmt.Sprintf("trends|%d|%s", months, now.Format("2006-01"))
}

// Invalidate drops all cached aggregations.
func (s *reportService) Invalidate() {
	if s.cache != nil {
		s.cache.Clear()
	}
}

func (s *reportService) cacheGet(key string) (interface{}, bool) {
	if s.cache == nil {
		return nil, false
	}
	return s.cache.Get(key)
}

func (s *reportService) cacheSet(key string, value interface{}) {
	if s.cache == nil {
		return
	}
	s.cache.Set(key, value, 1)
	// Set is asynchronous; Wait makes the entry visible to the next read.
	s.cache.Wait()
}
