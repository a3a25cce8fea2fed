package aggregation

import (
	"time"

	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// ReportPeriod is the look-back window of a report.
type ReportPeriod string

const (
	ReportPeriodMonthly   ReportPeriod = "monthly"
	ReportPeriodQuarterly ReportPeriod = "quarterly"
	ReportPeriodYearly    ReportPeriod = "yearly"
	ReportPeriodCustom    ReportPeriod = "custom"
)

// PeriodRange returns the date range ending today that a report period covers.
func PeriodRange(period ReportPeriod, now time.Time) (entity.DateRange, error) {
	end := entity.DateOf(now)

	var start time.Time
	switch period {
	case ReportPeriodMonthly:
		start = end.AddDate(0, -1, 0)
	case ReportPeriodQuarterly:
		start = end.AddDate(0, -3, 0)
	case ReportPeriodYearly:
		start = end.AddDate(-1, 0, 0)
	default:
		return entity.DateRange{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidReportPeriod,
			"period must be: monthly, quarterly, or yearly",
			domainerror.ErrInvalidReportPeriod,
		)
	}

	return entity.DateRange{Start: start, End: end}, nil
}

// FilterByDateRange keeps the transactions whose date lies in the range, both ends included.
func FilterByDateRange(transactions []*entity.Transaction, dateRange entity.DateRange) []*entity.Transaction {
	filtered := make([]*entity.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if dateRange.Contains(tx.Date) {
			filtered = append(filtered, tx)
		}
	}
	return filtered
}
