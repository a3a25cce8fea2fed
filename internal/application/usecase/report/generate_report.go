// Package report contains reporting and dashboard use cases.
package report

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/organized-life/backend/internal/application/adapter"
	"github.com/organized-life/backend/internal/domain/aggregation"
	"github.com/organized-life/backend/internal/domain/entity"
	domainerror "github.com/organized-life/backend/internal/domain/error"
)

// GenerateReportInput represents the input for generating a report.
// An explicit date range takes precedence over Period.
type GenerateReportInput struct {
	UserID    uuid.UUID
	Period    string // monthly, quarterly or yearly; defaults to monthly
	StartDate string // YYYY-MM-DD
	EndDate   string // YYYY-MM-DD
}

// GenerateReportOutput represents the output of generating a report.
type GenerateReportOutput struct {
	Report aggregation.Report
}

// GenerateReportUseCase builds the income and expense report of a period.
type GenerateReportUseCase struct {
	transactionRepo adapter.TransactionRepository
	categoryRepo    adapter.CategoryRepository
	clock           adapter.Clock
}

// NewGenerateReportUseCase creates a new GenerateReportUseCase instance.
func NewGenerateReportUseCase(
	transactionRepo adapter.TransactionRepository,
	categoryRepo adapter.CategoryRepository,
	clock adapter.Clock,
) *GenerateReportUseCase {
	return &GenerateReportUseCase{
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		clock:           clock,
	}
}

// Execute generates the report.
func (uc *GenerateReportUseCase) Execute(ctx context.Context, input GenerateReportInput) (*GenerateReportOutput, error) {
	period, dateRange, err := uc.resolveRange(input)
	if err != nil {
		return nil, err
	}

	var (
		transactions []*entity.Transaction
		categories   []*entity.Category
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		transactions, err = uc.transactionRepo.FindByUser(gctx, input.UserID, &dateRange)
		if err != nil {
			return fmt.Errorf("failed to load transactions: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = uc.categoryRepo.FindByOwner(gctx, input.UserID)
		if err != nil {
			return fmt.Errorf("failed to load categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &GenerateReportOutput{
		Report: aggregation.BuildReport(transactions, aggregation.NewCategoryLookup(categories), period, dateRange),
	}, nil
}

func (uc *GenerateReportUseCase) resolveRange(input GenerateReportInput) (aggregation.ReportPeriod, entity.DateRange, error) {
	if input.StartDate == "" && input.EndDate == "" {
		period := aggregation.ReportPeriod(input.Period)
		if period == "" {
			period = aggregation.ReportPeriodMonthly
		}
		dateRange, err := aggregation.PeriodRange(period, uc.clock.Now())
		if err != nil {
			return "", entity.DateRange{}, err
		}
		return period, dateRange, nil
	}

	if input.StartDate == "" || input.EndDate == "" {
		return "", entity.DateRange{}, domainerror.NewReportError(
			domainerror.ErrCodeIncompleteDateRange,
			"both start_date and end_date are required for a custom range",
			domainerror.ErrIncompleteDateRange,
		)
	}

	start, err := parseDate(input.StartDate)
	if err != nil {
		return "", entity.DateRange{}, err
	}
	end, err := parseDate(input.EndDate)
	if err != nil {
		return "", entity.DateRange{}, err
	}

	if start.After(end) {
		return "", entity.DateRange{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateRange,
			"start_date must be before or equal to end_date",
			domainerror.ErrInvalidDateRange,
		)
	}

	return aggregation.ReportPeriodCustom, entity.DateRange{Start: start, End: end}, nil
}

func parseDate(value string) (time.Time, error) {
	t, err := time.Parse(entity.DateLayout, value)
	if err != nil {
		return time.Time{}, domainerror.NewReportError(
			domainerror.ErrCodeInvalidDateFormat,
			fmt.Sprintf("invalid date %q, expected YYYY-MM-DD", value),
			domainerror.ErrInvalidDateFormat,
		)
	}
	return t, nil
}
