package aggregation

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/organized-life/backend/internal/domain/entity"
)

// UnknownCategoryName is shown for rows whose category can no longer be resolved.
const UnknownCategoryName = "Unknown"

// CategoryLookup resolves category metadata by ID. A nil lookup resolves nothing.
type CategoryLookup map[uuid.UUID]*entity.Category

// NewCategoryLookup indexes categories by ID.
func NewCategoryLookup(categories []*entity.Category) CategoryLookup {
	lookup := make(CategoryLookup, len(categories))
	for _, c := range categories {
		lookup[c.ID] = c
	}
	return lookup
}

// CategoryReportRow is one category's share of income or expense.
type CategoryReportRow struct {
	CategoryID       uuid.UUID
	CategoryName     string
	CategoryIcon     string
	CategoryColor    string
	TotalAmount      decimal.Decimal
	TransactionCount int
	Percentage       float64
}

// CategoryBreakdown groups transactions of the given type by category and
// computes each group's share of the total. Uncategorized transactions are left
// out. Rows are ordered by total descending; equal totals keep the order in which
// their category was first seen.
func CategoryBreakdown(
	transactions []*entity.Transaction,
	kind entity.TransactionType,
	lookup CategoryLookup,
) []CategoryReportRow {
	rows := make([]CategoryReportRow, 0)
	index := make(map[uuid.UUID]int)

	for _, tx := range transactions {
		if tx.Type != kind || tx.CategoryID == nil {
			continue
		}

		i, ok := index[*tx.CategoryID]
		if !ok {
			i = len(rows)
			index[*tx.CategoryID] = i
			rows = append(rows, newCategoryRow(tx, lookup))
		}

		rows[i].TotalAmount = rows[i].TotalAmount.Add(tx.Amount)
		rows[i].TransactionCount++
	}

	total := decimal.Zero
	for _, row := range rows {
		total = total.Add(row.TotalAmount)
	}
	for i := range rows {
		rows[i].Percentage = percentage(rows[i].TotalAmount, total)
	}

	sort.SliceStable(rows, func(a, b int) bool {
		return rows[a].TotalAmount.GreaterThan(rows[b].TotalAmount)
	})

	return rows
}

// newCategoryRow seeds a row with display metadata taken from the transaction's
// cached copy, then the lookup, then the unknown placeholder.
func newCategoryRow(tx *entity.Transaction, lookup CategoryLookup) CategoryReportRow {
	row := CategoryReportRow{
		CategoryID:   *tx.CategoryID,
		CategoryName: UnknownCategoryName,
		TotalAmount:  decimal.Zero,
	}

	if tx.CategoryName != nil {
		row.CategoryName = *tx.CategoryName
		if tx.CategoryIcon != nil {
			row.CategoryIcon = *tx.CategoryIcon
		}
		if tx.CategoryColor != nil {
			row.CategoryColor = *tx.CategoryColor
		}
		return row
	}

	if category, ok := lookup[*tx.CategoryID]; ok && category != nil {
		row.CategoryName = category.Name
		row.CategoryIcon = category.Icon
		row.CategoryColor = category.Color
	}

	return row
}
