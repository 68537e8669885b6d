package store

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/leaseflow/leaseflow/internal/types"
)

// applyQueryFilter translates the shared pagination/ordering parameters into
// the gorm query. Sort columns come from the structured filter, never from
// raw caller strings concatenated into SQL.
func applyQueryFilter(query *gorm.DB, f *types.QueryFilter) *gorm.DB {
	if f == nil {
		f = types.NewDefaultQueryFilter()
	}
	if limit := f.GetLimit(); limit > 0 {
		query = query.Limit(limit)
	}
	if offset := f.GetOffset(); offset > 0 {
		query = query.Offset(offset)
	}
	sort := sanitizeSortColumn(f.GetSort())
	return query.Order(fmt.Sprintf("%s %s", sort, f.GetOrder()))
}

// sanitizeSortColumn restricts ordering to known audit/date columns
func sanitizeSortColumn(col string) string {
	switch col {
	case "created_at", "updated_at", "due_date", "charge_date", "start_date", "end_date", "next_due":
		return col
	default:
		return "created_at"
	}
}
