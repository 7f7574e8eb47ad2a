package persistence

import (
	"gorm.io/gorm"

	"github.com/armonia/backend/internal/domain/shared"
)

// applySort orders the query by the filter's sort field after validating it
// against the model's whitelist.
func applySort(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	field := ValidateSortField(filter.OrderBy, allowed, defaultField)
	dir := ValidateSortOrder(filter.OrderDir)
	return query.Order(field + " " + dir)
}

// applyPagination applies offset/limit from the filter when both are set.
func applyPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}
	return query
}

// applyListFilter combines sorting and pagination for list queries.
func applyListFilter(query *gorm.DB, filter shared.Filter, allowed map[string]bool, defaultField string) *gorm.DB {
	return applyPagination(applySort(query, filter, allowed, defaultField), filter)
}
