package persistence

import "strings"

// ValidateSortOrder normalizes the sort direction to ASC or DESC.
// Anything unrecognized falls back to DESC.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed
// columns. Untrusted input never reaches the ORDER BY clause directly.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" || !allowedFields[trimmed] {
		return defaultField
	}
	return trimmed
}

// CommonSortFields contains columns present on every model.
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ComplexSortFields contains allowed sort fields for residential complexes
var ComplexSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"code":          true,
	"name":          true,
	"city":          true,
	"status":        true,
	"plan":          true,
	"trial_ends_at": true,
}

// PropertySortFields contains allowed sort fields for properties
var PropertySortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"number":      true,
	"type":        true,
	"area":        true,
	"coefficient": true,
	"active":      true,
}

// FeeSortFields contains allowed sort fields for fee definitions
var FeeSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"type":        true,
	"base_amount": true,
	"active":      true,
}

// BillSortFields contains allowed sort fields for bills
var BillSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"property_number":    true,
	"period_year":        true,
	"period_month":       true,
	"total_amount":       true,
	"paid_amount":        true,
	"outstanding_amount": true,
	"status":             true,
	"due_date":           true,
	"paid_at":            true,
}

// TicketSortFields contains allowed sort fields for PQR tickets
var TicketSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"number":     true,
	"title":      true,
	"type":       true,
	"priority":   true,
	"status":     true,
	"closed_at":  true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"name":          true,
	"role":          true,
	"active":        true,
	"last_login_at": true,
}
