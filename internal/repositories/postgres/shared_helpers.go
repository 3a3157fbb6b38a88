package postgres

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// applySort appends an ORDER BY clause for the given column/order pair,
// falling back to created_at DESC and allowing only known columns so filter
// input can never inject SQL.
func applySort(query *gorm.DB, sortBy, sortOrder string, allowed map[string]bool) *gorm.DB {
	column := "created_at"
	if allowed[sortBy] {
		column = sortBy
	}
	order := "DESC"
	if strings.EqualFold(sortOrder, "asc") {
		order = "ASC"
	}
	return query.Order(fmt.Sprintf("%s %s", column, order))
}

// applyPagination clamps limit to a sane window and applies offset.
func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit <= 0 || limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}
	return query.Limit(limit).Offset(offset)
}
