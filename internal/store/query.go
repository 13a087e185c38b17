package store

import (
	"fmt"
	"strings"
)

const (
	defaultLimit = 50
	maxLimit     = 500
)

const baseImportJobsSelect = "SELECT " + importJobColumns + "\nFROM import_jobs"

const countImportJobsSelect = "SELECT COUNT(*) FROM import_jobs"

// ToSQL builds the WHERE clause, ORDER BY, LIMIT, and OFFSET for an import
// job listing. It returns the data query, the count query, and the
// positional parameters shared by both.
func (q *JobQuery) ToSQL() (dataSQL, countSQL string, args []any) {
	var conditions []string
	paramIdx := 1

	if q.ShopDomain != "" {
		conditions = append(conditions, fmt.Sprintf("shop_domain = $%d", paramIdx))
		args = append(args, q.ShopDomain)
		paramIdx++
	}

	if q.Status != nil {
		conditions = append(conditions, fmt.Sprintf("status = $%d", paramIdx))
		args = append(args, string(*q.Status))
	}

	var whereClause string
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	limit := q.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	offset := max(q.Offset, 0)

	dataSQL = fmt.Sprintf(
		"%s%s ORDER BY created_at DESC LIMIT %d OFFSET %d",
		baseImportJobsSelect, whereClause, limit, offset,
	)

	countSQL = countImportJobsSelect + whereClause

	return dataSQL, countSQL, args
}
