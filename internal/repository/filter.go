package repository

import (
	"fmt"
	"strings"

	appErrors "github.com/trainops/analytics-api/pkg/errors"
)

// Op enumerates the comparison operators the backing store understands.
type Op string

const (
	OpEq      Op = "eq"
	OpGte     Op = "gte"
	OpLte     Op = "lte"
	OpIsNull  Op = "is_null"
	OpNotNull Op = "not_null"
	OpLike    Op = "like"
	OpIn      Op = "in"
)

// Condition is one comparison in a conjunctive filter.
type Condition struct {
	Column string
	Op     Op
	Value  interface{}
}

// Sort orders a page query by a single column.
type Sort struct {
	Column string
	Desc   bool
}

// PageQuery describes one page request against a table.
type PageQuery struct {
	Conditions []Condition
	Sort       *Sort
	Offset     int
	Limit      int
}

// buildWhere translates a conjunction of conditions into a SQL clause with
// positional args. Column names are validated against the caller's allow
// list; anything else fails fast before the query is issued.
func buildWhere(conditions []Condition, allowed map[string]string) (string, []interface{}, error) {
	if len(conditions) == 0 {
		return "", nil, nil
	}

	var clauses []string
	var args []interface{}
	for _, cond := range conditions {
		column, ok := allowed[cond.Column]
		if !ok {
			return "", nil, appErrors.Clone(appErrors.ErrValidation, "unknown filter column: "+cond.Column)
		}
		switch cond.Op {
		case OpEq:
			args = append(args, cond.Value)
			clauses = append(clauses, fmt.Sprintf("%s = $%d", column, len(args)))
		case OpGte:
			args = append(args, cond.Value)
			clauses = append(clauses, fmt.Sprintf("%s >= $%d", column, len(args)))
		case OpLte:
			args = append(args, cond.Value)
			clauses = append(clauses, fmt.Sprintf("%s <= $%d", column, len(args)))
		case OpIsNull:
			clauses = append(clauses, fmt.Sprintf("%s IS NULL", column))
		case OpNotNull:
			clauses = append(clauses, fmt.Sprintf("%s IS NOT NULL", column))
		case OpLike:
			args = append(args, cond.Value)
			clauses = append(clauses, fmt.Sprintf("%s ILIKE $%d", column, len(args)))
		case OpIn:
			values, ok := cond.Value.([]interface{})
			if !ok || len(values) == 0 {
				return "", nil, appErrors.Clone(appErrors.ErrValidation, "in filter requires a non-empty value list")
			}
			placeholders := make([]string, len(values))
			for i, value := range values {
				args = append(args, value)
				placeholders[i] = fmt.Sprintf("$%d", len(args))
			}
			clauses = append(clauses, fmt.Sprintf("%s IN (%s)", column, strings.Join(placeholders, ", ")))
		default:
			return "", nil, appErrors.Clone(appErrors.ErrValidation, "unknown filter operator: "+string(cond.Op))
		}
	}

	return " WHERE " + strings.Join(clauses, " AND "), args, nil
}

// buildOrder resolves the sort clause against the allow list, falling back
// to the provided default.
func buildOrder(sort *Sort, allowed map[string]string, fallback string) string {
	column := fallback
	desc := false
	if sort != nil {
		if resolved, ok := allowed[sort.Column]; ok {
			column = resolved
			desc = sort.Desc
		}
	}
	if desc {
		return " ORDER BY " + column + " DESC"
	}
	return " ORDER BY " + column + " ASC"
}

func clampLimit(limit int) int {
	if limit <= 0 || limit > 1000 {
		return 1000
	}
	return limit
}
