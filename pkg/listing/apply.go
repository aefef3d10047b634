package listing

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// Apply translates the parsed query into GORM clauses. Column names come from
// the resource schema, never from client input.
func (q *Query) Apply(tx *gorm.DB) *gorm.DB {
	for _, cond := range q.Conditions {
		switch cond.Op {
		case OpIn:
			tx = tx.Where(fmt.Sprintf("%s IN ?", cond.Column), cond.Values)
		case OpGt:
			tx = tx.Where(fmt.Sprintf("%s > ?", cond.Column), cond.Value)
		case OpGte:
			tx = tx.Where(fmt.Sprintf("%s >= ?", cond.Column), cond.Value)
		case OpLt:
			tx = tx.Where(fmt.Sprintf("%s < ?", cond.Column), cond.Value)
		case OpLte:
			tx = tx.Where(fmt.Sprintf("%s <= ?", cond.Column), cond.Value)
		default:
			tx = tx.Where(fmt.Sprintf("%s = ?", cond.Column), cond.Value)
		}
	}

	if q.Search != "" && len(q.searchCols) > 0 {
		clauses := make([]string, 0, len(q.searchCols))
		args := make([]any, 0, len(q.searchCols))
		pattern := "%" + strings.ToLower(q.Search) + "%"
		for _, column := range q.searchCols {
			clauses = append(clauses, fmt.Sprintf("LOWER(%s) LIKE ?", column))
			args = append(args, pattern)
		}
		tx = tx.Where(strings.Join(clauses, " OR "), args...)
	}

	for _, term := range q.Sort {
		direction := "ASC"
		if term.Desc {
			direction = "DESC"
		}
		tx = tx.Order(fmt.Sprintf("%s %s", term.Column, direction))
	}

	if len(q.Columns) > 0 {
		tx = tx.Select(q.Columns)
	}

	return tx.Offset(q.Offset()).Limit(q.Limit)
}
