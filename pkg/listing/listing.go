// Package listing turns list-endpoint query strings into typed, validated
// store queries: field filters with comparison operators, free-text search,
// sorting, field projection and pagination. Every resource declares a Schema
// whitelisting what clients may touch; anything outside it is a 400, never a
// raw expression handed to the database.
package listing

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	pkgerrors "github.com/salesdeskhq/salesdesk-backend/pkg/errors"
)

const (
	// DefaultLimit is the page size when a limit is not provided.
	DefaultLimit = 10
	// MaxLimit caps how many rows any list query can request.
	MaxLimit = 100
)

// Reserved query keys that never parse as field filters.
var reservedKeys = map[string]struct{}{
	"page":   {},
	"limit":  {},
	"sort":   {},
	"fields": {},
	"search": {},
}

// Operator is the closed set of supported comparison operators.
type Operator string

const (
	OpEq  Operator = "eq"
	OpGt  Operator = "gt"
	OpGte Operator = "gte"
	OpLt  Operator = "lt"
	OpLte Operator = "lte"
	OpIn  Operator = "in"
)

var validOperators = map[Operator]struct{}{
	OpGt:  {},
	OpGte: {},
	OpLt:  {},
	OpLte: {},
	OpIn:  {},
}

// Kind declares the operand type a filterable column compares against.
type Kind int

const (
	KindText Kind = iota
	KindNumber
	KindBool
	KindTime
)

// Column pairs a storage column with its declared value kind. Filter values
// are converted against the kind, never guessed from their content, so a text
// value that merely looks numeric or boolean still matches as text.
type Column struct {
	Name string
	Kind Kind
}

func Text(name string) Column   { return Column{Name: name} }
func Number(name string) Column { return Column{Name: name, Kind: KindNumber} }
func Bool(name string) Column   { return Column{Name: name, Kind: KindBool} }
func Time(name string) Column   { return Column{Name: name, Kind: KindTime} }

// Schema whitelists the fields a resource exposes to the listing pipeline.
// Map keys are the public query-string names.
type Schema struct {
	Filterable map[string]Column
	Searchable []string
	Sortable   map[string]string
	Selectable map[string]string
	// DefaultSort is applied when no sort parameter is present; newest first.
	DefaultSort SortTerm
}

// Limits overrides the package pagination bounds; zero values fall back.
type Limits struct {
	Default int
	Max     int
}

func (l Limits) defaultLimit() int {
	if l.Default > 0 {
		return l.Default
	}
	return DefaultLimit
}

func (l Limits) maxLimit() int {
	if l.Max > 0 {
		return l.Max
	}
	return MaxLimit
}

// Condition is one parsed field comparison.
type Condition struct {
	Column string
	Op     Operator
	Value  any
	Values []any
}

// SortTerm orders by one column.
type SortTerm struct {
	Column string
	Desc   bool
}

// Query is the validated output of Parse; a pure function of the input values.
type Query struct {
	Conditions []Condition
	Search     string
	searchCols []string
	Sort       []SortTerm
	Columns    []string
	Page       int
	Limit      int
}

// Offset converts the 1-indexed page into a row offset.
func (q *Query) Offset() int {
	return (q.Page - 1) * q.Limit
}

var filterKeyPattern = regexp.MustCompile(`^([a-z][a-z0-9_]*)\[([a-z]+)\]$`)

// Parse validates the raw query string against the schema. Malformed or
// non-whitelisted input surfaces as a validation error, never a panic or a
// store-level failure.
func Parse(values url.Values, schema Schema, limits Limits) (*Query, error) {
	q := &Query{
		Search:     strings.TrimSpace(values.Get("search")),
		searchCols: schema.Searchable,
	}

	page, err := parseBoundedInt(values.Get("page"), "page", 1, 1)
	if err != nil {
		return nil, err
	}
	q.Page = page

	limit, err := parseBoundedInt(values.Get("limit"), "limit", limits.defaultLimit(), 1)
	if err != nil {
		return nil, err
	}
	if max := limits.maxLimit(); limit > max {
		limit = max
	}
	q.Limit = limit

	if err := parseFilters(q, values, schema); err != nil {
		return nil, err
	}
	if err := parseSort(q, values.Get("sort"), schema); err != nil {
		return nil, err
	}
	if err := parseFields(q, values.Get("fields"), schema); err != nil {
		return nil, err
	}

	return q, nil
}

func parseFilters(q *Query, values url.Values, schema Schema) error {
	for key, raw := range values {
		if _, reserved := reservedKeys[key]; reserved {
			continue
		}
		if len(raw) == 0 {
			continue
		}
		value := raw[0]

		field, op := key, OpEq
		if matches := filterKeyPattern.FindStringSubmatch(key); matches != nil {
			field = matches[1]
			op = Operator(matches[2])
			if _, ok := validOperators[op]; !ok {
				return pkgerrors.New(pkgerrors.CodeValidation, "unsupported filter operator").
					WithDetails(map[string]any{"field": field, "operator": string(op)})
			}
		}

		column, ok := schema.Filterable[field]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown filter field").
				WithDetails(map[string]any{"field": field})
		}

		cond := Condition{Column: column.Name, Op: op}
		if op == OpIn {
			for _, part := range strings.Split(value, ",") {
				coerced, err := coerceValue(strings.TrimSpace(part), column.Kind)
				if err != nil {
					return pkgerrors.New(pkgerrors.CodeValidation, "invalid filter value").
						WithDetails(map[string]any{"field": field, "value": part})
				}
				cond.Values = append(cond.Values, coerced)
			}
		} else {
			coerced, err := coerceValue(value, column.Kind)
			if err != nil {
				return pkgerrors.New(pkgerrors.CodeValidation, "invalid filter value").
					WithDetails(map[string]any{"field": field, "value": value})
			}
			cond.Value = coerced
		}
		q.Conditions = append(q.Conditions, cond)
	}
	return nil
}

func parseSort(q *Query, raw string, schema Schema) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if schema.DefaultSort.Column != "" {
			q.Sort = []SortTerm{schema.DefaultSort}
		}
		return nil
	}

	for _, term := range strings.Split(raw, ",") {
		term = strings.TrimSpace(term)
		if term == "" {
			continue
		}
		desc := strings.HasPrefix(term, "-")
		field := strings.TrimPrefix(term, "-")
		column, ok := schema.Sortable[field]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown sort field").
				WithDetails(map[string]any{"field": field})
		}
		q.Sort = append(q.Sort, SortTerm{Column: column, Desc: desc})
	}
	return nil
}

func parseFields(q *Query, raw string, schema Schema) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		column, ok := schema.Selectable[field]
		if !ok {
			return pkgerrors.New(pkgerrors.CodeValidation, "unknown projection field").
				WithDetails(map[string]any{"field": field})
		}
		q.Columns = append(q.Columns, column)
	}
	return nil
}

func parseBoundedInt(raw, name string, defaultVal, min int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be numeric", name)).
			WithDetails(map[string]any{"field": name})
	}
	if value < min {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("%s must be at least %d", name, min)).
			WithDetails(map[string]any{"field": name})
	}
	return value, nil
}

// coerceValue converts the raw string into the operand type the column
// declares. A value that does not fit the declared kind is a client error,
// never a store-level failure.
func coerceValue(raw string, kind Kind) (any, error) {
	switch kind {
	case KindNumber:
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return v, nil
		}
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			return v, nil
		}
		return nil, fmt.Errorf("%q is not a number", raw)
	case KindBool:
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q is not a boolean", raw)
		}
		return v, nil
	case KindTime:
		if v, err := time.Parse(time.RFC3339, raw); err == nil {
			return v, nil
		}
		if v, err := time.Parse("2006-01-02", raw); err == nil {
			return v, nil
		}
		return nil, fmt.Errorf("%q is not a timestamp", raw)
	default:
		return raw, nil
	}
}
