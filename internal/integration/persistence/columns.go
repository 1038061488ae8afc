package persistence

import (
	"fmt"
	"strings"

	domainerror "github.com/agency-crm/backend/internal/domain/error"
)

// columnSet is an allow-list of columns a caller may name in a dynamic update or filter.
type columnSet map[string]struct{}

func newColumnSet(columns ...string) columnSet {
	set := make(columnSet, len(columns))
	for _, c := range columns {
		set[c] = struct{}{}
	}
	return set
}

// pick returns fields unchanged when every one of them is allowed.
func (s columnSet) pick(fields []string) ([]string, error) {
	picked := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, ok := s[f]; !ok {
			return nil, fmt.Errorf("column %q is not updatable: %w", f, domainerror.ErrInvalidUpdateColumn)
		}
		picked = append(picked, f)
	}
	return picked, nil
}

// whereClause accumulates parameterized predicates for raw SQL. Column names only ever
// come from string literals in this package, values always travel as bind arguments.
type whereClause struct {
	conditions []string
	args       []interface{}
}

func (w *whereClause) add(condition string, args ...interface{}) {
	w.conditions = append(w.conditions, condition)
	w.args = append(w.args, args...)
}

// String renders " WHERE a AND b", or an empty string when there are no predicates.
func (w *whereClause) String() string {
	if len(w.conditions) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.conditions, " AND ")
}
