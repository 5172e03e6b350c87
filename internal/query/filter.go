// Package query holds the filter predicates pushed down to the store.
//
// A Filter is either empty (match everything), a column equality, or a logical OR
// of equalities. That is the whole vocabulary the list visibility rule needs.
package query

import (
	"sort"
	"strings"
)

// Condition is a single `column = value` equality.
type Condition struct {
	Column string
	Value  interface{}
}

// Filter is a disjunction of equalities. An empty Filter matches all rows.
type Filter struct {
	any []Condition
}

// All matches every record.
func All() Filter {
	return Filter{}
}

// Eq matches records whose column equals value.
func Eq(column string, value interface{}) Filter {
	return Filter{any: []Condition{{Column: column, Value: value}}}
}

// Or matches records accepted by any of the given filters. An empty operand
// already matches everything, so it makes the whole disjunction match everything.
func Or(filters ...Filter) Filter {
	var out Filter
	for _, f := range filters {
		if f.MatchesAll() {
			return All()
		}
		out.any = append(out.any, f.any...)
	}
	return out
}

// MatchesAll reports whether the filter places no restriction.
func (f Filter) MatchesAll() bool {
	return len(f.any) == 0
}

// Conditions returns a copy of the OR-ed equalities.
func (f Filter) Conditions() []Condition {
	out := make([]Condition, len(f.any))
	copy(out, f.any)
	return out
}

// SQL renders the filter as a parameterized WHERE fragment. Column names come from
// resource descriptors, never from user input.
func (f Filter) SQL() (string, []interface{}) {
	if f.MatchesAll() {
		return "", nil
	}
	parts := make([]string, 0, len(f.any))
	args := make([]interface{}, 0, len(f.any))
	for _, c := range f.any {
		parts = append(parts, c.Column+" = ?")
		args = append(args, c.Value)
	}
	return strings.Join(parts, " OR "), args
}

// String is a stable rendering used in logs and tests.
func (f Filter) String() string {
	if f.MatchesAll() {
		return "*"
	}
	parts := make([]string, 0, len(f.any))
	for _, c := range f.any {
		parts = append(parts, c.Column+"="+toString(c.Value))
	}
	sort.Strings(parts)
	return strings.Join(parts, " OR ")
}

type stringer interface{ String() string }

func toString(v interface{}) string {
	switch val := v.(type) {
	case string:
		return val
	case stringer:
		return val.String()
	default:
		return "?"
	}
}
