// Copyright 2023 Sneller, Inc.
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

package expr

import (
	"strings"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"
)

// Query is one generated test query:
// a forest of root expressions to be
// checked for output consistency.
type Query struct {
	// ID identifies the query within a
	// generation run. It is ignored when
	// comparing queries for equality.
	ID uuid.UUID

	// Table is the name of the source table.
	Table string

	// Select is the list of selected expressions.
	Select []Node

	// Where, if non-nil, restricts the selected rows.
	Where Node

	// GroupBy and OrderBy hold the grouping
	// and ordering clauses, when present.
	GroupBy []Node
	OrderBy []Node
}

// NewQuery constructs a Query with a fresh ID.
func NewQuery(table string, selected ...Node) *Query {
	return &Query{
		ID:     uuid.New(),
		Table:  table,
		Select: selected,
	}
}

// Roots returns every root expression of the
// query in clause order: the selected expressions,
// then WHERE, GROUP BY, and ORDER BY.
func (q *Query) Roots() []Node {
	roots := slices.Clone(q.Select)
	if q.Where != nil {
		roots = append(roots, q.Where)
	}
	roots = append(roots, q.GroupBy...)
	roots = append(roots, q.OrderBy...)
	return roots
}

// MatchesAnyExpression returns whether any
// expression in the query satisfies pred.
// When nested is true, the search descends
// into the arguments of every composite
// expression; otherwise only the root
// expression of each clause is tested.
// A query with no expressions matches nothing.
func (q *Query) MatchesAnyExpression(pred func(Node) bool, nested bool) bool {
	for _, root := range q.Roots() {
		if nested {
			if Any(root, pred) {
				return true
			}
		} else if pred(root) {
			return true
		}
	}
	return false
}

// Text returns the unredacted query text.
// See also: Redacted.
//
// NOTE: we aren't implementing fmt.Stringer
// here so that queries aren't unintentionally
// printed in unredacted form.
func (q *Query) Text() string {
	var dst strings.Builder
	q.text(&dst, false)
	return dst.String()
}

// Redacted returns the query text with
// every literal constant obscured.
// See also: ToRedacted.
func (q *Query) Redacted() string {
	var dst strings.Builder
	q.text(&dst, true)
	return dst.String()
}

func (q *Query) text(dst *strings.Builder, redact bool) {
	dst.WriteString("SELECT ")
	if len(q.Select) == 0 {
		dst.WriteByte('*')
	}
	writeList(dst, q.Select, redact)
	if q.Table != "" {
		dst.WriteString(" FROM ")
		dst.WriteString(q.Table)
	}
	if q.Where != nil {
		dst.WriteString(" WHERE ")
		q.Where.text(dst, redact)
	}
	if len(q.GroupBy) > 0 {
		dst.WriteString(" GROUP BY ")
		writeList(dst, q.GroupBy, redact)
	}
	if len(q.OrderBy) > 0 {
		dst.WriteString(" ORDER BY ")
		writeList(dst, q.OrderBy, redact)
	}
}

func writeList(dst *strings.Builder, lst []Node, redact bool) {
	for i := range lst {
		if i != 0 {
			dst.WriteString(", ")
		}
		lst[i].text(dst, redact)
	}
}

// Equals returns true if q and other are
// syntactically equivalent queries, or
// false otherwise. The query IDs are not
// compared.
func (q *Query) Equals(other *Query) bool {
	return q.Table == other.Table &&
		slices.EqualFunc(q.Select, other.Select, Equal) &&
		Equal(q.Where, other.Where) &&
		slices.EqualFunc(q.GroupBy, other.GroupBy, Equal) &&
		slices.EqualFunc(q.OrderBy, other.OrderBy, Equal)
}
