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

// Package ignore decides which generated queries
// should be suppressed before they are checked
// for output consistency.
//
// The building blocks are Matchers: pure boolean
// predicates over a single expression node. Matchers
// compose with And and Or, and a Filter applies a
// rule list of matchers to whole queries. All of the
// functions in this package are total: a node of the
// wrong shape yields false, never an error.
package ignore

import (
	"github.com/SnellerInc/qcheck/expr"
)

// Matcher is a pure predicate over a
// single expression node.
type Matcher func(expr.Node) bool

// FunByName returns a matcher that reports
// whether a node invokes the named function.
// name must already be in lower case; the
// comparison is exact, so a mixed-case name
// silently matches nothing.
func FunByName(name string) Matcher {
	return func(n expr.Node) bool {
		a, ok := n.(*expr.Apply)
		if !ok {
			return false
		}
		fn, ok := a.Op.(expr.Function)
		return ok && fn.Name == name
	}
}

// OpByPattern returns a matcher that reports
// whether a node applies the operator with
// exactly the given symbolic pattern.
func OpByPattern(pattern string) Matcher {
	return func(n expr.Node) bool {
		a, ok := n.(*expr.Apply)
		if !ok {
			return false
		}
		op, ok := a.Op.(expr.Operator)
		return ok && op.Pattern == pattern
	}
}

// Or returns a matcher satisfied when
// either x or y is satisfied.
func Or(x, y Matcher) Matcher {
	return func(n expr.Node) bool {
		return x(n) || y(n)
	}
}

// And returns a matcher satisfied when
// both x and y are satisfied.
func And(x, y Matcher) Matcher {
	return func(n expr.Node) bool {
		return x(n) && y(n)
	}
}

// OnlyPlainArgs reports whether every
// immediate argument of n is a leaf.
// Leaf nodes have no arguments and
// therefore match vacuously. The check
// is one level deep; grandchildren are
// not examined.
func OnlyPlainArgs(n expr.Node) bool {
	if a, ok := n.(*expr.Apply); ok {
		for i := range a.Args {
			if !a.Args[i].IsLeaf() {
				return false
			}
		}
	}
	return true
}

// Nested is the negation of OnlyPlainArgs:
// it reports whether n is a composite
// expression with at least one immediate
// argument that is itself composite.
func Nested(n expr.Node) bool {
	return !OnlyPlainArgs(n)
}

// InvokedOnlyWithPlainArgs reports whether every
// invocation of the named function anywhere in q
// uses only leaf arguments. name must be in lower
// case. A query that never invokes the function
// returns true: no counter-example exists, so a
// nested-argument-specific inconsistency rule can
// be suppressed for it all the same.
func InvokedOnlyWithPlainArgs(q *expr.Query, name string) bool {
	nestedInvocation := q.MatchesAnyExpression(And(FunByName(name), Nested), true)
	return !nestedInvocation
}
