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

package ignore

import (
	"github.com/SnellerInc/qcheck/expr"
)

// Verdict is the result of checking a
// query against a Filter.
type Verdict struct {
	// Suppress indicates the query should
	// not be used to report inconsistencies.
	Suppress bool
	// Rule is the name of the rule that
	// matched, when Suppress is set.
	Rule string
	// Reason is the explanation attached
	// to the matching rule.
	Reason string
}

// Keep is the verdict for queries no rule matched.
var Keep = Verdict{}

// Rule pairs a matcher with the reason
// its matches should be suppressed.
type Rule struct {
	// Name identifies the rule in verdicts
	// and in filter definition files.
	Name string
	// Reason explains why matching queries
	// are suppressed.
	Reason string
	// Match is the predicate applied to the
	// expressions of each query.
	Match Matcher
	// RootOnly restricts the rule to the root
	// expression of each clause; by default
	// the search descends into every nested
	// argument.
	RootOnly bool
}

// Filter is an ordered list of suppression rules.
// The zero value keeps every query.
type Filter struct {
	Rules []Rule
}

// Check evaluates q against each rule in
// order and returns the verdict of the
// first rule satisfied by any expression
// in q, or Keep if none is.
func (f *Filter) Check(q *expr.Query) Verdict {
	for i := range f.Rules {
		r := &f.Rules[i]
		if q.MatchesAnyExpression(r.Match, !r.RootOnly) {
			return Verdict{Suppress: true, Rule: r.Name, Reason: r.Reason}
		}
	}
	return Keep
}

// CheckNode is like Check, but evaluates a
// single expression tree rather than a
// whole query.
func (f *Filter) CheckNode(n expr.Node) Verdict {
	for i := range f.Rules {
		r := &f.Rules[i]
		hit := false
		if r.RootOnly {
			hit = r.Match(n)
		} else {
			hit = expr.Any(n, r.Match)
		}
		if hit {
			return Verdict{Suppress: true, Rule: r.Name, Reason: r.Reason}
		}
	}
	return Keep
}
