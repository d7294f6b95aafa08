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
	"testing"

	"github.com/SnellerInc/qcheck/expr"
)

func leaves() []expr.Node {
	return []expr.Node{
		expr.Integer(1),
		expr.Float(1.5),
		expr.String("x"),
		expr.Bool(true),
		expr.Null{},
		expr.Ident("col"),
	}
}

func TestMatchersOnLeaves(t *testing.T) {
	for _, n := range leaves() {
		if FunByName("abs")(n) {
			t.Errorf("%T matches a function?", n)
		}
		if OpByPattern("$ + $")(n) {
			t.Errorf("%T matches an operator?", n)
		}
		if !OnlyPlainArgs(n) {
			t.Errorf("%T has non-plain arguments?", n)
		}
		if Nested(n) {
			t.Errorf("%T is nested?", n)
		}
	}
}

func TestFunByName(t *testing.T) {
	abs := expr.Call("abs", expr.Integer(-1))
	if !FunByName("abs")(abs) {
		t.Errorf("ABS(-1) does not match abs")
	}
	if FunByName("round")(abs) {
		t.Errorf("ABS(-1) matches round")
	}
	// the comparison is exact against the stored
	// lower-case name; callers must normalize
	if FunByName("ABS")(abs) {
		t.Errorf("mixed-case name matched")
	}
	// an operator application never matches a
	// function name, even an identically-spelled one
	plus := expr.OpCall("$ + $", expr.Integer(1), expr.Integer(2))
	if FunByName("$ + $")(plus) {
		t.Errorf("operator node matched by function name")
	}
}

func TestOpByPattern(t *testing.T) {
	plus := expr.OpCall("$ + $", expr.Integer(1), expr.Integer(2))
	if !OpByPattern("$ + $")(plus) {
		t.Errorf("1 + 2 does not match its pattern")
	}
	if OpByPattern("$ - $")(plus) {
		t.Errorf("1 + 2 matches subtraction")
	}
	abs := expr.Call("abs", expr.Integer(-1))
	if OpByPattern("abs")(abs) {
		t.Errorf("function node matched by operator pattern")
	}
}

func TestCombinators(t *testing.T) {
	yes := Matcher(func(expr.Node) bool { return true })
	no := Matcher(func(expr.Node) bool { return false })
	n := expr.Integer(0)

	testcases := []struct {
		x, y    Matcher
		wantOr  bool
		wantAnd bool
	}{
		{no, no, false, false},
		{no, yes, true, false},
		{yes, no, true, false},
		{yes, yes, true, true},
	}
	for i := range testcases {
		tc := &testcases[i]
		if got := Or(tc.x, tc.y)(n); got != tc.wantOr {
			t.Errorf("case %d: Or = %v, want %v", i, got, tc.wantOr)
		}
		if got := And(tc.x, tc.y)(n); got != tc.wantAnd {
			t.Errorf("case %d: And = %v, want %v", i, got, tc.wantAnd)
		}
	}
}

func TestPlainVersusNested(t *testing.T) {
	testcases := []struct {
		in    expr.Node
		plain bool
	}{
		{
			expr.Call("round", expr.Float(1.5)),
			true,
		},
		{
			expr.Call("greatest", expr.Integer(1), expr.Ident("x")),
			true,
		},
		{
			expr.Call("round", expr.Call("abs", expr.Float(-1.5))),
			false,
		},
		{
			// one composite argument is enough
			expr.Call("greatest", expr.Integer(1), expr.Call("abs", expr.Integer(-1))),
			false,
		},
		{
			expr.OpCall("$ + $", expr.Ident("x"), expr.OpCall("$ * $", expr.Ident("y"), expr.Ident("z"))),
			false,
		},
		{
			// zero-argument invocations are plain
			expr.Call("pi"),
			true,
		},
	}
	for i := range testcases {
		tc := &testcases[i]
		if got := OnlyPlainArgs(tc.in); got != tc.plain {
			t.Errorf("case %d: OnlyPlainArgs(%s) = %v", i, expr.ToString(tc.in), got)
		}
		if got := Nested(tc.in); got != !tc.plain {
			t.Errorf("case %d: Nested(%s) = %v", i, expr.ToString(tc.in), got)
		}
	}
}

func TestShallowness(t *testing.T) {
	// abs(x) is composite but its own arguments are
	// all leaves; wrapping it one level up flips the
	// classification of the wrapper only
	inner := expr.Call("abs", expr.Ident("x"))
	outer := expr.Call("round", inner)
	if !OnlyPlainArgs(inner) {
		t.Errorf("ABS(x) classified as nested")
	}
	if OnlyPlainArgs(outer) {
		t.Errorf("ROUND(ABS(x)) classified as plain")
	}
}

func TestInvokedOnlyWithPlainArgs(t *testing.T) {
	// one plain and one nested ROUND invocation
	q := expr.NewQuery("input",
		expr.Call("round", expr.Float(1.5)),
		expr.Call("round", expr.Call("abs", expr.Float(-1.5))),
	)
	if InvokedOnlyWithPlainArgs(q, "round") {
		t.Errorf("nested ROUND invocation not found")
	}

	// the nested invocation may hide below an
	// unrelated expression
	q = expr.NewQuery("input",
		expr.Call("abs", expr.Call("round", expr.Call("abs", expr.Float(-1.5)))),
	)
	if InvokedOnlyWithPlainArgs(q, "round") {
		t.Errorf("deeply nested ROUND invocation not found")
	}

	// only plain invocations
	q = expr.NewQuery("input", expr.Call("round", expr.Float(1.5)))
	if !InvokedOnlyWithPlainArgs(q, "round") {
		t.Errorf("plain ROUND invocation flagged as nested")
	}

	// ABS is invoked with nested arguments, but
	// ROUND is not invoked at all: vacuously true,
	// absence of the function means absence of a
	// counter-example
	q = expr.NewQuery("input",
		expr.Call("abs", expr.Call("ceil", expr.Float(1.5))),
	)
	if !InvokedOnlyWithPlainArgs(q, "round") {
		t.Errorf("absent function not treated as vacuous truth")
	}
}
