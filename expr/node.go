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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/exp/slices"
)

// Node is one element of a generated
// expression tree. A Node is either a
// leaf (a literal constant or a column
// reference) or an *Apply, which holds
// an Operation and its arguments.
type Node interface {
	// IsLeaf returns whether the node
	// is a terminal with no arguments.
	IsLeaf() bool

	// Equals returns whether this node
	// is syntactically equivalent to
	// another node.
	Equals(Node) bool

	text(dst *strings.Builder, redact bool)
	walk(Visitor)
}

// Equal returns whether a and b are equivalent.
// a or b may be nil.
func Equal(a, b Node) bool {
	if a == nil {
		return b == nil
	}
	return b != nil && a.Equals(b)
}

// ToString returns the query text of the expression.
func ToString(n Node) string {
	var dst strings.Builder
	n.text(&dst, false)
	return dst.String()
}

// ToRedacted returns the query text of the
// expression with every literal constant
// obscured. See also Query.Redacted.
func ToRedacted(n Node) string {
	var dst strings.Builder
	n.text(&dst, true)
	return dst.String()
}

// Visitor is an interface that must
// be satisfied by the argument to Visit.
//
// A Visitor's Visit method is invoked for each node encountered by Walk. If
// the result visitor w is not nil, Walk visits each of the children of node
// with the visitor w, followed by a call of w.Visit(nil).
//
// (see also: ast.Visitor)
type Visitor interface {
	Visit(Node) Visitor
}

// Walk traverses an AST in depth-first order: It starts by calling
// v.Visit(node); node must not be nil. If the visitor w returned by
// v.Visit(node) is not nil, Walk is invoked recursively with visitor w for
// each of the non-nil children of node, followed by a call of w.Visit(nil).
//
// (see also: ast.Walk)
func Walk(v Visitor, n Node) {
	w := v.Visit(n)
	if w != nil {
		n.walk(w)
		w.Visit(nil)
	}
}

// WalkFunc adapts a function to the
// Visitor interface. The function's
// return value determines whether
// traversal descends into the children
// of the node it was passed.
type WalkFunc func(Node) bool

// Visit implements Visitor.Visit
func (w WalkFunc) Visit(n Node) Visitor {
	if w(n) {
		return w
	}
	return nil
}

// Any returns whether any node in the
// subtree rooted at n satisfies pred,
// including n itself. The traversal
// stops at the first match.
func Any(n Node, pred func(Node) bool) bool {
	any := false
	Walk(WalkFunc(func(x Node) bool {
		if any || x == nil {
			return false
		}
		if pred(x) {
			any = true
			return false
		}
		return true
	}), n)
	return any
}

// Apply is an expression-with-arguments:
// a single Operation applied to an ordered
// argument list. The argument list may
// contain further Apply nodes, forming an
// arbitrary-depth tree.
type Apply struct {
	// Op is the operation being applied.
	Op Operation
	// Args are the arguments, in order.
	Args []Node
}

// Call constructs a function invocation node.
// The function name is normalized to lower case.
func Call(name string, args ...Node) *Apply {
	return &Apply{Op: Fn(name), Args: args}
}

// OpCall constructs an operator application node.
// See Operator for the pattern syntax.
func OpCall(pattern string, args ...Node) *Apply {
	return &Apply{Op: Operator{Pattern: pattern}, Args: args}
}

func (a *Apply) IsLeaf() bool { return false }

func (a *Apply) Equals(e Node) bool {
	ea, ok := e.(*Apply)
	if !ok {
		return false
	}
	return a.Op.Equals(ea.Op) && slices.EqualFunc(a.Args, ea.Args, Equal)
}

func (a *Apply) text(dst *strings.Builder, redact bool) {
	a.Op.expand(dst, a.Args, redact)
}

func (a *Apply) walk(v Visitor) {
	for i := range a.Args {
		Walk(v, a.Args[i])
	}
}

// Ident is a column reference AST node
type Ident string

func (i Ident) IsLeaf() bool { return true }

func (i Ident) Equals(e Node) bool {
	id, ok := e.(Ident)
	return ok && i == id
}

func (i Ident) text(dst *strings.Builder, _ bool) {
	dst.WriteString(string(i))
}

func (i Ident) walk(v Visitor) {}

// Integer is a literal integer AST node
type Integer int64

func (i Integer) IsLeaf() bool { return true }

func (i Integer) Equals(e Node) bool {
	ei, ok := e.(Integer)
	return ok && i == ei
}

func (i Integer) text(dst *strings.Builder, redact bool) {
	v := int64(i)
	if redact {
		v = redactInt(v)
	}
	var buf [32]byte
	dst.Write(strconv.AppendInt(buf[:0], v, 10))
}

func (i Integer) walk(v Visitor) {}

// Float is a literal float AST node
type Float float64

func (f Float) IsLeaf() bool { return true }

func (f Float) Equals(e Node) bool {
	ef, ok := e.(Float)
	return ok && f == ef
}

func (f Float) text(dst *strings.Builder, redact bool) {
	v := float64(f)
	if redact {
		v = redactFloat(v)
	}
	var buf [32]byte
	dst.Write(strconv.AppendFloat(buf[:0], v, 'g', -1, 64))
}

func (f Float) walk(v Visitor) {}

// String is a literal string AST node
type String string

func (s String) IsLeaf() bool { return true }

func (s String) Equals(e Node) bool {
	es, ok := e.(String)
	return ok && s == es
}

func (s String) text(dst *strings.Builder, redact bool) {
	v := string(s)
	if redact {
		v = redactString(v)
	}
	quote(dst, v)
}

func (s String) walk(v Visitor) {}

// Bool is a literal boolean AST node
type Bool bool

func (b Bool) IsLeaf() bool { return true }

func (b Bool) Equals(e Node) bool {
	eb, ok := e.(Bool)
	return ok && b == eb
}

func (b Bool) text(dst *strings.Builder, _ bool) {
	if b {
		dst.WriteString("TRUE")
	} else {
		dst.WriteString("FALSE")
	}
}

func (b Bool) walk(v Visitor) {}

// Null is the literal NULL AST node
type Null struct{}

func (n Null) IsLeaf() bool { return true }

func (n Null) Equals(e Node) bool {
	_, ok := e.(Null)
	return ok
}

func (n Null) text(dst *strings.Builder, _ bool) {
	dst.WriteString("NULL")
}

func (n Null) walk(v Visitor) {}

// Quote produces SQL single-quoted strings;
// escape sequences are encoded using either the
// traditional ascii escapes (\n, \t, etc.)
// or extended unicode escapes (Ā, etc.) where appropriate
func Quote(s string) string {
	var buf strings.Builder
	quote(&buf, s)

	return buf.String()
}

func quote(out *strings.Builder, s string) {
	var tmp []byte
	out.WriteByte('\'')
	for _, r := range s {
		switch {
		case r == '\'' || r == '/' || r == '\\': // non-standard escaped chars
			out.WriteRune('\\')
			out.WriteRune(r)

		case (r < utf8.RuneSelf && strconv.IsPrint(r)) || r == '"':
			out.WriteRune(r)

		default:
			tmp = strconv.AppendQuoteRuneToASCII(tmp[:0], r)
			out.Write(tmp[1 : len(tmp)-1])
		}
	}
	out.WriteByte('\'')
}
