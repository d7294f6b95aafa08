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
)

// Operation is the callable identity attached
// to an *Apply node. An Operation is either a
// Function, identified by its lower-case name,
// or an Operator, identified by its symbolic
// pattern.
type Operation interface {
	// Equals returns whether two operations
	// denote the same function or operator.
	Equals(Operation) bool

	expand(dst *strings.Builder, args []Node, redact bool)
}

// Function is a function operation.
type Function struct {
	// Name is the function name in lower case.
	// Use Fn to construct a Function from a
	// name in unknown case.
	Name string
}

// Fn constructs a Function, normalizing
// name to lower case.
func Fn(name string) Function {
	return Function{Name: strings.ToLower(name)}
}

// Equals implements Operation.Equals
func (f Function) Equals(o Operation) bool {
	of, ok := o.(Function)
	return ok && f.Name == of.Name
}

func (f Function) expand(dst *strings.Builder, args []Node, redact bool) {
	dst.WriteString(strings.ToUpper(f.Name))
	dst.WriteByte('(')
	for i := range args {
		if i != 0 {
			dst.WriteString(", ")
		}
		args[i].text(dst, redact)
	}
	dst.WriteByte(')')
}

// Operator is an operator operation.
// Each '$' in Pattern marks an argument
// position, so "$ + $" denotes infix
// addition and "NOT $" prefix negation.
type Operator struct {
	Pattern string
}

// Equals implements Operation.Equals
func (o Operator) Equals(x Operation) bool {
	ox, ok := x.(Operator)
	return ok && o.Pattern == ox.Pattern
}

func needParens(arg Node) bool {
	a, ok := arg.(*Apply)
	if !ok {
		return false
	}
	_, ok = a.Op.(Operator)
	return ok
}

func (o Operator) expand(dst *strings.Builder, args []Node, redact bool) {
	n := 0
	for i := 0; i < len(o.Pattern); i++ {
		c := o.Pattern[i]
		if c != '$' {
			dst.WriteByte(c)
			continue
		}
		if n < len(args) {
			arg := args[n]
			// parenthesize operator operands so that
			// precedence cannot rebind them; function
			// invocations are already atomic
			if needParens(arg) {
				dst.WriteByte('(')
				arg.text(dst, redact)
				dst.WriteByte(')')
			} else {
				arg.text(dst, redact)
			}
		}
		n++
	}
}
