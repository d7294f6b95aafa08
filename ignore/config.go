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
	"fmt"
	"io"
	"io/fs"
	"strings"

	"sigs.k8s.io/yaml"
)

// RuleDef is the serialized form of one
// suppression rule. Exactly one of Function
// or Operator must be set.
type RuleDef struct {
	// Name identifies the rule in verdicts.
	Name string `json:"name"`
	// Function names a function whose invocations
	// are suppressed. It is lower-cased during
	// compilation, so definition files may use
	// any case.
	Function string `json:"function,omitempty"`
	// Operator is the exact symbolic pattern of
	// an operator whose applications are suppressed.
	Operator string `json:"operator,omitempty"`
	// OnlyNested restricts the rule to invocations
	// where at least one immediate argument is
	// itself a composite expression.
	OnlyNested bool `json:"only_nested,omitempty"`
	// RootOnly restricts the rule to the root
	// expression of each clause.
	RootOnly bool `json:"root_only,omitempty"`
	// Reason explains the suppression.
	Reason string `json:"reason,omitempty"`
}

// Compile converts a rule definition into a Rule.
func (d *RuleDef) Compile() (Rule, error) {
	if d.Name == "" {
		return Rule{}, fmt.Errorf("rule with function %q operator %q has no name", d.Function, d.Operator)
	}
	var m Matcher
	switch {
	case d.Function != "" && d.Operator != "":
		return Rule{}, fmt.Errorf("rule %q: function and operator are mutually exclusive", d.Name)
	case d.Function != "":
		m = FunByName(strings.ToLower(d.Function))
	case d.Operator != "":
		m = OpByPattern(d.Operator)
	default:
		return Rule{}, fmt.Errorf("rule %q: either function or operator must be set", d.Name)
	}
	if d.OnlyNested {
		m = And(m, Nested)
	}
	return Rule{
		Name:     d.Name,
		Reason:   d.Reason,
		Match:    m,
		RootOnly: d.RootOnly,
	}, nil
}

// DecodeFilter decodes a list of rule definitions
// from src and compiles it into a Filter.
// The definitions may be YAML or JSON.
func DecodeFilter(src io.Reader) (*Filter, error) {
	buf, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	var defs []RuleDef
	if err := yaml.Unmarshal(buf, &defs); err != nil {
		return nil, fmt.Errorf("decoding filter rules: %w", err)
	}
	f := &Filter{Rules: make([]Rule, 0, len(defs))}
	for i := range defs {
		r, err := defs[i].Compile()
		if err != nil {
			return nil, err
		}
		f.Rules = append(f.Rules, r)
	}
	return f, nil
}

// OpenFilter calls DecodeFilter on the
// named file within s.
func OpenFilter(s fs.FS, path string) (*Filter, error) {
	file, err := s.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	f, err := DecodeFilter(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
