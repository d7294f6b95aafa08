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

// Package expr implements the
// AST representation of generated
// query expressions.
//
// Each of the AST node types satisfies
// the Node interface. Trees are built
// bottom-up by the generation pipeline
// and are never mutated afterwards, so
// all of the routines in this package
// are safe for concurrent use.
//
// The critical entry points for this
// package are Walk, Any, and
// Query.MatchesAnyExpression. Those
// routines allow a caller to examine
// every expression a generated query
// contains.
package expr
