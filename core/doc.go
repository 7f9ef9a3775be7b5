/* Copyright 2018-2019 Comcast Cable Communications Management, LLC
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 * http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package core provides the transition and predicate evaluation gear
// for an augmented transition network (ATN).
//
// An ATN encodes a grammar as a graph of States connected by typed
// Transitions.  Some transitions consume an input symbol.  Others are
// epsilon edges, and a few of those carry a SemanticContext that must
// hold for the edge to be taken.
//
// The primary types are Transition, SemanticContext, and Grammar.  A
// Grammar is a description of an ATN (states, rules, serialized edges,
// and predicate sources).  When a Grammar is Compiled, the compiler
// builds the ATN and turns each PredicateSource into a PredicateAction
// using an Interpreter.  A native Grammar can provide a FuncPredicate
// implemented in Go instead.
//
// Once compiled, the ATN and every SemanticContext reachable from it
// are read-only.  Any number of parses can share them.  The mutable
// state of a parse lives in its Frame stack, which the parse owns.
//
// This package does not choose among alternatives.  A prediction
// loop asks, for one Transition at a time, whether the edge is
// epsilon, whether it Matches a symbol, and whether its guard holds
// (see Traversable, Speculate, and Commit).
package core
