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

package core

// Construction errors are fatal: they come from Grammar.Compile or
// NewTransition and mean the network can't be used.  Evaluation
// errors come from user predicates.

import (
	"errors"
	"strconv"
)

var (
	// NoRecognizer occurs when a user predicate is evaluated
	// without a Recognizer.
	NoRecognizer = errors.New("no recognizer")

	// InterpreterNotFound occurs when you try to Compile a
	// PredicateSource, and the required interpreter isn't in the
	// given map of interpreters.
	InterpreterNotFound = errors.New("interpreter not found")
)

// GrammarNotCompiled occurs when a Grammar is used before it has been
// Compile()ed.
type GrammarNotCompiled struct {
	Grammar *Grammar
}

func (e *GrammarNotCompiled) Error() string {
	return `grammar "` + e.Grammar.Name + `" not compiled`
}

// UnknownState occurs when an edge refers to a state that isn't in
// the network.
type UnknownState struct {
	Number int
	// Edge is the offending edge if there is one.
	Edge *Edge
}

func (e *UnknownState) Error() string {
	msg := "state " + strconv.Itoa(e.Number) + " not found"
	if e.Edge != nil {
		msg += " (edge " + e.Edge.String() + ")"
	}
	return msg
}

// UnknownSet occurs when a set edge refers to a set that isn't in
// the network.
type UnknownSet struct {
	Index int
}

func (e *UnknownSet) Error() string {
	return "set " + strconv.Itoa(e.Index) + " not found"
}

// UnknownTransitionType occurs when an edge has a tag outside the
// TransitionType enumeration.
type UnknownTransitionType struct {
	Type TransitionType
}

func (e *UnknownTransitionType) Error() string {
	return "unknown transition type " + e.Type.String()
}

// UnknownRule occurs when a grammar refers to a rule it doesn't
// define.
type UnknownRule struct {
	Index int
}

func (e *UnknownRule) Error() string {
	return "rule " + strconv.Itoa(e.Index) + " not found"
}

// MissingPredicate occurs when a Grammar has a predicate edge but no
// code for that predicate.
type MissingPredicate struct {
	Grammar *Grammar
	Key     PredicateKey
}

func (e *MissingPredicate) Error() string {
	return `predicate ` + e.Key.String() + ` has no action in grammar "` + e.Grammar.Name + `"`
}

// UnknownPredicate occurs when a Recognizer is asked for a predicate
// it doesn't have.
type UnknownPredicate struct {
	Key PredicateKey
}

func (e *UnknownPredicate) Error() string {
	return "unknown predicate " + e.Key.String()
}

// PredicateError wraps an error returned by a user predicate.
type PredicateError struct {
	Rule int
	Pred int
	Err  error
}

func (e *PredicateError) Error() string {
	return "predicate " + strconv.Itoa(e.Rule) + ":" + strconv.Itoa(e.Pred) + ": " + e.Err.Error()
}

func (e *PredicateError) Unwrap() error {
	return e.Err
}

// FailedPredicate reports a guard that did not hold (or that
// errored) while the parse was committed to a path.
type FailedPredicate struct {
	// Index is the input position.
	Index int

	// Rule and Pred identify a user predicate.  Both are -1 for a
	// precedence predicate.
	Rule int
	Pred int

	// Text is the rendered guard, such as "4 >= _p".
	Text string

	// Err is the predicate's error, if any.
	Err error
}

func (e *FailedPredicate) Error() string {
	msg := "failed predicate {" + e.Text + "}? at " + strconv.Itoa(e.Index)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FailedPredicate) Unwrap() error {
	return e.Err
}
