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

import (
	"context"
	"strconv"
)

// Frame is one rule invocation on a parse's call stack.
//
// Frames are linked to their callers and never modified after Push,
// so a parse can hand out a Frame and keep pushing.  Attrs is the one
// exception: it belongs to the parse that owns the Frame and holds
// values that context-dependent predicates can look at.
type Frame struct {
	Parent        *Frame
	RuleIndex     int
	InvokingState int

	// Precedence is the precedence argument given to this
	// invocation.  Only left-recursive rules use it.
	Precedence int

	Attrs map[string]interface{}
}

// Push returns a new Frame for an invocation made from f.
func (f *Frame) Push(ruleIndex, invokingState, precedence int) *Frame {
	return &Frame{
		Parent:        f,
		RuleIndex:     ruleIndex,
		InvokingState: invokingState,
		Precedence:    precedence,
	}
}

// Depth is the number of Frames on the stack.
func (f *Frame) Depth() int {
	n := 0
	for ; f != nil; f = f.Parent {
		n++
	}
	return n
}

// Rules returns the rule indexes on the stack, innermost first.
func (f *Frame) Rules() []int {
	acc := make([]int, 0, 8)
	for ; f != nil; f = f.Parent {
		acc = append(acc, f.RuleIndex)
	}
	return acc
}

// CurrentPrecedence is the precedence argument of the innermost
// invocation.  An empty stack has precedence 0.
func (f *Frame) CurrentPrecedence() int {
	if f == nil {
		return 0
	}
	return f.Precedence
}

func (f *Frame) String() string {
	if f == nil {
		return "[]"
	}
	s := "["
	for g := f; g != nil; g = g.Parent {
		if g != f {
			s += " "
		}
		s += strconv.Itoa(g.RuleIndex)
	}
	return s + "]"
}

// Recognizer is what evaluation needs from a running parser.
type Recognizer interface {
	// Sempred runs the user predicate for the given rule and
	// predicate index.  The Frame is nil for predicates that are
	// not context dependent.
	Sempred(ctx context.Context, f *Frame, ruleIndex, predIndex int) (bool, error)

	// Precedence returns the precedence argument of the innermost
	// left-recursive rule invocation.
	Precedence(f *Frame) int
}

// PredicateKey identifies a user predicate.
type PredicateKey struct {
	Rule int `json:"rule" yaml:"rule"`
	Pred int `json:"pred" yaml:"pred"`
}

func (k PredicateKey) String() string {
	return strconv.Itoa(k.Rule) + ":" + strconv.Itoa(k.Pred)
}

// PredicateAction is the code behind a user predicate.
type PredicateAction interface {
	Test(ctx context.Context, f *Frame) (bool, error)
}

// FuncPredicate is a PredicateAction implemented in Go.
type FuncPredicate struct {
	F func(ctx context.Context, f *Frame) (bool, error)
}

func (p *FuncPredicate) Test(ctx context.Context, f *Frame) (bool, error) {
	if p == nil || p.F == nil {
		return true, nil
	}
	return p.F(ctx, f)
}

// Predicates is a Recognizer backed by a table of PredicateActions.
//
// The precedence comes from the Frame.
type Predicates map[PredicateKey]PredicateAction

func (ps Predicates) Sempred(ctx context.Context, f *Frame, ruleIndex, predIndex int) (bool, error) {
	key := PredicateKey{Rule: ruleIndex, Pred: predIndex}
	a, have := ps[key]
	if !have {
		return false, &UnknownPredicate{Key: key}
	}
	return a.Test(ctx, f)
}

func (ps Predicates) Precedence(f *Frame) int {
	return f.CurrentPrecedence()
}
