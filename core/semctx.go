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
	"strings"
)

// SemanticContext is a boolean expression that guards a Transition.
//
// A SemanticContext is built once, while the network is loaded, and
// is never modified.  Evaluation is a function of the expression, the
// Recognizer, and the Frame.  Any side effects come from user
// predicates, which should not have any.
type SemanticContext interface {
	// Eval computes the verdict.  An error from a user predicate
	// aborts the evaluation and is returned as a *PredicateError.
	Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error)

	// EvalPrecedence evaluates only the precedence predicates in
	// the expression.
	//
	// The result is None if the expression is known to hold, nil if
	// it is known to fail, and otherwise the remaining expression
	// (which might be the receiver itself).
	EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error)

	String() string
}

// Predicate is a user predicate identified by its rule and predicate
// indexes.  The code that decides the verdict is reached through
// Recognizer.Sempred.
type Predicate struct {
	RuleIndex int
	PredIndex int

	// IsCtxDependent means that the predicate refers to the
	// current rule invocation.  Other predicates are evaluated
	// without a Frame.
	IsCtxDependent bool
}

// None is the expression that always holds.
var None SemanticContext = &Predicate{RuleIndex: -1, PredIndex: -1}

func isNone(c SemanticContext) bool {
	p, is := c.(*Predicate)
	return is && p.RuleIndex == -1 && p.PredIndex == -1
}

func (p *Predicate) Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error) {
	if isNone(p) {
		return true, nil
	}
	if r == nil {
		return false, &PredicateError{Rule: p.RuleIndex, Pred: p.PredIndex, Err: NoRecognizer}
	}
	if !p.IsCtxDependent {
		f = nil
	}
	ok, err := r.Sempred(ctx, f, p.RuleIndex, p.PredIndex)
	if err != nil {
		return false, &PredicateError{Rule: p.RuleIndex, Pred: p.PredIndex, Err: err}
	}
	return ok, nil
}

func (p *Predicate) EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error) {
	return p, nil
}

func (p *Predicate) String() string {
	if isNone(p) {
		return "{true}?"
	}
	return "{" + strconv.Itoa(p.RuleIndex) + ":" + strconv.Itoa(p.PredIndex) + "}?"
}

// PrecedencePredicate holds when its Precedence is at most the
// precedence argument of the innermost left-recursive rule
// invocation.
type PrecedencePredicate struct {
	Precedence int
}

func precedenceOf(r Recognizer, f *Frame) int {
	if r == nil {
		return f.CurrentPrecedence()
	}
	return r.Precedence(f)
}

func (p *PrecedencePredicate) Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error) {
	return p.Precedence <= precedenceOf(r, f), nil
}

func (p *PrecedencePredicate) EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error) {
	if p.Precedence <= precedenceOf(r, f) {
		return None, nil
	}
	return nil, nil
}

func (p *PrecedencePredicate) String() string {
	return "{" + strconv.Itoa(p.Precedence) + ">=prec}?"
}

// AND holds when all of its operands hold.  Make one with And.
type AND struct {
	operands []SemanticContext
}

// OR holds when any of its operands holds.  Make one with Or.
type OR struct {
	operands []SemanticContext
}

// NOT holds when its operand does not.  Make one with Not.
type NOT struct {
	operand SemanticContext
}

// And combines two expressions.
//
// A nil argument or None contributes nothing.  Nested ANDs are
// flattened, duplicates are dropped, and of several precedence
// predicates only the one with the largest Precedence remains.  An
// AND with a single operand is that operand.
func And(a, b SemanticContext) SemanticContext {
	if a == nil || isNone(a) {
		return b
	}
	if b == nil || isNone(b) {
		return a
	}
	operands := reduce(a, b, true)
	if len(operands) == 1 {
		return operands[0]
	}
	return &AND{operands: operands}
}

// Or combines two expressions.
//
// A nil argument contributes nothing, and None absorbs everything.
// Nested ORs are flattened, duplicates are dropped, and of several
// precedence predicates only the one with the smallest Precedence
// remains.  An OR with a single operand is that operand.
func Or(a, b SemanticContext) SemanticContext {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	if isNone(a) || isNone(b) {
		return None
	}
	operands := reduce(a, b, false)
	if len(operands) == 1 {
		return operands[0]
	}
	return &OR{operands: operands}
}

// Not negates an expression.  Not(Not(x)) is x.
//
// Since nil is the expression known to fail, Not(nil) is None and
// Not(None) is nil.
func Not(a SemanticContext) SemanticContext {
	if a == nil {
		return None
	}
	if isNone(a) {
		return nil
	}
	if n, is := a.(*NOT); is {
		return n.operand
	}
	return &NOT{operand: a}
}

// reduce gathers the operands for an AND (conj) or an OR.
func reduce(a, b SemanticContext, conj bool) []SemanticContext {
	var (
		acc  = make([]SemanticContext, 0, 4)
		prec *PrecedencePredicate
	)

	var add func(c SemanticContext)
	add = func(c SemanticContext) {
		switch vv := c.(type) {
		case *AND:
			if conj {
				for _, o := range vv.operands {
					add(o)
				}
				return
			}
		case *OR:
			if !conj {
				for _, o := range vv.operands {
					add(o)
				}
				return
			}
		case *PrecedencePredicate:
			switch {
			case prec == nil:
				prec = vv
			case conj && prec.Precedence < vv.Precedence:
				prec = vv
			case !conj && vv.Precedence < prec.Precedence:
				prec = vv
			}
			return
		}
		for _, have := range acc {
			if Equal(have, c) {
				return
			}
		}
		acc = append(acc, c)
	}

	add(a)
	add(b)

	if prec != nil {
		acc = append(acc, prec)
	}
	return acc
}

// Operands returns a copy of the operands.
func (c *AND) Operands() []SemanticContext {
	return copyOperands(c.operands)
}

func (c *AND) Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error) {
	for _, o := range c.operands {
		ok, err := o.Eval(ctx, r, f)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (c *AND) EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error) {
	var (
		differs bool
		acc     = make([]SemanticContext, 0, len(c.operands))
	)
	for _, o := range c.operands {
		evaluated, err := o.EvalPrecedence(ctx, r, f)
		if err != nil {
			return nil, err
		}
		differs = differs || evaluated != o
		if evaluated == nil {
			// One false operand makes the whole AND false.
			return nil, nil
		}
		if !isNone(evaluated) {
			acc = append(acc, evaluated)
		}
	}
	if !differs {
		return c, nil
	}
	if len(acc) == 0 {
		return None, nil
	}
	result := acc[0]
	for _, o := range acc[1:] {
		result = And(result, o)
	}
	return result, nil
}

func (c *AND) String() string {
	return join(c.operands, "&&")
}

// Operands returns a copy of the operands.
func (c *OR) Operands() []SemanticContext {
	return copyOperands(c.operands)
}

func (c *OR) Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error) {
	for _, o := range c.operands {
		ok, err := o.Eval(ctx, r, f)
		if err != nil {
			return false, err
		}
		if ok {
			return true, nil
		}
	}
	return false, nil
}

func (c *OR) EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error) {
	var (
		differs bool
		acc     = make([]SemanticContext, 0, len(c.operands))
	)
	for _, o := range c.operands {
		evaluated, err := o.EvalPrecedence(ctx, r, f)
		if err != nil {
			return nil, err
		}
		differs = differs || evaluated != o
		if isNone(evaluated) {
			return None, nil
		}
		if evaluated != nil {
			acc = append(acc, evaluated)
		}
	}
	if !differs {
		return c, nil
	}
	if len(acc) == 0 {
		return nil, nil
	}
	result := acc[0]
	for _, o := range acc[1:] {
		result = Or(result, o)
	}
	return result, nil
}

func (c *OR) String() string {
	return join(c.operands, "||")
}

// Operand returns the negated expression.
func (c *NOT) Operand() SemanticContext {
	return c.operand
}

func (c *NOT) Eval(ctx context.Context, r Recognizer, f *Frame) (bool, error) {
	ok, err := c.operand.Eval(ctx, r, f)
	if err != nil {
		return false, err
	}
	return !ok, nil
}

func (c *NOT) EvalPrecedence(ctx context.Context, r Recognizer, f *Frame) (SemanticContext, error) {
	evaluated, err := c.operand.EvalPrecedence(ctx, r, f)
	if err != nil {
		return nil, err
	}
	switch {
	case evaluated == c.operand:
		return c, nil
	case evaluated == nil:
		return None, nil
	case isNone(evaluated):
		return nil, nil
	}
	return Not(evaluated), nil
}

func (c *NOT) String() string {
	switch c.operand.(type) {
	case *AND, *OR:
		return "!(" + c.operand.String() + ")"
	}
	return "!" + c.operand.String()
}

// Equal reports whether two expressions have the same structure.
// Operand order does not matter.
func Equal(a, b SemanticContext) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	switch x := a.(type) {
	case *Predicate:
		y, is := b.(*Predicate)
		return is && *x == *y
	case *PrecedencePredicate:
		y, is := b.(*PrecedencePredicate)
		return is && x.Precedence == y.Precedence
	case *AND:
		y, is := b.(*AND)
		return is && sameOperands(x.operands, y.operands)
	case *OR:
		y, is := b.(*OR)
		return is && sameOperands(x.operands, y.operands)
	case *NOT:
		y, is := b.(*NOT)
		return is && Equal(x.operand, y.operand)
	}
	return a == b
}

func sameOperands(xs, ys []SemanticContext) bool {
	if len(xs) != len(ys) {
		return false
	}
	for _, x := range xs {
		found := false
		for _, y := range ys {
			if Equal(x, y) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func copyOperands(cs []SemanticContext) []SemanticContext {
	acc := make([]SemanticContext, len(cs))
	copy(acc, cs)
	return acc
}

func join(cs []SemanticContext, op string) string {
	parts := make([]string, len(cs))
	for i, c := range cs {
		switch c.(type) {
		case *AND, *OR:
			parts[i] = "(" + c.String() + ")"
		default:
			parts[i] = c.String()
		}
	}
	return strings.Join(parts, op)
}
