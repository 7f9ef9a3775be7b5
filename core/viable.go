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
	"errors"
)

// Traversable reports whether the edge can be taken from the given
// Frame when the next input symbol is symbol.
//
// A Guard is traversable when its SemanticContext holds.  Any other
// epsilon edge is traversable.  A consuming edge is traversable when
// it Matches.  Verdicts are not cached: the same Guard can give
// different answers for different Frames.
func Traversable(ctx context.Context, r Recognizer, f *Frame, t Transition, symbol, minVocab, maxVocab int) (bool, error) {
	if g, is := t.(Guard); is {
		return g.SemanticContext().Eval(ctx, r, f)
	}
	if t.IsEpsilon() {
		return true, nil
	}
	return t.Matches(symbol, minVocab, maxVocab), nil
}

// Speculate is Traversable for look-ahead.
//
// A predicate error means the path isn't viable.  The error is logged
// (at debug level) and otherwise dropped.
func Speculate(ctx context.Context, r Recognizer, f *Frame, t Transition, symbol, minVocab, maxVocab int) bool {
	ok, err := Traversable(ctx, r, f, t, symbol, minVocab, maxVocab)
	if err != nil {
		log.Debugf("speculative predicate %s at %s failed: %s", t, f, err)
		return false
	}
	return ok
}

// Commit is Traversable for a parse that has committed to a path.
//
// A predicate error is returned as a *FailedPredicate at the given
// input index.  A guard that simply doesn't hold is not an error.
func Commit(ctx context.Context, r Recognizer, f *Frame, t Transition, symbol, minVocab, maxVocab, index int) (bool, error) {
	ok, err := Traversable(ctx, r, f, t, symbol, minVocab, maxVocab)
	if err != nil {
		return false, failed(t, index, err)
	}
	return ok, nil
}

// Require checks a guard the way a generated parser does before it
// enters a guarded alternative.  If the guard does not hold, the
// result is a *FailedPredicate naming the guard.
func Require(ctx context.Context, r Recognizer, f *Frame, g Guard, index int) error {
	ok, err := g.SemanticContext().Eval(ctx, r, f)
	if err != nil {
		return failed(g, index, err)
	}
	if !ok {
		return failed(g, index, nil)
	}
	return nil
}

func failed(t Transition, index int, err error) *FailedPredicate {
	fp := &FailedPredicate{
		Index: index,
		Rule:  -1,
		Pred:  -1,
		Text:  t.String(),
	}
	if pt, is := t.(*PredicateTransition); is {
		fp.Rule, fp.Pred = pt.RuleIndex, pt.PredIndex
	}
	if err != nil {
		var pe *PredicateError
		if errors.As(err, &pe) {
			err = pe.Err
		}
		fp.Err = err
	}
	return fp
}
