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
	"fmt"
)

// Edge is the serialized form of a Transition.
//
// The meaning of the arguments depends on Type:
//
//	EPSILON     none
//	RANGE       Arg1..Arg2; Arg3 != 0 means the range starts at EOF
//	RULE        Arg1 rule start state, Arg2 rule index, Arg3 precedence;
//	            Trg is the follow state
//	PREDICATE   Arg1 rule index, Arg2 predicate index, Arg3 != 0 if
//	            context dependent
//	ATOM        Arg1 symbol; Arg3 != 0 means EOF
//	ACTION      Arg1 rule index, Arg2 action index, Arg3 != 0 if
//	            context dependent
//	SET         Arg1 set index
//	NOT_SET     Arg1 set index
//	WILDCARD    none
//	PRECEDENCE  Arg1 precedence
//
// This layout is versioned along with TransitionType.
type Edge struct {
	Src  int            `json:"src" yaml:"src"`
	Trg  int            `json:"trg" yaml:"trg"`
	Type TransitionType `json:"type" yaml:"type"`
	Arg1 int            `json:"arg1,omitempty" yaml:"arg1,omitempty"`
	Arg2 int            `json:"arg2,omitempty" yaml:"arg2,omitempty"`
	Arg3 int            `json:"arg3,omitempty" yaml:"arg3,omitempty"`
}

func (e Edge) String() string {
	return fmt.Sprintf("%d->%d %s(%d,%d,%d)", e.Src, e.Trg, e.Type, e.Arg1, e.Arg2, e.Arg3)
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}

// NewTransition makes the Transition described by the edge.  The
// Transition is not added to its source State.
func NewTransition(a *ATN, e Edge) (Transition, error) {
	target := a.State(e.Trg)
	if target == nil {
		return nil, &UnknownState{Number: e.Trg, Edge: &e}
	}
	switch e.Type {
	case TransitionEpsilon:
		return NewEpsilonTransition(target), nil
	case TransitionRange:
		if e.Arg3 != 0 {
			return NewRangeTransition(target, TokenEOF, e.Arg2), nil
		}
		return NewRangeTransition(target, e.Arg1, e.Arg2), nil
	case TransitionRule:
		start := a.State(e.Arg1)
		if start == nil {
			return nil, &UnknownState{Number: e.Arg1, Edge: &e}
		}
		return NewRuleTransition(start, e.Arg2, e.Arg3, target), nil
	case TransitionPredicate:
		return NewPredicateTransition(target, e.Arg1, e.Arg2, e.Arg3 != 0), nil
	case TransitionAtom:
		if e.Arg3 != 0 {
			return NewAtomTransition(target, TokenEOF), nil
		}
		return NewAtomTransition(target, e.Arg1), nil
	case TransitionAction:
		return NewActionTransition(target, e.Arg1, e.Arg2, e.Arg3 != 0), nil
	case TransitionSet, TransitionNotSet:
		if e.Arg1 < 0 || len(a.Sets) <= e.Arg1 {
			return nil, &UnknownSet{Index: e.Arg1}
		}
		if e.Type == TransitionSet {
			return NewSetTransition(target, a.Sets[e.Arg1]), nil
		}
		return NewNotSetTransition(target, a.Sets[e.Arg1]), nil
	case TransitionWildcard:
		return NewWildcardTransition(target), nil
	case TransitionPrecedence:
		return NewPrecedencePredicateTransition(target, e.Arg1), nil
	default:
		return nil, &UnknownTransitionType{Type: e.Type}
	}
}

// EdgeOf is the inverse of NewTransition.  The ATN is consulted for
// set indexes.
func EdgeOf(a *ATN, src *State, t Transition) (Edge, error) {
	e := Edge{
		Src:  src.Number,
		Trg:  t.Target().Number,
		Type: t.Type(),
	}
	switch vv := t.(type) {
	case *EpsilonTransition, *WildcardTransition:
	case *RangeTransition:
		e.Arg1, e.Arg2 = vv.From, vv.To
		if vv.From == TokenEOF {
			e.Arg1, e.Arg3 = 0, 1
		}
	case *RuleTransition:
		if vv.FollowState == nil {
			return e, &UnknownState{Number: -1}
		}
		e.Trg = vv.FollowState.Number
		e.Arg1, e.Arg2, e.Arg3 = vv.Target().Number, vv.RuleIndex, vv.Precedence
	case *PredicateTransition:
		e.Arg1, e.Arg2, e.Arg3 = vv.RuleIndex, vv.PredIndex, flag(vv.IsCtxDependent)
	case *AtomTransition:
		e.Arg1 = vv.Label
		if vv.Label == TokenEOF {
			e.Arg1, e.Arg3 = 0, 1
		}
	case *ActionTransition:
		e.Arg1, e.Arg2, e.Arg3 = vv.RuleIndex, vv.ActionIndex, flag(vv.IsCtxDependent)
	case *SetTransition:
		if e.Arg1 = a.SetIndex(vv.Set); e.Arg1 < 0 {
			return e, &UnknownSet{Index: -1}
		}
	case *NotSetTransition:
		if e.Arg1 = a.SetIndex(vv.Set); e.Arg1 < 0 {
			return e, &UnknownSet{Index: -1}
		}
	case *PrecedencePredicateTransition:
		e.Arg1 = vv.Precedence()
	default:
		return e, &UnknownTransitionType{Type: t.Type()}
	}
	return e, nil
}

// Edges serializes every Transition in the network, in State order.
func (a *ATN) Edges() ([]Edge, error) {
	acc := make([]Edge, 0, len(a.States)*2)
	for _, s := range a.States {
		for _, t := range s.Transitions() {
			e, err := EdgeOf(a, s, t)
			if err != nil {
				return nil, err
			}
			acc = append(acc, e)
		}
	}
	return acc, nil
}
