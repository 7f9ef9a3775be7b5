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
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

const (
	// TokenEOF is the symbol for the end of the input.
	TokenEOF = -1

	// TokenMinUserType is the smallest symbol a grammar can define.
	TokenMinUserType = 1
)

// TransitionType tags each Transition variant.
//
// These values appear in serialized networks (see Edge).  They are a
// fixed enumeration: never renumber them, only append.
type TransitionType int

const (
	TransitionInvalid TransitionType = iota
	TransitionEpsilon
	TransitionRange
	TransitionRule
	TransitionPredicate
	TransitionAtom
	TransitionAction
	TransitionSet
	TransitionNotSet
	TransitionWildcard
	TransitionPrecedence
)

var transitionTypeNames = []string{
	"INVALID",
	"EPSILON",
	"RANGE",
	"RULE",
	"PREDICATE",
	"ATOM",
	"ACTION",
	"SET",
	"NOT_SET",
	"WILDCARD",
	"PRECEDENCE",
}

func (t TransitionType) String() string {
	if t < 0 || int(t) >= len(transitionTypeNames) {
		return "TransitionType(" + strconv.Itoa(int(t)) + ")"
	}
	return transitionTypeNames[t]
}

// ParseTransitionType is the inverse of TransitionType.String.
func ParseTransitionType(s string) (TransitionType, bool) {
	for i, name := range transitionTypeNames {
		if i != 0 && name == s {
			return TransitionType(i), true
		}
	}
	return TransitionInvalid, false
}

// parseTag accepts either the numeric tag or its name.
func parseTag(x interface{}) (TransitionType, error) {
	switch vv := x.(type) {
	case string:
		if t, ok := ParseTransitionType(vv); ok {
			return t, nil
		}
		return TransitionInvalid, fmt.Errorf("unknown transition type %q", vv)
	case int:
		return TransitionType(vv), nil
	case float64:
		if vv != math.Trunc(vv) {
			return TransitionInvalid, fmt.Errorf("transition type %v isn't a whole number", vv)
		}
		return TransitionType(int(vv)), nil
	default:
		return TransitionInvalid, fmt.Errorf("bad transition type (%T)", x)
	}
}

// MarshalJSON writes the numeric tag.
func (t TransitionType) MarshalJSON() ([]byte, error) {
	return []byte(strconv.Itoa(int(t))), nil
}

// UnmarshalJSON reads the numeric tag or its name (e.g. "PRECEDENCE").
func (t *TransitionType) UnmarshalJSON(bs []byte) error {
	var x interface{}
	if err := json.Unmarshal(bs, &x); err != nil {
		return err
	}
	tag, err := parseTag(x)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// MarshalYAML writes the name, which is easier to read.
func (t TransitionType) MarshalYAML() (interface{}, error) {
	if t <= TransitionInvalid || int(t) >= len(transitionTypeNames) {
		return int(t), nil
	}
	return t.String(), nil
}

// UnmarshalYAML is UnmarshalJSON for YAML.
func (t *TransitionType) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var x interface{}
	if err := unmarshal(&x); err != nil {
		return err
	}
	tag, err := parseTag(x)
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

// Transition is an edge from one State to a target State.
//
// Every Transition belongs to exactly one State (its source), which
// is not recorded in the Transition.  All methods are deterministic
// and have no side effects.
type Transition interface {
	// Target is the destination State.
	Target() *State

	// Type is the serialization tag of the variant.
	Type() TransitionType

	// IsEpsilon reports whether traversing this edge leaves the
	// input where it is.
	IsEpsilon() bool

	// Matches reports whether the edge accepts the symbol given
	// the vocabulary [minVocab,maxVocab].
	//
	// Guards never match.  Their admissibility is decided by
	// evaluating their SemanticContext, not by Matches.
	Matches(symbol, minVocab, maxVocab int) bool

	String() string
}

// Guard is a Transition whose admissibility is given by a
// SemanticContext.
type Guard interface {
	Transition

	// SemanticContext returns the edge's guard as an evaluable
	// expression.
	SemanticContext() SemanticContext
}

// EpsilonTransition moves without consuming input.
type EpsilonTransition struct {
	target *State

	// OutermostPrecedenceReturn is the index of the rule whose
	// precedence loop this edge returns from, or -1.
	OutermostPrecedenceReturn int
}

func NewEpsilonTransition(target *State) *EpsilonTransition {
	return &EpsilonTransition{
		target:                    target,
		OutermostPrecedenceReturn: -1,
	}
}

func (t *EpsilonTransition) Target() *State       { return t.target }
func (t *EpsilonTransition) Type() TransitionType { return TransitionEpsilon }
func (t *EpsilonTransition) IsEpsilon() bool      { return true }

func (t *EpsilonTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return false
}

func (t *EpsilonTransition) String() string {
	return "epsilon"
}

// AtomTransition consumes exactly one symbol.
type AtomTransition struct {
	target *State
	Label  int
}

func NewAtomTransition(target *State, label int) *AtomTransition {
	return &AtomTransition{
		target: target,
		Label:  label,
	}
}

func (t *AtomTransition) Target() *State       { return t.target }
func (t *AtomTransition) Type() TransitionType { return TransitionAtom }
func (t *AtomTransition) IsEpsilon() bool      { return false }

func (t *AtomTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return t.Label == symbol
}

func (t *AtomTransition) String() string {
	return symbolName(t.Label)
}

// RangeTransition consumes one symbol in [From,To].
type RangeTransition struct {
	target *State
	From   int
	To     int
}

func NewRangeTransition(target *State, from, to int) *RangeTransition {
	return &RangeTransition{
		target: target,
		From:   from,
		To:     to,
	}
}

func (t *RangeTransition) Target() *State       { return t.target }
func (t *RangeTransition) Type() TransitionType { return TransitionRange }
func (t *RangeTransition) IsEpsilon() bool      { return false }

func (t *RangeTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return t.From <= symbol && symbol <= t.To
}

func (t *RangeTransition) String() string {
	return "'" + symbolName(t.From) + "'..'" + symbolName(t.To) + "'"
}

// SetTransition consumes one symbol in Set.
type SetTransition struct {
	target *State
	Set    *IntervalSet
}

func NewSetTransition(target *State, set *IntervalSet) *SetTransition {
	if set == nil {
		set = NewIntervalSet()
	}
	return &SetTransition{
		target: target,
		Set:    set,
	}
}

func (t *SetTransition) Target() *State       { return t.target }
func (t *SetTransition) Type() TransitionType { return TransitionSet }
func (t *SetTransition) IsEpsilon() bool      { return false }

func (t *SetTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return t.Set.Contains(symbol)
}

func (t *SetTransition) String() string {
	return t.Set.String()
}

// NotSetTransition consumes one symbol of the vocabulary that is not
// in Set.
type NotSetTransition struct {
	SetTransition
}

func NewNotSetTransition(target *State, set *IntervalSet) *NotSetTransition {
	return &NotSetTransition{
		SetTransition: *NewSetTransition(target, set),
	}
}

func (t *NotSetTransition) Type() TransitionType { return TransitionNotSet }

func (t *NotSetTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return minVocab <= symbol && symbol <= maxVocab && !t.Set.Contains(symbol)
}

func (t *NotSetTransition) String() string {
	return "~" + t.Set.String()
}

// WildcardTransition consumes any one symbol of the vocabulary.
type WildcardTransition struct {
	target *State
}

func NewWildcardTransition(target *State) *WildcardTransition {
	return &WildcardTransition{target: target}
}

func (t *WildcardTransition) Target() *State       { return t.target }
func (t *WildcardTransition) Type() TransitionType { return TransitionWildcard }
func (t *WildcardTransition) IsEpsilon() bool      { return false }

func (t *WildcardTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return minVocab <= symbol && symbol <= maxVocab
}

func (t *WildcardTransition) String() string {
	return "."
}

// RuleTransition invokes a rule.  Its target is the rule's start
// State, and FollowState is where the invocation returns to.
type RuleTransition struct {
	target      *State
	RuleIndex   int
	Precedence  int
	FollowState *State
}

func NewRuleTransition(ruleStart *State, ruleIndex, precedence int, follow *State) *RuleTransition {
	return &RuleTransition{
		target:      ruleStart,
		RuleIndex:   ruleIndex,
		Precedence:  precedence,
		FollowState: follow,
	}
}

func (t *RuleTransition) Target() *State       { return t.target }
func (t *RuleTransition) Type() TransitionType { return TransitionRule }
func (t *RuleTransition) IsEpsilon() bool      { return true }

func (t *RuleTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return false
}

func (t *RuleTransition) String() string {
	return "rule " + strconv.Itoa(t.RuleIndex) + "(" + strconv.Itoa(t.Precedence) + ")"
}

// ActionTransition runs an embedded action.  It never guards.
type ActionTransition struct {
	target         *State
	RuleIndex      int
	ActionIndex    int
	IsCtxDependent bool
}

func NewActionTransition(target *State, ruleIndex, actionIndex int, ctxDependent bool) *ActionTransition {
	return &ActionTransition{
		target:         target,
		RuleIndex:      ruleIndex,
		ActionIndex:    actionIndex,
		IsCtxDependent: ctxDependent,
	}
}

func (t *ActionTransition) Target() *State       { return t.target }
func (t *ActionTransition) Type() TransitionType { return TransitionAction }
func (t *ActionTransition) IsEpsilon() bool      { return true }

func (t *ActionTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return false
}

func (t *ActionTransition) String() string {
	return "action_" + strconv.Itoa(t.RuleIndex) + ":" + strconv.Itoa(t.ActionIndex)
}

// PredicateTransition is guarded by a user predicate.
type PredicateTransition struct {
	target         *State
	RuleIndex      int
	PredIndex      int
	IsCtxDependent bool
}

func NewPredicateTransition(target *State, ruleIndex, predIndex int, ctxDependent bool) *PredicateTransition {
	return &PredicateTransition{
		target:         target,
		RuleIndex:      ruleIndex,
		PredIndex:      predIndex,
		IsCtxDependent: ctxDependent,
	}
}

func (t *PredicateTransition) Target() *State       { return t.target }
func (t *PredicateTransition) Type() TransitionType { return TransitionPredicate }
func (t *PredicateTransition) IsEpsilon() bool      { return true }

func (t *PredicateTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return false
}

// Predicate returns the user predicate this edge is guarded by.
func (t *PredicateTransition) Predicate() *Predicate {
	return &Predicate{
		RuleIndex:      t.RuleIndex,
		PredIndex:      t.PredIndex,
		IsCtxDependent: t.IsCtxDependent,
	}
}

func (t *PredicateTransition) SemanticContext() SemanticContext {
	return t.Predicate()
}

func (t *PredicateTransition) String() string {
	return "pred_" + strconv.Itoa(t.RuleIndex) + ":" + strconv.Itoa(t.PredIndex)
}

// PrecedencePredicateTransition is guarded by the precedence level of
// the innermost left-recursive rule invocation.
//
// The precedence is fixed when the edge is made.
type PrecedencePredicateTransition struct {
	target     *State
	precedence int
}

func NewPrecedencePredicateTransition(target *State, precedence int) *PrecedencePredicateTransition {
	return &PrecedencePredicateTransition{
		target:     target,
		precedence: precedence,
	}
}

func (t *PrecedencePredicateTransition) Target() *State       { return t.target }
func (t *PrecedencePredicateTransition) Type() TransitionType { return TransitionPrecedence }
func (t *PrecedencePredicateTransition) IsEpsilon() bool      { return true }

func (t *PrecedencePredicateTransition) Matches(symbol, minVocab, maxVocab int) bool {
	return false
}

// Precedence is the minimum precedence required to take this edge.
func (t *PrecedencePredicateTransition) Precedence() int {
	return t.precedence
}

// Predicate returns the edge's guard.  Every call returns a new
// predicate with the same Precedence.
func (t *PrecedencePredicateTransition) Predicate() *PrecedencePredicate {
	return &PrecedencePredicate{Precedence: t.precedence}
}

func (t *PrecedencePredicateTransition) SemanticContext() SemanticContext {
	return t.Predicate()
}

// String renders the guard as "<precedence> >= _p", where _p is the
// precedence argument of the current rule invocation.  Tools match on
// this text, so keep it stable.
func (t *PrecedencePredicateTransition) String() string {
	return strconv.Itoa(t.precedence) + " >= _p"
}
