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

import "strconv"

// StateType identifies the role a State plays in the network.
//
// The values are part of the serialized form of a Grammar and must
// not change.
type StateType int

const (
	InvalidState StateType = iota
	BasicState
	RuleStartState
	BlockStartState
	PlusBlockStartState
	StarBlockStartState
	TokenStartState
	RuleStopState
	BlockEndState
	StarLoopBackState
	StarLoopEntryState
	PlusLoopBackState
	LoopEndState
)

var stateTypeNames = []string{
	"invalid",
	"basic",
	"ruleStart",
	"blockStart",
	"plusBlockStart",
	"starBlockStart",
	"tokenStart",
	"ruleStop",
	"blockEnd",
	"starLoopBack",
	"starLoopEntry",
	"plusLoopBack",
	"loopEnd",
}

func (t StateType) String() string {
	if t < 0 || int(t) >= len(stateTypeNames) {
		return "StateType(" + strconv.Itoa(int(t)) + ")"
	}
	return stateTypeNames[t]
}

// ParseStateType is the inverse of StateType.String.  It doesn't
// accept "invalid".
func ParseStateType(s string) (StateType, bool) {
	for i, name := range stateTypeNames {
		if i == int(InvalidState) {
			continue
		}
		if name == s {
			return StateType(i), true
		}
	}
	return InvalidState, false
}

// State is a node in the network.
//
// A State owns its outgoing Transitions.  Transitions only point at
// their target States; the ATN owns every State.
type State struct {
	Number    int
	Type      StateType
	RuleIndex int

	transitions []Transition
	epsilonOnly bool
}

// NewState makes a State with no transitions.
func NewState(number int, typ StateType, ruleIndex int) *State {
	return &State{
		Number:    number,
		Type:      typ,
		RuleIndex: ruleIndex,
	}
}

// AddTransition appends an outgoing edge.
//
// Only called while the network is being built.
func (s *State) AddTransition(t Transition) {
	if len(s.transitions) == 0 {
		s.epsilonOnly = t.IsEpsilon()
	} else if s.epsilonOnly != t.IsEpsilon() {
		s.epsilonOnly = false
	}
	s.transitions = append(s.transitions, t)
}

// Transitions returns the outgoing edges in order.  Do not modify the
// returned slice.
func (s *State) Transitions() []Transition {
	return s.transitions
}

func (s *State) NumTransitions() int {
	return len(s.transitions)
}

func (s *State) Transition(i int) Transition {
	return s.transitions[i]
}

// OnlyEpsilon reports whether every outgoing edge is epsilon.
func (s *State) OnlyEpsilon() bool {
	return s.epsilonOnly
}

func (s *State) String() string {
	if s == nil {
		return "nil"
	}
	return strconv.Itoa(s.Number)
}

// ATN is the network: every State, the entry and exit State for each
// rule, and the symbol sets referenced by set transitions.
type ATN struct {
	States      []*State
	RuleToStart []*State
	RuleToStop  []*State
	Sets        []*IntervalSet

	// MaxTokenType is the largest symbol in the vocabulary.  The
	// smallest is always TokenMinUserType.
	MaxTokenType int
}

// NewATN makes an empty network.
func NewATN(maxTokenType int) *ATN {
	return &ATN{
		MaxTokenType: maxTokenType,
	}
}

// AddState appends a State and sets its Number to its position.
func (a *ATN) AddState(s *State) {
	s.Number = len(a.States)
	a.States = append(a.States, s)
}

// State returns the State with the given number or nil.
func (a *ATN) State(n int) *State {
	if n < 0 || len(a.States) <= n {
		return nil
	}
	return a.States[n]
}

// SetIndex returns the position of the given set in Sets or -1.
func (a *ATN) SetIndex(set *IntervalSet) int {
	for i, s := range a.Sets {
		if s == set {
			return i
		}
	}
	return -1
}
