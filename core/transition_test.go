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
	"testing"
)

func guards(target *State) []Guard {
	return []Guard{
		NewPredicateTransition(target, 0, 0, false),
		NewPredicateTransition(target, 3, 7, true),
		NewPrecedencePredicateTransition(target, 0),
		NewPrecedencePredicateTransition(target, 4),
		NewPrecedencePredicateTransition(target, -2),
	}
}

func TestGuardsNeverMatch(t *testing.T) {
	target := NewState(1, BasicState, 0)
	symbols := []int{TokenEOF, 0, 1, 2, 5, 100, 1 << 20}
	vocabs := [][2]int{{1, 10}, {0, 0}, {TokenEOF, 1 << 20}, {5, 1}}

	for _, g := range guards(target) {
		if !g.IsEpsilon() {
			t.Fatalf("%s isn't epsilon", g)
		}
		for _, s := range symbols {
			for _, v := range vocabs {
				if g.Matches(s, v[0], v[1]) {
					t.Fatalf("%s matched %d in %v", g, s, v)
				}
			}
		}
	}
}

func TestPrecedencePredicateTransitionString(t *testing.T) {
	tr := NewPrecedencePredicateTransition(NewState(0, BasicState, 0), 4)
	if s := tr.String(); s != "4 >= _p" {
		t.Fatalf(`got "%s"`, s)
	}
	if tr.Type() != TransitionPrecedence {
		t.Fatalf("type %s", tr.Type())
	}
	if tr.Type() != 10 {
		t.Fatalf("PRECEDENCE tag changed to %d", tr.Type())
	}
}

func TestPrecedencePredicateTransitionPredicate(t *testing.T) {
	tr := NewPrecedencePredicateTransition(NewState(0, BasicState, 0), 3)
	p1, p2 := tr.Predicate(), tr.Predicate()
	if p1.Precedence != 3 || p2.Precedence != 3 {
		t.Fatalf("precedences %d %d", p1.Precedence, p2.Precedence)
	}
	if !Equal(p1, p2) || !Equal(p1, tr.SemanticContext()) {
		t.Fatal("predicates differ")
	}
	// Changing a returned leaf doesn't change the edge.
	p1.Precedence = 100
	if tr.Precedence() != 3 || tr.Predicate().Precedence != 3 {
		t.Fatal("edge precedence changed")
	}
}

func TestTransitionTypeTags(t *testing.T) {
	want := map[TransitionType]int{
		TransitionEpsilon:    1,
		TransitionRange:      2,
		TransitionRule:       3,
		TransitionPredicate:  4,
		TransitionAtom:       5,
		TransitionAction:     6,
		TransitionSet:        7,
		TransitionNotSet:     8,
		TransitionWildcard:   9,
		TransitionPrecedence: 10,
	}
	for typ, n := range want {
		if int(typ) != n {
			t.Fatalf("%s is %d, not %d", typ, int(typ), n)
		}
		parsed, ok := ParseTransitionType(typ.String())
		if !ok || parsed != typ {
			t.Fatalf("%s parsed as %s", typ, parsed)
		}
	}
	if _, ok := ParseTransitionType("INVALID"); ok {
		t.Fatal("parsed INVALID")
	}
}

func TestConsumingTransitions(t *testing.T) {
	target := NewState(1, BasicState, 0)
	set := NewIntervalSet(Interval{From: 2, To: 4}, Interval{From: 8, To: 8})

	tests := []struct {
		t       Transition
		epsilon bool
		accepts []int
		rejects []int
	}{
		{NewEpsilonTransition(target), true, nil, []int{1, 2}},
		{NewAtomTransition(target, 5), false, []int{5}, []int{4, 6}},
		{NewAtomTransition(target, TokenEOF), false, []int{TokenEOF}, []int{0, 1}},
		{NewRangeTransition(target, 3, 6), false, []int{3, 4, 6}, []int{2, 7}},
		{NewSetTransition(target, set), false, []int{2, 3, 4, 8}, []int{1, 5, 7, 9}},
		{NewNotSetTransition(target, set), false, []int{1, 5, 7, 9, 10}, []int{0, 2, 8, 11}},
		{NewWildcardTransition(target), false, []int{1, 6, 10}, []int{0, 11, TokenEOF}},
		{NewRuleTransition(target, 0, 0, target), true, nil, []int{1}},
		{NewActionTransition(target, 0, 0, false), true, nil, []int{1}},
	}

	for _, test := range tests {
		if test.t.IsEpsilon() != test.epsilon {
			t.Fatalf("%s epsilon %v", test.t, test.t.IsEpsilon())
		}
		if test.t.Target() != target {
			t.Fatalf("%s has the wrong target", test.t)
		}
		for _, s := range test.accepts {
			if !test.t.Matches(s, 1, 10) {
				t.Fatalf("%s rejected %d", test.t, s)
			}
		}
		for _, s := range test.rejects {
			if test.t.Matches(s, 1, 10) {
				t.Fatalf("%s accepted %d", test.t, s)
			}
		}
	}
}

func TestStateOnlyEpsilon(t *testing.T) {
	a, b := NewState(0, BasicState, 0), NewState(1, BasicState, 0)
	a.AddTransition(NewEpsilonTransition(b))
	a.AddTransition(NewPrecedencePredicateTransition(b, 1))
	if !a.OnlyEpsilon() {
		t.Fatal("expected epsilon only")
	}
	a.AddTransition(NewAtomTransition(b, 1))
	if a.OnlyEpsilon() {
		t.Fatal("didn't expect epsilon only")
	}
	if a.NumTransitions() != 3 || a.Transition(2).Type() != TransitionAtom {
		t.Fatalf("transitions %v", a.Transitions())
	}
}

func TestIntervalSet(t *testing.T) {
	s := NewIntervalSet()
	s.Add(5, 7)
	s.Add(1, 2)
	s.Add(3, 4)
	s.Add(10, 9)

	is := s.Intervals()
	if len(is) != 1 || is[0].From != 1 || is[0].To != 7 {
		t.Fatalf("intervals %v", is)
	}
	if s.String() != "{1..7}" {
		t.Fatalf(`got "%s"`, s)
	}
	if s.Contains(0) || !s.Contains(1) || !s.Contains(7) || s.Contains(8) {
		t.Fatal("bad membership")
	}
}
