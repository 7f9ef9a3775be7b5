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

package tools

import (
	"fmt"
	"sort"

	"github.com/Comcast/atn/core"
)

// GrammarAnalysis reports on the structure of a grammar description.
//
// The description needn't compile.  Analyze reports the problems
// that would prevent compilation in Errors.
type GrammarAnalysis struct {
	grammar *core.Grammar

	Errors []string

	StateCount int
	RuleCount  int
	Edges      int

	// Counts by TransitionType name.
	Types map[string]int

	Epsilons             int
	Guards               int
	PrecedencePredicates int

	// Orphans are states, other than rule start states, that no
	// edge enters.
	Orphans []int

	// DeadEnds are states, other than rule stop states, that no
	// edge leaves.
	DeadEnds []int

	MissingTargets    []int
	MissingPredicates []string
	UnusedPredicates  []string
	LeftRecursive     []string
	Interpreters      []string
}

// Analyze examines the description of the given grammar.
func Analyze(g *core.Grammar) (*GrammarAnalysis, error) {
	a := GrammarAnalysis{
		grammar:    g,
		StateCount: len(g.States),
		RuleCount:  len(g.Rules),
		Edges:      len(g.Edges),
		Types:      make(map[string]int, 10),
		Errors:     make([]string, 0, 8),
	}

	valid := func(n int) bool {
		return 0 <= n && n < len(g.States)
	}

	var (
		entered  = make(map[int]bool, len(g.States))
		left     = make(map[int]bool, len(g.States))
		missing  = make(map[int]bool)
		guards   = make(map[string]bool)
		starts   = make(map[int]bool, len(g.Rules))
		stops    = make(map[int]bool, len(g.Rules))
		declared = make(map[string]bool, len(g.Predicates))
		interps  = make(map[string]bool)
	)

	for i, s := range g.States {
		switch s.Type {
		case "", core.BasicState.String():
		default:
			if _, ok := core.ParseStateType(s.Type); !ok {
				a.Errors = append(a.Errors, fmt.Sprintf("state %d has unknown type \"%s\"", i, s.Type))
			}
		}
	}

	for i, r := range g.Rules {
		if r.LeftRecursive {
			a.LeftRecursive = append(a.LeftRecursive, r.Name)
		}
		if !valid(r.Start) {
			missing[r.Start] = true
			a.Errors = append(a.Errors, fmt.Sprintf("rule %d (%s) has unknown start state %d", i, r.Name, r.Start))
		}
		if !valid(r.Stop) {
			missing[r.Stop] = true
			a.Errors = append(a.Errors, fmt.Sprintf("rule %d (%s) has unknown stop state %d", i, r.Name, r.Stop))
		}
		starts[r.Start] = true
		stops[r.Stop] = true
	}

	for _, e := range g.Edges {
		a.Types[e.Type.String()]++

		for _, n := range []int{e.Src, e.Trg} {
			if !valid(n) {
				missing[n] = true
			}
		}
		left[e.Src] = true
		entered[e.Trg] = true

		switch e.Type {
		case core.TransitionEpsilon, core.TransitionAction:
			a.Epsilons++
		case core.TransitionRule:
			a.Epsilons++
			if !valid(e.Arg1) {
				missing[e.Arg1] = true
			}
			entered[e.Arg1] = true
			if e.Arg2 < 0 || len(g.Rules) <= e.Arg2 {
				a.Errors = append(a.Errors, fmt.Sprintf("edge %s invokes unknown rule %d", e, e.Arg2))
			}
		case core.TransitionPredicate:
			a.Epsilons++
			a.Guards++
			guards[core.PredicateKey{Rule: e.Arg1, Pred: e.Arg2}.String()] = true
		case core.TransitionPrecedence:
			a.Epsilons++
			a.Guards++
			a.PrecedencePredicates++
		case core.TransitionSet, core.TransitionNotSet:
			if e.Arg1 < 0 || len(g.Sets) <= e.Arg1 {
				a.Errors = append(a.Errors, fmt.Sprintf("edge %s uses unknown set %d", e, e.Arg1))
			}
		case core.TransitionRange, core.TransitionAtom, core.TransitionWildcard:
		default:
			a.Errors = append(a.Errors, fmt.Sprintf("edge %s has unknown type", e))
		}
	}

	for _, p := range g.Predicates {
		if p == nil {
			continue
		}
		declared[p.Key().String()] = true
		if p.Source != nil {
			interps[p.Source.Interpreter] = true
		}
	}

	for i := range g.States {
		if !entered[i] && !starts[i] {
			a.Orphans = append(a.Orphans, i)
		}
		if !left[i] && !stops[i] {
			a.DeadEnds = append(a.DeadEnds, i)
		}
	}

	a.MissingTargets = sortedInts(missing)
	for _, n := range a.MissingTargets {
		a.Errors = append(a.Errors, fmt.Sprintf("unknown state %d", n))
	}
	a.MissingPredicates = keysToStringSlice(diffKeys(guards, declared))
	for _, k := range a.MissingPredicates {
		a.Errors = append(a.Errors, fmt.Sprintf("no predicate for %s", k))
	}
	a.UnusedPredicates = keysToStringSlice(diffKeys(declared, guards))
	a.Interpreters = keysToStringSlice(interps)

	log.Debugf("analyzed %s: %d errors", g.Name, len(a.Errors))

	return &a, nil
}

// keysToStringSlice converts the keys from a map into a sorted slice
// of strings.
func keysToStringSlice(m map[string]bool) []string {
	var list []string
	for key := range m {
		list = append(list, key)
	}
	sort.Strings(list)
	return list
}

func sortedInts(m map[int]bool) []int {
	var list []int
	for n := range m {
		list = append(list, n)
	}
	sort.Ints(list)
	return list
}

// diffKeys identifies the keys present in 'all' but not in 'used'.
func diffKeys(all map[string]bool, used map[string]bool) map[string]bool {
	diff := make(map[string]bool)
	for key := range all {
		if _, found := used[key]; !found {
			diff[key] = true
		}
	}
	return diff
}
