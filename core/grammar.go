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
	"fmt"
)

// Grammar is a description of a network.
//
// The description gives the structure of the ATN and the code behind
// its user predicates.  It does not include any parse state.
//
// A Grammar must be Compiled before use.  Compiling builds the ATN and
// compiles each PredicateSource.  After that the Grammar (and its
// ATN) should be treated as read-only.
type Grammar struct {
	// Name is the generic name for this grammar.  Something like
	// "expr".
	Name string `json:"name,omitempty" yaml:",omitempty"`

	// Version is the version of this grammar.  Something like
	// "1.2".
	Version string `json:"version,omitempty" yaml:",omitempty"`

	// Id should be a globally unique identifier (such as a hash
	// of a canonical representation of the Grammar).
	//
	// This package does not read or write this value.
	Id string `json:"id,omitempty" yaml:",omitempty"`

	// Doc is general documentation (Markdown) about this grammar.
	Doc string `json:"doc,omitempty" yaml:",omitempty"`

	// MaxTokenType is the largest symbol in the vocabulary.
	MaxTokenType int `json:"maxTokenType" yaml:"maxTokenType"`

	// States are numbered by their position.
	States []StateSpec `json:"states" yaml:"states"`

	Rules []RuleSpec `json:"rules" yaml:"rules"`

	// Sets are referenced by index from SET and NOT_SET edges.
	Sets [][]Interval `json:"sets,omitempty" yaml:",omitempty"`

	Edges []Edge `json:"edges" yaml:"edges"`

	Predicates []*PredicateSpec `json:"predicates,omitempty" yaml:",omitempty"`

	atn      *ATN
	actions  Predicates
	compiled bool
}

// StateSpec describes a State.
type StateSpec struct {
	// Type is a StateType name.  The default is "basic".
	Type string `json:"type,omitempty" yaml:",omitempty"`
	Rule int    `json:"rule" yaml:"rule"`
}

// RuleSpec describes a rule by its entry and exit States.
type RuleSpec struct {
	Name  string `json:"name" yaml:"name"`
	Start int    `json:"start" yaml:"start"`
	Stop  int    `json:"stop" yaml:"stop"`

	// LeftRecursive marks a rule that was rewritten to use
	// precedence predicates.
	LeftRecursive bool `json:"leftRecursive,omitempty" yaml:"leftRecursive,omitempty"`
}

// PredicateSpec gives the code for one user predicate.
type PredicateSpec struct {
	Rule int    `json:"rule" yaml:"rule"`
	Pred int    `json:"pred" yaml:"pred"`
	Doc  string `json:"doc,omitempty" yaml:",omitempty"`

	// Action is used as is.  Otherwise Source is compiled.
	Action PredicateAction `json:"-" yaml:"-"`

	Source *PredicateSource `json:"source,omitempty" yaml:",omitempty"`
}

func (p *PredicateSpec) Key() PredicateKey {
	return PredicateKey{Rule: p.Rule, Pred: p.Pred}
}

// Copy makes a copy of the description.  The copy is not compiled.
func (g *Grammar) Copy(version string) *Grammar {
	if version == "" {
		version = g.Version
	}
	preds := make([]*PredicateSpec, len(g.Predicates))
	for i, p := range g.Predicates {
		preds[i] = &PredicateSpec{
			Rule:   p.Rule,
			Pred:   p.Pred,
			Doc:    p.Doc,
			Action: p.Action,
			Source: p.Source.Copy(),
		}
	}
	sets := make([][]Interval, len(g.Sets))
	for i, set := range g.Sets {
		sets[i] = append([]Interval(nil), set...)
	}
	return &Grammar{
		Name:         g.Name,
		Version:      version,
		Doc:          g.Doc,
		MaxTokenType: g.MaxTokenType,
		States:       append([]StateSpec(nil), g.States...),
		Rules:        append([]RuleSpec(nil), g.Rules...),
		Sets:         sets,
		Edges:        append([]Edge(nil), g.Edges...),
		Predicates:   preds,
	}
}

// Compile builds the ATN and compiles each PredicateSource.
//
// When force is false, a predicate that already has an Action is
// left alone.  Any error here is a construction error: the Grammar
// can't be used.
func (g *Grammar) Compile(ctx context.Context, interpreters map[string]Interpreter, force bool) error {
	a := NewATN(g.MaxTokenType)

	for i, ss := range g.States {
		typ := BasicState
		if ss.Type != "" {
			var ok bool
			if typ, ok = ParseStateType(ss.Type); !ok {
				return fmt.Errorf("state %d: unknown state type %q", i, ss.Type)
			}
		}
		a.AddState(NewState(i, typ, ss.Rule))
	}

	for i, r := range g.Rules {
		start, stop := a.State(r.Start), a.State(r.Stop)
		if start == nil {
			return fmt.Errorf("rule %d (%s): %w", i, r.Name, &UnknownState{Number: r.Start})
		}
		if stop == nil {
			return fmt.Errorf("rule %d (%s): %w", i, r.Name, &UnknownState{Number: r.Stop})
		}
		a.RuleToStart = append(a.RuleToStart, start)
		a.RuleToStop = append(a.RuleToStop, stop)
	}

	for _, is := range g.Sets {
		a.Sets = append(a.Sets, NewIntervalSet(is...))
	}

	guards := make(map[PredicateKey]bool)
	for _, e := range g.Edges {
		src := a.State(e.Src)
		if src == nil {
			e := e
			return &UnknownState{Number: e.Src, Edge: &e}
		}
		t, err := NewTransition(a, e)
		if err != nil {
			return err
		}
		switch vv := t.(type) {
		case *RuleTransition:
			if vv.RuleIndex < 0 || len(a.RuleToStart) <= vv.RuleIndex {
				return &UnknownRule{Index: vv.RuleIndex}
			}
		case *PredicateTransition:
			guards[PredicateKey{Rule: vv.RuleIndex, Pred: vv.PredIndex}] = true
		}
		src.AddTransition(t)
	}

	actions := make(Predicates, len(g.Predicates))
	// Compiled sources are only given to their PredicateSpecs once
	// everything checks out.
	compiled := make(map[*PredicateSpec]PredicateAction, len(g.Predicates))
	for _, p := range g.Predicates {
		if p == nil {
			continue
		}
		key := p.Key()
		if _, have := actions[key]; have {
			return errors.New("predicate " + key.String() + " defined more than once")
		}
		if p.Source != nil && (force || p.Action == nil) {
			action, err := p.Source.Compile(ctx, interpreters)
			if err != nil {
				return fmt.Errorf("predicate %s: %w", key, err)
			}
			compiled[p] = action
			actions[key] = action
			continue
		}
		if p.Action == nil {
			continue
		}
		actions[key] = p.Action
	}

	for key := range guards {
		if _, have := actions[key]; !have {
			return &MissingPredicate{Grammar: g, Key: key}
		}
	}

	log.Infof("compiled grammar %q: %d states, %d edges, %d predicates",
		g.Name, len(a.States), len(g.Edges), len(actions))

	for p, action := range compiled {
		p.Action = action
	}

	g.atn = a
	g.actions = actions
	g.compiled = true

	return nil
}

// ATN returns the compiled network or nil.
func (g *Grammar) ATN() *ATN {
	return g.atn
}

// Compiled reports whether Compile has succeeded.
func (g *Grammar) Compiled() bool {
	return g.compiled
}

// RuleName returns the name of the rule with the given index.
func (g *Grammar) RuleName(i int) string {
	if i < 0 || len(g.Rules) <= i {
		return ""
	}
	return g.Rules[i].Name
}

// Predicate returns the PredicateSpec for the key or nil.
func (g *Grammar) Predicate(key PredicateKey) *PredicateSpec {
	for _, p := range g.Predicates {
		if p != nil && p.Key() == key {
			return p
		}
	}
	return nil
}

// Sempred implements Recognizer using the compiled predicates.
func (g *Grammar) Sempred(ctx context.Context, f *Frame, ruleIndex, predIndex int) (bool, error) {
	if !g.compiled {
		return false, &GrammarNotCompiled{g}
	}
	return g.actions.Sempred(ctx, f, ruleIndex, predIndex)
}

// Precedence implements Recognizer.  The precedence comes from the
// Frame.
func (g *Grammar) Precedence(f *Frame) int {
	return f.CurrentPrecedence()
}

// Describe makes a Grammar that describes the given network.
//
// The result has no predicates; add PredicateSpecs before Compiling.
func Describe(name string, a *ATN) (*Grammar, error) {
	g := &Grammar{
		Name:         name,
		MaxTokenType: a.MaxTokenType,
		States:       make([]StateSpec, len(a.States)),
		Rules:        make([]RuleSpec, len(a.RuleToStart)),
		Sets:         make([][]Interval, len(a.Sets)),
	}
	for i, s := range a.States {
		g.States[i] = StateSpec{
			Type: s.Type.String(),
			Rule: s.RuleIndex,
		}
	}
	for i, start := range a.RuleToStart {
		r := RuleSpec{
			Start: start.Number,
			Stop:  -1,
		}
		if i < len(a.RuleToStop) && a.RuleToStop[i] != nil {
			r.Stop = a.RuleToStop[i].Number
		}
		g.Rules[i] = r
	}
	for i, set := range a.Sets {
		g.Sets[i] = set.Intervals()
	}
	edges, err := a.Edges()
	if err != nil {
		return nil, err
	}
	g.Edges = edges
	return g, nil
}
