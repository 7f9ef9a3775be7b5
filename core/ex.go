package core

import (
	"context"
)

// Symbols used by ExprGrammar.
const (
	ExprINT  = 1
	ExprPLUS = 2
	ExprSTAR = 3
)

// ExprGrammar makes an example Grammar that's useful to have around.
//
// The grammar is
//
//	start : {enabled}? e EOF ;
//	e     : e '*' e | e '+' e | INT ;
//
// with e rewritten into a loop guarded by precedence predicates.  '*'
// has level 1 and '+' has level 2.  The operator loop only takes an
// operator whose level is at most the precedence argument of the
// current invocation of e.  start calls e with 2; the right operand of
// '+' is parsed with 1 and the right operand of '*' with 0.
func ExprGrammar(ctx context.Context) (*Grammar, error) {
	g := &Grammar{
		Name:         "expr",
		Version:      "1",
		Doc:          "Binary expressions over `INT` with `*` binding tighter than `+`.",
		MaxTokenType: ExprSTAR,
		States: []StateSpec{
			{Type: "ruleStart", Rule: 0}, // 0
			{Type: "ruleStop", Rule: 0},  // 1
			{Rule: 0},                    // 2
			{Type: "starLoopEntry", Rule: 0},
			{Rule: 0}, // 4
			{Rule: 0},
			{Rule: 0}, // 6
			{Rule: 0},
			{Type: "ruleStart", Rule: 1}, // 8
			{Type: "ruleStop", Rule: 1},
			{Rule: 1}, // 10
			{Rule: 1},
			{Rule: 1}, // 12
		},
		Rules: []RuleSpec{
			{Name: "e", Start: 0, Stop: 1, LeftRecursive: true},
			{Name: "start", Start: 8, Stop: 9},
		},
		Edges: []Edge{
			{Src: 0, Trg: 2, Type: TransitionEpsilon},
			{Src: 2, Trg: 3, Type: TransitionAtom, Arg1: ExprINT},
			{Src: 3, Trg: 4, Type: TransitionPrecedence, Arg1: 1},
			{Src: 4, Trg: 5, Type: TransitionAtom, Arg1: ExprSTAR},
			{Src: 5, Trg: 3, Type: TransitionRule, Arg1: 0, Arg2: 0, Arg3: 0},
			{Src: 3, Trg: 6, Type: TransitionPrecedence, Arg1: 2},
			{Src: 6, Trg: 7, Type: TransitionAtom, Arg1: ExprPLUS},
			{Src: 7, Trg: 3, Type: TransitionRule, Arg1: 0, Arg2: 0, Arg3: 1},
			{Src: 3, Trg: 1, Type: TransitionEpsilon},

			{Src: 8, Trg: 10, Type: TransitionPredicate, Arg1: 1, Arg2: 0},
			{Src: 10, Trg: 11, Type: TransitionRule, Arg1: 0, Arg2: 0, Arg3: 2},
			{Src: 11, Trg: 12, Type: TransitionAtom, Arg3: 1},
			{Src: 12, Trg: 9, Type: TransitionEpsilon},
		},
		Predicates: []*PredicateSpec{
			{
				Rule: 1,
				Pred: 0,
				Doc:  "enabled",
				Action: &FuncPredicate{
					F: func(ctx context.Context, f *Frame) (bool, error) {
						return true, nil
					},
				},
			},
		},
	}

	if err := g.Compile(ctx, nil, true); err != nil {
		return nil, err
	}

	return g, nil
}
