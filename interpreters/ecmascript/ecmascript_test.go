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

package ecmascript

import (
	"context"
	"testing"
	"time"

	"github.com/Comcast/atn/core"
)

func exec(t *testing.T, i *Interpreter, f *core.Frame, code string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	compiled, err := i.Compile(ctx, code)
	if err != nil {
		t.Fatal(err)
	}
	return i.Exec(ctx, f, code, compiled)
}

func TestPredicateSimple(t *testing.T) {
	i := NewInterpreter()
	for code, want := range map[string]bool{
		`return true;`:      true,
		`return 1 > 2;`:     false,
		`return !!"chips";`: true,
	} {
		got, err := exec(t, i, nil, code)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("%s: %v != %v", code, got, want)
		}
	}
}

func TestPredicateFrame(t *testing.T) {
	f := (*core.Frame)(nil).Push(1, 10, 0).Push(0, 5, 2)
	f.Attrs = map[string]interface{}{
		"likes": "tacos",
	}

	i := NewInterpreter()

	for code, want := range map[string]bool{
		`return _.precedence == 2;`:                                 true,
		`return _.depth == 2;`:                                      true,
		`return _.rules[0] == 0 && _.rules[1] == 1;`:                true,
		`return _.attrs.likes == "tacos";`:                          true,
		`_.attrs.likes = "queso"; return _.attrs.likes == "tacos";`: false,
	} {
		got, err := exec(t, i, f, code)
		if err != nil {
			t.Fatal(err)
		}
		if got != want {
			t.Fatalf("%s: %v != %v", code, got, want)
		}
	}

	if f.Attrs["likes"] != "tacos" {
		t.Fatalf("attrs modified: %#v", f.Attrs)
	}
}

func TestPredicateNilFrame(t *testing.T) {
	got, err := exec(t, NewInterpreter(), nil, `return _.precedence == 0 && _.depth == 0 && _.rules.length == 0;`)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected an empty environment")
	}
}

func TestPredicateNotBoolean(t *testing.T) {
	if _, err := exec(t, NewInterpreter(), nil, `return {likes:"chips"};`); err == nil {
		t.Fatal("didn't protest")
	}
	if _, err := exec(t, NewInterpreter(), nil, `return;`); err == nil {
		t.Fatal("didn't protest about undefined")
	}
}

func TestPredicateTimeout(t *testing.T) {
	code := `for (;;) { _.sleep(10); } return true;`

	i := NewInterpreter()
	i.Test = true

	_, err := exec(t, i, nil, code)
	if err == nil {
		t.Fatal("didn't timeout")
	}
	if err.Error() != InterruptedMessage {
		t.Fatalf("surprised by \"%s\"", err)
	}
}

func TestPredicateError(t *testing.T) {
	if _, err := exec(t, NewInterpreter(), nil, `return likes + tacos;`); err == nil {
		t.Fatal("didn't protest")
	}
}

func TestPredicateCompileError(t *testing.T) {
	if _, err := NewInterpreter().Compile(context.Background(), `return (;`); err == nil {
		t.Fatal("didn't protest")
	}
	if _, err := NewInterpreter().Compile(context.Background(), 42); err == nil {
		t.Fatal("didn't protest about a number")
	}
}

func TestPredicateNoPrecompile(t *testing.T) {
	got, err := NewInterpreter().Exec(context.Background(), nil, `return true;`, nil)
	if err != nil {
		t.Fatal(err)
	}
	if !got {
		t.Fatal("expected true")
	}
}

func TestPredicateInGrammar(t *testing.T) {
	g := &core.Grammar{
		Name:         "even",
		MaxTokenType: 1,
		States: []core.StateSpec{
			{Type: "ruleStart", Rule: 0},
			{Type: "ruleStop", Rule: 0},
			{Type: "basic", Rule: 0},
		},
		Rules: []core.RuleSpec{
			{Name: "r", Start: 0, Stop: 1},
		},
		Edges: []core.Edge{
			{Src: 0, Trg: 2, Type: core.TransitionPredicate, Arg1: 0, Arg2: 0, Arg3: 1},
			{Src: 2, Trg: 1, Type: core.TransitionAtom, Arg1: 1},
		},
		Predicates: []*core.PredicateSpec{
			{
				Rule: 0,
				Pred: 0,
				Source: &core.PredicateSource{
					Interpreter: "ecmascript",
					Source:      `return _.attrs.n % 2 == 0;`,
				},
			},
		},
	}

	ctx := context.Background()
	if err := g.Compile(ctx, core.InterpretersMap{"ecmascript": NewInterpreter()}, true); err != nil {
		t.Fatal(err)
	}

	edge := g.ATN().State(0).Transition(0)

	f := (*core.Frame)(nil).Push(0, -1, 0)
	for n, want := range map[int]bool{2: true, 3: false} {
		f.Attrs = map[string]interface{}{"n": n}
		if got := core.Speculate(ctx, g, f, edge, 1, core.TokenMinUserType, g.MaxTokenType); got != want {
			t.Fatalf("n=%d: %v", n, got)
		}
	}
}

func benchmarkCompiling(b *testing.B, compiling bool) {
	code := `
function radians (num) {
  return num * Math.PI / 180;
}

function haversine (lon1,lat1,lon2,lat2) {
  var R = 6371;
  var dLat = radians(lat2-lat1);
  var dLon = radians(lon2-lon1);
  var lat1 = radians(lat1);
  var lat2 = radians(lat2);
  var a = Math.sin(dLat/2) * Math.sin(dLat/2) + Math.sin(dLon/2) * Math.sin(dLon/2) * Math.cos(lat1) * Math.cos(lat2);
  var c = 2 * Math.atan2(Math.sqrt(a), Math.sqrt(1-a));
  return R * c;
}

return haversine(0, 0, 1, 1) < _.precedence * 1000;
`

	ctx := context.Background()
	i := NewInterpreter()

	var compiled interface{}
	if compiling {
		var err error
		if compiled, err = i.Compile(ctx, code); err != nil {
			b.Fatal(err)
		}
	}

	f := (*core.Frame)(nil).Push(0, -1, 1)

	b.ResetTimer()

	for n := 0; n < b.N; n++ {
		if _, err := i.Exec(ctx, f, code, compiled); err != nil {
			b.Fatal(err)
		}
	}
}

func BenchmarkPrecompile(b *testing.B) {
	benchmarkCompiling(b, true)
}

func BenchmarkNoPrecompile(b *testing.B) {
	benchmarkCompiling(b, false)
}
