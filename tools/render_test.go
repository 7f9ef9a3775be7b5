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
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/Comcast/atn/core"
	"github.com/Comcast/atn/interpreters"
	. "github.com/Comcast/atn/util/testutil"
)

type buffer struct {
	bytes.Buffer
	closed bool
}

func (b *buffer) Close() error {
	b.closed = true
	return nil
}

func exprGrammar(t *testing.T) *core.Grammar {
	g, err := core.ExprGrammar(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestDot(t *testing.T) {
	out := &buffer{}

	if err := Dot(exprGrammar(t), out, 3, 4); err != nil {
		t.Fatal(err)
	}

	if !out.closed {
		t.Fatal("not closed")
	}

	s := out.String()
	for _, want := range []string{
		"digraph G {",
		`s3 -> s4 [ color="red"`,
		"1 &gt;= _p",
		"2 &gt;= _p",
		"e(2)",
		"pred_1:0",
		"&lt;EOF&gt;",
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("no %q in\n%s", want, s)
		}
	}
}

func TestDotFile(t *testing.T) {
	filename := TempPath(t, "g.dot")

	out, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}

	if err := Dot(exprGrammar(t), out, -1, -1); err != nil {
		t.Fatal(err)
	}
}

func TestDotSource(t *testing.T) {
	g, err := ReadGrammar("../grammars/expr.yaml")
	if err != nil {
		t.Fatal(err)
	}
	if err = g.Compile(context.Background(), interpreters.Standard(), true); err != nil {
		t.Fatal(err)
	}

	out := &buffer{}
	if err := Dot(g, out, -1, -1); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "return !_.attrs.disabled;") {
		t.Fatalf("no predicate source in\n%s", out.String())
	}
}

func TestDotNotCompiled(t *testing.T) {
	g := exprGrammar(t).Copy("")
	err := Dot(g, &buffer{}, -1, -1)
	var nc *core.GrammarNotCompiled
	if !errors.As(err, &nc) {
		t.Fatalf("expected GrammarNotCompiled, not %v", err)
	}
}

func TestMermaid(t *testing.T) {
	out := &buffer{}

	if err := Mermaid(exprGrammar(t), out, nil); err != nil {
		t.Fatal(err)
	}

	s := out.String()
	for _, want := range []string{
		"graph LR",
		`s3 -.->|"1 >= _p"| s4`,
		`s5 -.->|"e(0)"| s3`,
		"style s3 fill:#bcf2db",
		`s0(["0 e"])`,
	} {
		if !strings.Contains(s, want) {
			t.Fatalf("no %q in\n%s", want, s)
		}
	}

	out = &buffer{}
	if err := Mermaid(exprGrammar(t), out, &MermaidOpts{GuardClass: "guarded"}); err != nil {
		t.Fatal(err)
	}
	if s := out.String(); !strings.Contains(s, "class s3 guarded") || !strings.Contains(s, "s3 -.-> s4") {
		t.Fatalf("unexpected\n%s", s)
	}
}
