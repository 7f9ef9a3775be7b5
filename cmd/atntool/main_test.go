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

package main

import (
	"bytes"
	"os"
	"strings"
	"testing"

	. "github.com/Comcast/atn/util/testutil"
)

const exprFilename = "../../grammars/expr.yaml"

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, stdin string, args ...string) string {
	t.Helper()
	out, err := run(t, stdin, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func TestConvert(t *testing.T) {
	js := mustRun(t, "", "yamltojson", exprFilename)
	if !strings.Contains(js, `"name":"expr"`) {
		t.Fatal(js)
	}
	if !strings.Contains(js, `"type":10`) {
		t.Fatalf("expected numeric tags in %s", js)
	}

	y := mustRun(t, js, "jsontoyaml")
	if !strings.Contains(y, "type: PRECEDENCE") {
		t.Fatal(y)
	}

	// And back again from stdin.
	again := mustRun(t, y, "yamltojson", "-")
	if again != js {
		t.Fatalf("%s\n!=\n%s", again, js)
	}

	pretty := mustRun(t, "", "yamltojson", "-p", exprFilename)
	if !strings.Contains(pretty, `  "name": "expr"`) {
		t.Fatal(pretty)
	}
}

func TestConvertBad(t *testing.T) {
	if _, err := run(t, "{", "jsontoyaml"); err == nil {
		t.Fatal("didn't protest")
	}
}

func TestAnalyze(t *testing.T) {
	out := mustRun(t, "", "analyze", exprFilename)
	if !strings.Contains(out, `"Guards": 3`) {
		t.Fatal(out)
	}

	bad := `{"states":[{"type":"ruleStart"}],"rules":[{"start":0,"stop":4}],"edges":[]}`
	if _, err := run(t, bad, "analyze"); err == nil {
		t.Fatal("didn't protest")
	}
}

func TestRender(t *testing.T) {
	if out := mustRun(t, "", "dot", "--from", "3", "--to", "4", exprFilename); !strings.Contains(out, "digraph G {") {
		t.Fatal(out)
	}
	if out := mustRun(t, "", "mermaid", exprFilename); !strings.Contains(out, "graph LR") {
		t.Fatal(out)
	}
	if out := mustRun(t, "", "html", "--css", "a.css", exprFilename); !strings.Contains(out, `href="a.css"`) {
		t.Fatal(out)
	}
}

func TestEval(t *testing.T) {
	out := mustRun(t, "", "eval", "-s", "3", "-c", "1:2", "-c", "0:1", exprFilename)
	want := "0\tPRECEDENCE\t1 >= _p\ttrue\n" +
		"1\tPRECEDENCE\t2 >= _p\tfalse\n" +
		"2\tEPSILON\tepsilon\ttrue\n"
	if out != want {
		t.Fatalf("%q != %q", out, want)
	}

	out = mustRun(t, "", "eval", "-s", "8", "-c", "1", exprFilename)
	if out != "0\tPREDICATE\tpred_1:0\ttrue\n" {
		t.Fatalf("%q", out)
	}

	out = mustRun(t, "", "eval", "-s", "8", "-c", "1", "-a", `{"disabled":true}`, exprFilename)
	if out != "0\tPREDICATE\tpred_1:0\tfalse\n" {
		t.Fatalf("%q", out)
	}

	out, err := run(t, "", "eval", "--commit", "-s", "8", "-c", "1", "-a", `{"disabled":true}`, exprFilename)
	if err == nil {
		t.Fatal("didn't protest")
	}
	if !strings.Contains(out, "failed predicate {pred_1:0}? at 0") {
		t.Fatalf("%q", out)
	}
}

func TestEvalBad(t *testing.T) {
	for _, args := range [][]string{
		{"eval", "-s", "99", exprFilename},
		{"eval", "-c", "x", exprFilename},
		{"eval", "-a", `{}`, exprFilename},
		{"eval", "-c", "0", "-a", `[`, exprFilename},
	} {
		if _, err := run(t, "", args...); err == nil {
			t.Fatalf("%v didn't protest", args)
		}
	}
}

func TestParseCall(t *testing.T) {
	rule, prec, err := parseCall("3:7")
	if err != nil || rule != 3 || prec != 7 {
		t.Fatal(rule, prec, err)
	}
	rule, prec, err = parseCall("2")
	if err != nil || rule != 2 || prec != 0 {
		t.Fatal(rule, prec, err)
	}
	if _, _, err = parseCall("2:x"); err == nil {
		t.Fatal("didn't protest")
	}
}

func TestStore(t *testing.T) {
	db := TempPath(t, "atn.db")

	mustRun(t, "", "store", "--db", db, "put", exprFilename)

	if out := mustRun(t, "", "store", "--db", db, "list"); out != "expr\n" {
		t.Fatalf("%q", out)
	}

	y := mustRun(t, "", "store", "--db", db, "get", "expr")
	if !strings.Contains(y, "return !_.attrs.disabled;") {
		t.Fatal(y)
	}

	js := mustRun(t, "", "store", "--db", db, "get", "--json", "expr")
	if !strings.Contains(js, `"name": "expr"`) {
		t.Fatal(js)
	}

	mustRun(t, "", "store", "--db", db, "rem", "expr")

	if out := mustRun(t, "", "store", "--db", db, "list"); out != "" {
		t.Fatalf("%q", out)
	}

	if _, err := run(t, "", "store", "--db", db, "get", "expr"); err == nil {
		t.Fatal("didn't protest")
	}

	if _, err := os.Stat(db); err != nil {
		t.Fatal(err)
	}
}
