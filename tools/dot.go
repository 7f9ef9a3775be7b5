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

// dot -Tpng g.dot > g.png

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	. "github.com/Comcast/atn/core"

	"github.com/tliron/commonlog"
	"gopkg.in/yaml.v2"
)

var log = commonlog.GetLogger("atn.tools")

// Dot makes a Graphviz dot file for the given compiled grammar.
//
// The optional fromState and toState (use -1 for neither) are the
// states of a traversal.  The fromState will be bold, and the
// toState and the edges between the two will be red.
func Dot(g *Grammar, w io.WriteCloser, fromState, toState int) error {
	if !g.Compiled() {
		return &GrammarNotCompiled{Grammar: g}
	}

	a := g.ATN()

	log.Debugf("processing %d states", len(a.States))

	fmt.Fprintf(w, "digraph G {\n")
	fmt.Fprintf(w, `  graph [ordering=out,rankdir=LR,nodesep=0.3,ranksep=0.6]
  node [shape="circle" style="filled"]
  edge [fontsize = "12"]
`)

	for _, s := range a.States {
		label := fmt.Sprintf("%d", s.Number)
		if s.Type != BasicState {
			label += "<BR/><FONT POINT-SIZE='8'>" + s.Type.String() + "</FONT>"
		}
		if name := g.RuleName(s.RuleIndex); name != "" && (s.Type == RuleStartState || s.Type == RuleStopState) {
			label += "<BR/><FONT POINT-SIZE='8'>" + html(name) + "</FONT>"
		}

		fillcolor := "#99ddc8"
		style := "filled"
		color := "black"
		switch s.Type {
		case RuleStartState:
			fillcolor = "#52aa5e"
		case RuleStopState:
			fillcolor = "#2d93ad"
			style += ",dashed"
		}
		if s.Number == fromState {
			style += ",bold"
		}
		if s.Number == toState {
			color = "red"
			fillcolor = "#f98b8b"
		}

		fmt.Fprintf(w, "  s%d [style=\"%s\", color=\"%s\", fillcolor=\"%s\", label=<%s> ]\n",
			s.Number, style, color, fillcolor, label)
	}

	for _, s := range a.States {
		n := s.NumTransitions()
		for i, t := range s.Transitions() {
			label := html(t.String())
			trg := t.Target().Number
			color := "black"
			style := "solid"

			switch vv := t.(type) {
			case *RuleTransition:
				// Draw the return edge.  The invocation is implied.
				trg = vv.FollowState.Number
				style = "bold"
				label = html(g.RuleName(vv.RuleIndex)) + fmt.Sprintf("(%d)", vv.Precedence)
			case *PrecedencePredicateTransition:
				color = "orange"
			case *PredicateTransition:
				color = "orange"
				if p := g.Predicate(PredicateKey{Rule: vv.RuleIndex, Pred: vv.PredIndex}); p != nil && p.Source != nil {
					label += `<FONT POINT-SIZE="6">` +
						`<BR/>` + strings.Replace(html(sourceText(p.Source.Source))+"\n", "\n", `<BR ALIGN="LEFT"/>`, -1) +
						`</FONT>`
				}
			default:
				if t.IsEpsilon() {
					style = "dashed"
				}
			}

			if s.Number == fromState && trg == toState {
				color = "red"
			}

			if 1 < n {
				label = fmt.Sprintf("%d/%d %s", i+1, n, label)
			}

			fmt.Fprintf(w, "  s%d -> s%d [ color=\"%s\" style=\"%s\" label = <%s> ]\n",
				s.Number, trg, color, style, label)
		}
	}

	fmt.Fprintf(w, "}\n")
	return w.Close()
}

// sourceText renders predicate source code.  Structured source is
// rendered as YAML.
func sourceText(x interface{}) string {
	if s, is := x.(string); is {
		return s
	}
	bs, err := yaml.Marshal(x)
	if err != nil {
		return fmt.Sprintf("%#v", x)
	}
	return string(bs)
}

// PNG generates a PNG image based on output from Dot.
//
// This function with write two files: basename.dot and basename.png,
// where the basename is the given string.
func PNG(g *Grammar, basename string, fromState, toState int) (string, error) {
	dotname := basename + ".dot"
	pngname := basename + ".png"

	dotfile, err := os.Create(dotname)
	if err != nil {
		return pngname, err
	}
	if err := Dot(g, dotfile, fromState, toState); err != nil {
		return pngname, err
	}
	cmd := exec.Command("dot", "-Tpng", "-Gstart=1", "-o", pngname, dotname)
	if err := cmd.Run(); err != nil {
		return pngname, err
	}
	return pngname, nil
}

func html(s string) string {
	s = strings.Replace(s, "&", `&amp;`, -1)
	s = strings.Replace(s, "<", `&lt;`, -1)
	s = strings.Replace(s, ">", `&gt;`, -1)
	return s
}
