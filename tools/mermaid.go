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
	"io"
	"strings"

	. "github.com/Comcast/atn/core"
)

type MermaidOpts struct {
	// ShowLabels will result in edge labels that render the
	// transition.
	ShowLabels bool `json:"showLabels"`

	// GuardFill is the fill color of states that have guarded
	// transitions.  Does not apply if GuardClass is set.
	GuardFill string `json:"guardFill,omitempty"`

	// GuardClass will be the CSS class for states that have
	// guarded transitions.
	GuardClass string `json:"guardClass,omitempty"`
}

// Mermaid makes a Mermaid (https://mermaidjs.github.io/) input file
// for the given compiled grammar.
func Mermaid(g *Grammar, w io.WriteCloser, opts *MermaidOpts) error {
	if !g.Compiled() {
		return &GrammarNotCompiled{Grammar: g}
	}

	if opts == nil {
		opts = &MermaidOpts{
			ShowLabels: true,
			GuardFill:  "#bcf2db",
		}
	}

	a := g.ATN()

	log.Debugf("mermaid processing %d states", len(a.States))

	fmt.Fprintf(w, "graph LR\n")

	for _, s := range a.States {
		guarded := false
		for _, t := range s.Transitions() {
			if _, is := t.(Guard); is {
				guarded = true
				break
			}
		}

		nid := fmt.Sprintf("s%d", s.Number)
		switch s.Type {
		case RuleStartState, RuleStopState:
			fmt.Fprintf(w, "  %s([\"%d %s\"])\n", nid, s.Number, g.RuleName(s.RuleIndex))
		default:
			fmt.Fprintf(w, "  %s((\"%d\"))\n", nid, s.Number)
		}

		if guarded {
			if opts.GuardClass != "" {
				fmt.Fprintf(w, "  class %s %s\n", nid, opts.GuardClass)
			} else if opts.GuardFill != "" {
				fmt.Fprintf(w, "  style %s fill:%s\n", nid, opts.GuardFill)
			}
		}
	}

	for _, s := range a.States {
		for _, t := range s.Transitions() {
			trg := t.Target().Number
			label := t.String()
			if rt, is := t.(*RuleTransition); is {
				trg = rt.FollowState.Number
				label = fmt.Sprintf("%s(%d)", g.RuleName(rt.RuleIndex), rt.Precedence)
			}

			arrow := "-->"
			if t.IsEpsilon() {
				arrow = "-.->"
			}

			if opts.ShowLabels {
				label = strings.Replace(label, `"`, `'`, -1)
				fmt.Fprintf(w, "  s%d %s|\"%s\"| s%d\n", s.Number, arrow, label, trg)
			} else {
				fmt.Fprintf(w, "  s%d %s s%d\n", s.Number, arrow, trg)
			}
		}
	}

	fmt.Fprintf(w, "\n")
	log.Debugf("mermaid gen done")

	return w.Close()
}
