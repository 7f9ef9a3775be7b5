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
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/Comcast/atn/core"

	md "github.com/russross/blackfriday/v2"
	"gopkg.in/yaml.v2"
)

// RenderGrammarHTML writes an HTML fragment that documents the
// grammar: its Markdown doc, its rules, its edges, and its
// predicates.
func RenderGrammarHTML(g *core.Grammar, out io.Writer) error {
	f := func(format string, args ...interface{}) {
		fmt.Fprintf(out, format+"\n", args...)
	}

	f(`<div class="grammarDoc doc">%s</div>`, md.Run([]byte(g.Doc)))

	{ // Rules
		f(`<div class="rules"><table>`)
		for i, r := range g.Rules {
			name := r.Name
			if name == "" {
				name = fmt.Sprintf("rule%d", i)
			}
			f(`<tr class="rule"><td><span id="rule%d" class="ruleName">%s</span></td>`, i, html(name))
			f(`<td>start <a href="#state%d">%d</a></td><td>stop <a href="#state%d">%d</a></td>`,
				r.Start, r.Start, r.Stop, r.Stop)
			if r.LeftRecursive {
				f(`<td><span class="leftRecursive">left-recursive</span></td>`)
			} else {
				f(`<td></td>`)
			}
			f(`</tr>`)
		}
		f(`</table></div>`)
	}

	{ // States with their outgoing edges
		from := make(map[int][]core.Edge, len(g.States))
		for _, e := range g.Edges {
			from[e.Src] = append(from[e.Src], e)
		}
		f(`<div class="states"><table>`)
		for i, s := range g.States {
			typ := s.Type
			if typ == "" {
				typ = core.BasicState.String()
			}
			f(`<tr class="state"><td><span id="state%d" class="stateNum">%d</span></td><td>%s</td><td>%s</td><td>`,
				i, i, typ, html(g.RuleName(s.Rule)))
			if es := from[i]; 0 < len(es) {
				f(`<table class="edges">`)
				for j, e := range es {
					f(`<tr><td><div class="edgeNum">%d</div></td><td>%s</td><td><a href="#state%d"><code>%d</code></a></td><td><code>%d %d %d</code></td></tr>`,
						j, e.Type, e.Trg, e.Trg, e.Arg1, e.Arg2, e.Arg3)
				}
				f(`</table>`)
			}
			f(`</td></tr>`)
		}
		f(`</table></div>`)
	}

	{ // Predicates
		f(`<div class="predicates"><table>`)
		for _, p := range g.Predicates {
			if p == nil {
				continue
			}
			f(`<tr class="predicate"><td><span id="pred%d_%d" class="predicateKey">%s</span></td><td>`,
				p.Rule, p.Pred, p.Key())
			if p.Doc != "" {
				f(`<div class="predicateDoc doc">%s</div>`, md.Run([]byte(p.Doc)))
			}
			if p.Source != nil {
				f(`<div class="code"><span class="interpreter">%s</span><pre>%s</pre></div>`,
					html(p.Source.Interpreter), html(sourceText(p.Source.Source)))
			}
			f(`</td></tr>`)
		}
		f(`</table></div>`)
	}

	return nil
}

func RenderGrammarPage(g *core.Grammar, out io.Writer, cssFiles []string, includeData bool) error {

	if cssFiles == nil {
		cssFiles = []string{"/static/grammar-html.css"}
	}

	fmt.Fprintf(out, `<!DOCTYPE html>
<meta charset="utf-8">
<html>
  <head>
  <title>%s</title>
`, html(g.Name))

	if includeData {
		js, err := json.Marshal(g)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, `
  <script>
  var thisGrammar = %s;
  </script>
`, js)
	}

	for _, cssFile := range cssFiles {
		fmt.Fprintf(out, "  <link href=\"%s\" rel=\"stylesheet\">\n", cssFile)
	}

	fmt.Fprintf(out, `
  </head>
  <body>
    <h1>%s</h1>
`, html(g.Name))

	if err := RenderGrammarHTML(g, out); err != nil {
		return err
	}

	fmt.Fprintf(out, `
  </body>
</html>
`)

	return nil
}

// ReadGrammar reads a YAML (or JSON) grammar description.  The
// grammar isn't compiled.
func ReadGrammar(filename string) (*core.Grammar, error) {
	src, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	var g core.Grammar
	if err = yaml.Unmarshal(src, &g); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filename, err)
	}
	return &g, nil
}

func ReadAndRenderGrammarPage(filename string, cssFiles []string, out io.Writer, includeData bool) error {
	g, err := ReadGrammar(filename)
	if err != nil {
		return err
	}

	return RenderGrammarPage(g, out, cssFiles, includeData)
}
