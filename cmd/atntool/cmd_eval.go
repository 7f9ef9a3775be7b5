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
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Comcast/atn/core"

	"github.com/spf13/cobra"
)

// parseCall parses RULE[:PRECEDENCE].
func parseCall(s string) (rule, precedence int, err error) {
	r, p, has := strings.Cut(s, ":")
	if rule, err = strconv.Atoi(r); err != nil {
		return 0, 0, fmt.Errorf("bad call \"%s\": %w", s, err)
	}
	if has {
		if precedence, err = strconv.Atoi(p); err != nil {
			return 0, 0, fmt.Errorf("bad call \"%s\": %w", s, err)
		}
	}
	return rule, precedence, nil
}

func newEvalCmd() *cobra.Command {
	var (
		state   int
		calls   []string
		attrs   string
		symbol  int
		commit  bool
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "eval [file]",
		Short: "Report which transitions leaving a state are viable",
		Long: `Report which transitions leaving a state are viable.

The call stack is given outermost first with repeated --call
RULE[:PRECEDENCE] flags.  The --attrs JSON object is given to the
innermost invocation.

Each line of output is the transition's index, type, label, and
verdict.  With --commit, a guard that doesn't hold is an error.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(context.Background(), timeout)
			defer cancel()

			g, err := compileGrammar(ctx, cmd, args)
			if err != nil {
				return err
			}

			var f *core.Frame
			for _, c := range calls {
				rule, precedence, err := parseCall(c)
				if err != nil {
					return err
				}
				f = f.Push(rule, -1, precedence)
			}

			if attrs != "" {
				if f == nil {
					return fmt.Errorf("--attrs needs at least one --call")
				}
				if err = json.Unmarshal([]byte(attrs), &f.Attrs); err != nil {
					return fmt.Errorf("bad attrs: %w", err)
				}
			}

			s := g.ATN().State(state)
			if s == nil {
				return &core.UnknownState{Number: state}
			}

			log.Infof("evaluating %s at %s", s, f)

			out := cmd.OutOrStdout()
			failures := 0
			for i, t := range s.Transitions() {
				var ok bool
				if guard, is := t.(core.Guard); is && commit {
					err = core.Require(ctx, g, f, guard, i)
					ok = err == nil
				} else if commit {
					ok, err = core.Commit(ctx, g, f, t, symbol, core.TokenMinUserType, g.MaxTokenType, i)
				} else {
					ok, err = core.Traversable(ctx, g, f, t, symbol, core.TokenMinUserType, g.MaxTokenType)
				}
				fmt.Fprintf(out, "%d\t%s\t%s\t", i, t.Type(), t)
				if err != nil {
					failures++
					fmt.Fprintf(out, "error: %v\n", err)
					continue
				}
				fmt.Fprintf(out, "%v\n", ok)
			}

			if 0 < failures {
				return fmt.Errorf("%d transitions failed", failures)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&state, "state", "s", 0, "state number")
	cmd.Flags().StringArrayVarP(&calls, "call", "c", nil, "RULE[:PRECEDENCE] invocation (outermost first)")
	cmd.Flags().StringVarP(&attrs, "attrs", "a", "", "JSON attributes for the innermost invocation")
	cmd.Flags().IntVar(&symbol, "symbol", 0, "lookahead symbol")
	cmd.Flags().BoolVar(&commit, "commit", false, "fail on failed guards")
	cmd.Flags().DurationVar(&timeout, "timeout", time.Second, "evaluation timeout")

	return cmd
}
