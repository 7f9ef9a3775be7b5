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

	"github.com/Comcast/atn/tools"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [file]",
		Short: "Report on the structure of a grammar description",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGrammar(cmd, args)
			if err != nil {
				return err
			}

			a, err := tools.Analyze(g)
			if err != nil {
				return err
			}

			bs, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bs)

			if 0 < len(a.Errors) {
				return fmt.Errorf("%d problems", len(a.Errors))
			}
			return nil
		},
	}
}

func newDotCmd() *cobra.Command {
	var from, to int

	cmd := &cobra.Command{
		Use:   "dot [file]",
		Short: "Render a grammar as Graphviz dot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := compileGrammar(context.Background(), cmd, args)
			if err != nil {
				return err
			}
			return tools.Dot(g, nopCloser{cmd.OutOrStdout()}, from, to)
		},
	}

	cmd.Flags().IntVar(&from, "from", -1, "highlight this source state")
	cmd.Flags().IntVar(&to, "to", -1, "highlight this target state")

	return cmd
}

func newMermaidCmd() *cobra.Command {
	var labels bool

	cmd := &cobra.Command{
		Use:   "mermaid [file]",
		Short: "Render a grammar as Mermaid input",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := compileGrammar(context.Background(), cmd, args)
			if err != nil {
				return err
			}
			opts := &tools.MermaidOpts{
				ShowLabels: labels,
				GuardFill:  "#bcf2db",
			}
			return tools.Mermaid(g, nopCloser{cmd.OutOrStdout()}, opts)
		},
	}

	cmd.Flags().BoolVar(&labels, "labels", true, "label the edges")

	return cmd
}

func newHTMLCmd() *cobra.Command {
	var (
		css  []string
		data bool
	)

	cmd := &cobra.Command{
		Use:   "html [file]",
		Short: "Render the documentation of a grammar as an HTML page",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGrammar(cmd, args)
			if err != nil {
				return err
			}
			return tools.RenderGrammarPage(g, cmd.OutOrStdout(), css, data)
		},
	}

	cmd.Flags().StringSliceVar(&css, "css", nil, "stylesheet URLs")
	cmd.Flags().BoolVar(&data, "data", false, "include the grammar as JSON")

	return cmd
}
