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

// Package main is a command-line tool for working with grammar
// descriptions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Comcast/atn/core"
	"github.com/Comcast/atn/interpreters"
	"github.com/Comcast/atn/tools"

	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
	"gopkg.in/yaml.v2"
)

var log = commonlog.GetLogger("atn.atntool")

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbosity int

	rootCmd := &cobra.Command{
		Use:           "atntool",
		Short:         "Tools for augmented transition network grammars",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "more logging (repeat for more)")

	rootCmd.AddCommand(newYAMLToJSONCmd())
	rootCmd.AddCommand(newJSONToYAMLCmd())
	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newDotCmd())
	rootCmd.AddCommand(newMermaidCmd())
	rootCmd.AddCommand(newHTMLCmd())
	rootCmd.AddCommand(newEvalCmd())
	rootCmd.AddCommand(newStoreCmd())

	return rootCmd
}

// readGrammar reads a grammar description from the named file or,
// given "-" or nothing, from the command's input.
func readGrammar(cmd *cobra.Command, args []string) (*core.Grammar, error) {
	if 0 < len(args) && args[0] != "-" {
		return tools.ReadGrammar(args[0])
	}

	bs, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return nil, fmt.Errorf("read stdin: %w", err)
	}
	var g core.Grammar
	if err = yaml.Unmarshal(bs, &g); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	return &g, nil
}

// compileGrammar reads and compiles a grammar with the standard
// interpreters.
func compileGrammar(ctx context.Context, cmd *cobra.Command, args []string) (*core.Grammar, error) {
	g, err := readGrammar(cmd, args)
	if err != nil {
		return nil, err
	}
	if err = g.Compile(ctx, interpreters.Standard(), true); err != nil {
		return nil, fmt.Errorf("compile: %w", err)
	}
	log.Infof("compiled %s with %d states", g.Name, len(g.States))
	return g, nil
}

// nopCloser lets the command's output serve as an io.WriteCloser
// without closing stdout.
type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error {
	return nil
}
