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
	"encoding/json"
	"fmt"
	"io"

	"github.com/Comcast/atn/core"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func newYAMLToJSONCmd() *cobra.Command {
	var pretty bool

	cmd := &cobra.Command{
		Use:   "yamltojson [file]",
		Short: "Convert a YAML grammar description to JSON",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := readGrammar(cmd, args)
			if err != nil {
				return err
			}

			var bs []byte
			if pretty {
				bs, err = json.MarshalIndent(g, "", "  ")
			} else {
				bs, err = json.Marshal(g)
			}
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%s\n", bs)
			return err
		},
	}

	cmd.Flags().BoolVarP(&pretty, "pretty", "p", false, "indent the output")

	return cmd
}

func newJSONToYAMLCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "jsontoyaml",
		Short: "Convert a JSON grammar description (from stdin) to YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			bs, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read stdin: %w", err)
			}

			var g core.Grammar
			if err = json.Unmarshal(bs, &g); err != nil {
				return fmt.Errorf("parse: %w", err)
			}

			if bs, err = yaml.Marshal(&g); err != nil {
				return err
			}

			_, err = cmd.OutOrStdout().Write(bs)
			return err
		},
	}
}
