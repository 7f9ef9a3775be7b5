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

	"github.com/Comcast/atn/interpreters"
	"github.com/Comcast/atn/storage"
	"github.com/Comcast/atn/storage/bolt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

// withStorage opens the database, calls the function, and closes the
// database.
func withStorage(filename string, f func(ctx context.Context, s storage.Storage) error) error {
	ctx := context.Background()

	s, err := bolt.NewStorage(filename)
	if err != nil {
		return err
	}
	if err = s.Open(ctx); err != nil {
		return fmt.Errorf("open %s: %w", filename, err)
	}
	defer func() {
		if err := s.Close(ctx); err != nil {
			log.Errorf("close %s: %s", filename, err)
		}
	}()

	return f(ctx, s)
}

func newStoreCmd() *cobra.Command {
	var db string

	cmd := &cobra.Command{
		Use:   "store",
		Short: "Persist grammar descriptions",
	}

	cmd.PersistentFlags().StringVar(&db, "db", "atn.db", "BoltDB filename")

	put := &cobra.Command{
		Use:   "put [file]",
		Short: "Store a grammar description, which must compile",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := compileGrammar(context.Background(), cmd, args)
			if err != nil {
				return err
			}
			if g.Name == "" {
				return fmt.Errorf("grammar has no name")
			}
			return withStorage(db, func(ctx context.Context, s storage.Storage) error {
				return s.Put(ctx, g)
			})
		},
	}

	var asJSON bool
	get := &cobra.Command{
		Use:   "get NAME",
		Short: "Write a stored grammar description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(db, func(ctx context.Context, s storage.Storage) error {
				g, err := storage.Load(ctx, s, args[0], interpreters.Standard())
				if err != nil {
					return err
				}
				var bs []byte
				if asJSON {
					bs, err = json.MarshalIndent(g, "", "  ")
					bs = append(bs, '\n')
				} else {
					bs, err = yaml.Marshal(g)
				}
				if err != nil {
					return err
				}
				_, err = cmd.OutOrStdout().Write(bs)
				return err
			})
		},
	}
	get.Flags().BoolVar(&asJSON, "json", false, "write JSON rather than YAML")

	list := &cobra.Command{
		Use:   "list",
		Short: "List the stored grammars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(db, func(ctx context.Context, s storage.Storage) error {
				names, err := s.List(ctx)
				if err != nil {
					return err
				}
				for _, name := range names {
					fmt.Fprintln(cmd.OutOrStdout(), name)
				}
				return nil
			})
		},
	}

	rem := &cobra.Command{
		Use:   "rem NAME",
		Short: "Remove a stored grammar",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withStorage(db, func(ctx context.Context, s storage.Storage) error {
				return s.Rem(ctx, args[0])
			})
		},
	}

	cmd.AddCommand(put, get, list, rem)

	return cmd
}
