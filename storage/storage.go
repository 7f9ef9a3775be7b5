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

// Package storage persists grammar descriptions by name.
package storage

import (
	"context"
	"fmt"

	"github.com/Comcast/atn/core"
)

// NotFound is returned by Storage.Get when there is no grammar with
// the given name.
type NotFound struct {
	Name string
}

func (e *NotFound) Error() string {
	return fmt.Sprintf("grammar \"%s\" not found", e.Name)
}

// Storage is a persistence interface for Grammar descriptions.
//
// Only the description is stored.  A PredicateSpec's Action, which
// isn't serializable, is lost, so a stored Grammar should use
// PredicateSources.
type Storage interface {
	Open(ctx context.Context) error

	Close(ctx context.Context) error

	// Put writes the grammar under its Name, replacing any
	// previous version.
	Put(ctx context.Context, g *core.Grammar) error

	// Get returns an uncompiled Grammar or a *NotFound.
	Get(ctx context.Context, name string) (*core.Grammar, error)

	// List returns the names of the stored grammars in order.
	List(ctx context.Context) ([]string, error)

	// Rem removes the named grammar.  Removing a grammar that
	// isn't there isn't an error.
	Rem(ctx context.Context, name string) error
}

// Load gets the named grammar and compiles it.
func Load(ctx context.Context, s Storage, name string, interpreters map[string]core.Interpreter) (*core.Grammar, error) {
	g, err := s.Get(ctx, name)
	if err != nil {
		return nil, err
	}
	if err = g.Compile(ctx, interpreters, true); err != nil {
		return nil, fmt.Errorf("compiling stored grammar \"%s\": %w", name, err)
	}
	return g, nil
}
