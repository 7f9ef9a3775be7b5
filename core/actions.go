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

package core

import (
	"context"
)

// DefaultInterpreters will be used in PredicateSource.Compile if
// the given nil interpreters.
var DefaultInterpreters = make(map[string]Interpreter)

// InterpretersMap maps interpreter names to Interpreters.
type InterpretersMap map[string]Interpreter

func NewInterpretersMap() InterpretersMap {
	return make(InterpretersMap, 8)
}

// Interpreter can optionally compile and execute code for user
// predicates.
type Interpreter interface {
	// Compile can make something that helps when Exec()ing the
	// code later.
	Compile(ctx context.Context, code interface{}) (interface{}, error)

	// Exec runs the code and returns the predicate's verdict.
	// The result of previous Compile() might be provided.
	//
	// The Frame is nil when the predicate is not context
	// dependent.
	Exec(ctx context.Context, f *Frame, code interface{}, compiled interface{}) (bool, error)
}

// PredicateSource can be compiled to a PredicateAction.
type PredicateSource struct {
	Interpreter string      `json:"interpreter,omitempty" yaml:",omitempty"`
	Source      interface{} `json:"source"`
}

// Copy makes a shallow copy.
func (s *PredicateSource) Copy() *PredicateSource {
	if s == nil {
		return nil
	}
	return &PredicateSource{
		Interpreter: s.Interpreter,
		Source:      s.Source,
	}
}

// Compile attempts to compile the PredicateSource into a
// PredicateAction using the given interpreters, which defaults to
// DefaultInterpreters.
func (s *PredicateSource) Compile(ctx context.Context, interpreters map[string]Interpreter) (PredicateAction, error) {
	if interpreters == nil {
		interpreters = DefaultInterpreters
	}

	interpreter, have := interpreters[s.Interpreter]
	if !have {
		return nil, InterpreterNotFound
	}

	x, err := interpreter.Compile(ctx, s.Source)
	if err != nil {
		return nil, err
	}

	return &FuncPredicate{
		F: func(ctx context.Context, f *Frame) (bool, error) {
			return interpreter.Exec(ctx, f, s.Source, x)
		},
	}, nil
}
