/* Copyright 2018 Comcast Cable Communications Management, LLC
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
	"sync/atomic"
)

// Grammarian enables other things to manifest themselves as Grammars.
//
// A Grammar is itself a Grammarian.  An UpdatableGrammar is also a
// Grammarian, but it's not itself a Grammar.
type Grammarian interface {
	Grammar() *Grammar
}

// Grammar makes any Grammar a Grammarian.
func (g *Grammar) Grammar() *Grammar {
	return g
}

// UpdatableGrammar is a Grammarian with an underlying Grammar that
// can be changed at any time.
//
// A parse should call Grammar() once and keep the result.  Then a
// SetGrammar during the parse doesn't pull the network out from under
// it.
type UpdatableGrammar struct {
	g atomic.Pointer[Grammar]
}

// NewUpdatableGrammar makes one with the given initial grammar, which
// can be changed later via SetGrammar.
func NewUpdatableGrammar(g *Grammar) *UpdatableGrammar {
	u := &UpdatableGrammar{}
	u.g.Store(g)
	return u
}

// SetGrammar atomically changes the underlying grammar, which must
// already be compiled.
func (u *UpdatableGrammar) SetGrammar(g *Grammar) error {
	if !g.Compiled() {
		return &GrammarNotCompiled{g}
	}
	u.g.Store(g)
	return nil
}

// Grammar implements the Grammarian interface.
func (u *UpdatableGrammar) Grammar() *Grammar {
	return u.g.Load()
}
