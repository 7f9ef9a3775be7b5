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

package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/Comcast/atn/core"
)

func TestNoop(t *testing.T) {
	var s Storage = &NoopStorage{}

	ctx := context.Background()
	if err := s.Open(ctx); err != nil {
		t.Fatal(err)
	}
	defer s.Close(ctx)

	if err := s.Put(ctx, &core.Grammar{Name: "g"}); err != nil {
		t.Fatal(err)
	}

	_, err := Load(ctx, s, "g", nil)
	var nf *NotFound
	if !errors.As(err, &nf) {
		t.Fatalf("expected a NotFound, not %#v", err)
	}
	if nf.Name != "g" {
		t.Fatal(nf.Name)
	}

	names, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 0 {
		t.Fatal(names)
	}
}
