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
	"math"
	"testing"
)

func TestCanonicalAttrs(t *testing.T) {
	inner := map[string]interface{}{"likes": "tacos"}
	attrs := map[string]interface{}{
		"n":     3,
		"inner": inner,
	}

	m, err := CanonicalAttrs(attrs)
	if err != nil {
		t.Fatal(err)
	}
	if m["n"] != float64(3) {
		t.Fatalf("%#v", m["n"])
	}

	m["inner"].(map[string]interface{})["likes"] = "queso"
	if inner["likes"] != "tacos" {
		t.Fatal("shared structure")
	}

	if m, err = CanonicalAttrs(nil); err != nil || m == nil || len(m) != 0 {
		t.Fatal(m, err)
	}

	if _, err = CanonicalAttrs(map[string]interface{}{"x": math.NaN()}); err == nil {
		t.Fatal("expected an error for NaN")
	}
}
