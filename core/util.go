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
	"encoding/json"
)

// Canonicalize returns the JSON-equivalent of the given value: maps
// become map[string]interface{}, numbers become float64, and so on.
// The result shares nothing with the argument.
func Canonicalize(x interface{}) (interface{}, error) {
	var err error

	js, err := json.Marshal(&x)
	if err != nil {
		return nil, err
	}
	var y interface{}
	if err = json.Unmarshal(js, &y); err != nil {
		return nil, err
	}

	return y, nil
}

// CanonicalAttrs is Canonicalize for Frame.Attrs.  A nil map gives an
// empty map.
func CanonicalAttrs(attrs map[string]interface{}) (map[string]interface{}, error) {
	if attrs == nil {
		return map[string]interface{}{}, nil
	}
	x, err := Canonicalize(attrs)
	if err != nil {
		return nil, err
	}
	m, _ := x.(map[string]interface{})
	return m, nil
}
