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

// Package interpreters gathers the standard predicate interpreters.
package interpreters

import (
	"github.com/Comcast/atn/core"
	"github.com/Comcast/atn/interpreters/ecmascript"
	"github.com/Comcast/atn/interpreters/noop"
)

// Standard returns a map of the standard interpreters.
func Standard() core.InterpretersMap {
	is := core.NewInterpretersMap()

	es := ecmascript.NewInterpreter()
	is["ecmascript"] = es
	is["ecmascript-5.1"] = es

	is["noop"] = noop.NewInterpreter()

	return is
}

// Testing is Standard with the ECMAScript test utilities enabled.
func Testing() core.InterpretersMap {
	is := Standard()

	es := ecmascript.NewInterpreter()
	es.Test = true
	is["ecmascript"] = es
	is["ecmascript-5.1"] = es

	return is
}
