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
	"fmt"
)

// Example evaluates the operator guards of a left-recursive rule at
// several precedence levels.
func Example() {
	ctx := context.Background()

	g, err := ExprGrammar(ctx)
	if err != nil {
		panic(err)
	}

	loop := g.ATN().State(3)
	for _, precedence := range []int{2, 1, 0} {
		f := (*Frame)(nil).Push(0, -1, precedence)
		for _, t := range loop.Transitions() {
			guard, is := t.(Guard)
			if !is {
				continue
			}
			ok, err := Traversable(ctx, g, f, guard, 0, 0, 0)
			if err != nil {
				panic(err)
			}
			fmt.Printf("_p=%d %s: %v\n", precedence, guard, ok)
		}
	}

	// Output:
	// _p=2 1 >= _p: true
	// _p=2 2 >= _p: true
	// _p=1 1 >= _p: true
	// _p=1 2 >= _p: false
	// _p=0 1 >= _p: false
	// _p=0 2 >= _p: false
}

func ExampleAnd() {
	c := And(&PrecedencePredicate{Precedence: 1}, &PrecedencePredicate{Precedence: 3})
	fmt.Println(c)
	c = Or(&PrecedencePredicate{Precedence: 1}, &PrecedencePredicate{Precedence: 3})
	fmt.Println(c)
	// Output:
	// {3>=prec}?
	// {1>=prec}?
}
