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

// Package ecmascript provides an ECMAScript-compatible predicate
// interpreter.
package ecmascript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Comcast/atn/core"

	"github.com/dop251/goja"
	"github.com/tliron/commonlog"
)

var (
	// InterruptedMessage is the string value of Interrupted.
	InterruptedMessage = "RuntimeError: timeout"

	// Interrupted is returned by Exec if the execution is
	// interrupted.
	Interrupted = errors.New(InterruptedMessage)

	log = commonlog.GetLogger("atn.ecmascript")
)

// init adds a Interpreter as one of the DefaultInterpreters
func init() {
	core.DefaultInterpreters["ecmascript"] = NewInterpreter()
}

// Interpreter implements core.Intepreter using Goja, which is a
// Go implementation of ECMAScript 5.1+.
//
// See https://github.com/dop251/goja.
type Interpreter struct {

	// Test is used to expose or hide some runtime
	// capabilities.
	Test bool
}

// NewInterpreter makes a new Interpreter.
func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func wrapSrc(src string) string {
	return fmt.Sprintf("(function() {\n%s\n}());\n", src)
}

func AsSource(src interface{}) (code string, err error) {
	switch vv := src.(type) {
	case string:
		code = vv
		return
	default:
		err = errors.New(fmt.Sprintf("bad ECMAScript source (%T)", src))
		return
	}
}

// Compile calls goja.Compile.  This step is optional.
//
// The source is the body of a function that returns a boolean.
func (i *Interpreter) Compile(ctx context.Context, src interface{}) (interface{}, error) {
	code, err := AsSource(src)
	if err != nil {
		return nil, err
	}

	code = wrapSrc(code)

	obj, err := goja.Compile("", code, true)
	if err != nil {
		return nil, errors.New(err.Error() + ": " + code)
	}

	return obj, nil
}

// attrs gives the script its own copy of the frame's attributes.
func attrs(f *core.Frame) (map[string]interface{}, error) {
	if f == nil {
		return map[string]interface{}{}, nil
	}
	return core.CanonicalAttrs(f.Attrs)
}

// Exec implements the Interpreter method of the same name.
//
// The following properties are available from the runtime at _.
//
//	precedence: the precedence argument of the current invocation.
//	rules: rule indexes on the call stack, innermost first.
//	depth: the number of invocations on the call stack.
//	attrs: a copy of the current invocation's attributes.
//
// All of these are empty (or 0) for a predicate that isn't context
// dependent.
//
// Testing properties (enabled by the interpreter's Test property):
//
//	sleep(ms): sleep for the given number of milliseconds.
//	log(x): log the given value.
//
// The script must return a boolean.
func (i *Interpreter) Exec(ctx context.Context, f *core.Frame, src interface{}, compiled interface{}) (bool, error) {
	var p *goja.Program
	if compiled == nil {
		var err error
		if compiled, err = i.Compile(ctx, src); err != nil {
			return false, err
		}
	}
	var is bool
	if p, is = compiled.(*goja.Program); !is {
		return false, fmt.Errorf("ECMAScript bad compilation: %T %#v", compiled, compiled)
	}

	as, err := attrs(f)
	if err != nil {
		return false, err
	}

	rules := make([]interface{}, 0, f.Depth())
	for _, r := range f.Rules() {
		rules = append(rules, r)
	}

	env := map[string]interface{}{
		"precedence": f.CurrentPrecedence(),
		"rules":      rules,
		"depth":      f.Depth(),
		"attrs":      as,
	}

	if i.Test {

		env["sleep"] = func(n interface{}) interface{} {
			switch vv := n.(type) {
			case goja.Value:
				n = vv.Export()
			}
			ms, is := n.(int64)
			if !is {
				panic(fmt.Sprintf("a %T is not an %T", n, ms))
			}
			time.Sleep(time.Duration(ms) * time.Millisecond)
			return nil
		}

		env["log"] = func(x interface{}) interface{} {
			switch vv := x.(type) {
			case goja.Value:
				x = vv.Export()
			}
			js, err := json.Marshal(&x)
			if err != nil {
				log.Warningf("log (can't marshal: %s)", err)
			} else {
				log.Infof("%s", js)
			}

			return x
		}
	}

	o := goja.New()
	o.Set("_", env)

	// We want to make sure that the following goroutine is
	// terminated as soon as possible.
	ictx, cancel := context.WithCancel(ctx)
	go func() {
		<-ictx.Done()
		// If this Exec method calls cancel() after RunProgram
		// returns, then we'll never see this
		// InterruptedMessage, which is actually the behavior
		// we want.  In this case, we weren't actually interrupted.
		o.Interrupt(InterruptedMessage)
	}()

	v, err := RunProgram(o, p)
	cancel()

	if err != nil {
		if _, is := err.(*goja.InterruptedError); is {
			return false, Interrupted
		}
		return false, err
	}

	switch vv := v.Export().(type) {
	case bool:
		return vv, nil
	default:
		return false, fmt.Errorf("%#v (%T) isn't a boolean", vv, vv)
	}
}

func RunProgram(o *goja.Runtime, p *goja.Program) (v goja.Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s", r)
		}
	}()
	return o.RunProgram(p)
}
