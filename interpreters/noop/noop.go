package noop

import (
	"context"

	"github.com/Comcast/atn/core"

	"github.com/tliron/commonlog"
)

var log = commonlog.GetLogger("atn.noop")

// Interpreter compiles nothing and reports every predicate as true.
type Interpreter struct {
	// Silent, if false, will suppress warning log messages.
	Silent bool
}

func NewInterpreter() *Interpreter {
	return &Interpreter{}
}

func (i *Interpreter) Compile(ctx context.Context, code interface{}) (interface{}, error) {
	if !i.Silent {
		log.Warning("using noop Interpreter for compilation")
	}
	return nil, nil
}

func (i *Interpreter) Exec(ctx context.Context, f *core.Frame, code interface{}, compiled interface{}) (bool, error) {
	if !i.Silent {
		log.Warningf("using noop Interpreter for execution at %s", f)
	}
	return true, nil
}
