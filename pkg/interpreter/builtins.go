package interpreter

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
	"github.com/Zirconova/azurite/pkg/wav"
)

type nativeImpl func(i *Interpreter, call *ast.CallExpr, args []runtime.Value) (runtime.Value, error)

// nativeFunction is a builtin. An arity of -1 accepts any argument count.
type nativeFunction struct {
	name     string
	arity    int
	rawFirst bool
	impl     nativeImpl
}

var builtins map[string]nativeFunction

func init() {
	builtins = map[string]nativeFunction{
		"print": {name: "print", arity: -1, impl: builtinPrint},
		"sin":   {name: "sin", arity: 1, impl: mathBuiltin("sin", math.Sin)},
		"floor": {name: "floor", arity: 1, impl: mathBuiltin("floor", math.Floor)},
		"abs":   {name: "abs", arity: 1, impl: mathBuiltin("abs", math.Abs)},
		"rnd":   {name: "rnd", arity: 0, impl: builtinRnd},
		"write": {name: "write", arity: 2, rawFirst: true, impl: builtinWrite},
	}
}

// IsBuiltin reports whether name resolves to a builtin instead of a user
// function.
func IsBuiltin(name string) bool {
	_, ok := builtins[name]
	return ok
}

func builtinPrint(i *Interpreter, _ *ast.CallExpr, args []runtime.Value) (runtime.Value, error) {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, FormatValue(arg))
	}
	_, err := fmt.Fprintln(i.stdout, strings.Join(parts, " "))
	return nil, err
}

// FormatValue renders a value the way print does. Numbers use six
// significant digits, booleans print as 1 or 0.
func FormatValue(v runtime.Value) string {
	switch val := v.(type) {
	case runtime.NumberValue:
		return formatNumber(val.Val)
	case runtime.StringValue:
		return val.Val
	case runtime.BoolValue:
		if val.Val {
			return "1"
		}
		return "0"
	default:
		return "Unprintable datatype."
	}
}

func formatNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}
	return strconv.FormatFloat(f, 'g', 6, 64)
}

func mathBuiltin(name string, fn func(float64) float64) nativeImpl {
	return func(i *Interpreter, call *ast.CallExpr, args []runtime.Value) (runtime.Value, error) {
		num, ok := args[0].(runtime.NumberValue)
		if !ok {
			return nil, i.errorf(call, "cannot take %s of this type", name)
		}
		return runtime.NumberValue{Val: fn(num.Val)}, nil
	}
}

func builtinRnd(i *Interpreter, _ *ast.CallExpr, _ []runtime.Value) (runtime.Value, error) {
	return runtime.NumberValue{Val: i.rng.Float64()}, nil
}

// builtinWrite renders length samples of a wave into the buffer.
func builtinWrite(i *Interpreter, call *ast.CallExpr, args []runtime.Value) (runtime.Value, error) {
	wave, ok := args[0].(*runtime.WaveValue)
	if !ok {
		return nil, i.errorf(call, "only Wave objects can be written")
	}
	length, ok := args[1].(runtime.NumberValue)
	if !ok {
		return nil, i.errorf(call, "length must be a number")
	}
	written := 0
	for k := 0; float64(k) < length.Val; k++ {
		if k%4096 == 0 {
			if err := i.interrupted(); err != nil {
				return nil, err
			}
		}
		sample, err := i.sampleAndAdvance(wave, call)
		if err != nil {
			return nil, err
		}
		if err := i.buffer.Append(sample); err != nil {
			return nil, i.wrap(call, err)
		}
		written++
	}
	i.log.DebugContext(i.ctx, "write", "samples", written, "buffered", i.buffer.Len(), "seconds", float64(i.buffer.Len())/wav.SampleRate)
	return nil, nil
}
