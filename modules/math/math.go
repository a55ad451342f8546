package math

import (
	"context"
	"fmt"
	"math"

	"github.com/marmoset-lang/marmoset/object"
)

// oneFloat adapts a single-argument float function to the builtin
// signature.
func oneFloat(name string, fn func(float64) float64) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("type error: math.%s() takes exactly 1 argument (%d given)", name, len(args))
		}
		x, err := object.AsFloat(args[0])
		if err != nil {
			return nil, err
		}
		return object.NewFloat(fn(x)), nil
	}
}

func twoFloats(name string, fn func(float64, float64) float64) object.BuiltinFunction {
	return func(ctx context.Context, args ...object.Object) (object.Object, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("type error: math.%s() takes exactly 2 arguments (%d given)", name, len(args))
		}
		x, err := object.AsFloat(args[0])
		if err != nil {
			return nil, err
		}
		y, err := object.AsFloat(args[1])
		if err != nil {
			return nil, err
		}
		return object.NewFloat(fn(x, y)), nil
	}
}

// Abs preserves the argument's type: ints stay ints.
func Abs(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: math.abs() takes exactly 1 argument (%d given)", len(args))
	}
	switch arg := args[0].(type) {
	case *object.Int:
		v := arg.Value()
		if v < 0 {
			v = -v
		}
		return object.NewInt(v), nil
	case *object.Float:
		return object.NewFloat(math.Abs(arg.Value())), nil
	default:
		return nil, fmt.Errorf("type error: math.abs() expected a number (%s given)", args[0].Type())
	}
}

func Min(ctx context.Context, args ...object.Object) (object.Object, error) {
	return extreme("min", args, func(best, x float64) bool { return x < best })
}

func Max(ctx context.Context, args ...object.Object) (object.Object, error) {
	return extreme("max", args, func(best, x float64) bool { return x > best })
}

// extreme picks an element from the arguments, or from a single list
// argument, by repeated comparison.
func extreme(name string, args []object.Object, better func(best, x float64) bool) (object.Object, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("type error: math.%s() requires at least 1 argument", name)
	}
	values := args
	if len(args) == 1 {
		if list, ok := args[0].(*object.List); ok {
			values = list.Value()
			if len(values) == 0 {
				return nil, fmt.Errorf("value error: math.%s() of an empty list", name)
			}
		}
	}
	result := values[0]
	best, err := object.AsFloat(result)
	if err != nil {
		return nil, err
	}
	for _, value := range values[1:] {
		x, err := object.AsFloat(value)
		if err != nil {
			return nil, err
		}
		if better(best, x) {
			best = x
			result = value
		}
	}
	return result, nil
}

func Sum(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: math.sum() takes exactly 1 argument (%d given)", len(args))
	}
	seq, err := object.Iterate(args[0])
	if err != nil {
		return nil, err
	}
	items, err := seq.ToList(ctx)
	if err != nil {
		return nil, err
	}
	var total float64
	allInts := true
	for _, value := range items.(*object.List).Value() {
		if _, ok := value.(*object.Int); !ok {
			allInts = false
		}
		x, err := object.AsFloat(value)
		if err != nil {
			return nil, err
		}
		total += x
	}
	if allInts {
		return object.NewInt(int64(total)), nil
	}
	return object.NewFloat(total), nil
}

func Inf(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) > 1 {
		return nil, fmt.Errorf("type error: math.inf() takes 0 or 1 arguments (%d given)", len(args))
	}
	sign := 1
	if len(args) == 1 {
		arg, err := object.AsInt(args[0])
		if err != nil {
			return nil, err
		}
		sign = int(arg)
	}
	return object.NewFloat(math.Inf(sign)), nil
}

func IsInf(ctx context.Context, args ...object.Object) (object.Object, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("type error: math.is_inf() takes exactly 1 argument (%d given)", len(args))
	}
	x, err := object.AsFloat(args[0])
	if err != nil {
		return nil, err
	}
	return object.NewBool(math.IsInf(x, 0)), nil
}

func Module() *object.Module {
	return object.NewBuiltinsModule("math", map[string]object.Object{
		"E":      object.NewFloat(math.E),
		"PI":     object.NewFloat(math.Pi),
		"abs":    object.NewBuiltin("abs", Abs),
		"atan2":  object.NewBuiltin("atan2", twoFloats("atan2", math.Atan2)),
		"cbrt":   object.NewBuiltin("cbrt", oneFloat("cbrt", math.Cbrt)),
		"ceil":   object.NewBuiltin("ceil", oneFloat("ceil", math.Ceil)),
		"cos":    object.NewBuiltin("cos", oneFloat("cos", math.Cos)),
		"exp":    object.NewBuiltin("exp", oneFloat("exp", math.Exp)),
		"floor":  object.NewBuiltin("floor", oneFloat("floor", math.Floor)),
		"hypot":  object.NewBuiltin("hypot", twoFloats("hypot", math.Hypot)),
		"inf":    object.NewBuiltin("inf", Inf),
		"is_inf": object.NewBuiltin("is_inf", IsInf),
		"log":    object.NewBuiltin("log", oneFloat("log", math.Log)),
		"log10":  object.NewBuiltin("log10", oneFloat("log10", math.Log10)),
		"log2":   object.NewBuiltin("log2", oneFloat("log2", math.Log2)),
		"max":    object.NewBuiltin("max", Max),
		"min":    object.NewBuiltin("min", Min),
		"mod":    object.NewBuiltin("mod", twoFloats("mod", math.Mod)),
		"pow":    object.NewBuiltin("pow", twoFloats("pow", math.Pow)),
		"round":  object.NewBuiltin("round", oneFloat("round", math.Round)),
		"sin":    object.NewBuiltin("sin", oneFloat("sin", math.Sin)),
		"sqrt":   object.NewBuiltin("sqrt", oneFloat("sqrt", math.Sqrt)),
		"sum":    object.NewBuiltin("sum", Sum),
		"tan":    object.NewBuiltin("tan", oneFloat("tan", math.Tan)),
	})
}
