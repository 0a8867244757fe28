package eval

import (
	"github.com/loomlang/loom/internal/ast"
	"github.com/loomlang/loom/internal/loomerr"
	"github.com/loomlang/loom/internal/object"
)

func evalInfixExpression(ie *ast.InfixExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	left, err := evalExpression(ie.Left, env, watch)
	if err != nil {
		return nil, err
	}
	right, err := evalExpression(ie.Right, env, watch)
	if err != nil {
		return nil, err
	}

	switch l := left.(type) {
	case *object.Number:
		r, ok := right.(*object.Number)
		if !ok {
			return nil, loomerr.New("invalid operator")
		}
		return evalNumberInfix(ie.Operator, l.Value, r.Value)

	case *object.String:
		r, ok := right.(*object.String)
		if !ok {
			return nil, loomerr.New("invalid operator")
		}
		switch ie.Operator {
		case "+":
			return &object.String{Value: l.Value + r.Value}, nil
		case "==":
			return object.NativeBool(l.Value == r.Value), nil
		case "!=":
			return object.NativeBool(l.Value != r.Value), nil
		default:
			return nil, loomerr.New("invalid operator")
		}

	case *object.Boolean:
		r, ok := right.(*object.Boolean)
		if !ok {
			return nil, loomerr.New("invalid operator")
		}
		switch ie.Operator {
		case "==":
			return object.NativeBool(l.Value == r.Value), nil
		case "!=":
			return object.NativeBool(l.Value != r.Value), nil
		default:
			return nil, loomerr.New("invalid operator")
		}

	default:
		return nil, loomerr.New("invalid operator")
	}
}

func evalNumberInfix(operator string, l, r int32) (object.Object, error) {
	switch operator {
	case "+":
		return &object.Number{Value: l + r}, nil
	case "-":
		return &object.Number{Value: l - r}, nil
	case "*":
		return &object.Number{Value: l * r}, nil
	case "/":
		if r == 0 {
			return nil, loomerr.New("division by zero")
		}
		return &object.Number{Value: l / r}, nil
	case "%":
		if r == 0 {
			return nil, loomerr.New("division by zero")
		}
		return &object.Number{Value: l % r}, nil
	case "==":
		return object.NativeBool(l == r), nil
	case "!=":
		return object.NativeBool(l != r), nil
	case "<":
		return object.NativeBool(l < r), nil
	case "<=":
		return object.NativeBool(l <= r), nil
	case ">":
		return object.NativeBool(l > r), nil
	case ">=":
		return object.NativeBool(l >= r), nil
	case "&&":
		return object.NativeBool(l != 0 && r != 0), nil
	case "||":
		return object.NativeBool(l != 0 || r != 0), nil
	default:
		return nil, loomerr.New("invalid operator")
	}
}

// evalCallExpression evaluates Left, which must resolve to a Function or
// BuiltInFunction. Function arguments are evaluated in the caller's
// environment, one per parameter (extra arguments are never evaluated;
// missing ones are an error). BuiltInFunction arguments are all evaluated
// in the caller's environment and its return value is discarded — calling
// a builtin always yields Null.
func evalCallExpression(ce *ast.CallExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	callee, err := evalExpression(ce.Left, env, watch)
	if err != nil {
		return nil, err
	}

	switch fn := callee.(type) {
	case *object.Function:
		if len(ce.Arguments) < len(fn.Parameters) {
			return nil, loomerr.New("wrong number of arguments: got=%d, want=%d", len(ce.Arguments), len(fn.Parameters))
		}
		callEnv := object.NewChild(fn.Env)
		for i, param := range fn.Parameters {
			value, err := evalExpression(ce.Arguments[i], env, watch)
			if err != nil {
				return nil, err
			}
			callEnv.Define(param.Value, value)
		}
		result, err := evalBlockExpression(fn.Body, callEnv, watch)
		if err != nil {
			return nil, err
		}
		if ret, ok := result.(*object.Return); ok {
			return ret.Value, nil
		}
		return result, nil

	case *object.BuiltInFunction:
		args := make([]object.Object, len(ce.Arguments))
		for i, argExpr := range ce.Arguments {
			value, err := evalExpression(argExpr, env, watch)
			if err != nil {
				return nil, err
			}
			args[i] = value
		}
		if _, err := fn.Fn(args); err != nil {
			return nil, err
		}
		return object.NULL, nil

	default:
		return nil, loomerr.New("not a function: %s", callee.String())
	}
}

// evalBlockExpression evaluates statements in env directly — a block does
// not open its own scope. It stops at the first return-like statement
// value; a BlockReturn unwraps to its payload, a Return passes through
// unchanged (for the caller — a function call or a for/switch body — to
// decide what it means), and anything else that isn't None is the block's
// own value.
func evalBlockExpression(be *ast.BlockExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	var value object.Object = object.NONE
	for _, stmt := range be.Statements {
		v, err := evalStatement(stmt, env, watch)
		if err != nil {
			return nil, err
		}
		value = v
		if object.IsReturnLike(value) {
			break
		}
	}
	if br, ok := value.(*object.BlockReturn); ok {
		return br.Value, nil
	}
	return value, nil
}

// evalIfExpression evaluates its chosen branch in the same environment as
// the if itself; neither branch opens a new scope. Else-if has no
// dedicated grammar — `else` must be followed directly by a block.
func evalIfExpression(ie *ast.IfExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	cond, err := evalExpression(ie.Condition, env, watch)
	if err != nil {
		return nil, err
	}
	if !object.IsFalsey(cond) {
		return evalBlockExpression(ie.Consequence, env, watch)
	}
	if ie.Alternative != nil {
		return evalBlockExpression(ie.Alternative, env, watch)
	}
	return object.NONE, nil
}

func evalArrayLiteral(al *ast.ArrayLiteral, env *object.Environment, watch *watchSlot) (object.Object, error) {
	arr := object.NewArray()
	for _, elem := range al.Elements {
		if elem.KeyValue != nil {
			value, err := evalExpression(elem.KeyValue.Value, env, watch)
			if err != nil {
				return nil, err
			}
			arr.AppendKeyed(elem.KeyValue.Key, value)
			continue
		}
		value, err := evalExpression(elem.Value, env, watch)
		if err != nil {
			return nil, err
		}
		arr.Append(value)
	}
	return arr, nil
}

// evalIndexExpression reads left[index]: a Number indexes the positional
// slot list (resolving a key marker through the map), a String indexes the
// map directly.
func evalIndexExpression(ie *ast.IndexExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	left, err := evalExpression(ie.Left, env, watch)
	if err != nil {
		return nil, err
	}
	arr, ok := left.(*object.Array)
	if !ok {
		return nil, loomerr.New("%s is not an array", left.String())
	}
	index, err := evalExpression(ie.Index, env, watch)
	if err != nil {
		return nil, err
	}

	switch idx := index.(type) {
	case *object.Number:
		i := int(idx.Value)
		if i < 0 || i >= len(arr.Elements) {
			return nil, loomerr.New("index out of bounds")
		}
		slot := arr.Elements[i]
		if !slot.IsKey {
			return slot.Value, nil
		}
		value, ok := arr.Map[slot.Key]
		if !ok {
			return nil, loomerr.New("key not found")
		}
		return value, nil

	case *object.String:
		value, ok := arr.Map[idx.Value]
		if !ok {
			return nil, loomerr.New("key not found")
		}
		return value, nil

	default:
		return nil, loomerr.New("%s is not a valid index", index.String())
	}
}
