// Package eval walks an internal/ast tree and produces internal/object
// values against a live internal/object.Environment. Every stage aborts on
// the first error rather than collecting and recovering from several.
package eval

import (
	"github.com/loomlang/loom/internal/ast"
	"github.com/loomlang/loom/internal/loomerr"
	"github.com/loomlang/loom/internal/object"
)

// watchSlot is the single ambient dependency-tracking registration active
// during a watch block's (re-)evaluation. At most one watch declaration is
// "armed" at a time; every Identifier read while it's armed registers
// itself against the environment it was read from, pointing back at Home.
type watchSlot struct {
	Name  string
	Block *ast.BlockExpression
	Home  *object.Environment
}

// Eval evaluates program against env and returns the program's result
// value. The final accumulated bindings are left in env itself — callers
// render it with env.String() for diagnostics or golden comparison.
func Eval(program *ast.Program, env *object.Environment) (object.Object, error) {
	return evalProgram(program, env)
}

// evalProgram walks statements in order but — unlike a block — stops at the
// first statement whose value is not None, and that value becomes the
// program's own result.
func evalProgram(program *ast.Program, env *object.Environment) (object.Object, error) {
	var value object.Object = object.NONE
	for _, stmt := range program.Statements {
		v, err := evalStatement(stmt, env, nil)
		if err != nil {
			return nil, err
		}
		value = v
		if _, isNone := value.(*object.None); !isNone {
			break
		}
	}
	return value, nil
}

func evalStatement(stmt ast.Statement, env *object.Environment, watch *watchSlot) (object.Object, error) {
	switch s := stmt.(type) {
	case *ast.LetStatement:
		value, err := evalExpression(s.Value, env, watch)
		if err != nil {
			return nil, err
		}
		if ret, ok := value.(*object.Return); ok {
			return ret, nil
		}
		env.Define(s.Name.Value, value)
		return object.NONE, nil

	case *ast.ExpressionStatement:
		value, err := evalExpression(s.Expression, env, watch)
		if err != nil {
			return nil, err
		}
		if object.IsReturnLike(value) {
			return value, nil
		}
		return object.NONE, nil

	case *ast.ReturnStatement:
		value, err := evalExpression(s.Value, env, watch)
		if err != nil {
			return nil, err
		}
		return &object.Return{Value: value}, nil

	case *ast.BlockReturnStatement:
		value, err := evalExpression(s.Value, env, watch)
		if err != nil {
			return nil, err
		}
		return &object.BlockReturn{Value: value}, nil

	case *ast.WatchStatement:
		return evalWatchStatement(s, env)

	default:
		return nil, loomerr.New("unknown statement type %T", stmt)
	}
}

func evalExpression(expr ast.Expression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return &object.Number{Value: e.Value}, nil

	case *ast.BooleanLiteral:
		return object.NativeBool(e.Value), nil

	case *ast.StringLiteral:
		return &object.String{Value: e.Value}, nil

	case *ast.Identifier:
		return evalIdentifier(e, env, watch)

	case *ast.InfixExpression:
		return evalInfixExpression(e, env, watch)

	case *ast.FunctionLiteral:
		return &object.Function{Parameters: e.Parameters, Body: e.Body, Env: env}, nil

	case *ast.CallExpression:
		return evalCallExpression(e, env, watch)

	case *ast.IfExpression:
		return evalIfExpression(e, env, watch)

	case *ast.ArrayLiteral:
		return evalArrayLiteral(e, env, watch)

	case *ast.IndexExpression:
		return evalIndexExpression(e, env, watch)

	case *ast.ForExpression:
		return evalForExpression(e, env, watch)

	case *ast.SwitchExpression:
		return evalSwitchExpression(e, env, watch)

	case *ast.AssignExpression:
		return evalAssignExpression(e, env, watch)

	case *ast.BlockExpression:
		return evalBlockExpression(e, env, watch)

	default:
		return nil, loomerr.New("unknown expression type %T", expr)
	}
}

// evalIdentifier registers a watch dependency (if one is armed) on env —
// the environment instance this read was made against, not the ancestor
// where the binding actually resolves — then resolves name up the parent
// chain.
func evalIdentifier(id *ast.Identifier, env *object.Environment, watch *watchSlot) (object.Object, error) {
	if watch != nil {
		env.SetWatch(id.Value, &object.Watch{Name: watch.Name, Home: watch.Home, Block: watch.Block})
	}
	value, ok := env.Get(id.Value)
	if !ok {
		return nil, loomerr.New("variable not found %s", id.Value)
	}
	return value, nil
}
