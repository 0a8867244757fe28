package eval

import (
	"github.com/loomlang/loom/internal/ast"
	"github.com/loomlang/loom/internal/loomerr"
	"github.com/loomlang/loom/internal/object"
)

// evalForExpression iterates Variable over the positional slot list of an
// Array, snapshotting the slot count up front so concurrent growth of the
// array during iteration can't extend the loop — though keyed slots are
// still resolved through a fresh map lookup each iteration, so map value
// mutations mid-loop ARE observed. One fresh child environment is created
// per iteration. A Return propagates out of the whole loop immediately; a
// None body result continues to the next iteration; any other value
// terminates the loop early and becomes the for-expression's own result.
func evalForExpression(fe *ast.ForExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	iterable, err := evalExpression(fe.Iterable, env, watch)
	if err != nil {
		return nil, err
	}
	arr, ok := iterable.(*object.Array)
	if !ok {
		return nil, loomerr.New("not an array")
	}

	slots := arr.Elements
	for _, slot := range slots {
		var value object.Object
		if slot.IsKey {
			v, ok := arr.Map[slot.Key]
			if !ok {
				return nil, loomerr.New("key not found")
			}
			value = v
		} else {
			value = slot.Value
		}

		iterEnv := object.NewChild(env)
		iterEnv.Define(fe.Variable.Value, value)
		result, err := evalBlockExpression(fe.Body, iterEnv, watch)
		if err != nil {
			return nil, err
		}
		if _, isReturn := result.(*object.Return); isReturn {
			return result, nil
		}
		if _, isNone := result.(*object.None); isNone {
			continue
		}
		return result, nil
	}
	return object.NONE, nil
}

// evalSwitchExpression evaluates the scrutinee once, then tries each case
// in source order. A matched case whose body evaluates to a non-None value
// (including Return) short-circuits immediately with that value — this is
// the only way a case result actually escapes the switch. A matched case
// whose body is None does NOT short-circuit: evaluation falls through to
// the remaining cases, and finally to default — exactly as though the case
// hadn't matched, since producing None means the body had no value to
// contribute.
func evalSwitchExpression(se *ast.SwitchExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	scrutinee, err := evalExpression(se.Expression, env, watch)
	if err != nil {
		return nil, err
	}

	for _, c := range se.Cases {
		condValue, err := evalExpression(c.Condition, env, watch)
		if err != nil {
			return nil, err
		}
		if !object.Equal(condValue, scrutinee) {
			continue
		}
		body, err := evalBlockExpression(c.Body, env, watch)
		if err != nil {
			return nil, err
		}
		if _, isNone := body.(*object.None); !isNone {
			return body, nil
		}
	}

	if se.Default == nil {
		return object.NONE, nil
	}
	body, err := evalBlockExpression(se.Default, env, watch)
	if err != nil {
		return nil, err
	}
	if _, isNone := body.(*object.None); isNone {
		return object.NONE, nil
	}
	return body, nil
}

// evalAssignExpression evaluates Value exactly once, then dispatches on the
// kind of Target: an Identifier assignment or an array element assignment.
// Any other left-hand side is a runtime error — the grammar doesn't reject
// it syntactically.
func evalAssignExpression(ae *ast.AssignExpression, env *object.Environment, watch *watchSlot) (object.Object, error) {
	switch target := ae.Target.(type) {
	case *ast.Identifier:
		value, err := evalExpression(ae.Value, env, watch)
		if err != nil {
			return nil, err
		}
		return assignIdentifier(target, value, env)

	case *ast.IndexExpression:
		value, err := evalExpression(ae.Value, env, watch)
		if err != nil {
			return nil, err
		}
		return assignIndex(target, value, env, watch)

	default:
		return nil, loomerr.New("invalid assignment")
	}
}

// assignIdentifier mutates name's binding wherever it's found in env's
// parent chain, then checks for a registered watch on env itself — the
// environment the assignment's left-hand identifier was evaluated against
// at the call site, which is not necessarily the scope that actually holds
// the binding. If one is registered, its block is re-evaluated in its
// declaring (home) environment and rebound there, with watch tracking
// cleared for that re-evaluation so the watch doesn't re-register against
// itself and loop.
func assignIdentifier(id *ast.Identifier, value object.Object, env *object.Environment) (object.Object, error) {
	env.Assign(id.Value, value)

	w, ok := env.WatchFor(id.Value)
	if !ok {
		return value, nil
	}
	result, err := evalBlockExpression(w.Block, w.Home, nil)
	if err != nil {
		return nil, err
	}
	w.Home.Define(w.Name, result)
	return value, nil
}

// assignIndex writes through an array element. A Number index overwrites
// the slot at that position outright — even if it previously held a key
// marker, orphaning that key's old map entry from the slot list — subject
// to a bounds check. A String index only ever touches the map, never the
// slot list, so assigning a brand new key makes it reachable by string
// index but invisible to positional iteration or to String's rendering.
// Element writes never consult or fire watches.
func assignIndex(ie *ast.IndexExpression, value object.Object, env *object.Environment, watch *watchSlot) (object.Object, error) {
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
		if err := arr.AssignIndex(int(idx.Value), value); err != nil {
			return nil, err
		}
	case *object.String:
		arr.AssignKey(idx.Value, value)
	default:
		return nil, loomerr.New("%s is not a valid index", index.String())
	}
	return value, nil
}

// evalWatchStatement arms dependency tracking (unless name is already bound
// anywhere in env's parent chain, in which case redeclaration suppresses
// tracking entirely), evaluates Block once under that tracking, and defines
// the result as Name in env — env becomes the watch's home environment for
// every future re-fire.
func evalWatchStatement(ws *ast.WatchStatement, env *object.Environment) (object.Object, error) {
	var watch *watchSlot
	if _, alreadyBound := env.Get(ws.Name); !alreadyBound {
		watch = &watchSlot{Name: ws.Name, Block: ws.Block, Home: env}
	}
	value, err := evalBlockExpression(ws.Block, env, watch)
	if err != nil {
		return nil, err
	}
	env.Define(ws.Name, value)
	return object.NONE, nil
}
