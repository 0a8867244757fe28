package eval

import (
	"fmt"
	"io"

	"github.com/loomlang/loom/internal/loomerr"
	"github.com/loomlang/loom/internal/object"
)

// NewGlobalEnvironment returns a root environment seeded with the single
// built-in every Loom program starts with: print.
func NewGlobalEnvironment(out io.Writer) *object.Environment {
	env := object.NewRootEnvironment()
	env.Define("print", &object.BuiltInFunction{Name: "print", Fn: printBuiltin(out)})
	return env
}

// printBuiltin writes its one argument's String rendering to out followed
// by a newline.
func printBuiltin(out io.Writer) func(args []object.Object) (object.Object, error) {
	return func(args []object.Object) (object.Object, error) {
		if len(args) != 1 {
			return nil, loomerr.New("wrong number of arguments. got=%d, want=1", len(args))
		}
		fmt.Fprintln(out, args[0].String())
		return object.NULL, nil
	}
}
