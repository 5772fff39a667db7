package emit

import (
	"fmt"

	"update-object-generator/internal/codemodel"
)

// record is an evaluated value of a generated or source type; a nil entry is the absent value.
type record map[string]any

// call evaluates a function of the document model against plain records.
func call(fn *codemodel.FuncDecl, receiver, param record) record {
	env := map[string]any{}

	for _, stmt := range fn.Body {
		switch s := stmt.(type) {
		case *codemodel.Let:
			env[s.Name] = eval(s.Value, receiver, param, env)
		case *codemodel.Return:
			return eval(s.Value, receiver, param, env).(record)
		}
	}

	panic("function without return: " + fn.Name)
}

func eval(e codemodel.Expr, receiver, param record, env map[string]any) any {
	switch e := e.(type) {
	case *codemodel.Absent:
		return nil
	case *codemodel.Literal:
		return e.Text
	case *codemodel.Local:
		return env[e.Name]
	case *codemodel.FieldRef:
		if e.Owner == codemodel.OwnerParam {
			return param[e.Field]
		}

		return receiver[e.Field]
	case *codemodel.Coalesce:
		if v := eval(e.Value, receiver, param, env); v != nil {
			return v
		}

		return eval(e.Fallback, receiver, param, env)
	case *codemodel.Wrap:
		return eval(e.Value, receiver, param, env)
	case *codemodel.Convert:
		return eval(e.Value, receiver, param, env)
	case *codemodel.AssertPresent:
		v := eval(e.Value, receiver, param, env)
		if v == nil {
			panic(e.Message)
		}

		return v
	case *codemodel.Construct:
		out := record{}
		for _, a := range e.Args {
			out[a.Name] = eval(a.Value, receiver, param, env)
		}

		return out
	case *codemodel.CopyWith:
		out := record{}
		for k, v := range receiver {
			out[k] = v
		}

		for _, a := range e.Args {
			out[a.Name] = eval(a.Value, receiver, param, env)
		}

		return out
	default:
		panic(fmt.Sprintf("unexpected expression %T", e))
	}
}
