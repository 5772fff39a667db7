package typenorm

import (
	"go/types"

	"update-object-generator/internal/model"
)

var goBasics = map[types.BasicKind]string{
	types.Bool:       model.ScalarBoolean,
	types.String:     model.ScalarString,
	types.Int8:       model.ScalarByte,
	types.Int16:      model.ScalarShort,
	types.Int32:      model.ScalarInt,
	types.Int64:      model.ScalarLong,
	types.Int:        model.ScalarPlatformInt,
	types.Uint8:      model.ScalarUByte,
	types.Uint16:     model.ScalarUShort,
	types.Uint32:     model.ScalarUInt,
	types.Uint64:     model.ScalarULong,
	types.Uint:       model.ScalarPlatformUInt,
	types.Float32:    model.ScalarFloat,
	types.Float64:    model.ScalarDouble,
	types.Complex64:  model.ScalarComplex64,
	types.Complex128: model.ScalarComplex128,
}

// normalizeGo maps a Go type onto the canonical model. A pointer is the Go
// spelling of a nullable value; nested pointers have no canonical form.
func normalizeGo(t types.Type) (Result, error) {
	st, err := goArg(t)
	if err != nil {
		return Result{}, err
	}

	return Result{Type: st}, nil
}

func goArg(t types.Type) (model.SemanticType, error) {
	t = types.Unalias(t)

	ptr, ok := t.(*types.Pointer)
	if !ok {
		return goValue(t)
	}

	elem := types.Unalias(ptr.Elem())
	if _, nested := elem.(*types.Pointer); nested {
		return model.SemanticType{}, unresolved(t.String())
	}

	st, err := goValue(elem)
	if err != nil {
		return model.SemanticType{}, err
	}

	return st.WithNullable(true), nil
}

func goValue(t types.Type) (model.SemanticType, error) {
	switch tt := t.(type) {
	case *types.Basic:
		name, ok := goBasics[tt.Kind()]
		if !ok {
			return model.SemanticType{}, unresolved(tt.String())
		}

		return model.Scalar(name), nil
	case *types.Named:
		return goNamed(tt)
	case *types.Slice:
		elem, err := goArg(tt.Elem())
		if err != nil {
			return model.SemanticType{}, err
		}

		return model.Generic("", model.GenericList, elem), nil
	case *types.Map:
		key, err := goArg(tt.Key())
		if err != nil {
			return model.SemanticType{}, err
		}

		if isEmptyStruct(tt.Elem()) {
			return model.Generic("", model.GenericSet, key), nil
		}

		val, err := goArg(tt.Elem())
		if err != nil {
			return model.SemanticType{}, err
		}

		return model.Generic("", model.GenericMap, key, val), nil
	case *types.Interface:
		if tt.Empty() {
			return model.Scalar(model.ScalarAny), nil
		}

		return model.SemanticType{}, unresolved(tt.String())
	default:
		// Fixed-size arrays, channels, funcs, anonymous structs and type parameters.
		return model.SemanticType{}, unresolved(t.String())
	}
}

func goNamed(t *types.Named) (model.SemanticType, error) {
	obj := t.Obj()

	pkg := ""
	if obj.Pkg() != nil {
		pkg = obj.Pkg().Path()
	}

	targs := t.TypeArgs()
	if targs.Len() == 0 {
		return model.Nominal(pkg, obj.Name()), nil
	}

	args := make([]model.SemanticType, 0, targs.Len())
	for i := range targs.Len() {
		a, err := goArg(targs.At(i))
		if err != nil {
			return model.SemanticType{}, err
		}

		args = append(args, a)
	}

	return model.Generic(pkg, obj.Name(), args...), nil
}

// isEmptyStruct reports whether t is struct{}, the element of a map used as a set.
func isEmptyStruct(t types.Type) bool {
	st, ok := types.Unalias(t).(*types.Struct)
	return ok && st.NumFields() == 0
}
