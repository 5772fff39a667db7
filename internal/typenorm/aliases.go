package typenorm

import "update-object-generator/internal/model"

type alias struct {
	kind  model.TypeKind
	name  string
	arity int
}

func scalarAlias(name string) alias { return alias{kind: model.TypeKindScalar, name: name} }

func genericAlias(name string, arity int) alias {
	return alias{kind: model.TypeKindGeneric, name: name, arity: arity}
}

// aliases maps host-qualified names onto the canonical set. Read-only after init.
var aliases = map[string]alias{
	"java.lang.Boolean":   scalarAlias(model.ScalarBoolean),
	"java.lang.Byte":      scalarAlias(model.ScalarByte),
	"java.lang.Short":     scalarAlias(model.ScalarShort),
	"java.lang.Integer":   scalarAlias(model.ScalarInt),
	"java.lang.Long":      scalarAlias(model.ScalarLong),
	"java.lang.Float":     scalarAlias(model.ScalarFloat),
	"java.lang.Double":    scalarAlias(model.ScalarDouble),
	"java.lang.Character": scalarAlias(model.ScalarChar),
	"java.lang.String":    scalarAlias(model.ScalarString),
	"java.lang.Object":    scalarAlias(model.ScalarAny),

	"kotlin.Boolean": scalarAlias(model.ScalarBoolean),
	"kotlin.Byte":    scalarAlias(model.ScalarByte),
	"kotlin.Short":   scalarAlias(model.ScalarShort),
	"kotlin.Int":     scalarAlias(model.ScalarInt),
	"kotlin.Long":    scalarAlias(model.ScalarLong),
	"kotlin.Float":   scalarAlias(model.ScalarFloat),
	"kotlin.Double":  scalarAlias(model.ScalarDouble),
	"kotlin.Char":    scalarAlias(model.ScalarChar),
	"kotlin.String":  scalarAlias(model.ScalarString),
	"kotlin.Any":     scalarAlias(model.ScalarAny),
	"kotlin.UByte":   scalarAlias(model.ScalarUByte),
	"kotlin.UShort":  scalarAlias(model.ScalarUShort),
	"kotlin.UInt":    scalarAlias(model.ScalarUInt),
	"kotlin.ULong":   scalarAlias(model.ScalarULong),

	"java.util.List":       genericAlias(model.GenericList, 1),
	"java.util.Set":        genericAlias(model.GenericSet, 1),
	"java.util.Map":        genericAlias(model.GenericMap, 2),
	"java.util.Iterator":   genericAlias(model.GenericIterator, 1),
	"java.util.Collection": genericAlias(model.GenericCollection, 1),

	"kotlin.Array":                         genericAlias(model.GenericArray, 1),
	"kotlin.collections.List":              genericAlias(model.GenericList, 1),
	"kotlin.collections.Set":               genericAlias(model.GenericSet, 1),
	"kotlin.collections.Map":               genericAlias(model.GenericMap, 2),
	"kotlin.collections.Iterator":          genericAlias(model.GenericIterator, 1),
	"kotlin.collections.Collection":        genericAlias(model.GenericCollection, 1),
	"kotlin.collections.MutableList":       genericAlias(model.GenericMutableList, 1),
	"kotlin.collections.MutableSet":        genericAlias(model.GenericMutableSet, 1),
	"kotlin.collections.MutableMap":        genericAlias(model.GenericMutableMap, 2),
	"kotlin.collections.MutableIterator":   genericAlias(model.GenericMutableIterator, 1),
	"kotlin.collections.MutableCollection": genericAlias(model.GenericMutableCollection, 1),
}

// primitives are the JVM primitive keywords that denote values.
var primitives = map[string]string{
	"boolean": model.ScalarBoolean,
	"byte":    model.ScalarByte,
	"short":   model.ScalarShort,
	"int":     model.ScalarInt,
	"long":    model.ScalarLong,
	"char":    model.ScalarChar,
	"float":   model.ScalarFloat,
	"double":  model.ScalarDouble,
}

// mutableOf maps read-only canonical collections onto their mutable counterparts.
var mutableOf = map[string]string{
	model.GenericList:       model.GenericMutableList,
	model.GenericSet:        model.GenericMutableSet,
	model.GenericMap:        model.GenericMutableMap,
	model.GenericIterator:   model.GenericMutableIterator,
	model.GenericCollection: model.GenericMutableCollection,
}

// lookupAlias resolves a qualified name, or a simple name against the implicit
// kotlin and kotlin.collections imports.
func lookupAlias(name string) (alias, bool) {
	if a, ok := aliases[name]; ok {
		return a, true
	}

	if isQualified(name) {
		return alias{}, false
	}

	for _, pkg := range []string{"kotlin.", "kotlin.collections."} {
		if a, ok := aliases[pkg+name]; ok {
			return a, true
		}
	}

	return alias{}, false
}
