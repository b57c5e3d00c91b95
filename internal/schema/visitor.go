package schema

import "fmt"

// Visitor has one method per schema variant. Adding a variant adds a method
// here, so every visitor must handle it before the tree compiles again.
type Visitor[R any] interface {
	VisitObject(*Object) R
	VisitArray(*Array) R
	VisitMap(*Map) R
	VisitString(*String) R
	VisitID(*ID) R
	VisitInt(*Int) R
	VisitFloat(*Float) R
	VisitNumber(*Number) R
	VisitBoolean(*Boolean) R
	VisitEnum(*Enum) R
	VisitConst(*Const) R
	VisitPin(*Pin) R
	VisitAnyOf(*AnyOf) R
	VisitRawYAML(*RawYAML) R
}

// Visit dispatches n to the matching method of v.
func Visit[R any](n Node, v Visitor[R]) R {
	switch x := n.(type) {
	case *Object:
		return v.VisitObject(x)
	case *Array:
		return v.VisitArray(x)
	case *Map:
		return v.VisitMap(x)
	case *String:
		return v.VisitString(x)
	case *ID:
		return v.VisitID(x)
	case *Int:
		return v.VisitInt(x)
	case *Float:
		return v.VisitFloat(x)
	case *Number:
		return v.VisitNumber(x)
	case *Boolean:
		return v.VisitBoolean(x)
	case *Enum:
		return v.VisitEnum(x)
	case *Const:
		return v.VisitConst(x)
	case *Pin:
		return v.VisitPin(x)
	case *AnyOf:
		return v.VisitAnyOf(x)
	case *RawYAML:
		return v.VisitRawYAML(x)
	}
	panic(fmt.Sprintf("schema: unhandled node %T", n))
}
