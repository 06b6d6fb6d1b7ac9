package schema

// Kind discriminates the variants of a TypeDefinition.
type Kind int

const (
	KindUndefined Kind = iota
	KindString
	KindNumber
	KindInteger
	KindBoolean
	KindNull
	KindObject
	KindArray
	KindAllOf
	KindAnyOf
	KindOneOf
	KindReference
)

var kindNames = map[Kind]string{
	KindUndefined: "undefined",
	KindString:    "string",
	KindNumber:    "number",
	KindInteger:   "integer",
	KindBoolean:   "boolean",
	KindNull:      "null",
	KindObject:    "object",
	KindArray:     "array",
	KindAllOf:     "allOf",
	KindAnyOf:     "anyOf",
	KindOneOf:     "oneOf",
	KindReference: "reference",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// IsPrimitive reports whether k is a scalar kind. Undefined counts as primitive.
func (k Kind) IsPrimitive() bool {
	switch k {
	case KindString, KindNumber, KindInteger, KindBoolean, KindNull, KindUndefined:
		return true
	default:
		return false
	}
}

// IsComposite reports whether k is one of allOf, anyOf or oneOf.
func (k Kind) IsComposite() bool {
	return k == KindAllOf || k == KindAnyOf || k == KindOneOf
}

// kindOfTypeName maps the value of a schema "type" keyword.
func kindOfTypeName(name string) (Kind, bool) {
	switch name {
	case "string":
		return KindString, true
	case "number":
		return KindNumber, true
	case "integer":
		return KindInteger, true
	case "boolean":
		return KindBoolean, true
	case "null":
		return KindNull, true
	case "object":
		return KindObject, true
	case "array":
		return KindArray, true
	default:
		return KindUndefined, false
	}
}

// combinators in discriminant order.
var combinators = []struct {
	keyword string
	kind    Kind
}{
	{keyword: "allOf", kind: KindAllOf},
	{keyword: "anyOf", kind: KindAnyOf},
	{keyword: "oneOf", kind: KindOneOf},
}
