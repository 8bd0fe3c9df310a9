package fields

// ElementType is the element column type of an Array column.
type ElementType string

// Supported array element types.
const (
	ElementText    ElementType = "text"
	ElementVarchar ElementType = "varchar"
	ElementInteger ElementType = "integer"
)

// Array is a Postgres ARRAY column. Values are slices whose elements share
// one runtime type; when the elements are themselves lists they must all
// have the same length.
type Array struct {
	common
	elem ElementType
}

// NewArray declares an ARRAY column. An empty element type selects
// ElementText.
func NewArray(column string, elem ElementType, opts Options) (*Array, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if elem == "" {
		elem = ElementText
	}
	switch elem {
	case ElementText, ElementVarchar, ElementInteger:
	default:
		return nil, &DeclarationError{Field: column, Param: "elem", Reason: `must be "text", "varchar" or "integer"`}
	}
	f := &Array{common: newCommon(column, opts), elem: elem}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// ElementType returns the declared element column type.
func (f *Array) ElementType() ElementType { return f.elem }

func (*Array) Kind() Kind { return KindArray }
func (f *Array) ddl() string {
	return string(f.elem) + " ARRAY"
}
