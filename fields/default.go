package fields

// Default is the declared default of a column. The variant set is closed:
// a column either has no default (nil), a Literal rendered into the DDL, or
// a Producer invoked when the DDL is built.
type Default interface {
	isDefault()
}

// Literal is a fixed default value baked into the column DDL. The value must
// pass the field's own validation; factories reject literals the field would
// not accept.
type Literal struct {
	Value any
}

func (Literal) isDefault() {}

// Producer computes a default value each time the column DDL is rendered.
// The produced value is rendered exactly like a Literal but is not validated
// in advance.
type Producer func() any

func (Producer) isDefault() {}
