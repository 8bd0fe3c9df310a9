package fields

// JSON is a JSON document column. Payloads are stored as compact serialized
// text, bounded to maxLength characters.
type JSON struct {
	common
	maxLength int
}

// NewJSON declares a JSON column bounded to maxLength serialized characters.
func NewJSON(column string, maxLength int, opts Options) (*JSON, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		return nil, &DeclarationError{Field: column, Param: "maxLength", Reason: "must be positive"}
	}
	f := &JSON{common: newCommon(column, opts), maxLength: maxLength}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// MaxLength returns the declared serialized-text bound.
func (f *JSON) MaxLength() int { return f.maxLength }

func (*JSON) Kind() Kind  { return KindJSON }
func (*JSON) ddl() string { return "JSON" }
