package fields

import (
	"fmt"
	"regexp"
)

// Char is a bounded varchar column. Sanitized payloads escape the statement
// separators ";" and "--"; Recompose reverses the escaping on read.
type Char struct {
	common
	maxLength int
}

// NewChar declares a varchar column bounded to maxLength characters.
func NewChar(column string, maxLength int, opts Options) (*Char, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		return nil, &DeclarationError{Field: column, Param: "maxLength", Reason: "must be positive"}
	}
	f := &Char{common: newCommon(column, opts), maxLength: maxLength}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// MaxLength returns the declared character bound.
func (f *Char) MaxLength() int { return f.maxLength }

func (*Char) Kind() Kind { return KindChar }
func (f *Char) ddl() string {
	return fmt.Sprintf("varchar(%d)", f.maxLength)
}

var emailShape = regexp.MustCompile(`^\w[\w0-9_.+-]+@[\w0-9-]+\.[\w0-9.-]+$`)

// Email is a varchar column whose values must look like an email address.
type Email struct {
	common
	maxLength int
}

// NewEmail declares a varchar column restricted to email-shaped values.
func NewEmail(column string, maxLength int, opts Options) (*Email, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if maxLength <= 0 {
		return nil, &DeclarationError{Field: column, Param: "maxLength", Reason: "must be positive"}
	}
	f := &Email{common: newCommon(column, opts), maxLength: maxLength}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// MaxLength returns the declared character bound.
func (f *Email) MaxLength() int { return f.maxLength }

func (*Email) Kind() Kind { return KindEmail }
func (f *Email) ddl() string {
	return fmt.Sprintf("varchar(%d)", f.maxLength)
}

// Text is an unbounded text column.
type Text struct {
	common
}

// NewText declares a text column.
func NewText(column string, opts Options) (*Text, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Text{common: newCommon(column, opts)}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (*Text) Kind() Kind  { return KindText }
func (*Text) ddl() string { return "text" }
