package fields

import (
	"fmt"
	"math"
)

// Boolean is a true/false column.
type Boolean struct {
	common
}

// NewBoolean declares a boolean column.
func NewBoolean(column string, opts Options) (*Boolean, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Boolean{common: newCommon(column, opts)}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (*Boolean) Kind() Kind  { return KindBoolean }
func (*Boolean) ddl() string { return "boolean" }

// Integer is a 32-bit integer column.
type Integer struct {
	common
}

// NewInteger declares an integer column.
func NewInteger(column string, opts Options) (*Integer, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Integer{common: newCommon(column, opts)}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (*Integer) Kind() Kind  { return KindInteger }
func (*Integer) ddl() string { return "integer" }

// BigInteger is a 64-bit integer column.
type BigInteger struct {
	common
}

// NewBigInteger declares a bigint column.
func NewBigInteger(column string, opts Options) (*BigInteger, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &BigInteger{common: newCommon(column, opts)}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (*BigInteger) Kind() Kind  { return KindBigInteger }
func (*BigInteger) ddl() string { return "bigint" }

// Float is a double precision column. Only floating point values are
// accepted; integers must be declared as Integer or BigInteger.
type Float struct {
	common
}

// NewFloat declares a double precision column.
func NewFloat(column string, opts Options) (*Float, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Float{common: newCommon(column, opts)}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (*Float) Kind() Kind  { return KindFloat }
func (*Float) ddl() string { return "double precision" }

// Decimal is a fixed precision numeric column.
type Decimal struct {
	common
	maxDigits     int
	decimalPlaces int
}

// NewDecimal declares a numeric column with the given precision. Passing 0
// for both maxDigits and decimalPlaces selects the defaults, 10 digits with
// 2 decimal places.
func NewDecimal(column string, maxDigits, decimalPlaces int, opts Options) (*Decimal, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if maxDigits == 0 && decimalPlaces == 0 {
		maxDigits, decimalPlaces = 10, 2
	}
	if maxDigits <= 0 {
		return nil, &DeclarationError{Field: column, Param: "maxDigits", Reason: "must be positive"}
	}
	if decimalPlaces < 0 {
		return nil, &DeclarationError{Field: column, Param: "decimalPlaces", Reason: "cannot be negative"}
	}
	if decimalPlaces > maxDigits {
		return nil, &DeclarationError{Field: column, Param: "decimalPlaces", Reason: "cannot exceed maxDigits"}
	}
	f := &Decimal{common: newCommon(column, opts), maxDigits: maxDigits, decimalPlaces: decimalPlaces}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// MaxDigits returns the declared total precision.
func (f *Decimal) MaxDigits() int { return f.maxDigits }

// DecimalPlaces returns the declared scale.
func (f *Decimal) DecimalPlaces() int { return f.decimalPlaces }

func (*Decimal) Kind() Kind { return KindDecimal }
func (f *Decimal) ddl() string {
	return fmt.Sprintf("decimal(%d,%d)", f.maxDigits, f.decimalPlaces)
}

// AutoSerial is an auto-incrementing integer primary key. It is always
// unique and non-nullable.
type AutoSerial struct {
	common
}

// NewAutoSerial declares a serial primary key column. An empty column name
// selects "id".
func NewAutoSerial(column string) (*AutoSerial, error) {
	if column == "" {
		column = "id"
	}
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	return &AutoSerial{common: newCommon(column, Options{Unique: true})}, nil
}

func (*AutoSerial) Kind() Kind  { return KindAutoSerial }
func (*AutoSerial) ddl() string { return "serial PRIMARY KEY" }

// BigAutoSerial is an auto-incrementing primary key declared for tables
// expected to outgrow a 32-bit sequence. Its DDL fragment is the same as
// AutoSerial's; existing schema tooling depends on the emitted bytes.
type BigAutoSerial struct {
	common
}

// NewBigAutoSerial declares a serial primary key column. An empty column
// name selects "id".
func NewBigAutoSerial(column string) (*BigAutoSerial, error) {
	if column == "" {
		column = "id"
	}
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	return &BigAutoSerial{common: newCommon(column, Options{Unique: true})}, nil
}

func (*BigAutoSerial) Kind() Kind  { return KindBigAutoSerial }
func (*BigAutoSerial) ddl() string { return "serial PRIMARY KEY" }

// asInt64 widens any Go integer to int64. Unsigned values above MaxInt64 do
// not fit and are rejected.
func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int8:
		return int64(n), true
	case int16:
		return int64(n), true
	case int32:
		return int64(n), true
	case int64:
		return n, true
	case uint:
		if uint64(n) > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	case uint8:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	}
	return 0, false
}
