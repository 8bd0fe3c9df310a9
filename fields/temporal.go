package fields

// Layouts used when a temporal value is rendered into a SQL payload.
const (
	DateTimeLayout = "2006-01-02 15:04:05"
	DateLayout     = "2006-01-02"
	TimeLayout     = "15:04:05"
)

// DateTime is a timestamp column. With autoNow set and no explicit default,
// the column defaults to now() on the server.
type DateTime struct {
	common
	autoNow bool
}

// NewDateTime declares a timestamp column.
func NewDateTime(column string, autoNow bool, opts Options) (*DateTime, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &DateTime{common: newCommon(column, opts), autoNow: autoNow}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AutoNow reports whether the column defaults to the server clock.
func (f *DateTime) AutoNow() bool { return f.autoNow }

func (*DateTime) Kind() Kind  { return KindDateTime }
func (*DateTime) ddl() string { return "timestamp" }

// Date is a calendar date column.
type Date struct {
	common
	autoNow bool
}

// NewDate declares a date column.
func NewDate(column string, autoNow bool, opts Options) (*Date, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Date{common: newCommon(column, opts), autoNow: autoNow}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AutoNow reports whether the column defaults to the server clock.
func (f *Date) AutoNow() bool { return f.autoNow }

func (*Date) Kind() Kind  { return KindDate }
func (*Date) ddl() string { return "date" }

// Time is a time-of-day column.
type Time struct {
	common
	autoNow bool
}

// NewTime declares a time column.
func NewTime(column string, autoNow bool, opts Options) (*Time, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	f := &Time{common: newCommon(column, opts), autoNow: autoNow}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// AutoNow reports whether the column defaults to the server clock.
func (f *Time) AutoNow() bool { return f.autoNow }

func (*Time) Kind() Kind  { return KindTime }
func (*Time) ddl() string { return "time" }
