package fields

// UUIDExtensionStatement must run once per database before a UUID column's
// DDL default can resolve. It is surfaced through Requirement and never
// executed implicitly.
const UUIDExtensionStatement = `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`

// UUIDVersion selects the server-side generator backing a UUID column.
type UUIDVersion int

// Supported generator versions.
const (
	UUIDv1 UUIDVersion = 1
	UUIDv4 UUIDVersion = 4
)

// UUID is a server-generated UUID column. The generated value is the
// column's only default; declaring another is a declaration error.
type UUID struct {
	common
	version UUIDVersion
}

// NewUUID declares a UUID column. Version zero selects UUIDv4.
func NewUUID(column string, version UUIDVersion, opts Options) (*UUID, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if version == 0 {
		version = UUIDv4
	}
	if version != UUIDv1 && version != UUIDv4 {
		return nil, &DeclarationError{Field: column, Param: "version", Reason: "must be 1 or 4"}
	}
	if opts.Default != nil {
		return nil, &DeclarationError{Field: column, Param: "default", Reason: "UUID columns generate their own default"}
	}
	return &UUID{common: newCommon(column, opts), version: version}, nil
}

// Version returns the declared generator version.
func (f *UUID) Version() UUIDVersion { return f.version }

// Requirement returns the statement the database must have run before the
// column's DDL default works.
func (f *UUID) Requirement() string { return UUIDExtensionStatement }

func (*UUID) Kind() Kind { return KindUUID }
func (f *UUID) ddl() string {
	if f.version == UUIDv1 {
		return "UUID DEFAULT uuid_generate_v1mc()"
	}
	return "UUID DEFAULT uuid_generate_v4()"
}
