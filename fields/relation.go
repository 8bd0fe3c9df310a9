package fields

import "fmt"

// ForeignKey is an integer column referencing another table's primary key.
type ForeignKey struct {
	common
	target string
}

// NewForeignKey declares an integer column referencing target.
func NewForeignKey(column, target string, opts Options) (*ForeignKey, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if target == "" {
		return nil, &DeclarationError{Field: column, Param: "target", Reason: "referenced table is required"}
	}
	f := &ForeignKey{common: newCommon(column, opts), target: target}
	if err := checkLiteralDefault(f); err != nil {
		return nil, err
	}
	return f, nil
}

// Target returns the referenced table name.
func (f *ForeignKey) Target() string { return f.target }

func (*ForeignKey) Kind() Kind { return KindForeignKey }
func (f *ForeignKey) ddl() string {
	return "integer references " + f.target
}

// ManyToMany declares a link table between the owning table and a target
// table. Its creation query is the bare two-column link DDL with no column
// prefix and no null or unique suffix; values are integer ids, singly or in
// a list validated element by element.
type ManyToMany struct {
	common
	owner  string
	target string
}

// NewManyToMany declares a link between owner and target. The column name
// identifies the relation on the owning side.
func NewManyToMany(column, owner, target string) (*ManyToMany, error) {
	if err := checkColumn(column); err != nil {
		return nil, err
	}
	if owner == "" {
		return nil, &DeclarationError{Field: column, Param: "owner", Reason: "owning table is required"}
	}
	if target == "" {
		return nil, &DeclarationError{Field: column, Param: "target", Reason: "target table is required"}
	}
	return &ManyToMany{common: newCommon(column, Options{}), owner: owner, target: target}, nil
}

// Owner returns the owning table name.
func (f *ManyToMany) Owner() string { return f.owner }

// Target returns the linked table name.
func (f *ManyToMany) Target() string { return f.target }

// LinkTable returns the name of the two-column link table backing the
// relation.
func (f *ManyToMany) LinkTable() string { return f.owner + "_" + f.target }

func (*ManyToMany) Kind() Kind { return KindManyToMany }
func (f *ManyToMany) ddl() string {
	return fmt.Sprintf("%s INTEGER REFERENCES %s NOT NULL, %s INTEGER REFERENCES %s NOT NULL",
		f.owner, f.owner, f.target, f.target)
}
