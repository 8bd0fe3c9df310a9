package schema_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowfold/rowfold/fields"
	"github.com/rowfold/rowfold/schema"
)

func char(t *testing.T, column string, n int) fields.Field {
	t.Helper()
	f, err := fields.NewChar(column, n, fields.Options{})
	require.NoError(t, err)
	return f
}

func TestNewTable_InjectsPrimaryKey(t *testing.T) {
	tbl, err := schema.NewTable("book", char(t, "name", 30))
	require.NoError(t, err)

	flds := tbl.Fields()
	require.Len(t, flds, 2)
	assert.Equal(t, "id", flds[0].Column())
	assert.Equal(t, fields.KindAutoSerial, flds[0].Kind())
	assert.Equal(t, "id", tbl.PrimaryKey().Column())
}

func TestNewTable_KeepsDeclaredPrimaryKey(t *testing.T) {
	ref, err := fields.NewBigAutoSerial("ref")
	require.NoError(t, err)

	tbl, err := schema.NewTable("event", char(t, "label", 10), ref)
	require.NoError(t, err)

	flds := tbl.Fields()
	require.Len(t, flds, 2)
	assert.Equal(t, "label", flds[0].Column())
	assert.Equal(t, "ref", tbl.PrimaryKey().Column())
}

func TestNewTable_RejectsSecondPrimaryKey(t *testing.T) {
	a, err := fields.NewAutoSerial("id")
	require.NoError(t, err)
	b, err := fields.NewBigAutoSerial("ref")
	require.NoError(t, err)

	_, err = schema.NewTable("book", a, b)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "both declare a serial primary key")
}

func TestNewTable_RejectsDuplicateColumns(t *testing.T) {
	_, err := schema.NewTable("book", char(t, "name", 10), char(t, "name", 20))
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "name"`)
}

func TestNewTable_InjectedKeyCollidesWithPlainIDColumn(t *testing.T) {
	id, err := fields.NewInteger("id", fields.Options{})
	require.NoError(t, err)

	_, err = schema.NewTable("book", id)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate column "id"`)
}

func TestNewTable_NameRules(t *testing.T) {
	tests := []struct {
		name    string
		table   string
		wantErr string
	}{
		{name: "empty", table: "", wantErr: "table name is required"},
		{name: "double underscore", table: "book__shelf", wantErr: "double underscore"},
		{name: "leading underscore", table: "_book", wantErr: "starts or ends"},
		{name: "trailing underscore", table: "book_", wantErr: "starts or ends"},
		{name: "interior underscore ok", table: "book_shelf"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := schema.NewTable(tt.table, char(t, "name", 10))
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNewTable_RelationOwnerMustMatch(t *testing.T) {
	tags, err := fields.NewManyToMany("tags", "author", "tag")
	require.NoError(t, err)

	_, err = schema.NewTable("book", tags)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `relation "tags" is owned by table "author"`)
}

func TestTable_FieldLookupAndRelations(t *testing.T) {
	tags, err := fields.NewManyToMany("tags", "book", "tag")
	require.NoError(t, err)

	tbl, err := schema.NewTable("book", char(t, "name", 30), tags)
	require.NoError(t, err)

	f, ok := tbl.Field("name")
	require.True(t, ok)
	assert.Equal(t, fields.KindChar, f.Kind())

	_, ok = tbl.Field("missing")
	assert.False(t, ok)

	rels := tbl.Relations()
	require.Len(t, rels, 1)
	assert.Equal(t, "book_tag", rels[0].LinkTable())
}
