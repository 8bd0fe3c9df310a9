package schema_test

import (
	"bytes"
	"regexp"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rowfold/rowfold/fields"
	"github.com/rowfold/rowfold/schema"
)

// demoRegistry declares a small library schema touching the interesting
// DDL paths: an injected primary key, a unique column, a nullable foreign
// key, a generated UUID with its extension requirement and a many-to-many
// link table.
func demoRegistry(t *testing.T) *schema.Registry {
	t.Helper()

	authorName, err := fields.NewChar("name", 64, fields.Options{Unique: true})
	require.NoError(t, err)
	author, err := schema.NewTable("author", authorName)
	require.NoError(t, err)

	bookName, err := fields.NewChar("name", 30, fields.Options{})
	require.NoError(t, err)
	price, err := fields.NewDecimal("price", 10, 2, fields.Options{})
	require.NoError(t, err)
	authorFK, err := fields.NewForeignKey("author", "author", fields.Options{Null: true})
	require.NoError(t, err)
	sid, err := fields.NewUUID("sid", fields.UUIDv4, fields.Options{})
	require.NoError(t, err)
	tags, err := fields.NewManyToMany("tags", "book", "tag")
	require.NoError(t, err)
	book, err := schema.NewTable("book", bookName, price, authorFK, sid, tags)
	require.NoError(t, err)

	label, err := fields.NewChar("label", 20, fields.Options{})
	require.NoError(t, err)
	tag, err := schema.NewTable("tag", label)
	require.NoError(t, err)

	reg := schema.NewRegistry()
	require.NoError(t, reg.Add(author))
	require.NoError(t, reg.Add(book))
	require.NoError(t, reg.Add(tag))
	return reg
}

func TestRegistry_AddAndGet(t *testing.T) {
	reg := demoRegistry(t)

	dup, err := schema.NewTable("book")
	require.NoError(t, err)
	err = reg.Add(dup)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	got, ok := reg.Get("author")
	require.True(t, ok)
	assert.Equal(t, "author", got.Name())

	_, ok = reg.Get("missing")
	assert.False(t, ok)

	var names []string
	for _, tbl := range reg.Tables() {
		names = append(names, tbl.Name())
	}
	assert.Equal(t, []string{"author", "book", "tag"}, names)
}

func TestRegistry_Requirements(t *testing.T) {
	reg := demoRegistry(t)

	other, err := fields.NewUUID("token", fields.UUIDv1, fields.Options{})
	require.NoError(t, err)
	session, err := schema.NewTable("session", other)
	require.NoError(t, err)
	require.NoError(t, reg.Add(session))

	reqs := reg.Requirements()
	assert.Equal(t, []string{fields.UUIDExtensionStatement}, reqs,
		"a shared extension must surface once")
}

// Requirements come first, then base tables in declaration order, then the
// many-to-many link tables they depend on.
func TestRegistry_Statements(t *testing.T) {
	reg := demoRegistry(t)

	stmts, err := reg.Statements()
	require.NoError(t, err)

	var buf bytes.Buffer
	for _, stmt := range stmts {
		buf.WriteString(stmt)
		buf.WriteByte('\n')
	}
	g := goldie.New(t)
	g.Assert(t, "registry_statements", buf.Bytes())
}

func TestRegistry_Fingerprint(t *testing.T) {
	fp, err := demoRegistry(t).Fingerprint()
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^[0-9a-f]{16}$`), fp)

	again, err := demoRegistry(t).Fingerprint()
	require.NoError(t, err)
	assert.Equal(t, fp, again, "identical declarations share a fingerprint")

	changed := schema.NewRegistry()
	name, err := fields.NewChar("name", 65, fields.Options{Unique: true})
	require.NoError(t, err)
	author, err := schema.NewTable("author", name)
	require.NoError(t, err)
	require.NoError(t, changed.Add(author))
	other, err := changed.Fingerprint()
	require.NoError(t, err)
	assert.NotEqual(t, fp, other, "a column change must move the fingerprint")
}
