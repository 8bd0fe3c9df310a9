package fields_test

import (
	"bytes"
	"testing"

	"github.com/rowfold/rowfold/fields"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreationQuery_AutoSerial(t *testing.T) {
	f, err := fields.NewAutoSerial("")
	require.NoError(t, err)

	ddl, err := fields.CreationQuery(f)
	require.NoError(t, err)
	assert.Equal(t, "id serial PRIMARY KEY UNIQUE NOT NULL", ddl)
}

func TestCreationQuery_UUIDVersions(t *testing.T) {
	v1, err := fields.NewUUID("ser", fields.UUIDv1, fields.Options{Unique: true})
	require.NoError(t, err)
	v4, err := fields.NewUUID("ser", 0, fields.Options{Unique: true})
	require.NoError(t, err)

	ddl, err := fields.CreationQuery(v1)
	require.NoError(t, err)
	assert.Equal(t, "ser UUID DEFAULT uuid_generate_v1mc() UNIQUE NOT NULL", ddl)

	ddl, err = fields.CreationQuery(v4)
	require.NoError(t, err)
	assert.Equal(t, "ser UUID DEFAULT uuid_generate_v4() UNIQUE NOT NULL", ddl)
}

func TestCreationQuery_Defaults(t *testing.T) {
	char, err := fields.NewChar("name", 30, fields.Options{Default: fields.Literal{Value: "anon"}})
	require.NoError(t, err)
	boolean, err := fields.NewBoolean("active", fields.Options{Default: fields.Literal{Value: true}})
	require.NoError(t, err)
	counter, err := fields.NewInteger("quantity", fields.Options{
		Default: fields.Producer(func() any { return 42 }),
	})
	require.NoError(t, err)

	ddl, err := fields.CreationQuery(char)
	require.NoError(t, err)
	assert.Equal(t, "name varchar(30) DEFAULT 'anon' NOT NULL", ddl)

	ddl, err = fields.CreationQuery(boolean)
	require.NoError(t, err)
	assert.Equal(t, "active boolean DEFAULT true NOT NULL", ddl)

	ddl, err = fields.CreationQuery(counter)
	require.NoError(t, err)
	assert.Equal(t, "quantity integer DEFAULT 42 NOT NULL", ddl)
}

func TestCreationQuery_AutoNow(t *testing.T) {
	created, err := fields.NewDateTime("created", true, fields.Options{})
	require.NoError(t, err)

	ddl, err := fields.CreationQuery(created)
	require.NoError(t, err)
	assert.Equal(t, "created timestamp DEFAULT now() NOT NULL", ddl)

	// An explicit default wins over the clock default.
	pinned, err := fields.NewDateTime("created", true, fields.Options{
		Default: fields.Producer(func() any { return "epoch" }),
	})
	require.NoError(t, err)

	ddl, err = fields.CreationQuery(pinned)
	require.NoError(t, err)
	assert.Equal(t, "created timestamp DEFAULT 'epoch' NOT NULL", ddl)
}

func TestCreationQuery_ManyToMany(t *testing.T) {
	f, err := fields.NewManyToMany("tags", "book", "tag")
	require.NoError(t, err)

	ddl, err := fields.CreationQuery(f)
	require.NoError(t, err)
	assert.Equal(t, "book INTEGER REFERENCES book NOT NULL, tag INTEGER REFERENCES tag NOT NULL", ddl)
}

func TestCreationQuery_ProducerFailure(t *testing.T) {
	f, err := fields.NewInteger("quantity", fields.Options{
		Default: fields.Producer(func() any { return []byte("nope") }),
	})
	require.NoError(t, err)

	_, err = fields.CreationQuery(f)
	require.Error(t, err)
	assert.True(t, fields.IsDeclaration(err))
}

func TestCreationQuery_AllKinds(t *testing.T) {
	declare := func(f fields.Field, err error) fields.Field {
		t.Helper()
		require.NoError(t, err)
		return f
	}

	all := []fields.Field{
		declare(fields.NewAutoSerial("")),
		declare(fields.NewChar("name", 30, fields.Options{})),
		declare(fields.NewChar("nick", 30, fields.Options{Null: true, Default: fields.Literal{Value: "anon"}})),
		declare(fields.NewEmail("email", 64, fields.Options{Unique: true})),
		declare(fields.NewText("bio", fields.Options{Null: true})),
		declare(fields.NewBoolean("active", fields.Options{Default: fields.Literal{Value: true}})),
		declare(fields.NewInteger("quantity", fields.Options{Default: fields.Literal{Value: 0}})),
		declare(fields.NewBigInteger("views", fields.Options{})),
		declare(fields.NewFloat("rating", fields.Options{Null: true})),
		declare(fields.NewDecimal("price", 0, 0, fields.Options{})),
		declare(fields.NewDateTime("created", true, fields.Options{})),
		declare(fields.NewDate("published", false, fields.Options{Null: true})),
		declare(fields.NewTime("opens", true, fields.Options{})),
		declare(fields.NewForeignKey("author", "author", fields.Options{})),
		declare(fields.NewManyToMany("tags", "book", "tag")),
		declare(fields.NewJSON("meta", 128, fields.Options{Null: true})),
		declare(fields.NewUUID("ser", fields.UUIDv4, fields.Options{Unique: true})),
		declare(fields.NewArray("scores", fields.ElementInteger, fields.Options{Null: true})),
		declare(fields.NewIPAddress("addr", fields.ProtocolBoth, fields.UnpackSame, fields.Options{Null: true})),
		declare(fields.NewMacAddr("nic", fields.MacUnix, fields.Options{Unique: true})),
	}

	var buf bytes.Buffer
	for _, f := range all {
		ddl, err := fields.CreationQuery(f)
		require.NoError(t, err)
		buf.WriteString(ddl)
		buf.WriteString("\n")
	}

	g := goldie.New(t)
	g.Assert(t, "creation_queries", buf.Bytes())
}

func TestRequirement(t *testing.T) {
	ser, err := fields.NewUUID("ser", fields.UUIDv4, fields.Options{})
	require.NoError(t, err)

	stmt, ok := fields.Requirement(ser)
	assert.True(t, ok)
	assert.Equal(t, `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`, stmt)

	name, err := fields.NewChar("name", 30, fields.Options{})
	require.NoError(t, err)

	_, ok = fields.Requirement(name)
	assert.False(t, ok)
}
