package commands

import (
	"github.com/spf13/cobra"

	"github.com/rowfold/rowfold/internal/ui"
)

const referenceDoc = `# Rowfold schema language

A schema file declares tables. Each field line is a column name, a kind and
optional attributes. Tables without an explicit ` + "`serial`" + ` or
` + "`bigserial`" + ` column get a serial ` + "`id`" + ` primary key.

## Kinds

| Kind | PostgreSQL type | Notes |
|------|-----------------|-------|
| ` + "`boolean`" + ` | boolean | |
| ` + "`varchar(n)`" + `, ` + "`char(n)`" + ` | varchar(n) | length-checked; statement separators escaped on write, restored on read |
| ` + "`email(n)`" + ` | varchar(n) | value must look like an address |
| ` + "`text`" + ` | text | unbounded |
| ` + "`integer`" + ` | integer | |
| ` + "`bigint`" + ` | bigint | |
| ` + "`float`" + ` | double precision | |
| ` + "`decimal(d,p)`" + ` | decimal(d,p) | shopspring/decimal values |
| ` + "`serial`" + `, ` + "`bigserial`" + ` | serial PRIMARY KEY | at most one per table |
| ` + "`timestamp`" + `, ` + "`date`" + `, ` + "`time`" + ` | matching type | ` + "`auto_now`" + ` fills on insert |
| ` + "`fk(target)`" + ` | integer references target | |
| ` + "`m2m(target)`" + ` | link table | owner_target, two fk columns |
| ` + "`json(n)`" + ` | text | serialized form capped at n bytes |
| ` + "`uuid`" + `, ` + "`uuid(v1)`" + `, ` + "`uuid(v4)`" + ` | UUID | server-side default generator |
| ` + "`array(elem)`" + ` | elem[] | elem is text, varchar or integer |
| ` + "`inet`" + ` | inet | ` + "`protocol`" + ` and ` + "`unpack`" + ` shape parsing |
| ` + "`macaddr`" + ` | macaddr | ` + "`dialect`" + ` selects the rendered form |

## Attributes

- ` + "`null`" + ` marks the column nullable. Columns are NOT NULL by default.
- ` + "`unique`" + ` and ` + "`indexed`" + ` add the matching constraints.
- ` + "`default <literal>`" + ` sets a default; the literal must satisfy the
  kind's own validation.
- ` + "`choices(a, b, ...)`" + ` restricts assignable values to the listed
  literals.
- ` + "`auto_now`" + ` (temporal kinds only) stamps the current moment on
  insert when no value is given.
- ` + "`protocol`" + ` / ` + "`unpack`" + ` (inet) and ` + "`dialect`" + `
  (macaddr) tune network value handling.

## Example

    table author {
        name varchar(64) unique
    }

    table book {
        name varchar(100)
        price decimal(10,2) null
        author fk(author) null
        tags m2m(tag)
    }

    table tag {
        label varchar(20) unique
    }

## Workflow

1. ` + "`rowfold init`" + ` writes a starter schema and ` + "`.rowfold.yaml`" + `.
2. ` + "`rowfold validate`" + ` parses and binds the schema.
3. ` + "`rowfold ddl`" + ` prints the statements; ` + "`--apply`" + ` runs them
   and records the fingerprint, so a second apply is a no-op.
4. ` + "`rowfold ping`" + ` checks connectivity and the server version gate.

Configuration comes from ` + "`.rowfold.yaml`" + `, ` + "`ROWFOLD_*`" + `
environment variables or a ` + "`.env`" + ` file; ` + "`DATABASE_URL`" + ` is
the fallback connection string.
`

func newDocsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "docs",
		Short: "Render the schema language reference",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ui.PrintMarkdown(referenceDoc)
		},
	}
	return cmd
}
