package query

// Statement templates. These bytes are a contract: downstream tooling
// compares generated statements literally, trailing spaces included. Change
// nothing here without regenerating the golden files.
const (
	TemplateInsert    = "INSERT INTO %s (%s) VALUES (%s) RETURNING *"
	TemplateSelectAll = "SELECT %s FROM %s %s"
	TemplateSelect    = "SELECT %s FROM %s WHERE ( %s ) %s"
	TemplateWhere     = "WHERE %s "
	TemplateSelectM2M = "SELECT %s FROM %s WHERE %s = ANY (SELECT %s FROM %s WHERE %s)"
	TemplateUpdate    = "UPDATE ONLY %s SET (%s) = (%s) WHERE %s RETURNING *"
	TemplateDelete    = "DELETE FROM %s WHERE %s "

	TemplateCreateTable   = "CREATE TABLE IF NOT EXISTS %s (%s) "
	TemplateDropTable     = "DROP TABLE IF EXISTS %s CASCADE"
	TemplateAlterTable    = "ALTER TABLE %s (%s) "
	TemplateAddConstraint = "ALTER TABLE %s ADD %s "
	TemplateAddColumn     = "ALTER TABLE %s ADD COLUMN %s "
	TemplateAlterColumn   = "ALTER TABLE %s ALTER COLUMN %s "
)

// Terminator closes every compiled statement: one space, one semicolon.
const Terminator = " ;"
