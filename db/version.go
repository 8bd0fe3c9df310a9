package db

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/go-version"
)

// MinServerVersion is the oldest PostgreSQL release the generated DDL runs
// on: 9.4 introduced uuid_generate_v1mc alongside the INET/MACADDR and
// ARRAY behavior the field DDL depends on.
const MinServerVersion = "9.4"

// VersionQuery asks the server for the string CheckServerVersion parses.
const VersionQuery = "SELECT version() ;"

var (
	minServerVersion     = version.Must(version.NewVersion(MinServerVersion))
	serverVersionPattern = regexp.MustCompile(`PostgreSQL (\d+(?:\.\d+)*)`)
)

// CheckServerVersion parses the version string reported by the server (the
// `SELECT version()` form, e.g. "PostgreSQL 14.2 (Debian ...)") and rejects
// servers older than MinServerVersion.
func CheckServerVersion(reported string) error {
	m := serverVersionPattern.FindStringSubmatch(reported)
	if m == nil {
		return fmt.Errorf("db: unrecognized server version %q", reported)
	}
	v, err := version.NewVersion(m[1])
	if err != nil {
		return fmt.Errorf("db: parse server version %q: %w", m[1], err)
	}
	if v.LessThan(minServerVersion) {
		return fmt.Errorf("db: server version %s is below the supported minimum %s", v, MinServerVersion)
	}
	return nil
}
