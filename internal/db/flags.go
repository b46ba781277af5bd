package db

import (
	"fmt"
	"os"

	"github.com/trjordan/glance/pkg/flagset"
)

// ModuleName is the flag module this package registers under.
// Declare database flags against it, for example
// flagset.Declare("sql-connection", db.ModuleName).
const ModuleName = "db"

// RegisterFlags registers the database configuration flags.
// It is installed as a flagset module hook so the flags may be
// registered after the command line has been parsed and still honor
// the values supplied on it.
func RegisterFlags(flags *flagset.FlagSet) {
	workingDir, err := os.Getwd()
	if err != nil {
		workingDir = "."
	}

	flags.String(
		"sql-connection",
		fmt.Sprintf("sqlite:///%s/glance.sqlite", workingDir),
		"connection string for sql database")
}
