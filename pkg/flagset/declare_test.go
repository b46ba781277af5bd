package flagset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDeclareLoadsModule verifies that Declare runs the module hook
// lazily and finds the flag it registered.
func TestDeclareLoadsModule(t *testing.T) {
	flags := New("glance")

	loads := 0

	flags.RegisterModule("db", func(f *FlagSet) {
		loads++

		f.String("sql-connection", "sqlite:///glance.sqlite", "connection string for sql database")
	})

	require.Nil(t, flags.Lookup("sql-connection"), "hook must not run before Declare")

	require.NoError(t, flags.Declare("sql-connection", "db"))
	assert.Equal(t, 1, loads)
	assert.NotNil(t, flags.Lookup("sql-connection"))

	// A second Declare must not reload the module.
	require.NoError(t, flags.Declare("sql-connection", "db"))
	assert.Equal(t, 1, loads)
}

// TestDeclareContractViolation verifies that declaring a flag the
// module never defines fails with ErrUndeclaredFlag.
func TestDeclareContractViolation(t *testing.T) {
	flags := New("glance")

	flags.RegisterModule("db", func(f *FlagSet) {
		f.String("sql-connection", "", "connection string for sql database")
	})

	err := flags.Declare("no-such-flag", "db")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUndeclaredFlag)
}

// TestDeclareUnknownModule verifies that declaring against an
// unregistered module fails with ErrUnknownModule.
func TestDeclareUnknownModule(t *testing.T) {
	flags := New("glance")

	err := flags.Declare("whatever", "no.such.module")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownModule)
}

// TestDeclareAfterParseReconciles verifies that flags registered by a
// module hook after the initial parse start dirty and pick up their
// command-line values on first read.
func TestDeclareAfterParseReconciles(t *testing.T) {
	flags := New("glance")

	flags.RegisterModule("db", func(f *FlagSet) {
		f.String("sql-connection", "default", "connection string for sql database")
	})

	_, err := flags.Parse([]string{"prog", "--sql-connection=postgres://db"})
	require.NoError(t, err)

	require.NoError(t, flags.Declare("sql-connection", "db"))
	assert.True(t, flags.IsDirty("sql-connection"))

	value, err := flags.GetString("sql-connection")
	require.NoError(t, err)
	assert.Equal(t, "postgres://db", value)
}
