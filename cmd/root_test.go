package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trjordan/glance/pkg/flagset"
)

// TestConfigureFlagsWiring verifies that the system flags and the db
// module hook end up on the registry, and that a flag unknown at parse
// time resolves once its module is declared.
func TestConfigureFlagsWiring(t *testing.T) {
	registry := flagset.New("glance")
	configureFlags(registry)

	leftover, err := registry.Parse([]string{
		"glance", "--verbose", "--sql-connection=postgres://override", "spare",
	})
	require.NoError(t, err)

	// sql-connection is unknown until the db module loads.
	assert.Equal(t, []string{"glance", "--sql-connection=postgres://override", "spare"}, leftover)

	verbose, err := registry.GetBool("verbose")
	require.NoError(t, err)
	assert.True(t, verbose)

	require.NoError(t, registry.Declare("sql-connection", "db"))

	sqlConnection, err := registry.GetString("sql-connection")
	require.NoError(t, err)
	assert.Equal(t, "postgres://override", sqlConnection)
}

// TestBuildServerUsesFlags verifies the server picks up address and
// token flags.
func TestBuildServerUsesFlags(t *testing.T) {
	registry := flagset.New("glance")
	configureFlags(registry)

	_, err := registry.Parse([]string{
		"glance", "--http-api-host=127.0.0.1", "--http-api-port=9393", "--http-api-token=secret",
	})
	require.NoError(t, err)

	server, err := buildServer(registry, nil)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9393", server.Addr)
	assert.Equal(t, "secret", server.Token)
}

// TestRootCommandShape verifies the root command delegates parsing to
// the registry.
func TestRootCommandShape(t *testing.T) {
	assert.Equal(t, "glance", rootCmd.Use)
	assert.True(t, rootCmd.DisableFlagParsing)
}
