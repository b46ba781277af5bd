// Package flags provides tests for Glance's flag and environment
// variable handling.
package flags

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trjordan/glance/pkg/flagset"
)

// newSystemFlags builds a registry with the system flags registered
// and the given argv parsed.
func newSystemFlags(t *testing.T, argv ...string) *flagset.FlagSet {
	t.Helper()

	SetDefaults()

	flags := flagset.New("glance")
	RegisterSystemFlags(flags)

	_, err := flags.Parse(append([]string{"glance"}, argv...))
	require.NoError(t, err)

	return flags
}

// TestDefaults verifies the fallback values applied when no flags or
// environment variables are provided.
func TestDefaults(t *testing.T) {
	flags := newSystemFlags(t)

	port, err := flags.GetString("http-api-port")
	require.NoError(t, err)
	assert.Equal(t, "9292", port)

	level, err := flags.GetString("log-level")
	require.NoError(t, err)
	assert.Equal(t, "info", level)

	verbose, err := flags.GetBool("verbose")
	require.NoError(t, err)
	assert.False(t, verbose)
}

// TestEnvironmentOverride verifies that GLANCE_* environment variables
// feed flag defaults through Viper.
func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("GLANCE_HTTP_API_PORT", "9999")
	t.Setenv("GLANCE_VERBOSE", "true")

	flags := newSystemFlags(t)

	port, err := flags.GetString("http-api-port")
	require.NoError(t, err)
	assert.Equal(t, "9999", port)

	verbose, err := flags.GetBool("verbose")
	require.NoError(t, err)
	assert.True(t, verbose)
}

// TestLogFormatFlag verifies that log format flags configure the
// logger correctly.
func TestLogFormatFlag(t *testing.T) {
	// Default "auto" format.
	require.NoError(t, SetupLogging(newSystemFlags(t)))
	assert.IsType(t, &logrus.TextFormatter{}, logrus.StandardLogger().Formatter)

	// JSON format.
	require.NoError(t, SetupLogging(newSystemFlags(t, "--log-format", "JSON")))
	assert.IsType(t, &logrus.JSONFormatter{}, logrus.StandardLogger().Formatter)

	// LogFmt format.
	require.NoError(t, SetupLogging(newSystemFlags(t, "--log-format", "logfmt")))
	textFormatter, isOk := logrus.StandardLogger().Formatter.(*logrus.TextFormatter)
	require.True(t, isOk)
	assert.True(t, textFormatter.DisableColors)
	assert.True(t, textFormatter.FullTimestamp)

	// Invalid format.
	require.Error(t, SetupLogging(newSystemFlags(t, "--log-format", "cowsay")))
}

// TestLogLevelFlag verifies log level parsing and the verbose
// shortcut.
func TestLogLevelFlag(t *testing.T) {
	require.NoError(t, SetupLogging(newSystemFlags(t, "--log-level", "warn")))
	assert.Equal(t, logrus.WarnLevel, logrus.GetLevel())

	require.NoError(t, SetupLogging(newSystemFlags(t, "--verbose")))
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())

	// An explicitly more verbose level wins over --verbose.
	require.NoError(t, SetupLogging(newSystemFlags(t, "--verbose", "--log-level", "trace")))
	assert.Equal(t, logrus.TraceLevel, logrus.GetLevel())

	require.Error(t, SetupLogging(newSystemFlags(t, "--log-level", "gossip")))
}

// TestSystemFlagsSurviveLateRegistration verifies the registry keeps
// honoring the original command line when system flags are registered
// after an early parse.
func TestSystemFlagsSurviveLateRegistration(t *testing.T) {
	SetDefaults()

	flags := flagset.New("glance")

	_, err := flags.Parse([]string{"glance", "--http-api-port=8000", "--verbose"})
	require.NoError(t, err)

	RegisterSystemFlags(flags)

	port, err := flags.GetString("http-api-port")
	require.NoError(t, err)
	assert.Equal(t, "8000", port)

	verbose, err := flags.GetBool("verbose")
	require.NoError(t, err)
	assert.True(t, verbose)
}
