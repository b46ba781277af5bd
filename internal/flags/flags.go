package flags

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/trjordan/glance/pkg/flagset"
)

// defaultAPIPort is the port the image API listens on by default.
const defaultAPIPort = "9292"

// errInvalidLogFormat indicates an invalid log format was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogFormat = errors.New("invalid log format specified")

// errInvalidLogLevel indicates an invalid log level was specified.
// It is used in SetupLogging to report configuration errors.
var errInvalidLogLevel = errors.New("invalid log level specified")

// RegisterSystemFlags adds flags that modify Glance's program flow to
// the registry. These flags control logging and the HTTP API.
func RegisterSystemFlags(flags *flagset.FlagSet) {
	flags.Bool(
		"verbose",
		envBool("GLANCE_VERBOSE"),
		"show debug output")

	flags.String(
		"log-level",
		envString("GLANCE_LOG_LEVEL"),
		"The maximum log level that will be written to STDERR. Possible values: panic, fatal, error, warn, info, debug or trace",
	)

	flags.StringP(
		"log-format",
		"l",
		envString("GLANCE_LOG_FORMAT"),
		"Sets what logging format to use for console output. Possible values: Auto, LogFmt, Pretty, JSON",
	)

	// https://no-color.org/
	flags.Bool(
		"no-color",
		viper.IsSet("NO_COLOR"),
		"Disable ANSI color escape codes in log output")

	flags.String(
		"http-api-host",
		envString("GLANCE_HTTP_API_HOST"),
		"Host to bind the HTTP API to")

	flags.String(
		"http-api-port",
		envString("GLANCE_HTTP_API_PORT"),
		"Port to bind the HTTP API to (default: "+defaultAPIPort+")")

	flags.String(
		"http-api-token",
		envString("GLANCE_HTTP_API_TOKEN"),
		"Sets an authentication token for HTTP API requests")

	flags.Bool(
		"http-api-metrics",
		envBool("GLANCE_HTTP_API_METRICS"),
		"Expose the Prometheus metrics endpoint on the HTTP API")
}

// envString retrieves a string value from an environment variable via
// Viper. It binds the key to the environment and returns its value.
func envString(key string) string {
	viper.MustBindEnv(key)

	return viper.GetString(key)
}

// envBool retrieves a boolean value from an environment variable via
// Viper. It binds the key to the environment and returns its value.
func envBool(key string) bool {
	viper.MustBindEnv(key)

	return viper.GetBool(key)
}

// SetDefaults configures default values for environment variables.
// It ensures consistent fallback behavior when flags or environment
// variables are unset.
func SetDefaults() {
	viper.AutomaticEnv()
	viper.SetDefault("GLANCE_LOG_LEVEL", "info")
	viper.SetDefault("GLANCE_LOG_FORMAT", "auto")
	viper.SetDefault("GLANCE_HTTP_API_PORT", defaultAPIPort)
}

// SetupLogging configures the global logger based on log-related
// flags. The verbose flag raises the level to debug unless a more
// verbose level was requested explicitly. It returns an error for
// invalid configurations.
func SetupLogging(flags *flagset.FlagSet) error {
	logFormat, err := flags.GetString("log-format")
	if err != nil {
		return err
	}

	noColor, err := flags.GetBool("no-color")
	if err != nil {
		return err
	}

	if err := configureLogFormat(logFormat, noColor); err != nil {
		return err
	}

	rawLogLevel, err := flags.GetString("log-level")
	if err != nil {
		return err
	}

	logLevel, err := logrus.ParseLevel(rawLogLevel)
	if err != nil {
		return fmt.Errorf("%w: %w", errInvalidLogLevel, err)
	}

	verbose, err := flags.GetBool("verbose")
	if err != nil {
		return err
	}

	if verbose && logLevel < logrus.DebugLevel {
		logLevel = logrus.DebugLevel
	}

	logrus.SetLevel(logLevel)

	return nil
}

// configureLogFormat sets the logrus formatter based on the specified
// format and color preference. It returns an error if the format is
// invalid.
func configureLogFormat(logFormat string, noColor bool) error {
	switch strings.ToLower(logFormat) {
	case "auto":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors:             noColor,
			EnvironmentOverrideColors: true,
		})
	case "json":
		logrus.SetFormatter(&logrus.JSONFormatter{})
	case "logfmt":
		logrus.SetFormatter(&logrus.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	case "pretty":
		logrus.SetFormatter(&logrus.TextFormatter{
			ForceColors:   !noColor,
			FullTimestamp: false,
		})
	default:
		return fmt.Errorf("%w: %s", errInvalidLogFormat, logFormat)
	}

	return nil
}
