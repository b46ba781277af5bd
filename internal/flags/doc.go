// Package flags manages command-line flags and environment variables
// for Glance configuration.
// It registers the system flags onto the extensible flag registry,
// binds environment variables via Viper, and configures logrus from
// the logging flags.
//
// Key components:
//   - RegisterSystemFlags: Adds operational control flags.
//   - SetDefaults: Configures environment variable fallbacks.
//   - SetupLogging: Configures logrus based on flags.
//
// Usage example:
//
//	registry := flagset.CommandLine
//	flags.SetDefaults()
//	flags.RegisterSystemFlags(registry)
//	if _, err := registry.Parse(os.Args); err != nil {
//	    logrus.WithError(err).Fatal("Argument parsing failed")
//	}
//	if err := flags.SetupLogging(registry); err != nil {
//	    logrus.WithError(err).Fatal("Logging setup failed")
//	}
//
// The package integrates with the flagset registry for tolerant
// parsing, Viper for environment variable binding, and logrus for
// logging configuration.
package flags
