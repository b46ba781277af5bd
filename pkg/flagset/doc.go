// Package flagset provides a command-line flag registry that tolerates
// unknown flags and supports flags defined after the command line has
// already been parsed.
//
// Unknown flags are ignored during parsing, but the original argument
// vector is kept so that it can be replayed when new flags are
// registered later. A flag registered after the initial parse is marked
// dirty; the first read of a dirty flag replays the stored arguments
// against the dirty subset so its value reflects the original command
// line.
//
// Key components:
//   - FlagSet: The registry, wrapping a pflag.FlagSet with dirty
//     tracking and replay.
//   - Parse: Tolerant parse returning leftover arguments.
//   - Declare: Asserts that a named module defines an expected flag.
//   - CommandLine: The process-wide default registry.
//
// Usage example:
//
//	leftover, err := flagset.Parse()
//	if err != nil {
//	    logrus.WithError(err).Fatal("Argument parsing failed")
//	}
//	// Later, possibly from another package:
//	verbose := flagset.Bool("verbose", false, "show debug output")
//	// Reading replays the stored command line for late flags.
//	enabled, _ := flagset.GetBool("verbose")
//
// A FlagSet is not safe for concurrent use; callers running parse,
// registration, or value reads from multiple goroutines must provide
// their own locking.
package flagset
