package flagset

import (
	"os"
	"time"
)

// CommandLine is the process-wide default registry, targeted by the
// package-level convenience wrappers. Applications typically create it
// once here and inject it into subsystems from their entry point.
var CommandLine = New(os.Args[0])

// Parse parses os.Args on the default registry and returns the
// leftover arguments.
func Parse() ([]string, error) {
	return CommandLine.Parse(os.Args)
}

// Declare asserts on the default registry that the named module
// defines the named flag.
func Declare(name, module string) error {
	return CommandLine.Declare(name, module)
}

// RegisterModule records a module flag hook on the default registry.
func RegisterModule(module string, register func(*FlagSet)) {
	CommandLine.RegisterModule(module, register)
}

// String registers a string flag on the default registry.
func String(name, value, usage string) *string {
	return CommandLine.String(name, value, usage)
}

// Bool registers a boolean flag on the default registry.
func Bool(name string, value bool, usage string) *bool {
	return CommandLine.Bool(name, value, usage)
}

// Int registers an integer flag on the default registry.
func Int(name string, value int, usage string) *int {
	return CommandLine.Int(name, value, usage)
}

// Float64 registers a float flag on the default registry.
func Float64(name string, value float64, usage string) *float64 {
	return CommandLine.Float64(name, value, usage)
}

// Duration registers a duration flag on the default registry.
func Duration(name string, value time.Duration, usage string) *time.Duration {
	return CommandLine.Duration(name, value, usage)
}

// StringSlice registers a string slice flag on the default registry.
func StringSlice(name string, value []string, usage string) *[]string {
	return CommandLine.StringSlice(name, value, usage)
}

// GetString reads a string flag from the default registry.
func GetString(name string) (string, error) {
	return CommandLine.GetString(name)
}

// GetBool reads a boolean flag from the default registry.
func GetBool(name string) (bool, error) {
	return CommandLine.GetBool(name)
}

// GetInt reads an integer flag from the default registry.
func GetInt(name string) (int, error) {
	return CommandLine.GetInt(name)
}

// GetDuration reads a duration flag from the default registry.
func GetDuration(name string) (time.Duration, error) {
	return CommandLine.GetDuration(name)
}
