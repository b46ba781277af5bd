package flagset

import (
	"fmt"
	"slices"
	"time"

	"github.com/spf13/pflag"
)

// FlagSet is a flag registry that ignores unknown flags during parsing
// and reconciles flags defined after the initial parse against the
// stored command line.
//
// It is not safe for concurrent use.
type FlagSet struct {
	name       string
	flags      *pflag.FlagSet
	dirty      []string
	parsed     bool
	storedArgv []string
	leftover   []string
	modules    map[string]func(*FlagSet)
	loaded     map[string]bool
}

// New creates an empty FlagSet named after the program it parses for.
func New(name string) *FlagSet {
	return &FlagSet{
		name:    name,
		flags:   pflag.NewFlagSet(name, pflag.ContinueOnError),
		modules: map[string]func(*FlagSet){},
		loaded:  map[string]bool{},
	}
}

// Parse parses the given argument vector against the registered flags.
// The first element of argv is the program name.
//
// Tokens that look like flags but match no registered flag never abort
// parsing; they are diverted to the leftover result together with the
// positional arguments, in their original relative order, prefixed by
// the program name. Parse errors unrelated to unknown flags (such as a
// malformed value) are returned and leave the registry untouched.
//
// On success the argument vector is stored for later replay, the
// registry is marked as parsed, and all dirty markers are cleared.
// A second call overwrites the stored vector; replay always uses the
// most recent one.
func (f *FlagSet) Parse(argv []string) ([]string, error) {
	if len(argv) == 0 {
		return nil, nil
	}

	recognized, leftover := f.splitArgs(argv[1:])

	if err := f.flags.Parse(recognized); err != nil {
		return nil, fmt.Errorf("%w: %w", errParseFailed, err)
	}

	f.storedArgv = slices.Clone(argv)
	f.parsed = true
	f.leftover = leftover
	f.ClearDirty()

	result := make([]string, 0, len(leftover)+1)
	result = append(result, argv[0])
	result = append(result, leftover...)

	return result, nil
}

// Reparse replays the stored argument vector against the dirty flags.
//
// It builds a fresh registry indexing only the dirty flag instances,
// parses the stored arguments with it, and clears all dirty markers.
// Because the fresh registry shares the flag instances, the computed
// values are visible on this registry immediately. A Reparse with no
// stored arguments is a no-op.
func (f *FlagSet) Reparse() error {
	if f.storedArgv == nil {
		return nil
	}

	sub := New(f.name)

	for _, name := range f.dirty {
		flag := f.flags.Lookup(name)
		if flag == nil || sub.flags.Lookup(name) != nil {
			continue
		}

		sub.flags.AddFlag(flag)
	}

	if _, err := sub.Parse(f.storedArgv); err != nil {
		return fmt.Errorf("%w: %w", errReparseFailed, err)
	}

	f.ClearDirty()

	return nil
}

// MarkDirty records a flag as registered after the initial parse and
// not yet reconciled with the stored command line.
// Duplicate entries are harmless since replay is idempotent.
func (f *FlagSet) MarkDirty(name string) {
	f.dirty = append(f.dirty, name)
}

// IsDirty reports whether the named flag awaits reconciliation.
func (f *FlagSet) IsDirty(name string) bool {
	return slices.Contains(f.dirty, name)
}

// ClearDirty removes all dirty markers.
func (f *FlagSet) ClearDirty() {
	f.dirty = nil
}

// Parsed reports whether Parse has completed successfully at least once.
func (f *FlagSet) Parsed() bool {
	return f.parsed
}

// Name returns the name the FlagSet was created with.
func (f *FlagSet) Name() string {
	return f.name
}

// Args returns the leftover arguments from the last successful Parse,
// without the program name.
func (f *FlagSet) Args() []string {
	return f.leftover
}

// Lookup returns the definition of the named flag, replaying the stored
// arguments first if the flag is dirty. It returns nil for unknown
// flags. A failed replay leaves the flag with its stale value.
func (f *FlagSet) Lookup(name string) *pflag.Flag {
	_ = f.reparseIfDirty(name)

	return f.flags.Lookup(name)
}

// Set assigns a value to the named flag, bypassing dirty tracking.
func (f *FlagSet) Set(name, value string) error {
	if err := f.flags.Set(name, value); err != nil {
		return fmt.Errorf("failed to set flag %q: %w", name, err)
	}

	return nil
}

// Changed reports whether the named flag was set by a parse.
func (f *FlagSet) Changed(name string) bool {
	flag := f.flags.Lookup(name)

	return flag != nil && flag.Changed
}

// VisitAll visits every registered flag in lexicographical order.
func (f *FlagSet) VisitAll(visit func(*pflag.Flag)) {
	f.flags.VisitAll(visit)
}

// noteAdded marks a freshly registered flag dirty when registration
// happens after the initial parse, so that its first read replays the
// stored command line.
func (f *FlagSet) noteAdded(name string) {
	if f.parsed {
		f.MarkDirty(name)
	}
}

// reparseIfDirty replays the stored arguments when the named flag has
// not yet been reconciled. Replay clears dirtiness for every currently
// dirty flag, not just the one read.
func (f *FlagSet) reparseIfDirty(name string) error {
	if !f.IsDirty(name) {
		return nil
	}

	return f.Reparse()
}

// AddFlag registers an existing flag definition.
func (f *FlagSet) AddFlag(flag *pflag.Flag) {
	f.flags.AddFlag(flag)
	f.noteAdded(flag.Name)
}

// Var registers a flag with a custom value type.
func (f *FlagSet) Var(value pflag.Value, name, usage string) {
	f.flags.Var(value, name, usage)
	f.noteAdded(name)
}

// VarP registers a flag with a custom value type and a shorthand.
func (f *FlagSet) VarP(value pflag.Value, name, shorthand, usage string) {
	f.flags.VarP(value, name, shorthand, usage)
	f.noteAdded(name)
}

// String registers a string flag and returns a pointer to its value.
func (f *FlagSet) String(name, value, usage string) *string {
	pointer := f.flags.String(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// StringP registers a string flag with a shorthand.
func (f *FlagSet) StringP(name, shorthand, value, usage string) *string {
	pointer := f.flags.StringP(name, shorthand, value, usage)
	f.noteAdded(name)

	return pointer
}

// Bool registers a boolean flag and returns a pointer to its value.
func (f *FlagSet) Bool(name string, value bool, usage string) *bool {
	pointer := f.flags.Bool(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// BoolP registers a boolean flag with a shorthand.
func (f *FlagSet) BoolP(name, shorthand string, value bool, usage string) *bool {
	pointer := f.flags.BoolP(name, shorthand, value, usage)
	f.noteAdded(name)

	return pointer
}

// Int registers an integer flag and returns a pointer to its value.
func (f *FlagSet) Int(name string, value int, usage string) *int {
	pointer := f.flags.Int(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// IntP registers an integer flag with a shorthand.
func (f *FlagSet) IntP(name, shorthand string, value int, usage string) *int {
	pointer := f.flags.IntP(name, shorthand, value, usage)
	f.noteAdded(name)

	return pointer
}

// Float64 registers a float flag and returns a pointer to its value.
func (f *FlagSet) Float64(name string, value float64, usage string) *float64 {
	pointer := f.flags.Float64(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// Duration registers a duration flag and returns a pointer to its value.
func (f *FlagSet) Duration(name string, value time.Duration, usage string) *time.Duration {
	pointer := f.flags.Duration(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// StringSlice registers a string slice flag and returns a pointer to
// its value.
func (f *FlagSet) StringSlice(name string, value []string, usage string) *[]string {
	pointer := f.flags.StringSlice(name, value, usage)
	f.noteAdded(name)

	return pointer
}

// GetString returns the value of a string flag, reconciling it first
// if it is dirty.
func (f *FlagSet) GetString(name string) (string, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return "", err
	}

	value, err := f.flags.GetString(name)
	if err != nil {
		return "", fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}

// GetBool returns the value of a boolean flag, reconciling it first if
// it is dirty.
func (f *FlagSet) GetBool(name string) (bool, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return false, err
	}

	value, err := f.flags.GetBool(name)
	if err != nil {
		return false, fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}

// GetInt returns the value of an integer flag, reconciling it first if
// it is dirty.
func (f *FlagSet) GetInt(name string) (int, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return 0, err
	}

	value, err := f.flags.GetInt(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}

// GetFloat64 returns the value of a float flag, reconciling it first
// if it is dirty.
func (f *FlagSet) GetFloat64(name string) (float64, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return 0, err
	}

	value, err := f.flags.GetFloat64(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}

// GetDuration returns the value of a duration flag, reconciling it
// first if it is dirty.
func (f *FlagSet) GetDuration(name string) (time.Duration, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return 0, err
	}

	value, err := f.flags.GetDuration(name)
	if err != nil {
		return 0, fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}

// GetStringSlice returns the value of a string slice flag, reconciling
// it first if it is dirty.
func (f *FlagSet) GetStringSlice(name string) ([]string, error) {
	if err := f.reparseIfDirty(name); err != nil {
		return nil, err
	}

	value, err := f.flags.GetStringSlice(name)
	if err != nil {
		return nil, fmt.Errorf("failed to get flag %q: %w", name, err)
	}

	return value, nil
}
