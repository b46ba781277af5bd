package flagset

import "fmt"

// RegisterModule records a named hook that registers a module's flags
// on demand. Declare runs the hook the first time the module is needed.
// Registering the same module twice replaces the hook.
func (f *FlagSet) RegisterModule(module string, register func(*FlagSet)) {
	f.modules[module] = register
}

// Declare ensures the module expected to define the named flag has
// been loaded, triggering its flag registrations as a side effect.
//
// It returns ErrUnknownModule when no hook was registered for the
// module, and ErrUndeclaredFlag when the flag is still missing after
// loading, which signals a contract violation by the declaring code.
func (f *FlagSet) Declare(name, module string) error {
	if !f.loaded[module] {
		register, exists := f.modules[module]
		if !exists {
			return fmt.Errorf("%w: %q", ErrUnknownModule, module)
		}

		f.loaded[module] = true
		register(f)
	}

	if f.flags.Lookup(name) == nil {
		return fmt.Errorf("%w: %q not defined by module %q", ErrUndeclaredFlag, name, module)
	}

	return nil
}
