package flagset

import "errors"

// ErrUndeclaredFlag indicates a declared flag was not defined by the
// module expected to define it.
// It signals a programming contract violation and is not recovered.
var ErrUndeclaredFlag = errors.New("flag not defined by declaring module")

// ErrUnknownModule indicates a Declare call referenced a module that
// was never registered with RegisterModule.
var ErrUnknownModule = errors.New("unknown flag module")

// errParseFailed indicates the underlying flag parser rejected the
// recognized arguments, for example a malformed value.
// It is used in Parse to wrap pflag errors.
var errParseFailed = errors.New("failed to parse arguments")

// errReparseFailed indicates a replay of the stored arguments failed.
// It is used by the typed getters when reconciling dirty flags.
var errReparseFailed = errors.New("failed to reparse stored arguments")
