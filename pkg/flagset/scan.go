package flagset

import "strings"

// splitArgs partitions raw arguments (program name excluded) into the
// tokens the underlying parser will recognize and the leftover
// arguments: positionals plus any flag-like token that matches no
// registered flag. Leftovers keep their original relative order.
//
// The underlying parser only ever receives recognized tokens, so an
// unknown flag can never abort parsing. Errors it does report, such as
// a malformed or missing value for a known flag, are genuine.
func (f *FlagSet) splitArgs(args []string) (recognized, leftover []string) {
	for i := 0; i < len(args); i++ {
		token := args[i]

		switch {
		case token == "--":
			// Terminator: everything after it is positional.
			leftover = append(leftover, args[i+1:]...)

			return recognized, leftover

		case strings.HasPrefix(token, "--"):
			name, _, hasValue := strings.Cut(token[2:], "=")

			flag := f.flags.Lookup(name)
			if flag == nil {
				leftover = append(leftover, token)

				continue
			}

			recognized = append(recognized, token)

			// A known flag in "--name value" form owns the next token.
			if !hasValue && flag.NoOptDefVal == "" && i+1 < len(args) {
				i++
				recognized = append(recognized, args[i])
			}

		case len(token) > 1 && token[0] == '-':
			tokens, consumed, known := f.splitShorthands(token, args[i+1:])
			if !known {
				leftover = append(leftover, token)

				continue
			}

			recognized = append(recognized, tokens...)
			i += consumed

		default:
			leftover = append(leftover, token)
		}
	}

	return recognized, leftover
}

// splitShorthands classifies a shorthand cluster such as -v or -abc.
//
// It returns the tokens to feed the parser and how many following
// arguments the cluster consumed. A cluster containing any unknown
// shorthand is reported as not known and left over whole; splitting a
// cluster between recognized and unrecognized shorthands would change
// its meaning.
func (f *FlagSet) splitShorthands(token string, rest []string) (tokens []string, consumed int, known bool) {
	shorts := token[1:]

	for j := 0; j < len(shorts); j++ {
		if shorts[j] == '=' {
			break
		}

		flag := f.flags.ShorthandLookup(string(shorts[j]))
		if flag == nil {
			return nil, 0, false
		}

		// Value attached inside the cluster (-f=value or -fvalue).
		if j+1 < len(shorts) && shorts[j+1] == '=' {
			return []string{token}, 0, true
		}

		if flag.NoOptDefVal != "" {
			continue
		}

		if j+1 < len(shorts) {
			return []string{token}, 0, true
		}

		// Trailing shorthand takes the next argument as its value.
		if len(rest) > 0 {
			return []string{token, rest[0]}, 1, true
		}

		return []string{token}, 0, true
	}

	return []string{token}, 0, true
}
