package flagset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestSplitArgs exercises the argv splitter directly across the token
// shapes it has to classify.
func TestSplitArgs(t *testing.T) {
	flags := New("glance")
	flags.BoolP("verbose", "v", false, "show debug output")
	flags.StringP("out", "o", "", "output path")
	flags.Int("count", 0, "how many")

	tests := []struct {
		name       string
		args       []string
		recognized []string
		leftover   []string
	}{
		{
			name:       "empty",
			args:       nil,
			recognized: nil,
			leftover:   nil,
		},
		{
			name:       "positionals only",
			args:       []string{"a", "b"},
			recognized: nil,
			leftover:   []string{"a", "b"},
		},
		{
			name:       "known long flags",
			args:       []string{"--verbose", "--out=x", "--count", "3"},
			recognized: []string{"--verbose", "--out=x", "--count", "3"},
			leftover:   nil,
		},
		{
			name:       "unknown long flag keeps order",
			args:       []string{"a", "--nope=1", "--verbose", "b"},
			recognized: []string{"--verbose"},
			leftover:   []string{"a", "--nope=1", "b"},
		},
		{
			name:       "known flag owns next token",
			args:       []string{"--out", "path", "path2"},
			recognized: []string{"--out", "path"},
			leftover:   []string{"path2"},
		},
		{
			name:       "boolean flag never consumes a value",
			args:       []string{"--verbose", "path"},
			recognized: []string{"--verbose"},
			leftover:   []string{"path"},
		},
		{
			name:       "terminator",
			args:       []string{"--verbose", "--", "--out", "x"},
			recognized: []string{"--verbose"},
			leftover:   []string{"--out", "x"},
		},
		{
			name:       "single dash is positional",
			args:       []string{"-"},
			recognized: nil,
			leftover:   []string{"-"},
		},
		{
			name:       "shorthand cluster with value",
			args:       []string{"-vo", "path"},
			recognized: []string{"-vo", "path"},
			leftover:   nil,
		},
		{
			name:       "shorthand inline value",
			args:       []string{"-opath"},
			recognized: []string{"-opath"},
			leftover:   nil,
		},
		{
			name:       "mixed known and unknown cluster left whole",
			args:       []string{"-vz"},
			recognized: nil,
			leftover:   []string{"-vz"},
		},
		{
			name:       "missing value still handed over",
			args:       []string{"--out"},
			recognized: []string{"--out"},
			leftover:   nil,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			recognized, leftover := flags.splitArgs(testCase.args)
			assert.Equal(t, testCase.recognized, recognized)
			assert.Equal(t, testCase.leftover, leftover)
		})
	}
}
