package anonymize

import (
	"strings"
)

// SafeMask is the conservative replacement used when a transform fails.
// It keeps the first and last character and replaces the middle with "O".
// Values of two characters or fewer are replaced with "*".
func SafeMask(value string) string {
	r := []rune(value)
	if len(r) <= 2 {
		return strings.Repeat("*", len(r))
	}
	return string(r[0]) + "O" + string(r[len(r)-1])
}

// Guard wraps t so that a panic inside Apply yields SafeMask(value) instead of propagating.
func Guard(t Transformer) Transformer {
	if _, ok := t.(guarded); ok {
		return t
	}
	return guarded{t}
}

type guarded struct {
	Transformer
}

func (g guarded) Apply(value string, seed string) (retval string) {
	defer func() {
		if r := recover(); r != nil {
			retval = SafeMask(value)
		}
	}()
	return g.Transformer.Apply(value, seed)
}
