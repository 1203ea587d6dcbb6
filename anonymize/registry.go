// Package anonymize holds the masking transforms that can be assigned to sensitive columns.
//
// Each transform is deterministic for a given (value, seed) pair. Transforms are looked up by name once,
// when a project's rules are turned into a Plan, so a misspelt function name is reported before any data
// is read.
package anonymize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
)

// Names of the transforms as they are stored in column rules and rule files.
const (
	FuncObfuscateName       = "obfuscate_name"
	FuncObfuscateSpouseName = "obfuscate_spouse_name"
	FuncAnonymizeId         = "anonymize_id"
	FuncObfuscatePhone      = "obfuscate_phone"
	FuncObfuscateAddress    = "obfuscate_address"
	FuncClearContent        = "clear_content"
)

// aliases maps accepted spellings onto stored names.
var aliases = map[string]string{
	"namesynthesis":       FuncObfuscateName,
	"spousenamesynthesis": FuncObfuscateSpouseName,
	"idmask":              FuncAnonymizeId,
	"phonemask":           FuncObfuscatePhone,
	"addressmask":         FuncObfuscateAddress,
	"blank":               FuncClearContent,
}

// Transformer is a single named masking function.
type Transformer interface {
	// Name returns the stored function name.
	Name() string
	// Apply returns the replacement for value. seed is empty when the rule has no seed column.
	Apply(value string, seed string) string
}

// UnknownFunctionError is returned when a rule names a function that does not exist.
type UnknownFunctionError struct {
	Function string
}

func (e UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown anonymization function %q (expected one of %v)", e.Function, strings.Join(FunctionNames(), ", "))
}

// CanonicalName returns the stored name for fn, accepting aliases and ignoring case.
// ok is false if fn is not a known function.
func CanonicalName(fn string) (name string, ok bool) {
	n := strings.ToLower(strings.TrimSpace(fn))
	if _, ok = constructors[n]; ok {
		return n, true
	}
	name, ok = aliases[n]
	return
}

// IsKnownFunction is true if fn names a transform.
func IsKnownFunction(fn string) bool {
	_, ok := CanonicalName(fn)
	return ok
}

// FunctionNames lists the stored function names in alphabetical order.
func FunctionNames() []string {
	retval := make([]string, 0, len(constructors))
	for k := range constructors {
		retval = append(retval, k)
	}
	sort.Strings(retval)
	return retval
}

var constructors = map[string]func(c *corpus.Corpus) Transformer{
	FuncObfuscateName:       func(c *corpus.Corpus) Transformer { return &nameSynthesis{corpus: c} },
	FuncObfuscateSpouseName: func(c *corpus.Corpus) Transformer { return &nameSynthesis{corpus: c, spouse: true} },
	FuncAnonymizeId:         func(*corpus.Corpus) Transformer { return idMask{} },
	FuncObfuscatePhone:      func(*corpus.Corpus) Transformer { return phoneMask{} },
	FuncObfuscateAddress:    func(*corpus.Corpus) Transformer { return addressMask{} },
	FuncClearContent:        func(*corpus.Corpus) Transformer { return blank{} },
}

// Registry hands out transforms bound to one corpus snapshot.
type Registry struct {
	corpus       *corpus.Corpus
	transformers map[string]Transformer
}

// NewRegistry builds every transform against c.
// A nil corpus uses the built-in name pool.
func NewRegistry(c *corpus.Corpus) *Registry {
	if c == nil {
		c = corpus.Builtin()
	}
	r := &Registry{corpus: c, transformers: make(map[string]Transformer, len(constructors))}
	for name, fn := range constructors {
		r.transformers[name] = Guard(fn(c))
	}
	return r
}

// Resolve returns the transform called fn or an UnknownFunctionError.
func (r *Registry) Resolve(fn string) (Transformer, error) {
	name, ok := CanonicalName(fn)
	if !ok {
		return nil, UnknownFunctionError{Function: fn}
	}
	return r.transformers[name], nil
}

// Corpus returns the snapshot that name transforms draw from.
func (r *Registry) Corpus() *corpus.Corpus {
	return r.corpus
}
