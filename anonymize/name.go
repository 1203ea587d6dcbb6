package anonymize

import (
	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
)

// nameSynthesis replaces a name with a surname and given name drawn from the corpus.
// The spouse variant offsets the seed so that an employee and their spouse get different names.
type nameSynthesis struct {
	corpus *corpus.Corpus
	spouse bool
}

func (n *nameSynthesis) Name() string {
	if n.spouse {
		return FuncObfuscateSpouseName
	}
	return FuncObfuscateName
}

func (n *nameSynthesis) Apply(value string, seed string) string {
	if value == "" {
		return value
	}
	if !n.corpus.IsUsable() {
		return SafeMask(value)
	}
	var offset uint64
	if n.spouse {
		offset = constants.SpouseSeedOffset
	}
	r := newRand(seedOrValue(value, seed), offset)
	surname := n.corpus.Surname(r.Intn(n.corpus.NumSurnames()))
	given := n.corpus.GivenName(r.Intn(n.corpus.NumGivenNames()))
	return surname + given
}
