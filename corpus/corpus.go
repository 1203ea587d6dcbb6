// Package corpus supplies the surname and given-name fragments used to synthesise substitute names.
//
// A Corpus is a snapshot: it is built once per run and never changes afterwards, so it can be shared
// by every transform without locking.
package corpus

const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceDb      = "database"
)

var builtinSurnames = []string{
	"陳", "林", "黃", "張", "李", "王", "吳", "劉", "蔡", "楊",
	"許", "鄭", "謝", "郭", "洪", "曾", "邱", "廖", "賴", "周",
	"徐", "苏", "葉", "莊", "呂", "江", "何", "蕭", "羅", "高",
	"潘", "簡", "朱", "鍾", "彭", "游", "詹", "胡", "施", "沈",
}

var builtinGivenNames = []string{
	"志明", "淑芬", "建華", "美玲", "俊傑", "雅婷", "家豪", "詠晴", "宗翰", "宜君",
	"冠宇", "怡君", "承恩", "欣怡", "柏翰", "雅雯", "家瑋", "心怡", "彥廷", "詩涵",
	"子軒", "鈺婷", "智偉", "佩珊", "志偉", "佳穎", "建宏", "怡萱", "俊宏", "淑華",
}

// Corpus is an immutable pair of fragment pools.
type Corpus struct {
	surnames   []string
	givenNames []string
	source     string
}

// New copies the supplied pools into a new Corpus.
// Either pool may be empty, in which case name synthesis falls back to masking.
func New(surnames []string, givenNames []string, source string) *Corpus {
	return &Corpus{
		surnames:   append([]string(nil), surnames...),
		givenNames: append([]string(nil), givenNames...),
		source:     source,
	}
}

// Builtin returns the hardcoded pool that is used when no other source is available.
func Builtin() *Corpus {
	return New(builtinSurnames, builtinGivenNames, SourceBuiltin)
}

func (c *Corpus) NumSurnames() int {
	return len(c.surnames)
}

func (c *Corpus) NumGivenNames() int {
	return len(c.givenNames)
}

// Surname returns the i'th surname fragment.
func (c *Corpus) Surname(i int) string {
	return c.surnames[i]
}

// GivenName returns the i'th given-name fragment.
func (c *Corpus) GivenName(i int) string {
	return c.givenNames[i]
}

// Surnames returns a copy of the surname pool.
func (c *Corpus) Surnames() []string {
	return append([]string(nil), c.surnames...)
}

// GivenNames returns a copy of the given-name pool.
func (c *Corpus) GivenNames() []string {
	return append([]string(nil), c.givenNames...)
}

// Source describes where the pools came from, for logging.
func (c *Corpus) Source() string {
	return c.source
}

// IsUsable is true when both pools have at least one fragment.
func (c *Corpus) IsUsable() bool {
	return c != nil && len(c.surnames) > 0 && len(c.givenNames) > 0
}
