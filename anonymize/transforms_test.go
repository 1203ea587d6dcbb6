package anonymize_test

import (
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/August-Icekimo/DEV-DB-Cloner/anonymize"
	"github.com/August-Icekimo/DEV-DB-Cloner/corpus"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

type panicky struct{}

func (panicky) Name() string { return "panicky" }
func (panicky) Apply(string, string) string { panic("boom") }

var _ = Describe("Transforms", func() {
	reg := anonymize.NewRegistry(corpus.Builtin())
	salt := anonymize.DailySalt(time.Date(2025, 3, 14, 9, 0, 0, 0, time.Local))

	mustResolve := func(fn string) anonymize.Transformer {
		t, err := reg.Resolve(fn)
		Expect(err).ToNot(HaveOccurred())
		return t
	}

	Describe("every function", func() {
		It("is deterministic and leaves empty values alone", func() {
			for _, fn := range anonymize.FunctionNames() {
				t := mustResolve(fn)
				seed := anonymize.SeedMaterial("E1001", salt)
				for _, v := range []string{"王小明", "A123456789", "02-1234-5678", "台北市大安區復興南路一段390號"} {
					Expect(t.Apply(v, seed)).To(Equal(t.Apply(v, seed)), fn)
				}
				Expect(t.Apply("", seed)).To(Equal(""), fn)
			}
		})
	})

	Describe("name synthesis", func() {
		It("produces a surname and given name from the corpus", func() {
			got := mustResolve(anonymize.FuncObfuscateName).Apply("王小明", anonymize.SeedMaterial("E1001", salt))
			Expect(got).ToNot(Equal("王小明"))
			Expect(utf8.RuneCountInString(got)).To(Equal(3))
		})

		It("varies with the seed", func() {
			t := mustResolve("nameSynthesis")
			seen := map[string]struct{}{}
			for i := 0; i < 30; i++ {
				seen[t.Apply("王小明", anonymize.SeedMaterial(fmt.Sprintf("E%04d", i), salt))] = struct{}{}
			}
			Expect(len(seen)).To(BeNumerically(">", 20))
		})

		It("gives spouses a different name", func() {
			seed := anonymize.SeedMaterial("E1001", salt)
			differ := 0
			for i := 0; i < 10; i++ {
				s := anonymize.SeedMaterial(fmt.Sprintf("E%04d", i), salt)
				if mustResolve(anonymize.FuncObfuscateName).Apply("王小明", s) != mustResolve(anonymize.FuncObfuscateSpouseName).Apply("王小明", s) {
					differ++
				}
			}
			Expect(differ).To(BeNumerically(">", 5))
			Expect(mustResolve("spouseNameSynthesis").Apply("林美玲", seed)).To(Equal(mustResolve(anonymize.FuncObfuscateSpouseName).Apply("林美玲", seed)))
		})

		It("rotates with the daily salt", func() {
			t := mustResolve(anonymize.FuncObfuscateName)
			other := anonymize.DailySalt(time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local))
			differ := 0
			for i := 0; i < 10; i++ {
				id := fmt.Sprintf("E%04d", i)
				if t.Apply("王小明", anonymize.SeedMaterial(id, salt)) != t.Apply("王小明", anonymize.SeedMaterial(id, other)) {
					differ++
				}
			}
			Expect(differ).To(BeNumerically(">", 5))
		})

		It("masks when the corpus is empty", func() {
			empty := anonymize.NewRegistry(corpus.New(nil, nil, "empty"))
			t, _ := empty.Resolve(anonymize.FuncObfuscateName)
			Expect(t.Apply("王小明", "x")).To(Equal("王O明"))
		})
	})

	Describe("id mask", func() {
		It("masks the middle of a valid id", func() {
			Expect(mustResolve("idMask").Apply("A123456789", "")).To(Equal("A12*****89"))
		})
		It("fully masks anything else", func() {
			t := mustResolve(anonymize.FuncAnonymizeId)
			Expect(t.Apply("1234567890", "")).To(Equal("**********"))
			Expect(t.Apply("A1234", "")).To(Equal("**********"))
			Expect(t.Apply("a123456789", "")).To(Equal("**********"))
		})
	})

	Describe("phone mask", func() {
		It("keeps formatting and changes only the last five digits", func() {
			in := "02-1234-5678"
			got := mustResolve("phoneMask").Apply(in, anonymize.SeedMaterial("E1001", salt))
			Expect(got).To(HaveLen(len(in)))
			Expect(got[2]).To(Equal(byte('-')))
			Expect(got[7]).To(Equal(byte('-')))
			Expect(got[:6]).To(Equal("02-123"))
			for _, c := range got[6:] {
				Expect(c == '-' || (c >= '0' && c <= '9')).To(BeTrue())
			}
		})
		It("leaves short numbers alone", func() {
			Expect(mustResolve(anonymize.FuncObfuscatePhone).Apply("12-34", "x")).To(Equal("12-34"))
		})
	})

	Describe("address mask", func() {
		var t anonymize.Transformer
		BeforeEach(func() {
			t = mustResolve(anonymize.FuncObfuscateAddress)
		})

		It("synthesises the address below a known city", func() {
			got := t.Apply("臺北市大安區復興南路一段３９０號", anonymize.SeedMaterial("E1001", salt))
			Expect(got).To(HavePrefix("台北市"))
			Expect(got).To(MatchRegexp(`^台北市\p{Han}+區\p{Han}+路[1-5]段([1-9][0-9]?|100)巷[0-9]+號$`))
		})

		It("replaces numbers when the city is unknown", func() {
			got := t.Apply("Somewhere Road 12 Floor 3", "seed")
			Expect(got).To(HavePrefix("Somewhere Road "))
			Expect(got).ToNot(Equal("Somewhere Road 12 Floor 3"))
			Expect(got).To(MatchRegexp(`^Somewhere Road [0-9]+ Floor [0-9]+$`))
		})

		It("treats full-width digits as digits", func() {
			got := t.Apply("某處１２號", "seed")
			Expect(got).To(MatchRegexp(`^某處[0-9]+號$`))
		})
	})

	Describe("blank", func() {
		It("always returns empty", func() {
			Expect(mustResolve("blank").Apply("anything", "seed")).To(Equal(""))
		})
	})

	Describe("guard", func() {
		It("turns a panic into a safe mask", func() {
			Expect(anonymize.Guard(panicky{}).Apply("王小明", "")).To(Equal("王O明"))
			Expect(anonymize.Guard(panicky{}).Apply("ab", "")).To(Equal("**"))
		})
	})

	Describe("registry", func() {
		It("rejects unknown names", func() {
			_, err := reg.Resolve("obfuscate_everything")
			Expect(err).To(HaveOccurred())
			Expect(err).To(BeAssignableToTypeOf(anonymize.UnknownFunctionError{}))
			Expect(anonymize.IsKnownFunction("OBFUSCATE_NAME")).To(BeTrue())
			name, ok := anonymize.CanonicalName("addressMask")
			Expect(ok).To(BeTrue())
			Expect(name).To(Equal(anonymize.FuncObfuscateAddress))
			Expect(strings.Join(anonymize.FunctionNames(), ",")).To(Equal("anonymize_id,clear_content,obfuscate_address,obfuscate_name,obfuscate_phone,obfuscate_spouse_name"))
		})
	})
})
