package anonymize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/width"
)

var (
	digitRunRegexp  = regexp.MustCompile(`[0-9]+`)
	fullWidthDigits = &unicode.RangeTable{R16: []unicode.Range16{{Lo: 0xFF10, Hi: 0xFF19, Stride: 1}}}
)

// addressMask keeps the city of an address and synthesises the rest.
// Addresses without a recognised city keep their text but every number is replaced.
type addressMask struct{}

func (addressMask) Name() string {
	return FuncObfuscateAddress
}

func (addressMask) Apply(value string, seed string) string {
	if value == "" {
		return value
	}
	address := normaliseAddress(value)
	r := newRand(seedOrValue(value, seed), 0)
	city, districts := matchCity(address)
	if city == "" {
		return digitRunRegexp.ReplaceAllStringFunc(address, func(string) string {
			return strconv.Itoa(r.Intn(999) + 1)
		})
	}
	district := districts[r.Intn(len(districts))]
	road := roads[r.Intn(len(roads))]
	section := r.Intn(5) + 1
	lane := r.Intn(100) + 1
	number := r.Intn(500) + 1
	return fmt.Sprintf("%v%v%v%v段%v巷%v號", city, district, road, section, lane, number)
}

// normaliseAddress converts full-width digits to ASCII and 臺 to 台.
func normaliseAddress(s string) string {
	t := runes.If(runes.In(fullWidthDigits), width.Narrow, transform.Nop)
	if narrowed, _, err := transform.String(t, s); err == nil {
		s = narrowed
	}
	return strings.ReplaceAll(s, "臺", "台")
}

// matchCity returns the longest known city that prefixes address.
func matchCity(address string) (city string, districts []string) {
	for _, c := range cityDistricts {
		if strings.HasPrefix(address, c.city) && len(c.city) > len(city) {
			city, districts = c.city, c.districts
		}
	}
	return
}
