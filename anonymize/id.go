package anonymize

import (
	"regexp"
	"strings"
)

var nationalIdRegexp = regexp.MustCompile(`^[A-Z][0-9]{9}$`)

// idMask masks the middle of a national id number: A123456789 -> A12*****89.
// Anything that is not a well formed id is masked completely.
type idMask struct{}

func (idMask) Name() string {
	return FuncAnonymizeId
}

func (idMask) Apply(value string, _ string) string {
	if value == "" {
		return value
	}
	if !nationalIdRegexp.MatchString(value) {
		return strings.Repeat("*", 10)
	}
	return value[:3] + "*****" + value[8:]
}
