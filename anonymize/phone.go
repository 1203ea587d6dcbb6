package anonymize

import (
	"unicode"
)

const phoneDigitsToMask = 5

// phoneMask replaces the last five digits of a phone number with random digits.
// Separators and earlier digits are kept. Numbers with fewer than five digits are left alone.
type phoneMask struct{}

func (phoneMask) Name() string {
	return FuncObfuscatePhone
}

func (phoneMask) Apply(value string, seed string) string {
	if value == "" {
		return value
	}
	chars := []rune(value)
	digits := make([]int, 0, len(chars))
	for i, c := range chars {
		if unicode.IsDigit(c) {
			digits = append(digits, i)
		}
	}
	if len(digits) < phoneDigitsToMask {
		return value
	}
	r := newRand(seedOrValue(value, seed), 0)
	for _, i := range digits[len(digits)-phoneDigitsToMask:] {
		chars[i] = rune('0' + r.Intn(10))
	}
	return string(chars)
}
