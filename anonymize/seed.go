package anonymize

import (
	"math/rand"
	"time"

	"github.com/August-Icekimo/DEV-DB-Cloner/constants"
	"github.com/cespare/xxhash/v2"
)

// DailySalt is appended to seed values so that masked output is stable within a calendar day.
func DailySalt(t time.Time) string {
	return t.Format(constants.TimeFormatDailySalt)
}

// SeedMaterial combines a row's seed column value with the salt.
func SeedMaterial(seedValue string, salt string) string {
	return seedValue + "_" + salt
}

// newRand returns a generator whose sequence depends only on seed and offset.
func newRand(seed string, offset uint64) *rand.Rand {
	return rand.New(rand.NewSource(int64(xxhash.Sum64String(seed) + offset)))
}

// seedOrValue keeps seedless calls deterministic by falling back to the value itself.
func seedOrValue(value string, seed string) string {
	if seed == "" {
		return value
	}
	return seed
}
