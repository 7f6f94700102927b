// Package refcode generates short, sortable reference codes for form submissions.
//
// Format: #<prefix><yy><counter><random>
// Example: #AP263S586G00
//
//   - prefix:  caller supplied tag ("AP" for applications, "CM" for contact messages)
//   - yy:      last two digits of the UTC year
//   - counter: 50ms ticks since the start of the UTC year, 6 chars of Alphabet32
//   - random:  one random byte, 2 hex chars
//
// Codes are not globally unique. Two codes generated within the same tick
// differ only in their random suffix.
package refcode

import (
	"crypto/rand"
	"fmt"
	"io"
	"math"
	mrand "math/rand/v2"
	"regexp"
	"strings"
	"time"
)

const (
	// Alphabet32 is the counter alphabet. B, I, O and Z are left out so they
	// cannot be confused with 8, 1, 0 and 2.
	Alphabet32 = "0123456789ACDEFGHJKLMNPQRSTUVWXY"
	// Alphabet16 is the random suffix alphabet.
	Alphabet16 = "0123456789ABCDEF"

	// TickDuration is the resolution of the counter.
	TickDuration = 50 * time.Millisecond

	counterWidth = 6
	suffixWidth  = 2
)

// placeValues are 32^5 down to 32^0.
var placeValues = [counterWidth]uint32{33554432, 1048576, 32768, 1024, 32, 1}

// Pattern matches a reference code with a two-character prefix.
var Pattern = regexp.MustCompile(`^#.{2}[0-9]{2}[` + Alphabet32 + `]{6}[` + Alphabet16 + `]{2}$`)

// Generator assembles reference codes from a clock reading and one random byte.
// It holds no mutable state and is safe for concurrent use.
type Generator struct {
	now    func() time.Time
	random io.Reader
}

// Option is a function that configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used to read the current instant.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRandom sets the source of random bytes. The reader must be safe for
// concurrent use if the generator is shared.
func WithRandom(r io.Reader) Option {
	return func(g *Generator) {
		g.random = r
	}
}

// New creates a Generator reading time.Now and crypto/rand by default.
func New(opts ...Option) *Generator {
	g := &Generator{
		now:    time.Now,
		random: rand.Reader,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

var defaultGenerator = New()

// Next returns a new reference code using the default generator.
func Next(prefix string) string {
	return defaultGenerator.Next(prefix)
}

// Next returns a new reference code for prefix. The prefix is embedded
// verbatim; checking its length and content is up to the caller.
func (g *Generator) Next(prefix string) string {
	now := g.now().UTC()

	var b strings.Builder
	b.Grow(1 + len(prefix) + 2 + counterWidth + suffixWidth)
	b.WriteByte('#')
	b.WriteString(prefix)
	b.WriteString(now.Format("06"))
	b.WriteString(encodeCounter(intervals(now)))
	b.WriteString(encodeRandom(g.randomByte()))
	return b.String()
}

// randomByte draws one byte from the configured source.
func (g *Generator) randomByte() byte {
	var buf [1]byte
	if _, err := io.ReadFull(g.random, buf[:]); err != nil {
		// Fallback to the process-wide PRNG so Next stays total
		return byte(mrand.UintN(256))
	}
	return buf[0]
}

// intervals returns the number of whole ticks elapsed since 00:00:00 UTC on
// January 1st of the year of now. The result is at most 632447999 (a leap
// year) and always fits in 32 bits.
func intervals(now time.Time) uint32 {
	now = now.UTC()
	epoch := time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	ticks := now.Sub(epoch).Milliseconds() / TickDuration.Milliseconds()
	// Unreachable: epoch is derived from now, so ticks spans at most one year.
	if ticks < 0 || ticks > math.MaxUint32 {
		panic(fmt.Sprintf("refcode: %d ticks since %s is outside the 32-bit range", ticks, epoch.Format(time.RFC3339)))
	}
	return uint32(ticks)
}

// encodeCounter renders ticks as six Alphabet32 digits, most significant
// first. Values of 32^6 and above wrap.
func encodeCounter(ticks uint32) string {
	var counter [counterWidth]byte
	for i, v := range placeValues {
		counter[i] = Alphabet32[ticks/v%32]
	}
	return string(counter[:])
}

// encodeRandom renders b as two Alphabet16 digits, high nibble first.
func encodeRandom(b byte) string {
	return string([]byte{Alphabet16[b/16], Alphabet16[b%16]})
}
