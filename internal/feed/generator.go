package feed

import (
	"math/rand"

	"github.com/google/uuid"
)

// countries seeds the pairing pool. Suffixing with a short uuid keeps
// repeated runs against the same server from tripping the busy-team
// check.
var countries = []string{
	"Mexico", "Canada", "Spain", "Brazil", "Germany", "France",
	"Uruguay", "Italy", "Argentina", "Australia", "Japan", "Indonesia",
	"Ghana", "Senegal", "Egypt", "Morocco", "Chile", "Peru",
	"Denmark", "Norway", "Sweden", "Finland", "Iceland", "Ireland",
}

// pairing is one home/away assignment produced by the generator.
type pairing struct {
	Home string
	Away string
}

// generator hands out unique team pairings.
type generator struct {
	rng    *rand.Rand
	unique bool
}

func newGenerator(seed int64, unique bool) *generator {
	return &generator{rng: rand.New(rand.NewSource(seed)), unique: unique} //nolint:gosec // reproducible traffic, not crypto
}

// next returns a pairing of two distinct teams. With unique set, names
// get a uuid-derived suffix so every pairing is fresh server-side.
func (g *generator) next() pairing {
	i := g.rng.Intn(len(countries))
	j := g.rng.Intn(len(countries) - 1)
	if j >= i {
		j++
	}
	home, away := countries[i], countries[j]
	if g.unique {
		tag := uuid.NewString()[:8]
		home += "-" + tag
		away += "-" + tag
	}
	return pairing{Home: home, Away: away}
}

// nextScore advances an absolute score pair by zero or one goal on a
// random side, mirroring how live feeds report totals rather than
// deltas.
func (g *generator) nextScore(homeScore, awayScore int) (int, int) {
	switch g.rng.Intn(3) {
	case 0:
		homeScore++
	case 1:
		awayScore++
	}
	return homeScore, awayScore
}
