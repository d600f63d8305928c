package board

import (
	"sort"

	"github.com/google/uuid"
)

// Board is an ordered collection of active matches. It owns every Match
// exclusively: callers only ever receive rendered summary lines, never
// references into the collection.
//
// Board is not safe for concurrent use; a hosting layer must serialize
// access (internal/app does this with a mutex).
type Board struct {
	matches []Match

	// nextOrder is the start-order sequence. Strictly increasing, so a
	// later Start always wins score ties against an earlier one.
	nextOrder uint64
}

// New creates an empty Board.
func New() *Board {
	return &Board{}
}

// Start registers a new match between home and away with both scores at
// zero. It fails without mutating the board when home equals away
// (SelfPlayError) or when either team is already playing
// (TeamBusyError, home checked before away).
func (b *Board) Start(home, away string) error {
	if home == away {
		return &SelfPlayError{Team: home}
	}
	if _, ok := b.findByTeam(home); ok {
		return &TeamBusyError{Team: home}
	}
	if _, ok := b.findByTeam(away); ok {
		return &TeamBusyError{Team: away}
	}

	b.nextOrder++
	b.matches = append(b.matches, Match{
		ID:         uuid.New(),
		Home:       Team{Name: home},
		Away:       Team{Name: away},
		startOrder: b.nextOrder,
	})
	b.resort()
	return nil
}

// UpdateScore replaces both scores of the match between home and away
// with the given absolute values. The pair must match an active match's
// role assignment exactly; a swapped pair is a miss, reported as
// MatchNotFoundError. Start order is preserved.
func (b *Board) UpdateScore(home, away string, homeScore, awayScore int) error {
	i, ok := b.findByPair(home, away)
	if !ok {
		return &MatchNotFoundError{Op: "update"}
	}
	b.matches[i].Home.Score = homeScore
	b.matches[i].Away.Score = awayScore
	b.resort()
	return nil
}

// Finish removes the match between home and away from the board. Lookup
// semantics match UpdateScore; a miss is reported as MatchNotFoundError.
// The relative order of the remaining matches is preserved.
func (b *Board) Finish(home, away string) error {
	i, ok := b.findByPair(home, away)
	if !ok {
		return &MatchNotFoundError{Op: "removal"}
	}
	b.matches = append(b.matches[:i], b.matches[i+1:]...)
	return nil
}

// Summary renders one line per active match in the board's current
// order. It never sorts or mutates; the ordering invariant is
// re-established by every mutation, so the slice is always ready.
func (b *Board) Summary() []string {
	lines := make([]string, 0, len(b.matches))
	for i := range b.matches {
		lines = append(lines, b.matches[i].Summary())
	}
	return lines
}

// Len returns the number of active matches.
func (b *Board) Len() int {
	return len(b.matches)
}

// MatchIDs returns the IDs of the active matches in board order.
func (b *Board) MatchIDs() []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(b.matches))
	for i := range b.matches {
		ids = append(ids, b.matches[i].ID)
	}
	return ids
}

// findByTeam returns the index of the first match involving name, on
// either side.
func (b *Board) findByTeam(name string) (int, bool) {
	for i := range b.matches {
		if b.matches[i].involves(name) {
			return i, true
		}
	}
	return 0, false
}

// findByPair returns the index of the match whose home and away slots
// equal the given names exactly. A team found in an unrelated match, or
// with the roles swapped, is a miss: team exclusivity guarantees the
// first match involving home is the only candidate.
func (b *Board) findByPair(home, away string) (int, bool) {
	i, ok := b.findByTeam(home)
	if !ok {
		return 0, false
	}
	if b.matches[i].Home.Name != home || b.matches[i].Away.Name != away {
		return 0, false
	}
	return i, true
}

// resort re-establishes the ordering invariant: combined score
// descending, then start order descending so the later-started match
// wins ties. The sort is stable to avoid reshuffling equal entries.
func (b *Board) resort() {
	sort.SliceStable(b.matches, func(i, j int) bool {
		ti, tj := b.matches[i].TotalScore(), b.matches[j].TotalScore()
		if ti != tj {
			return ti > tj
		}
		return b.matches[i].startOrder > b.matches[j].startOrder
	})
}
