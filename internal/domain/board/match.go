// Package board implements the live scoreboard: an ordered, in-memory
// collection of ongoing matches and the operations that create, mutate,
// remove, and render them.
package board

import (
	"strconv"

	"github.com/google/uuid"
)

// Team is one side of a match. Identity is the exact name string.
type Team struct {
	Name  string
	Score int
}

// Match pairs a home and an away team. The ID exists for logging and
// live-feed correlation only; lookup and ordering never consult it.
type Match struct {
	ID   uuid.UUID
	Home Team
	Away Team

	// startOrder is assigned once at creation and only its relative
	// order matters: a larger value means a later start.
	startOrder uint64
}

// TotalScore returns the combined score of both teams, the primary
// ordering key.
func (m *Match) TotalScore() int {
	return m.Home.Score + m.Away.Score
}

// Summary renders the match as "{home} {homeScore} - {away} {awayScore}".
func (m *Match) Summary() string {
	return m.Home.Name + " " + strconv.Itoa(m.Home.Score) +
		" - " +
		m.Away.Name + " " + strconv.Itoa(m.Away.Score)
}

// involves reports whether name plays in this match, on either side.
func (m *Match) involves(name string) bool {
	return m.Home.Name == name || m.Away.Name == name
}
