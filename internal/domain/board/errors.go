package board

// SelfPlayError reports an attempt to start a match pairing a team
// against itself.
type SelfPlayError struct {
	Team string
}

func (e *SelfPlayError) Error() string {
	return e.Team + " cannot play with itself"
}

// TeamBusyError reports an attempt to start a match for a team that is
// already playing.
type TeamBusyError struct {
	Team string
}

func (e *TeamBusyError) Error() string {
	return e.Team + " is currently playing a game"
}

// MatchNotFoundError reports an update or finish that referenced a
// home/away pair with no matching active match.
type MatchNotFoundError struct {
	// Op is the operation that missed: "update" or "removal".
	Op string
}

func (e *MatchNotFoundError) Error() string {
	return "Couldn't find a game for " + e.Op
}
