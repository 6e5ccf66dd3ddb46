package main

import "time"

// MatchTicket schedules one game: which engines play (index 0 has sente) and
// from which opening.
type MatchTicket struct {
	ID      uint64
	Opening Opening
	Engines [2]int
}

// MatchResult is one finished game.
type MatchResult struct {
	Ticket    MatchTicket
	GameStart time.Time
	Outcome   GameOutcome
	Moves     []MoveRecord
}

type TournamentState int

const (
	ContinueTournament TournamentState = iota
	StopTournament
)

// Tournament produces tickets and consumes results. Implementations are
// driven from a single goroutine; decorators wrap an inner Tournament to add
// reporting or output.
type Tournament interface {
	// Next returns the next game to schedule, or nil when none is
	// currently available.
	Next() *MatchTicket
	MatchStarted(MatchTicket)
	MatchComplete(MatchResult) TournamentState
	TournamentComplete()
	// ExpectedMaximumMatchCount reports the total number of games when it
	// is known up front.
	ExpectedMaximumMatchCount() (uint64, bool)
}
