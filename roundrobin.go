package main

// RoundRobin schedules every engine pairing, playing `rounds` games per
// pairing and opening before moving on, and alternating colors within a
// pairing's rounds. With --games set the tournament is bounded at
// pairings * rounds * games; otherwise it runs until interrupted.
type RoundRobin struct {
	matchIndex       uint64
	completedMatches uint64
	nextPlayers      [2]int
	totalMatches     uint64
	bounded          bool
	players          int
	rounds           uint64
	book             *OpeningBook
}

func pairingsCount(players int) uint64 {
	return uint64(players * (players - 1) / 2)
}

func NewRoundRobin(opts *Options, book *OpeningBook) *RoundRobin {
	rr := &RoundRobin{
		nextPlayers: [2]int{0, 1},
		players:     len(opts.Engines),
		rounds:      opts.Rounds,
		book:        book,
	}
	if opts.Games > 0 {
		rr.bounded = true
		rr.totalMatches = pairingsCount(rr.players) * opts.Rounds * opts.Games
	}
	return rr
}

func (rr *RoundRobin) Next() *MatchTicket {
	id := rr.matchIndex
	opening := rr.book.Current()

	players := rr.nextPlayers
	if id%rr.rounds%2 == 1 {
		players[0], players[1] = players[1], players[0]
	}

	rr.matchIndex++

	if rr.matchIndex%rr.rounds == 0 {
		rr.book.Advance()
		rr.nextPlayers[1]++
		if rr.nextPlayers[1] >= rr.players {
			rr.nextPlayers[0]++
			rr.nextPlayers[1] = rr.nextPlayers[0] + 1
			if rr.nextPlayers[1] >= rr.players {
				rr.nextPlayers = [2]int{0, 1}
			}
		}
	}

	if rr.bounded && id >= rr.totalMatches {
		return nil
	}
	return &MatchTicket{ID: id, Opening: opening, Engines: players}
}

func (rr *RoundRobin) MatchStarted(MatchTicket) {}

func (rr *RoundRobin) MatchComplete(MatchResult) TournamentState {
	rr.completedMatches++
	if rr.bounded && rr.completedMatches >= rr.totalMatches {
		return StopTournament
	}
	return ContinueTournament
}

func (rr *RoundRobin) TournamentComplete() {}

func (rr *RoundRobin) ExpectedMaximumMatchCount() (uint64, bool) {
	return rr.totalMatches, rr.bounded
}
