package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
)

type pairScore struct {
	wins  [2]uint64 // indexed like the normalized pair
	draws uint64
}

// Reporter prints game lifecycle lines and a running score per pairing, and
// drives a progress bar when the total game count is known up front.
type Reporter struct {
	inner  Tournament
	names  []string
	scores map[[2]int]*pairScore
	bar    *progressbar.ProgressBar
}

func NewReporter(inner Tournament, names []string) *Reporter {
	r := &Reporter{
		inner:  inner,
		names:  names,
		scores: make(map[[2]int]*pairScore),
	}
	if max, ok := inner.ExpectedMaximumMatchCount(); ok {
		r.bar = progressbar.NewOptions64(int64(max),
			progressbar.OptionSetDescription("Games"),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}
	return r
}

func (r *Reporter) ofMaxString() string {
	if max, ok := r.ExpectedMaximumMatchCount(); ok {
		return fmt.Sprintf(" of %d", max)
	}
	return " of infinite"
}

func (r *Reporter) Next() *MatchTicket {
	return r.inner.Next()
}

func (r *Reporter) MatchStarted(ticket MatchTicket) {
	fmt.Printf("Started game %d%s (%s vs %s)\n",
		ticket.ID+1, r.ofMaxString(),
		r.names[ticket.Engines[0]], r.names[ticket.Engines[1]])
	r.inner.MatchStarted(ticket)
}

func (r *Reporter) MatchComplete(result MatchResult) TournamentState {
	ticket := result.Ticket
	fmt.Printf("Finished game %d (%s vs %s): %s {%s}\n",
		ticket.ID+1,
		r.names[ticket.Engines[0]], r.names[ticket.Engines[1]],
		resultString(result.Outcome), result.Outcome)

	r.tally(result)
	if r.bar != nil {
		_ = r.bar.Add(1)
	}
	return r.inner.MatchComplete(result)
}

func (r *Reporter) tally(result MatchResult) {
	pair, flipped := normalizePair(result.Ticket.Engines)
	score, ok := r.scores[pair]
	if !ok {
		score = &pairScore{}
		r.scores[pair] = score
	}

	winner, decided := result.Outcome.Winner()
	switch {
	case !decided:
		score.draws++
	default:
		idx := winner.Index()
		if flipped {
			idx = 1 - idx
		}
		score.wins[idx]++
	}

	fmt.Printf("Score of %s vs %s: %d - %d - %d\n",
		r.names[pair[0]], r.names[pair[1]],
		score.wins[0], score.wins[1], score.draws)
}

// normalizePair orders an engine pair by index so both color assignments of
// the same pairing share one score line. flipped reports that the ticket had
// the pair in reverse order.
func normalizePair(engines [2]int) ([2]int, bool) {
	if engines[0] <= engines[1] {
		return engines, false
	}
	return [2]int{engines[1], engines[0]}, true
}

func (r *Reporter) TournamentComplete() {
	if r.bar != nil {
		_ = r.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	fmt.Println("Tournament finished")
	r.inner.TournamentComplete()
}

func (r *Reporter) ExpectedMaximumMatchCount() (uint64, bool) {
	return r.inner.ExpectedMaximumMatchCount()
}
