package main

import "log/slog"

// PGNOut decorates a tournament, writing every finished game to the PGN file.
type PGNOut struct {
	inner Tournament
	pgn   *PGNWriter
}

func NewPGNOut(inner Tournament, pgn *PGNWriter) *PGNOut {
	return &PGNOut{inner: inner, pgn: pgn}
}

func (p *PGNOut) Next() *MatchTicket {
	return p.inner.Next()
}

func (p *PGNOut) MatchStarted(ticket MatchTicket) {
	p.inner.MatchStarted(ticket)
}

func (p *PGNOut) MatchComplete(result MatchResult) TournamentState {
	if err := p.pgn.Write(&result); err != nil {
		slog.Error("failed to write pgn", "err", err)
	}
	return p.inner.MatchComplete(result)
}

func (p *PGNOut) TournamentComplete() {
	if err := p.pgn.Close(); err != nil {
		slog.Error("failed to close pgn", "err", err)
	}
	p.inner.TournamentComplete()
}

func (p *PGNOut) ExpectedMaximumMatchCount() (uint64, bool) {
	return p.inner.ExpectedMaximumMatchCount()
}
