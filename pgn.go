package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
)

// PGNWriter appends finished games to a PGN file. The file must not already
// exist; silently appending to an old run's output loses games.
type PGNWriter struct {
	file  *os.File
	w     *bufio.Writer
	names []string
	opts  PGNOptions
	meta  MetaOptions
}

func NewPGNWriter(opts PGNOptions, meta MetaOptions, names []string) (*PGNWriter, error) {
	f, err := os.OpenFile(opts.File, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, err
	}
	return &PGNWriter{
		file:  f,
		w:     bufio.NewWriter(f),
		names: names,
		opts:  opts,
		meta:  meta,
	}, nil
}

func (p *PGNWriter) header(key, value string) {
	fmt.Fprintf(p.w, "[%s %s]\n", key, strconv.Quote(value))
}

func (p *PGNWriter) Write(result *MatchResult) error {
	ticket := result.Ticket
	sente := p.names[ticket.Engines[0]]
	gote := p.names[ticket.Engines[1]]
	resultStr := resultString(result.Outcome)

	p.header("Event", p.meta.Event)
	p.header("Site", p.meta.Site)
	p.header("Date", result.GameStart.Format("2006-01-02"))
	p.header("Round", strconv.FormatUint(ticket.ID, 10))
	p.header("Black", sente)
	p.header("Sente", sente)
	p.header("White", gote)
	p.header("Gote", gote)
	p.header("Result", resultStr)
	if ticket.Opening.SFEN != "" {
		p.header("SetUp", "1")
		p.header("FEN", ticket.Opening.SFEN)
	}
	p.header("PlyCount", strconv.Itoa(len(result.Moves)))
	p.header("Termination", result.Outcome.String())
	fmt.Fprintln(p.w)

	for _, m := range result.Moves {
		mstr := m.Move
		if mstr == "" {
			mstr = "output-was-empty"
		}
		fmt.Fprintf(p.w, "%s {%s %d", mstr, m.Score, m.Depth)
		if p.opts.TrackSeldepth {
			fmt.Fprintf(p.w, "/%d", m.Seldepth)
		}
		if p.opts.TrackNodes {
			fmt.Fprintf(p.w, " nodes=%d", m.Nodes)
		}
		if p.opts.TrackNPS {
			fmt.Fprintf(p.w, " nps=%d", m.NPS)
		}
		if p.opts.TrackHashfull {
			fmt.Fprintf(p.w, " hashfull=%d", m.Hashfull)
		}
		if p.opts.TrackTimeLeft {
			fmt.Fprintf(p.w, " timeleft=%dms", m.TimeLeft.Milliseconds())
		}
		if p.opts.TrackLatency {
			latency := m.Measured.Milliseconds() - int64(m.EngineTime)
			fmt.Fprintf(p.w, " latency=%dms", latency)
		}
		fmt.Fprintln(p.w, "}")
	}

	fmt.Fprintln(p.w, resultStr)
	fmt.Fprintln(p.w)
	return p.w.Flush()
}

func (p *PGNWriter) Close() error {
	if err := p.w.Flush(); err != nil {
		p.file.Close()
		return err
	}
	return p.file.Close()
}
