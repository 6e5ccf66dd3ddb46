package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Opening is a starting position for a game: an SFEN (empty means the
// standard start position) plus optional book moves played from it.
type Opening struct {
	SFEN  string
	Moves []string
}

func (o Opening) startingColor() Color {
	c := Sente
	if o.SFEN != "" {
		fields := strings.Fields(o.SFEN)
		if len(fields) >= 2 && fields[1] == "w" {
			c = Gote
		}
	}
	if len(o.Moves)%2 == 1 {
		c = c.Other()
	}
	return c
}

// OpeningBook cycles through a fixed list of openings in file order.
type OpeningBook struct {
	openings []Opening
	index    int
}

// LoadOpeningBook reads a line-oriented book: each line is either
// "startpos [moves ...]", "sfen <position> [moves ...]", or a bare SFEN.
// Blank lines and # comments are skipped. An empty path yields a book that
// always serves the start position.
func LoadOpeningBook(path string) (*OpeningBook, error) {
	if path == "" {
		return &OpeningBook{openings: []Opening{{}}}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var openings []Opening
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		openings = append(openings, parseOpeningLine(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(openings) == 0 {
		return nil, fmt.Errorf("openings file %s contains no positions", path)
	}
	return &OpeningBook{openings: openings}, nil
}

func parseOpeningLine(line string) Opening {
	var op Opening
	rest := line
	switch {
	case rest == "startpos":
		return op
	case strings.HasPrefix(rest, "startpos moves "):
		rest = strings.TrimPrefix(rest, "startpos moves ")
		op.Moves = strings.Fields(rest)
		return op
	case strings.HasPrefix(rest, "sfen "):
		rest = strings.TrimPrefix(rest, "sfen ")
	}
	if idx := strings.Index(rest, " moves "); idx >= 0 {
		op.SFEN = strings.TrimSpace(rest[:idx])
		op.Moves = strings.Fields(rest[idx+len(" moves "):])
	} else {
		op.SFEN = rest
	}
	return op
}

func (b *OpeningBook) Current() Opening {
	return b.openings[b.index]
}

func (b *OpeningBook) Advance() {
	b.index = (b.index + 1) % len(b.openings)
}
