package main

import "strings"

// Color is a side in a shogi game. Sente moves first from the start position.
type Color int

const (
	Sente Color = iota
	Gote
)

func (c Color) Index() int {
	return int(c)
}

func (c Color) Other() Color {
	if c == Sente {
		return Gote
	}
	return Sente
}

func (c Color) String() string {
	if c == Sente {
		return "sente"
	}
	return "gote"
}

// Move is a move in USI notation: a board move like 7g7f (optionally with a
// trailing + for promotion) or a drop like P*5e. The special bestmove tokens
// resign and win are not moves and are handled by Game.DoMove.
type Move struct {
	Drop     bool
	Piece    byte // drop piece letter: P L N S G B R
	FromFile int
	FromRank int // 1..9, 'a' is 1
	ToFile   int
	ToRank   int
	Promote  bool
}

const dropPieces = "PLNSGBR"

func parseSquare(file, rank byte) (int, int, bool) {
	if file < '1' || file > '9' || rank < 'a' || rank > 'i' {
		return 0, 0, false
	}
	return int(file - '0'), int(rank-'a') + 1, true
}

// ParseMove parses a USI move string. It reports false for anything that is
// not syntactically a move, including resign and win.
func ParseMove(s string) (Move, bool) {
	var m Move

	if len(s) == 4 && s[1] == '*' {
		if !strings.ContainsRune(dropPieces, rune(s[0])) {
			return Move{}, false
		}
		tf, tr, ok := parseSquare(s[2], s[3])
		if !ok {
			return Move{}, false
		}
		m.Drop = true
		m.Piece = s[0]
		m.ToFile, m.ToRank = tf, tr
		return m, true
	}

	if len(s) != 4 && !(len(s) == 5 && s[4] == '+') {
		return Move{}, false
	}
	ff, fr, ok := parseSquare(s[0], s[1])
	if !ok {
		return Move{}, false
	}
	tf, tr, ok := parseSquare(s[2], s[3])
	if !ok {
		return Move{}, false
	}
	m.FromFile, m.FromRank = ff, fr
	m.ToFile, m.ToRank = tf, tr
	m.Promote = len(s) == 5
	return m, true
}

func (m Move) String() string {
	var b strings.Builder
	if m.Drop {
		b.WriteByte(m.Piece)
		b.WriteByte('*')
	} else {
		b.WriteByte(byte('0' + m.FromFile))
		b.WriteByte(byte('a' + m.FromRank - 1))
	}
	b.WriteByte(byte('0' + m.ToFile))
	b.WriteByte(byte('a' + m.ToRank - 1))
	if m.Promote {
		b.WriteByte('+')
	}
	return b.String()
}

type outcomeKind int

const (
	outcomeUndetermined outcomeKind = iota
	outcomeResignation
	outcomeWinDeclaration
	outcomeIllegalMove
	outcomeLossByClock
	outcomeMaxMoves
)

// GameOutcome is the adjudicated result of a game. The zero value is an
// undetermined, still-running game.
type GameOutcome struct {
	kind  outcomeKind
	color Color // loser for resignation/illegal/clock, winner for a declaration
}

func Undetermined() GameOutcome           { return GameOutcome{} }
func Resignation(loser Color) GameOutcome { return GameOutcome{outcomeResignation, loser} }
func WinDeclaration(winner Color) GameOutcome {
	return GameOutcome{outcomeWinDeclaration, winner}
}
func IllegalMove(loser Color) GameOutcome { return GameOutcome{outcomeIllegalMove, loser} }
func LossByClock(loser Color) GameOutcome { return GameOutcome{outcomeLossByClock, loser} }
func DrawByMaxMoves() GameOutcome         { return GameOutcome{kind: outcomeMaxMoves} }

func (o GameOutcome) Determined() bool {
	return o.kind != outcomeUndetermined
}

// Winner reports the winning side, if there is one. Draws and undetermined
// games have none.
func (o GameOutcome) Winner() (Color, bool) {
	switch o.kind {
	case outcomeResignation, outcomeIllegalMove, outcomeLossByClock:
		return o.color.Other(), true
	case outcomeWinDeclaration:
		return o.color, true
	}
	return Sente, false
}

func (o GameOutcome) String() string {
	switch o.kind {
	case outcomeResignation:
		return "resignation"
	case outcomeWinDeclaration:
		return "win declaration"
	case outcomeIllegalMove:
		return "illegal move"
	case outcomeLossByClock:
		return "loss on time"
	case outcomeMaxMoves:
		return "draw by maximum game length"
	}
	return "undetermined"
}

// resultString renders an outcome as a PGN result tag, sente scoring as white.
func resultString(o GameOutcome) string {
	winner, ok := o.Winner()
	if !ok {
		return "1/2-1/2"
	}
	if winner == Sente {
		return "1-0"
	}
	return "0-1"
}

// maxGamePlies caps runaway games; hitting it adjudicates a draw.
const maxGamePlies = 512

// Game tracks one game in progress: the opening it started from plus every
// move played since. Legality is the engines' business; the game adjudicates
// at the protocol level only.
type Game struct {
	opening Opening
	moves   []string
	stm     Color
}

func NewGame(op Opening) *Game {
	return &Game{opening: op, stm: op.startingColor()}
}

func (g *Game) SideToMove() Color {
	return g.stm
}

func (g *Game) Plies() int {
	return len(g.opening.Moves) + len(g.moves)
}

// USIString renders the game as the payload of a USI position command,
// e.g. "startpos moves 7g7f 3c3d".
func (g *Game) USIString() string {
	var b strings.Builder
	if g.opening.SFEN == "" {
		b.WriteString("startpos")
	} else {
		b.WriteString("sfen ")
		b.WriteString(g.opening.SFEN)
	}
	if len(g.opening.Moves)+len(g.moves) > 0 {
		b.WriteString(" moves")
		for _, m := range g.opening.Moves {
			b.WriteByte(' ')
			b.WriteString(m)
		}
		for _, m := range g.moves {
			b.WriteByte(' ')
			b.WriteString(m)
		}
	}
	return b.String()
}

// DoMove applies the side to move's bestmove token and returns the outcome
// of the game afterwards.
func (g *Game) DoMove(mstr string) GameOutcome {
	switch mstr {
	case "resign":
		return Resignation(g.stm)
	case "win":
		return WinDeclaration(g.stm)
	}
	if _, ok := ParseMove(mstr); !ok {
		return IllegalMove(g.stm)
	}
	g.moves = append(g.moves, mstr)
	g.stm = g.stm.Other()
	if g.Plies() >= maxGamePlies {
		return DrawByMaxMoves()
	}
	return Undetermined()
}
