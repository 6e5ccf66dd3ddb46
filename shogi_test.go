package main

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMove(t *testing.T) {
	valid := []string{"7g7f", "3c3d", "8h2b+", "P*5e", "R*1a", "1a1b"}
	for _, s := range valid {
		m, ok := ParseMove(s)
		require.True(t, ok, "move %q", s)
		require.Equal(t, s, m.String(), "round trip %q", s)
	}

	invalid := []string{"", "resign", "win", "0a1b", "7g7z", "7g7f++", "X*5e", "P*0e", "7g", "none"}
	for _, s := range invalid {
		_, ok := ParseMove(s)
		require.False(t, ok, "move %q", s)
	}
}

func TestParseMoveFields(t *testing.T) {
	m, ok := ParseMove("8h2b+")
	require.True(t, ok)
	require.False(t, m.Drop)
	require.True(t, m.Promote)
	require.Equal(t, 8, m.FromFile)
	require.Equal(t, 8, m.FromRank)
	require.Equal(t, 2, m.ToFile)
	require.Equal(t, 2, m.ToRank)

	d, ok := ParseMove("P*5e")
	require.True(t, ok)
	require.True(t, d.Drop)
	require.Equal(t, byte('P'), d.Piece)
	require.Equal(t, 5, d.ToFile)
	require.Equal(t, 5, d.ToRank)
}

func TestGamePositionPayload(t *testing.T) {
	g := NewGame(Opening{})
	require.Equal(t, "startpos", g.USIString())
	require.Equal(t, Sente, g.SideToMove())

	require.Equal(t, Undetermined(), g.DoMove("7g7f"))
	require.Equal(t, "startpos moves 7g7f", g.USIString())
	require.Equal(t, Gote, g.SideToMove())

	require.Equal(t, Undetermined(), g.DoMove("3c3d"))
	require.Equal(t, "startpos moves 7g7f 3c3d", g.USIString())
	require.Equal(t, Sente, g.SideToMove())
}

func TestGameOpeningDeterminesSideToMove(t *testing.T) {
	// book moves shift the side to move by parity
	g := NewGame(Opening{Moves: []string{"7g7f"}})
	require.Equal(t, Gote, g.SideToMove())
	require.Equal(t, "startpos moves 7g7f", g.USIString())

	g.DoMove("3c3d")
	require.Equal(t, "startpos moves 7g7f 3c3d", g.USIString())

	// an sfen opening carries its own side-to-move field
	sfen := "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	g = NewGame(Opening{SFEN: sfen})
	require.Equal(t, Gote, g.SideToMove())
	require.Equal(t, "sfen "+sfen, g.USIString())
}

func TestGameAdjudication(t *testing.T) {
	g := NewGame(Opening{})
	out := g.DoMove("resign")
	require.True(t, out.Determined())
	winner, ok := out.Winner()
	require.True(t, ok)
	require.Equal(t, Gote, winner)
	require.Equal(t, "0-1", resultString(out))

	g = NewGame(Opening{})
	g.DoMove("7g7f")
	out = g.DoMove("win")
	winner, ok = out.Winner()
	require.True(t, ok)
	require.Equal(t, Gote, winner)
	require.Equal(t, "0-1", resultString(out))

	g = NewGame(Opening{})
	out = g.DoMove("garbage")
	require.Equal(t, IllegalMove(Sente), out)
	winner, ok = out.Winner()
	require.True(t, ok)
	require.Equal(t, Gote, winner)
}

func TestGameDrawAtMaxPlies(t *testing.T) {
	g := NewGame(Opening{})
	moves := []string{"7g7f", "3c3d", "7f7g", "3d3c"}
	for i := 0; i < maxGamePlies-1; i++ {
		require.Equal(t, Undetermined(), g.DoMove(moves[i%len(moves)]), "ply %d", i)
	}
	out := g.DoMove(moves[(maxGamePlies-1)%len(moves)])
	require.Equal(t, DrawByMaxMoves(), out)
	_, ok := out.Winner()
	require.False(t, ok)
	require.Equal(t, "1/2-1/2", resultString(out))
}

func TestLossByClockWinner(t *testing.T) {
	out := LossByClock(Sente)
	winner, ok := out.Winner()
	require.True(t, ok)
	require.Equal(t, Gote, winner)
	require.Equal(t, "loss on time", out.String())
}
