package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testMatchResult() MatchResult {
	return MatchResult{
		Ticket: MatchTicket{
			ID:      3,
			Engines: [2]int{0, 1},
		},
		GameStart: time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
		Outcome:   Resignation(Gote),
		Moves: []MoveRecord{
			{
				Move:       "7g7f",
				Score:      Score{Kind: ScoreCp, Value: 34},
				Depth:      12,
				Seldepth:   20,
				Nodes:      1000,
				NPS:        100000,
				EngineTime: 8,
				Measured:   10 * time.Millisecond,
			},
			{
				Move:  "resign",
				Score: Score{Kind: ScoreMate, Value: -3},
				Depth: 9,
			},
		},
	}
}

func TestPGNWriterOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pgn")
	opts := PGNOptions{File: path, TrackSeldepth: true, TrackNodes: true, TrackNPS: true, TrackLatency: true}
	meta := MetaOptions{Event: "TestEvent", Site: "TestSite"}

	w, err := NewPGNWriter(opts, meta, []string{"EngineA", "EngineB"})
	require.NoError(t, err)

	result := testMatchResult()
	require.NoError(t, w.Write(&result))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	text := string(content)

	require.Contains(t, text, "[Event \"TestEvent\"]")
	require.Contains(t, text, "[Site \"TestSite\"]")
	require.Contains(t, text, "[Date \"2026-08-25\"]")
	require.Contains(t, text, "[Round \"3\"]")
	require.Contains(t, text, "[Sente \"EngineA\"]")
	require.Contains(t, text, "[Gote \"EngineB\"]")
	require.Contains(t, text, "[Result \"1-0\"]")
	require.Contains(t, text, "[PlyCount \"2\"]")
	require.Contains(t, text, "[Termination \"resignation\"]")
	require.NotContains(t, text, "[SetUp", "startpos games need no FEN header")

	require.Contains(t, text, "7g7f {+0.34 12/20 nodes=1000 nps=100000 latency=2ms}")
	require.Contains(t, text, "resign {-M3 9/0 nodes=0 nps=0 latency=0ms}")
	require.Contains(t, text, "\n1-0\n")
}

func TestPGNWriterSFENHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pgn")
	w, err := NewPGNWriter(PGNOptions{File: path}, MetaOptions{Event: "?", Site: "?"}, []string{"A", "B"})
	require.NoError(t, err)

	result := testMatchResult()
	result.Ticket.Opening.SFEN = "lnsgkgsnl/1r5b1/ppppppppp/9/9/9/PPPPPPPPP/1B5R1/LNSGKGSNL w - 1"
	require.NoError(t, w.Write(&result))
	require.NoError(t, w.Close())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(content), "[SetUp \"1\"]")
	require.Contains(t, string(content), "[FEN \"lnsgkgsnl/")
}

func TestPGNWriterRefusesExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.pgn")
	require.NoError(t, os.WriteFile(path, []byte("old games"), 0o644))

	_, err := NewPGNWriter(PGNOptions{File: path}, MetaOptions{}, nil)
	require.Error(t, err, "overwriting a previous run's games must fail")
}
