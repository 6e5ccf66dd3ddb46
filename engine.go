package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// EngineConfig describes how to start one engine and what clock it plays on.
type EngineConfig struct {
	Cmd     string
	Dir     string
	Name    string // empty: take the engine's own id name
	Options [][2]string
	TC      TimeControl
}

type ScoreKind int

const (
	ScoreNone ScoreKind = iota
	ScoreCp
	ScoreMate
)

// Score is an engine evaluation from an info line.
type Score struct {
	Kind  ScoreKind
	Value int
}

func (s Score) String() string {
	switch s.Kind {
	case ScoreCp:
		return fmt.Sprintf("%+.2f", float64(s.Value)/100)
	case ScoreMate:
		sign := "+"
		if s.Value < 0 {
			sign = "-"
		}
		v := s.Value
		if v < 0 {
			v = -v
		}
		return fmt.Sprintf("%sM%d", sign, v)
	}
	return "none"
}

// MoveRecord captures one played move together with the search statistics the
// engine reported for it.
type MoveRecord struct {
	Move       string // bestmove token as sent by the engine
	Score      Score
	Depth      int
	Seldepth   int
	Nodes      uint64
	NPS        uint64
	EngineTime uint64 // milliseconds, self-reported
	Hashfull   int
	Measured   time.Duration // wall clock from position to bestmove
	TimeLeft   time.Duration
}

// Engine is a running USI engine process.
type Engine struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	stdout *bufio.Reader
	name   string
	config EngineConfig
}

const engineQuitTimeout = 10 * time.Second

// StartEngine spawns the engine, completes the usi handshake and applies the
// configured options.
func StartEngine(cfg EngineConfig) (*Engine, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}

	cmd := exec.Command(cfg.Cmd)
	cmd.Dir = filepath.Join(wd, cfg.Dir)
	cmd.Stderr = os.Stderr
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("starting %s: %w", cfg.Cmd, err)
	}

	e := &Engine{
		cmd:    cmd,
		stdin:  stdin,
		stdout: bufio.NewReader(stdout),
		name:   cfg.Name,
		config: cfg,
	}
	if e.name == "" {
		e.name = cfg.Cmd
	}

	if err := e.handshake(); err != nil {
		e.Close()
		return nil, fmt.Errorf("usi handshake with %s: %w", cfg.Cmd, err)
	}

	for _, kv := range cfg.Options {
		if err := e.WriteLine(fmt.Sprintf("setoption name %s value %s", kv[0], kv[1])); err != nil {
			e.Close()
			return nil, err
		}
	}

	slog.Info("engine started", "name", e.name)
	return e, nil
}

func (e *Engine) handshake() error {
	if err := e.WriteLine("usi"); err != nil {
		return err
	}
	for {
		line, err := e.ReadLine()
		if err != nil {
			return err
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "usiok":
			return nil
		case "id":
			if len(fields) >= 3 && fields[1] == "name" && e.config.Name == "" {
				e.name = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), "id name"))
			}
		}
	}
}

func (e *Engine) Name() string {
	return e.name
}

func (e *Engine) WriteLine(line string) error {
	slog.Debug("usi send", "engine", e.name, "line", line)
	_, err := io.WriteString(e.stdin, line+"\n")
	return err
}

func (e *Engine) ReadLine() (string, error) {
	line, err := e.stdout.ReadString('\n')
	if err != nil {
		slog.Error("engine disconnected", "engine", e.name, "cmd", e.config.Cmd)
		return "", fmt.Errorf("%s disconnected: %w", e.name, err)
	}
	line = strings.TrimRight(line, "\r\n")
	slog.Debug("usi recv", "engine", e.name, "line", line)
	return line, nil
}

// IsReady sends isready and blocks until the engine answers readyok.
func (e *Engine) IsReady() error {
	if err := e.WriteLine("isready"); err != nil {
		return err
	}
	for {
		line, err := e.ReadLine()
		if err != nil {
			return err
		}
		if strings.EqualFold(strings.TrimSpace(line), "readyok") {
			return nil
		}
	}
}

func (e *Engine) NewGame() error {
	return e.WriteLine("usinewgame")
}

func (e *Engine) Position(g *Game) error {
	return e.WriteLine("position " + g.USIString())
}

// Go starts a search with the given clock arguments and blocks until
// bestmove, folding info-line statistics into the returned record.
//
// TODO: put a deadline on the read loop; a hung engine currently wedges its
// worker for the rest of the run.
func (e *Engine) Go(tcArgs string) (MoveRecord, error) {
	if err := e.WriteLine(strings.TrimSpace("go " + tcArgs)); err != nil {
		return MoveRecord{}, err
	}

	var mr MoveRecord
	for {
		line, err := e.ReadLine()
		if err != nil {
			return mr, err
		}
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "info"):
			parseInfo(trimmed, &mr)
		case strings.HasPrefix(trimmed, "bestmove"):
			fields := strings.Fields(trimmed)
			if len(fields) > 1 {
				mr.Move = fields[1]
			}
			if _, ok := ParseMove(mr.Move); !ok && mr.Move != "resign" && mr.Move != "win" {
				slog.Error("invalid move from engine",
					"engine", e.name, "cmd", e.config.Cmd, "move", mr.Move)
			}
			return mr, nil
		}
	}
}

// parseInfo folds one USI info line into the record. Later lines overwrite
// earlier ones, so the record ends up with the final search report.
func parseInfo(line string, mr *MoveRecord) {
	tokens := strings.Fields(line)
	if len(tokens) == 0 || tokens[0] != "info" {
		return
	}
	i := 1
	next := func() (string, bool) {
		if i >= len(tokens) {
			return "", false
		}
		t := tokens[i]
		i++
		return t, true
	}
	for {
		tok, ok := next()
		if !ok {
			return
		}
		switch tok {
		case "string":
			return
		case "depth":
			if v, ok := next(); ok {
				if n, err := strconv.Atoi(v); err == nil {
					mr.Depth = n
				}
			}
		case "seldepth":
			if v, ok := next(); ok {
				if n, err := strconv.Atoi(v); err == nil {
					mr.Seldepth = n
				}
			}
		case "nodes":
			if v, ok := next(); ok {
				if n, err := strconv.ParseUint(v, 10, 64); err == nil {
					mr.Nodes = n
				}
			}
		case "nps":
			if v, ok := next(); ok {
				if n, err := strconv.ParseUint(v, 10, 64); err == nil {
					mr.NPS = n
				}
			}
		case "time":
			if v, ok := next(); ok {
				if n, err := strconv.ParseUint(v, 10, 64); err == nil {
					mr.EngineTime = n
				}
			}
		case "hashfull":
			if v, ok := next(); ok {
				if n, err := strconv.Atoi(v); err == nil {
					mr.Hashfull = n
				}
			}
		case "score":
			kind, ok := next()
			if !ok {
				return
			}
			v, ok := next()
			if !ok {
				return
			}
			n, err := strconv.Atoi(v)
			if err != nil {
				continue
			}
			switch kind {
			case "cp":
				mr.Score = Score{Kind: ScoreCp, Value: n}
			case "mate":
				mr.Score = Score{Kind: ScoreMate, Value: n}
			}
		}
	}
}

// Close asks the engine to quit and kills it if it does not oblige within
// ten seconds.
func (e *Engine) Close() {
	slog.Info("quitting engine", "name", e.name)
	if err := e.WriteLine("quit"); err != nil {
		slog.Error("failed to send quit", "engine", e.name, "err", err)
	}
	_ = e.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- e.cmd.Wait() }()
	select {
	case <-done:
		slog.Info("engine quit", "name", e.name)
	case <-time.After(engineQuitTimeout):
		slog.Info("engine quit timed out, killing", "name", e.name)
		if err := e.cmd.Process.Kill(); err != nil {
			slog.Error("failed to kill engine", "name", e.name, "err", err)
		}
		<-done
	}
}
