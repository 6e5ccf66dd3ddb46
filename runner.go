package main

import (
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// Runner plays out a tournament over a fixed pool of workers. Each worker
// owns a private instance of every engine so games never share a process.
type Runner struct {
	engines     []EngineConfig
	concurrency uint64

	// seams for scheduling tests
	startEngines func(configs []EngineConfig) ([]*Engine, error)
	playMatch    func(engines []*Engine, configs []EngineConfig, ticket MatchTicket) (MatchResult, error)
}

func NewRunner(engines []EngineConfig, concurrency uint64) *Runner {
	return &Runner{
		engines:      engines,
		concurrency:  concurrency,
		startEngines: startEngines,
		playMatch:    playMatch,
	}
}

func startEngines(configs []EngineConfig) ([]*Engine, error) {
	engines := make([]*Engine, len(configs))
	for i, cfg := range configs {
		e, err := StartEngine(cfg)
		if err != nil {
			for _, started := range engines[:i] {
				started.Close()
			}
			return nil, err
		}
		engines[i] = e
	}
	return engines, nil
}

// Run hands out tickets until the tournament stops, then drains the results
// still in flight. The ticket and result channels are unbuffered so the
// coordinator always knows how many games are outstanding.
func (r *Runner) Run(t Tournament) error {
	tickets := make(chan MatchTicket)
	results := make(chan MatchResult)
	workerErrs := make(chan error, r.concurrency)

	var wg sync.WaitGroup
	for i := uint64(0); i < r.concurrency; i++ {
		wg.Add(1)
		go func(index uint64) {
			defer wg.Done()
			if err := r.worker(index, tickets, results); err != nil {
				workerErrs <- err
			}
		}(i)
	}

	var runErr error
	var pending *MatchTicket
	outstanding := 0
	state := ContinueTournament

loop:
	for state != StopTournament {
		if pending == nil {
			pending = t.Next()
		}
		if pending == nil && outstanding == 0 {
			break
		}

		if pending == nil {
			select {
			case result := <-results:
				outstanding--
				state = t.MatchComplete(result)
			case runErr = <-workerErrs:
				break loop
			}
		} else {
			select {
			case result := <-results:
				outstanding--
				state = t.MatchComplete(result)
			case tickets <- *pending:
				t.MatchStarted(*pending)
				pending = nil
				outstanding++
			case runErr = <-workerErrs:
				break loop
			}
		}
	}

	close(tickets)
	go func() {
		wg.Wait()
		close(results)
	}()
	for result := range results {
		t.MatchComplete(result)
	}

	if runErr == nil {
		select {
		case runErr = <-workerErrs:
		default:
		}
	}

	t.TournamentComplete()
	return runErr
}

func (r *Runner) worker(index uint64, tickets <-chan MatchTicket, results chan<- MatchResult) error {
	engines, err := r.startEngines(r.engines)
	if err != nil {
		return fmt.Errorf("worker %d: %w", index, err)
	}
	defer func() {
		for _, e := range engines {
			e.Close()
		}
	}()

	for ticket := range tickets {
		slog.Info("worker received ticket", "worker", index, "game", ticket.ID)
		result, err := r.playMatch(engines, r.engines, ticket)
		if err != nil {
			return fmt.Errorf("worker %d game %d: %w", index, ticket.ID, err)
		}
		slog.Info("worker finished game", "worker", index, "game", ticket.ID)
		results <- result
	}
	return nil
}

// playMatch plays one game between the ticket's engines, debiting each side's
// clock with the wall-clock time of its moves.
func playMatch(engines []*Engine, configs []EngineConfig, ticket MatchTicket) (MatchResult, error) {
	result := MatchResult{
		Ticket:    ticket,
		GameStart: time.Now(),
		Outcome:   Undetermined(),
	}

	clocks := [2]EngineTime{
		NewEngineTime(configs[ticket.Engines[0]].TC),
		NewEngineTime(configs[ticket.Engines[1]].TC),
	}

	for i := 0; i < 2; i++ {
		e := engines[ticket.Engines[i]]
		if err := e.IsReady(); err != nil {
			return result, err
		}
		if err := e.NewGame(); err != nil {
			return result, err
		}
	}

	game := NewGame(ticket.Opening)
	for {
		stm := game.SideToMove()
		current := engines[ticket.Engines[stm.Index()]]

		// TODO: the measurement includes our own pipe latency; subtract a
		// calibrated offset like fastchess does.
		start := time.Now()
		if err := current.Position(game); err != nil {
			return result, err
		}
		record, err := current.Go(goCommand(stm, &clocks[0], &clocks[1]))
		if err != nil {
			return result, err
		}
		elapsed := time.Since(start)

		stepResult := clocks[stm.Index()].Step(elapsed)
		record.Measured = elapsed
		record.TimeLeft = clocks[stm.Index()].Remaining()

		result.Moves = append(result.Moves, record)
		result.Outcome = game.DoMove(record.Move)

		if stepResult == StepTimeElapsed {
			result.Outcome = LossByClock(stm)
		}
		if result.Outcome.Determined() {
			return result, nil
		}
	}
}
