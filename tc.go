package main

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type StepResult int

const (
	StepOK StepResult = iota
	StepTimeElapsed
)

type TimeControlKind int

const (
	TCNone TimeControlKind = iota
	TCNodes
	TCMoveTime
	TCByoyomi
	TCFischer
)

// TimeControl is one engine's clock specification for a game.
type TimeControl struct {
	Kind      TimeControlKind
	Nodes     uint64
	MoveTime  time.Duration
	Base      time.Duration
	Byoyomi   time.Duration
	Increment time.Duration
}

// ParseTimeControl accepts fischer ("1m30s+2s", "10+0.1"), byoyomi
// ("10m,3s", "10分,3秒"), fixed movetime ("movetime=5s") and node-count
// ("N=100000") specs. An empty or "infinite" spec means no clock.
func ParseTimeControl(s string) (TimeControl, error) {
	if s == "" || s == "infinite" {
		return TimeControl{Kind: TCNone}, nil
	}
	if tc, ok := parseFischer(s); ok {
		return tc, nil
	}
	if tc, ok := parseByoyomi(s); ok {
		return tc, nil
	}
	if tc, ok := parseMoveTime(s); ok {
		return tc, nil
	}
	if tc, ok := parseNodes(s); ok {
		return tc, nil
	}
	return TimeControl{}, fmt.Errorf("unrecognized time control %q", s)
}

func secondsDuration(s float64) time.Duration {
	return time.Duration(uint64(s*1000)) * time.Millisecond
}

func captureFloat(s string) (float64, bool) {
	if s == "" {
		return 0, true
	}
	v, err := strconv.ParseFloat(s, 64)
	return v, err == nil
}

func parseFischer(s string) (TimeControl, bool) {
	m := fischerRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeControl{}, false
	}
	min, ok1 := captureFloat(m[1])
	sec, ok2 := captureFloat(m[2])
	incr, ok3 := captureFloat(m[3])
	if !ok1 || !ok2 || !ok3 {
		return TimeControl{}, false
	}
	return TimeControl{
		Kind:      TCFischer,
		Base:      secondsDuration(min*60 + sec),
		Increment: secondsDuration(incr),
	}, true
}

func parseByoyomi(s string) (TimeControl, bool) {
	m := byoyomiRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeControl{}, false
	}
	min, ok1 := captureFloat(m[1])
	sec, ok2 := captureFloat(m[2])
	byo, ok3 := captureFloat(m[3])
	if !ok1 || !ok2 || !ok3 {
		return TimeControl{}, false
	}
	return TimeControl{
		Kind:    TCByoyomi,
		Base:    secondsDuration(min*60 + sec),
		Byoyomi: secondsDuration(byo),
	}, true
}

func parseMoveTime(s string) (TimeControl, bool) {
	m := movetimeRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeControl{}, false
	}
	capture := m[1]
	if capture == "" {
		capture = m[2]
	}
	v, ok := captureFloat(capture)
	if !ok || capture == "" {
		return TimeControl{}, false
	}
	return TimeControl{Kind: TCMoveTime, MoveTime: secondsDuration(v)}, true
}

func parseNodes(s string) (TimeControl, bool) {
	m := nodesRegex.FindStringSubmatch(s)
	if m == nil {
		return TimeControl{}, false
	}
	n, err := strconv.ParseUint(m[1], 10, 64)
	if err != nil {
		return TimeControl{}, false
	}
	return TimeControl{Kind: TCNodes, Nodes: n}, true
}

func formatSeconds(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64)
}

func writeBase(b *strings.Builder, base time.Duration) {
	seconds := base.Seconds()
	minutes := int64(seconds / 60)
	seconds -= float64(minutes) * 60
	if minutes > 0 {
		fmt.Fprintf(b, "%dm", minutes)
	}
	if seconds > 0 {
		b.WriteString(strconv.FormatFloat(seconds, 'f', -1, 64))
		b.WriteByte('s')
	}
}

func (tc TimeControl) String() string {
	var b strings.Builder
	switch tc.Kind {
	case TCNone:
		return "infinite"
	case TCNodes:
		fmt.Fprintf(&b, "N=%d", tc.Nodes)
	case TCMoveTime:
		fmt.Fprintf(&b, "movetime=%ss", formatSeconds(tc.MoveTime))
	case TCByoyomi:
		writeBase(&b, tc.Base)
		fmt.Fprintf(&b, ",%ss", formatSeconds(tc.Byoyomi))
	case TCFischer:
		if tc.Base > 0 || tc.Increment == 0 {
			writeBase(&b, tc.Base)
		}
		if tc.Increment > 0 {
			fmt.Fprintf(&b, "+%ss", formatSeconds(tc.Increment))
		}
	}
	return b.String()
}

// EngineTime is one engine's running clock during a game.
type EngineTime struct {
	tc        TimeControl
	remaining time.Duration
}

func NewEngineTime(tc TimeControl) EngineTime {
	et := EngineTime{tc: tc}
	switch tc.Kind {
	case TCByoyomi:
		et.remaining = tc.Base
	case TCFischer:
		et.remaining = tc.Base + tc.Increment
	}
	return et
}

func (et *EngineTime) Remaining() time.Duration {
	return et.remaining
}

// Step debits one move's wall-clock time and reports whether the clock
// expired on it.
func (et *EngineTime) Step(d time.Duration) StepResult {
	switch et.tc.Kind {
	case TCNone, TCNodes:
		return StepOK
	case TCMoveTime:
		if d > et.tc.MoveTime {
			return StepTimeElapsed
		}
		return StepOK
	case TCByoyomi:
		overflow := time.Duration(0)
		if et.remaining < d {
			overflow = d - et.remaining
			et.remaining = 0
		} else {
			et.remaining -= d
		}
		if overflow > et.tc.Byoyomi {
			return StepTimeElapsed
		}
		return StepOK
	case TCFischer:
		if et.remaining < d {
			et.remaining = 0
			return StepTimeElapsed
		}
		et.remaining -= d
		et.remaining += et.tc.Increment
		return StepOK
	}
	return StepOK
}

// goCommand renders the argument part of the USI go command for the side to
// move, given both clocks. Sente's clock maps to btime.
func goCommand(stm Color, sente, gote *EngineTime) string {
	stmChar, nstmChar := 'b', 'w'
	stmTime, nstmTime := sente, gote
	if stm == Gote {
		stmChar, nstmChar = 'w', 'b'
		stmTime, nstmTime = gote, sente
	}

	var stmPart string
	switch stmTime.tc.Kind {
	case TCNone:
	case TCMoveTime:
		stmPart = fmt.Sprintf("%ctime 0 byoyomi %d", stmChar, stmTime.tc.MoveTime.Milliseconds())
	case TCNodes:
		stmPart = fmt.Sprintf("nodes %d", stmTime.tc.Nodes)
	case TCByoyomi:
		stmPart = fmt.Sprintf("%ctime %d byoyomi %d",
			stmChar, stmTime.remaining.Milliseconds(), stmTime.tc.Byoyomi.Milliseconds())
	case TCFischer:
		stmPart = fmt.Sprintf("%ctime %d %cinc %d",
			stmChar, stmTime.remaining.Milliseconds(), stmChar, stmTime.tc.Increment.Milliseconds())
	}

	var nstmPart string
	switch nstmTime.tc.Kind {
	case TCByoyomi:
		nstmPart = fmt.Sprintf(" %ctime %d", nstmChar, nstmTime.remaining.Milliseconds())
	case TCFischer:
		nstmPart = fmt.Sprintf(" %ctime %d %cinc %d",
			nstmChar, nstmTime.remaining.Milliseconds(), nstmChar, nstmTime.tc.Increment.Milliseconds())
	}

	return stmPart + nstmPart
}
