package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseTimeControl(t *testing.T) {
	tests := []struct {
		spec string
		want TimeControl
	}{
		{"", TimeControl{Kind: TCNone}},
		{"infinite", TimeControl{Kind: TCNone}},
		{"10+0.1", TimeControl{Kind: TCFischer, Base: 10 * time.Second, Increment: 100 * time.Millisecond}},
		{"1m30s+2s", TimeControl{Kind: TCFischer, Base: 90 * time.Second, Increment: 2 * time.Second}},
		{"300", TimeControl{Kind: TCFischer, Base: 300 * time.Second}},
		{"10m,3s", TimeControl{Kind: TCByoyomi, Base: 10 * time.Minute, Byoyomi: 3 * time.Second}},
		{"10分,3秒", TimeControl{Kind: TCByoyomi, Base: 10 * time.Minute, Byoyomi: 3 * time.Second}},
		{"movetime=5s", TimeControl{Kind: TCMoveTime, MoveTime: 5 * time.Second}},
		{"N=100000", TimeControl{Kind: TCNodes, Nodes: 100000}},
	}
	for _, tt := range tests {
		got, err := ParseTimeControl(tt.spec)
		require.NoError(t, err, "spec %q", tt.spec)
		require.Equal(t, tt.want, got, "spec %q", tt.spec)
	}
}

func TestParseTimeControlRejectsGarbage(t *testing.T) {
	for _, spec := range []string{"abc", "m+s", "N=", "movetime="} {
		_, err := ParseTimeControl(spec)
		require.Error(t, err, "spec %q", spec)
	}
}

func TestTimeControlString(t *testing.T) {
	tests := []struct {
		tc   TimeControl
		want string
	}{
		{TimeControl{Kind: TCNone}, "infinite"},
		{TimeControl{Kind: TCNodes, Nodes: 100000}, "N=100000"},
		{TimeControl{Kind: TCMoveTime, MoveTime: 5 * time.Second}, "movetime=5s"},
		{TimeControl{Kind: TCByoyomi, Base: 10 * time.Minute, Byoyomi: 3 * time.Second}, "10m,3s"},
		{TimeControl{Kind: TCFischer, Base: 10 * time.Second, Increment: 100 * time.Millisecond}, "10s+0.1s"},
		{TimeControl{Kind: TCFischer, Base: 90 * time.Second, Increment: 2 * time.Second}, "1m30s+2s"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.tc.String())
	}
}

func TestEngineTimeStepFischer(t *testing.T) {
	et := NewEngineTime(TimeControl{Kind: TCFischer, Base: time.Second, Increment: time.Second})
	require.Equal(t, 2*time.Second, et.Remaining())

	require.Equal(t, StepOK, et.Step(500*time.Millisecond))
	require.Equal(t, 2500*time.Millisecond, et.Remaining())

	require.Equal(t, StepTimeElapsed, et.Step(3*time.Second))
	require.Equal(t, time.Duration(0), et.Remaining())
}

func TestEngineTimeStepByoyomi(t *testing.T) {
	et := NewEngineTime(TimeControl{Kind: TCByoyomi, Base: time.Second, Byoyomi: time.Second})

	// dips half a second into byoyomi
	require.Equal(t, StepOK, et.Step(1500*time.Millisecond))
	require.Equal(t, time.Duration(0), et.Remaining())

	// entirely on byoyomi now, 1.5s exceeds it
	require.Equal(t, StepTimeElapsed, et.Step(1500*time.Millisecond))
}

func TestEngineTimeStepMoveTime(t *testing.T) {
	et := NewEngineTime(TimeControl{Kind: TCMoveTime, MoveTime: time.Second})
	require.Equal(t, StepOK, et.Step(999*time.Millisecond))
	require.Equal(t, StepTimeElapsed, et.Step(1001*time.Millisecond))
}

func TestEngineTimeStepUnclocked(t *testing.T) {
	for _, tc := range []TimeControl{{Kind: TCNone}, {Kind: TCNodes, Nodes: 1000}} {
		et := NewEngineTime(tc)
		require.Equal(t, StepOK, et.Step(time.Hour))
	}
}

func TestGoCommand(t *testing.T) {
	fischer := TimeControl{Kind: TCFischer, Base: 59 * time.Second, Increment: time.Second}
	byoyomi := TimeControl{Kind: TCByoyomi, Base: 10 * time.Minute, Byoyomi: 10 * time.Second}

	tests := []struct {
		name  string
		stm   Color
		sente TimeControl
		gote  TimeControl
		want  string
	}{
		{
			name: "fischer both sente to move",
			stm:  Sente, sente: fischer, gote: fischer,
			want: "btime 60000 binc 1000 wtime 60000 winc 1000",
		},
		{
			name: "fischer both gote to move",
			stm:  Gote, sente: fischer, gote: fischer,
			want: "wtime 60000 winc 1000 btime 60000 binc 1000",
		},
		{
			name: "byoyomi both",
			stm:  Sente, sente: byoyomi, gote: byoyomi,
			want: "btime 600000 byoyomi 10000 wtime 600000",
		},
		{
			name:  "movetime ignores opponent clock",
			stm:   Sente,
			sente: TimeControl{Kind: TCMoveTime, MoveTime: 5 * time.Second},
			gote:  TimeControl{Kind: TCMoveTime, MoveTime: 5 * time.Second},
			want:  "btime 0 byoyomi 5000",
		},
		{
			name:  "node limited",
			stm:   Sente,
			sente: TimeControl{Kind: TCNodes, Nodes: 100000},
			gote:  TimeControl{Kind: TCNodes, Nodes: 100000},
			want:  "nodes 100000",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			senteTime := NewEngineTime(tt.sente)
			goteTime := NewEngineTime(tt.gote)
			require.Equal(t, tt.want, goCommand(tt.stm, &senteTime, &goteTime))
		})
	}
}
