package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/xyproto/env/v2"
)

func main() {
	initLogging()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// initLogging configures slog on stderr. SHOGITEST_LOG picks the level
// (debug shows the full USI traffic); the default stays quiet so engine
// chatter does not drown the match report.
func initLogging() {
	level := slog.LevelWarn
	switch strings.ToLower(env.Str("SHOGITEST_LOG")) {
	case "trace", "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})))
}
