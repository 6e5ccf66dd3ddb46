package main

import (
	"fmt"
	"strings"
)

// MetaOptions is the tournament metadata written into PGN headers.
type MetaOptions struct {
	Event string
	Site  string
}

// PGNOptions configures the --pgnout decorator. The Track flags add
// per-move statistics to the movetext comments.
type PGNOptions struct {
	File          string
	TrackNodes    bool
	TrackSeldepth bool
	TrackNPS      bool
	TrackHashfull bool
	TrackTimeLeft bool
	TrackLatency  bool
}

// Options is the full, validated tournament configuration.
type Options struct {
	Engines      []EngineConfig
	OpeningsFile string
	Games        uint64 // 0: unbounded
	Rounds       uint64
	Concurrency  uint64
	Meta         MetaOptions
	PGN          *PGNOptions
}

// splitSpec breaks a "key=value key=value" group argument into pairs.
func splitSpec(spec string) ([][2]string, error) {
	var pairs [][2]string
	for _, field := range strings.Fields(spec) {
		key, value, found := strings.Cut(field, "=")
		if !found || key == "" {
			return nil, fmt.Errorf("expected key=value, got %q", field)
		}
		pairs = append(pairs, [2]string{key, value})
	}
	return pairs, nil
}

// parseEngineSpec parses one --engine argument, e.g.
// "cmd=./yaneuraou name=Yane tc=10m,3s option.USI_Hash=256".
func parseEngineSpec(spec string) (EngineConfig, error) {
	var cfg EngineConfig
	pairs, err := splitSpec(spec)
	if err != nil {
		return cfg, err
	}
	for _, kv := range pairs {
		key, value := kv[0], kv[1]
		switch {
		case key == "cmd":
			cfg.Cmd = value
		case key == "name":
			cfg.Name = value
		case key == "dir":
			cfg.Dir = value
		case key == "tc":
			tc, err := ParseTimeControl(value)
			if err != nil {
				return cfg, err
			}
			cfg.TC = tc
		case strings.HasPrefix(key, "option."):
			cfg.Options = append(cfg.Options, [2]string{strings.TrimPrefix(key, "option."), value})
		default:
			return cfg, fmt.Errorf("unknown engine option %q", key)
		}
	}
	if cfg.Cmd == "" {
		return cfg, fmt.Errorf("engine spec %q is missing cmd=", spec)
	}
	return cfg, nil
}

func parseBool(key, value string) (bool, error) {
	switch value {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, fmt.Errorf("%s expects true or false, got %q", key, value)
}

// parsePGNSpec parses the --pgnout argument, e.g.
// "file=out.pgn nodes=true nps=true".
func parsePGNSpec(spec string) (*PGNOptions, error) {
	opts := &PGNOptions{}
	pairs, err := splitSpec(spec)
	if err != nil {
		return nil, err
	}
	for _, kv := range pairs {
		key, value := kv[0], kv[1]
		var dst *bool
		switch key {
		case "file":
			opts.File = value
			continue
		case "nodes":
			dst = &opts.TrackNodes
		case "seldepth":
			dst = &opts.TrackSeldepth
		case "nps":
			dst = &opts.TrackNPS
		case "hashfull":
			dst = &opts.TrackHashfull
		case "timeleft":
			dst = &opts.TrackTimeLeft
		case "latency":
			dst = &opts.TrackLatency
		default:
			return nil, fmt.Errorf("unknown pgnout option %q", key)
		}
		b, err := parseBool(key, value)
		if err != nil {
			return nil, err
		}
		*dst = b
	}
	if opts.File == "" {
		return nil, fmt.Errorf("output file required for --pgnout")
	}
	return opts, nil
}

// parseOpeningsSpec parses the --openings argument, e.g. "file=book.sfen".
func parseOpeningsSpec(spec string) (string, error) {
	pairs, err := splitSpec(spec)
	if err != nil {
		return "", err
	}
	var file string
	for _, kv := range pairs {
		switch kv[0] {
		case "file":
			file = kv[1]
		default:
			return "", fmt.Errorf("unknown openings option %q", kv[0])
		}
	}
	if file == "" {
		return "", fmt.Errorf("file required for --openings")
	}
	return file, nil
}

func (o *Options) validate() error {
	if len(o.Engines) < 2 {
		return fmt.Errorf("at least two engines must be supplied")
	}
	if o.Concurrency == 0 {
		return fmt.Errorf("invalid concurrency value 0 (must be bigger than zero)")
	}
	if o.Rounds == 0 {
		return fmt.Errorf("invalid rounds value 0 (must be bigger than zero)")
	}
	if o.Rounds > 2 && o.Rounds%2 == 1 {
		return fmt.Errorf("odd value for rounds %d, expected an even value", o.Rounds)
	}
	return nil
}
