// Build entry point for the ShogiBench/OpenBench worker.
//
// The worker invokes this through the makefile:
//
//	make openbench            # release build -> ./shogitest (.exe on Windows)
//	make EXE=name openbench   # harness-supplied artifact name
//
// Running it without the openbench target prints a short notice and exits
// with status 1 so a stray manual invocation never produces an artifact.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"

	"github.com/xyproto/env/v2"
)

// CommandRunner runs one external command. Tests substitute a fake to check
// the exact toolchain invocation without building anything.
type CommandRunner interface {
	Run(name string, args []string, extraEnv []string) error
}

type execRunner struct{}

func (execRunner) Run(name string, args []string, extraEnv []string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = append(os.Environ(), extraEnv...)
	return cmd.Run()
}

// resolveOutputName picks the artifact filename for the host platform.
// A non-empty override wins unconditionally.
func resolveOutputName(goos, override string) string {
	if override != "" {
		return override
	}
	out := "shogitest"
	if goos == "windows" {
		out += ".exe"
	}
	return out
}

// nativeCPUEnv approximates rustc's -C target-cpu=native. The binary only
// ever runs on the machine that built it, so portability of the artifact
// does not matter.
func nativeCPUEnv(goarch string) []string {
	if goarch == "amd64" {
		return []string{"GOAMD64=v3"}
	}
	return nil
}

func runReleaseBuild(r CommandRunner, goarch, out string) error {
	args := []string{"build", "-trimpath", "-ldflags", "-s -w", "-o", out, "."}
	return r.Run("go", args, nativeCPUEnv(goarch))
}

func run(args []string, errW io.Writer, runner CommandRunner) int {
	if len(args) != 1 || args[0] != "openbench" {
		fmt.Fprintln(errW, "This build script exists for the ShogiBench worker; use 'make openbench' or plain 'go build' instead.")
		return 1
	}

	out := resolveOutputName(runtime.GOOS, env.Str("EXE"))
	fmt.Fprintf(errW, "Building %s for %s/%s\n", out, runtime.GOOS, runtime.GOARCH)

	if err := runReleaseBuild(runner, runtime.GOARCH, out); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return exitErr.ExitCode()
		}
		fmt.Fprintf(errW, "Build failed: %v\n", err)
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stderr, execRunner{}))
}
