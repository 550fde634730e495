// Released under an MIT license. See LICENSE.

// Package build provides the default compile-time build/link
// collaborator: it writes a compile-time definition's accumulated Go
// source to disk, builds it as a Go plugin, and loads the resulting
// symbol. It also adapts a loaded symbol into the macro/generator
// registries on internal/env.Environment.
package build

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"plugin"
	"strings"
	"sync"
	"syscall"

	"github.com/shirou/gopsutil/v4/process"

	"github.com/symc-lang/symc/internal/buildcache"
	"github.com/symc-lang/symc/internal/comptime"
	"github.com/symc-lang/symc/internal/job"
	"github.com/symc-lang/symc/internal/output"
	"github.com/symc-lang/symc/internal/token"
)

// Invoker is the function type every compile-time definition's built
// plugin must export under the symbol "Invoke": it receives the
// invocation's raw tokens (head included) and returns either a
// *token.Vec (a macro's expansion) or an *output.Generator (a
// generator's emitted fragments), depending on the definition's kind.
type Invoker func(args []token.T) (any, error)

type callable struct {
	fn Invoker
}

func (c callable) Invoke(args []token.T) (any, error) {
	return c.fn(args)
}

// Builder is the default os/exec-backed implementation of
// comptime.Builder: it shells out to the Go toolchain itself to
// compile a compile-time definition's generated source into a
// loadable plugin.
type Builder struct {
	// Dir is the scratch directory generated Go sources and built
	// plugins are written to.
	Dir string

	// GoBuildCommand overrides the command used to build the plugin,
	// e.g. for cross-compilation. Defaults to {"go", "build"}.
	GoBuildCommand []string

	// Verbose, if set, reports peak resident memory of the build
	// subprocess after each build via gopsutil.
	Verbose bool

	// Report receives verbose resource-usage lines when Verbose is set.
	// Defaults to nil (discarded) if unset.
	Report func(line string)

	// Cache, if set, skips rebuilding an artifact whose command line and
	// source haven't changed since the last recorded build.
	Cache *buildcache.Cache

	// KeepTempLibs, if set, leaves each build's generated Go source file
	// on disk instead of removing it once the plugin has loaded
	// successfully — useful when a CompileTimeBuildError needs
	// inspecting by hand.
	KeepTempLibs bool

	mu      sync.Mutex
	running *exec.Cmd
}

// NewBuilder creates a Builder that writes scratch files under dir.
func NewBuilder(dir string) *Builder {
	return &Builder{Dir: dir, GoBuildCommand: []string{"go", "build"}}
}

var _ comptime.Builder = (*Builder)(nil)

// Build compiles name's Go source (gen.Source's flattened text, joined
// in order) into a plugin and loads its exported "Invoke" symbol. If a
// Cache is set and the artifact's build command plus source are
// unchanged since the last successful build, the previous plugin is
// reloaded instead of rebuilt.
func (b *Builder) Build(name string, gen *output.Generator) (comptime.Callable, error) {
	if err := prepareBuildDir(b.Dir); err != nil {
		return nil, fmt.Errorf("build: preparing scratch directory: %w", err)
	}

	artifact := sanitizeFilename(name)
	soPath := filepath.Join(b.Dir, artifact+".so")
	source := flattenSource(gen)

	args := append(append([]string{}, b.GoBuildCommand[1:]...), "-buildmode=plugin")
	crc := buildcache.CommandCrc(append(append([]string{}, args...), source)...)

	if b.Cache != nil {
		upToDate, err := b.Cache.UpToDate(artifact, crc)
		if err == nil && upToDate {
			if _, statErr := os.Stat(soPath); statErr == nil {
				return b.load(name, soPath)
			}
		}
	}

	suffix := nextSuffix()
	srcPath := filepath.Join(b.Dir, artifact+"_"+suffix+".go")
	tmpSoPath := filepath.Join(b.Dir, artifact+"_"+suffix+".so")

	if err := os.WriteFile(srcPath, []byte(source), 0o600); err != nil {
		return nil, fmt.Errorf("build: writing generated source for %q: %w", name, err)
	}

	cmd := exec.Command(b.GoBuildCommand[0], append(append([]string{}, args...), "-o", tmpSoPath, srcPath)...)
	job.SetGroup(cmd)

	b.setRunning(cmd)
	out, err := cmd.CombinedOutput()
	b.setRunning(nil)

	if err != nil {
		return nil, fmt.Errorf("build: go build %q failed: %w: %s", name, err, out)
	}

	b.reportResourceUsage(cmd)

	if err := os.Rename(tmpSoPath, soPath); err != nil {
		return nil, fmt.Errorf("build: installing plugin for %q: %w", name, err)
	}

	if b.Cache != nil {
		if err := b.Cache.Record(artifact, crc); err != nil {
			return nil, fmt.Errorf("build: recording cache entry for %q: %w", name, err)
		}
	}

	callable, err := b.load(name, soPath)
	if err != nil {
		return nil, err
	}

	if !b.KeepTempLibs {
		os.Remove(srcPath)
	}

	return callable, nil
}

func (b *Builder) setRunning(cmd *exec.Cmd) {
	b.mu.Lock()
	b.running = cmd
	b.mu.Unlock()
}

// Interrupt signals the process group of the build currently in
// flight, if any, so that a cancelled build doesn't leave an orphaned
// "go build" or linker process behind. It is safe to call from a
// signal handler; it is a no-op when no build is running.
func (b *Builder) Interrupt() error {
	b.mu.Lock()
	cmd := b.running
	b.mu.Unlock()

	if cmd == nil {
		return nil
	}

	return job.Kill(cmd, syscall.SIGTERM)
}

func (b *Builder) load(name, soPath string) (comptime.Callable, error) {
	p, err := plugin.Open(soPath)
	if err != nil {
		return nil, fmt.Errorf("build: opening plugin for %q: %w", name, err)
	}

	sym, err := p.Lookup("Invoke")
	if err != nil {
		return nil, fmt.Errorf("build: symbol not found for %q: %w", name, err)
	}

	fn, ok := sym.(func([]token.T) (any, error))
	if !ok {
		return nil, fmt.Errorf("build: %q exports Invoke with an unexpected signature", name)
	}

	return callable{fn: fn}, nil
}

func (b *Builder) reportResourceUsage(cmd *exec.Cmd) {
	if !b.Verbose || b.Report == nil || cmd.Process == nil {
		return
	}

	proc, err := process.NewProcess(int32(cmd.Process.Pid))
	if err != nil {
		return
	}

	mem, err := proc.MemoryInfo()
	if err != nil || mem == nil {
		return
	}

	b.Report(fmt.Sprintf("build: peak RSS %d bytes", mem.RSS))
}

func flattenSource(gen *output.Generator) string {
	var sb strings.Builder

	for _, f := range gen.Flatten(output.Source) {
		sb.WriteString(f.Text)
	}

	return sb.String()
}

func sanitizeFilename(name string) string {
	var sb strings.Builder

	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}

	return sb.String()
}
