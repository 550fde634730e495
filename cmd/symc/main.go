// Released under an MIT license. See LICENSE.

// Command symc is the compiler's entry point: it tokenizes each
// argument file into a Module, evaluates every module against one
// shared Environment, resolves references (building and installing any
// required compile-time macro or generator along the way), and writes
// the resulting source/header text next to each module's output name.
// Flag parsing follows a single docopt usage block, parsed once at
// startup.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/docopt/docopt-go"

	"github.com/symc-lang/symc/internal/build"
	"github.com/symc-lang/symc/internal/buildcache"
	"github.com/symc-lang/symc/internal/config"
	"github.com/symc-lang/symc/internal/diag"
	"github.com/symc-lang/symc/internal/env"
	"github.com/symc-lang/symc/internal/evalctx"
	"github.com/symc-lang/symc/internal/generators/fundamental"
	"github.com/symc-lang/symc/internal/lexer"
	"github.com/symc-lang/symc/internal/module"
	"github.com/symc-lang/symc/internal/repl"
	"github.com/symc-lang/symc/internal/token"
	"github.com/symc-lang/symc/internal/writer"
)

const usage = `symc

Usage:
  symc [-c CONFIG] [-o DIR] [-v] [-I DIR]... [-D NAME=VALUE]... [--keep-temp-libs] FILE...
  symc [-c CONFIG] --list-generators
  symc [-c CONFIG] --dump-tokens FILE...
  symc [-c CONFIG] [-v]
  symc -h
  symc --version

Arguments:
  FILE  Source file to compile. Repeatable.

Options:
  -c, --config=CONFIG        Path to symc.yaml. Defaults to ./symc.yaml if present.
  -o, --output=DIR           Override the configured output directory.
  -v, --verbose               Report compile-time build subprocess resource usage.
  -I, --include=DIR            Add DIR to every module's (include ...) search
                               path, searched before the configured
                               searchDirectories. Repeatable.
  -D, --define=NAME=VALUE     Define a compile-time constant, reachable as a
                               bare symbol by every macro/generator. Repeatable.
  --keep-temp-libs             Keep each compile-time build's generated Go source
                               instead of removing it once its plugin loads.
  --list-generators            Print every registered generator name and exit.
  --dump-tokens                Print each file's token stream instead of compiling.
  -h, --help                   Display this help.
  --version                    Print symc's version.
`

const version = "0.1.0"

func main() {
	opts, err := docopt.ParseDoc(usage)
	if err != nil {
		panic(err.Error())
	}

	if v, _ := opts.Bool("--version"); v {
		fmt.Println(version)
		return
	}

	cfg, err := loadConfig(opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if verbose, _ := opts.Bool("--verbose"); verbose {
		cfg.Verbose = true
	}

	keepTempLibs, _ := opts.Bool("--keep-temp-libs")

	files, _ := opts["FILE"].([]string)

	if dump, _ := opts.Bool("--dump-tokens"); dump {
		dumpTokens(files)
		return
	}

	mgr := module.NewManager()
	defer mgr.Env.Destroy()

	sink := diag.New(os.Stderr)
	fundamental.RegisterAll(mgr.Env, sink)
	mgr.RegisterIncludeGenerator(sink)

	if includeDirs, _ := opts["--include"].([]string); len(includeDirs) > 0 {
		cfg.SearchDirectories = append(includeDirs, cfg.SearchDirectories...)
	}

	if list, _ := opts.Bool("--list-generators"); list {
		for _, name := range mgr.Env.GeneratorNames() {
			fmt.Println(name)
		}

		return
	}

	defines, _ := opts["--define"].([]string)
	if err := registerDefines(mgr, defines); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	outputDir := cfg.OutputDir
	if o, _ := opts.String("--output"); o != "" {
		outputDir = o
	}

	if len(files) == 0 {
		if !repl.IsInteractive(os.Stdin.Fd()) {
			fmt.Fprintln(os.Stderr, "symc: no input files and stdin is not a terminal")
			os.Exit(1)
		}

		runRepl(mgr, sink, cfg, keepTempLibs)

		return
	}

	if !compileFiles(mgr, sink, cfg, outputDir, files, keepTempLibs) {
		os.Exit(1)
	}
}

// registerDefines installs each "NAME=VALUE" define as a nullary macro
// expanding to VALUE's tokens, the transpiler's analogue of a C
// preprocessor -D flag reaching compile-time code.
func registerDefines(mgr *module.Manager, defines []string) error {
	for _, d := range defines {
		name, value, ok := strings.Cut(d, "=")
		if !ok {
			return fmt.Errorf("symc: malformed -D %q, expected NAME=VALUE", d)
		}

		v, err := lexer.TokenizeSource(value, "<define:"+name+">")
		if err != nil {
			return fmt.Errorf("symc: -D %s: %w", name, err)
		}

		v.Freeze()

		mgr.Env.RegisterMacro(name, func(e *env.Environment, ctx *evalctx.Context, expr token.Expression) (*token.Vec, bool) {
			return v, true
		})
	}

	return nil
}

func loadConfig(opts docopt.Opts) (*config.Config, error) {
	path, _ := opts.String("--config")
	if path == "" {
		if _, err := os.Stat("symc.yaml"); err == nil {
			path = "symc.yaml"
		}
	}

	if path == "" {
		return config.Default(), nil
	}

	return config.Load(path)
}

func dumpTokens(files []string) {
	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		v, err := lexer.TokenizeSource(string(src), path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		for i := 0; i < v.Len(); i++ {
			fmt.Println(v.At(i).String())
		}
	}
}

func compileFiles(mgr *module.Manager, sink *diag.Sink, cfg *config.Config, outputDir string, files []string, keepTempLibs bool) bool {
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}

	var mods []*module.Module

	for _, path := range files {
		src, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}

		v, err := lexer.TokenizeSource(string(src), path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}

		v.Freeze()

		mod := mgr.AddModule(path, v)
		mod.SearchDirectories = cfg.SearchDirectories

		if errs := mgr.EvaluateModule(mod, sink); errs > 0 {
			return false
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		mod.SourceOutputName = filepath.Join(outputDir, base+".c")
		mod.HeaderOutputName = filepath.Join(outputDir, base+".h")

		mods = append(mods, mod)
	}

	installer, closeCache := newInstaller(mgr, cfg, outputDir, keepTempLibs)
	defer closeCache()

	if !mgr.ResolveReferences(sink, installer) {
		return false
	}

	w := writer.New(cfg)

	for _, mod := range mods {
		if mod.SkipBuild {
			continue
		}

		if err := os.WriteFile(mod.SourceOutputName, []byte(w.WriteSource(mod.Output)), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}

		if err := os.WriteFile(mod.HeaderOutputName, []byte(w.WriteHeader(mod.Output)), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return false
		}
	}

	return true
}

// newInstaller builds the Installer that ResolveReferences uses to
// satisfy required compile-time definitions. The returned closer closes
// the build cache's database handle, if one was opened, and must be
// called once the installer is no longer needed.
func newInstaller(mgr *module.Manager, cfg *config.Config, outputDir string, keepTempLibs bool) (*build.Installer, func()) {
	builder := build.NewBuilder(filepath.Join(outputDir, ".symc-build"))
	builder.Verbose = cfg.Verbose
	builder.KeepTempLibs = keepTempLibs

	closeCache := func() {}

	if cfg.Verbose {
		builder.Report = func(line string) { fmt.Fprintln(os.Stderr, line) }
	}

	if cfg.CacheFile != "" {
		cachePath := cfg.CacheFile
		if !filepath.IsAbs(cachePath) {
			cachePath = filepath.Join(outputDir, cachePath)
		}

		if cache, err := buildcache.Open(cachePath); err == nil {
			builder.Cache = cache
			closeCache = func() { cache.Close() }
		}
	}

	return build.NewInstaller(mgr.Env, builder), closeCache
}

func runRepl(mgr *module.Manager, sink *diag.Sink, cfg *config.Config, keepTempLibs bool) {
	w := writer.New(cfg)
	installer, closeCache := newInstaller(mgr, cfg, cfg.OutputDir, keepTempLibs)
	defer closeCache()

	form := 0

	r := repl.New(func(v *token.Vec) (string, bool) {
		form++

		mod := mgr.AddModule(fmt.Sprintf("<repl:%d>", form), v)
		mod.SearchDirectories = cfg.SearchDirectories

		if errs := mgr.EvaluateModule(mod, sink); errs > 0 {
			return "", true
		}

		if !mgr.ResolveReferences(sink, installer) {
			return "", true
		}

		return strings.TrimRight(w.WriteSource(mod.Output), "\n"), true
	})

	r.Run(os.Stdout)
}
