package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"strings"

	"derive-generator/internal/config"
)

const usage = `derive-generator - derive Go types from existing struct types

Commands:
  gen       resolve targets and write the derived files
  check     resolve targets and report diagnostics without writing
  analyze   print the member catalog of source types

Run "derive-generator <command> -h" for the flags of a command.
`

// run executes the command line and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	logger := log.New(stderr, "derive-generator: ", 0)

	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return 2
	}

	base, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	cmd, rest := args[0], args[1:]

	switch cmd {
	case "gen", "check":
		cfg, err := parseGenFlags(cmd, rest, base, stderr)
		if err != nil {
			return flagExit(err, stderr)
		}

		return exitCode(generate(ctx, cfg, cmd == "gen", stdout, logger), stderr)
	case "analyze":
		cfg, err := parseAnalyzeFlags(rest, base, stderr)
		if err != nil {
			return flagExit(err, stderr)
		}

		return exitCode(analyzeTypes(cfg, stdout), stderr)
	case "help", "-h", "-help", "--help":
		fmt.Fprint(stdout, usage)
		return 0
	default:
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n%s", cmd, usage)
		return 2
	}
}

// errFailed reports a run that completed but found problems already printed.
var errFailed = errors.New("derivation failed")

func exitCode(err error, stderr io.Writer) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errFailed):
		return 1
	default:
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
}

func flagExit(err error, stderr io.Writer) int {
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}

	fmt.Fprintf(stderr, "Error: %v\n", err)

	return 2
}

type genConfig struct {
	config.Config
}

func parseGenFlags(name string, args []string, base config.Config, stderr io.Writer) (genConfig, error) {
	cfg := genConfig{Config: base}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&cfg.ConfigFile, "config", cfg.ConfigFile, "YAML request file")
	fs.Func("scan", "comma-separated packages searched for //derive: directives", appendList(&cfg.Scan))
	fs.Func("packages", "comma-separated packages loaded as sources", appendList(&cfg.Packages))
	fs.StringVar(&cfg.GoVersion, "go-version", cfg.GoVersion, "Go version of the target module (default: read from go.mod)")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "targets resolved concurrently (0: GOMAXPROCS)")
	fs.BoolVar(&cfg.Strict, "strict", cfg.Strict, "treat warnings as errors")

	if name == "gen" {
		fs.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "write every file to this directory instead of the target package directories")
		fs.BoolVar(&cfg.DebugUnformatted, "debug-unformatted", cfg.DebugUnformatted, "keep *.unformatted.go files when gofmt fails")
	}

	if err := fs.Parse(args); err != nil {
		return genConfig{}, err
	}

	if fs.NArg() > 0 {
		return genConfig{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	if cfg.ConfigFile == "" && len(cfg.Scan) == 0 {
		return genConfig{}, errors.New("nothing to do: set -config or -scan")
	}

	return cfg, cfg.Validate()
}

type analyzeConfig struct {
	Packages []string
	Dump     bool
	From     string
	Types    []string
}

func parseAnalyzeFlags(args []string, base config.Config, stderr io.Writer) (analyzeConfig, error) {
	cfg := analyzeConfig{Packages: base.Packages}

	fs := flag.NewFlagSet("analyze", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Func("packages", "comma-separated packages to load", appendList(&cfg.Packages))
	fs.BoolVar(&cfg.Dump, "dump", false, "dump the full schema of each type")
	fs.StringVar(&cfg.From, "from", "", "show members as seen from this target package")

	if err := fs.Parse(args); err != nil {
		return analyzeConfig{}, err
	}

	if len(cfg.Packages) == 0 {
		return analyzeConfig{}, errors.New("-packages is required")
	}

	cfg.Types = fs.Args()

	return cfg, nil
}

// appendList parses a comma-separated flag value. The first use of the flag
// replaces the environment default.
func appendList(dst *[]string) func(string) error {
	set := false

	return func(v string) error {
		if !set {
			*dst = nil
			set = true
		}

		for _, item := range strings.Split(v, ",") {
			if item = strings.TrimSpace(item); item != "" {
				*dst = append(*dst, item)
			}
		}

		return nil
	}
}
