package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/driver"
	"github.com/Zirconova/azurite/pkg/interpreter"
)

const cliToolVersion = "azurite 0.1.0-dev"

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return 1
	}

	switch args[0] {
	case "--help", "-h", "help":
		printUsage(os.Stdout)
		return 0
	case "--version", "-V", "version":
		fmt.Fprintln(os.Stdout, cliToolVersion)
		return 0
	case "run":
		return runEntry(args[1:])
	case "render":
		return runRender(args[1:])
	case "repl":
		return runRepl(args[1:])
	case "ast":
		return runAST(args[1:], os.Stdout)
	default:
		if strings.HasPrefix(args[0], "-") || looksLikeScript(args[0]) {
			return runEntry(args)
		}
		fmt.Fprintf(os.Stderr, "unknown command %q\n", args[0])
		printUsage(os.Stderr)
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "usage:")
	fmt.Fprintln(w, "  azurite run [-o out.wav] [-config azurite.yml] [-seed n] [-debug] <file.az>")
	fmt.Fprintln(w, "  azurite render [-j n] [-config azurite.yml] [-seed n] <file.az>...")
	fmt.Fprintln(w, "  azurite repl [-config azurite.yml] [-seed n] [-debug]")
	fmt.Fprintln(w, "  azurite ast <file.az>")
	fmt.Fprintln(w, "  azurite version")
}

func looksLikeScript(arg string) bool {
	if strings.HasSuffix(arg, ".az") {
		return true
	}
	info, err := os.Stat(arg)
	return err == nil && !info.IsDir()
}

// scriptJob describes one script evaluation. A batch job writes
// <script>.wav whatever output the config names.
type scriptJob struct {
	path       string
	output     string
	configPath string
	seed       *int64
	debug      bool
	batch      bool
}

func runEntry(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	output := fs.String("o", "", "write samples to this wav file")
	configPath := fs.String("config", "", "path to azurite.yml")
	seed := fs.Int64("seed", 0, "seed for rnd()")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		if fs.NArg() == 0 {
			fmt.Fprintln(os.Stderr, "run requires a source file")
		} else {
			fmt.Fprintf(os.Stderr, "unexpected arguments: %s\n", strings.Join(fs.Args()[1:], " "))
		}
		return 1
	}

	job := scriptJob{
		path:       fs.Arg(0),
		output:     *output,
		configPath: *configPath,
		debug:      *debug,
	}
	if flagWasSet(fs, "seed") {
		job.seed = seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return executeScript(ctx, job, os.Stdout, os.Stderr)
}

func flagWasSet(fs *flag.FlagSet, name string) bool {
	set := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// executeScript parses and evaluates job.path, then writes the sample
// buffer. The wav file is written when the script produced samples or an
// explicit output path was requested.
func executeScript(ctx context.Context, job scriptJob, stdout, stderr io.Writer) int {
	cfg, err := driver.ResolveConfig(job.configPath, job.path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return 1
	}

	source, err := os.ReadFile(job.path)
	if err != nil {
		fmt.Fprintf(stderr, "failed to read %s: %v\n", job.path, err)
		return 1
	}
	program, err := driver.ParseFile(job.path, string(source))
	if err != nil {
		reportParseError(stderr, job.path, err)
		return 1
	}

	log := newLogger(stderr, job.debug || cfg.Debug)
	opts := []interpreter.Option{
		interpreter.WithLogger(log),
		interpreter.WithStdout(stdout),
		interpreter.WithCapacity(cfg.Capacity),
		interpreter.WithSourcePath(job.path),
	}
	switch {
	case job.seed != nil:
		opts = append(opts, interpreter.WithSeed(*job.seed))
	case cfg.Seed != nil:
		opts = append(opts, interpreter.WithSeed(*cfg.Seed))
	}

	interp := interpreter.New(opts...)
	defer func() {
		if closeErr := interp.Close(); closeErr != nil {
			log.Warn("release interpreter state", "script", job.path, "err", closeErr)
		}
	}()

	if err := interp.EvaluateProgram(ctx, program); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			fmt.Fprintf(stderr, "%s: interrupted\n", job.path)
			return 130
		}
		fmt.Fprintln(stderr, interpreter.DescribeRuntimeDiagnostic(interp.BuildRuntimeDiagnostic(err)))
		return 1
	}

	buffer := interp.Buffer()
	if buffer.Len() == 0 && job.output == "" {
		return 0
	}
	output := job.output
	switch {
	case output != "":
	case job.batch:
		if cfg.Output != "" {
			log.Warn("config output ignored while rendering several scripts", "script", job.path, "output", cfg.Output)
		}
		output = driver.DefaultOutputPath(job.path)
	default:
		output = cfg.OutputPath(job.path)
	}
	if err := buffer.WriteFile(output, cfg.Channels); err != nil {
		fmt.Fprintf(stderr, "failed to write %s: %v\n", output, err)
		return 1
	}
	log.Info("wrote wave file", "path", output, "samples", buffer.Len())
	return 0
}

func reportParseError(w io.Writer, path string, err error) {
	if parseErr, ok := driver.AsParseError(path, err); ok {
		fmt.Fprintln(w, parseErr)
		return
	}
	fmt.Fprintf(w, "failed to parse %s: %v\n", path, err)
}

func runAST(args []string, stdout io.Writer) int {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "ast requires exactly one source file")
		return 1
	}
	path := args[0]
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to read %s: %v\n", path, err)
		return 1
	}
	program, err := driver.ParseFile(path, string(source))
	if err != nil {
		reportParseError(os.Stderr, path, err)
		return 1
	}
	if err := ast.Fprint(stdout, program); err != nil {
		fmt.Fprintf(os.Stderr, "failed to print syntax tree: %v\n", err)
		return 1
	}
	return 0
}
