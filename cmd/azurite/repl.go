package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/Zirconova/azurite/pkg/driver"
	"github.com/Zirconova/azurite/pkg/interpreter"
	"github.com/Zirconova/azurite/pkg/parser"
)

const (
	historyFile = ".azurite_history"
	promptMain  = "az> "
	promptCont  = "... "
)

// lineReader is the part of *liner.State the REPL loop uses.
type lineReader interface {
	Prompt(prompt string) (string, error)
	AppendHistory(item string)
}

func runRepl(args []string) int {
	fs := flag.NewFlagSet("repl", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "path to azurite.yml")
	seed := fs.Int64("seed", 0, "seed for rnd()")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	var seedOverride *int64
	if flagWasSet(fs, "seed") {
		seedOverride = seed
	}

	interp, log, err := newReplInterpreter(*configPath, seedOverride, *debug, os.Stdout, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		return 1
	}
	defer func() {
		if closeErr := interp.Close(); closeErr != nil {
			log.Warn("release interpreter state", "err", closeErr)
		}
	}()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	var histPath string
	if home, err := os.UserHomeDir(); err == nil {
		histPath = filepath.Join(home, historyFile)
		if f, err := os.Open(histPath); err == nil {
			_, _ = ln.ReadHistory(f)
			_ = f.Close()
		}
	}
	defer func() {
		if histPath == "" {
			return
		}
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(os.Stdout, cliToolVersion+" (type :quit to exit)")
	return replLoop(context.Background(), ln, interp, os.Stdout, os.Stderr)
}

// newReplInterpreter applies the azurite.yml found from the working
// directory, or configPath when given. The seed flag overrides the config.
func newReplInterpreter(configPath string, seed *int64, debug bool, stdout, stderr io.Writer) (*interpreter.Interpreter, *slog.Logger, error) {
	cfg, err := driver.ResolveConfig(configPath, ".")
	if err != nil {
		return nil, nil, err
	}
	log := newLogger(stderr, debug || cfg.Debug)
	opts := []interpreter.Option{
		interpreter.WithLogger(log),
		interpreter.WithStdout(stdout),
		interpreter.WithCapacity(cfg.Capacity),
	}
	switch {
	case seed != nil:
		opts = append(opts, interpreter.WithSeed(*seed))
	case cfg.Seed != nil:
		opts = append(opts, interpreter.WithSeed(*cfg.Seed))
	}
	return interpreter.New(opts...), log, nil
}

// replLoop reads entries until :quit or end of input, evaluating each one in
// the same interpreter so bindings persist between entries.
func replLoop(ctx context.Context, in lineReader, interp *interpreter.Interpreter, stdout, stderr io.Writer) int {
	for {
		entry, ok := readEntry(in)
		if !ok {
			fmt.Fprintln(stdout)
			return 0
		}
		trimmed := strings.TrimSpace(entry)
		if trimmed == "" {
			continue
		}
		in.AppendHistory(strings.ReplaceAll(entry, "\n", " "))

		if strings.HasPrefix(trimmed, ":") {
			if quit := handleReplCommand(interp, trimmed, stdout, stderr); quit {
				return 0
			}
			continue
		}

		program, err := driver.ParseFile("", entry)
		if err != nil {
			fmt.Fprintln(stderr, err)
			continue
		}
		if err := interp.EvaluateProgram(ctx, program); err != nil {
			fmt.Fprintln(stderr, interpreter.DescribeRuntimeDiagnostic(interp.BuildRuntimeDiagnostic(err)))
		}
	}
}

func handleReplCommand(interp *interpreter.Interpreter, line string, stdout, stderr io.Writer) (quit bool) {
	fields := strings.Fields(line)
	switch fields[0] {
	case ":quit", ":q":
		return true
	case ":samples":
		fmt.Fprintf(stdout, "%d samples\n", interp.Buffer().Len())
	case ":clear":
		interp.Buffer().Reset()
	case ":save":
		if len(fields) != 2 {
			fmt.Fprintln(stderr, ":save requires a path")
			return false
		}
		if err := interp.Buffer().WriteFile(fields[1], 1); err != nil {
			fmt.Fprintf(stderr, "failed to write %s: %v\n", fields[1], err)
			return false
		}
		fmt.Fprintf(stdout, "wrote %d samples to %s\n", interp.Buffer().Len(), fields[1])
	default:
		fmt.Fprintf(stderr, "unknown command %s (try :quit, :save <path>, :samples, :clear)\n", fields[0])
	}
	return false
}

// readEntry keeps prompting while the accumulated source is an incomplete
// program. It reports false at end of input.
func readEntry(in lineReader) (string, bool) {
	var b strings.Builder
	for {
		prompt := promptMain
		if b.Len() > 0 {
			prompt = promptCont
		}
		line, err := in.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			if b.Len() > 0 {
				return b.String(), true
			}
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			b.Reset()
			continue
		}
		if err != nil {
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		if strings.HasPrefix(strings.TrimSpace(src), ":") {
			return src, true
		}
		if _, perr := parser.ParseProgram(src); perr != nil && parser.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
