package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"golang.org/x/sync/errgroup"
)

type renderResult struct {
	code   int
	stdout bytes.Buffer
	stderr bytes.Buffer
}

func runRender(args []string) int {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jobs := fs.Int("j", runtime.GOMAXPROCS(0), "number of scripts rendered concurrently")
	configPath := fs.String("config", "", "path to azurite.yml")
	seed := fs.Int64("seed", 0, "seed for rnd()")
	debug := fs.Bool("debug", false, "enable debug logging")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "render requires at least one source file")
		return 1
	}
	if *jobs < 1 {
		fmt.Fprintf(os.Stderr, "-j must be positive, got %d\n", *jobs)
		return 1
	}

	template := scriptJob{configPath: *configPath, debug: *debug, batch: true}
	if flagWasSet(fs, "seed") {
		template.seed = seed
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return renderScripts(ctx, fs.Args(), template, *jobs, os.Stdout, os.Stderr)
}

// renderScripts evaluates each script in its own interpreter, at most limit
// at a time. Output is buffered per script and flushed in argument order.
func renderScripts(ctx context.Context, paths []string, template scriptJob, limit int, stdout, stderr io.Writer) int {
	results := make([]*renderResult, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for idx, path := range paths {
		result := &renderResult{}
		results[idx] = result
		job := template
		job.path = path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				fmt.Fprintf(&result.stderr, "%s: interrupted\n", job.path)
				result.code = 130
				return nil
			}
			result.code = executeScript(gctx, job, &result.stdout, &result.stderr)
			return nil
		})
	}
	_ = g.Wait()

	code := 0
	for _, result := range results {
		_, _ = result.stdout.WriteTo(stdout)
		_, _ = result.stderr.WriteTo(stderr)
		if result.code != 0 && code == 0 {
			code = result.code
		}
	}
	return code
}
