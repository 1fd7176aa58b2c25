package interpreter

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
	"github.com/Zirconova/azurite/pkg/wav"
)

// Interpreter evaluates Azurite programs. An instance is single-threaded;
// separate instances share no state.
type Interpreter struct {
	scopes    *runtime.ScopeStack
	collector *runtime.Collector
	buffer    *wav.Buffer
	stdout    io.Writer
	log       *slog.Logger
	rng       *rand.Rand
	tracker   *runtime.RefTracker
	path      string

	seed      int64
	seedSet   bool
	capacity  int
	callStack []*ast.CallExpr
	sampling  []*runtime.WaveValue
	ctx       context.Context
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithLogger sets the structured logger. Evaluation traces are logged at
// debug level.
func WithLogger(log *slog.Logger) Option {
	return func(i *Interpreter) {
		i.log = log
	}
}

// WithStdout redirects print output.
func WithStdout(w io.Writer) Option {
	return func(i *Interpreter) {
		i.stdout = w
	}
}

// WithSeed fixes the seed of the rnd builtin.
func WithSeed(seed int64) Option {
	return func(i *Interpreter) {
		i.seed = seed
		i.seedSet = true
	}
}

// WithCapacity sets the sample buffer capacity.
func WithCapacity(samples int) Option {
	return func(i *Interpreter) {
		i.capacity = samples
	}
}

// WithRefTracker instruments every declared function with tracker.
func WithRefTracker(tracker *runtime.RefTracker) Option {
	return func(i *Interpreter) {
		i.tracker = tracker
	}
}

// WithSourcePath names the script in runtime diagnostics.
func WithSourcePath(path string) Option {
	return func(i *Interpreter) {
		i.path = path
	}
}

// New returns an interpreter with an empty global scope.
func New(opts ...Option) *Interpreter {
	i := &Interpreter{
		stdout: os.Stdout,
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(i)
	}
	if i.log == nil {
		i.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	}
	if !i.seedSet {
		i.seed = time.Now().UnixNano()
	}
	i.rng = rand.New(rand.NewSource(i.seed))
	i.collector = runtime.NewCollector()
	i.scopes = runtime.NewScopeStack(i.collector)
	i.buffer = wav.NewBuffer(i.capacity)
	return i
}

// Scopes exposes the scope stack.
func (i *Interpreter) Scopes() *runtime.ScopeStack { return i.scopes }

// Buffer returns the samples written so far.
func (i *Interpreter) Buffer() *wav.Buffer { return i.buffer }

// Collector exposes the shared value accounting.
func (i *Interpreter) Collector() *runtime.Collector { return i.collector }

// SourcePath returns the script path used in diagnostics.
func (i *Interpreter) SourcePath() string { return i.path }

// EvaluateProgram runs each top-level statement in order. Values created
// by a statement and left unbound are collected after it completes. A
// top-level return stops the program.
func (i *Interpreter) EvaluateProgram(ctx context.Context, prog *ast.Program) error {
	if prog == nil || prog.Body == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	i.ctx = ctx
	defer func() { i.ctx = context.Background() }()

	for _, stmt := range prog.Body.Body {
		if err := ctx.Err(); err != nil {
			return err
		}
		i.log.DebugContext(ctx, "statement", "type", stmt.NodeType(), "line", stmt.Span().Start.Line)
		result, err := i.evaluateStatement(stmt)
		if err != nil {
			if unwindErr := i.scopes.Unwind(1); unwindErr != nil {
				err = errors.Join(err, unwindErr)
			}
			i.callStack = i.callStack[:0]
			i.sampling = i.sampling[:0]
			if sweepErr := i.sweep(); sweepErr != nil {
				err = errors.Join(err, sweepErr)
			}
			return err
		}
		if err := i.sweep(); err != nil {
			return err
		}
		if result != nil {
			i.log.DebugContext(ctx, "top-level return", "line", stmt.Span().Start.Line)
			break
		}
	}
	return nil
}

func (i *Interpreter) sweep() error {
	before := i.collector.Disposed()
	err := i.collector.Sweep()
	if n := i.collector.Disposed() - before; n > 0 {
		i.log.DebugContext(i.ctx, "collected values", "count", n)
	}
	return err
}

// Close releases every binding, including the global scope, and collects
// the values they held.
func (i *Interpreter) Close() error {
	return errors.Join(i.scopes.Close(), i.sweep())
}

func (i *Interpreter) interrupted() error {
	return i.ctx.Err()
}
