package interpreter

import (
	"context"
	"math"
	"testing"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
	"github.com/Zirconova/azurite/pkg/wav"
)

func lookupWave(t *testing.T, interp *Interpreter, name string) *runtime.WaveValue {
	t.Helper()
	value, err := interp.Scopes().LookupVar(name)
	if err != nil {
		t.Fatalf("lookup %s: %v", name, err)
	}
	wave, ok := value.(*runtime.WaveValue)
	if !ok {
		t.Fatalf("expected %s bound to a wave, got %#v", name, value)
	}
	return wave
}

func TestWaveSamplingIsDeterministic(t *testing.T) {
	interp, _ := newTestInterpreter()
	prog := ast.Prog(ast.Assign(ast.ID("w"), ast.Wave(ast.WaveSpec{Freq: ast.Num(440)})))
	if err := interp.EvaluateProgram(context.Background(), prog); err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	wave := lookupWave(t, interp, "w")
	step := 2 * math.Pi * 440 / 44100

	for n := 1; n <= 3; n++ {
		sample, err := interp.sampleAndAdvance(wave, nil)
		if err != nil {
			t.Fatalf("sample %d: %v", n, err)
		}
		if n == 1 && sample != 0 {
			t.Fatalf("expected first sample 0, got %v", sample)
		}
		if n == 2 && math.Abs(sample-math.Sin(step)) > 1e-12 {
			t.Fatalf("expected second sample sin(step), got %v", sample)
		}
		if wave.SampleIndex != n {
			t.Fatalf("expected sample index %d, got %d", n, wave.SampleIndex)
		}
		if math.Abs(wave.Phase-float64(n)*step) > 1e-12 {
			t.Fatalf("expected phase %v after %d samples, got %v", float64(n)*step, n, wave.Phase)
		}
	}
	if interp.Scopes().Depth() != 1 {
		t.Fatalf("sampling must pop its scope, depth %d", interp.Scopes().Depth())
	}
}

func TestWaveExpressionsSeeSampleIndexAndPhase(t *testing.T) {
	source := `w = Wave(waveform: x, freq: 44100 / (2 * 3.14159265358979), vol: 0.01, phase: x * 10)
write(w, 3)`
	interp, _ := mustRun(t, source)
	// phase offset is evaluated with x = sample index, waveform with
	// x = phase + offset; a freq of SampleRate/2π advances the phase by 1.
	want := []int16{
		wav.ToPCM16((0 + 0) * 0.01),
		wav.ToPCM16((1 + 10) * 0.01),
		wav.ToPCM16((2 + 20) * 0.01),
	}
	got := interp.Buffer().Samples()
	if len(got) != 3 {
		t.Fatalf("expected 3 samples, got %d", len(got))
	}
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("sample %d = %d, want %d", idx, got[idx], want[idx])
		}
	}
}

func TestWriteAppendsPCM(t *testing.T) {
	interp, _ := mustRun(t, "w = Wave(freq: 440, vol: 0.5)\nwrite(w, 100)\nwrite(w, 20)")
	samples := interp.Buffer().Samples()
	if len(samples) != 120 {
		t.Fatalf("expected 120 samples, got %d", len(samples))
	}
	step := 2 * math.Pi * 440 / 44100
	if samples[0] != 0 {
		t.Fatalf("expected silent first sample, got %d", samples[0])
	}
	if want := wav.ToPCM16(0.5 * math.Sin(110*step)); math.Abs(float64(samples[110]-want)) > 1 {
		t.Fatalf("sample 110 = %d, want %d", samples[110], want)
	}
	if wave := lookupWave(t, interp, "w"); wave.SampleIndex != 120 {
		t.Fatalf("expected wave advanced 120 samples, got %d", wave.SampleIndex)
	}
}

func TestWriteCapacityExceeded(t *testing.T) {
	interp, _ := newTestInterpreter(WithCapacity(5))
	err := runSource(t, interp, "w = Wave(freq: 1)\nwrite(w, 6)")
	rtErr, ok := err.(*RuntimeError)
	if !ok || rtErr.Message != "wave buffer capacity exceeded (5 samples)" {
		t.Fatalf("unexpected error %v", err)
	}
	if interp.Buffer().Len() != 5 {
		t.Fatalf("expected buffer filled to capacity, got %d", interp.Buffer().Len())
	}
}

func TestIdentifierStatementConsumesSample(t *testing.T) {
	interp, _ := mustRun(t, "w = Wave(freq: 440)\nw\nw")
	if wave := lookupWave(t, interp, "w"); wave.SampleIndex != 2 {
		t.Fatalf("expected two samples consumed, got %d", wave.SampleIndex)
	}
}

func TestListElementWaveIsNotSampled(t *testing.T) {
	interp, _ := mustRun(t, "ws = [Wave(freq: 440), Wave(freq: 220)]\nwrite(ws[1], 4)")
	if interp.Buffer().Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", interp.Buffer().Len())
	}
}

func TestWaveCallsUserFunctions(t *testing.T) {
	source := `func env(t) {
  return 1 - t / 4
}
w = Wave(waveform: 1, vol: env(x))
write(w, 4)`
	interp, _ := mustRun(t, source)
	want := []int16{32767, 24576, 16384, 8192}
	got := interp.Buffer().Samples()
	for idx := range want {
		if got[idx] != want[idx] {
			t.Fatalf("sample %d = %d, want %d", idx, got[idx], want[idx])
		}
	}
}

func TestSharedFunctionReferencesReturnToZero(t *testing.T) {
	tracker := runtime.NewRefTracker()
	source := `func env(t) {
  return 0.5
}
func play() {
  a = Wave(freq: 440, vol: env(x))
  b = Wave(freq: 220, vol: env(x))
  write(a, 10)
  write(b, 10)
}
play()`
	interp, _ := mustRun(t, source, WithRefTracker(tracker))

	refs := tracker.Refs()
	if len(refs) != 2 {
		t.Fatalf("expected 2 tracked functions, got %d", len(refs))
	}
	env := refs[0]
	if env.Name != "env" {
		t.Fatalf("expected env first, got %s", env.Name)
	}
	if env.Count() != 1 {
		t.Fatalf("expected only the global binding after play returns, got %d", env.Count())
	}

	if err := interp.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	for _, ref := range refs {
		if ref.Count() != 0 || !ref.Freed() {
			t.Fatalf("expected %s freed, count=%d", ref.Name, ref.Count())
		}
		if frees := tracker.FreeCount(ref); frees != 1 {
			t.Fatalf("expected %s freed exactly once, got %d", ref.Name, frees)
		}
	}
	if tracker.Live() != 0 {
		t.Fatalf("expected no live functions, got %d", tracker.Live())
	}
}

func TestWaveCaptureKeepsCountDuringLifetime(t *testing.T) {
	tracker := runtime.NewRefTracker()
	source := `func env(t) {
  return 1
}
a = Wave(vol: env(x))
b = Wave(vol: env(x))
write(a, 2)`
	_, _ = mustRun(t, source, WithRefTracker(tracker))
	env := tracker.Refs()[0]
	if env.Count() != 3 {
		t.Fatalf("expected binding plus two captures, got %d", env.Count())
	}
}

func TestTemporaryWaveIsCollected(t *testing.T) {
	tracker := runtime.NewRefTracker()
	source := `func env(t) {
  return 1
}
write(Wave(freq: 10, vol: env(x)), 3)`
	interp, _ := mustRun(t, source, WithRefTracker(tracker))
	env := tracker.Refs()[0]
	if env.Count() != 1 {
		t.Fatalf("expected temporary wave released, count=%d", env.Count())
	}
	if interp.Collector().Disposed() == 0 {
		t.Fatalf("expected the collector to dispose the temporary wave")
	}
}

func TestRedefinedFunctionStaysAliveWhileCaptured(t *testing.T) {
	tracker := runtime.NewRefTracker()
	source := `func f() {
  return 1
}
w = Wave(vol: f())
func f() {
  return 2
}
print(f())`
	_, out := mustRun(t, source, WithRefTracker(tracker))
	if out != "2\n" {
		t.Fatalf("unexpected output %q", out)
	}
	refs := tracker.Refs()
	if refs[0].Freed() || refs[0].Count() != 1 {
		t.Fatalf("old declaration must stay alive while the wave holds it, count=%d", refs[0].Count())
	}
}

func TestFunctionRedefinedWhileSamplingReplacesBinding(t *testing.T) {
	source := `func f(t) {
  func f(t) {
    return 2
  }
  return 1
}
w = Wave(waveform: 1, vol: f(x))
write(w, 2)
print(f(0))`
	interp, out := mustRun(t, source)
	if out != "2\n" {
		t.Fatalf("expected the global f replaced, got %q", out)
	}
	if _, err := interp.Scopes().LookupFunc("f"); err != nil {
		t.Fatalf("lookup f: %v", err)
	}
}

func TestEscapedWaveCallsCapturedFunction(t *testing.T) {
	tracker := runtime.NewRefTracker()
	source := `func make() {
  func env(t) {
    return 0.5
  }
  return Wave(waveform: 1, vol: env(x))
}
w = make()
write(w, 2)`
	interp, _ := mustRun(t, source, WithRefTracker(tracker))
	if _, err := interp.Scopes().LookupFunc("env"); err == nil {
		t.Fatalf("env must not leak out of make")
	}
	got := interp.Buffer().Samples()
	if len(got) != 2 || got[0] != 16384 || got[1] != 16384 {
		t.Fatalf("unexpected samples %v", got)
	}
	var env *runtime.FunctionRef
	for _, ref := range tracker.Refs() {
		if ref.Name == "env" {
			env = ref
		}
	}
	if env == nil || env.Count() != 1 || env.Freed() {
		t.Fatalf("expected env held only by the wave, got %+v", env)
	}
}
