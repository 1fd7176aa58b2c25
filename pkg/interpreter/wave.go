package interpreter

import (
	"math"

	"github.com/Zirconova/azurite/pkg/ast"
	"github.com/Zirconova/azurite/pkg/runtime"
	"github.com/Zirconova/azurite/pkg/wav"
)

const tau = 2 * math.Pi

// evaluateWaveDeclaration builds a wave and captures the user functions its
// expressions call, so they stay alive for as long as the wave does.
func (i *Interpreter) evaluateWaveDeclaration(decl *ast.WaveDeclaration) (runtime.Value, error) {
	if decl.Waveform == nil || decl.Freq == nil || decl.Phase == nil || decl.Vol == nil || decl.Pan == nil {
		decl = ast.NewWaveDeclaration(decl.Waveform, decl.Freq, decl.Phase, decl.Vol, decl.Pan)
	}
	return i.collector.NewWave(decl, i.captureFunctions(decl)), nil
}

func (i *Interpreter) captureFunctions(decl *ast.WaveDeclaration) []runtime.CapturedFunction {
	var captured []runtime.CapturedFunction
	seen := make(map[string]bool)
	ast.Inspect(decl, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok || call.Callee == nil {
			return true
		}
		name := call.Callee.Name
		if seen[name] || IsBuiltin(name) {
			return true
		}
		seen[name] = true
		if ref, err := i.lookupFunc(name); err == nil {
			captured = append(captured, runtime.CapturedFunction{Name: name, Ref: ref})
		}
		return true
	})
	return captured
}

// sampleAndAdvance produces the wave's next sample:
//
//	x = sample index; evaluate freq, phase and vol
//	x = phase + phase offset; evaluate waveform
//	sample = waveform * vol
//
// then advances the sample index and the phase by 2π·freq/SampleRate.
func (i *Interpreter) sampleAndAdvance(wave *runtime.WaveValue, at ast.Node) (float64, error) {
	if wave.Disposed() {
		return 0, i.errorf(at, "wave has been released")
	}
	i.scopes.Push()
	i.sampling = append(i.sampling, wave)
	sample, err := i.sampleInScope(wave)
	i.sampling = i.sampling[:len(i.sampling)-1]
	return sample, i.popScope(err)
}

// lookupFunc resolves name through the scope chain first. Functions that
// are no longer bound anywhere still resolve while a wave that captured
// them is being sampled, innermost wave first.
func (i *Interpreter) lookupFunc(name string) (*runtime.FunctionRef, error) {
	ref, err := i.scopes.LookupFunc(name)
	if err == nil {
		return ref, nil
	}
	for idx := len(i.sampling) - 1; idx >= 0; idx-- {
		for _, fn := range i.sampling[idx].Captured {
			if fn.Name == name {
				return fn.Ref, nil
			}
		}
	}
	return nil, err
}

func (i *Interpreter) sampleInScope(wave *runtime.WaveValue) (float64, error) {
	decl := wave.Decl
	i.scopes.DefineLocal("x", runtime.NumberValue{Val: float64(wave.SampleIndex)})
	freq, err := i.waveNumber(decl.Freq)
	if err != nil {
		return 0, err
	}
	phaseOffset, err := i.waveNumber(decl.Phase)
	if err != nil {
		return 0, err
	}
	vol, err := i.waveNumber(decl.Vol)
	if err != nil {
		return 0, err
	}
	i.scopes.DefineLocal("x", runtime.NumberValue{Val: wave.Phase + phaseOffset})
	height, err := i.waveNumber(decl.Waveform)
	if err != nil {
		return 0, err
	}
	wave.SampleIndex++
	wave.Phase += tau * freq / wav.SampleRate
	return height * vol, nil
}

func (i *Interpreter) waveNumber(expr ast.Expression) (float64, error) {
	value, err := i.evaluateExpression(expr)
	if err != nil {
		return 0, err
	}
	num, ok := value.(runtime.NumberValue)
	if !ok {
		return 0, i.errorf(expr, "all wave functions must evaluate to numbers")
	}
	return num.Val, nil
}
