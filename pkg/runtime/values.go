package runtime

import (
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindNumber Kind = iota
	KindString
	KindBool
	KindList
	KindWave
)

func (k Kind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	case KindList:
		return "list"
	case KindWave:
		return "wave"
	default:
		return fmt.Sprintf("unknown_kind_%d", int(k))
	}
}

// Value is the shared behaviour for all runtime values.
type Value interface {
	Kind() Kind
	Truth() bool
}

//-----------------------------------------------------------------------------
// Scalars
//-----------------------------------------------------------------------------

type NumberValue struct {
	Val float64
}

func (v NumberValue) Kind() Kind  { return KindNumber }
func (v NumberValue) Truth() bool { return v.Val != 0 }

type StringValue struct {
	Val string
}

func (v StringValue) Kind() Kind  { return KindString }
func (v StringValue) Truth() bool { return v.Val != "" }

type BoolValue struct {
	Val bool
}

func (v BoolValue) Kind() Kind  { return KindBool }
func (v BoolValue) Truth() bool { return v.Val }

//-----------------------------------------------------------------------------
// Lists
//-----------------------------------------------------------------------------

// Cell is a single list slot. Every holder of a list sees writes made
// through any of its cells.
type Cell struct {
	Value Value
}

type ListValue struct {
	Cells []*Cell

	holders  int
	disposed bool
}

func (v *ListValue) Kind() Kind  { return KindList }
func (v *ListValue) Truth() bool { return len(v.Cells) > 0 }

func (v *ListValue) Len() int { return len(v.Cells) }

// At returns the cell at index, or nil when index is out of range.
func (v *ListValue) At(index int) *Cell {
	if index < 0 || index >= len(v.Cells) {
		return nil
	}
	return v.Cells[index]
}

func (v *ListValue) Retain()        { v.holders++ }
func (v *ListValue) Holders() int   { return v.holders }
func (v *ListValue) Disposed() bool { return v.disposed }

func (v *ListValue) Release() {
	if v.holders > 0 {
		v.holders--
	}
}

//-----------------------------------------------------------------------------
// Waves
//-----------------------------------------------------------------------------

// CapturedFunction is a user function a wave keeps alive for sampling.
type CapturedFunction struct {
	Name string
	Ref  *FunctionRef
}

// WaveValue is a generator: every sample re-evaluates the declaration's
// expressions against the running phase and sample clock.
type WaveValue struct {
	Decl        *ast.WaveDeclaration
	Phase       float64 // accumulated phase in radians
	SampleIndex int
	Captured    []CapturedFunction

	holders  int
	disposed bool
}

func (v *WaveValue) Kind() Kind  { return KindWave }
func (v *WaveValue) Truth() bool { return true }

func (v *WaveValue) Retain()        { v.holders++ }
func (v *WaveValue) Holders() int   { return v.holders }
func (v *WaveValue) Disposed() bool { return v.disposed }

func (v *WaveValue) Release() {
	if v.holders > 0 {
		v.holders--
	}
}
