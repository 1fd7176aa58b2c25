package runtime

import (
	"errors"

	"github.com/Zirconova/azurite/pkg/ast"
)

// ErrDoubleRelease is returned when a freed FunctionRef is released again.
var ErrDoubleRelease = errors.New("function reference released after it was freed")

// FunctionRef is a shared handle to a user function declaration. Environment
// bindings and waves that captured the function each own one count. The
// declaration is freed exactly once, when the last owner releases it.
type FunctionRef struct {
	Name string
	Decl *ast.FunctionDeclaration

	// OnFree runs once when the count reaches zero.
	OnFree func(*FunctionRef)

	count int
	freed bool
}

func NewFunctionRef(decl *ast.FunctionDeclaration) *FunctionRef {
	ref := &FunctionRef{Decl: decl}
	if decl != nil && decl.Name != nil {
		ref.Name = decl.Name.Name
	}
	return ref
}

func (f *FunctionRef) Retain() {
	f.count++
}

func (f *FunctionRef) Release() error {
	if f.freed || f.count == 0 {
		return ErrDoubleRelease
	}
	f.count--
	if f.count == 0 {
		f.freed = true
		if f.OnFree != nil {
			f.OnFree(f)
		}
	}
	return nil
}

func (f *FunctionRef) Count() int  { return f.count }
func (f *FunctionRef) Freed() bool { return f.freed }

// RefTracker records every FunctionRef handed to it and how often each was
// freed.
type RefTracker struct {
	refs  []*FunctionRef
	frees map[*FunctionRef]int
}

func NewRefTracker() *RefTracker {
	return &RefTracker{frees: make(map[*FunctionRef]int)}
}

// Track installs the tracker's OnFree hook on ref, chaining any existing hook.
func (t *RefTracker) Track(ref *FunctionRef) {
	t.refs = append(t.refs, ref)
	prev := ref.OnFree
	ref.OnFree = func(r *FunctionRef) {
		t.frees[r]++
		if prev != nil {
			prev(r)
		}
	}
}

// Refs returns the tracked references in creation order.
func (t *RefTracker) Refs() []*FunctionRef {
	return append([]*FunctionRef(nil), t.refs...)
}

// Live counts tracked references that have not been freed.
func (t *RefTracker) Live() int {
	live := 0
	for _, ref := range t.refs {
		if !ref.Freed() {
			live++
		}
	}
	return live
}

// FreeCount reports how many times ref was freed.
func (t *RefTracker) FreeCount(ref *FunctionRef) int {
	return t.frees[ref]
}
