package runtime

import (
	"errors"
	"fmt"
	"sort"
)

// LookupError reports a name with no binding on the scope stack.
type LookupError struct {
	Namespace string // "variable" or "function"
	Name      string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("undeclared %s %s", e.Namespace, e.Name)
}

// Environment is a single scope frame with separate variable and function
// namespaces. It owns one holder count for every shared value it binds and
// one owner count for every function it binds.
type Environment struct {
	vars      map[string]Value
	funcs     map[string]*FunctionRef
	collector *Collector
	closed    bool
}

// NewEnvironment creates an empty scope whose value accounting goes
// through collector.
func NewEnvironment(collector *Collector) *Environment {
	if collector == nil {
		collector = NewCollector()
	}
	return &Environment{
		vars:      make(map[string]Value),
		funcs:     make(map[string]*FunctionRef),
		collector: collector,
	}
}

func (e *Environment) lookupVar(name string) (Value, bool) {
	v, ok := e.vars[name]
	return v, ok
}

func (e *Environment) lookupFunc(name string) (*FunctionRef, bool) {
	f, ok := e.funcs[name]
	return f, ok
}

// Define binds name in this scope, replacing any previous binding here.
func (e *Environment) Define(name string, value Value) {
	e.collector.Hold(value)
	old, had := e.vars[name]
	e.vars[name] = value
	if had {
		e.collector.Drop(old)
	}
}

// DefineFunc binds a function in this scope. A displaced reference is
// released once.
func (e *Environment) DefineFunc(name string, ref *FunctionRef) error {
	ref.Retain()
	old, had := e.funcs[name]
	e.funcs[name] = ref
	if had {
		if err := old.Release(); err != nil {
			return fmt.Errorf("rebinding function %s: %w", name, err)
		}
	}
	return nil
}

// FuncKeys returns the function names in sorted order.
func (e *Environment) FuncKeys() []string {
	keys := make([]string, 0, len(e.funcs))
	for k := range e.funcs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close drops every binding. Closing twice is a no-op.
func (e *Environment) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	for name, v := range e.vars {
		e.collector.Drop(v)
		delete(e.vars, name)
	}
	var errs []error
	for _, name := range e.FuncKeys() {
		if err := e.funcs[name].Release(); err != nil {
			errs = append(errs, fmt.Errorf("releasing function %s: %w", name, err))
		}
		delete(e.funcs, name)
	}
	return errors.Join(errs...)
}
