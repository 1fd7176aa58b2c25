package runtime

import (
	"errors"
	"fmt"

	"github.com/Zirconova/azurite/pkg/ast"
)

// Shared is implemented by values that are held by reference: lists and
// waves. Holders counts the bindings (variables, parameters, list cells)
// currently pointing at the value.
type Shared interface {
	Value
	Retain()
	Release()
	Holders() int
	Disposed() bool
}

// Collector owns the holder accounting for shared values. Values whose
// holders drop to zero are not disposed immediately, since a function
// result is briefly unheld between its return and its binding; they are
// queued and disposed by Sweep once nothing holds them.
type Collector struct {
	pending  []Shared
	disposed int
}

func NewCollector() *Collector {
	return &Collector{}
}

// Hold records a new holder of v. Scalars are ignored.
func (c *Collector) Hold(v Value) {
	if s, ok := v.(Shared); ok {
		s.Retain()
	}
}

// Drop removes a holder of v. It is queued for the next sweep only once
// nothing holds it.
func (c *Collector) Drop(v Value) {
	if s, ok := v.(Shared); ok {
		s.Release()
		if s.Holders() == 0 {
			c.pending = append(c.pending, s)
		}
	}
}

// Track queues a freshly created value so it is disposed if never bound.
func (c *Collector) Track(v Value) {
	if s, ok := v.(Shared); ok {
		c.pending = append(c.pending, s)
	}
}

// Assign stores v into cell, holding the new value before dropping the old.
func (c *Collector) Assign(cell *Cell, v Value) {
	c.Hold(v)
	old := cell.Value
	cell.Value = v
	if old != nil {
		c.Drop(old)
	}
}

// NewList builds a list whose cells hold values.
func (c *Collector) NewList(values []Value) *ListValue {
	list := &ListValue{Cells: make([]*Cell, len(values))}
	for i, v := range values {
		c.Hold(v)
		list.Cells[i] = &Cell{Value: v}
	}
	c.Track(list)
	return list
}

// NewWave builds a wave over decl. Each captured function is retained
// until the wave is disposed.
func (c *Collector) NewWave(decl *ast.WaveDeclaration, captured []CapturedFunction) *WaveValue {
	for _, fn := range captured {
		fn.Ref.Retain()
	}
	wave := &WaveValue{Decl: decl, Captured: captured}
	c.Track(wave)
	return wave
}

// Sweep disposes every queued value that no binding holds. Disposing a list
// drops its elements, so the queue is drained until it stays empty.
func (c *Collector) Sweep() error {
	var errs []error
	for len(c.pending) > 0 {
		batch := c.pending
		c.pending = nil
		for _, s := range batch {
			if s.Disposed() || s.Holders() > 0 {
				continue
			}
			if err := c.dispose(s); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Pending reports how many values are queued for the next sweep.
func (c *Collector) Pending() int { return len(c.pending) }

// Disposed reports how many shared values have been disposed so far.
func (c *Collector) Disposed() int { return c.disposed }

func (c *Collector) dispose(s Shared) error {
	c.disposed++
	switch v := s.(type) {
	case *ListValue:
		v.disposed = true
		for _, cell := range v.Cells {
			if cell.Value != nil {
				c.Drop(cell.Value)
			}
		}
		return nil
	case *WaveValue:
		v.disposed = true
		var errs []error
		for _, fn := range v.Captured {
			if err := fn.Ref.Release(); err != nil {
				errs = append(errs, fmt.Errorf("wave capture %s: %w", fn.Name, err))
			}
		}
		v.Captured = nil
		return errors.Join(errs...)
	default:
		return fmt.Errorf("collector: cannot dispose %s value", s.Kind())
	}
}
