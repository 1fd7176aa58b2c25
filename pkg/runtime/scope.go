package runtime

// ScopeStack is the dynamic scope chain. The bottom frame is the global
// scope; lookups search from the top frame down, so a called function sees
// its caller's bindings.
type ScopeStack struct {
	frames    []*Environment
	collector *Collector
}

// NewScopeStack creates a stack holding only the global scope.
func NewScopeStack(collector *Collector) *ScopeStack {
	if collector == nil {
		collector = NewCollector()
	}
	return &ScopeStack{
		frames:    []*Environment{NewEnvironment(collector)},
		collector: collector,
	}
}

func (s *ScopeStack) Depth() int { return len(s.frames) }

func (s *ScopeStack) Top() *Environment { return s.frames[len(s.frames)-1] }

// Push opens a new innermost scope.
func (s *ScopeStack) Push() *Environment {
	env := NewEnvironment(s.collector)
	s.frames = append(s.frames, env)
	return env
}

// Pop closes the innermost scope. The global scope is never popped.
func (s *ScopeStack) Pop() error {
	if len(s.frames) <= 1 {
		return nil
	}
	top := s.frames[len(s.frames)-1]
	s.frames = s.frames[:len(s.frames)-1]
	return top.Close()
}

// Unwind pops scopes until depth frames remain.
func (s *ScopeStack) Unwind(depth int) error {
	var first error
	for len(s.frames) > depth && len(s.frames) > 1 {
		if err := s.Pop(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Close releases every frame including the global scope.
func (s *ScopeStack) Close() error {
	first := s.Unwind(1)
	if err := s.frames[0].Close(); err != nil && first == nil {
		first = err
	}
	return first
}

func (s *ScopeStack) LookupVar(name string) (Value, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i].lookupVar(name); ok {
			return v, nil
		}
	}
	return nil, &LookupError{Namespace: "variable", Name: name}
}

func (s *ScopeStack) LookupFunc(name string) (*FunctionRef, error) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if f, ok := s.frames[i].lookupFunc(name); ok {
			return f, nil
		}
	}
	return nil, &LookupError{Namespace: "function", Name: name}
}

// SetVar rebinds the innermost existing binding of name, or creates one in
// the top scope.
func (s *ScopeStack) SetVar(name string, value Value) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].lookupVar(name); ok {
			s.frames[i].Define(name, value)
			return
		}
	}
	s.Top().Define(name, value)
}

// SetFunc follows the same rule as SetVar for the function namespace.
func (s *ScopeStack) SetFunc(name string, ref *FunctionRef) error {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i].lookupFunc(name); ok {
			return s.frames[i].DefineFunc(name, ref)
		}
	}
	return s.Top().DefineFunc(name, ref)
}

// DefineLocal binds name in the top scope, shadowing outer bindings.
func (s *ScopeStack) DefineLocal(name string, value Value) {
	s.Top().Define(name, value)
}
