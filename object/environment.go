package object

import "sort"

// AnsName is the reserved variable holding the last computed result.
const AnsName = "ans"

// Environment is the mutable name-to-value store that persists across
// evaluations within one session. It is owned by the caller and passed into
// every evaluation; the evaluator writes to it only through assignment.
// Environment is not safe for concurrent use.
type Environment struct {
	store map[string]float64
}

// NewEnvironment creates an Environment seeded with ans = 0.
func NewEnvironment() *Environment {
	e := &Environment{store: map[string]float64{}}
	e.store[AnsName] = 0.0
	return e
}

// Get looks up a variable by name.
func (e *Environment) Get(name string) (float64, bool) {
	v, ok := e.store[name]
	return v, ok
}

// Set binds a variable, overwriting any prior value.
func (e *Environment) Set(name string, value float64) {
	e.store[name] = value
}

// Delete removes a variable binding if present.
func (e *Environment) Delete(name string) {
	delete(e.store, name)
}

// Ans returns the last computed result.
func (e *Environment) Ans() float64 {
	return e.store[AnsName]
}

// SetAns records the last computed result.
func (e *Environment) SetAns(value float64) {
	e.store[AnsName] = value
}

// Names returns all bound variable names in sorted order.
func (e *Environment) Names() []string {
	names := make([]string, 0, len(e.store))
	for name := range e.store {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of bound variables, including ans.
func (e *Environment) Len() int {
	return len(e.store)
}

// Clear removes all bindings and reseeds ans = 0.
func (e *Environment) Clear() {
	e.store = map[string]float64{AnsName: 0.0}
}

// Snapshot returns a copy of the current bindings.
func (e *Environment) Snapshot() map[string]float64 {
	out := make(map[string]float64, len(e.store))
	for k, v := range e.store {
		out[k] = v
	}
	return out
}
