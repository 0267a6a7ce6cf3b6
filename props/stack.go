package props

import (
	"maps"
	"reflect"
	"slices"
)

// Reduce merges layers left to right; for every key the last layer that
// sets it wins. Nil values are treated as unset.
func Reduce(layers ...Properties) Properties {
	out := make(Properties)
	for _, layer := range layers {
		for k, v := range layer {
			if v != nil {
				out[k] = v
			}
		}
	}
	return out
}

// Stack is the ordered set of property layers of one element together
// with its last resolved snapshot.
//
// Stack is not safe for concurrent use; it belongs to the frame loop.
type Stack struct {
	layers   [NumLayers]Properties
	resolved Properties
	cond     Conditions
	dirty    bool
}

// NewStack creates a stack whose base layer is base.
func NewStack(base Properties) *Stack {
	s := &Stack{resolved: Properties{}, dirty: true}
	s.layers[LayerBase] = base.Clone()
	return s
}

// Set replaces layer l. A nil or empty map clears it.
func (s *Stack) Set(l Layer, p Properties) {
	if len(p) == 0 {
		p = nil
	}
	s.layers[l] = p.Clone()
	s.dirty = true
}

// Merge adds the keys of p to layer l, keeping other keys of the layer.
func (s *Stack) Merge(l Layer, p Properties) {
	if len(p) == 0 {
		return
	}
	if s.layers[l] == nil {
		s.layers[l] = make(Properties, len(p))
	}
	maps.Copy(s.layers[l], p)
	s.dirty = true
}

// SetProperty sets one key of layer l. A nil value removes the key.
func (s *Stack) SetProperty(l Layer, key string, value any) {
	if value == nil {
		if _, ok := s.layers[l][key]; ok {
			delete(s.layers[l], key)
			s.dirty = true
		}
		return
	}
	if s.layers[l] == nil {
		s.layers[l] = make(Properties)
	}
	s.layers[l][key] = value
	s.dirty = true
}

// Clear empties every layer. The resolved snapshot is kept, so the next
// Update reports only the keys whose effective value changed.
func (s *Stack) Clear() {
	s.layers = [NumLayers]Properties{}
	s.dirty = true
}

// Layer returns a copy of layer l.
func (s *Stack) Layer(l Layer) Properties {
	return s.layers[l].Clone()
}

// Dirty reports whether a layer changed since the last Update.
func (s *Stack) Dirty() bool {
	return s.dirty
}

// Conditions returns the conditions of the last Update.
func (s *Stack) Conditions() Conditions {
	return s.cond
}

// Resolved returns the snapshot computed by the last Update. The map must
// not be modified.
func (s *Stack) Resolved() Properties {
	return s.resolved
}

// Resolve computes the effective properties under cond without changing
// the stored snapshot.
func (s *Stack) Resolve(cond Conditions) Properties {
	active := make([]Properties, 0, NumLayers)
	for l := range NumLayers {
		if p := s.layers[l]; len(p) > 0 && cond.IsActive(Layer(l)) {
			active = append(active, p)
		}
	}
	return Reduce(active...)
}

// Affects reports whether switching from the stored conditions to cond
// toggles a non-empty layer, i.e. whether Update(cond) could change the
// snapshot. Layer edits are reported by Dirty.
func (s *Stack) Affects(cond Conditions) bool {
	for l := range NumLayers {
		if len(s.layers[l]) > 0 && cond.IsActive(Layer(l)) != s.cond.IsActive(Layer(l)) {
			return true
		}
	}
	return false
}

// Update re-resolves the stack under cond, stores the result and returns
// the sorted keys whose effective value changed, including keys that
// became unset.
func (s *Stack) Update(cond Conditions) []string {
	if !s.dirty && !s.Affects(cond) {
		s.cond = cond
		return nil
	}
	next := s.Resolve(cond)
	changed := Diff(s.resolved, next)
	s.resolved = next
	s.cond = cond
	s.dirty = false
	return changed
}

// Diff returns the sorted keys whose values differ between a and b.
func Diff(a, b Properties) []string {
	var keys []string
	for k, av := range a {
		bv, ok := b[k]
		if !ok || !reflect.DeepEqual(av, bv) {
			keys = append(keys, k)
		}
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
