package automaton

import (
	"container/list"
	"iter"

	"github.com/ha1tch/dfa-toolkit/pkg/geometry"
)

// Element is anything kept in the registry: states and composites.
type Element interface {
	HitAt(x, y float64) bool
	Draw(s geometry.Surface) error
	SetHighlight(b bool)
	Highlighted() bool
}

// Registry keeps drawable elements in draw order, back to front. Hit tests
// walk it the other way so the most recently drawn element wins.
type Registry struct {
	order *list.List
	nodes map[Element]*list.Element
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		order: list.New(),
		nodes: make(map[Element]*list.Element),
	}
}

// Add appends e at the front of the drawing (end of the list). Adding an
// element twice is a no-op.
func (r *Registry) Add(e Element) {
	if _, ok := r.nodes[e]; ok {
		return
	}
	r.nodes[e] = r.order.PushBack(e)
}

// Remove deletes e and reports whether it was present.
func (r *Registry) Remove(e Element) bool {
	n, ok := r.nodes[e]
	if !ok {
		return false
	}
	r.order.Remove(n)
	delete(r.nodes, e)
	return true
}

// Contains reports whether e is registered.
func (r *Registry) Contains(e Element) bool {
	_, ok := r.nodes[e]
	return ok
}

// Len returns the number of registered elements.
func (r *Registry) Len() int { return r.order.Len() }

// BringToFront moves e to the end of the draw order.
func (r *Registry) BringToFront(e Element) bool {
	n, ok := r.nodes[e]
	if !ok {
		return false
	}
	r.order.MoveToBack(n)
	return true
}

// Elements returns the elements in draw order.
func (r *Registry) Elements() []Element {
	out := make([]Element, 0, r.order.Len())
	for n := r.order.Front(); n != nil; n = n.Next() {
		out = append(out, n.Value.(Element))
	}
	return out
}

// Reversed yields the elements in hit-test order, front-most first.
func (r *Registry) Reversed() iter.Seq[Element] {
	return func(yield func(Element) bool) {
		for n := r.order.Back(); n != nil; n = n.Prev() {
			if !yield(n.Value.(Element)) {
				return
			}
		}
	}
}

// NthHit returns the n-th (0-based) element, front-most first, whose hit
// test accepts (x, y). It returns nil if fewer elements are hit.
func (r *Registry) NthHit(n int, x, y float64) Element {
	count := 0
	for e := range r.Reversed() {
		if !e.HitAt(x, y) {
			continue
		}
		if count == n {
			return e
		}
		count++
	}
	return nil
}

// Clear removes every element.
func (r *Registry) Clear() {
	r.order.Init()
	clear(r.nodes)
}
