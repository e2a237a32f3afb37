package scene

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
)

// Handle identifies a primitive in a Graph. The zero handle never refers
// to a primitive.
type Handle int

// Graph is an in-memory scene graph. Primitives are drawn in the order
// they have been added; replacing a primitive keeps its position.
//
// Graph is safe for concurrent use, as presenters may read it from a
// different goroutine than the one mutating it.
type Graph struct {
	mu    sync.RWMutex
	items *treemap.Map // Handle -> Primitive
	last  Handle
}

// NewGraph creates an empty scene graph.
func NewGraph() *Graph {
	return &Graph{
		items: treemap.NewWith(byHandle),
	}
}

func byHandle(a, b interface{}) int {
	return int(a.(Handle)) - int(b.(Handle))
}

// Draw adds a primitive on top of the scene and returns its handle.
func (g *Graph) Draw(p Primitive) Handle {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.last++
	g.items.Put(g.last, p)
	tracer().Debugf("draw %s #%d", p.Kind(), g.last)
	return g.last
}

// Update replaces the primitive for h. It returns false if h is unknown.
func (g *Graph) Update(h Handle, p Primitive) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, found := g.items.Get(h); !found {
		return false
	}
	g.items.Put(h, p)
	return true
}

// Remove deletes the primitive for h. Removing an unknown handle is a no-op
// returning false.
func (g *Graph) Remove(h Handle) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, found := g.items.Get(h); !found {
		return false
	}
	g.items.Remove(h)
	tracer().Debugf("remove #%d", h)
	return true
}

// Get returns the primitive for h.
func (g *Graph) Get(h Handle) (Primitive, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	p, found := g.items.Get(h)
	if !found {
		return nil, false
	}
	return p.(Primitive), true
}

// Len is the number of primitives in the scene, groups counting as one.
func (g *Graph) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.items.Size()
}

// Each calls fn for every primitive in draw order. fn must not mutate g.
func (g *Graph) Each(fn func(h Handle, p Primitive)) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	it := g.items.Iterator()
	for it.Next() {
		fn(it.Key().(Handle), it.Value().(Primitive))
	}
}

// Snapshot returns the primitives in draw order.
func (g *Graph) Snapshot() []Primitive {
	prims := make([]Primitive, 0, g.Len())
	g.Each(func(_ Handle, p Primitive) {
		prims = append(prims, p)
	})
	return prims
}

// Clear removes every primitive. Handles are never reused.
func (g *Graph) Clear() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.items.Clear()
}
