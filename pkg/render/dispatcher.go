package render

import (
	"sort"
	"sync"

	"github.com/arthur-debert/mdxaml/pkg/ast"
	"github.com/arthur-debert/mdxaml/pkg/errors"
)

// Handler renders one node kind through the renderer's writer
type Handler func(r *Renderer, n ast.Node) error

// Dispatcher maps node kinds to handlers. A kind without its own handler
// uses the handler of its nearest registered ancestor kind; a kind with
// neither is skipped together with its subtree.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[ast.Kind]Handler
}

// NewDispatcher returns a dispatcher with no handlers
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[ast.Kind]Handler)}
}

// Set registers h for k, replacing any previous handler. The abstract
// Block and Inline roots cannot receive handlers.
func (d *Dispatcher) Set(k ast.Kind, h Handler) error {
	if k == ast.KindNone || k.Parent() == ast.KindNone {
		return errors.Newf(errors.ErrInvalidInput, "kind %s cannot have a handler", k)
	}
	if h == nil {
		return errors.Newf(errors.ErrInvalidInput, "nil handler for kind %s", k)
	}
	d.mu.Lock()
	d.handlers[k] = h
	d.mu.Unlock()
	return nil
}

// Remove drops the handler registered for exactly k
func (d *Dispatcher) Remove(k ast.Kind) {
	d.mu.Lock()
	delete(d.handlers, k)
	d.mu.Unlock()
}

// Lookup finds the handler for k, trying k and then its ancestors. It
// returns the kind the handler was registered for.
func (d *Dispatcher) Lookup(k ast.Kind) (Handler, ast.Kind, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	for _, cur := range k.Ancestry() {
		if h, ok := d.handlers[cur]; ok {
			return h, cur, true
		}
	}
	return nil, ast.KindNone, false
}

// Kinds lists the kinds with a handler, by name
func (d *Dispatcher) Kinds() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for k := range d.handlers {
		names = append(names, k.String())
	}
	sort.Strings(names)
	return names
}

// Clone copies the handler table
func (d *Dispatcher) Clone() *Dispatcher {
	d.mu.RLock()
	defer d.mu.RUnlock()

	c := NewDispatcher()
	for k, h := range d.handlers {
		c.handlers[k] = h
	}
	return c
}
