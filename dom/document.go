/*
Copyright 2024 Robert Terhaar <robbyt@robbyt.net>

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package dom

import (
	"fmt"
	"slices"
	"sync"
)

// listenerKey identifies the listeners of one event type on one node.
type listenerKey struct {
	node  *Node
	event string
}

// Document owns a tree of nodes rooted at <body> and the listeners attached
// to them. It is safe for concurrent use. Listeners are invoked without the
// document lock held, so they may modify the document.
type Document struct {
	mu        sync.RWMutex
	body      *Node
	ids       map[string]*Node
	owned     map[*Node]struct{}
	listeners map[listenerKey][]Listener
}

// NewDocument returns an empty document containing only a body element.
func NewDocument() *Document {
	body := &Node{tag: "body"}
	return &Document{
		body:      body,
		ids:       make(map[string]*Node),
		owned:     map[*Node]struct{}{body: {}},
		listeners: make(map[listenerKey][]Listener),
	}
}

// node resolves an Element handle to a node owned by this document.
// Must be called while holding d.mu.
func (d *Document) node(el Element) (*Node, error) {
	n, ok := el.(*Node)
	if !ok || n == nil {
		return nil, fmt.Errorf("%w: %T", ErrForeignElement, el)
	}
	if _, ok := d.owned[n]; !ok {
		return nil, fmt.Errorf("%w: <%s id=%q>", ErrForeignElement, n.tag, n.id)
	}
	return n, nil
}

// CreateElement appends a new element under parent. id may be empty; classes
// is a class attribute string and may hold several space separated tokens.
func (d *Document) CreateElement(parent Element, tag, id, classes string) (*Node, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	p, err := d.node(parent)
	if err != nil {
		return nil, err
	}
	if id != "" {
		if _, exists := d.ids[id]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, id)
		}
	}

	n := &Node{
		id:      id,
		tag:     tag,
		classes: splitClasses(classes),
		parent:  p,
	}
	p.children = append(p.children, n)
	d.owned[n] = struct{}{}
	if id != "" {
		d.ids[id] = n
	}
	return n, nil
}

// SetText replaces the text content of el.
func (d *Document) SetText(el Element, text string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(el)
	if err != nil {
		return err
	}
	n.text = text
	return nil
}

// Children returns the direct children of el in document order.
func (d *Document) Children(el Element) []Element {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.node(el)
	if err != nil {
		return nil
	}
	out := make([]Element, 0, len(n.children))
	for _, c := range n.children {
		out = append(out, c)
	}
	return out
}

// Body returns the document body.
func (d *Document) Body() (Element, error) {
	return d.body, nil
}

// ElementByID returns the element with the given id.
func (d *Document) ElementByID(id string) (Element, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, ok := d.ids[id]
	if !ok {
		return nil, fmt.Errorf("%w: no element with id %q", ErrElementNotFound, id)
	}
	return n, nil
}

// ElementByClass returns the first descendant of parent, in document order,
// that carries class.
func (d *Document) ElementByClass(parent Element, class string) (Element, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	p, err := d.node(parent)
	if err != nil {
		return nil, err
	}
	found := p.find(func(n *Node) bool { return n.hasClass(class) })
	if found == nil {
		return nil, fmt.Errorf("%w: no descendant of <%s id=%q> with class %q",
			ErrElementNotFound, p.tag, p.id, class)
	}
	return found, nil
}

// AddClass adds class to el. Adding a class that is already present, or adding
// to an element of another document, does nothing.
func (d *Document) AddClass(el Element, class string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, err := d.node(el); err == nil {
		n.addClass(class)
	}
}

// RemoveClass removes class from el. Removing an absent class does nothing.
func (d *Document) RemoveClass(el Element, class string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n, err := d.node(el); err == nil {
		n.removeClass(class)
	}
}

// HasClass reports whether el carries class.
func (d *Document) HasClass(el Element, class string) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.node(el)
	if err != nil {
		return false
	}
	return n.hasClass(class)
}

// ClassName returns the rendered class attribute of el.
func (d *Document) ClassName(el Element) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.node(el)
	if err != nil {
		return ""
	}
	return n.ClassName()
}

// AddEventListener attaches l to el for events of the given type. Adding the
// same listener twice for the same element and type has no effect.
func (d *Document) AddEventListener(el Element, event string, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(el)
	if err != nil || l == nil {
		return
	}
	key := listenerKey{n, event}
	if slices.Contains(d.listeners[key], l) {
		return
	}
	d.listeners[key] = append(d.listeners[key], l)
}

// RemoveEventListener detaches l from el for events of the given type.
// Removing a listener that is not attached does nothing.
func (d *Document) RemoveEventListener(el Element, event string, l Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n, err := d.node(el)
	if err != nil {
		return
	}
	key := listenerKey{n, event}
	remaining := slices.DeleteFunc(slices.Clone(d.listeners[key]), func(x Listener) bool { return x == l })
	if len(remaining) == 0 {
		delete(d.listeners, key)
		return
	}
	d.listeners[key] = remaining
}

// ListenerCount returns how many listeners are attached to el for event.
func (d *Document) ListenerCount(el Element, event string) int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	n, err := d.node(el)
	if err != nil {
		return 0
	}
	return len(d.listeners[listenerKey{n, event}])
}

// TotalListeners returns the number of listeners attached anywhere in the document.
func (d *Document) TotalListeners() int {
	d.mu.RLock()
	defer d.mu.RUnlock()

	total := 0
	for _, ls := range d.listeners {
		total += len(ls)
	}
	return total
}

// Dispatch delivers an event of the given type to the listeners attached to
// el, in the order they were added. It returns the event so callers can check
// DefaultPrevented.
func (d *Document) Dispatch(el Element, event string) (*Event, error) {
	d.mu.RLock()
	n, err := d.node(el)
	if err != nil {
		d.mu.RUnlock()
		return nil, err
	}
	listeners := slices.Clone(d.listeners[listenerKey{n, event}])
	d.mu.RUnlock()

	ev := &Event{Type: event, Target: n}
	for _, l := range listeners {
		l.HandleEvent(ev)
	}
	return ev, nil
}
