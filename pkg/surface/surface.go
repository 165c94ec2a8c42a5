// Package surface is a small retained element tree standing in for the page
// a user looks at. Toasts, staged clipboard buffers and form controls live
// here so their visual state can be rendered and inspected.
package surface

import (
	"errors"
	"sort"
	"strings"
	"sync"
)

// ErrDetached is returned when removing an element that is not in the tree.
var ErrDetached = errors.New("surface: element is not attached")

type EventKind int

const (
	Attached EventKind = iota
	Detached
	Changed
)

func (k EventKind) String() string {
	switch k {
	case Attached:
		return "attached"
	case Detached:
		return "detached"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

type Event struct {
	Kind    EventKind
	Element *Element
}

// Element is a node of the tree. All accessors are safe for concurrent use.
type Element struct {
	mu       sync.RWMutex
	kind     string
	text     string
	value    string
	disabled bool
	focused  bool
	selected bool
	classes  map[string]bool
	style    map[string]string
	tree     *Tree
}

// NewElement creates a detached element of the given kind ("div", "textarea", ...).
func NewElement(kind string) *Element {
	return &Element{
		kind:    kind,
		classes: make(map[string]bool),
		style:   make(map[string]string),
	}
}

func (e *Element) Kind() string { return e.kind }

func (e *Element) Text() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.text
}

func (e *Element) SetText(text string) {
	e.mutate(func() { e.text = text })
}

func (e *Element) Value() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.value
}

func (e *Element) SetValue(value string) {
	e.mutate(func() { e.value = value })
}

func (e *Element) Disabled() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.disabled
}

func (e *Element) SetDisabled(disabled bool) {
	e.mutate(func() { e.disabled = disabled })
}

func (e *Element) Focused() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.focused
}

// Selected reports whether the element's whole content is selected.
func (e *Element) Selected() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.selected
}

// AddClass adds each class name, ignoring ones already present.
func (e *Element) AddClass(names ...string) {
	e.mutate(func() {
		for _, n := range names {
			e.classes[n] = true
		}
	})
}

func (e *Element) RemoveClass(names ...string) {
	e.mutate(func() {
		for _, n := range names {
			delete(e.classes, n)
		}
	})
}

func (e *Element) HasClass(name string) bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.classes[name]
}

// ClassName returns the sorted, space separated class list.
func (e *Element) ClassName() string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	names := make([]string, 0, len(e.classes))
	for n := range e.classes {
		names = append(names, n)
	}
	sort.Strings(names)
	return strings.Join(names, " ")
}

func (e *Element) Style(prop string) string {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.style[prop]
}

// SetStyle applies property/value pairs in a single change notification.
func (e *Element) SetStyle(pairs ...string) {
	e.mutate(func() {
		for i := 0; i+1 < len(pairs); i += 2 {
			e.style[pairs[i]] = pairs[i+1]
		}
	})
}

// Attached reports whether the element is currently part of a tree.
func (e *Element) Attached() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.tree != nil
}

func (e *Element) mutate(fn func()) {
	e.mu.Lock()
	fn()
	tree := e.tree
	e.mu.Unlock()

	if tree != nil {
		tree.emit(Event{Kind: Changed, Element: e})
	}
}

// Tree is the ordered, flat list of attached elements.
type Tree struct {
	mu       sync.Mutex
	children []*Element
	focused  *Element
	watchers []func(Event)
}

func NewTree() *Tree {
	return &Tree{}
}

// Watch registers fn to receive every attach, detach and change event.
func (t *Tree) Watch(fn func(Event)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.watchers = append(t.watchers, fn)
}

// Append attaches el at the end of the tree. An element attached elsewhere
// is moved.
func (t *Tree) Append(el *Element) {
	el.mu.Lock()
	prev := el.tree
	el.mu.Unlock()
	if prev != nil {
		_ = prev.Remove(el)
	}

	t.mu.Lock()
	t.children = append(t.children, el)
	t.mu.Unlock()

	el.mu.Lock()
	el.tree = t
	el.mu.Unlock()

	t.emit(Event{Kind: Attached, Element: el})
}

// Remove detaches el. It returns ErrDetached, without side effects, when el
// is not a child of t.
func (t *Tree) Remove(el *Element) error {
	t.mu.Lock()
	idx := -1
	for i, c := range t.children {
		if c == el {
			idx = i
			break
		}
	}
	if idx < 0 {
		t.mu.Unlock()
		return ErrDetached
	}
	t.children = append(t.children[:idx], t.children[idx+1:]...)
	if t.focused == el {
		t.focused = nil
	}
	t.mu.Unlock()

	el.mu.Lock()
	el.tree = nil
	el.focused = false
	el.selected = false
	el.mu.Unlock()

	t.emit(Event{Kind: Detached, Element: el})
	return nil
}

func (t *Tree) Contains(el *Element) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, c := range t.children {
		if c == el {
			return true
		}
	}
	return false
}

func (t *Tree) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.children)
}

// Elements returns a snapshot of the attached elements in order.
func (t *Tree) Elements() []*Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]*Element, len(t.children))
	copy(out, t.children)
	return out
}

// ByClass returns attached elements carrying the class.
func (t *Tree) ByClass(name string) []*Element {
	var out []*Element
	for _, el := range t.Elements() {
		if el.HasClass(name) {
			out = append(out, el)
		}
	}
	return out
}

// Focus moves input focus to el, which must be attached.
func (t *Tree) Focus(el *Element) error {
	if !t.Contains(el) {
		return ErrDetached
	}

	t.mu.Lock()
	prev := t.focused
	t.focused = el
	t.mu.Unlock()

	if prev != nil && prev != el {
		prev.mutate(func() { prev.focused = false })
	}
	el.mutate(func() { el.focused = true })
	return nil
}

// Focused returns the element holding input focus, or nil.
func (t *Tree) Focused() *Element {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.focused
}

// Select marks the whole content of el as selected and returns it.
func (t *Tree) Select(el *Element) (string, error) {
	if !t.Contains(el) {
		return "", ErrDetached
	}
	el.mutate(func() { el.selected = true })
	return el.Value(), nil
}

func (t *Tree) emit(ev Event) {
	t.mu.Lock()
	watchers := make([]func(Event), len(t.watchers))
	copy(watchers, t.watchers)
	t.mu.Unlock()

	for _, w := range watchers {
		w(ev)
	}
}
