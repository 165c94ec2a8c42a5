// Package scroll reveals elements as they enter the viewport.
package scroll

import (
	"sync"
	"time"

	"smartlink/pkg/clock"
	"smartlink/pkg/surface"
)

const (
	ClassAnimateOnScroll = "animate-on-scroll"
	ClassAnimated        = "animated"

	DefaultDebounce = 10 * time.Millisecond
)

// Rect is an element's bounding box relative to the viewport's top-left corner.
type Rect struct {
	Top, Left, Bottom, Right float64
}

type Viewport struct {
	Width, Height float64
}

// InViewport reports whether r lies entirely inside vp.
func InViewport(r Rect, vp Viewport) bool {
	return r.Top >= 0 &&
		r.Left >= 0 &&
		r.Bottom <= vp.Height &&
		r.Right <= vp.Width
}

// LayoutFunc returns the current bounding box of an element.
type LayoutFunc func(el *surface.Element) Rect

// Animator marks animate-on-scroll elements as animated once they are fully
// visible. Scroll notifications are debounced.
type Animator struct {
	tree   *surface.Tree
	layout LayoutFunc

	mu       sync.Mutex
	viewport Viewport
	onScroll func()
}

func NewAnimator(tree *surface.Tree, layout LayoutFunc, clk clock.Clock, wait time.Duration) *Animator {
	if clk == nil {
		clk = clock.Real()
	}
	if wait <= 0 {
		wait = DefaultDebounce
	}
	a := &Animator{tree: tree, layout: layout}
	a.onScroll = clock.Debounce(clk, wait, func() { a.Reveal() })
	return a
}

// Scroll records the new viewport and schedules a reveal pass.
func (a *Animator) Scroll(vp Viewport) {
	a.mu.Lock()
	a.viewport = vp
	a.mu.Unlock()
	a.onScroll()
}

// Reveal adds the animated class to every candidate currently in view and
// returns how many elements it marked this pass.
func (a *Animator) Reveal() int {
	a.mu.Lock()
	vp := a.viewport
	a.mu.Unlock()

	marked := 0
	for _, el := range a.tree.ByClass(ClassAnimateOnScroll) {
		if el.HasClass(ClassAnimated) {
			continue
		}
		if InViewport(a.layout(el), vp) {
			el.AddClass(ClassAnimated)
			marked++
		}
	}
	return marked
}

// ScrollTarget returns the document offset to scroll to so that r sits
// offset pixels below the top of the viewport. pageY is the current scroll
// position.
func ScrollTarget(r Rect, pageY, offset float64) float64 {
	return r.Top + pageY - offset
}
