// Package reveal implements the one-way scroll reveal: elements marked with
// data-animate receive the "visible" class the first time they are reported
// intersecting the viewport, and are never observed again.
package reveal

import (
	"golang.org/x/net/html"

	"github.com/ziadkadry99/folio/internal/dom"
)

const (
	// VisibleClass triggers the CSS transition.
	VisibleClass = "visible"
	// DefaultThreshold is the visible fraction passed to the observer. It
	// sets when reports fire, not whether a report reveals.
	DefaultThreshold = 0.12
)

// Capabilities describes what the rendering client supports.
type Capabilities struct {
	IntersectionObserver bool
}

// Entry is one intersection report for an observed element, as the
// browser delivers it. Reports fire when the visible fraction crosses the
// threshold and when the element starts or stops intersecting, so an
// element too tall to ever reach the threshold still reports Intersecting.
type Entry struct {
	Target       *html.Node
	Intersecting bool
	Ratio        float64 // visible fraction of the element, 0..1
}

// Animator tracks observed elements. It is not safe for concurrent use; a
// page is animated by a single bootstrap.
type Animator struct {
	threshold float64
	observed  map[*html.Node]struct{}
}

// NewAnimator returns an Animator; a non-positive threshold selects
// DefaultThreshold.
func NewAnimator(threshold float64) *Animator {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Animator{threshold: threshold, observed: make(map[*html.Node]struct{})}
}

// Threshold returns the ratio the client observer is configured with.
func (a *Animator) Threshold() float64 { return a.threshold }

// Observe starts watching n. Already revealed elements are skipped.
func (a *Animator) Observe(n *html.Node) {
	if dom.HasClass(n, VisibleClass) {
		return
	}
	a.observed[n] = struct{}{}
}

// Unobserve stops watching n.
func (a *Animator) Unobserve(n *html.Node) { delete(a.observed, n) }

// Observing reports whether n is still waiting to be revealed.
func (a *Animator) Observing(n *html.Node) bool {
	_, ok := a.observed[n]
	return ok
}

// Pending returns the number of observed, unrevealed elements.
func (a *Animator) Pending() int { return len(a.observed) }

// Intersect processes a batch of intersection reports. Each observed target
// reported intersecting is revealed and unobserved, whatever its ratio;
// reports for elements no longer observed are ignored. It returns the number of
// elements revealed by this batch.
func (a *Animator) Intersect(entries []Entry) int {
	n := 0
	for _, e := range entries {
		if e.Target == nil || !a.Observing(e.Target) {
			continue
		}
		if !e.Intersecting {
			continue
		}
		dom.AddClass(e.Target, VisibleClass)
		a.Unobserve(e.Target)
		n++
	}
	return n
}

// Setup engages the animator over every marked element of doc. Without
// observer support every element is revealed at once. It reports whether
// elements are left for the client to observe.
func (a *Animator) Setup(doc *dom.Document, caps Capabilities) bool {
	marked := doc.Marked(dom.AnimateAttr)
	if len(marked) == 0 {
		return false
	}
	if !caps.IntersectionObserver {
		RevealAll(doc)
		return false
	}
	for _, n := range marked {
		a.Observe(n)
	}
	return a.Pending() > 0
}

// RevealAll marks every data-animate element visible, bypassing the
// animation.
func RevealAll(doc *dom.Document) int {
	marked := doc.Marked(dom.AnimateAttr)
	for _, n := range marked {
		dom.AddClass(n, VisibleClass)
	}
	return len(marked)
}
