//go:build js && wasm

package dom

import (
	"syscall/js"
)

const (
	classActive  = "active"
	classExiting = "exiting"
)

// Slides is a slider.Surface over a list of elements styled by the
// "active" and "exiting" classes.
type Slides struct {
	elems []js.Value
}

// NewSlides collects the slides matching selector.
func NewSlides(root js.Value, selector string) *Slides {
	return &Slides{elems: QueryAll(root, selector)}
}

func (s *Slides) Len() int { return len(s.elems) }

func (s *Slides) SetActive(i int, active bool) { ToggleClass(s.elems[i], classActive, active) }

func (s *Slides) SetExiting(i int, exiting bool) { ToggleClass(s.elems[i], classExiting, exiting) }

// Preload fetches every slide's CSS background image so the first rotation
// does not flash an empty slide.
func (s *Slides) Preload() {
	image := js.Global().Get("Image")
	for _, el := range s.elems {
		bg := el.Get("style").Get("backgroundImage").String()
		if url := cssURL(bg); url != "" {
			image.New().Set("src", url)
		}
	}
}

// Indicators is a slider.Indicators over the indicator dots.
type Indicators struct {
	elems []js.Value
}

// NewIndicators collects the indicators matching selector.
func NewIndicators(root js.Value, selector string) *Indicators {
	return &Indicators{elems: QueryAll(root, selector)}
}

func (ind *Indicators) Len() int { return len(ind.elems) }

func (ind *Indicators) SetActive(i int, active bool) { ToggleClass(ind.elems[i], classActive, active) }

// OnSelect calls f with the index of a clicked indicator.
func (ind *Indicators) OnSelect(f func(i int)) {
	for i, el := range ind.elems {
		i := i
		On(el, "click", func(js.Value) { f(i) })
	}
}

// Hover reports mouseenter and mouseleave on one element.
type Hover struct {
	el js.Value
}

// NewHover returns a hover source for the first element matching selector,
// or nil when there is none.
func NewHover(root js.Value, selector string) *Hover {
	el, ok := Query(root, selector)
	if !ok {
		return nil
	}
	return &Hover{el: el}
}

func (h *Hover) OnHoverChange(f func(hovering bool)) {
	On(h.el, "mouseenter", func(js.Value) { f(true) })
	On(h.el, "mouseleave", func(js.Value) { f(false) })
}
