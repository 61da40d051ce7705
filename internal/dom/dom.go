//go:build js && wasm

// Package dom binds the slider, contact form and notification packages to
// the browser document through syscall/js.
package dom

import (
	"syscall/js"
)

// Document returns the global document.
func Document() js.Value {
	return js.Global().Get("document")
}

// QueryAll returns the elements under root matching selector, in document order.
func QueryAll(root js.Value, selector string) []js.Value {
	list := root.Call("querySelectorAll", selector)
	n := list.Length()
	out := make([]js.Value, n)
	for i := 0; i < n; i++ {
		out[i] = list.Index(i)
	}
	return out
}

// Query returns the first element matching selector and whether one exists.
func Query(root js.Value, selector string) (js.Value, bool) {
	el := root.Call("querySelector", selector)
	return el, truthy(el)
}

// ToggleClass adds or removes class on el.
func ToggleClass(el js.Value, class string, on bool) {
	if on {
		el.Get("classList").Call("add", class)
	} else {
		el.Get("classList").Call("remove", class)
	}
}

// On registers handler for event on el and returns a function that removes
// the listener and releases the callback.
func On(el js.Value, event string, handler func(evt js.Value)) func() {
	fn := js.FuncOf(func(this js.Value, args []js.Value) any {
		var evt js.Value
		if len(args) > 0 {
			evt = args[0]
		}
		handler(evt)
		return nil
	})
	el.Call("addEventListener", event, fn)
	return func() {
		el.Call("removeEventListener", event, fn)
		fn.Release()
	}
}

func truthy(v js.Value) bool {
	return !v.IsNull() && !v.IsUndefined()
}
