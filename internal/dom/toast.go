//go:build js && wasm

package dom

import (
	"sync"
	"syscall/js"
	"time"

	"github.com/localcarpetfitter/sitemailer/internal/notify"
)

const (
	toastBaseClass = "fixed top-20 right-4 z-50 p-4 rounded-lg shadow-lg transform translate-x-full transition-transform duration-300 text-white"
	toastHidden    = "translate-x-full"
	toastEnter     = 100 * time.Millisecond
	toastExit      = 300 * time.Millisecond
)

var (
	toastColors = map[notify.Kind]string{
		notify.KindSuccess: "bg-green-500",
		notify.KindError:   "bg-red-500",
		notify.KindInfo:    "bg-blue-500",
	}
	toastIcons = map[notify.Kind]string{
		notify.KindSuccess: "fa-check-circle",
		notify.KindError:   "fa-exclamation-circle",
		notify.KindInfo:    "fa-info-circle",
	}
)

// Toasts is a notify.Renderer that slides notifications in from the right
// edge of the page.
type Toasts struct {
	doc js.Value

	// OnClose is called when the user clicks a toast's close button.
	OnClose func(id notify.ID)

	mu    sync.Mutex
	shown map[notify.ID]*toast
}

type toast struct {
	el      js.Value
	release func()
}

func NewToasts(doc js.Value) *Toasts {
	return &Toasts{doc: doc, shown: make(map[notify.ID]*toast)}
}

func (t *Toasts) Show(n notify.Notification) {
	el := t.doc.Call("createElement", "div")
	el.Set("className", toastBaseClass+" "+toastColors[n.Kind])

	row := t.doc.Call("createElement", "div")
	row.Set("className", "flex items-center")

	icon := t.doc.Call("createElement", "i")
	icon.Set("className", "fas "+toastIcons[n.Kind]+" mr-2")

	// textContent keeps server messages from being parsed as markup
	text := t.doc.Call("createElement", "span")
	text.Set("textContent", n.Message)

	closeBtn := t.doc.Call("createElement", "button")
	closeBtn.Set("className", "ml-4 text-white hover:text-gray-200")
	closeBtn.Set("innerHTML", `<i class="fas fa-times"></i>`)

	row.Call("appendChild", icon)
	row.Call("appendChild", text)
	row.Call("appendChild", closeBtn)
	el.Call("appendChild", row)
	t.doc.Get("body").Call("appendChild", el)

	release := On(closeBtn, "click", func(js.Value) {
		if t.OnClose != nil {
			t.OnClose(n.ID)
		}
	})

	t.mu.Lock()
	t.shown[n.ID] = &toast{el: el, release: release}
	t.mu.Unlock()

	time.AfterFunc(toastEnter, func() { ToggleClass(el, toastHidden, false) })
}

func (t *Toasts) Hide(id notify.ID) {
	t.mu.Lock()
	tt, ok := t.shown[id]
	delete(t.shown, id)
	t.mu.Unlock()
	if !ok {
		return
	}

	tt.release()
	ToggleClass(tt.el, toastHidden, true)
	time.AfterFunc(toastExit, func() {
		if truthy(tt.el.Get("parentElement")) {
			tt.el.Call("remove")
		}
	})
}
