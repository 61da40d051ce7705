//go:build js && wasm

package dom

import (
	"syscall/js"

	"github.com/localcarpetfitter/sitemailer/internal/formclient"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
)

const classInvalid = "border-red-500"

// ContactForm is a formclient.Form over the contact form element.
type ContactForm struct {
	form   js.Value
	button js.Value
	label  string
}

// NewContactForm binds the form matching selector, or returns false when the
// page has none.
func NewContactForm(root js.Value, selector string) (*ContactForm, bool) {
	form, ok := Query(root, selector)
	if !ok {
		return nil, false
	}
	f := &ContactForm{form: form}
	if btn, ok := Query(form, `button[type="submit"]`); ok {
		f.button = btn
		f.label = btn.Get("innerHTML").String()
	}
	return f, true
}

// Endpoint returns the form's action URL, or fallback when it has none.
func (f *ContactForm) Endpoint(fallback string) string {
	if action := f.form.Call("getAttribute", "action"); truthy(action) && action.String() != "" {
		return action.String()
	}
	return fallback
}

// Fields reads every contact field present in the form.
func (f *ContactForm) Fields() []formclient.Field {
	fields := make([]formclient.Field, 0, len(constants.FormFields))
	for _, name := range constants.FormFields {
		el, ok := f.element(name)
		if !ok {
			continue
		}
		fields = append(fields, formclient.Field{
			Name:     name,
			Value:    el.Get("value").String(),
			Required: el.Get("required").Truthy(),
		})
	}
	return fields
}

func (f *ContactForm) MarkInvalid(name string, invalid bool) {
	if el, ok := f.element(name); ok {
		ToggleClass(el, classInvalid, invalid)
	}
}

func (f *ContactForm) Reset() {
	f.form.Call("reset")
}

// SetBusy disables the submit button while a submission is in flight.
func (f *ContactForm) SetBusy(busy bool) {
	if !truthy(f.button) {
		return
	}
	f.button.Set("disabled", busy)
	if busy {
		f.button.Set("innerHTML", `<i class="fas fa-spinner fa-spin mr-2"></i>Sending...`)
	} else {
		f.button.Set("innerHTML", f.label)
	}
}

// OnSubmit calls f for every submit event after cancelling the browser's own
// navigation.
func (f *ContactForm) OnSubmit(handler func()) {
	On(f.form, "submit", func(evt js.Value) {
		evt.Call("preventDefault")
		handler()
	})
}

func (f *ContactForm) element(name string) (js.Value, bool) {
	el := f.form.Get("elements").Call("namedItem", name)
	return el, truthy(el)
}
