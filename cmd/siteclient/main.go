//go:build js && wasm

// Command siteclient drives the hero carousels and the contact form.
// Build with GOOS=js GOARCH=wasm and load it with wasm_exec.js.
package main

import (
	"context"
	"errors"
	"syscall/js"
	"time"

	"github.com/localcarpetfitter/sitemailer/internal/dom"
	"github.com/localcarpetfitter/sitemailer/internal/formclient"
	"github.com/localcarpetfitter/sitemailer/internal/notify"
	"github.com/localcarpetfitter/sitemailer/internal/slider"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"go.uber.org/zap"
)

const (
	defaultEndpoint = "send-email.php"
	submitTimeout   = constants.DefaultRequestTimeout + 5*time.Second
)

func main() {
	logger, err := zap.NewDevelopment()
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	doc := dom.Document()

	startHeroText(doc, logger)
	startHeroBackground(doc, logger)
	startContactForm(doc, logger)

	// keep the callbacks alive
	select {}
}

func startHeroText(doc js.Value, logger *zap.Logger) {
	slides := dom.NewSlides(doc, ".hero-text-slide")
	indicators := dom.NewIndicators(doc, ".indicator")

	opts := []slider.Option{
		slider.WithIndicators(indicators),
		slider.WithLogger(logger.Named("hero_text")),
	}
	if hover := dom.NewHover(doc, ".hero-text-slider"); hover != nil {
		opts = append(opts, slider.WithHover(hover))
	}

	c := slider.New(slides, opts...)
	c.Start()
	if c.Disabled() {
		return
	}
	indicators.OnSelect(func(i int) { c.JumpTo(i) })
}

func startHeroBackground(doc js.Value, logger *zap.Logger) {
	slides := dom.NewSlides(doc, ".hero-bg-slide")
	c := slider.New(slides,
		slider.WithSettleDelay(0),
		slider.WithLogger(logger.Named("hero_background")),
	)
	c.Start()
	if !c.Disabled() {
		slides.Preload()
	}
}

func startContactForm(doc js.Value, logger *zap.Logger) {
	form, ok := dom.NewContactForm(doc, "#contactForm")
	if !ok {
		return
	}

	toasts := dom.NewToasts(doc)
	center := notify.NewCenter(toasts, nil, constants.NotificationDuration)
	toasts.OnClose = center.Dismiss

	submitter := formclient.NewSubmitter(form.Endpoint(defaultEndpoint), nil, center, logger.Named("contact_form"))

	form.OnSubmit(func() {
		// the fetch-backed http client blocks, which is not allowed on the event callback
		go func() {
			if submitter.InFlight() {
				return
			}
			form.SetBusy(true)

			ctx, cancel := context.WithTimeout(context.Background(), submitTimeout)
			defer cancel()

			outcome, err := submitter.Submit(ctx, form)
			if errors.Is(err, formclient.ErrSubmitInFlight) {
				// the earlier submission re-enables the button
				return
			}
			form.SetBusy(false)
			logger.Debug("contact form submitted", zap.Int("outcome", int(outcome)), zap.Error(err))
		}()
	})
}
