// Package message renders a contact submission into the subject, HTML body
// and plain-text alternative of the notification e-mail.
package message

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
)

//go:embed templates/*
var templateFS embed.FS

var (
	htmlTemplates = htmltemplate.Must(htmltemplate.New("").Funcs(htmltemplate.FuncMap{
		"nl2br": nl2br,
	}).ParseFS(templateFS, "templates/contact.html.tmpl"))

	textTemplates = texttemplate.Must(texttemplate.New("").ParseFS(templateFS, "templates/contact.txt.tmpl"))
)

// Content is a rendered e-mail.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

// view is the template data. Labels are pre-escaped by the contact package
// so they are marked safe for the HTML template.
type view struct {
	*contact.Submission
	ServiceLabel   htmltemplate.HTML
	TimeframeLabel htmltemplate.HTML
}

// Render produces the e-mail for a validated submission. Free text is
// escaped in the HTML body and kept verbatim in the plain-text body.
func Render(sub *contact.Submission) (*Content, error) {
	v := view{
		Submission:     sub,
		ServiceLabel:   htmltemplate.HTML(contact.ServiceLabel(sub.ServiceType)),
		TimeframeLabel: htmltemplate.HTML(contact.TimeframeLabel(sub.Timeframe)),
	}

	var htmlBuf bytes.Buffer
	if err := htmlTemplates.ExecuteTemplate(&htmlBuf, "contact", v); err != nil {
		return nil, fmt.Errorf("failed to render html body: %w", err)
	}

	var textBuf bytes.Buffer
	if err := textTemplates.ExecuteTemplate(&textBuf, "contact", v); err != nil {
		return nil, fmt.Errorf("failed to render text body: %w", err)
	}

	return &Content{
		Subject: Subject(sub),
		HTML:    htmlBuf.String(),
		Text:    textBuf.String(),
	}, nil
}

// Subject builds "New Contact Form: <first> <last> - <service>" from escaped values.
func Subject(sub *contact.Submission) string {
	return fmt.Sprintf("New Contact Form: %s %s - %s",
		htmltemplate.HTMLEscapeString(sub.FirstName),
		htmltemplate.HTMLEscapeString(sub.LastName),
		contact.ServiceLabel(sub.ServiceType),
	)
}

func nl2br(s string) htmltemplate.HTML {
	escaped := htmltemplate.HTMLEscapeString(strings.ReplaceAll(s, "\r\n", "\n"))
	return htmltemplate.HTML(strings.ReplaceAll(escaped, "\n", "<br>\n"))
}
