package main

import (
	"fmt"
	"io"
	"net/url"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
	"github.com/localcarpetfitter/sitemailer/internal/message"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/spf13/cobra"
)

// newRenderCmd previews the e-mail a submission would produce without
// sending it.
func newRenderCmd() *cobra.Command {
	var part string
	values := make(map[string]*string, len(constants.FormFields))

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the contact e-mail for a submission given as flags",
		Example: `  sitemailer render --firstName Jane --lastName Doe --email jane@example.com \
    --serviceType carpet --message "Two bedrooms" --part text`,
		RunE: func(cmd *cobra.Command, args []string) error {
			form := url.Values{}
			for name, v := range values {
				form.Set(name, *v)
			}

			sub := contact.FromForm(form)
			if err := contact.NewValidator().Validate(sub); err != nil {
				return err
			}

			content, err := message.Render(sub)
			if err != nil {
				return err
			}
			return writeContent(cmd.OutOrStdout(), content, part)
		},
	}

	for _, name := range constants.FormFields {
		values[name] = cmd.Flags().String(name, "", fmt.Sprintf("value of the %s form field", name))
	}
	cmd.Flags().StringVar(&part, "part", "all", "Part to print: subject, html, text or all")
	return cmd
}

func writeContent(w io.Writer, content *message.Content, part string) error {
	switch part {
	case "subject":
		_, err := fmt.Fprintln(w, content.Subject)
		return err
	case "html":
		_, err := fmt.Fprint(w, content.HTML)
		return err
	case "text":
		_, err := fmt.Fprint(w, content.Text)
		return err
	case "all":
		_, err := fmt.Fprintf(w, "Subject: %s\n\n--- text/plain ---\n%s\n--- text/html ---\n%s", content.Subject, content.Text, content.HTML)
		return err
	default:
		return fmt.Errorf("unknown part %q: want subject, html, text or all", part)
	}
}
