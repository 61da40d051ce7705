package message

import (
	"strings"
	"testing"

	"github.com/localcarpetfitter/sitemailer/internal/contact"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fullSubmission() *contact.Submission {
	return &contact.Submission{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		Phone:       "07700 900123",
		Address:     "1 High Street, Leeds",
		ServiceType: "carpet",
		RoomSize:    "4m x 5m",
		Timeframe:   "2weeks",
		Message:     "Lounge and hallway.\nStairs too.",
	}
}

func TestRender_UsesServiceLabel(t *testing.T) {
	content, err := Render(fullSubmission())
	require.NoError(t, err)

	assert.Equal(t, "New Contact Form: Jane Doe - Carpet Installation", content.Subject)
	assert.Contains(t, content.HTML, "Carpet Installation")
	assert.Contains(t, content.Text, "- Service Required: Carpet Installation\n")
	assert.NotContains(t, content.HTML, ">carpet<")
	assert.Contains(t, content.HTML, "Within 2 weeks")
	assert.Contains(t, content.Text, "- Timeframe: Within 2 weeks\n")
}

func TestRender_FullTextLayout(t *testing.T) {
	content, err := Render(fullSubmission())
	require.NoError(t, err)

	want := "New Contact Form Submission\n" +
		"\n" +
		"Customer Information:\n" +
		"- Name: Jane Doe\n" +
		"- Email: jane@example.com\n" +
		"- Phone: 07700 900123\n" +
		"- Address: 1 High Street, Leeds\n" +
		"\n" +
		"Service Details:\n" +
		"- Service Required: Carpet Installation\n" +
		"- Room Size: 4m x 5m\n" +
		"- Timeframe: Within 2 weeks\n" +
		"\n" +
		"Additional Details:\n" +
		"Lounge and hallway.\nStairs too.\n" +
		"\n" +
		"---\n" +
		"Reply to: jane@example.com\n" +
		"Call: 07700 900123\n"
	assert.Equal(t, want, content.Text)
}

func TestRender_EscapesMarkupInHTMLOnly(t *testing.T) {
	sub := fullSubmission()
	sub.FirstName = `<b>"Jane"</b>`
	sub.Message = "<script>alert('x')</script>\nbye"

	content, err := Render(sub)
	require.NoError(t, err)

	assert.NotContains(t, content.HTML, "<script>")
	assert.NotContains(t, content.HTML, "<b>")
	assert.Contains(t, content.HTML, "&lt;script&gt;alert(&#39;x&#39;)&lt;/script&gt;<br>\nbye")
	assert.Contains(t, content.HTML, "&lt;b&gt;&#34;Jane&#34;&lt;/b&gt;")

	assert.Contains(t, content.Text, "<script>alert('x')</script>\nbye\n")
	assert.Contains(t, content.Text, `- Name: <b>"Jane"</b> Doe`)

	assert.Equal(t, "New Contact Form: &lt;b&gt;&#34;Jane&#34;&lt;/b&gt; Doe - Carpet Installation", content.Subject)
}

func TestRender_OptionalBlocksOmitted(t *testing.T) {
	sub := &contact.Submission{
		FirstName:   "Jane",
		LastName:    "Doe",
		Email:       "jane@example.com",
		ServiceType: "vinyl",
	}

	content, err := Render(sub)
	require.NoError(t, err)

	for _, marker := range []string{"Phone:", "tel:", "Call customer", "Address:", "Room Size:", "Timeframe:", "Additional Details"} {
		assert.NotContains(t, content.HTML, marker)
	}
	for _, marker := range []string{"Phone:", "Call:", "Address:", "Room Size:", "Timeframe:", "Additional Details"} {
		assert.NotContains(t, content.Text, marker)
	}
	assert.True(t, strings.HasSuffix(content.Text, "---\nReply to: jane@example.com\n"), "text was %q", content.Text)
	assert.Contains(t, content.HTML, "mailto:jane@example.com")
	assert.Contains(t, content.HTML, "This email was sent from your Local Carpet Fitter website contact form")
}

func TestRender_UnmappedCodesEscaped(t *testing.T) {
	sub := fullSubmission()
	sub.ServiceType = "<i>stairs</i>"
	sub.Timeframe = "whenever"

	content, err := Render(sub)
	require.NoError(t, err)

	assert.Contains(t, content.HTML, "&lt;i&gt;stairs&lt;/i&gt;")
	assert.NotContains(t, content.HTML, "&amp;lt;", "labels are not escaped twice")
	assert.Contains(t, content.HTML, ">whenever<")
	assert.Contains(t, content.Subject, "- &lt;i&gt;stairs&lt;/i&gt;")
}
