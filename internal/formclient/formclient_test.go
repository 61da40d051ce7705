package formclient

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"

	"github.com/localcarpetfitter/sitemailer/internal/notify"
	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeForm struct {
	fields  []Field
	invalid map[string]bool
	resets  int
}

func newFakeForm() *fakeForm {
	return &fakeForm{
		fields: []Field{
			{Name: "firstName", Value: "Jane", Required: true},
			{Name: "lastName", Value: "Doe", Required: true},
			{Name: "email", Value: "jane@example.com", Required: true},
			{Name: "phone", Value: ""},
			{Name: "serviceType", Value: "carpet", Required: true},
			{Name: "message", Value: "Hallway & stairs"},
		},
		invalid: map[string]bool{},
	}
}

func (f *fakeForm) Fields() []Field                   { return f.fields }
func (f *fakeForm) MarkInvalid(name string, on bool) { f.invalid[name] = on }
func (f *fakeForm) Reset()                           { f.resets++ }

func (f *fakeForm) set(name, value string) {
	for i := range f.fields {
		if f.fields[i].Name == name {
			f.fields[i].Value = value
		}
	}
}

type recordingNotifier struct {
	kinds    []notify.Kind
	messages []string
}

func (n *recordingNotifier) Notify(kind notify.Kind, message string) notify.ID {
	n.kinds = append(n.kinds, kind)
	n.messages = append(n.messages, message)
	return notify.ID(len(n.kinds))
}

func TestValidate(t *testing.T) {
	fields := []Field{
		{Name: "a", Value: "x", Required: true},
		{Name: "b", Value: "   ", Required: true},
		{Name: "c", Value: "", Required: false},
		{Name: "d", Value: "", Required: true},
	}

	v := Validate(fields)

	assert.False(t, v.Valid)
	assert.Equal(t, []string{"b", "d"}, v.Invalid)
	assert.True(t, Validate(fields[:1]).Valid)
}

func TestSubmit_InvalidFormMakesNoRequest(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { calls++ }))
	defer srv.Close()

	form := newFakeForm()
	form.set("email", "  ")
	n := &recordingNotifier{}
	s := NewSubmitter(srv.URL, srv.Client(), n, nil)

	outcome, err := s.Submit(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, OutcomeInvalid, outcome)
	assert.Equal(t, 0, calls)
	assert.True(t, form.invalid["email"])
	assert.False(t, form.invalid["firstName"], "passing fields have the marker cleared")
	assert.Equal(t, []notify.Kind{notify.KindError}, n.kinds)
	assert.Equal(t, []string{constants.MessageMissingFields}, n.messages)
	assert.Equal(t, 0, form.resets)
}

func TestSubmit_Success(t *testing.T) {
	var got url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		got = r.PostForm
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"message":"sent!"}`))
	}))
	defer srv.Close()

	form := newFakeForm()
	n := &recordingNotifier{}
	s := NewSubmitter(srv.URL, srv.Client(), n, nil)

	outcome, err := s.Submit(context.Background(), form)

	require.NoError(t, err)
	assert.Equal(t, OutcomeSent, outcome)
	assert.Equal(t, "Hallway & stairs", got.Get("message"))
	assert.Equal(t, "jane@example.com", got.Get("email"))
	assert.True(t, got.Has("phone"), "optional empty fields are still posted")
	assert.Equal(t, []notify.Kind{notify.KindSuccess}, n.kinds)
	assert.Equal(t, []string{"sent!"}, n.messages)
	assert.Equal(t, 1, form.resets)
	assert.False(t, s.InFlight())
}

func TestSubmit_ServerRejection(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{name: "validation", status: http.StatusBadRequest, body: `{"success":false,"message":"Please enter a valid email address."}`},
		{name: "transport", status: http.StatusInternalServerError, body: `{"success":false,"message":"Failed to send email. Please call us directly at 07412 703260."}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			form := newFakeForm()
			n := &recordingNotifier{}
			s := NewSubmitter(srv.URL, srv.Client(), n, nil)

			outcome, err := s.Submit(context.Background(), form)

			require.NoError(t, err)
			assert.Equal(t, OutcomeRejected, outcome)
			assert.Equal(t, []notify.Kind{notify.KindError}, n.kinds)
			assert.Contains(t, tt.body, n.messages[0])
			assert.Equal(t, 0, form.resets, "form keeps its values on failure")
		})
	}
}

func TestSubmit_NetworkAndDecodeFailures(t *testing.T) {
	garbage := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>oops</html>"))
	}))
	defer garbage.Close()

	closed := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	closedURL := closed.URL
	closed.Close()

	for name, endpoint := range map[string]string{"undecodable": garbage.URL, "unreachable": closedURL} {
		t.Run(name, func(t *testing.T) {
			form := newFakeForm()
			n := &recordingNotifier{}
			s := NewSubmitter(endpoint, nil, n, nil)

			outcome, err := s.Submit(context.Background(), form)

			assert.Error(t, err)
			assert.Equal(t, OutcomeFailed, outcome)
			assert.Equal(t, []string{constants.MessageNetworkFailure}, n.messages)
			assert.Equal(t, 0, form.resets)
		})
	}
}

func TestSubmit_RejectsWhileInFlight(t *testing.T) {
	release := make(chan struct{})
	entered := make(chan struct{})
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		close(entered)
		<-release
		_, _ = w.Write([]byte(`{"success":true,"message":"ok"}`))
	}))
	defer srv.Close()

	n := &recordingNotifier{}
	s := NewSubmitter(srv.URL, srv.Client(), n, nil)

	done := make(chan Outcome)
	go func() {
		outcome, _ := s.Submit(context.Background(), newFakeForm())
		done <- outcome
	}()

	<-entered
	assert.True(t, s.InFlight())
	_, err := s.Submit(context.Background(), newFakeForm())
	assert.ErrorIs(t, err, ErrSubmitInFlight)

	close(release)
	assert.Equal(t, OutcomeSent, <-done)
	assert.Equal(t, int32(1), calls.Load())
	assert.False(t, s.InFlight())
}
