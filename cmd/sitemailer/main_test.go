package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/localcarpetfitter/sitemailer/pkg/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, version, info.Version)
	assert.True(t, strings.HasPrefix(info.GoVersion, "go"))
}

func TestRenderCommand_Subject(t *testing.T) {
	out, err := runCommand(t, "render",
		"--firstName", "Jane",
		"--lastName", "Doe",
		"--email", "jane@example.com",
		"--serviceType", "lvt",
		"--part", "subject",
	)
	require.NoError(t, err)
	assert.Equal(t, "New Contact Form: Jane Doe - Luxury Vinyl Tiles (LVT)\n", out)
}

func TestRenderCommand_Text(t *testing.T) {
	out, err := runCommand(t, "render",
		"--firstName", "Jane",
		"--lastName", "Doe",
		"--email", "jane@example.com",
		"--serviceType", "carpet",
		"--message", "Two bedrooms",
		"--part", "text",
	)
	require.NoError(t, err)
	assert.Contains(t, out, "Two bedrooms")
	assert.Contains(t, out, "jane@example.com")
}

func TestRenderCommand_InvalidSubmission(t *testing.T) {
	_, err := runCommand(t, "render", "--firstName", "Jane")
	require.Error(t, err)
	assert.Equal(t, constants.MessageMissingFields, err.Error())
}

func TestRenderCommand_UnknownPart(t *testing.T) {
	_, err := runCommand(t, "render",
		"--firstName", "Jane",
		"--lastName", "Doe",
		"--email", "jane@example.com",
		"--serviceType", "carpet",
		"--part", "pdf",
	)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown part")
}

func TestVersionHandler(t *testing.T) {
	rec := httptest.NewRecorder()
	versionHandler()(rec, httptest.NewRequest(http.MethodGet, "/version", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	versionHandler()(rec, httptest.NewRequest(http.MethodPost, "/version", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
