package report_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquasecurity/device-eol-report/lifecycle"
	"github.com/aquasecurity/device-eol-report/report"
)

func TestRender(t *testing.T) {
	devices := []lifecycle.Device{
		{Name: "a-phone", Model: "iPhone 12", OS: "iOS", Version: "15.8", User: "Alice"},
		{Name: "c-phone", Model: "iPhone 15", OS: "iOS", Version: "17.4.1"},
		{Name: "linux-box", OS: "Linux", Version: "6.8"},
	}
	r := report.Build(devices, testCatalogs(), lifecycle.NewClassifier(today, 0), report.Options{})

	var buf bytes.Buffer
	err := report.Render(&buf, r, report.RenderOptions{NoColor: true})
	require.NoError(t, err)

	got := buf.String()
	assert.NotContains(t, got, "\x1b[")
	assert.Contains(t, got, "EndOfLife (1)\n")
	assert.Contains(t, got, "Unknown (1)\n")
	assert.Contains(t, got, "Supported (1)\n")
	assert.Contains(t, got, "2024-09-16")
	assert.Contains(t, got, "Report date: 2026-10-18")
	assert.Contains(t, got, "EndOfLife: 1  Unknown: 1  Supported: 1  Total: 3")

	lines := strings.Split(got, "\n")
	require.True(t, len(lines) > 3)
	assert.Equal(t, "EndOfLife (1)", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "OS "), lines[1])
	assert.Equal(t, strings.Fields("iOS 15 15.8 a-phone iPhone 12 Alice EOL 2024-09-16 -762 17 18"), strings.Fields(lines[2]))
}

func TestRender_Truncates(t *testing.T) {
	long := strings.Repeat("x", 60)
	r := report.Build([]lifecycle.Device{{Name: long, OS: "Linux", Version: "1"}}, nil,
		lifecycle.NewClassifier(today, 0), report.Options{})

	var buf bytes.Buffer
	require.NoError(t, report.Render(&buf, r, report.RenderOptions{NoColor: true}))
	assert.NotContains(t, buf.String(), long)
	assert.Contains(t, buf.String(), "…")
}

func TestRender_Empty(t *testing.T) {
	var buf bytes.Buffer
	err := report.Render(&buf, report.Report{}, report.RenderOptions{NoColor: true})
	require.NoError(t, err)
	assert.Equal(t, "No devices to report.\n", buf.String())
}
