package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTableAlignsColumns(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)

	tbl := w.NewTable("Provider", "Monthly")
	tbl.AddRow("aws", "$146.51")
	tbl.AddHighlightedRow("huawei", "$120.00")
	tbl.Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "Provider │ Monthly", lines[0])
	assert.Equal(t, "─────────┼────────", lines[1])
	assert.Equal(t, "aws      │ $146.51", lines[2])
	assert.Equal(t, "huawei   │ $120.00", lines[3])
}

func TestColorDisabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.Success("saved %s", "x")
	w.Warning("careful")
	assert.NotContains(t, buf.String(), "\033[")
	assert.Contains(t, buf.String(), "✓ saved x")
}

func TestColorEnabled(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, false)
	w.Header("Compare")
	assert.Contains(t, buf.String(), Bold+Cyan)
}

func TestInfoRespectsVerbosity(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.SetVerbosity(0)
	w.Info("hidden")
	assert.Empty(t, buf.String())
}

func TestBoxFrame(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, true)
	w.NewBox().Add("Monthly", "$1").Add("Yearly", "$12").Render()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), "line %q", l)
	}
}
