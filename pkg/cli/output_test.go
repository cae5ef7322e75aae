package cli

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locheck/locheck/pkg/diagnostics"
)

func sampleCollector() *diagnostics.Collector {
	c := diagnostics.NewCollector()
	diagnostics.Infof(c, "", "Starting Localization tests...")
	diagnostics.Errorf(c, diagnostics.CategoryConsistency, "fr", "missing key")
	diagnostics.Warnf(c, diagnostics.CategoryRegistry, "de", "odd code")
	diagnostics.Errorf(c, diagnostics.CategoryConsistency, "de", "bad substitution")
	return c
}

func TestRender_TextStreamsInOrder(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, sampleCollector(), false, false, false))

	want := "(Main) Starting Localization tests...\n" +
		"ERROR: (fr) missing key\n" +
		"WARNING: (de) odd code\n" +
		"ERROR: (de) bad substitution\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_GroupedByLocale(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, sampleCollector(), false, true, false))

	want := "(Main) Starting Localization tests...\n" +
		"WARNING: (de) odd code\n" +
		"ERROR: (de) bad substitution\n" +
		"ERROR: (fr) missing key\n"
	assert.Equal(t, want, buf.String())
}

func TestRender_QuietSuppressesText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, sampleCollector(), false, false, true))
	assert.Empty(t, buf.String())
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, sampleCollector(), true, true, false))

	var got map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))

	assert.NotContains(t, got, "Main", "info messages are not diagnostics")
	assert.Equal(t, []string{"ERROR: (fr) missing key"}, got["fr"])
	assert.Equal(t, []string{
		"WARNING: (de) odd code",
		"ERROR: (de) bad substitution",
	}, got["de"])
}

func TestRender_JSONPrintedEvenWhenQuiet(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, sampleCollector(), true, true, true))
	assert.NotEmpty(t, buf.String())

	var got map[string][]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Len(t, got["de"], 2)
}

func TestRender_JSONEmptyCollector(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, render(&buf, diagnostics.NewCollector(), true, true, false))
	assert.Equal(t, "{}\n", buf.String())
}
