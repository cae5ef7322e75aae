package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locheck/locheck/pkg/diagnostics"
	"github.com/locheck/locheck/pkg/dtd"
	"github.com/locheck/locheck/pkg/properties"
)

func writeFile(t *testing.T, path string, content []byte) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, content, 0o644))
}

func buildDir(t *testing.T, files map[string][]byte) (*KeySet, *diagnostics.Collector) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "en-US")
	for name, content := range files {
		writeFile(t, filepath.Join(dir, name), content)
	}
	collector := diagnostics.NewCollector()
	ks := Build("en-US", dir, dtd.NewGrammar(), collector)
	return ks, collector
}

func TestBuild_AggregatesBothFormats(t *testing.T) {
	ks, c := buildDir(t, map[string][]byte{
		"app.dtd":           []byte(`<!ENTITY app.title "My App">`),
		"bundle.properties": []byte("greeting=hello %1$S\n"),
	})

	assert.False(t, c.HasErrors())
	assert.False(t, ks.ParseErrors)
	assert.Equal(t, "My App", ks.Keys["app.dtd/app.title"])
	assert.Equal(t, "hello %1$S", ks.Keys["bundle.properties/greeting"])
	assert.Equal(t, properties.Signature([]int{1}), ks.Subs["bundle.properties/greeting"])
}

func TestBuild_UnknownExtensionWarns(t *testing.T) {
	ks, c := buildDir(t, map[string][]byte{
		"notes.txt": []byte("not localization data"),
	})

	assert.Empty(t, ks.Keys)
	assert.False(t, ks.ParseErrors)

	reports := c.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, diagnostics.SeverityWarning, reports[0].Severity)
	assert.Contains(t, reports[0].Message, "is not a .dtd or .properties file. Ignoring.")
}

func TestBuild_BOMIsErrorButContentStillParsed(t *testing.T) {
	bom := []byte{0xEF, 0xBB, 0xBF}
	ks, c := buildDir(t, map[string][]byte{
		"app.dtd":           append(append([]byte{}, bom...), []byte(`<!ENTITY app.title "My App">`)...),
		"bundle.properties": []byte("greeting=hello\n"),
	})

	assert.True(t, ks.ParseErrors)

	// exactly one error, for the BOM itself; the file's content and every
	// other file are still parsed as usual
	var errors []string
	for _, r := range c.Reports() {
		if r.Severity == diagnostics.SeverityError {
			errors = append(errors, r.Message)
		}
	}
	require.Len(t, errors, 1)
	assert.Contains(t, errors[0], "Byte Order Marker")
	assert.Equal(t, "My App", ks.Keys["app.dtd/app.title"])
	assert.Equal(t, "hello", ks.Keys["bundle.properties/greeting"])
}

func TestBuild_ParseErrorSetsFlag(t *testing.T) {
	ks, c := buildDir(t, map[string][]byte{
		"bundle.properties": []byte("no separator on this line\n"),
	})

	assert.True(t, ks.ParseErrors)
	assert.True(t, c.HasErrors())
}

func TestBuild_WarningDoesNotSetFlag(t *testing.T) {
	ks, c := buildDir(t, map[string][]byte{
		"app.dtd": []byte(`<!ENTITY blank "">`),
	})

	assert.False(t, ks.ParseErrors)
	assert.False(t, c.HasErrors())
	assert.Contains(t, ks.Keys, "app.dtd/blank")
}

func TestBuild_SubdirectoriesIgnored(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "en-US")
	writeFile(t, filepath.Join(dir, "bundle.properties"), []byte("key=value\n"))
	writeFile(t, filepath.Join(dir, "nested", "extra.properties"), []byte("other=value\n"))

	collector := diagnostics.NewCollector()
	ks := Build("en-US", dir, dtd.NewGrammar(), collector)

	assert.Len(t, ks.Keys, 1)
	assert.Contains(t, ks.Keys, "bundle.properties/key")
}

func TestBuild_MissingDirectory(t *testing.T) {
	collector := diagnostics.NewCollector()
	ks := Build("de", filepath.Join(t.TempDir(), "missing"), dtd.NewGrammar(), collector)

	assert.True(t, ks.ParseErrors)
	assert.True(t, collector.HasErrors())
}
