package dtd

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locheck/locheck/pkg/diagnostics"
)

// fakeGrammar returns canned results so extractor semantics can be
// tested independently of the real grammar.
type fakeGrammar struct {
	entities []Entity
	err      *SyntaxError
}

func (f fakeGrammar) Parse(data []byte) ([]Entity, *SyntaxError) {
	return f.entities, f.err
}

func extract(t *testing.T, g Grammar, data string) (map[string]string, *diagnostics.Collector) {
	t.Helper()
	keys := make(map[string]string)
	collector := diagnostics.NewCollector()
	ExtractInto(g, "en-US/strings.dtd", []byte(data), keys, collector)
	return keys, collector
}

func TestExtractInto_StoresEntities(t *testing.T) {
	g := fakeGrammar{entities: []Entity{
		{Name: "greeting", Content: "hello"},
		{Name: "farewell", Content: "goodbye"},
	}}
	keys, c := extract(t, g, "")

	assert.False(t, c.HasErrors())
	assert.Equal(t, "hello", keys["strings.dtd/greeting"])
	assert.Equal(t, "goodbye", keys["strings.dtd/farewell"])
}

func TestExtractInto_DuplicateKeyKeepsFirst(t *testing.T) {
	g := fakeGrammar{entities: []Entity{
		{Name: "key", Content: "first"},
		{Name: "key", Content: "second"},
	}}
	keys, c := extract(t, g, "")

	assert.Equal(t, "first", keys["strings.dtd/key"])
	summary := c.Summarize()
	assert.Equal(t, 1, summary.Errors)

	reports := c.Reports()
	require.Len(t, reports, 1)
	assert.Contains(t, reports[0].Message, "Duplicate dtd key 'strings.dtd/key'")
}

func TestExtractInto_AngleBracketRejected(t *testing.T) {
	g := fakeGrammar{entities: []Entity{
		{Name: "bad", Content: "has a <b>tag</b>"},
	}}
	keys, c := extract(t, g, "")

	assert.NotContains(t, keys, "strings.dtd/bad")
	reports := c.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, diagnostics.SeverityError, reports[0].Severity)
	assert.Contains(t, reports[0].Message, "invalid character '<'")
}

func TestExtractInto_BlankValueWarnsButStores(t *testing.T) {
	g := fakeGrammar{entities: []Entity{
		{Name: "empty", Content: ""},
	}}
	keys, c := extract(t, g, "")

	content, ok := keys["strings.dtd/empty"]
	require.True(t, ok, "blank values are stored")
	assert.Equal(t, "", content)

	assert.False(t, c.HasErrors())
	reports := c.Reports()
	require.Len(t, reports, 1)
	assert.Equal(t, diagnostics.SeverityWarning, reports[0].Severity)
	assert.Contains(t, reports[0].Message, "has a blank value. Is this desired?")
}

func TestExtractInto_SyntaxErrorReportedWithCaret(t *testing.T) {
	data := "<!ENTITY one \"ok\">\n<!ENTITY broken >\n"
	g := fakeGrammar{err: &SyntaxError{Diagnostics: []Diagnostic{{
		Source:    "<string>",
		Line:      2,
		Column:    17,
		Severity:  "FATAL",
		Subsystem: "PARSER",
		Code:      "ERR_VALUE_REQUIRED",
		Message:   "Entity value required",
	}}}}
	keys, c := extract(t, g, data)

	assert.Empty(t, keys)
	reports := c.Reports()
	require.Len(t, reports, 1)

	msg := reports[0].Message
	assert.Contains(t, msg, "Could not parse en-US/strings.dtd")
	assert.Contains(t, msg, "DTD syntax error starting at Line 2, Col 17: Entity value required")
	assert.Contains(t, msg, "<!ENTITY broken >")
	assert.Contains(t, msg, "\n"+strings.Repeat(" ", 16)+"^\n")
	assert.Contains(t, msg, "ERR_VALUE_REQUIRED")
}

func TestExtractInto_RealGrammarRoundTrip(t *testing.T) {
	data := `<!ENTITY app.title "My App">
<!ENTITY app.empty "">
`
	keys := make(map[string]string)
	collector := diagnostics.NewCollector()
	ExtractInto(NewGrammar(), "en-US/app.dtd", []byte(data), keys, collector)

	assert.False(t, collector.HasErrors())
	assert.Equal(t, "My App", keys["app.dtd/app.title"])
	assert.Contains(t, keys, "app.dtd/app.empty")
}
