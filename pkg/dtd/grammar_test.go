package dtd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_ParseEntities(t *testing.T) {
	content := `<!-- header comment -->
<!ENTITY greeting "hello">
<!ENTITY farewell 'goodbye'>
`
	entities, serr := NewGrammar().Parse([]byte(content))

	require.Nil(t, serr)
	require.Len(t, entities, 2)
	assert.Equal(t, Entity{Name: "greeting", Content: "hello"}, entities[0])
	assert.Equal(t, Entity{Name: "farewell", Content: "goodbye"}, entities[1])
}

func TestGrammar_SkipsLeadingBOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte(`<!ENTITY greeting "hello">`)...)

	entities, serr := NewGrammar().Parse(content)

	require.Nil(t, serr)
	require.Len(t, entities, 1)
	assert.Equal(t, Entity{Name: "greeting", Content: "hello"}, entities[0])
}

func TestGrammar_EmptyInput(t *testing.T) {
	entities, serr := NewGrammar().Parse(nil)

	assert.Nil(t, serr)
	assert.Empty(t, entities)
}

func TestGrammar_DuplicatesKeptInOrder(t *testing.T) {
	content := `<!ENTITY key "first">
<!ENTITY key "second">
`
	entities, serr := NewGrammar().Parse([]byte(content))

	require.Nil(t, serr)
	require.Len(t, entities, 2)
	assert.Equal(t, "first", entities[0].Content)
	assert.Equal(t, "second", entities[1].Content)
}

func TestGrammar_SkipsOtherDeclarations(t *testing.T) {
	content := `<?xml version="1.0"?>
<!ELEMENT window (box)>
<!ATTLIST box align CDATA "left">
<!ENTITY only.one "value">
`
	entities, serr := NewGrammar().Parse([]byte(content))

	require.Nil(t, serr)
	require.Len(t, entities, 1)
	assert.Equal(t, "only.one", entities[0].Name)
}

func TestGrammar_ParameterEntitiesNotReported(t *testing.T) {
	content := `<!ENTITY % param "ignored">
<!ENTITY real "kept">
`
	entities, serr := NewGrammar().Parse([]byte(content))

	require.Nil(t, serr)
	require.Len(t, entities, 1)
	assert.Equal(t, "real", entities[0].Name)
}

func TestGrammar_MultilineValueAllowed(t *testing.T) {
	content := "<!ENTITY long \"line one\nline two\">\n"
	entities, serr := NewGrammar().Parse([]byte(content))

	require.Nil(t, serr)
	require.Len(t, entities, 1)
	assert.Equal(t, "line one\nline two", entities[0].Content)
}

func TestGrammar_PercentInValueIsFatal(t *testing.T) {
	content := `<!ENTITY first "fine">
<!ENTITY bad "50% off">
`
	entities, serr := NewGrammar().Parse([]byte(content))

	assert.Nil(t, entities)
	require.NotNil(t, serr)
	first := serr.First()
	assert.Equal(t, "ERR_PEREF_IN_VALUE", first.Code)
	assert.Equal(t, "FATAL", first.Severity)
	assert.Equal(t, "PARSER", first.Subsystem)
	assert.Equal(t, 2, first.Line)
	assert.Equal(t, 17, first.Column)
}

func TestGrammar_MissingValue(t *testing.T) {
	_, serr := NewGrammar().Parse([]byte(`<!ENTITY broken >`))

	require.NotNil(t, serr)
	assert.Equal(t, "ERR_VALUE_REQUIRED", serr.First().Code)
}

func TestGrammar_UnterminatedValue(t *testing.T) {
	_, serr := NewGrammar().Parse([]byte(`<!ENTITY broken "never closed`))

	require.NotNil(t, serr)
	assert.Equal(t, "ERR_ENTITY_NOT_FINISHED", serr.First().Code)
}

func TestGrammar_StrayContent(t *testing.T) {
	_, serr := NewGrammar().Parse([]byte("this is not a dtd at all"))

	require.NotNil(t, serr)
	assert.Equal(t, "ERR_EXT_SUBSET_NOT_FINISHED", serr.First().Code)
	assert.Equal(t, 1, serr.First().Line)
}

func TestGrammar_UnterminatedComment(t *testing.T) {
	_, serr := NewGrammar().Parse([]byte("<!-- never closed"))

	require.NotNil(t, serr)
	assert.Equal(t, "ERR_COMMENT_NOT_FINISHED", serr.First().Code)
}

func TestDiagnostic_StringFormat(t *testing.T) {
	d := Diagnostic{
		Source:    "<string>",
		Line:      10,
		Column:    17,
		Severity:  "FATAL",
		Subsystem: "PARSER",
		Code:      "ERR_VALUE_REQUIRED",
		Message:   "Entity value required",
	}
	assert.Equal(t, "<string>:10:17:FATAL:PARSER:ERR_VALUE_REQUIRED: Entity value required", d.String())
}
