package dtd

import (
	"path/filepath"
	"strings"

	"github.com/locheck/locheck/pkg/diagnostics"
)

// KeySeparator joins a file name and an entity name into a composite key.
const KeySeparator = "/"

// ExtractInto parses one DTD file's content with g and stores every
// entity into keys under the composite key "filename/entityname".
//
// Semantic checks live here, not in the grammar: duplicate composite
// keys and '<' inside entity values are errors, blank values are
// warnings but still stored. A grammar failure aborts this one file only
// and is reported with the offending source line and a caret marker so
// users do not have to understand the raw diagnostic format.
func ExtractInto(g Grammar, path string, data []byte, keys map[string]string, rep diagnostics.Reporter) {
	fileName := strings.ReplaceAll(filepath.Base(path), KeySeparator, "")
	locale := filepath.Base(filepath.Dir(path))

	entities, serr := g.Parse(data)
	if serr != nil {
		reportSyntaxError(path, data, locale, serr, rep)
		return
	}

	for _, entity := range entities {
		key := fileName + KeySeparator + entity.Name
		if _, ok := keys[key]; ok {
			diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
				"Duplicate dtd key '%s' found in %s", key, path)
			continue
		}
		// the grammar already rejects '%' in entity values, so only '<'
		// needs checking here
		if strings.Contains(entity.Content, "<") {
			diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
				"The value for '%s' in %s contains the invalid character '<'. "+
					"This is not allowed; please remove this character.", key, path)
			continue
		}
		if len(entity.Content) < 1 {
			diagnostics.Warnf(rep, diagnostics.CategoryParse, locale,
				"Key '%s' in %s has a blank value. Is this desired?", key, path)
		}
		keys[key] = entity.Content
	}
}

// reportSyntaxError composes one human-readable error from the first
// grammar diagnostic: the message, the offending source line, a caret at
// the failing column, and the full raw diagnostic list for completeness.
func reportSyntaxError(path string, data []byte, locale string, serr *SyntaxError, rep diagnostics.Reporter) {
	first := serr.First()

	errorLine := sourceLine(data, first.Line)
	column := first.Column
	if column < 1 {
		column = 1
	}
	highlight := strings.Repeat(" ", column-1) + "^"

	diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
		"Could not parse %s: DTD syntax error starting at Line %d, Col %d: %s\n%s\n%s\n%s\n%s\n%s",
		path, first.Line, first.Column, first.Message,
		"Error line shown below, problem marked with ^:",
		errorLine,
		highlight,
		"Full error details:",
		serr.Error())
}

func sourceLine(data []byte, line int) string {
	lines := strings.Split(string(data), "\n")
	if line < 1 || line > len(lines) {
		return ""
	}
	return strings.TrimSpace(lines[line-1])
}
