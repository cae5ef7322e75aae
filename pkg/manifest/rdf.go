package manifest

import (
	"bytes"
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/locheck/locheck/pkg/diagnostics"
)

// rdfNamespace is the namespace the locale-declaring elements live in.
const rdfNamespace = "http://www.mozilla.org/2004/em-rdf#"

// parseRDF collects the locale names declared by install.rdf's
// em:locale elements. Only the text content of each element is
// consumed; a locale declared twice is a duplicate-registration error.
func (s *Set) parseRDF(path string, rep diagnostics.Reporter) {
	data, err := os.ReadFile(path)
	if err != nil {
		diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
			"Could not parse %s: %v", path, err)
		return
	}

	decoder := xml.NewDecoder(bytes.NewReader(data))
	depth := 0 // nesting depth inside an em:locale element
	var text strings.Builder

	for {
		token, err := decoder.Token()
		if err == io.EOF {
			return
		}
		if err != nil {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
				"Could not parse %s: %v", path, err)
			return
		}

		switch t := token.(type) {
		case xml.StartElement:
			if depth > 0 {
				depth++
			} else if t.Name.Space == rdfNamespace && t.Name.Local == "locale" {
				depth = 1
				text.Reset()
			}
		case xml.CharData:
			if depth > 0 {
				text.Write(t)
			}
		case xml.EndElement:
			if depth == 0 {
				continue
			}
			depth--
			if depth > 0 {
				continue
			}
			locale := strings.TrimSpace(text.String())
			if !s.rdfLocs[locale] {
				s.rdfLocs[locale] = true
			} else {
				diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
					"Locale '%s' is defined more than once inside %s. "+
						"Each locale should only be defined once.", locale, RDFFileName)
			}
		}
	}
}
