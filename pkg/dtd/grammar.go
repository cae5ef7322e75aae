// Package dtd extracts named entities from XML DTD localization files.
//
// The low-level grammar lives behind the narrow Grammar interface so the
// extractor and the consistency engine can be tested against fakes, and
// so the built-in grammar could later be swapped for an external binding
// without touching any semantic validation.
package dtd

import (
	"bytes"
	"fmt"
	"strings"
)

// Entity is one named string definition declared in a DTD file.
type Entity struct {
	Name    string
	Content string
}

// Diagnostic is one structured grammar error record. The fields follow
// the libxml2 error-log layout, rendered as seven colon-delimited parts:
//
//	<string>:10:17:FATAL:PARSER:ERR_VALUE_REQUIRED: Entity value required
type Diagnostic struct {
	Source    string
	Line      int
	Column    int
	Severity  string
	Subsystem string
	Code      string
	Message   string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s:%d:%d:%s:%s:%s: %s",
		d.Source, d.Line, d.Column, d.Severity, d.Subsystem, d.Code, d.Message)
}

// SyntaxError is the failure result of a grammar parse.
type SyntaxError struct {
	Diagnostics []Diagnostic
}

// First returns the first diagnostic record; the one users are pointed at.
func (e *SyntaxError) First() Diagnostic {
	return e.Diagnostics[0]
}

func (e *SyntaxError) Error() string {
	lines := make([]string, len(e.Diagnostics))
	for i, d := range e.Diagnostics {
		lines[i] = d.String()
	}
	return strings.Join(lines, "\n")
}

// Grammar parses DTD text into its entity declarations. Implementations
// must return the declarations in document order, including duplicates,
// and must reject a '%' inside an entity value (a parameter-entity
// reference) at the grammar level.
type Grammar interface {
	Parse(data []byte) ([]Entity, *SyntaxError)
}

// NewGrammar returns the built-in DTD entity grammar. It understands
// entity declarations, comments and processing instructions, and skips
// other markup declarations; that is the whole surface localization DTD
// files use.
func NewGrammar() Grammar {
	return entityGrammar{}
}

type entityGrammar struct{}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

func (entityGrammar) Parse(data []byte) ([]Entity, *SyntaxError) {
	// libxml2 tolerates a leading byte order mark; whether one should be
	// present at all is the caller's concern, not a grammar error
	data = bytes.TrimPrefix(data, utf8BOM)

	s := &scanner{data: data, line: 1, col: 1}
	var entities []Entity

	for {
		s.skipSpace()
		if s.eof() {
			return entities, nil
		}

		switch {
		case s.consume("<!--"):
			if !s.skipUntil("-->") {
				return nil, s.fatal("ERR_COMMENT_NOT_FINISHED", "Comment not terminated")
			}
		case s.consume("<?"):
			if !s.skipUntil("?>") {
				return nil, s.fatal("ERR_PI_NOT_FINISHED", "ParsePI: PI not terminated")
			}
		case s.consume("<!ENTITY"):
			entity, parameter, err := s.parseEntity()
			if err != nil {
				return nil, err
			}
			if !parameter {
				entities = append(entities, entity)
			}
		case s.consume("<!"):
			// some other markup declaration (ELEMENT, ATTLIST, ...);
			// irrelevant for entity extraction
			if err := s.skipDeclaration(); err != nil {
				return nil, err
			}
		default:
			return nil, s.fatal("ERR_EXT_SUBSET_NOT_FINISHED", "Content error in the external subset")
		}
	}
}

// parseEntity parses the remainder of an entity declaration. The leading
// "<!ENTITY" has already been consumed. Parameter entities ("<!ENTITY %
// name ...") are parsed but not reported.
func (s *scanner) parseEntity() (Entity, bool, *SyntaxError) {
	if !s.skipRequiredSpace() {
		return Entity{}, false, s.fatal("ERR_SPACE_REQUIRED", "Space required after '<!ENTITY'")
	}

	parameter := false
	if s.peek() == '%' {
		parameter = true
		s.advance()
		if !s.skipRequiredSpace() {
			return Entity{}, false, s.fatal("ERR_SPACE_REQUIRED", "Space required after '%'")
		}
	}

	name := s.scanName()
	if name == "" {
		return Entity{}, false, s.fatal("ERR_NAME_REQUIRED", "entity name expected")
	}
	if !s.skipRequiredSpace() {
		return Entity{}, false, s.fatal("ERR_SPACE_REQUIRED", "Space required after the entity name")
	}

	quote := s.peek()
	if quote != '"' && quote != '\'' {
		return Entity{}, false, s.fatal("ERR_VALUE_REQUIRED", "Entity value required")
	}
	s.advance()

	var content strings.Builder
	for {
		if s.eof() {
			return Entity{}, false, s.fatal("ERR_ENTITY_NOT_FINISHED", "Unfinished entity value")
		}
		c := s.peek()
		if c == quote {
			s.advance()
			break
		}
		if c == '%' {
			return Entity{}, false, s.fatal("ERR_PEREF_IN_VALUE", "PEReference forbidden in entity value")
		}
		content.WriteByte(c)
		s.advance()
	}

	s.skipSpace()
	if s.eof() || s.peek() != '>' {
		return Entity{}, false, s.fatal("ERR_GT_REQUIRED", "entity declaration not terminated with '>'")
	}
	s.advance()

	return Entity{Name: name, Content: content.String()}, parameter, nil
}

// skipDeclaration consumes the rest of a markup declaration, honoring
// quoted literals so a '>' inside one does not end it early.
func (s *scanner) skipDeclaration() *SyntaxError {
	for !s.eof() {
		c := s.peek()
		if c == '>' {
			s.advance()
			return nil
		}
		if c == '"' || c == '\'' {
			quote := c
			s.advance()
			for !s.eof() && s.peek() != quote {
				s.advance()
			}
			if s.eof() {
				break
			}
		}
		s.advance()
	}
	return s.fatal("ERR_EXT_SUBSET_NOT_FINISHED", "Content error in the external subset")
}

// scanner walks the raw bytes tracking 1-based line and column positions
// for diagnostics.
type scanner struct {
	data []byte
	pos  int
	line int
	col  int
}

func (s *scanner) eof() bool {
	return s.pos >= len(s.data)
}

func (s *scanner) peek() byte {
	return s.data[s.pos]
}

func (s *scanner) advance() {
	if s.data[s.pos] == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}
	s.pos++
}

func (s *scanner) consume(prefix string) bool {
	if !strings.HasPrefix(string(s.data[s.pos:]), prefix) {
		return false
	}
	for range prefix {
		s.advance()
	}
	return true
}

func (s *scanner) skipSpace() {
	for !s.eof() && isSpace(s.peek()) {
		s.advance()
	}
}

func (s *scanner) skipRequiredSpace() bool {
	if s.eof() || !isSpace(s.peek()) {
		return false
	}
	s.skipSpace()
	return true
}

// skipUntil consumes through the next occurrence of marker, reporting
// whether it was found before end of input.
func (s *scanner) skipUntil(marker string) bool {
	idx := strings.Index(string(s.data[s.pos:]), marker)
	if idx < 0 {
		return false
	}
	for i := 0; i < idx+len(marker); i++ {
		s.advance()
	}
	return true
}

func (s *scanner) scanName() string {
	start := s.pos
	for !s.eof() && isNameChar(s.peek()) {
		s.advance()
	}
	return string(s.data[start:s.pos])
}

func (s *scanner) fatal(code, message string) *SyntaxError {
	return &SyntaxError{Diagnostics: []Diagnostic{{
		Source:    "<string>",
		Line:      s.line,
		Column:    s.col,
		Severity:  "FATAL",
		Subsystem: "PARSER",
		Code:      code,
		Message:   message,
	}}}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isNameChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '.' || c == '-' || c == '_' || c == ':'
}
