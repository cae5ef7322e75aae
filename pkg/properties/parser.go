// Package properties parses Mozilla-style .properties string bundles and
// computes the substitution signature of every value, so that different
// locales can be checked for matching string-formatting contracts.
//
// The format is line based:
//
//	# comments are ignored
//	! this is also a comment
//	name=string
//	name:string
//
// Both comments and entries exist only on a single line. The only value
// metacharacter is '%': "%%" prints a literal percent, "%S" is an
// anonymous substitution and "%n$S" a numbered one.
package properties

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/locheck/locheck/pkg/diagnostics"
)

// KeySeparator joins a file name and a local key into a composite key.
// '/' is not a legal file name character on common systems, so it can
// never collide with anything inside the file-name half of the key.
const KeySeparator = "/"

// MaxStringSubstitutions is the most substitution parameters Firefox
// allows in one string bundle value, for performance reasons.
// See nsStringBundle.cpp:
// https://mxr.mozilla.org/mozilla-central/source/intl/strres/nsStringBundle.cpp
// Exceeding it does not fail at parse time in the browser, but unprovided
// substitutions past ten come back as '(null)' or garbage, so it is almost
// certainly not what the author intended.
const MaxStringSubstitutions = 10

var (
	// Comments are stripped first, so the record pattern below can allow
	// '#' and '!' inside keys without ambiguity.
	commentPattern = regexp.MustCompile(`(?m)^[ \t]*[#!]+[^\n\r\f]*[\n\r\f]+`)
	recordSplit    = regexp.MustCompile(`[\n\r\f]`)
	// Almost any character is a valid key except ':' and '=', which mark
	// the transition to the value, and whitespace.
	recordPattern = regexp.MustCompile(`^\s*([A-Za-z0-9_.\-+\\{}\[\]!@#$%^&*()/<>,?;'"` + "`" + `~|]+)\s*[=:]\s*([^\n\r\f]*)`)
	// The n$ group is captured only so the whole group can be optional.
	placeholderPattern = regexp.MustCompile(`^%([0-9]+\$)?S`)
)

// Signature is the sorted list of numbered substitution indices found in
// one value. Anonymous %S substitutions are not part of the signature;
// they only count toward the combined substitution limit.
type Signature []int

// Equal reports whether two signatures name the same substitution
// positions.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// String renders the signature in its canonical comparable form.
func (s Signature) String() string {
	return fmt.Sprint([]int(s))
}

// ParseFile extracts localization keys, values and substitution
// signatures from the content of one .properties file, storing them into
// keys and subs. Composite keys are "filename/keyname". Every problem is
// reported through rep; per-record problems never stop the rest of the
// file from being parsed.
func ParseFile(path string, data []byte, keys map[string]string, subs map[string]Signature, rep diagnostics.Reporter) {
	fileName := strings.ReplaceAll(filepath.Base(path), KeySeparator, "")
	locale := filepath.Base(filepath.Dir(path))

	if len(data) < 1 {
		diagnostics.Warnf(rep, diagnostics.CategoryParse, locale,
			"%s does not contain any lines", path)
		return
	}

	text := commentPattern.ReplaceAllString(string(data), "")
	for _, line := range recordSplit.Split(text, -1) {
		if strings.TrimSpace(line) == "" {
			continue
		}
		parseRecord(line, fileName, path, locale, keys, subs, rep)
	}
}

func parseRecord(line, fileName, path, locale string, keys map[string]string, subs map[string]Signature, rep diagnostics.Reporter) {
	match := recordPattern.FindStringSubmatch(line)
	if match == nil {
		diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
			"line '%s' does not match any .properties file patterns for %s", line, path)
		return
	}

	key := fileName + KeySeparator + match[1]
	value := match[2]

	if _, ok := keys[key]; ok {
		diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
			"Duplicate property key '%s' found in %s", key, path)
		return
	}
	if len(value) < 1 {
		diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
			"Key '%s' in %s has a blank value", key, path)
		return
	}

	if !strings.Contains(value, "%") {
		keys[key] = value
		return
	}

	numeric, anonymous, ok := scanPlaceholders(key, value, path, locale, rep)
	if !ok {
		return
	}

	keys[key] = value

	// Different languages can use substitutions in different orders;
	// sorting makes the count and type comparable across locales.
	sort.Ints(numeric)
	maxIndex := 0
	if len(numeric) > 0 {
		maxIndex = numeric[len(numeric)-1]
	}
	if maxIndex > MaxStringSubstitutions ||
		anonymous > MaxStringSubstitutions ||
		(len(numeric) > 0 && maxIndex+anonymous > MaxStringSubstitutions) {
		diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
			"More than %d string substitutions found for key '%s' in '%s'. "+
				"Mozilla does not allow this for performance reasons. "+
				"See https://mxr.mozilla.org/mozilla-central/source/intl/strres/nsStringBundle.cpp",
			MaxStringSubstitutions, key, locale)
	}

	subs[key] = Signature(numeric)
}

// scanPlaceholders walks value left to right validating every use of '%'.
// It returns the numbered substitution indices in encounter order and the
// count of anonymous %S substitutions. A malformed placeholder aborts the
// scan and reports the failing offset with a caret marker.
func scanPlaceholders(key, value, path, locale string, rep diagnostics.Reporter) (numeric []int, anonymous int, ok bool) {
	pos := strings.IndexByte(value, '%')
	for pos != -1 && pos < len(value) {
		pmatch := placeholderPattern.FindStringSubmatch(value[pos:])

		switch {
		case pos+1 < len(value) && value[pos+1] == '%':
			// double %% escape sequence; prints an actual %
			pos++
		case pmatch != nil:
			// advance 1 char for the trailing S plus however many chars
			// make up the numerical reference (if any)
			pos++
			if pmatch[1] != "" {
				n, _ := strconv.Atoi(strings.TrimSuffix(pmatch[1], "$"))
				numeric = append(numeric, n)
				pos += len(pmatch[1])
			} else {
				anonymous++
			}
		default:
			diagnostics.Errorf(rep, diagnostics.CategoryParse, locale,
				"key '%s' contains improper use of %% in %s. Position marked by ^ below:\n%s\n%s^",
				key, path, value, strings.Repeat(" ", pos))
			return nil, 0, false
		}

		next := strings.IndexByte(value[pos+1:], '%')
		if next == -1 {
			pos = -1
		} else {
			pos = pos + 1 + next
		}
	}
	return numeric, anonymous, true
}
