// Package locale builds the aggregated key set for one locale directory:
// every localization key mapped to its value, plus the substitution
// signature of every .properties value that uses string formatting.
package locale

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/locheck/locheck/pkg/diagnostics"
	"github.com/locheck/locheck/pkg/dtd"
	"github.com/locheck/locheck/pkg/properties"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// KeySet holds everything parsed out of one locale directory. Keys are
// composite "filename/keyname" strings, unique within the locale.
type KeySet struct {
	Name string
	Dir  string

	Keys map[string]string
	Subs map[string]properties.Signature

	// ParseErrors is set when any error was reported while building this
	// set. The engine refuses to compare against a baseline that failed
	// to parse cleanly.
	ParseErrors bool
}

// fileParser handles one localization file format. The implementation is
// picked once per file by extension; unrecognized extensions fall through
// to a warn-only no-op.
type fileParser interface {
	parse(ks *KeySet, path string, data []byte, rep diagnostics.Reporter)
}

type propertiesFile struct{}

func (propertiesFile) parse(ks *KeySet, path string, data []byte, rep diagnostics.Reporter) {
	ks.ParseErrors = parseErrors(func(r diagnostics.Reporter) {
		properties.ParseFile(path, data, ks.Keys, ks.Subs, r)
	}, rep) || ks.ParseErrors
}

type dtdFile struct {
	grammar dtd.Grammar
}

func (f dtdFile) parse(ks *KeySet, path string, data []byte, rep diagnostics.Reporter) {
	ks.ParseErrors = parseErrors(func(r diagnostics.Reporter) {
		dtd.ExtractInto(f.grammar, path, data, ks.Keys, r)
	}, rep) || ks.ParseErrors
}

type unknownFile struct{}

func (unknownFile) parse(ks *KeySet, path string, data []byte, rep diagnostics.Reporter) {
	// not necessarily a failure - there may just be extra files lying around
	diagnostics.Warnf(rep, diagnostics.CategoryParse, ks.Name,
		"File %s is not a .dtd or .properties file. Ignoring.", path)
}

// Build reads every file directly inside dir and aggregates the keys of
// the whole locale. Dispatch is by file extension; every file is first
// checked for a UTF-8 byte order mark, which localization files must not
// contain, though parsing continues regardless.
func Build(name, dir string, grammar dtd.Grammar, rep diagnostics.Reporter) *KeySet {
	ks := &KeySet{
		Name: name,
		Dir:  dir,
		Keys: make(map[string]string),
		Subs: make(map[string]properties.Signature),
	}

	logrus.Infof("Checking files in %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		diagnostics.Errorf(rep, diagnostics.CategoryParse, name,
			"Could not read locale directory %s: %v", dir, err)
		ks.ParseErrors = true
		return ks
	}

	for _, entry := range entries {
		if entry.IsDir() {
			// locale directories are flat; nested directories are not
			// localization data
			continue
		}
		path := filepath.Join(dir, entry.Name())

		data, err := os.ReadFile(path)
		if err != nil {
			diagnostics.Errorf(rep, diagnostics.CategoryParse, name,
				"Could not read %s: %v", path, err)
			ks.ParseErrors = true
			continue
		}

		// localization files should not contain BOM:
		// https://developer.mozilla.org/en/XUL_Tutorial/Localization
		if bytes.HasPrefix(data, utf8BOM) {
			diagnostics.Errorf(rep, diagnostics.CategoryParse, name,
				"File '%s' contains Byte Order Marker; "+
					"localization files should not contain BOM.", path)
			ks.ParseErrors = true
		}

		parserFor(path, grammar).parse(ks, path, data, rep)
	}

	return ks
}

func parserFor(path string, grammar dtd.Grammar) fileParser {
	switch {
	case strings.HasSuffix(path, ".dtd"):
		return dtdFile{grammar: grammar}
	case strings.HasSuffix(path, ".properties"):
		return propertiesFile{}
	default:
		return unknownFile{}
	}
}

// errorWatcher forwards reports and remembers whether any was an error.
type errorWatcher struct {
	rep    diagnostics.Reporter
	sawErr bool
}

func (w *errorWatcher) Append(r diagnostics.Report) {
	if r.Severity == diagnostics.SeverityError {
		w.sawErr = true
	}
	w.rep.Append(r)
}

// parseErrors runs fn against a watching reporter and reports whether fn
// logged any error.
func parseErrors(fn func(diagnostics.Reporter), rep diagnostics.Reporter) bool {
	w := &errorWatcher{rep: rep}
	fn(w)
	return w.sawErr
}
