// Package manifest reconciles the two files a Mozilla extension uses to
// register its locales - the line-oriented chrome.manifest package
// registry and the XML install.rdf locale list - against the locale
// directories that actually exist on disk.
package manifest

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/locheck/locheck/pkg/diagnostics"
	"github.com/locheck/locheck/pkg/localecodes"
)

const (
	// FileName is the package registry file; locale registration lines are
	// documented at
	// https://developer.mozilla.org/en-US/docs/Chrome_Registration#locale
	FileName = "chrome.manifest"

	// RDFFileName is the companion XML locale list.
	RDFFileName = "install.rdf"

	localeLineStart = "locale"
)

// Registration lines look like:
//
//	locale packagename localename uri/to/files/ [flags]
var localeLinePattern = regexp.MustCompile(`^\s*locale\s+\S+\s+(\S+)\s+(\S+)`)

// Set holds one extension's locale registrations: where each registered
// locale lives on disk, where it was first declared, which base
// directories should contain locale subfolders, and which locales the
// install.rdf declares.
type Set struct {
	dir string

	baseDirs map[string]bool
	paths    map[string]string
	lines    map[string]int
	rdfLocs  map[string]bool
	parsed   bool
}

// New creates a Set for the directory that contains chrome.manifest.
func New(dir string) *Set {
	return &Set{
		dir:      dir,
		baseDirs: make(map[string]bool),
		paths:    make(map[string]string),
		lines:    make(map[string]int),
		rdfLocs:  make(map[string]bool),
	}
}

// Validate parses both registration files and cross-checks them against
// each other and against the locale directories on disk. Every problem
// is reported through rep; validation continues past individual bad
// lines so one run reports everything.
func (s *Set) Validate(rep diagnostics.Reporter) {
	s.baseDirs = make(map[string]bool)
	s.paths = make(map[string]string)
	s.lines = make(map[string]int)
	s.rdfLocs = make(map[string]bool)
	s.parsed = true

	info, err := os.Stat(s.dir)
	if err != nil || !info.IsDir() {
		diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
			"Main plugin directory %s does not exist; cannot validate %s. "+
				"If you wish to skip validation of %s please specify the "+
				"--locales-only switch when running tests.", s.dir, FileName, FileName)
		return
	}

	manifestPath := filepath.Join(s.dir, FileName)
	if _, err := os.Stat(manifestPath); err != nil {
		diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
			"File %s does not exist in %s ; cannot validate %s. "+
				"If you wish to skip validation of %s please specify the "+
				"--locales-only switch when running tests.", FileName, s.dir, FileName, FileName)
		return
	}

	s.parseManifest(manifestPath, rep)

	rdfPath := filepath.Join(s.dir, RDFFileName)
	if _, err := os.Stat(rdfPath); err != nil {
		diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
			"File %s does not exist in %s ; cannot validate. "+
				"If you wish to skip validation please specify the "+
				"--locales-only switch when running tests.", RDFFileName, s.dir)
		return
	}
	s.parseRDF(rdfPath, rep)

	s.crossCheck(rep)
}

// parseManifest reads the locale registration lines out of
// chrome.manifest, recording locale paths, first declaring line numbers
// and the set of base directories.
func (s *Set) parseManifest(path string, rep diagnostics.Reporter) {
	data, err := os.ReadFile(path)
	if err != nil {
		diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
			"Could not read %s: %v", path, err)
		return
	}

	logrus.Infof("Parsing locale registrations in %s", path)
	for i, line := range splitLines(string(data)) {
		lineNo := i + 1 // 1-based, to help users troubleshoot
		if !strings.HasPrefix(line, localeLineStart) {
			continue
		}
		match := localeLinePattern.FindStringSubmatch(line)
		if match == nil {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
				"Invalid locale line found in %s on line %d:\n  %s", FileName, lineNo, line)
			continue
		}

		locale := match[1]
		subdir := match[2]
		absDir, err := filepath.Abs(filepath.Join(s.dir, subdir))
		if err != nil {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
				"Could not resolve locale path '%s' from %s line %d: %v",
				subdir, FileName, lineNo, err)
			continue
		}

		// one directory up is the base directory every locale subfolder
		// should live under
		s.baseDirs[filepath.Dir(absDir)] = true

		if _, ok := s.paths[locale]; !ok {
			s.paths[locale] = absDir
		}
		if _, ok := s.lines[locale]; !ok {
			s.lines[locale] = lineNo
		} else {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, "",
				"Locale '%s' is defined more than once inside %s. "+
					"Each locale should only be defined once.", locale, FileName)
		}
	}
}

// crossCheck validates registered locales against disk and both registry
// files against each other, then discovers every locale folder under the
// base directories and checks it has both registrations.
func (s *Set) crossCheck(rep diagnostics.Reporter) {
	// chrome.manifest -> disk: a registered locale folder must exist
	for _, locale := range sortedKeys(s.paths) {
		localePath := s.paths[locale]
		info, err := os.Stat(localePath)
		if err != nil {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, locale,
				"Locale folder '%s' is specified in %s line %d, but %s does not exist!",
				locale, FileName, s.lines[locale], localePath)
		} else if !info.IsDir() {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, locale,
				"Locale folder '%s' is specified in %s line %d, but %s is not a folder!",
				locale, FileName, s.lines[locale], localePath)
		}

		if !localecodes.Known(locale) {
			diagnostics.Warnf(rep, diagnostics.CategoryRegistry, locale,
				"%s locale '%s' does not exist in the list of Mozilla locale codes.",
				FileName, locale)
		}
	}

	// install.rdf -> chrome.manifest and disk. Absence from the package
	// registry is the severe signal and was caught above, so these are
	// warnings only.
	for _, locale := range sortedBoolKeys(s.rdfLocs) {
		if _, ok := s.paths[locale]; !ok {
			diagnostics.Warnf(rep, diagnostics.CategoryRegistry, locale,
				"Locale '%s' is specified in %s but is not specified in %s.",
				locale, RDFFileName, FileName)
		} else {
			localePath := s.paths[locale]
			info, err := os.Stat(localePath)
			if err != nil {
				diagnostics.Warnf(rep, diagnostics.CategoryRegistry, locale,
					"Locale folder '%s' is specified in %s line %d, but %s does not exist!",
					locale, RDFFileName, s.lines[locale], localePath)
			} else if !info.IsDir() {
				diagnostics.Warnf(rep, diagnostics.CategoryRegistry, locale,
					"Locale folder '%s' is specified in %s line %d, but %s is not a folder!",
					locale, RDFFileName, s.lines[locale], localePath)
			}
		}

		if !localecodes.Known(locale) {
			diagnostics.Warnf(rep, diagnostics.CategoryRegistry, locale,
				"%s locale '%s' does not exist in the list of Mozilla locale codes.",
				RDFFileName, locale)
		}
	}

	// every locale folder on disk must be registered in both files
	langs := make(map[string]string)
	for _, base := range sortedBoolKeys(s.baseDirs) {
		entries, err := os.ReadDir(base)
		if err != nil {
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() {
				langs[entry.Name()] = filepath.Join(base, entry.Name())
			}
		}
	}

	for _, lang := range sortedKeys(langs) {
		// give a more accurate sub-folder location, if we are able
		dirPath := s.dir
		if p, ok := s.paths[lang]; ok {
			dirPath = filepath.Dir(p)
		}

		if _, ok := s.paths[lang]; !ok {
			diagnostics.Errorf(rep, diagnostics.CategoryRegistry, lang,
				"Locale folder '%s' exists in %s, but no corresponding entry "+
					"exists in the %s.", lang, dirPath, FileName)
		}
		if !s.rdfLocs[lang] {
			diagnostics.Warnf(rep, diagnostics.CategoryRegistry, lang,
				"Locale folder '%s' exists in %s, but no corresponding entry "+
					"exists in %s.", lang, dirPath, RDFFileName)
		}
	}
}

// LocBaseDirs returns the sorted set of resolved base directories found
// in the registration files, validating them first if needed.
func (s *Set) LocBaseDirs(rep diagnostics.Reporter) []string {
	if !s.parsed {
		s.Validate(rep)
	}
	return sortedBoolKeys(s.baseDirs)
}

// Paths returns the registered locale name to directory mapping.
func (s *Set) Paths() map[string]string {
	return s.paths
}

// RDFLocales returns the set of locales declared by install.rdf.
func (s *Set) RDFLocales() map[string]bool {
	return s.rdfLocs
}

func splitLines(data string) []string {
	return strings.Split(strings.ReplaceAll(data, "\r\n", "\n"), "\n")
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedBoolKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
