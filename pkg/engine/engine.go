// Package engine orchestrates a full consistency check of a
// localization tree: registry validation, locale discovery, baseline key
// set construction, and the per-locale diff against the baseline.
package engine

import (
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/locheck/locheck/pkg/diagnostics"
	"github.com/locheck/locheck/pkg/dtd"
	"github.com/locheck/locheck/pkg/locale"
	"github.com/locheck/locheck/pkg/manifest"
	"github.com/locheck/locheck/pkg/properties"
)

// DefaultBaseline is the canonical reference locale. The en-US
// translation has all files and strings created; every other locale is
// validated against it.
const DefaultBaseline = "en-US"

// Options configure a consistency run.
type Options struct {
	// Baseline is the reference locale name; DefaultBaseline if empty.
	Baseline string

	// LocalesOnly skips registry validation and treats the given root as
	// the sole base directory whose subfolders are locales.
	LocalesOnly bool

	// Grammar parses DTD files; the built-in grammar if nil.
	Grammar dtd.Grammar

	// Parallelism bounds the concurrent per-locale builds; GOMAXPROCS
	// if zero.
	Parallelism int
}

// Engine runs consistency checks over localization trees.
type Engine struct {
	opts Options
}

// New creates an engine, filling in option defaults.
func New(opts Options) *Engine {
	if opts.Baseline == "" {
		opts.Baseline = DefaultBaseline
	}
	if opts.Grammar == nil {
		opts.Grammar = dtd.NewGrammar()
	}
	if opts.Parallelism < 1 {
		opts.Parallelism = runtime.GOMAXPROCS(0)
	}
	return &Engine{opts: opts}
}

// Run validates the localization tree rooted at root and returns the
// collector holding every diagnostic of the run. The verdict is
// c.HasErrors(): warnings never flip it. Structural problems (missing
// root, no locales, missing or unparseable baseline) abort the run
// before any comparison; everything else accumulates.
func (e *Engine) Run(root string) *diagnostics.Collector {
	c := diagnostics.NewCollector()
	diagnostics.Infof(c, "", "Starting Localization tests...")

	root, ok := e.resolveRoot(root, c)
	if !ok {
		return c
	}

	baseDirs := e.resolveBaseDirs(root, c)
	if len(baseDirs) == 0 {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"No localization directories found in %s", root)
		return c
	}

	langs := discoverLocales(baseDirs)
	if len(langs) < 1 {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"Did not find any language folders inside %v!", baseDirs)
		return c
	}
	diagnostics.Infof(c, "", "Found %d languages: %v.", len(langs), sortedKeys(langs))

	baselineDir, ok := langs[e.opts.Baseline]
	if !ok {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"Base language folder '%s' was not found in %v", e.opts.Baseline, baseDirs)
		return c
	}

	baseline := locale.Build(e.opts.Baseline, baselineDir, e.opts.Grammar, c)
	if len(baseline.Keys) < 1 {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"Did not find any keys in '%s'!", baseline.Name)
		return c
	}
	if baseline.ParseErrors {
		// the parse errors themselves were already reported; a broken
		// baseline makes every comparison meaningless
		return c
	}
	diagnostics.Infof(c, "", "%d keys found in baseline '%s'.", len(baseline.Keys), baseline.Name)

	// don't test the baseline localization against itself
	delete(langs, e.opts.Baseline)
	e.compareAll(baseline, langs, c)

	diagnostics.Infof(c, "", "Done!")
	return c
}

// resolveRoot makes the root absolute and tolerates being handed the
// path of the manifest file itself rather than its directory.
func (e *Engine) resolveRoot(root string, c *diagnostics.Collector) (string, bool) {
	abs, err := filepath.Abs(root)
	if err != nil {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"Could not resolve %s: %v", root, err)
		return "", false
	}

	info, err := os.Stat(abs)
	if err != nil {
		diagnostics.Errorf(c, diagnostics.CategoryStructural, "",
			"The localization directory %s does not exist!", abs)
		return "", false
	}
	logrus.Infof("Loc directory %s exists.", abs)

	if !info.IsDir() {
		abs = filepath.Dir(abs)
	}
	return abs, true
}

func (e *Engine) resolveBaseDirs(root string, c *diagnostics.Collector) []string {
	if e.opts.LocalesOnly {
		// the root is the main locale folder itself
		return []string{root}
	}
	ms := manifest.New(root)
	ms.Validate(c)
	return ms.LocBaseDirs(c)
}

// discoverLocales maps every immediate subdirectory name of every base
// directory to its path. When the same name exists under two base
// directories the later one wins; base directories are walked in sorted
// order so the winner is at least deterministic.
func discoverLocales(baseDirs []string) map[string]string {
	langs := make(map[string]string)
	sorted := append([]string(nil), baseDirs...)
	sort.Strings(sorted)
	for _, base := range sorted {
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
	return langs
}

// compareAll builds every remaining locale's key set and diffs it
// against the baseline. Builds run in parallel - each locale reads only
// its own directory and writes only its own collector - and the
// per-locale batches are merged in sorted name order so output is
// deterministic regardless of scheduling.
func (e *Engine) compareAll(baseline *locale.KeySet, langs map[string]string, c *diagnostics.Collector) {
	names := sortedKeys(langs)
	batches := make([]*diagnostics.Collector, len(names))

	var g errgroup.Group
	g.SetLimit(e.opts.Parallelism)
	for i, name := range names {
		i, name := i, name
		g.Go(func() error {
			batch := diagnostics.NewCollector()
			ks := locale.Build(name, langs[name], e.opts.Grammar, batch)
			diff(baseline, ks, batch)
			batches[i] = batch
			return nil
		})
	}
	_ = g.Wait()

	for _, batch := range batches {
		c.Merge(batch)
	}
}

// diff reports every structural difference between one locale and the
// baseline: keys present on only one side, and substitution signatures
// that do not match for keys present on both.
func diff(baseline, loc *locale.KeySet, rep diagnostics.Reporter) {
	for _, key := range sortedKeys(loc.Keys) {
		if _, ok := baseline.Keys[key]; !ok {
			diagnostics.Errorf(rep, diagnostics.CategoryConsistency, loc.Name,
				"Key '%s' in '%s' but not in '%s'", key, loc.Name, baseline.Name)
		}
	}
	for _, key := range sortedKeys(baseline.Keys) {
		if _, ok := loc.Keys[key]; !ok {
			diagnostics.Errorf(rep, diagnostics.CategoryConsistency, loc.Name,
				"Key '%s' in '%s' but not in '%s'", key, baseline.Name, loc.Name)
		}
	}

	// substitution contracts must match; keys missing from one locale
	// entirely were already reported above
	for _, key := range sortedSigKeys(loc.Subs) {
		if _, ok := loc.Keys[key]; !ok {
			continue
		}
		if _, ok := baseline.Keys[key]; !ok {
			continue
		}
		baseSig, ok := baseline.Subs[key]
		if !ok {
			diagnostics.Errorf(rep, diagnostics.CategoryConsistency, loc.Name,
				"String substitution for key '%s' found in '%s' but not in baseline %s!",
				key, loc.Name, baseline.Name)
		} else if !loc.Subs[key].Equal(baseSig) {
			diagnostics.Errorf(rep, diagnostics.CategoryConsistency, loc.Name,
				"String substitution for key '%s' in '%s' is not the same as baseline '%s'. "+
					"Substitution count and type must match.\n%s:%s\n%s:%s",
				key, loc.Name, baseline.Name,
				loc.Name, loc.Subs[key], baseline.Name, baseSig)
		}
	}
	for _, key := range sortedSigKeys(baseline.Subs) {
		if _, ok := loc.Keys[key]; !ok {
			continue
		}
		if _, ok := baseline.Keys[key]; !ok {
			continue
		}
		if _, ok := loc.Subs[key]; !ok {
			diagnostics.Errorf(rep, diagnostics.CategoryConsistency, loc.Name,
				"String substitution for key '%s' found in baseline %s but not in '%s'!",
				key, baseline.Name, loc.Name)
		}
		// a mismatch for a key with signatures on both sides was already
		// reported by the loop above
	}
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedSigKeys(m map[string]properties.Signature) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
