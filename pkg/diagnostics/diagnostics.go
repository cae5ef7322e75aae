// Package diagnostics collects the messages produced while checking a
// localization tree. All components report through an append-only sink;
// the final pass/fail verdict is derived from the collected reports
// rather than from any shared flag.
package diagnostics

import (
	"fmt"
	"sort"
	"sync"
)

// MainScope is the locale attribution for reports that are not tied to
// any particular locale directory.
const MainScope = "Main"

// Severity indicates how serious a report is.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

func (s Severity) String() string {
	return []string{"INFO", "WARNING", "ERROR"}[s]
}

// Category groups reports by the phase that produced them.
type Category int

const (
	CategoryParse Category = iota
	CategoryStructural
	CategoryConsistency
	CategoryRegistry
	CategoryUsage
)

func (c Category) String() string {
	return []string{"parse", "structural", "consistency", "registry", "usage"}[c]
}

// Report is one diagnostic message. Reports reference only composite
// keys, file paths, locale names and positions, never internal state.
type Report struct {
	Severity Severity
	Category Category
	Locale   string
	Message  string
}

// String renders a report the way the final output prints it.
// Info reports carry no severity prefix.
func (r Report) String() string {
	if r.Severity == SeverityInfo {
		return fmt.Sprintf("(%s) %s", r.Locale, r.Message)
	}
	return fmt.Sprintf("%s: (%s) %s", r.Severity, r.Locale, r.Message)
}

// Reporter is the append-only sink interface components report into.
type Reporter interface {
	Append(r Report)
}

// Errorf appends an error report to r.
func Errorf(r Reporter, cat Category, locale, format string, args ...interface{}) {
	if locale == "" {
		locale = MainScope
	}
	r.Append(Report{
		Severity: SeverityError,
		Category: cat,
		Locale:   locale,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Warnf appends a warning report to r.
func Warnf(r Reporter, cat Category, locale, format string, args ...interface{}) {
	if locale == "" {
		locale = MainScope
	}
	r.Append(Report{
		Severity: SeverityWarning,
		Category: cat,
		Locale:   locale,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Infof appends an informational report to r.
func Infof(r Reporter, locale, format string, args ...interface{}) {
	if locale == "" {
		locale = MainScope
	}
	r.Append(Report{
		Severity: SeverityInfo,
		Category: CategoryUsage,
		Locale:   locale,
		Message:  fmt.Sprintf(format, args...),
	})
}

// Collector is a thread-safe, append-only Reporter that preserves the
// order reports were appended in.
type Collector struct {
	mu      sync.Mutex
	reports []Report
	errors  int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{reports: make([]Report, 0)}
}

// Append adds one report.
func (c *Collector) Append(r Report) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if r.Locale == "" {
		r.Locale = MainScope
	}
	c.reports = append(c.reports, r)
	if r.Severity == SeverityError {
		c.errors++
	}
}

// Merge appends every report from other, preserving other's order.
func (c *Collector) Merge(other *Collector) {
	for _, r := range other.Reports() {
		c.Append(r)
	}
}

// Reports returns a copy of all collected reports in append order.
func (c *Collector) Reports() []Report {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Report, len(c.reports))
	copy(out, c.reports)
	return out
}

// HasErrors reports whether any error-severity report was collected.
// Warnings never affect the verdict.
func (c *Collector) HasErrors() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors > 0
}

// ByLocale groups the collected reports by locale attribution,
// preserving append order within each locale.
func (c *Collector) ByLocale() map[string][]Report {
	grouped := make(map[string][]Report)
	for _, r := range c.Reports() {
		grouped[r.Locale] = append(grouped[r.Locale], r)
	}
	return grouped
}

// Locales returns the sorted set of locales that have reports.
func (c *Collector) Locales() []string {
	grouped := c.ByLocale()
	names := make([]string, 0, len(grouped))
	for name := range grouped {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary provides an overview of the collected reports.
type Summary struct {
	Total    int
	Errors   int
	Warnings int
	Infos    int
}

// Summarize counts the collected reports by severity.
func (c *Collector) Summarize() Summary {
	summary := Summary{}
	for _, r := range c.Reports() {
		summary.Total++
		switch r.Severity {
		case SeverityError:
			summary.Errors++
		case SeverityWarning:
			summary.Warnings++
		case SeverityInfo:
			summary.Infos++
		}
	}
	return summary
}
