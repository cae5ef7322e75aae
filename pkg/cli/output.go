package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/locheck/locheck/pkg/diagnostics"
)

// render writes the collected diagnostics to w. Text output streams
// reports in the order they were collected, or grouped by locale name;
// JSON output is always grouped and is printed even in quiet mode, since
// it is meant for machines.
func render(w io.Writer, c *diagnostics.Collector, jsonOutput, grouped, quiet bool) error {
	if jsonOutput {
		return renderJSON(w, c)
	}
	if quiet {
		return nil
	}
	if grouped {
		renderGrouped(w, c)
		return nil
	}
	for _, r := range c.Reports() {
		fmt.Fprintln(w, r)
	}
	return nil
}

func renderGrouped(w io.Writer, c *diagnostics.Collector) {
	grouped := c.ByLocale()
	for _, locale := range c.Locales() {
		for _, r := range grouped[locale] {
			fmt.Fprintln(w, r)
		}
	}
}

// renderJSON emits {"locale": ["ERROR: (locale) message", ...]} with
// sorted keys. Informational progress messages are omitted; they are not
// diagnostics.
func renderJSON(w io.Writer, c *diagnostics.Collector) error {
	grouped := make(map[string][]string)
	for _, r := range c.Reports() {
		if r.Severity == diagnostics.SeverityInfo {
			continue
		}
		grouped[r.Locale] = append(grouped[r.Locale], r.String())
	}

	data, err := json.MarshalIndent(grouped, "", "    ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
