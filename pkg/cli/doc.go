// Package cli provides the locheck command-line interface.
//
// # Overview
//
// locheck validates Mozilla-style localization trees (XML DTD entity
// files and .properties string bundles), making sure every translated
// locale has the same keys and the same string-substitution contracts
// as the baseline locale.
//
// # Commands
//
// check: Validate a localization tree once
//
//	locheck check \
//		--baseline en-US \
//		--group-by-language \
//		path/to/extension
//
// The exit status is non-zero when any error (not warning) was found.
// Pass --locales-only to skip chrome.manifest/install.rdf validation and
// point locheck directly at the folder whose subfolders are locales.
//
// watch: Keep re-validating on changes
//
//	locheck watch --delay 2s path/to/extension
//
// locales: List the recognized Mozilla locale codes
//
// version: Print the tool version
//
// # Output
//
// By default diagnostics print as they were encountered, as
// "LEVEL: (locale) message" lines. --group-by-language sorts them by
// locale; --json emits a {"locale": [messages]} object instead.
package cli
