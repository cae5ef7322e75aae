package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// newWatchCommand creates a new watch command
func newWatchCommand() *Command {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)

	opts := &checkOptions{}
	fs.BoolVar(&opts.localesOnly, "locales-only", false,
		"Do not parse or validate chrome.manifest or install.rdf")
	fs.BoolVar(&opts.groupByLanguage, "group-by-language", false,
		"Group messages by language on every run")
	fs.BoolVar(&opts.jsonOutput, "json", false, "Output messages as JSON on every run")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose mode")
	fs.BoolVar(&opts.quiet, "quiet", false, "Quiet mode")
	fs.StringVar(&opts.baseline, "baseline", "", "Baseline locale")
	fs.StringVar(&opts.configFile, "config", "", "Path to config file (.locheck.yaml)")
	delay := fs.Duration("delay", 2*time.Second, "How long to wait after a change before re-checking")

	return &Command{
		Name:        "watch",
		Description: "Re-run the consistency check whenever the localization tree changes",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: locheck watch [flags] <manifest-dir>")
			}
			opts.out = os.Stdout
			return runWatch(fs.Arg(0), opts, flagsSet(fs), *delay)
		},
	}
}

func runWatch(dir string, opts *checkOptions, set map[string]bool, delay time.Duration) error {
	runOnce := func() {
		err := runCheck(dir, opts, set)
		switch {
		case err == nil:
			fmt.Fprintln(opts.out, "locheck: all checks passed")
		case errors.Is(err, ErrChecksFailed):
			// diagnostics were already rendered
		default:
			logrus.Errorf("check failed: %v", err)
		}
	}

	runOnce()

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watchTree(watcher, dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, os.Interrupt, syscall.SIGTERM)

	// debounce: one rebuilt verdict per burst of events
	timer := time.NewTimer(delay)
	if !timer.Stop() {
		<-timer.C
	}

	logrus.Warnf("Watching %s for localization changes", dir)
	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(event.Name); err == nil && fi.IsDir() {
					if err := watcher.Add(event.Name); err != nil {
						logrus.Errorf("Error watching new directory %s: %v", event.Name, err)
					}
				}
			}
			if relevantChange(event) {
				timer.Reset(delay)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logrus.Errorf("Watcher error: %v", err)
		case <-timer.C:
			runOnce()
		case <-sigs:
			return nil
		}
	}
}

// watchTree recursively adds all directories under root to the watcher.
func watchTree(watcher *fsnotify.Watcher, root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

// relevantChange reports whether an event touches a file the checker
// reads: localization data or either registration file.
func relevantChange(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return false
	}
	name := filepath.Base(event.Name)
	if name == "chrome.manifest" || name == "install.rdf" {
		return true
	}
	switch filepath.Ext(event.Name) {
	case ".dtd", ".properties":
		return true
	}
	// directory events matter too: a whole locale may appear or vanish
	fi, err := os.Stat(event.Name)
	return err == nil && fi.IsDir()
}
