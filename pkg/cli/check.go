package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/locheck/locheck/pkg/config"
	"github.com/locheck/locheck/pkg/engine"
)

// ErrChecksFailed is returned when the final verdict is "errors present";
// the process exits non-zero in that case.
var ErrChecksFailed = errors.New("localization errors found")

type checkOptions struct {
	localesOnly     bool
	groupByLanguage bool
	jsonOutput      bool
	verbose         bool
	quiet           bool
	baseline        string
	configFile      string

	// out is where rendered diagnostics go; os.Stdout unless a test
	// redirects it
	out io.Writer
}

// newCheckCommand creates a new check command
func newCheckCommand() *Command {
	fs := flag.NewFlagSet("check", flag.ExitOnError)

	opts := &checkOptions{}
	fs.BoolVar(&opts.localesOnly, "locales-only", false,
		"Do not parse or validate chrome.manifest or install.rdf; "+
			"treat every subfolder of the given directory as a locale")
	fs.BoolVar(&opts.localesOnly, "l", false, "Shorthand for -locales-only")
	fs.BoolVar(&opts.groupByLanguage, "group-by-language", false,
		"Save output until the end and group messages by language")
	fs.BoolVar(&opts.jsonOutput, "json", false,
		"Output messages as JSON (implies -group-by-language)")
	fs.BoolVar(&opts.verbose, "verbose", false, "Verbose mode. Print more info about files and tests")
	fs.BoolVar(&opts.verbose, "v", false, "Shorthand for -verbose")
	fs.BoolVar(&opts.quiet, "quiet", false, "Quiet mode. Don't print much, not even error info")
	fs.BoolVar(&opts.quiet, "q", false, "Shorthand for -quiet")
	fs.StringVar(&opts.baseline, "baseline", "",
		fmt.Sprintf("Baseline locale every other locale is compared against (default %q)", engine.DefaultBaseline))
	fs.StringVar(&opts.configFile, "config", "", "Path to config file (.locheck.yaml)")

	return &Command{
		Name:        "check",
		Description: "Check a localization tree for missing keys and mismatched substitutions",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			if fs.NArg() != 1 {
				return fmt.Errorf("usage: locheck check [flags] <manifest-dir>")
			}
			opts.out = os.Stdout
			return runCheck(fs.Arg(0), opts, flagsSet(fs))
		},
	}
}

// flagsSet reports which flags were given explicitly, so config file
// values only apply where the command line stayed silent.
func flagsSet(fs *flag.FlagSet) map[string]bool {
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	return set
}

func runCheck(dir string, opts *checkOptions, set map[string]bool) error {
	if opts.verbose && opts.quiet {
		return fmt.Errorf("-verbose and -quiet are mutually exclusive")
	}
	configureLogging(opts.verbose, opts.quiet)

	cfg, err := loadConfig(dir, opts.configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	baseline := cfg.Baseline
	if set["baseline"] {
		baseline = opts.baseline
	}
	jsonOutput := cfg.Output.Format == config.FormatJSON
	if set["json"] {
		jsonOutput = opts.jsonOutput
	}
	grouped := cfg.Output.GroupByLanguage
	if set["group-by-language"] {
		grouped = opts.groupByLanguage
	}
	if jsonOutput {
		grouped = true
	}

	eng := engine.New(engine.Options{
		Baseline:    baseline,
		LocalesOnly: opts.localesOnly,
	})
	collector := eng.Run(dir)

	if err := render(opts.out, collector, jsonOutput, grouped, opts.quiet); err != nil {
		return err
	}

	if collector.HasErrors() {
		return ErrChecksFailed
	}
	return nil
}

func loadConfig(dir, configFile string) (*config.Config, error) {
	if configFile != "" {
		return config.LoadConfig(configFile)
	}
	return config.LoadConfigFromDir(dir)
}

// configureLogging wires the verbosity flags into logrus. Diagnostics are
// not logged through here; this only affects progress messages.
func configureLogging(verbose, quiet bool) {
	logrus.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	switch {
	case verbose:
		logrus.SetLevel(logrus.InfoLevel)
	case quiet:
		logrus.SetLevel(logrus.FatalLevel)
	default:
		logrus.SetLevel(logrus.WarnLevel)
	}
}
