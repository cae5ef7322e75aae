package cli

import (
	"flag"
	"fmt"
)

// Version follows semver: bump MAJOR for incompatible changes to the
// check semantics or output format, MINOR for new checks or flags,
// PATCH for fixes.
const Version = "1.0.0"

// newVersionCommand creates a new version command
func newVersionCommand() *Command {
	fs := flag.NewFlagSet("version", flag.ExitOnError)

	return &Command{
		Name:        "version",
		Description: "Print the locheck version",
		Flags:       fs,
		Run: func(args []string) error {
			fmt.Printf("locheck version %s\n", Version)
			return nil
		},
	}
}
