package cli

import (
	"flag"
	"fmt"

	"github.com/locheck/locheck/pkg/localecodes"
)

// newLocalesCommand creates a new locales command
func newLocalesCommand() *Command {
	fs := flag.NewFlagSet("locales", flag.ExitOnError)

	return &Command{
		Name:        "locales",
		Description: "List the recognized Mozilla locale codes",
		Flags:       fs,
		Run: func(args []string) error {
			if err := fs.Parse(args); err != nil {
				return err
			}
			for _, code := range localecodes.All() {
				fmt.Println(code)
			}
			return nil
		},
	}
}
