// Command swiccd is the ICC/SIM engine's daemon entrypoint: it loads
// configuration, builds a card.State over a disk image, and serves it over
// the optional TCP bridge until signaled.
package main

import (
	"fmt"
	"os"

	"github.com/swiccgo/swicc/cmd/swiccd/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
